package api

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	models "VitalPull/internal/domain/models"
	icache "VitalPull/internal/service/cache"
	"VitalPull/internal/service/metrics"
	"VitalPull/internal/service/ratelimit"
	"VitalPull/internal/usecase"
	xhttp "VitalPull/pkg/http"
	xlogger "VitalPull/pkg/logger"

	"github.com/labstack/echo/v4"
)

// InsightsEchoHandler serves the scoring endpoints: trust, anomaly,
// correlations, simulation, federated trust and security metrics.
type InsightsEchoHandler struct {
	logger   *xlogger.Logger
	insights *usecase.Insights
	cache    icache.BytesCache
	rl       *ratelimit.Limiter
	cacheTTL time.Duration
}

func NewInsightsEchoHandler(logger *xlogger.Logger, insights *usecase.Insights) *InsightsEchoHandler {
	metrics.Register()
	return &InsightsEchoHandler{
		logger:   logger,
		insights: insights,
		rl:       ratelimit.New(),
		cacheTTL: 30 * time.Second,
	}
}

func (h *InsightsEchoHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetCacheTTL overrides the default response cache TTL.
func (h *InsightsEchoHandler) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		h.cacheTTL = ttl
	}
}

func (h *InsightsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/trust/:user_id", h.Trust)
	g.GET("/anomaly/:user_id", h.Anomaly)
	g.GET("/correlations/:user_id", h.Correlations)
	g.POST("/simulate", h.Simulate)
	g.GET("/federated/:user_id", h.Federated)
	g.GET("/security/:user_id", h.Security)
}

// serveCached returns true when the response was served from cache.
func (h *InsightsEchoHandler) serveCached(c echo.Context, key string) bool {
	if h.cache == nil {
		return false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn("insights cache_get_error", xlogger.Error(err))
		return false
	}
	if !ok {
		return false
	}
	h.logger.Debug("insights cache_hit", xlogger.String("key", key))
	return c.JSONBlob(http.StatusOK, b) == nil
}

// storeCached caches the full response envelope so cache hits replay
// byte-identical bodies.
func (h *InsightsEchoHandler) storeCached(key string, v interface{}) {
	if h.cache == nil {
		return
	}
	b, err := json.Marshal(xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    v,
	})
	if err != nil {
		return
	}
	if err := h.cache.SetBytes(key, b, h.cacheTTL); err != nil {
		h.logger.Warn("insights cache_set_error", xlogger.Error(err))
	}
}

// errorResponse maps usecase sentinel errors onto HTTP statuses.
func (h *InsightsEchoHandler) errorResponse(c echo.Context, endpoint string, err error) error {
	metrics.InsightsErrors.WithLabelValues(endpoint).Inc()
	switch {
	case errors.Is(err, usecase.ErrNoData):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
	case errors.Is(err, usecase.ErrInsufficientData):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	default:
		h.logger.Error("insights usecase error", xlogger.String("endpoint", endpoint), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}

func (h *InsightsEchoHandler) allow(c echo.Context, endpoint string) bool {
	return h.rl.Allow(c.RealIP()+":"+endpoint, 5, 2)
}

func (h *InsightsEchoHandler) Trust(c echo.Context) error {
	endpoint := "trust"
	start := time.Now()
	defer func() { metrics.InsightsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_RATE_LIMITED", "", "rate limited", http.StatusTooManyRequests))
	}
	userID := c.Param("user_id")
	key := "trust:" + userID
	if h.serveCached(c, key) {
		return nil
	}

	entries, err := h.insights.TrustScores(c.Request().Context(), userID)
	if err != nil {
		return h.errorResponse(c, endpoint, err)
	}
	resp := map[string]interface{}{"user_id": userID, "trust_scores": entries}
	h.storeCached(key, resp)
	return xhttp.SuccessResponse(c, resp)
}

func (h *InsightsEchoHandler) Anomaly(c echo.Context) error {
	endpoint := "anomaly"
	start := time.Now()
	defer func() { metrics.InsightsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_RATE_LIMITED", "", "rate limited", http.StatusTooManyRequests))
	}
	userID := c.Param("user_id")
	key := "anomaly:" + userID
	if h.serveCached(c, key) {
		return nil
	}

	results, err := h.insights.Anomalies(c.Request().Context(), userID)
	if err != nil {
		return h.errorResponse(c, endpoint, err)
	}
	resp := map[string]interface{}{"user_id": userID, "anomalies": results}
	h.storeCached(key, resp)
	return xhttp.SuccessResponse(c, resp)
}

func (h *InsightsEchoHandler) Correlations(c echo.Context) error {
	endpoint := "correlations"
	start := time.Now()
	defer func() { metrics.InsightsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_RATE_LIMITED", "", "rate limited", http.StatusTooManyRequests))
	}
	userID := c.Param("user_id")
	key := "correlations:" + userID
	if h.serveCached(c, key) {
		return nil
	}

	entries, err := h.insights.Correlations(c.Request().Context(), userID)
	if err != nil {
		return h.errorResponse(c, endpoint, err)
	}
	resp := map[string]interface{}{"user_id": userID, "correlations": entries}
	h.storeCached(key, resp)
	return xhttp.SuccessResponse(c, resp)
}

type simulationResponse struct {
	UserID     string                   `json:"user_id"`
	Mode       string                   `json:"mode"`
	Fraction   float64                  `json:"fraction"`
	Modified   []models.HealthRecordAPI `json:"modified_records"`
	Detections []models.AnomalyResult   `json:"detections"`
}

func (h *InsightsEchoHandler) Simulate(c echo.Context) error {
	endpoint := "simulate"
	start := time.Now()
	defer func() { metrics.InsightsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.SimulationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	// A fixed seed makes tampering reproducible; otherwise each run differs.
	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewSource(*req.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	outcome, err := h.insights.Simulate(c.Request().Context(), req.UserID, req.Mode, req.Fraction, rng)
	if err != nil {
		return h.errorResponse(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, simulationResponse{
		UserID:     req.UserID,
		Mode:       req.Mode,
		Fraction:   req.Fraction,
		Modified:   models.ToAPISeries(outcome.Modified),
		Detections: outcome.Detections,
	})
}

func (h *InsightsEchoHandler) Federated(c echo.Context) error {
	endpoint := "federated"
	start := time.Now()
	defer func() { metrics.InsightsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_RATE_LIMITED", "", "rate limited", http.StatusTooManyRequests))
	}
	userID := c.Param("user_id")
	key := "federated:" + userID
	if h.serveCached(c, key) {
		return nil
	}

	score, err := h.insights.FederatedTrust(c.Request().Context(), userID)
	if err != nil {
		return h.errorResponse(c, endpoint, err)
	}
	resp := map[string]interface{}{"user_id": userID, "federated_trust": score}
	h.storeCached(key, resp)
	return xhttp.SuccessResponse(c, resp)
}

func (h *InsightsEchoHandler) Security(c echo.Context) error {
	endpoint := "security"
	start := time.Now()
	defer func() { metrics.InsightsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_RATE_LIMITED", "", "rate limited", http.StatusTooManyRequests))
	}
	userID := c.Param("user_id")
	key := "security:" + userID
	if h.serveCached(c, key) {
		return nil
	}

	sm, err := h.insights.SecurityMetrics(c.Request().Context(), userID)
	if err != nil {
		return h.errorResponse(c, endpoint, err)
	}
	resp := map[string]interface{}{"user_id": userID, "security": sm}
	h.storeCached(key, resp)
	return xhttp.SuccessResponse(c, resp)
}
