package api

import (
	"time"

	models "VitalPull/internal/domain/models"
	domrepo "VitalPull/internal/domain/repository"
	icache "VitalPull/internal/service/cache"
	"VitalPull/internal/usecase"
	xhttp "VitalPull/pkg/http"
	xlogger "VitalPull/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RecordsEchoHandler serves record ingestion and retrieval.
type RecordsEchoHandler struct {
	logger *xlogger.Logger
	proc   *usecase.RecordProcessor
	store  domrepo.RecordStore
	cache  icache.BytesCache
}

func NewRecordsEchoHandler(logger *xlogger.Logger, proc *usecase.RecordProcessor, store domrepo.RecordStore) *RecordsEchoHandler {
	return &RecordsEchoHandler{logger: logger, proc: proc, store: store}
}

// SetCache injects the insights cache so upserts can invalidate stale entries.
func (h *RecordsEchoHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *RecordsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	g := e.Group("/api")
	g.POST("/records", h.Upsert)
	g.GET("/records/:user_id", h.Fetch)
}

func (h *RecordsEchoHandler) Upsert(c echo.Context) error {
	req := &models.RecordUpsertRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rec := req.Record()
	if err := h.proc.Process(c.Request().Context(), &rec); err != nil {
		h.logger.Error("record upsert error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.invalidate(rec.UserID)

	return xhttp.CreatedResponse(c, models.ToAPI(rec))
}

func (h *RecordsEchoHandler) Fetch(c echo.Context) error {
	userID := c.Param("user_id")
	series, err := h.store.FetchUser(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("record fetch error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if len(series) == 0 {
		return xhttp.NotFoundResponse(c, "no records for user "+userID)
	}
	return xhttp.SuccessResponse(c, models.ToAPISeries(series))
}

func (h *RecordsEchoHandler) Health(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		h.logger.Error("storage health check failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("storage unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

// invalidate drops cached insight responses for a user after their series
// changes.
func (h *RecordsEchoHandler) invalidate(userID string) {
	if h.cache == nil {
		return
	}
	keys := []string{
		"trust:" + userID,
		"anomaly:" + userID,
		"correlations:" + userID,
		"federated:" + userID,
		"security:" + userID,
	}
	if err := h.cache.DelBytes(keys...); err != nil {
		h.logger.Warn("cache invalidation failed", xlogger.String("user_id", userID), xlogger.Error(err))
	}
}
