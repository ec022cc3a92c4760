package wearable

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"VitalPull/internal/domain/models"
	drepo "VitalPull/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements a TelemetryStream backed by a wearable vendor WebSocket.
// The vendor pushes one frame per synced day; absent fields mean the device
// did not report that signal.
type Client struct {
	token          string
	websocketURL   string
	users          []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// New creates a new wearable TelemetryStream.
func New(token, websocketURL string, users []string, reconnectDelay, pingInterval time.Duration) drepo.TelemetryStream {
	return &Client{
		token:          token,
		websocketURL:   websocketURL,
		users:          users,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.token)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("wearable connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("wearable: connected")
	return nil
}

// Subscribe subscribes to configured users.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("wearable not connected")
	}
	for _, u := range c.users {
		msg := map[string]string{"type": "subscribe", "user_id": u}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", u, err)
		}
		log.Printf("wearable: subscribed %s", u)
	}
	return nil
}

type wsFrame struct {
	Type string                   `json:"type"`
	Data []models.HealthRecordAPI `json:"data"`
}

// Read streams health records and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.Record, <-chan error) {
	records := make(chan *models.Record, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(records)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("wearable conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("wearable read: %w", err)
					return
				}
				var m wsFrame
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-record frames
					continue
				}
				if m.Type != "record" {
					continue
				}
				for _, d := range m.Data {
					if d.UserID == "" || d.Date == "" {
						continue
					}
					rec := models.FromAPI(d)
					select {
					case records <- &rec:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return records, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
