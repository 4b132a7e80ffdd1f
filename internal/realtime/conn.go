// Package realtime holds the single push-channel connection to the backend.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"seeker/internal/models"
)

const (
	EventSequenceUpdated = "sequence_updated"
	EventSessionUpdated  = "session_updated"

	writeWait = 10 * time.Second
)

var (
	ErrClosed       = errors.New("push channel closed")
	ErrNotConnected = errors.New("push channel not connected")
)

// Envelope is the frame exchanged on the websocket.
type Envelope struct {
	ID    string          `json:"id,omitempty"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type SequenceUpdate struct {
	SessionID models.ID             `json:"session_id"`
	Sequence  []models.SequenceStep `json:"sequence"`
}

type SessionUpdate struct {
	SessionID    models.ID `json:"session_id"`
	SessionTitle string    `json:"session_title"`
}

// Handler receives the raw data of one event.
type Handler func(data json.RawMessage)

type Conn struct {
	url    string
	dialer *websocket.Dialer
	logger *logrus.Logger

	mu       sync.Mutex
	ws       *websocket.Conn
	closed   bool
	handlers map[string]map[uint64]Handler
	nextID   uint64

	writeMu  sync.Mutex
	done     chan struct{}
	doneOnce sync.Once
}

// PushURL derives the websocket URL from the HTTP base URL.
func PushURL(apiURL, path string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid api url %q: %w", apiURL, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported api url scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	return u.String(), nil
}

func New(pushURL string, logger *logrus.Logger) *Conn {
	return &Conn{
		url:      pushURL,
		dialer:   websocket.DefaultDialer,
		logger:   logger,
		handlers: make(map[string]map[uint64]Handler),
		done:     make(chan struct{}),
	}
}

// Open dials the backend and starts dispatching inbound events. Calling it
// on an open connection is a no-op.
func (c *Conn) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.ws != nil {
		return nil
	}

	ws, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	c.ws = ws
	go c.readLoop(ws)
	c.logger.WithField("url", c.url).Debug("push channel connected")
	return nil
}

// Close ends the connection. Subscriptions are dropped.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	ws := c.ws
	c.ws = nil
	c.handlers = make(map[string]map[uint64]Handler)
	c.mu.Unlock()

	if ws == nil {
		c.finish()
		return nil
	}

	c.writeMu.Lock()
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	c.writeMu.Unlock()
	err := ws.Close()
	<-c.done
	return err
}

// Subscribe registers h for event and returns a function that removes it.
func (c *Conn) Subscribe(event string, h Handler) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	if c.handlers[event] == nil {
		c.handlers[event] = make(map[uint64]Handler)
	}
	c.handlers[event][id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.handlers[event], id)
		})
	}
}

// Emit sends an event to the backend for fan-out to other clients.
func (c *Conn) Emit(event string, data any) error {
	c.mu.Lock()
	ws, closed := c.ws, c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if ws == nil {
		return ErrNotConnected
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event, err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	return ws.WriteJSON(Envelope{ID: uuid.NewString(), Event: event, Data: raw})
}

func (c *Conn) finish() {
	c.doneOnce.Do(func() { close(c.done) })
}

func (c *Conn) readLoop(ws *websocket.Conn) {
	defer c.finish()
	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WithError(err).Error("push channel closed unexpectedly")
			}
			c.mu.Lock()
			if c.ws == ws {
				c.ws = nil
			}
			c.mu.Unlock()
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.logger.WithError(err).Warn("invalid push frame")
			continue
		}
		c.dispatch(env)
	}
}

func (c *Conn) dispatch(env Envelope) {
	c.mu.Lock()
	hs := make([]Handler, 0, len(c.handlers[env.Event]))
	for _, h := range c.handlers[env.Event] {
		hs = append(hs, h)
	}
	c.mu.Unlock()

	for _, h := range hs {
		h(env.Data)
	}
}
