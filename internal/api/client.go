package api

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"seeker/internal/models"
)

const DefaultTimeout = 30 * time.Second

// Error is a non-2xx response from the backend. The body is kept verbatim
// for diagnostics.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

type ChatResponse struct {
	Response string                `json:"response"`
	Sequence []models.SequenceStep `json:"sequence,omitempty"`
}

// HasSequence reports whether the reply carried a sequence payload, even an empty one.
func (r *ChatResponse) HasSequence() bool {
	return r.Sequence != nil
}

type chatRequest struct {
	Message   string    `json:"message"`
	SessionID models.ID `json:"session_id"`
}

type signupResponse struct {
	UserID models.ID `json:"user_id"`
}

type createSessionRequest struct {
	UserID       models.ID `json:"user_id"`
	SessionTitle string    `json:"session_title"`
}

type renameSessionRequest struct {
	SessionTitle string `json:"session_title"`
}

type Client struct {
	http    *resty.Client
	timeout time.Duration
	logger  *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		timeout: timeout,
		logger:  logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, build func(*resty.Request)) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	requestID := uuid.NewString()
	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)
	if build != nil {
		build(req)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"method":     method,
			"path":       path,
			"request_id": requestID,
		}).Debug("backend request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !res.IsSuccess() {
		return &Error{Method: method, Path: path, StatusCode: res.StatusCode(), Body: res.String()}
	}
	return nil
}

// Chat sends one user message and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, sessionID models.ID, message string) (*ChatResponse, error) {
	var out ChatResponse
	err := c.do(ctx, resty.MethodPost, "/chat", func(r *resty.Request) {
		r.SetBody(chatRequest{Message: message, SessionID: sessionID}).SetResult(&out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Signup(ctx context.Context, profile models.Profile) (models.ID, error) {
	var out signupResponse
	err := c.do(ctx, resty.MethodPost, "/signup", func(r *resty.Request) {
		r.SetBody(profile).SetResult(&out)
	})
	if err != nil {
		return "", err
	}
	if out.UserID == "" {
		return "", fmt.Errorf("signup response is missing user_id")
	}
	return out.UserID, nil
}

func (c *Client) CreateSession(ctx context.Context, userID models.ID, title string) (*models.Session, error) {
	var out models.Session
	err := c.do(ctx, resty.MethodPost, "/sessions", func(r *resty.Request) {
		r.SetBody(createSessionRequest{UserID: userID, SessionTitle: title}).SetResult(&out)
	})
	if err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("create session response is missing session_id")
	}
	return &out, nil
}

func (c *Client) ListSessions(ctx context.Context, userID models.ID) ([]models.Session, error) {
	var out []models.Session
	err := c.do(ctx, resty.MethodGet, "/sessions", func(r *resty.Request) {
		r.SetQueryParam("user_id", userID.String()).SetResult(&out)
	})
	return out, err
}

func (c *Client) RenameSession(ctx context.Context, id models.ID, title string) error {
	return c.do(ctx, resty.MethodPatch, "/sessions/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id.String()).SetBody(renameSessionRequest{SessionTitle: title})
	})
}

func (c *Client) DeleteSession(ctx context.Context, id models.ID) error {
	return c.do(ctx, resty.MethodDelete, "/sessions/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id.String())
	})
}

func (c *Client) Messages(ctx context.Context, id models.ID) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	err := c.do(ctx, resty.MethodGet, "/sessions/{id}/messages", func(r *resty.Request) {
		r.SetPathParam("id", id.String()).SetResult(&out)
	})
	return out, err
}

func (c *Client) Sequence(ctx context.Context, id models.ID) ([]models.SequenceStep, error) {
	var out []models.SequenceStep
	err := c.do(ctx, resty.MethodGet, "/sequence/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id.String()).SetResult(&out)
	})
	return out, err
}
