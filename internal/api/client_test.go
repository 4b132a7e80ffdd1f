package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seeker/internal/logging"
	"seeker/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, logging.Discard())
}

func TestChat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["message"])
		assert.Equal(t, "12", body["session_id"])

		writeJSON(w, http.StatusOK, map[string]any{
			"response": "Here is your sequence",
			"sequence": []map[string]any{{"step_number": 1, "content": "Connect on LinkedIn"}},
		})
	})

	resp, err := client.Chat(context.Background(), "12", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Here is your sequence", resp.Response)
	assert.True(t, resp.HasSequence())
	assert.Equal(t, []models.SequenceStep{{StepNumber: 1, Content: "Connect on LinkedIn"}}, resp.Sequence)
}

func TestChat_NoSequence(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"response": "plain"})
	})

	resp, err := client.Chat(context.Background(), "1", "hi")
	require.NoError(t, err)
	assert.False(t, resp.HasSequence())
}

func TestErrorIncludesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error": "model overloaded"}`)
	})

	_, err := client.Chat(context.Background(), "1", "hi")
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, 50*time.Millisecond, logging.Discard())

	_, err := client.Chat(context.Background(), "1", "hi")
	assert.Error(t, err)
}

func TestSignup(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/signup", r.URL.Path)
		var p models.Profile
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "Jane", p.Name)
		writeJSON(w, http.StatusOK, map[string]any{"user_id": 7})
	})

	id, err := client.Signup(context.Background(), models.Profile{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("7"), id)
}

func TestSignup_MissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	_, err := client.Signup(context.Background(), models.Profile{})
	assert.Error(t, err)
}

func TestSessions(t *testing.T) {
	var renamed, deleted bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/sessions":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "New Chat", body["session_title"])
			writeJSON(w, http.StatusCreated, map[string]any{"session_id": 3, "session_title": "New Chat", "created_at": "2025-01-01"})
		case r.Method == http.MethodGet && r.URL.Path == "/sessions":
			assert.Equal(t, "7", r.URL.Query().Get("user_id"))
			writeJSON(w, http.StatusOK, []map[string]any{
				{"session_id": "3", "session_title": "New Chat"},
				{"session_id": "2", "session_title": "Recruiters"},
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/sessions/3":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Renamed", body["session_title"])
			renamed = true
			writeJSON(w, http.StatusOK, map[string]any{})
		case r.Method == http.MethodDelete && r.URL.Path == "/sessions/3":
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/sessions/3/messages":
			writeJSON(w, http.StatusOK, []map[string]any{
				{"sender": "user", "content": "hi"},
				{"sender": "ai", "content": "hello", "timestamp": "2025-01-01T10:00:00Z"},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/sequence/3":
			writeJSON(w, http.StatusOK, []map[string]any{{"step_number": 1, "content": "Intro"}})
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	s, err := client.CreateSession(ctx, "7", "New Chat")
	require.NoError(t, err)
	assert.Equal(t, models.ID("3"), s.ID)

	list, err := client.ListSessions(ctx, "7")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Recruiters", list[1].Title)

	require.NoError(t, client.RenameSession(ctx, "3", "Renamed"))
	assert.True(t, renamed)

	msgs, err := client.Messages(ctx, "3")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.SenderAssistant, msgs[1].Sender)
	require.NotNil(t, msgs[1].Timestamp)

	seq, err := client.Sequence(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, []models.SequenceStep{{StepNumber: 1, Content: "Intro"}}, seq)

	require.NoError(t, client.DeleteSession(ctx, "3"))
	assert.True(t, deleted)

	_, err = client.Messages(ctx, "404")
	var apiErr *Error
	assert.ErrorAs(t, err, &apiErr)
}
