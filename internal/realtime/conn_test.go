package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seeker/internal/logging"
	"seeker/internal/models"
)

type pushServer struct {
	srv      *httptest.Server
	conns    chan *websocket.Conn
	received chan Envelope
}

func newPushServer(t *testing.T) *pushServer {
	t.Helper()
	ps := &pushServer{
		conns:    make(chan *websocket.Conn, 1),
		received: make(chan Envelope, 8),
	}
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	ps.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ps.conns <- conn
		for {
			var env Envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			ps.received <- env
		}
	}))
	t.Cleanup(ps.srv.Close)
	return ps
}

func (ps *pushServer) url(t *testing.T) string {
	u, err := PushURL(ps.srv.URL, "/ws")
	require.NoError(t, err)
	return u
}

func TestPushURL(t *testing.T) {
	tests := []struct {
		api, path, want string
		wantErr         bool
	}{
		{"http://localhost:5001", "/ws", "ws://localhost:5001/ws", false},
		{"https://api.example.com/base/", "ws", "wss://api.example.com/base/ws", false},
		{"ftp://x", "/ws", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.api, func(t *testing.T) {
			got, err := PushURL(tt.api, tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConn_DispatchAndEmit(t *testing.T) {
	ps := newPushServer(t)
	conn := New(ps.url(t), logging.Discard())

	got := make(chan SequenceUpdate, 1)
	unsubscribe := conn.Subscribe(EventSequenceUpdated, func(data json.RawMessage) {
		var u SequenceUpdate
		if err := json.Unmarshal(data, &u); err == nil {
			got <- u
		}
	})
	defer unsubscribe()

	require.NoError(t, conn.Open(context.Background()))
	defer conn.Close()
	server := <-ps.conns

	require.NoError(t, server.WriteMessage(websocket.TextMessage,
		[]byte(`{"event":"sequence_updated","data":{"session_id":5,"sequence":[{"step_number":1,"content":"Hi"}]}}`)))

	select {
	case u := <-got:
		assert.Equal(t, models.ID("5"), u.SessionID)
		assert.Equal(t, []models.SequenceStep{{StepNumber: 1, Content: "Hi"}}, u.Sequence)
	case <-time.After(2 * time.Second):
		t.Fatal("sequence update not delivered")
	}

	require.NoError(t, conn.Emit(EventSessionUpdated, SessionUpdate{SessionID: "5", SessionTitle: "Renamed"}))
	select {
	case env := <-ps.received:
		assert.Equal(t, EventSessionUpdated, env.Event)
		assert.NotEmpty(t, env.ID)
		var u SessionUpdate
		require.NoError(t, json.Unmarshal(env.Data, &u))
		assert.Equal(t, SessionUpdate{SessionID: "5", SessionTitle: "Renamed"}, u)
	case <-time.After(2 * time.Second):
		t.Fatal("emitted event not received")
	}
}

func TestConn_Unsubscribe(t *testing.T) {
	conn := New("ws://unused", logging.Discard())
	calls := 0
	unsubscribe := conn.Subscribe(EventSessionUpdated, func(json.RawMessage) { calls++ })

	conn.dispatch(Envelope{Event: EventSessionUpdated, Data: json.RawMessage(`{}`)})
	unsubscribe()
	unsubscribe()
	conn.dispatch(Envelope{Event: EventSessionUpdated, Data: json.RawMessage(`{}`)})
	conn.dispatch(Envelope{Event: EventSequenceUpdated, Data: json.RawMessage(`{}`)})

	assert.Equal(t, 1, calls)
}

func TestConn_Lifecycle(t *testing.T) {
	conn := New("ws://unused", logging.Discard())
	assert.ErrorIs(t, conn.Emit(EventSessionUpdated, SessionUpdate{}), ErrNotConnected)

	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())
	assert.ErrorIs(t, conn.Emit(EventSessionUpdated, SessionUpdate{}), ErrClosed)
	assert.ErrorIs(t, conn.Open(context.Background()), ErrClosed)
}

func TestConn_OpenFails(t *testing.T) {
	conn := New("ws://127.0.0.1:1/ws", logging.Discard())
	err := conn.Open(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "dial"))
}
