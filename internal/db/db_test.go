package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seeker/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := OpenSeekerDB(filepath.Join(t.TempDir(), "nested", "seeker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestIdentity(t *testing.T) {
	conn := openTestDB(t)

	_, err := GetUserID(conn)
	assert.ErrorIs(t, err, ErrNoIdentity)

	require.NoError(t, SaveUserID(conn, "7", 100))
	id, err := GetUserID(conn)
	require.NoError(t, err)
	assert.Equal(t, models.ID("7"), id)

	require.NoError(t, SaveUserID(conn, "8", 200))
	id, err = GetUserID(conn)
	require.NoError(t, err)
	assert.Equal(t, models.ID("8"), id)

	require.NoError(t, ClearUserID(conn))
	_, err = GetUserID(conn)
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestSessionCache(t *testing.T) {
	conn := openTestDB(t)

	sessions := []models.Session{
		{ID: "3", Title: "Newest", CreatedAt: "2025-02-01"},
		{ID: "1", Title: "Oldest", CreatedAt: "2025-01-01"},
	}
	require.NoError(t, ReplaceSessions(conn, "7", sessions, 100))
	require.NoError(t, ReplaceSessions(conn, "9", []models.Session{{ID: "50", Title: "Other user"}}, 100))

	got, err := GetCachedSessions(conn, "7")
	require.NoError(t, err)
	assert.Equal(t, sessions, got)

	require.NoError(t, UpdateCachedSessionTitle(conn, "1", "Renamed"))
	require.NoError(t, DeleteCachedSession(conn, "3"))

	got, err = GetCachedSessions(conn, "7")
	require.NoError(t, err)
	assert.Equal(t, []models.Session{{ID: "1", Title: "Renamed", CreatedAt: "2025-01-01"}}, got)

	require.NoError(t, ReplaceSessions(conn, "7", nil, 200))
	got, err = GetCachedSessions(conn, "7")
	require.NoError(t, err)
	assert.Empty(t, got)

	other, err := GetCachedSessions(conn, "9")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestCache(t *testing.T) {
	conn := openTestDB(t)
	cache := NewCache(conn)
	cache.Now = func() time.Time { return time.Unix(1700000000, 0) }

	require.NoError(t, cache.ReplaceSessions("7", []models.Session{{ID: "1", Title: "New Chat"}, {ID: "2", Title: "Berlin"}}))
	require.NoError(t, cache.UpdateTitle("1", "Munich"))
	require.NoError(t, cache.Delete("2"))

	got, err := cache.Sessions("7")
	require.NoError(t, err)
	assert.Equal(t, []models.Session{{ID: "1", Title: "Munich"}}, got)

	var cachedAt int64
	require.NoError(t, conn.QueryRow("SELECT cached_at FROM sessions WHERE session_id = '1'").Scan(&cachedAt))
	assert.Equal(t, int64(1700000000), cachedAt)
}
