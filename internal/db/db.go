package db

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"seeker/internal/models"
	_ "modernc.org/sqlite"
)

var ErrNoIdentity = errors.New("no user_id stored; run `seeker signup` first")

func OpenSeekerDB(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS identity (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			user_id TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			cached_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, position);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

func GetUserID(db *sql.DB) (models.ID, error) {
	var id string
	err := db.QueryRow("SELECT user_id FROM identity WHERE id = 1").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoIdentity
	}
	if err != nil {
		return "", err
	}
	return models.ID(id), nil
}

func SaveUserID(db *sql.DB, userID models.ID, nowUnix int64) error {
	_, err := db.Exec(
		`INSERT INTO identity(id, user_id, created_at) VALUES(1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, created_at = excluded.created_at`,
		userID.String(),
		nowUnix,
	)
	return err
}

func ClearUserID(db *sql.DB) error {
	_, err := db.Exec("DELETE FROM identity")
	return err
}

// ReplaceSessions stores the backend's session list for userID, keeping its order.
func ReplaceSessions(db *sql.DB, userID models.ID, sessions []models.Session, nowUnix int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM sessions WHERE user_id = ?", userID.String()); err != nil {
		return err
	}
	for i, s := range sessions {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO sessions(session_id, user_id, title, created_at, position, cached_at) VALUES(?, ?, ?, ?, ?, ?)",
			s.ID.String(),
			userID.String(),
			s.Title,
			s.CreatedAt,
			i,
			nowUnix,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func GetCachedSessions(db *sql.DB, userID models.ID) ([]models.Session, error) {
	rows, err := db.Query(
		"SELECT session_id, title, created_at FROM sessions WHERE user_id = ? ORDER BY position ASC",
		userID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		var s models.Session
		var id string
		if err := rows.Scan(&id, &s.Title, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.ID = models.ID(id)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func UpdateCachedSessionTitle(db *sql.DB, sessionID models.ID, title string) error {
	_, err := db.Exec(
		"UPDATE sessions SET title = ? WHERE session_id = ?",
		title,
		sessionID.String(),
	)
	return err
}

func DeleteCachedSession(db *sql.DB, sessionID models.ID) error {
	_, err := db.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID.String())
	return err
}
