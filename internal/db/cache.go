package db

import (
	"database/sql"
	"time"

	"seeker/internal/models"
)

// Cache keeps the last fetched session list so it can be shown offline.
type Cache struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewCache(db *sql.DB) *Cache {
	return &Cache{DB: db, Now: time.Now}
}

func (c *Cache) ReplaceSessions(userID models.ID, sessions []models.Session) error {
	return ReplaceSessions(c.DB, userID, sessions, c.Now().Unix())
}

func (c *Cache) Sessions(userID models.ID) ([]models.Session, error) {
	return GetCachedSessions(c.DB, userID)
}

func (c *Cache) UpdateTitle(id models.ID, title string) error {
	return UpdateCachedSessionTitle(c.DB, id, title)
}

func (c *Cache) Delete(id models.ID) error {
	return DeleteCachedSession(c.DB, id)
}
