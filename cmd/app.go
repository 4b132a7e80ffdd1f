package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"seeker/internal/api"
	"seeker/internal/chat"
	"seeker/internal/config"
	"seeker/internal/db"
	"seeker/internal/logging"
	"seeker/internal/models"
)

// app bundles what every command needs: configuration, logger, local
// database and backend client.
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	logs   io.Closer
	db     *sql.DB
	client *api.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	logger, logs, err := logging.New(cfg.LogLevel, verbose, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	conn, err := db.OpenSeekerDB(cfg.DBPath)
	if err != nil {
		_ = logs.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.DBPath, err)
	}

	logger.WithField("api_url", cfg.APIURL).Debug("configuration loaded")

	return &app{
		cfg:    cfg,
		logger: logger,
		logs:   logs,
		db:     conn,
		client: api.NewClient(cfg.APIURL, cfg.RequestTimeout, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Warn("closing database")
	}
	_ = a.logs.Close()
}

// userID returns the stored identity. Without one the user has to register
// before anything else works.
func (a *app) userID() (models.ID, error) {
	id, err := db.GetUserID(a.db)
	if errors.Is(err, db.ErrNoIdentity) {
		return "", fmt.Errorf("%w: run `seeker signup` first", chat.ErrNoIdentity)
	}
	return id, err
}

func (a *app) store() (*chat.Store, error) {
	id, err := a.userID()
	if err != nil {
		return nil, err
	}
	return chat.NewStore(a.client, id, db.NewCache(a.db), a.logger), nil
}
