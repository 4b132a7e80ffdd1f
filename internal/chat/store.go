package chat

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"seeker/internal/api"
	"seeker/internal/models"
)

const DefaultSessionTitle = "New Chat"

var ErrNoIdentity = errors.New("no user identity; register first")

// Backend is the part of the HTTP API the chat layer depends on.
type Backend interface {
	Chat(ctx context.Context, sessionID models.ID, message string) (*api.ChatResponse, error)
	CreateSession(ctx context.Context, userID models.ID, title string) (*models.Session, error)
	ListSessions(ctx context.Context, userID models.ID) ([]models.Session, error)
	RenameSession(ctx context.Context, id models.ID, title string) error
	DeleteSession(ctx context.Context, id models.ID) error
	Messages(ctx context.Context, id models.ID) ([]models.ChatMessage, error)
	Sequence(ctx context.Context, id models.ID) ([]models.SequenceStep, error)
}

// SessionCache mirrors the session list locally. Failures are logged only.
type SessionCache interface {
	ReplaceSessions(userID models.ID, sessions []models.Session) error
	UpdateTitle(id models.ID, title string) error
	Delete(id models.ID) error
}

// Store fetches session data from the backend. It never touches controller
// state; results are handed back for the controller to apply.
type Store struct {
	backend Backend
	userID  models.ID
	cache   SessionCache
	logger  *logrus.Logger
}

func NewStore(backend Backend, userID models.ID, cache SessionCache, logger *logrus.Logger) *Store {
	return &Store{backend: backend, userID: userID, cache: cache, logger: logger}
}

func (s *Store) UserID() models.ID { return s.userID }

// Load fetches the history and sequence of a session. Either fetch failing
// is logged and leaves that part empty.
func (s *Store) Load(ctx context.Context, id models.ID) ([]models.ChatMessage, []models.SequenceStep) {
	log := s.logger.WithField("session_id", id)

	messages, err := s.backend.Messages(ctx, id)
	if err != nil {
		log.WithError(err).Error("fetch messages failed")
		messages = nil
	}
	sequence, err := s.backend.Sequence(ctx, id)
	if err != nil {
		log.WithError(err).Error("fetch sequence failed")
		sequence = nil
	}
	return messages, sequence
}

func (s *Store) Create(ctx context.Context, title string) (*models.Session, error) {
	if s.userID == "" {
		return nil, ErrNoIdentity
	}
	if title == "" {
		title = DefaultSessionTitle
	}
	return s.backend.CreateSession(ctx, s.userID, title)
}

func (s *Store) List(ctx context.Context) ([]models.Session, error) {
	if s.userID == "" {
		return nil, ErrNoIdentity
	}
	sessions, err := s.backend.ListSessions(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.ReplaceSessions(s.userID, sessions); err != nil {
			s.logger.WithError(err).Warn("session cache write failed")
		}
	}
	return sessions, nil
}

func (s *Store) Rename(ctx context.Context, id models.ID, title string) error {
	if err := s.backend.RenameSession(ctx, id, title); err != nil {
		return err
	}
	s.cacheTitle(id, title)
	return nil
}

func (s *Store) Delete(ctx context.Context, id models.ID) error {
	if err := s.backend.DeleteSession(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(id); err != nil {
			s.logger.WithError(err).WithField("session_id", id).Warn("session cache delete failed")
		}
	}
	return nil
}

func (s *Store) cacheTitle(id models.ID, title string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.UpdateTitle(id, title); err != nil {
		s.logger.WithError(err).WithField("session_id", id).Warn("session cache update failed")
	}
}
