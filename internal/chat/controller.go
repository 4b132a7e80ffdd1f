package chat

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"seeker/internal/models"
	"seeker/internal/realtime"
	"seeker/internal/status"
)

const FailureMessage = "Sorry, something went wrong!"

var (
	ErrEmptyMessage  = errors.New("message is empty")
	ErrCreateSession = errors.New("could not create session")
)

// State is a copy of everything the views render. Revision increases with
// every change so consumers can drop snapshots that arrive out of order.
type State struct {
	Revision  uint64
	SessionID models.ID
	Messages  []models.ChatMessage
	Sequence  []models.SequenceStep
	Status    models.LoadingStatus
	Sessions  []models.Session
}

// Emitter publishes events on the push channel.
type Emitter interface {
	Emit(event string, data any) error
}

type Options struct {
	Clock  status.Clock
	Notify func(State)
	Emit   Emitter
	Now    func() time.Time
}

// Controller owns the conversation state. Every other component requests
// changes through its methods.
type Controller struct {
	store   *Store
	backend Backend
	logger  *logrus.Logger
	clock   status.Clock
	notify  func(State)
	emitter Emitter
	now     func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64
	hooks      []func(models.ID)

	// sendGate serializes sends within one generation and is replaced on
	// every activation.
	sendGate *sync.Mutex
}

func NewController(store *Store, logger *logrus.Logger, opts Options) *Controller {
	c := &Controller{
		store:    store,
		backend:  store.backend,
		logger:   logger,
		clock:    opts.Clock,
		notify:   opts.Notify,
		emitter:  opts.Emit,
		now:      opts.Now,
		sendGate: &sync.Mutex{},
	}
	if c.notify == nil {
		c.notify = func(State) {}
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	return State{
		Revision:  c.state.Revision,
		SessionID: c.state.SessionID,
		Messages:  slices.Clone(c.state.Messages),
		Sequence:  slices.Clone(c.state.Sequence),
		Status:    c.state.Status,
		Sessions:  slices.Clone(c.state.Sessions),
	}
}

// update applies fn under the lock and publishes the result.
func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	c.state.Revision++
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// updateIf applies fn only while gen is still the current generation.
func (c *Controller) updateIf(gen uint64, fn func(s *State)) bool {
	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		return false
	}
	fn(&c.state)
	c.state.Revision++
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return true
}

func (c *Controller) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation == gen
}

// sequencerFor returns a status sequencer whose updates only land while gen
// is current.
func (c *Controller) sequencerFor(gen uint64) *status.Sequencer {
	return status.NewSequencer(c.clock, func(st models.LoadingStatus) {
		c.updateIf(gen, func(s *State) { s.Status = st })
	})
}

// OnSessionChange registers fn to run whenever the active session changes.
func (c *Controller) OnSessionChange(fn func(models.ID)) {
	c.mu.Lock()
	c.hooks = append(c.hooks, fn)
	c.mu.Unlock()
}

func (c *Controller) runHooks(id models.ID) {
	c.mu.Lock()
	hooks := slices.Clone(c.hooks)
	c.mu.Unlock()
	for _, h := range hooks {
		h(id)
	}
}

// activate makes id the active session with empty history and an idle
// status, and returns the new generation. Older in-flight work is discarded
// on resolution.
func (c *Controller) activate(id models.ID, extra func(s *State)) uint64 {
	var gen uint64
	c.update(func(s *State) {
		c.generation++
		gen = c.generation
		c.sendGate = &sync.Mutex{}
		s.SessionID = id
		s.Messages = nil
		s.Sequence = nil
		s.Status = models.LoadingStatus{}
		if extra != nil {
			extra(s)
		}
	})
	c.runHooks(id)
	return gen
}

// SwitchSession replaces history and sequence with a fresh fetch for id.
// An empty id shows the sessionless view.
func (c *Controller) SwitchSession(ctx context.Context, id models.ID) {
	gen := c.activate(id, nil)
	if id == "" {
		return
	}

	messages, sequence := c.store.Load(ctx, id)
	if !c.updateIf(gen, func(s *State) {
		s.Messages = messages
		s.Sequence = sequence
	}) {
		c.logger.WithField("session_id", id).Debug("discarding stale session fetch")
	}
}

// acquireSend takes the send gate of the current generation and returns it
// with the session and generation it guards.
func (c *Controller) acquireSend() (*sync.Mutex, models.ID, uint64) {
	for {
		c.mu.Lock()
		gate := c.sendGate
		c.mu.Unlock()

		gate.Lock()
		c.mu.Lock()
		if c.sendGate == gate {
			id, gen := c.state.SessionID, c.generation
			c.mu.Unlock()
			return gate, id, gen
		}
		c.mu.Unlock()
		gate.Unlock()
	}
}

// SendMessage submits one user message. Sends within a session are
// serialized; a reply whose session is no longer active is dropped.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	gate, sessionID, gen := c.acquireSend()
	defer func() { gate.Unlock() }()

	if sessionID == "" {
		created, err := c.store.Create(ctx, DefaultSessionTitle)
		if err != nil {
			c.logger.WithError(err).Error("create session failed")
			return fmt.Errorf("%w: %w", ErrCreateSession, err)
		}
		sessionID = created.ID
		prev := gate
		gen = c.activate(sessionID, func(s *State) {
			s.Sessions = append([]models.Session{*created}, s.Sessions...)
			gate = c.sendGate
			gate.Lock()
		})
		prev.Unlock()
	}

	log := c.logger.WithField("session_id", sessionID)
	seq := c.sequencerFor(gen)

	now := c.now()
	if !c.updateIf(gen, func(s *State) {
		s.Messages = append(s.Messages, models.ChatMessage{Sender: models.SenderUser, Content: text, Timestamp: &now})
	}) {
		log.Debug("session changed before submit")
		return nil
	}
	seq.Think()

	resp, err := c.backend.Chat(ctx, sessionID, text)
	if err != nil {
		log.WithError(err).Error("chat request failed")
		c.fail(gen)
		return err
	}

	if !resp.HasSequence() {
		c.finish(gen, resp.Response, nil, false)
		return nil
	}

	if !c.current(gen) {
		log.Debug("discarding reply for inactive session")
		return nil
	}
	if err := seq.Play(ctx); err != nil {
		log.WithError(err).Error("sequence phases interrupted")
		c.fail(gen)
		return err
	}
	c.finish(gen, resp.Response, resp.Sequence, true)
	return nil
}

// finish applies a reply and returns status to none in one update.
func (c *Controller) finish(gen uint64, reply string, sequence []models.SequenceStep, replace bool) {
	applied := c.updateIf(gen, func(s *State) {
		if replace {
			s.Sequence = slices.Clone(sequence)
		}
		s.Messages = c.appendAssistant(s.Messages, reply)
		s.Status = models.LoadingStatus{}
	})
	if !applied {
		c.logger.Debug("discarding reply for inactive session")
	}
}

func (c *Controller) fail(gen uint64) {
	if !c.updateIf(gen, func(s *State) {
		s.Messages = c.appendAssistant(s.Messages, FailureMessage)
		s.Status = models.LoadingStatus{}
	}) {
		c.logger.Debug("discarding failure for inactive session")
	}
}

// appendAssistant skips the append when the last message already carries
// the same content from the assistant.
func (c *Controller) appendAssistant(messages []models.ChatMessage, content string) []models.ChatMessage {
	now := c.now()
	msg := models.ChatMessage{Sender: models.SenderAssistant, Content: content, Timestamp: &now}
	if n := len(messages); n > 0 && messages[n-1].SameAs(msg) {
		return messages
	}
	return append(messages, msg)
}

// ApplySequenceUpdate replaces the sequence if id is the active session.
func (c *Controller) ApplySequenceUpdate(id models.ID, sequence []models.SequenceStep) bool {
	c.mu.Lock()
	gen, active := c.generation, c.state.SessionID
	c.mu.Unlock()
	if id == "" || id != active {
		return false
	}
	return c.updateIf(gen, func(s *State) {
		s.Sequence = slices.Clone(sequence)
	})
}

// ApplyTitleUpdate renames the matching entry of the session list only.
func (c *Controller) ApplyTitleUpdate(id models.ID, title string) {
	c.update(func(s *State) {
		for i := range s.Sessions {
			if s.Sessions[i].ID == id {
				s.Sessions[i].Title = title
			}
		}
	})
	c.store.cacheTitle(id, title)
}

// RefreshSessions reloads the session list. Failures keep the previous list.
func (c *Controller) RefreshSessions(ctx context.Context) {
	sessions, err := c.store.List(ctx)
	if err != nil {
		c.logger.WithError(err).Error("fetch sessions failed")
		return
	}
	c.update(func(s *State) { s.Sessions = sessions })
}

// NewSession creates a session, puts it at the top of the list and selects it.
func (c *Controller) NewSession(ctx context.Context) (*models.Session, error) {
	created, err := c.store.Create(ctx, DefaultSessionTitle)
	if err != nil {
		c.logger.WithError(err).Error("create session failed")
		return nil, err
	}
	c.activate(created.ID, func(s *State) {
		s.Sessions = append([]models.Session{*created}, s.Sessions...)
	})
	return created, nil
}

// RenameSession persists a new title, applies it locally and fans it out to
// other clients.
func (c *Controller) RenameSession(ctx context.Context, id models.ID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("title is empty")
	}
	if err := c.store.Rename(ctx, id, title); err != nil {
		c.logger.WithError(err).WithField("session_id", id).Error("rename session failed")
		return err
	}
	c.ApplyTitleUpdate(id, title)

	if c.emitter != nil {
		if err := c.emitter.Emit(realtime.EventSessionUpdated, realtime.SessionUpdate{SessionID: id, SessionTitle: title}); err != nil {
			c.logger.WithError(err).WithField("session_id", id).Warn("session title broadcast failed")
		}
	}
	return nil
}

// DeleteSession removes a session. Deleting the active one falls back to the
// sessionless view.
func (c *Controller) DeleteSession(ctx context.Context, id models.ID) error {
	if err := c.store.Delete(ctx, id); err != nil {
		c.logger.WithError(err).WithField("session_id", id).Error("delete session failed")
		return err
	}

	c.mu.Lock()
	wasActive := c.state.SessionID == id
	c.mu.Unlock()

	remove := func(s *State) {
		s.Sessions = slices.DeleteFunc(s.Sessions, func(x models.Session) bool { return x.ID == id })
	}
	if wasActive {
		c.activate("", remove)
		return nil
	}
	c.update(remove)
	return nil
}
