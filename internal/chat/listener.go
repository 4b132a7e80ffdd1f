package chat

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"seeker/internal/models"
	"seeker/internal/realtime"
)

// PushChannel is the subscribe side of the realtime connection.
type PushChannel interface {
	Subscribe(event string, h realtime.Handler) func()
}

// Listener routes push events into the controller. Sequence updates are only
// accepted for the session that was active when the listener was bound.
type Listener struct {
	push       PushChannel
	controller *Controller
	logger     *logrus.Logger

	mu            sync.Mutex
	stopTitles    func()
	stopSequences func()
	bound         models.ID
	hooked        bool
}

// rebind follows session changes while the listener is running.
func (l *Listener) rebind(id models.ID) {
	l.mu.Lock()
	running := l.stopTitles != nil
	l.mu.Unlock()
	if running {
		l.Bind(id)
	}
}

func NewListener(push PushChannel, controller *Controller, logger *logrus.Logger) *Listener {
	return &Listener{push: push, controller: controller, logger: logger}
}

// Start subscribes to title updates and follows the controller's active
// session for sequence updates.
func (l *Listener) Start() {
	l.mu.Lock()
	if l.stopTitles != nil {
		l.mu.Unlock()
		return
	}
	l.stopTitles = l.push.Subscribe(realtime.EventSessionUpdated, l.onSessionUpdated)
	first := !l.hooked
	l.hooked = true
	l.mu.Unlock()

	if first {
		l.controller.OnSessionChange(l.rebind)
	}
	l.Bind(l.controller.Snapshot().SessionID)
}

// Bind replaces the sequence subscription with one filtered on id. An empty
// id leaves no sequence subscription.
func (l *Listener) Bind(id models.ID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopSequences != nil {
		l.stopSequences()
		l.stopSequences = nil
	}
	l.bound = id
	if id == "" {
		return
	}
	l.stopSequences = l.push.Subscribe(realtime.EventSequenceUpdated, func(data json.RawMessage) {
		var u realtime.SequenceUpdate
		if err := json.Unmarshal(data, &u); err != nil {
			l.logger.WithError(err).Warn("malformed sequence_updated payload")
			return
		}
		if u.SessionID != id {
			return
		}
		l.controller.ApplySequenceUpdate(u.SessionID, u.Sequence)
	})
}

// Bound reports the session the sequence subscription is filtered on.
func (l *Listener) Bound() models.ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bound
}

func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopSequences != nil {
		l.stopSequences()
		l.stopSequences = nil
	}
	if l.stopTitles != nil {
		l.stopTitles()
		l.stopTitles = nil
	}
	l.bound = ""
}

func (l *Listener) onSessionUpdated(data json.RawMessage) {
	var u realtime.SessionUpdate
	if err := json.Unmarshal(data, &u); err != nil {
		l.logger.WithError(err).Warn("malformed session_updated payload")
		return
	}
	if u.SessionID == "" {
		return
	}
	l.controller.ApplyTitleUpdate(u.SessionID, u.SessionTitle)
}
