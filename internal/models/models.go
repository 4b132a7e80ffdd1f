package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Sender identifies who authored a chat message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// UnmarshalJSON accepts the backend's "ai" spelling for assistant messages.
// Anything other than "user" is treated as the assistant.
func (s *Sender) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if strings.EqualFold(strings.TrimSpace(raw), "user") {
		*s = SenderUser
	} else {
		*s = SenderAssistant
	}
	return nil
}

// ID is an opaque identifier the backend may encode as a string or a number.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type ChatMessage struct {
	Sender    Sender     `json:"sender" yaml:"sender"`
	Content   string     `json:"content" yaml:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// SameAs reports whether two messages carry the same sender and content.
func (m ChatMessage) SameAs(other ChatMessage) bool {
	return m.Sender == other.Sender && m.Content == other.Content
}

type SequenceStep struct {
	StepNumber int    `json:"step_number" yaml:"step_number"`
	Content    string `json:"content" yaml:"content"`
}

// HasContent reports whether any step carries non-empty content.
func HasContent(steps []SequenceStep) bool {
	for _, s := range steps {
		if strings.TrimSpace(s.Content) != "" {
			return true
		}
	}
	return false
}

// StatusState is the phase of the cosmetic loading indicator
type StatusState string

const (
	StatusNone       StatusState = ""
	StatusThinking   StatusState = "thinking"
	StatusGenerating StatusState = "generating"
	StatusProcessing StatusState = "processing"
)

type LoadingStatus struct {
	State StatusState
	Step  string
}

func (s LoadingStatus) Active() bool { return s.State != StatusNone }

type Session struct {
	ID        ID     `json:"session_id" yaml:"session_id"`
	Title     string `json:"session_title" yaml:"session_title"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// SearchResult is derived from assistant text and never persisted.
type SearchResult struct {
	Name    string
	Source  string
	Snippet string
	Link    string
}

// Listing is an assistant message split into the parts shown around search results.
type Listing struct {
	Intro    string
	Results  []SearchResult
	FollowUp string
}

// Profile is the intake form submitted on signup
type Profile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
}
