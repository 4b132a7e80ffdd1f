package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/sirupsen/logrus"

	"seeker/internal/chat"
	"seeker/internal/models"
)

const (
	MaxChatWidth       = 100
	CompactWidthThresh = 100 // Width below which the workspace panel is toggled instead of shown
	WorkspaceMinWidth  = 36

	SidebarPageSize = 12
)

var ModalWidth = 60

// ExamplePrompts are offered while the conversation is empty.
var ExamplePrompts = []string{
	"Find VPs of Engineering at Series B fintech startups in New York",
	"Look for senior product designers who have worked at developer tool companies",
	"Write a 3-step outreach sequence for a Head of Data candidate",
	"Find founders in Berlin who previously exited a SaaS company",
}

type ErrMsg error

// StateMsg carries a controller snapshot into the program loop.
type StateMsg struct{ State chat.State }

type PushStatusMsg struct{ Err error }

// Controller is the part of chat.Controller the UI drives.
type Controller interface {
	Snapshot() chat.State
	SendMessage(ctx context.Context, text string) error
	SwitchSession(ctx context.Context, id models.ID)
	NewSession(ctx context.Context) (*models.Session, error)
	RefreshSessions(ctx context.Context)
	RenameSession(ctx context.Context, id models.ID, title string) error
	DeleteSession(ctx context.Context, id models.ID) error
}

// PushOpener opens the push channel once the program is running.
type PushOpener interface {
	Open(ctx context.Context) error
}

type Model struct {
	Ctx        context.Context
	Controller Controller
	Push       PushOpener
	Logger     *logrus.Logger
	Program    *tea.Program

	State chat.State

	Viewport    viewport.Model
	Workspace   viewport.Model
	TextInput   textarea.Model
	RenameInput textinput.Model
	Spinner     spinner.Model
	Renderer    *glamour.TermRenderer

	WindowWidth  int
	WindowHeight int
	Notice       string
	PushErr      error
	PushReady    bool

	ShowWorkspace bool // compact layouts only
	ExampleIdx    int

	SidebarOpen   bool
	SidebarIdx    int
	SidebarPage   int
	Renaming      bool
	ConfirmDelete bool
	ShortcutsOpen bool

	renderCache map[string]string
}
