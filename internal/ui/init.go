package ui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"seeker/internal/chat"
	"seeker/internal/styles"
)

func InitialModel(ctx context.Context, ctrl Controller, push PushOpener, logger *logrus.Logger) Model {
	ti := textarea.New()
	ti.Placeholder = "Ask Helix to find people or draft a sequence..."
	ti.Prompt = "❯ "
	ti.ShowLineNumbers = false
	ti.CharLimit = 0
	ti.MaxHeight = 6
	ti.SetHeight(2)
	ti.SetWidth(80)
	ti.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	ti.BlurredStyle.Prompt = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	ti.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(styles.HintColor)
	ti.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(styles.HintColor)
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ti.Focus()

	ri := textinput.New()
	ri.Placeholder = "Session title"
	ri.CharLimit = 120
	ri.Prompt = "✎ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Secondary)

	return Model{
		Ctx:         ctx,
		Controller:  ctrl,
		Push:        push,
		Logger:      logger,
		State:       ctrl.Snapshot(),
		TextInput:   ti,
		RenameInput: ri,
		Spinner:     sp,
		Viewport:    viewport.New(60, 15),
		Workspace:   viewport.New(40, 15),
		renderCache: map[string]string{},
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.TextInput.Cursor.BlinkCmd(),
		m.Spinner.Tick,
		m.refreshSessions(),
		m.openPush(),
	)
}

// Sink forwards controller snapshots into a running program. Snapshots
// produced before the program is attached are dropped; the model reads a
// fresh snapshot on start.
type Sink struct {
	mu sync.Mutex
	p  *tea.Program
}

func (s *Sink) Notify(st chat.State) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(StateMsg{State: st})
	}
}

func (s *Sink) attach(p *tea.Program) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

func NewProgram(m *Model, sink *Sink) *tea.Program {
	styles.InitTheme()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.Ctx))
	m.Program = p
	if sink != nil {
		sink.attach(p)
	}
	return p
}
