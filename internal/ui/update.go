package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"seeker/internal/styles"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.Spinner, spCmd = m.Spinner.Update(msg)
		if m.State.Status.Active() {
			m.UpdateViewport()
		}
		return m, spCmd

	case StateMsg:
		if msg.State.Revision <= m.State.Revision {
			return m, nil
		}
		m.State = msg.State
		if m.SidebarIdx >= len(m.State.Sessions) {
			m.SidebarIdx = max(len(m.State.Sessions)-1, 0)
		}
		m.UpdateViewport()
		m.UpdateWorkspace()
		return m, nil

	case ErrMsg:
		m.Notice = msg.Error()
		if m.Logger != nil {
			m.Logger.WithError(msg).Debug("shown to user")
		}
		return m, nil

	case PushStatusMsg:
		m.PushErr = msg.Err
		m.PushReady = msg.Err == nil
		if msg.Err != nil && m.Logger != nil {
			m.Logger.WithError(msg.Err).Warn("push channel unavailable, live updates disabled")
		}
		return m, nil

	case tea.KeyMsg:
		if m.SidebarOpen {
			return m.updateSidebar(msg)
		}

		if m.ShortcutsOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "enter", "?", "ctrl+s":
				m.ShortcutsOpen = false
			}
			return m, nil
		}

		if isNewlineShortcut(msg) {
			m.TextInput.InsertString("\n")
			m.updateInputLayout()
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlN:
			m.Notice = ""
			return m, m.newSession()

		case tea.KeyCtrlH, tea.KeyCtrlO:
			m.SidebarOpen = true
			m.ShortcutsOpen = false
			m.SidebarIdx = m.activeSessionIndex()
			return m, m.refreshSessions()

		case tea.KeyCtrlS:
			m.ShortcutsOpen = true
			return m, nil

		case tea.KeyCtrlW:
			m.ShowWorkspace = !m.ShowWorkspace
			m.UpdateWorkspace()
			return m, nil

		case tea.KeyTab:
			if len(m.State.Messages) == 0 && m.isExampleOrEmpty() {
				m.TextInput.SetValue(ExamplePrompts[m.ExampleIdx])
				m.ExampleIdx = (m.ExampleIdx + 1) % len(ExamplePrompts)
				m.updateInputLayout()
				m.UpdateViewport()
			}
			return m, nil

		case tea.KeyEnter:
			if m.State.Status.Active() {
				return m, nil
			}
			input := strings.TrimSpace(m.TextInput.Value())
			if input == "" {
				return m, nil
			}
			m.TextInput.Reset()
			m.updateInputLayout()
			m.Notice = ""
			return m, tea.Batch(m.sendMessage(input), m.Spinner.Tick)
		}

	case tea.WindowSizeMsg:
		m.WindowWidth = msg.Width
		m.WindowHeight = msg.Height

		ModalWidth = min(max(msg.Width-10, 30), 60)
		styles.ContentWidth = ModalWidth - 6
		m.RenameInput.Width = styles.ContentWidth - 4

		chatWidth, workspaceWidth, _ := m.layout()
		m.Viewport.Width = chatWidth - 2
		m.Workspace.Width = workspaceWidth - 2

		m.updateInputLayout()
		glamourStyle := "dark"
		if !lipgloss.HasDarkBackground() {
			glamourStyle = "light"
		}
		m.Renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath(glamourStyle),
			glamour.WithWordWrap(chatWidth-6),
		)
		clear(m.renderCache)
		m.UpdateViewport()
		m.UpdateWorkspace()
		return m, nil
	}

	m.TextInput, tiCmd = m.TextInput.Update(msg)
	m.updateInputLayout()

	// Filter out terminal background color queries and cursor reference codes that leak into the input
	val := m.TextInput.Value()
	if strings.Contains(val, "]11;rgb:") || strings.Contains(val, "1;rgb:") || strings.Contains(val, "[1;1R") {
		m.TextInput.Reset()
	}

	m.Viewport, vpCmd = m.Viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m *Model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sessions := m.State.Sessions

	if m.Renaming {
		switch msg.String() {
		case "esc":
			m.Renaming = false
			m.RenameInput.Blur()
			return m, nil
		case "enter":
			m.Renaming = false
			m.RenameInput.Blur()
			title := strings.TrimSpace(m.RenameInput.Value())
			if title == "" || m.SidebarIdx >= len(sessions) {
				return m, nil
			}
			return m, m.renameSession(sessions[m.SidebarIdx].ID, title)
		}
		var cmd tea.Cmd
		m.RenameInput, cmd = m.RenameInput.Update(msg)
		return m, cmd
	}

	if m.ConfirmDelete {
		m.ConfirmDelete = false
		if msg.String() == "y" && m.SidebarIdx < len(sessions) {
			return m, m.deleteSession(sessions[m.SidebarIdx].ID)
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+h", "ctrl+o":
		m.SidebarOpen = false
	case "up", "k":
		if len(sessions) > 0 {
			m.SidebarIdx = (m.SidebarIdx - 1 + len(sessions)) % len(sessions)
		}
	case "down", "j":
		if len(sessions) > 0 {
			m.SidebarIdx = (m.SidebarIdx + 1) % len(sessions)
		}
	case "enter":
		if m.SidebarIdx < len(sessions) {
			m.SidebarOpen = false
			m.Notice = ""
			return m, m.switchSession(sessions[m.SidebarIdx].ID)
		}
	case "n":
		m.SidebarOpen = false
		return m, m.newSession()
	case "r":
		if m.SidebarIdx < len(sessions) {
			m.Renaming = true
			m.RenameInput.SetValue(sessions[m.SidebarIdx].Title)
			m.RenameInput.CursorEnd()
			return m, m.RenameInput.Focus()
		}
	case "d", "delete":
		if m.SidebarIdx < len(sessions) {
			m.ConfirmDelete = true
		}
	}
	return m, nil
}

func isNewlineShortcut(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "shift+enter", "shift+return", "ctrl+j", "ctrl+enter", "alt+enter":
		return true
	default:
		return false
	}
}

// layout splits the window between chat and workspace. Narrow windows show
// one of the two at a time.
func (m *Model) layout() (chatWidth, workspaceWidth int, wide bool) {
	if m.WindowWidth < CompactWidthThresh {
		return m.WindowWidth - 2, m.WindowWidth - 2, false
	}
	workspaceWidth = max(m.WindowWidth/3, WorkspaceMinWidth)
	chatWidth = min(m.WindowWidth-workspaceWidth-1, MaxChatWidth)
	return chatWidth, workspaceWidth, true
}

func (m *Model) updateInputLayout() {
	if m.WindowWidth == 0 || m.WindowHeight == 0 {
		return
	}

	chatWidth, _, _ := m.layout()
	inputWidth := max(chatWidth-4, 20)
	contentWidth := max(inputWidth-2, 1)

	maxInputHeight := 6
	lineCount := min(max(WrappedLineCount(m.TextInput.Value(), contentWidth), 1), maxInputHeight)

	m.TextInput.MaxHeight = maxInputHeight
	m.TextInput.SetWidth(inputWidth)
	m.TextInput.SetHeight(lineCount)

	inputBoxHeight := m.TextInput.Height() + 2
	reserved := inputBoxHeight + 5
	m.Viewport.Height = max(m.WindowHeight-reserved, 5)
	m.Workspace.Height = max(m.WindowHeight-4, 5)
}

func (m *Model) activeSessionIndex() int {
	for i, s := range m.State.Sessions {
		if s.ID == m.State.SessionID {
			return i
		}
	}
	return 0
}

func (m *Model) isExampleOrEmpty() bool {
	val := strings.TrimSpace(m.TextInput.Value())
	if val == "" {
		return true
	}
	for _, p := range ExamplePrompts {
		if p == val {
			return true
		}
	}
	return false
}
