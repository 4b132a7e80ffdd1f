package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"seeker/internal/models"
	"seeker/internal/status"
	"seeker/internal/styles"
)

func (m *Model) RenderSidebar() string {
	sessions := m.State.Sessions
	title := styles.ModalTitleStyle.Render(fmt.Sprintf("Sessions (%d)", len(sessions)))

	var body string
	if len(sessions) == 0 {
		body = styles.ModalItemStyle.Render(styles.HintStyle.Render("No sessions yet. Press n to start one."))
	} else {
		start := (m.SidebarIdx / SidebarPageSize) * SidebarPageSize
		end := min(start+SidebarPageSize, len(sessions))
		items := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			s := sessions[i]
			isSelected := i == m.SidebarIdx
			cursor := "  "
			if isSelected {
				cursor = "> "
			}
			marker := " "
			if s.ID == m.State.SessionID {
				marker = styles.ActiveSessionStyle.Render("●")
			}
			age := SessionAge(s.CreatedAt)
			name := s.Title
			if name == "" {
				name = "(untitled)"
			}
			available := styles.ContentWidth - 2 - len(cursor) - 2 - lipgloss.Width(age) - 1
			name = TruncateRunes(name, available)

			line := fmt.Sprintf("%s%s %s %s", cursor, marker, name, styles.HintStyle.Render(age))
			if isSelected {
				items = append(items, styles.ModalSelectedStyle.Render(line))
			} else {
				items = append(items, styles.ModalItemStyle.Render(line))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	parts := []string{title, body}
	hintText := "↑/↓: navigate • Enter: open • n: new • r: rename • d: delete • Esc: close"
	switch {
	case m.Renaming:
		parts = append(parts, "", m.RenameInput.View())
		hintText = "Enter: save • Esc: cancel"
	case m.ConfirmDelete && m.SidebarIdx < len(sessions):
		prompt := fmt.Sprintf("Delete %q? y to confirm, any other key to cancel", sessions[m.SidebarIdx].Title)
		parts = append(parts, "", styles.ErrorStyle.Width(styles.ContentWidth).Render(prompt))
		hintText = ""
	}

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render(hintText)

	return lipgloss.JoinVertical(lipgloss.Left, append(parts, hint)...)
}

func (m *Model) RenderShortcutsModal() string {
	title := styles.ModalTitleStyle.Render("Keyboard Shortcuts")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send message"},
		{"Shift+Enter", "New line"},
		{"Tab", "Cycle example prompts (empty chat)"},
		{"Ctrl+N", "New session"},
		{"Ctrl+O", "Sessions (open, rename, delete)"},
		{"Ctrl+W", "Toggle workspace (narrow windows)"},
		{"PgUp/PgDn", "Scroll conversation"},
		{"Ctrl+S", "Shortcuts (this menu)"},
		{"Ctrl+C", "Quit"},
	}

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Secondary).
		Bold(true).
		Width(12)

	var items []string
	for _, s := range shortcuts {
		line := fmt.Sprintf("%s %s", keyStyle.Render(s.key), lipgloss.NewStyle().Foreground(styles.Text).Render(s.desc))
		items = append(items, styles.ModalItemStyle.Render(line))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, items...))
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Esc/Enter: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

// RenderStatus is the badge shown while a reply is pending.
func (m *Model) RenderStatus() string {
	st := m.State.Status
	if !st.Active() {
		return ""
	}
	badge := styles.StatusBadgeStyle.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.StatusColor(st.State)).
		Render(strings.ToUpper(string(st.State)))
	return fmt.Sprintf("%s %s %s %s", m.Spinner.View(), status.Emoji(st.State), badge, status.Describe(st))
}

func (m *Model) RenderBottomBar() string {
	sessionTitle := "New conversation"
	for _, s := range m.State.Sessions {
		if s.ID == m.State.SessionID && s.Title != "" {
			sessionTitle = s.Title
		}
	}
	session := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Padding(0, 1).
		Render(TruncateRunes(sessionTitle, 30))

	live := lipgloss.NewStyle().Foreground(styles.FgSuccess).Render("● live")
	if !m.PushReady {
		live = lipgloss.NewStyle().Foreground(styles.Muted).Render("○ offline")
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, session, "  ", live)
	if m.Notice != "" {
		notice := styles.ErrorStyle.Render(TruncateRunes(m.Notice, max(m.WindowWidth/2, 10)))
		left = lipgloss.JoinHorizontal(lipgloss.Center, left, "  ", notice)
	}

	steps := 0
	for _, s := range m.State.Sequence {
		if strings.TrimSpace(s.Content) != "" {
			steps++
		}
	}
	right := lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().Foreground(styles.Subtle).Render(fmt.Sprintf("%d msgs • %d steps", len(m.State.Messages), steps)),
		"  ",
		lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Render("Help: ^S"),
	)

	spacer := strings.Repeat(" ", max(m.WindowWidth-lipgloss.Width(left)-lipgloss.Width(right)-2, 0))
	bar := lipgloss.JoinHorizontal(lipgloss.Center, left, spacer, right)

	return lipgloss.NewStyle().
		Width(m.WindowWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.BorderColor).
		Padding(0, 1).
		Render(bar)
}

func GetWelcomeScreen(width, height, selected int) string {
	art := `
 ╭──────────────────────────────────────────╮
 │                                          │
 │   ██   ██ ███████ ██      ██ ██   ██     │
 │   ██   ██ ██      ██      ██  ██ ██      │
 │   ███████ █████   ██      ██   ███       │
 │   ██   ██ ██      ██      ██  ██ ██      │
 │   ██   ██ ███████ ███████ ██ ██   ██     │
 │                                          │
 ╰──────────────────────────────────────────╯
`
	subtitle := "Find the right people. Reach them with the right words."

	var prompts []string
	for i, p := range ExamplePrompts {
		style := styles.ExamplePromptStyle
		if i == selected {
			style = styles.ExampleSelectedStyle
		}
		prompts = append(prompts, style.Width(min(width-4, 70)).Render(p))
	}
	hint := styles.HintStyle.Render("Tab: use an example prompt")

	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.WelcomeArtStyle.Render(art),
		styles.WelcomeSubtitleStyle.Render(subtitle),
		"",
		lipgloss.JoinVertical(lipgloss.Left, prompts...),
		hint,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderMessage(msg models.ChatMessage, isFirst bool) string {
	if msg.Sender != models.SenderAssistant {
		return FormatUserMessage(msg.Content, m.Viewport.Width, isFirst)
	}
	key := fmt.Sprintf("%d:%s", m.Viewport.Width, msg.Content)
	if cached, ok := m.renderCache[key]; ok {
		return cached
	}
	out := FormatAssistantMessage(RenderAssistantContent(msg.Content, m.Viewport.Width, m.Renderer))
	m.renderCache[key] = out
	return out
}

func (m *Model) UpdateViewport() {
	loading := m.State.Status.Active()
	if len(m.State.Messages) == 0 && !loading {
		selected := (m.ExampleIdx - 1 + len(ExamplePrompts)) % len(ExamplePrompts)
		if !m.isExampleOrEmpty() || strings.TrimSpace(m.TextInput.Value()) == "" {
			selected = -1
		}
		m.Viewport.SetContent(GetWelcomeScreen(m.Viewport.Width, m.Viewport.Height, selected))
		return
	}

	parts := make([]string, 0, len(m.State.Messages)+1)
	for i, msg := range m.State.Messages {
		parts = append(parts, m.renderMessage(msg, i == 0))
	}
	if loading {
		parts = append(parts, styles.AssistantLabelStyle.Render("HELIX")+"\n"+m.RenderStatus())
	}
	m.Viewport.SetContent(strings.Join(parts, "\n\n"))
	m.Viewport.GotoBottom()
}

func (m *Model) UpdateWorkspace() {
	body := RenderSequence(m.State.Sequence, m.Workspace.Width)
	if body == "" {
		body = styles.EmptyStateStyle.Render("Your generated sequences will appear here.")
	}
	if st := m.State.Status; st.State == models.StatusGenerating || st.State == models.StatusProcessing {
		body = m.RenderStatus() + "\n\n" + body
	}
	m.Workspace.SetContent(body)
}

func (m *Model) renderWorkspacePanel(width int) string {
	title := styles.WorkspaceTitleStyle.Render("Workspace")
	return styles.WorkspaceStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, m.Workspace.View()))
}

func (m *Model) View() string {
	chatWidth, workspaceWidth, wide := m.layout()

	inputBox := styles.InputBoxStyle.Width(max(chatWidth-2, 10)).Render(m.TextInput.View())
	chatContent := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render("HELIX"),
		"",
		m.Viewport.View(),
		"",
		inputBox,
	)

	var main string
	switch {
	case wide:
		main = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.PlaceHorizontal(chatWidth, lipgloss.Center, chatContent),
			m.renderWorkspacePanel(workspaceWidth),
		)
	case m.ShowWorkspace:
		main = m.renderWorkspacePanel(workspaceWidth)
	default:
		main = lipgloss.PlaceHorizontal(m.WindowWidth, lipgloss.Center, chatContent)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, main, m.RenderBottomBar())

	var modal string
	switch {
	case m.SidebarOpen:
		modal = m.RenderSidebar()
	case m.ShortcutsOpen:
		modal = m.RenderShortcutsModal()
	default:
		return content
	}

	return lipgloss.Place(
		m.WindowWidth,
		m.WindowHeight,
		lipgloss.Center,
		lipgloss.Center,
		styles.ModalStyle.Width(ModalWidth).Render(modal),
	)
}
