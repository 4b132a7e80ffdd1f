package styles

import "github.com/charmbracelet/lipgloss"

var (
	ContentWidth = 54
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	UserLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#90CAF9")).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	UserMsgStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#90CAF9"))

	AssistantLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(Primary).
				Bold(true).
				Padding(0, 1).
				MarginRight(1)

	AssistantMsgStyle = lipgloss.NewStyle().
				Foreground(Text).
				PaddingTop(1).
				BorderLeft(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(Primary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(FgError).
			Bold(true)

	HintStyle = lipgloss.NewStyle().Foreground(Muted)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	// Search results

	ResultsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	ResultNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text)

	ResultSourceStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Italic(true)

	ResultSnippetStyle = lipgloss.NewStyle().Foreground(Subtle)

	ResultLinkStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Underline(true)

	FollowUpStyle = lipgloss.NewStyle().
			Foreground(Subtle).
			PaddingTop(1)

	// Workspace panel

	WorkspaceStyle = lipgloss.NewStyle().
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(BorderColor).
			PaddingLeft(1)

	WorkspaceTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary).
				MarginBottom(1)

	StepCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1).
			MarginBottom(1)

	StepLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	StatusBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1)

	// Welcome

	WelcomeArtStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	WelcomeSubtitleStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Italic(true)

	ExamplePromptStyle = lipgloss.NewStyle().
				Foreground(Subtle).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderColor).
				Padding(0, 1)

	ExampleSelectedStyle = ExamplePromptStyle.
				BorderForeground(Primary).
				Foreground(Text)

	// Modals

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Width(ContentWidth).
			MarginBottom(1)

	ModalItemStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Width(ContentWidth)

	ModalSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Width(ContentWidth).
				Background(lipgloss.Color("#5B3C8C")).
				Foreground(lipgloss.Color("#FFFFFF"))

	ActiveSessionStyle = lipgloss.NewStyle().Foreground(Secondary)

	HintColor = lipgloss.Color("#545454")
)
