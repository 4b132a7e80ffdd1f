package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"seeker/internal/models"
	"seeker/internal/results"
	"seeker/internal/styles"
)

func WrappedLineCount(value string, width int) int {
	if width <= 0 {
		return 1
	}
	count := 0
	for _, line := range strings.Split(value, "\n") {
		w := runewidth.StringWidth(line)
		if w == 0 {
			count++
			continue
		}
		count += (w-1)/width + 1
	}
	return count
}

// TruncateRunes cuts s to max display cells, ending with an ellipsis.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return runewidth.Truncate(s, max, "…")
}

func RelativeTime(t time.Time) string {
	d := time.Since(t)
	if d < 0 {
		d = -d
	}
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", mins)
	}
	if d < 24*time.Hour {
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1 hr ago"
		}
		return fmt.Sprintf("%d hrs ago", hrs)
	}
	days := int(d.Hours() / 24)
	if days < 14 {
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
	weeks := days / 7
	if weeks == 1 {
		return "1 week ago"
	}
	return fmt.Sprintf("%d weeks ago", weeks)
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
}

// SessionAge renders a backend created_at value. Unknown formats are shown
// as they came.
func SessionAge(createdAt string) string {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, createdAt); err == nil {
			return RelativeTime(t)
		}
	}
	return createdAt
}

func FormatUserMessage(content string, width int, isFirst bool) string {
	label := styles.UserLabelStyle.Render("YOU")
	msg := styles.UserMsgStyle.Width(max(width-4, 10)).Render(content)
	if isFirst {
		return fmt.Sprintf("\n%s\n%s", label, msg)
	}
	return fmt.Sprintf("%s\n%s", label, msg)
}

func FormatAssistantMessage(content string) string {
	label := styles.AssistantLabelStyle.Render("HELIX")
	msg := styles.AssistantMsgStyle.Render(content)
	return fmt.Sprintf("%s\n%s", label, msg)
}

// RenderAssistantContent renders a search listing as a results box and any
// other reply as markdown.
func RenderAssistantContent(content string, width int, renderer *glamour.TermRenderer) string {
	if listing, ok := results.Split(content); ok && len(listing.Results) > 0 {
		return RenderListing(listing, width)
	}
	if renderer == nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}

func RenderListing(listing models.Listing, width int) string {
	boxWidth := max(width-6, 20)
	inner := boxWidth - 4

	var entries []string
	for _, r := range listing.Results {
		lines := []string{styles.ResultNameStyle.Render(TruncateRunes(r.Name, inner))}
		if r.Source != "" {
			lines = append(lines, styles.ResultSourceStyle.Render(r.Source))
		}
		if r.Snippet != "" {
			lines = append(lines, styles.ResultSnippetStyle.Width(inner).Render(r.Snippet))
		}
		if r.Link != "" {
			lines = append(lines, "View Profile: "+styles.ResultLinkStyle.Render(r.Link))
		}
		entries = append(entries, strings.Join(lines, "\n"))
	}

	parts := []string{lipgloss.NewStyle().Width(boxWidth).Render(listing.Intro)}
	parts = append(parts, styles.ResultsBoxStyle.Width(boxWidth).Render(strings.Join(entries, "\n\n")))
	if listing.FollowUp != "" {
		parts = append(parts, styles.FollowUpStyle.Width(boxWidth).Render(results.FollowUpLabel+"\n"+listing.FollowUp))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderSequence renders the workspace cards. Steps without content are
// skipped; an empty result means the workspace has nothing to show.
func RenderSequence(steps []models.SequenceStep, width int) string {
	if !models.HasContent(steps) {
		return ""
	}
	cardWidth := max(width-2, 16)
	var cards []string
	for _, step := range steps {
		content := strings.TrimSpace(step.Content)
		if content == "" {
			continue
		}
		label := styles.StepLabelStyle.Render(fmt.Sprintf("Step %d", step.StepNumber))
		body := lipgloss.NewStyle().Width(cardWidth - 4).Render(content)
		cards = append(cards, styles.StepCardStyle.Width(cardWidth).Render(label+"\n"+body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
