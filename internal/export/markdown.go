package export

import (
	"fmt"
	"io"
	"strings"

	"seeker/internal/models"
	"seeker/internal/results"
)

// MarkdownExporter writes a readable transcript. Search listings are
// rendered as a table of the extracted profiles.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(t *Transcript, w io.Writer) error {
	var b strings.Builder

	title := t.Title
	if title == "" {
		title = "Session " + t.SessionID.String()
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Session:** %s  \n", t.SessionID)
	fmt.Fprintf(&b, "**Exported:** %s  \n", t.ExportedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Messages:** %d\n\n", len(t.Messages))
	b.WriteString("---\n\n## Conversation\n\n")

	for i, msg := range t.Messages {
		who := "You"
		if msg.Sender == models.SenderAssistant {
			who = "Helix"
		}
		stamp := ""
		if msg.Timestamp != nil {
			stamp = " (" + msg.Timestamp.Format("15:04") + ")"
		}
		fmt.Fprintf(&b, "**%s:**%s\n\n", who, stamp)
		writeContent(&b, msg)
		if i < len(t.Messages)-1 {
			b.WriteString("---\n\n")
		}
	}

	if models.HasContent(t.Sequence) {
		b.WriteString("## Sequence\n\n")
		for _, step := range t.Sequence {
			fmt.Fprintf(&b, "### Step %d\n\n%s\n\n", step.StepNumber, strings.TrimSpace(step.Content))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeContent(b *strings.Builder, msg models.ChatMessage) {
	if msg.Sender != models.SenderAssistant {
		fmt.Fprintf(b, "%s\n\n", escapeMarkdown(msg.Content))
		return
	}
	listing, ok := results.Split(msg.Content)
	if !ok || len(listing.Results) == 0 {
		fmt.Fprintf(b, "%s\n\n", msg.Content)
		return
	}

	if listing.Intro != "" {
		fmt.Fprintf(b, "%s\n\n", listing.Intro)
	}
	b.WriteString("| Name | Source | Summary | Profile |\n|---|---|---|---|\n")
	for _, r := range listing.Results {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", cell(r.Name), cell(r.Source), cell(r.Snippet), cell(r.Link))
	}
	b.WriteString("\n")
	if listing.FollowUp != "" {
		fmt.Fprintf(b, "%s\n%s\n\n", results.FollowUpLabel, listing.FollowUp)
	}
}

func cell(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "|", "\\|")
}

// escapeMarkdown escapes emphasis markers outside fenced code blocks.
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	inCode := false
	for i, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		line = strings.ReplaceAll(line, "**", "\\*\\*")
		lines[i] = strings.ReplaceAll(line, "__", "\\_\\_")
	}
	return strings.Join(lines, "\n")
}

func (e *MarkdownExporter) Extension() string { return "md" }
