package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"seeker/internal/models"
)

func TestWrappedLineCount(t *testing.T) {
	tests := []struct {
		name  string
		value string
		width int
		want  int
	}{
		{"empty", "", 10, 1},
		{"fits", "hello", 10, 1},
		{"wraps", strings.Repeat("a", 25), 10, 3},
		{"newlines", "a\n\nb", 10, 3},
		{"wide runes", "日本語日本語", 4, 3},
		{"zero width", "anything", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrappedLineCount(tt.value, tt.width))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", TruncateRunes("abc", 0))
	assert.Equal(t, "abc", TruncateRunes("abc", 3))
	assert.Equal(t, "ab…", TruncateRunes("abcdef", 3))
	assert.Equal(t, "…", TruncateRunes("abcdef", 1))
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", RelativeTime(now))
	assert.Equal(t, "5 mins ago", RelativeTime(now.Add(-5*time.Minute-time.Second)))
	assert.Equal(t, "1 hr ago", RelativeTime(now.Add(-61*time.Minute)))
	assert.Equal(t, "3 days ago", RelativeTime(now.Add(-73*time.Hour)))
	assert.Equal(t, "3 weeks ago", RelativeTime(now.Add(-22*24*time.Hour)))
}

func TestSessionAge(t *testing.T) {
	assert.Equal(t, "just now", SessionAge(time.Now().UTC().Format(time.RFC3339)))
	assert.Equal(t, "yesterday-ish", SessionAge("yesterday-ish"))
}

func TestRenderAssistantContent_Listing(t *testing.T) {
	text := "Found 2 professionals matching your search\n\n" +
		"1. Jane Doe\n   Source: LinkedIn\n   Current: Senior Engineer\nProfile: http://x\n" +
		"2. John Roe\n   Source: GitHub\n\n" +
		"Would you like to:\n- Refine the search"

	out := RenderAssistantContent(text, 80, nil)
	for _, want := range []string{"Found 2 professionals", "Jane Doe", "LinkedIn", "Senior Engineer", "View Profile:", "http://x", "John Roe", "Would you like to:", "Refine the search"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "   Source:")
}

func TestRenderAssistantContent_PlainWithoutRenderer(t *testing.T) {
	assert.Equal(t, "**hello**", RenderAssistantContent("**hello**", 80, nil))
}

func TestRenderSequence(t *testing.T) {
	assert.Empty(t, RenderSequence(nil, 40))
	assert.Empty(t, RenderSequence([]models.SequenceStep{{StepNumber: 1, Content: "  "}}, 40))

	out := RenderSequence([]models.SequenceStep{
		{StepNumber: 1, Content: "Connect on LinkedIn"},
		{StepNumber: 2, Content: ""},
		{StepNumber: 3, Content: "Send a short email"},
	}, 40)
	assert.Contains(t, out, "Step 1")
	assert.Contains(t, out, "Connect on LinkedIn")
	assert.NotContains(t, out, "Step 2")
	assert.Contains(t, out, "Step 3")
	assert.LessOrEqual(t, lipgloss.Width(out), 40)
}
