package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seeker/internal/models"
)

func TestExtract_SingleRecord(t *testing.T) {
	text := "Found 3 professionals matching your search\n1. Jane Doe\n   Source: LinkedIn\n   Senior Engineer\nProfile: http://x\nWould you like to: ..."

	got, ok := Extract(text)
	require.True(t, ok)
	assert.Equal(t, []models.SearchResult{{
		Name:    "Jane Doe",
		Source:  "LinkedIn",
		Snippet: "Senior Engineer",
		Link:    "http://x",
	}}, got)
}

func TestExtract_NoTrigger(t *testing.T) {
	got, ok := Extract("Here is some advice about your resume.\n1. Keep it short")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []models.SearchResult
	}{
		{
			name: "preamble discarded and suggestions stop the scan",
			text: "1. Ignored Person\nI found 2 professionals matching your search:\n\n" +
				"1. Ada Lovelace\n   Current: Analyst at Engines\nProfile: https://linkedin.com/in/ada\n\n" +
				"2. Alan Turing\n   Source: Web\n\n" +
				"Would you like to:\n1. Generate a personalized outreach sequence\n2. Get more details about a person\n3. Someone",
			want: []models.SearchResult{
				{Name: "Ada Lovelace", Snippet: "Analyst at Engines", Link: "https://linkedin.com/in/ada"},
				{Name: "Alan Turing", Source: "Web"},
			},
		},
		{
			name: "name only record is emitted",
			text: "professionals matching your search\n1. Solo",
			want: []models.SearchResult{{Name: "Solo"}},
		},
		{
			name: "malformed numbering is dropped",
			text: "professionals matching your search\n1) Broken Person\n2. Valid Person",
			want: []models.SearchResult{{Name: "Valid Person"}},
		},
		{
			name: "indented lines overwrite snippet",
			text: "professionals matching your search\n1. Grace\n   First line\n      nested detail\n   \n",
			want: []models.SearchResult{{Name: "Grace", Snippet: "nested detail"}},
		},
		{
			name: "trigger without records",
			text: "No professionals matching your search were found.",
			want: []models.SearchResult{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	text := "professionals matching your search\n1. A\n   Source: S\n2. B"
	first, _ := Extract(text)
	second, _ := Extract(text)
	assert.Equal(t, first, second)
}

func TestSplit(t *testing.T) {
	text := "Here are 2 professionals matching your search\n\n1. Jane\n   Lead\n\nWould you like to:\n- Refine the search"

	listing, ok := Split(text)
	require.True(t, ok)
	assert.Equal(t, "Here are 2 professionals matching your search", listing.Intro)
	assert.Equal(t, []models.SearchResult{{Name: "Jane", Snippet: "Lead"}}, listing.Results)
	assert.Equal(t, "- Refine the search", listing.FollowUp)

	_, ok = Split("plain reply")
	assert.False(t, ok)
}
