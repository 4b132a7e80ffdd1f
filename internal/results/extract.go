// Package results turns assistant prose that lists search hits into records.
//
// The backend answers contact searches with formatted text rather than
// structured data, so the parsing here is deliberately lenient: malformed
// listings yield partial records instead of errors.
package results

import (
	"regexp"
	"strings"

	"seeker/internal/models"
)

const (
	TriggerPhrase = "professionals matching your search"
	FollowUpLabel = "Would you like to:"
)

var suggestionMarkers = []string{
	"Generate a personalized outreach",
	"Get more details about",
	"Refine the search",
}

var numberedRE = regexp.MustCompile(`^\d+\.\s*`)

// IsListing reports whether text is shaped like a search-results listing.
func IsListing(text string) bool {
	return strings.Contains(text, TriggerPhrase)
}

// Extract parses a search-results listing. ok is false when text does not
// contain the trigger phrase, in which case callers render it verbatim.
func Extract(text string) (records []models.SearchResult, ok bool) {
	if !IsListing(text) {
		return nil, false
	}

	lines := strings.Split(text, "\n")
	start := 0
	for i, line := range lines {
		if strings.Contains(line, TriggerPhrase) {
			start = i
			break
		}
	}

	records = []models.SearchResult{}
	var cur models.SearchResult
	started := false
	flush := func() {
		if started {
			records = append(records, cur)
		}
		cur = models.SearchResult{}
		started = false
	}

	for _, line := range lines[start:] {
		if isSuggestion(line) {
			break
		}
		if strings.Contains(line, TriggerPhrase) {
			continue
		}

		switch {
		case numberedRE.MatchString(line):
			flush()
			cur.Name = numberedRE.ReplaceAllString(line, "")
			started = true
		case strings.HasPrefix(line, "   Source:"):
			cur.Source = strings.TrimSpace(strings.TrimPrefix(line, "   Source:"))
			started = true
		case strings.HasPrefix(line, "   "):
			// Any other indented line is snippet text.
			clean := strings.TrimPrefix(line, "   Current:")
			if clean == line {
				clean = strings.TrimPrefix(line, "   ")
			}
			if clean = strings.TrimSpace(clean); clean != "" {
				cur.Snippet = clean
				started = true
			}
		case strings.HasPrefix(line, "Profile:"):
			cur.Link = strings.TrimSpace(strings.TrimPrefix(line, "Profile:"))
			started = true
		}
	}
	flush()

	return records, true
}

// Split breaks an assistant message into intro, records and follow-up text.
func Split(text string) (models.Listing, bool) {
	records, ok := Extract(text)
	if !ok {
		return models.Listing{}, false
	}
	listing := models.Listing{
		Intro:   strings.SplitN(text, "\n\n", 2)[0],
		Results: records,
	}
	if parts := strings.Split(text, FollowUpLabel); len(parts) > 1 {
		listing.FollowUp = strings.TrimSpace(parts[1])
	}
	return listing, true
}

func isSuggestion(line string) bool {
	for _, marker := range suggestionMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
