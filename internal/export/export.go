// Package export writes a session transcript to a file format.
package export

import (
	"fmt"
	"io"
	"time"

	"seeker/internal/models"
)

// Transcript is one session as written by an Exporter.
type Transcript struct {
	SessionID  models.ID             `yaml:"session_id"`
	Title      string                `yaml:"title,omitempty"`
	ExportedAt time.Time             `yaml:"exported_at"`
	Messages   []models.ChatMessage  `yaml:"messages"`
	Sequence   []models.SequenceStep `yaml:"sequence,omitempty"`
}

type Exporter interface {
	Export(t *Transcript, w io.Writer) error
	Extension() string
}

func NewExporter(format string) (Exporter, error) {
	switch format {
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: yaml, md)", format)
	}
}
