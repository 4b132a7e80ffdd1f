package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"seeker/internal/export"
	"seeker/internal/models"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a session transcript",
	Long: `Export a session's messages and outreach sequence as YAML or Markdown.

Writes to stdout unless --output names a file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		store, err := a.store()
		if err != nil {
			return err
		}

		id := models.ID(args[0])
		messages, err := a.client.Messages(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to fetch messages: %w", err)
		}
		sequence, err := a.client.Sequence(cmd.Context(), id)
		if err != nil {
			a.logger.WithError(err).WithField("session_id", id).Warn("sequence unavailable, exporting messages only")
		}

		transcript := &export.Transcript{
			SessionID:  id,
			ExportedAt: time.Now(),
			Messages:   messages,
			Sequence:   sequence,
		}
		if sessions, err := store.List(cmd.Context()); err == nil {
			for _, s := range sessions {
				if s.ID == id {
					transcript.Title = s.Title
				}
			}
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := exporter.Export(transcript, w); err != nil {
			return fmt.Errorf("failed to export session: %w", err)
		}
		if w != cmd.OutOrStdout() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d message(s) to %s\n", len(messages), exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Output format: yaml or md")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
