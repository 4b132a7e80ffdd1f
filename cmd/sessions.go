package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"seeker/internal/chat"
	"seeker/internal/db"
	"seeker/internal/models"
	"seeker/internal/realtime"
	"seeker/internal/styles"
)

var listOffline bool

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
	idStyle     = lipgloss.NewStyle().Foreground(styles.Muted).Italic(true)
	dateStyle   = lipgloss.NewStyle().Foreground(styles.Subtle)
)

const broadcastTimeout = 5 * time.Second

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"s"},
	Short:   "Manage chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your chat sessions",
	Long: `List chat sessions from the backend, newest first. With --offline the
list is read from the local cache written by the last successful fetch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var sessions []models.Session
		if listOffline {
			userID, err := a.userID()
			if err != nil {
				return err
			}
			sessions, err = db.NewCache(a.db).Sessions(userID)
			if err != nil {
				return fmt.Errorf("failed to read session cache: %w", err)
			}
		} else {
			store, err := a.store()
			if err != nil {
				return err
			}
			sessions, err = store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch sessions: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions yet. Run `seeker` to start one.")
			return nil
		}

		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d session(s)", len(sessions))))
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\n", idStyle.Render(s.ID.String()), titleStyle.Render(s.Title), dateStyle.Render(s.CreatedAt))
		}
		return w.Flush()
	},
}

var sessionsNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		store, err := a.store()
		if err != nil {
			return err
		}
		title := chat.DefaultSessionTitle
		if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
			title = strings.TrimSpace(args[0])
		}
		s, err := store.Create(cmd.Context(), title)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", idStyle.Render(s.ID.String()), titleStyle.Render(s.Title))
		return nil
	},
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <session-id> <title>",
	Short: "Rename a session and notify other open clients",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, title := models.ID(args[0]), strings.TrimSpace(args[1])
		if title == "" {
			return fmt.Errorf("title is empty")
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
		if err := store.Rename(cmd.Context(), id, title); err != nil {
			return fmt.Errorf("failed to rename session: %w", err)
		}
		a.broadcastTitle(cmd, id, title)

		fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", idStyle.Render(id.String()), titleStyle.Render(title))
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:     "delete <session-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		store, err := a.store()
		if err != nil {
			return err
		}
		if err := store.Delete(cmd.Context(), models.ID(args[0])); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", idStyle.Render(args[0]))
		return nil
	},
}

// broadcastTitle tells other clients about a rename. It is best effort: the
// rename already succeeded on the backend.
func (a *app) broadcastTitle(cmd *cobra.Command, id models.ID, title string) {
	pushURL, err := realtime.PushURL(a.cfg.APIURL, a.cfg.PushPath)
	if err != nil {
		a.logger.WithError(err).Warn("invalid push url")
		return
	}
	conn := realtime.New(pushURL, a.logger)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), broadcastTimeout)
	defer cancel()
	if err := conn.Open(ctx); err != nil {
		a.logger.WithError(err).Warn("push channel unavailable, rename not broadcast")
		return
	}
	if err := conn.Emit(realtime.EventSessionUpdated, realtime.SessionUpdate{SessionID: id, SessionTitle: title}); err != nil {
		a.logger.WithError(err).Warn("session title broadcast failed")
	}
}

func init() {
	sessionsListCmd.Flags().BoolVar(&listOffline, "offline", false, "Read the locally cached session list")
	sessionsCmd.AddCommand(sessionsListCmd, sessionsNewCmd, sessionsRenameCmd, sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}
