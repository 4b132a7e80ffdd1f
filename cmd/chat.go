package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"seeker/internal/chat"
	"seeker/internal/realtime"
	"seeker/internal/status"
	"seeker/internal/ui"
)

// runChat opens the TUI. The push channel lives exactly as long as the
// program.
func runChat(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.store()
	if err != nil {
		return err
	}

	pushURL, err := realtime.PushURL(a.cfg.APIURL, a.cfg.PushPath)
	if err != nil {
		return err
	}
	conn := realtime.New(pushURL, a.logger)
	defer func() {
		if err := conn.Close(); err != nil {
			a.logger.WithError(err).Warn("closing push channel")
		}
	}()

	sink := &ui.Sink{}
	ctrl := chat.NewController(store, a.logger, chat.Options{
		Clock:  status.RealClock(),
		Notify: sink.Notify,
		Emit:   conn,
	})

	listener := chat.NewListener(conn, ctrl, a.logger)
	listener.Start()
	defer listener.Stop()

	model := ui.InitialModel(cmd.Context(), ctrl, conn, a.logger)
	p := ui.NewProgram(&model, sink)

	a.logger.WithField("user_id", store.UserID()).Info("chat started")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI failed: %w", err)
	}
	return nil
}
