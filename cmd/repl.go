package cmd

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/cloudahk-cli/internal/adapters/chat/console"
	"github.com/bnema/cloudahk-cli/internal/domain"
)

const redeliverInterval = 20 * time.Millisecond

func newReplCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive JavaScript session in the terminal",
		Long:  "repl opens an evaluation session whose bindings persist across turns. Type quit or exit to leave; a line opening with ``` continues until the closing ```.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			replier := console.NewReplier(cmd.OutOrStdout(), console.ReplierOptions{})
			g, err := app.newGateway(cmd.Context(), replier)
			if err != nil {
				return err
			}
			defer g.Close()

			trigger := consoleMessage(app.prefix + "repl")
			active, err := g.turns.Start(cmd.Context(), trigger)
			if err != nil {
				return userFacing(err)
			}

			served := make(chan error, 1)
			go func() {
				served <- g.turns.Serve(active, trigger)
			}()

			inputs := readConsole(console.NewReader(cmd.InOrStdin(), trigger.ChannelID, trigger.AuthorID), app.logger)
			retry := time.NewTicker(redeliverInterval)
			defer retry.Stop()

			// Input typed while a turn is still running waits here until the
			// session asks for the next message. Once input ends the session
			// closes as soon as it is idle.
			var pending []domain.Message
			deliver := func() {
				for len(pending) > 0 && g.hub.Publish(pending[0]) > 0 {
					pending = pending[1:]
				}
				if inputs == nil && len(pending) == 0 && g.hub.Waiting() > 0 {
					g.sessions.End(trigger.ChannelID)
				}
			}

			for {
				select {
				case err := <-served:
					if errors.Is(err, domain.ErrSessionTimeout) {
						return nil
					}
					return err
				case msg, ok := <-inputs:
					if !ok {
						inputs = nil
					} else {
						if !msg.StartsWithFence() {
							msg.Content = "`" + msg.Content + "`"
						}
						pending = append(pending, msg)
					}
					deliver()
				case <-retry.C:
					deliver()
				case <-cmd.Context().Done():
					g.sessions.End(trigger.ChannelID)
					return <-served
				}
			}
		},
	}
}

// readConsole forwards console messages until input ends. The channel is
// closed at end of input or on a read error.
func readConsole(reader *console.Reader, logger *slog.Logger) <-chan domain.Message {
	out := make(chan domain.Message)
	go func() {
		defer close(out)
		for {
			msg, err := reader.Read()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					logger.Warn("console input stopped", slog.Any("error", err))
				}
				return
			}
			out <- msg
		}
	}()
	return out
}

