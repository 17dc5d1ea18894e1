package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"

	"github.com/bnema/cloudahk-cli/internal/adapters/chat/jsonl"
)

func newServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve chat commands from JSON-lines events on stdin",
		Long:  "serve reads one chat event per line on stdin ({\"id\",\"channel_id\",\"author_id\",\"content\",\"reference\"}) and writes one reply per line on stdout. Commands run concurrently across channels.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			replier := jsonl.NewReplier(cmd.OutOrStdout())
			g, err := app.newGateway(cmd.Context(), replier)
			if err != nil {
				return err
			}

			app.logger.Info("serving chat events", slog.String("prefix", app.prefix), slog.Int("variants", len(g.registry.Names())))

			err = serveEvents(cmd.Context(), jsonl.NewReader(cmd.InOrStdin()), g, app.logger)
			g.Close()
			return err
		},
	}
}

func serveEvents(ctx context.Context, reader *jsonl.Reader, g *gateway, logger *slog.Logger) error {
	var handlers conc.WaitGroup
	defer handlers.Wait()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		msg, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, jsonl.ErrInvalidEvent) {
			logger.Warn("skipping chat event", slog.Any("error", err))
			continue
		}
		if err != nil {
			return err
		}

		handlers.Go(func() {
			g.dispatcher.Handle(ctx, msg)
		})
	}
}
