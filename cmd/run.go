package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bnema/cloudahk-cli/internal/adapters/chat/console"
	"github.com/bnema/cloudahk-cli/internal/application"
	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

var errMissingCode = errors.New("no code given: pass it as arguments, with --file, or as - to read stdin")

type runFlags struct {
	variant string
	lang    string
	file    string
	outDir  string
	image   bool
}

func (f *runFlags) bind(cmd *cobra.Command, defaultVariant domain.VariantName) {
	cmd.Flags().StringVar(&f.variant, "variant", string(defaultVariant), "Backend variant to run on")
	cmd.Flags().StringVar(&f.lang, "lang", "", "Language hint (defaults to the variant's language)")
	cmd.Flags().StringVar(&f.file, "file", "", "Read code from a file")
	cmd.Flags().StringVar(&f.outDir, "out", ".", "Directory attachments are written to")
}

func (f runFlags) command(code string) application.RunCommand {
	return application.RunCommand{
		Trigger:    consoleMessage(code),
		Variant:    domain.VariantName(f.variant),
		Language:   f.lang,
		Code:       code,
		WantsImage: f.image,
	}
}

func newRunCmd(app *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [code...]",
		Short: "Run a snippet on one backend variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(cmd.InOrStdin(), flags.file, args)
			if err != nil {
				return err
			}

			registry, err := app.registry(cmd.Context())
			if err != nil {
				return err
			}

			replier := console.NewReplier(cmd.OutOrStdout(), console.ReplierOptions{AttachmentDir: flags.outDir})
			label := fmt.Sprintf("Running on %s...", flags.variant)

			return userFacing(runWithProgress(cmd.Context(), cmd.ErrOrStderr(), label, 1, func(ctx context.Context, track func(ports.Replier) ports.Replier) error {
				return app.invocationService(registry, track(replier)).Single(ctx, flags.command(code))
			}))
		},
	}

	flags.bind(cmd, domain.VariantStable)
	cmd.Flags().BoolVar(&flags.image, "img", false, "Decode base64 PNG output into an image attachment")

	return cmd
}

func newStressCmd(app *app) *cobra.Command {
	var (
		flags runFlags
		count int
	)

	cmd := &cobra.Command{
		Use:   "stress [code...]",
		Short: "Run a snippet several times concurrently on one variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(cmd.InOrStdin(), flags.file, args)
			if err != nil {
				return err
			}

			registry, err := app.registry(cmd.Context())
			if err != nil {
				return err
			}

			replier := console.NewReplier(cmd.OutOrStdout(), console.ReplierOptions{AttachmentDir: flags.outDir})
			label := fmt.Sprintf("Running %d times on %s...", count, flags.variant)

			return userFacing(runWithProgress(cmd.Context(), cmd.ErrOrStderr(), label, count, func(ctx context.Context, track func(ports.Replier) ports.Replier) error {
				invocations := app.invocationService(registry, track(replier))
				if err := invocations.Repeat(ctx, flags.command(code), count); err != nil {
					return err
				}
				invocations.Wait()
				return nil
			}))
		},
	}

	flags.bind(cmd, domain.VariantStable)
	cmd.Flags().IntVarP(&count, "count", "n", 1, fmt.Sprintf("Number of runs (1-%d)", application.MaxRepeatCount))

	return cmd
}

func newFanOutCmd(app *app) *cobra.Command {
	var (
		flags runFlags
		count int
	)

	cmd := &cobra.Command{
		Use:   "fanout [code...]",
		Short: "Run a snippet on the stable, beta and dev variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(cmd.InOrStdin(), flags.file, args)
			if err != nil {
				return err
			}

			registry, err := app.registry(cmd.Context())
			if err != nil {
				return err
			}

			replier := console.NewReplier(cmd.OutOrStdout(), console.ReplierOptions{AttachmentDir: flags.outDir})
			label := fmt.Sprintf("Running %d times on each variant...", count)
			expected := count * len(application.FanOutVariants)

			return userFacing(runWithProgress(cmd.Context(), cmd.ErrOrStderr(), label, expected, func(ctx context.Context, track func(ports.Replier) ports.Replier) error {
				invocations := app.invocationService(registry, track(replier))
				if err := invocations.FanOut(ctx, flags.command(code), count); err != nil {
					return err
				}
				invocations.Wait()
				return nil
			}))
		},
	}

	flags.bind(cmd, domain.VariantDev)
	cmd.Flags().IntVarP(&count, "count", "n", 1, fmt.Sprintf("Runs per variant (1-%d)", application.MaxFanOutCount))

	return cmd
}

func readCode(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read code file: %w", err)
		}
		return string(data), nil
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read code from stdin: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return "", errMissingCode
	}
}

func consoleMessage(content string) domain.Message {
	return domain.Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		ChannelID: console.DefaultChannel,
		AuthorID:  localPrincipal(),
		Content:   content,
	}
}

// userError shows the chat-facing message for err while keeping it
// inspectable with errors.Is.
type userError struct {
	err error
}

func (e userError) Error() string {
	return application.UserMessage(e.err)
}

func (e userError) Unwrap() error {
	return e.err
}

func userFacing(err error) error {
	if err == nil {
		return nil
	}
	return userError{err: err}
}
