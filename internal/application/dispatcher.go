package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

const DefaultCommandPrefix = "="

type commandRoute struct {
	variant  domain.VariantName
	language string
	image    bool
}

var commandRoutes = map[string]commandRoute{
	"ahk":  {variant: domain.VariantStable, language: "ahk"},
	"beta": {variant: domain.VariantBeta, language: "ahk"},
	"dev":  {variant: domain.VariantDev, language: "ahk"},
	"dev2": {variant: domain.VariantDev, language: "ahk2"},
	"rlx":  {variant: domain.VariantBeta, language: "rlx"},
	"snek": {variant: domain.VariantSnekbox, language: "eval"},
}

type Dispatcher struct {
	prefix      string
	registry    *VariantRegistry
	invocations *InvocationService
	turns       *TurnEngine
	hub         *EventHub
	replier     ports.Replier
	paste       ports.PasteFetcher
	evals       *EvalService
	logger      *slog.Logger
	sessions    conc.WaitGroup
}

type DispatcherOptions struct {
	Prefix string
	Paste  ports.PasteFetcher
	Evals  *EvalService
	Logger *slog.Logger
}

func NewDispatcher(registry *VariantRegistry, invocations *InvocationService, turns *TurnEngine, hub *EventHub, replier ports.Replier, opts DispatcherOptions) *Dispatcher {
	if opts.Prefix == "" {
		opts.Prefix = DefaultCommandPrefix
	}

	return &Dispatcher{
		prefix:      opts.Prefix,
		registry:    registry,
		invocations: invocations,
		turns:       turns,
		hub:         hub,
		replier:     replier,
		paste:       opts.Paste,
		evals:       opts.Evals,
		logger:      loggerOrDiscard(opts.Logger),
	}
}

// Handle processes one incoming message. Command failures are reported to
// the author and never returned.
func (d *Dispatcher) Handle(ctx context.Context, msg domain.Message) {
	if delivered := d.hub.Publish(msg); delivered > 0 {
		return
	}
	if !strings.HasPrefix(msg.Content, d.prefix) {
		return
	}

	if err := d.dispatch(ctx, msg); err != nil {
		d.fail(ctx, msg, err)
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, msg domain.Message) error {
	name, rest := splitWord(strings.TrimPrefix(msg.Content, d.prefix))
	logger := d.logger.With(slog.String("command", name), slog.String("channel", string(msg.ChannelID)))

	switch name {
	case "repl":
		return d.startSession(ctx, msg)
	case "variants":
		return d.listVariants(ctx, msg)
	case "eval", "e", "print":
		return d.evaluate(ctx, msg, name, rest, logger)
	}

	route, ok := commandRoutes[name]
	if !ok {
		logger.Debug("ignoring unknown command")
		return nil
	}

	cmd := RunCommand{Trigger: msg, Variant: route.variant, Language: route.language}
	sub, subRest := splitWord(rest)

	switch {
	case name == "beta" && sub == "img":
		cmd.WantsImage = true
		rest = subRest
	case (name == "ahk" || name == "dev") && sub == "num":
		count, code, err := parseCount(subRest, "repetition", MaxRepeatCount)
		if err != nil {
			return err
		}
		if cmd.Code, err = d.resolveCode(ctx, msg, code); err != nil {
			return err
		}
		logger.Info("dispatching repeated run", slog.Int("count", count))
		return d.invocations.Repeat(ctx, cmd, count)
	case name == "dev" && sub == "all":
		count, code, err := parseCount(subRest, "fan-out", MaxFanOutCount)
		if err != nil {
			return err
		}
		if cmd.Code, err = d.resolveCode(ctx, msg, code); err != nil {
			return err
		}
		logger.Info("dispatching fan-out run", slog.Int("count", count))
		return d.invocations.FanOut(ctx, cmd, count)
	}

	code, err := d.resolveCode(ctx, msg, rest)
	if err != nil {
		return err
	}
	cmd.Code = code

	logger.Info("dispatching run", slog.String("variant", string(cmd.Variant)))
	return d.invocations.Single(ctx, cmd)
}

func (d *Dispatcher) startSession(ctx context.Context, msg domain.Message) error {
	active, err := d.turns.Start(ctx, msg)
	if err != nil {
		return err
	}

	d.sessions.Go(func() {
		err := d.turns.Serve(active, msg)
		if err != nil && !errors.Is(err, domain.ErrSessionTimeout) {
			d.logger.Error("repl session failed", slog.String("session", active.ID), slog.Any("error", err))
		}
	})

	return nil
}

func (d *Dispatcher) evaluate(ctx context.Context, msg domain.Message, name, rest string, logger *slog.Logger) error {
	if d.evals == nil {
		logger.Debug("ignoring eval command without evaluator")
		return nil
	}

	code, err := d.resolveCode(ctx, msg, rest)
	if err != nil {
		return err
	}
	if name == "print" {
		return d.evals.Print(ctx, msg, code)
	}
	return d.evals.Eval(ctx, msg, code)
}

func (d *Dispatcher) listVariants(ctx context.Context, msg domain.Message) error {
	names := d.registry.Names()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, "`"+string(name)+"`")
	}

	content := "No backend variants configured."
	if len(parts) > 0 {
		content = "Backend variants: " + strings.Join(parts, ", ")
	}

	return d.replier.Reply(ctx, domain.Reply{ChannelID: msg.ChannelID, ReferenceID: msg.ID, Content: content})
}

func (d *Dispatcher) resolveCode(ctx context.Context, msg domain.Message, arg string) (string, error) {
	arg = strings.TrimSpace(arg)

	switch {
	case arg == "" && msg.Reference != nil:
		return codeFromReference(msg.Reference.Content), nil
	case arg == "":
		return "", domain.ErrMissingCode
	case isPasteURL(arg) && d.paste != nil:
		code, err := d.paste.Fetch(ctx, RawPasteURL(arg))
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrPasteFetch, err)
		}
		return code, nil
	default:
		return arg, nil
	}
}

func (d *Dispatcher) fail(ctx context.Context, msg domain.Message, err error) {
	d.logger.Warn("command failed", slog.String("channel", string(msg.ChannelID)), slog.Any("error", err))

	reply := domain.Reply{ChannelID: msg.ChannelID, ReferenceID: msg.ID, Content: UserMessage(err)}
	if replyErr := d.replier.Reply(context.WithoutCancel(ctx), reply); replyErr != nil {
		d.logger.Error("deliver error reply", slog.Any("error", replyErr))
	}
}

func (d *Dispatcher) Wait() {
	d.sessions.Wait()
	d.invocations.Wait()
}

func splitWord(text string) (string, string) {
	text = strings.TrimLeft(text, " \t")
	idx := strings.IndexAny(text, " \t\n")
	if idx < 0 {
		return text, ""
	}
	return text[:idx], text[idx+1:]
}

// parseCount reads the leading count of a repeated command and checks it
// against limit before any code is fetched. Without a leading number the
// count is 1 and all of text is code.
func parseCount(text, what string, limit int) (int, string, error) {
	word, rest := splitWord(text)
	count, err := strconv.Atoi(word)
	if err != nil {
		return 1, text, nil
	}
	if err := validateCount(what, count, limit); err != nil {
		return 0, "", err
	}
	return count, rest, nil
}
