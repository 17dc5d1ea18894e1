package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

type TurnEngine struct {
	sessions    *SessionRegistry
	evaluator   ports.Evaluator
	source      ports.MessageSource
	replier     ports.Replier
	clock       ports.Clock
	logger      *slog.Logger
	idleTimeout time.Duration
}

type TurnEngineOptions struct {
	IdleTimeout time.Duration
	Clock       ports.Clock
	Logger      *slog.Logger
}

func NewTurnEngine(sessions *SessionRegistry, evaluator ports.Evaluator, source ports.MessageSource, replier ports.Replier, opts TurnEngineOptions) *TurnEngine {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = domain.DefaultIdleTimeout
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}

	return &TurnEngine{
		sessions:    sessions,
		evaluator:   evaluator,
		source:      source,
		replier:     replier,
		clock:       opts.Clock,
		logger:      loggerOrDiscard(opts.Logger),
		idleTimeout: opts.IdleTimeout,
	}
}

func (e *TurnEngine) Start(ctx context.Context, trigger domain.Message) (*ActiveSession, error) {
	active, err := e.sessions.Begin(ctx, trigger.ChannelID, trigger.AuthorID)
	if err != nil {
		return nil, err
	}

	env, err := e.evaluator.NewEnvironment(map[string]any{
		"channel": string(trigger.ChannelID),
		"author":  string(trigger.AuthorID),
		"message": trigger.Content,
	})
	if err != nil {
		e.sessions.End(trigger.ChannelID)
		return nil, fmt.Errorf("create session environment: %w", err)
	}
	active.Env = env

	e.logger.Info("repl session started", slog.String("session", active.ID), slog.String("channel", string(trigger.ChannelID)))
	e.notify(ctx, trigger, msgSessionStart)

	return active, nil
}

// Serve processes turns until the owner exits, the idle timeout elapses or
// the session is ended elsewhere. An idle timeout returns ErrSessionTimeout.
func (e *TurnEngine) Serve(active *ActiveSession, trigger domain.Message) error {
	ctx := active.Context()
	logger := e.logger.With(slog.String("session", active.ID), slog.String("channel", string(active.ChannelID)))
	defer e.sessions.End(active.ChannelID)

	match := func(msg domain.Message) bool {
		return msg.ChannelID == active.ChannelID && msg.AuthorID == active.OwnerID && msg.StartsWithFence()
	}

	for {
		waitCtx, cancel := context.WithTimeout(ctx, e.idleTimeout)
		msg, err := e.source.Next(waitCtx, match)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				logger.Info("repl session ended")
				return nil
			}
			if errors.Is(err, context.DeadlineExceeded) {
				logger.Info("repl session idle timeout", slog.Duration("idle", e.idleTimeout))
				e.notify(ctx, trigger, msgSessionTimeout)
				return domain.ErrSessionTimeout
			}
			return fmt.Errorf("wait for repl input: %w", err)
		}

		active.Touch(e.clock.Now())
		if done := e.turn(ctx, active, msg, logger); done {
			return nil
		}
	}
}

func (e *TurnEngine) turn(ctx context.Context, active *ActiveSession, msg domain.Message, logger *slog.Logger) bool {
	code := CleanupSnippet(msg.Content)
	if isExitKeyword(code) {
		e.notify(ctx, msg, msgSessionExit)
		logger.Info("repl session exited by owner")
		return true
	}

	if !active.Transition(domain.SessionExecuting) {
		return true
	}
	if err := active.Env.Set("message", msg.Content); err != nil {
		logger.Warn("bind message", slog.Any("error", err))
	}

	turn, err := active.Env.Run(ctx, code)
	active.Transition(domain.SessionAwaitingInput)

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSyntax):
			e.notify(ctx, msg, codeFence+"js\n"+EscapeFences(err.Error())+"\n"+codeFence)
			return false
		case ctx.Err() != nil:
			return true
		default:
			logger.Error("run turn", slog.Any("error", err))
			e.notify(ctx, msg, UserMessage(err))
			return false
		}
	}

	if turn.HasValue {
		if err := active.Env.Set("_", turn.Result); err != nil {
			logger.Warn("bind last result", slog.Any("error", err))
		}
	}

	body, ok := FormatTurn(turn)
	if !ok {
		return false
	}
	if len(body) > domain.MessageLimit {
		body = msgTurnTooLarge
	}
	e.notify(ctx, msg, body)

	return false
}

func FormatTurn(turn domain.Turn) (string, bool) {
	text := turnText(turn)
	if text == "" {
		return "", false
	}

	return codeFence + "js\n" + EscapeFences(text) + "\n" + codeFence, true
}

func turnText(turn domain.Turn) string {
	switch {
	case turn.Fault != "":
		return turn.Output + turn.Fault
	case turn.HasValue:
		return turn.Output + turn.Value
	default:
		return turn.Output
	}
}

func (e *TurnEngine) notify(ctx context.Context, to domain.Message, content string) {
	reply := domain.Reply{ChannelID: to.ChannelID, ReferenceID: to.ID, Content: content}
	if err := e.replier.Reply(context.WithoutCancel(ctx), reply); err != nil {
		e.logger.Error("deliver repl reply", slog.String("channel", string(to.ChannelID)), slog.Any("error", err))
	}
}
