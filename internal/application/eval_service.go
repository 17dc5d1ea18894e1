package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

const msgEvalAttached = "Results too large. See attached file."

// EvalService runs the one-shot eval and print commands. Every snippet
// gets a fresh environment; only the last value carries over, as `_`.
type EvalService struct {
	evaluator ports.Evaluator
	replier   ports.Replier
	logger    *slog.Logger

	mu   sync.Mutex
	last any
}

func NewEvalService(evaluator ports.Evaluator, replier ports.Replier, logger *slog.Logger) *EvalService {
	return &EvalService{
		evaluator: evaluator,
		replier:   replier,
		logger:    loggerOrDiscard(logger),
	}
}

func (s *EvalService) Eval(ctx context.Context, trigger domain.Message, code string) error {
	return s.run(ctx, trigger, CleanupSnippet(code))
}

func (s *EvalService) Print(ctx context.Context, trigger domain.Message, code string) error {
	expr := strings.TrimRight(CleanupSnippet(code), "; \t\n")
	return s.run(ctx, trigger, "print("+expr+")")
}

func (s *EvalService) run(ctx context.Context, trigger domain.Message, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.evaluator.NewEnvironment(map[string]any{
		"channel": string(trigger.ChannelID),
		"author":  string(trigger.AuthorID),
		"message": trigger.Content,
		"_":       s.last,
	})
	if err != nil {
		return fmt.Errorf("create eval environment: %w", err)
	}

	turn, err := env.Run(ctx, code)
	switch {
	case errors.Is(err, domain.ErrSyntax):
		turn.Fault = err.Error()
	case err != nil:
		return err
	}

	if turn.HasValue {
		if err := env.Set("_", turn.Result); err == nil {
			// functions stay bound to the runtime that made them
			if value, ok := env.Get("_"); ok && reflect.ValueOf(value).Kind() != reflect.Func {
				s.last = value
			}
		}
	}

	body, ok := FormatTurn(turn)
	if !ok {
		return nil
	}

	reply := domain.Reply{ChannelID: trigger.ChannelID, ReferenceID: trigger.ID, Content: body}
	if utf8.RuneCountInString(body) > domain.MessageLimit {
		text := turnText(turn)
		if len(text) >= domain.AttachmentByteLimit {
			return fmt.Errorf("%w: %d bytes", domain.ErrOutputTooLarge, len(text))
		}
		reply.Content = msgEvalAttached
		reply.Attachments = []domain.Attachment{{Name: textAttachment, Data: []byte(text), MediaType: domain.MediaTypeText}}
	}

	s.logger.Info("snippet evaluated", slog.String("channel", string(trigger.ChannelID)), slog.Int("attachments", len(reply.Attachments)))

	return s.replier.Reply(ctx, reply)
}
