package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

const (
	MaxRepeatCount = 10
	MaxFanOutCount = 5
)

var FanOutVariants = []domain.VariantName{domain.VariantStable, domain.VariantBeta, domain.VariantDev}

type InvocationService struct {
	registry *VariantRegistry
	executor ports.Executor
	router   *Router
	replier  ports.Replier
	logger   *slog.Logger
	timeout  time.Duration
	tasks    conc.WaitGroup
}

func NewInvocationService(registry *VariantRegistry, executor ports.Executor, replier ports.Replier, router *Router, timeout time.Duration, logger *slog.Logger) *InvocationService {
	logger = loggerOrDiscard(logger)
	if router == nil {
		router = NewRouter(logger)
	}
	if timeout <= 0 {
		timeout = domain.DefaultBackendTimeout
	}

	return &InvocationService{
		registry: registry,
		executor: executor,
		router:   router,
		replier:  replier,
		logger:   logger,
		timeout:  timeout,
	}
}

func (s *InvocationService) Single(ctx context.Context, cmd RunCommand) error {
	variant, err := s.registry.Resolve(cmd.Variant)
	if err != nil {
		return err
	}

	language := cmd.Language
	if language == "" {
		language = variant.Language
	}

	invocation := domain.Invocation{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Code:       NormalizeCode(cmd.Code),
		Variant:    variant,
		Language:   language,
		WantsImage: cmd.WantsImage,
		Timeout:    s.timeout,
	}

	logger := s.logger.With(slog.String("invocation", invocation.ID), slog.String("variant", string(variant.Name)))
	logger.Debug("executing snippet", slog.Int("code_bytes", len(invocation.Code)))

	result, err := s.executor.Execute(ctx, invocation)
	if err != nil {
		return fmt.Errorf("execute on %s: %w", variant.Name, err)
	}
	if result.Language == "" {
		result.Language = language
	}

	out := s.router.Render(result, variant.Name, cmd.WantsImage)
	if out.Rejected != nil {
		return out.Rejected
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("render result: %w", err)
	}

	logger.Info("snippet executed", slog.Int("stdout_bytes", len(result.Stdout)), slog.Int("attachments", len(out.Attachments)))

	return s.replier.Reply(ctx, domain.Reply{
		ChannelID:   cmd.Trigger.ChannelID,
		ReferenceID: cmd.Trigger.ID,
		Content:     cmd.Trigger.Mention() + out.Content(),
		Attachments: out.Attachments,
	})
}

// Repeat launches count concurrent runs of the same snippet. It returns
// once the runs are scheduled.
func (s *InvocationService) Repeat(ctx context.Context, cmd RunCommand, count int) error {
	if err := validateCount("repetition", count, MaxRepeatCount); err != nil {
		return err
	}
	if _, err := s.registry.Resolve(cmd.Variant); err != nil {
		return err
	}

	for range count {
		s.spawn(ctx, cmd)
	}

	return nil
}

func (s *InvocationService) FanOut(ctx context.Context, cmd RunCommand, count int) error {
	if err := validateCount("fan-out", count, MaxFanOutCount); err != nil {
		return err
	}

	for range count {
		for _, name := range FanOutVariants {
			run := cmd
			run.Variant = name
			s.spawn(ctx, run)
		}
	}

	return nil
}

func (s *InvocationService) Wait() {
	if recovered := s.tasks.WaitAndRecover(); recovered != nil {
		s.logger.Error("invocation task panicked", slog.Any("panic", recovered.Value), slog.String("stack", string(recovered.Stack)))
	}
}

func (s *InvocationService) Close() {
	s.Wait()
}

func (s *InvocationService) spawn(ctx context.Context, cmd RunCommand) {
	taskCtx := context.WithoutCancel(ctx)
	s.tasks.Go(func() {
		if err := s.Single(taskCtx, cmd); err != nil {
			s.reportFailure(taskCtx, cmd.Trigger, err)
		}
	})
}

func (s *InvocationService) reportFailure(ctx context.Context, trigger domain.Message, err error) {
	s.logger.Warn("invocation failed", slog.String("channel", string(trigger.ChannelID)), slog.Any("error", err))

	reply := domain.Reply{
		ChannelID:   trigger.ChannelID,
		ReferenceID: trigger.ID,
		Content:     UserMessage(err),
	}
	if replyErr := s.replier.Reply(ctx, reply); replyErr != nil {
		s.logger.Error("deliver failure reply", slog.Any("error", replyErr))
	}
}

func validateCount(what string, count, limit int) error {
	if count < 1 {
		return fmt.Errorf("%w: %s count must be at least 1", domain.ErrInvalidArgument, what)
	}
	if count > limit {
		return fmt.Errorf("%w: %s count %d is above the limit of %d", domain.ErrInvalidArgument, what, count, limit)
	}
	return nil
}
