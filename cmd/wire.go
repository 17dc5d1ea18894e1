package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/cloudahk-cli/internal/adapters/backend"
	jseval "github.com/bnema/cloudahk-cli/internal/adapters/eval/js"
	"github.com/bnema/cloudahk-cli/internal/adapters/paste"
	tomlrepo "github.com/bnema/cloudahk-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/cloudahk-cli/internal/adapters/secrets/chain"
	"github.com/bnema/cloudahk-cli/internal/application"
	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

type app struct {
	logger         *slog.Logger
	variants       *application.VariantService
	secretStore    ports.SecretStore
	executor       ports.Executor
	paste          ports.PasteFetcher
	evaluator      ports.Evaluator
	prefix         string
	backendTimeout time.Duration
	idleTimeout    time.Duration
	lookupEnv      func(string) string
}

func wireApp() (*app, error) {
	cfg := viper.New()
	if err := tomlrepo.LoadConfig(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(os.Stderr, cfg.GetString(tomlrepo.KeyLogLevel))
	if err != nil {
		return nil, err
	}

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire variant repository: %w", err)
	}

	secretStore, err := chainstore.NewDefault(cfg.GetString(tomlrepo.KeySecretsDir))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	httpClient := &http.Client{}

	return &app{
		logger:      logger,
		variants:    application.NewVariantService(repo, secretStore),
		secretStore: secretStore,
		executor: backend.Client{
			HTTPClient: httpClient,
			Logger:     logger.With(slog.String("component", "backend")),
		},
		paste: paste.Fetcher{
			HTTPClient: httpClient,
			BaseURL:    cfg.GetString(tomlrepo.KeyPasteBaseURL),
			Logger:     logger.With(slog.String("component", "paste")),
		},
		evaluator:      jseval.NewEvaluator(),
		prefix:         cfg.GetString(tomlrepo.KeyPrefix),
		backendTimeout: cfg.GetDuration(tomlrepo.KeyBackendTimeout),
		idleTimeout:    cfg.GetDuration(tomlrepo.KeyReplIdleTimeout),
		lookupEnv:      os.Getenv,
	}, nil
}

// registry resolves the built-in and persisted variants with their
// credentials.
func (a *app) registry(ctx context.Context) (*application.VariantRegistry, error) {
	specs, err := a.variants.Specs(ctx, application.DefaultVariantSpecs(a.lookupEnv))
	if err != nil {
		return nil, err
	}
	return application.LoadVariantRegistry(ctx, specs, a.secretStore, a.logger)
}

func (a *app) invocationService(registry *application.VariantRegistry, replier ports.Replier) *application.InvocationService {
	return application.NewInvocationService(registry, a.executor, replier, application.NewRouter(a.logger), a.backendTimeout, a.logger)
}

type gateway struct {
	registry    *application.VariantRegistry
	invocations *application.InvocationService
	sessions    *application.SessionRegistry
	hub         *application.EventHub
	turns       *application.TurnEngine
	dispatcher  *application.Dispatcher
}

// newGateway assembles the chat-facing services around replier.
func (a *app) newGateway(ctx context.Context, replier ports.Replier) (*gateway, error) {
	registry, err := a.registry(ctx)
	if err != nil {
		return nil, err
	}

	clock := ports.SystemClock{}
	g := &gateway{
		registry:    registry,
		invocations: a.invocationService(registry, replier),
		sessions:    application.NewSessionRegistry(clock),
		hub:         application.NewEventHub(),
	}
	g.turns = application.NewTurnEngine(g.sessions, a.evaluator, g.hub, replier, application.TurnEngineOptions{
		IdleTimeout: a.idleTimeout,
		Clock:       clock,
		Logger:      a.logger,
	})
	g.dispatcher = application.NewDispatcher(registry, g.invocations, g.turns, g.hub, replier, application.DispatcherOptions{
		Prefix: a.prefix,
		Paste:  a.paste,
		Evals:  application.NewEvalService(a.evaluator, replier, a.logger),
		Logger: a.logger,
	})

	return g, nil
}

// Close ends every open session and waits for in-flight work.
func (g *gateway) Close() {
	g.sessions.Close()
	g.dispatcher.Wait()
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// localPrincipal names the operator for console-originated messages.
func localPrincipal() domain.PrincipalID {
	if name := os.Getenv("USER"); name != "" {
		return domain.PrincipalID(name)
	}
	if current, err := user.Current(); err == nil {
		return domain.PrincipalID(current.Username)
	}
	return "local"
}
