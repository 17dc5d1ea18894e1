package ports

import (
	"context"

	"github.com/bnema/cloudahk-cli/internal/domain"
)

type Evaluator interface {
	NewEnvironment(bindings map[string]any) (Environment, error)
}

// Environment is the persistent namespace of one interactive session.
// It is used by a single goroutine at a time.
type Environment interface {
	Classify(code string) domain.TurnMode
	Run(ctx context.Context, code string) (domain.Turn, error)
	Set(name string, value any) error
	Get(name string) (any, bool)
}
