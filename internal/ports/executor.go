package ports

import (
	"context"

	"github.com/bnema/cloudahk-cli/internal/domain"
)

// Executor performs one bounded call to a remote execution backend.
type Executor interface {
	Execute(ctx context.Context, invocation domain.Invocation) (domain.ExecutionResult, error)
}
