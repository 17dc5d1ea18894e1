package ports

import (
	"context"

	"github.com/bnema/cloudahk-cli/internal/domain"
)

type Replier interface {
	Reply(ctx context.Context, reply domain.Reply) error
}

// MessageSource blocks until a message accepted by match arrives or ctx ends.
type MessageSource interface {
	Next(ctx context.Context, match func(domain.Message) bool) (domain.Message, error)
}
