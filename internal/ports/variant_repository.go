package ports

import (
	"context"

	"github.com/bnema/cloudahk-cli/internal/domain"
)

type VariantRepository interface {
	List(ctx context.Context) ([]domain.VariantSpec, error)
	GetByName(ctx context.Context, name domain.VariantName) (domain.VariantSpec, error)
	Save(ctx context.Context, spec domain.VariantSpec) error
	Delete(ctx context.Context, name domain.VariantName) error
}

type PasteFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}
