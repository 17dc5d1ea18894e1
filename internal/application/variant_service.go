package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

type VariantService struct {
	repo  ports.VariantRepository
	store ports.SecretStore
}

func NewVariantService(repo ports.VariantRepository, store ports.SecretStore) *VariantService {
	return &VariantService{repo: repo, store: store}
}

// Specs returns the built-in variants overlaid with the persisted ones.
// Persisted entries replace built-ins of the same name.
func (s *VariantService) Specs(ctx context.Context, defaults []domain.VariantSpec) ([]domain.VariantSpec, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}

	specs := make([]domain.VariantSpec, 0, len(defaults)+len(stored))
	index := make(map[domain.VariantName]int, len(defaults)+len(stored))
	for _, spec := range defaults {
		index[spec.Name] = len(specs)
		specs = append(specs, spec)
	}
	for _, spec := range stored {
		if i, ok := index[spec.Name]; ok {
			specs[i] = spec
			continue
		}
		index[spec.Name] = len(specs)
		specs = append(specs, spec)
	}

	return specs, nil
}

func (s *VariantService) AddVariant(ctx context.Context, cmd AddVariantCommand) error {
	spec := cmd.Spec
	spec.Name = domain.VariantName(strings.TrimSpace(string(spec.Name)))
	if spec.Protocol == "" {
		spec.Protocol = domain.ProtocolFormRun
	}
	if spec.Language == "" {
		spec.Language = "ahk"
	}
	if cmd.Password != "" && spec.PasswordRef == "" {
		spec.PasswordRef = DefaultPasswordRef(spec.Name)
	}

	variant := domain.Variant{Name: spec.Name, BaseURL: spec.BaseURL, Protocol: spec.Protocol, Language: spec.Language}
	if err := variant.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	previous, err := s.repo.GetByName(ctx, spec.Name)
	if err != nil && !errors.Is(err, domain.ErrVariantNotFound) {
		return fmt.Errorf("get variant by name: %w", err)
	}

	if cmd.Password != "" {
		if err := s.store.Put(ctx, spec.PasswordRef, cmd.Password); err != nil {
			return fmt.Errorf("store variant password: %w", err)
		}
	}

	if err := s.repo.Save(ctx, spec); err != nil {
		if cmd.Password == "" {
			return fmt.Errorf("save variant: %w", err)
		}
		if rollbackErr := s.store.Delete(ctx, spec.PasswordRef); rollbackErr != nil {
			return fmt.Errorf("save variant and rollback stored password: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save variant: %w", err)
	}

	if cmd.Password != "" && previous.PasswordRef != "" && previous.PasswordRef != spec.PasswordRef {
		if err := s.store.Delete(ctx, previous.PasswordRef); err != nil {
			return fmt.Errorf("delete previous variant password: %w", err)
		}
	}

	return nil
}

func (s *VariantService) RemoveVariant(ctx context.Context, name domain.VariantName) error {
	spec, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("get variant by name: %w", err)
	}

	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}

	if spec.PasswordRef == "" || spec.PasswordRef != DefaultPasswordRef(name) {
		return nil
	}

	if err := s.store.Delete(ctx, spec.PasswordRef); err != nil {
		if restoreErr := s.repo.Save(ctx, spec); restoreErr != nil {
			return fmt.Errorf("delete variant password and restore variant: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete variant password: %w", err)
	}

	return nil
}

func (s *VariantService) SetSecret(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: secret key is empty", domain.ErrInvalidArgument)
	}
	if err := s.store.Put(ctx, key, value); err != nil {
		return fmt.Errorf("store secret: %w", err)
	}
	return nil
}

func (s *VariantService) RemoveSecret(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete secret: %w", err)
	}
	return nil
}

func DefaultPasswordRef(name domain.VariantName) string {
	return "cloudahk/variants/" + string(name) + "/password"
}
