package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

type VariantRegistry struct {
	variants map[domain.VariantName]domain.Variant
}

func NewVariantRegistry(variants ...domain.Variant) (*VariantRegistry, error) {
	registry := &VariantRegistry{variants: make(map[domain.VariantName]domain.Variant, len(variants))}
	for _, variant := range variants {
		if err := variant.Validate(); err != nil {
			return nil, fmt.Errorf("validate variant %q: %w", variant.Name, err)
		}
		if _, exists := registry.variants[variant.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate variant %q", domain.ErrInvalidArgument, variant.Name)
		}
		registry.variants[variant.Name] = variant
	}

	return registry, nil
}

func (r *VariantRegistry) Resolve(name domain.VariantName) (domain.Variant, error) {
	variant, ok := r.variants[name]
	if !ok || !variant.Configured() {
		return domain.Variant{}, fmt.Errorf("%w: %q", domain.ErrUnknownVariant, name)
	}

	return variant, nil
}

func (r *VariantRegistry) Names() []domain.VariantName {
	names := make([]domain.VariantName, 0, len(r.variants))
	for name, variant := range r.variants {
		if variant.Configured() {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return names
}

func (r *VariantRegistry) List() []domain.Variant {
	out := make([]domain.Variant, 0, len(r.variants))
	for _, variant := range r.variants {
		out = append(out, variant)
	}
	slices.SortFunc(out, func(a, b domain.Variant) int {
		return strings.Compare(string(a.Name), string(b.Name))
	})

	return out
}

func DefaultVariantSpecs(lookup func(string) string) []domain.VariantSpec {
	if lookup == nil {
		lookup = func(string) string { return "" }
	}

	return []domain.VariantSpec{
		{Name: domain.VariantStable, BaseURL: lookup("CLOUDAHK_URL"), User: lookup("CLOUDAHK_USER"), PasswordRef: "CLOUDAHK_PASS", Protocol: domain.ProtocolFormRun, Language: "ahk"},
		{Name: domain.VariantBeta, BaseURL: lookup("CLOUDAHK_URL_BETA"), User: lookup("CLOUDAHK_USER_BETA"), PasswordRef: "CLOUDAHK_PASS_BETA", Protocol: domain.ProtocolFormRun, Language: "ahk"},
		{Name: domain.VariantDev, BaseURL: lookup("CLOUDAHK_URL_DEV"), User: lookup("CLOUDAHK_USER_DEV"), PasswordRef: "CLOUDAHK_PASS_DEV", Protocol: domain.ProtocolFormRun, Language: "ahk"},
		{Name: domain.VariantSnekbox, BaseURL: lookup("SNEKBOX_URL_DEV"), User: lookup("SNEKBOX_USER_DEV"), PasswordRef: "SNEKBOX_PASS_DEV", Protocol: domain.ProtocolJSONEval, Language: "eval"},
	}
}

// LoadVariantRegistry resolves credentials for each spec through the
// secret store. A credential that cannot be resolved leaves the password
// empty so the backend rejects the call instead of blocking startup.
func LoadVariantRegistry(ctx context.Context, specs []domain.VariantSpec, store ports.SecretStore, logger *slog.Logger) (*VariantRegistry, error) {
	logger = loggerOrDiscard(logger)

	variants := make([]domain.Variant, 0, len(specs))
	for _, spec := range specs {
		variant := domain.Variant{
			Name:       spec.Name,
			BaseURL:    spec.BaseURL,
			Protocol:   spec.Protocol,
			Language:   spec.Language,
			Credential: domain.Credential{User: spec.User},
		}
		if variant.Protocol == "" {
			variant.Protocol = domain.ProtocolFormRun
		}
		if variant.Language == "" {
			variant.Language = "ahk"
		}

		if spec.PasswordRef != "" && store != nil {
			password, err := store.Get(ctx, spec.PasswordRef)
			switch {
			case err == nil:
				variant.Credential.Password = password
			case errors.Is(err, ports.ErrSecretNotFound):
				logger.Debug("variant credential not found", slog.String("variant", string(spec.Name)), slog.String("ref", spec.PasswordRef))
			default:
				logger.Warn("resolve variant credential", slog.String("variant", string(spec.Name)), slog.Any("error", err))
			}
		}

		variants = append(variants, variant)
	}

	return NewVariantRegistry(variants...)
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
