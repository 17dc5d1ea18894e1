package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/bnema/cloudahk-cli/internal/ports"
)

var ErrReadOnly = errors.New("environment secret store is read-only")

var envName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store resolves secrets whose key is an environment variable name.
type Store struct {
	lookup func(string) (string, bool)
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{lookup: os.LookupEnv}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !envName.MatchString(key) {
		return "", fmt.Errorf("env secret %q: %w", key, ports.ErrSecretNotFound)
	}

	value, ok := s.lookup(key)
	if !ok || value == "" {
		return "", fmt.Errorf("env secret %q: %w", key, ports.ErrSecretNotFound)
	}

	return value, nil
}

func (s *Store) Put(context.Context, string, string) error {
	return ErrReadOnly
}

func (s *Store) Delete(context.Context, string) error {
	return ErrReadOnly
}
