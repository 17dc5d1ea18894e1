package chain

import (
	"context"
	"errors"
	"fmt"

	envstore "github.com/bnema/cloudahk-cli/internal/adapters/secrets/env"
	filestore "github.com/bnema/cloudahk-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/cloudahk-cli/internal/adapters/secrets/pass"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

// Store tries each backend in order and stops at the first success.
type Store struct {
	stores []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNoStores = errors.New("secret store chain is empty")
	errNilStore = errors.New("secret store is nil")
)

func NewStoreChecked(stores ...ports.SecretStore) (*Store, error) {
	if len(stores) == 0 {
		return nil, errNoStores
	}
	for i, store := range stores {
		if store == nil {
			return nil, fmt.Errorf("backend %d: %w", i, errNilStore)
		}
	}

	return &Store{stores: stores}, nil
}

// NewDefault reads secrets from the environment first, then pass, then
// plain files under fileRoot. Writes go to pass, falling back to files.
func NewDefault(fileRoot string) (*Store, error) {
	return NewStoreChecked(envstore.NewStore(), passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	return s.each(ctx, "put", func(store ports.SecretStore) error {
		return store.Put(ctx, key, value)
	})
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.each(ctx, "get", func(store ports.SecretStore) error {
		got, err := store.Get(ctx, key)
		if err == nil {
			value = got
		}
		return err
	})
	if err != nil {
		return "", err
	}

	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.each(ctx, "delete", func(store ports.SecretStore) error {
		return store.Delete(ctx, key)
	})
}

func (s *Store) each(ctx context.Context, op string, fn func(ports.SecretStore) error) error {
	var errs []error
	for i, store := range s.stores {
		err := fn(store)
		if err == nil {
			return nil
		}
		if shouldSkipFallback(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("backend %d %s failed: %w", i, op, err))
	}

	return errors.Join(errs...)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
