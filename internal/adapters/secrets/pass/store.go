package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/cloudahk-cli/internal/ports"
)

var (
	ErrUnavailable    = errors.New("pass command unavailable")
	ErrLocked         = errors.New("password store is locked")
	ErrMultilineValue = errors.New("credential spans several lines")
)

const (
	notInStoreMarker = "is not in the password store"
	decryptFailed    = "decryption failed"
)

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps credentials in the user's pass(1) store. Only the first line
// of an entry is the credential, following the pass convention that later
// lines hold metadata.
type Store struct {
	run runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPassCommand}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("pass put %q: %w", key, ErrMultilineValue)
	}

	_, err := s.exec(ctx, "put", key, value+"\n", "insert", "--echo", "--force", key)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	stdout, err := s.exec(ctx, "get", key, "", "show", key)
	if err != nil {
		return "", err
	}

	credential, _, _ := strings.Cut(stdout, "\n")
	credential = strings.TrimSuffix(credential, "\r")
	if credential == "" {
		return "", fmt.Errorf("pass get %q: empty entry: %w", key, ports.ErrSecretNotFound)
	}

	return credential, nil
}

// Delete removes the entry. Removing a missing entry succeeds.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.exec(ctx, "delete", key, "", "rm", "--force", key)
	if errors.Is(err, ports.ErrSecretNotFound) {
		return nil
	}
	return err
}

func (s *Store) exec(ctx context.Context, op, key, input string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, input, args...)
	switch {
	case err == nil:
		return stdout, nil
	case errors.Is(err, ErrUnavailable):
		return "", err
	case strings.Contains(stderr, notInStoreMarker):
		return "", fmt.Errorf("pass %s %q: %w", op, key, ports.ErrSecretNotFound)
	case strings.Contains(stderr, decryptFailed):
		return "", fmt.Errorf("pass %s %q: %w: %s", op, key, ErrLocked, stderr)
	case stderr == "":
		return "", fmt.Errorf("pass %s %q: %w", op, key, err)
	default:
		return "", fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
	}
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
