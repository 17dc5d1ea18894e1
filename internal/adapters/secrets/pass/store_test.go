package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cloudahk-cli/internal/ports"
)

func TestStorePutUsesPassInsertEcho(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "--echo", "--force", "cloudahk/variants/beta/password"}, args)
			assert.Equal(t, "top-secret\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "cloudahk/variants/beta/password", "top-secret")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStorePutRejectsMultilineCredential(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			t.Fatal("pass must not be called")
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "CLOUDAHK_PASS", "line1\nline2")
	require.ErrorIs(t, err, ErrMultilineValue)
}

func TestStoreGetReturnsFirstLineOfEntry(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"bare":          "top-secret\n",
		"crlf":          "top-secret\r\n",
		"with metadata": "top-secret\nuser: bot\nurl: https://cloudahk.test\n",
	}

	for name, stdout := range tests {
		t.Run(name, func(t *testing.T) {
			store := &Store{
				run: func(ctx context.Context, input string, args ...string) (string, string, error) {
					assert.Equal(t, []string{"show", "cloudahk/variants/beta/password"}, args)
					assert.Empty(t, input)
					return stdout, "", nil
				},
			}

			value, err := store.Get(context.Background(), "cloudahk/variants/beta/password")
			require.NoError(t, err)
			assert.Equal(t, "top-secret", value)
		})
	}
}

func TestStoreGetEmptyEntryIsNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			return "\nuser: bot\n", "", nil
		},
	}

	_, err := store.Get(context.Background(), "CLOUDAHK_PASS")
	require.ErrorIs(t, err, ports.ErrSecretNotFound)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "--force", "cloudahk/variants/beta/password"}, args)
			assert.Empty(t, input)
			return "", "", nil
		},
	}

	err := store.Delete(context.Background(), "cloudahk/variants/beta/password")
	require.NoError(t, err)
}

func TestStoreDeleteMissingEntrySucceeds(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			return "", "Error: CLOUDAHK_PASS is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), "CLOUDAHK_PASS"))
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "entry not found", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "cloudahk/variants/beta/password")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "cloudahk/variants/beta/password")
	assert.ErrorContains(t, err, "entry not found")
}

func TestStoreGetClassifiesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stderr string
		err    error
		want   error
	}{
		{name: "missing entry", stderr: "Error: cloudahk/variants/beta/password is not in the password store.", err: errors.New("exit status 1"), want: ports.ErrSecretNotFound},
		{name: "locked key", stderr: "gpg: decryption failed: No secret key", err: errors.New("exit status 2"), want: ErrLocked},
		{name: "no binary", err: ErrUnavailable, want: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &Store{
				run: func(context.Context, string, ...string) (string, string, error) {
					return "", tt.stderr, tt.err
				},
			}

			_, err := store.Get(context.Background(), "cloudahk/variants/beta/password")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStoreHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			t.Fatal("pass must not be called")
			return "", "", nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, "CLOUDAHK_PASS")
	require.ErrorIs(t, err, context.Canceled)
}
