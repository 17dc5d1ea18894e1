package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/cloudahk-cli/internal/domain"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "backend status", err: fmt.Errorf("execute: %w", &domain.BackendError{Variant: "beta", Status: 401}), want: "401. Something went wrong."},
		{name: "backend timeout", err: &domain.BackendError{Variant: "dev", Timeout: true}, want: "Timed out waiting for the `dev` backend. Something went wrong."},
		{name: "backend unreachable", err: &domain.BackendError{Variant: "stable", Detail: "connection refused"}, want: "Something went wrong."},
		{name: "missing code", err: domain.ErrMissingCode, want: "code is a required argument that is missing."},
		{name: "paste", err: fmt.Errorf("%w: 404", domain.ErrPasteFetch), want: "Failed fetching code from pastebin."},
		{name: "too large", err: domain.ErrOutputTooLarge, want: "Output greater than 8mb."},
		{name: "session active", err: domain.ErrSessionActive, want: msgSessionActive},
		{name: "malformed", err: domain.ErrMalformedResponse, want: msgGenericFailure},
		{name: "deadline", err: context.DeadlineExceeded, want: "Timed out. Something went wrong."},
		{name: "unknown", err: errors.New("x"), want: msgGenericFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
