package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVariant    = errors.New("unknown backend variant")
	ErrBackend           = errors.New("backend error")
	ErrMalformedResponse = errors.New("malformed backend response")
	ErrOutputTooLarge    = errors.New("output too large")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrMissingCode       = errors.New("code is a required argument that is missing")
	ErrPasteFetch        = errors.New("failed fetching code from pastebin")
	ErrSyntax            = errors.New("syntax error")
	ErrRuntimeFault      = errors.New("runtime fault")
	ErrSessionActive     = errors.New("session already active")
	ErrSessionTimeout    = errors.New("session timed out")
	ErrSessionNotFound   = errors.New("session not found")
	ErrVariantNotFound   = errors.New("variant not found")
)

type BackendError struct {
	Variant VariantName
	Status  int
	Detail  string
	Timeout bool
}

func (e *BackendError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("backend %s: request timed out", e.Variant)
	}
	if e.Detail == "" {
		return fmt.Sprintf("backend %s: status %d", e.Variant, e.Status)
	}
	return fmt.Sprintf("backend %s: status %d: %s", e.Variant, e.Status, e.Detail)
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}
