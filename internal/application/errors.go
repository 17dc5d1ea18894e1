package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/cloudahk-cli/internal/domain"
)

const (
	msgSessionActive  = "Already running a REPL session in this channel. Exit it with `quit`."
	msgSessionTimeout = "Exiting REPL session."
	msgSessionExit    = "Exiting."
	msgSessionStart   = "Enter code to execute or evaluate. `exit()` or `quit` to exit."
	msgTurnTooLarge   = "Content too big to be printed."
	msgGenericFailure = "Something went wrong."
)

func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var backendErr *domain.BackendError
	switch {
	case errors.As(err, &backendErr):
		if backendErr.Timeout {
			return fmt.Sprintf("Timed out waiting for the `%s` backend. Something went wrong.", backendErr.Variant)
		}
		if backendErr.Status == 0 {
			return msgGenericFailure
		}
		return fmt.Sprintf("%d. Something went wrong.", backendErr.Status)
	case errors.Is(err, domain.ErrUnknownVariant):
		return err.Error()
	case errors.Is(err, domain.ErrInvalidArgument):
		return err.Error()
	case errors.Is(err, domain.ErrMissingCode):
		return "code is a required argument that is missing."
	case errors.Is(err, domain.ErrPasteFetch):
		return "Failed fetching code from pastebin."
	case errors.Is(err, domain.ErrOutputTooLarge):
		return "Output greater than 8mb."
	case errors.Is(err, domain.ErrSessionActive):
		return msgSessionActive
	case errors.Is(err, domain.ErrSessionTimeout):
		return msgSessionTimeout
	case errors.Is(err, domain.ErrMalformedResponse):
		return msgGenericFailure
	case errors.Is(err, context.DeadlineExceeded):
		return "Timed out. Something went wrong."
	default:
		return msgGenericFailure
	}
}
