package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

const (
	maxResponseBytes    = 16 << 20
	maxErrorDetailBytes = 512
)

// Client executes snippets on remote CloudAHK and snekbox style backends.
type Client struct {
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

var _ ports.Executor = Client{}

type runResponse struct {
	Stdout           *string  `json:"stdout"`
	Time             *float64 `json:"time"`
	ReturnCode       *int     `json:"return_code"`
	LegacyReturnCode *int     `json:"returncode"`
	Language         string   `json:"language"`
}

type evalRequest struct {
	Input string `json:"input"`
}

func (c Client) Execute(ctx context.Context, inv domain.Invocation) (domain.ExecutionResult, error) {
	variant := inv.Variant
	endpoint, body, contentType, err := buildRequest(inv)
	if err != nil {
		return domain.ExecutionResult{}, err
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout(inv))
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, body)
	if err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("create run request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(variant.Credential.User, variant.Credential.Password)

	logger := c.logger().With(slog.String("variant", string(variant.Name)), slog.String("url", endpoint))
	started := time.Now()

	resp, err := c.httpClient().Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ExecutionResult{}, fmt.Errorf("run on %s: %w", variant.Name, ctx.Err())
		}
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("backend request timed out", slog.Duration("after", time.Since(started)))
			return domain.ExecutionResult{}, &domain.BackendError{Variant: variant.Name, Timeout: true}
		}
		return domain.ExecutionResult{}, &domain.BackendError{Variant: variant.Name, Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Debug("backend responded", slog.Int("status", resp.StatusCode), slog.Duration("duration", time.Since(started)))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorDetailBytes))
		return domain.ExecutionResult{}, &domain.BackendError{
			Variant: variant.Name,
			Status:  resp.StatusCode,
			Detail:  strings.TrimSpace(string(detail)),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		if ctx.Err() != nil {
			return domain.ExecutionResult{}, fmt.Errorf("run on %s: %w", variant.Name, ctx.Err())
		}
		if errors.Is(err, context.DeadlineExceeded) || requestCtx.Err() != nil {
			logger.Warn("backend response timed out", slog.Duration("after", time.Since(started)))
			return domain.ExecutionResult{}, &domain.BackendError{Variant: variant.Name, Timeout: true}
		}
		return domain.ExecutionResult{}, &domain.BackendError{Variant: variant.Name, Detail: fmt.Sprintf("read run response: %v", err)}
	}
	if len(data) > maxResponseBytes {
		return domain.ExecutionResult{}, fmt.Errorf("%w: %s response exceeds %d bytes", domain.ErrOutputTooLarge, variant.Name, maxResponseBytes)
	}

	var payload runResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("%w: decode run response: %w", domain.ErrMalformedResponse, err)
	}

	return toResult(payload, inv.Language)
}

func buildRequest(inv domain.Invocation) (string, io.Reader, string, error) {
	variant := inv.Variant
	if !variant.Configured() {
		return "", nil, "", fmt.Errorf("%w: %q has no endpoint", domain.ErrUnknownVariant, variant.Name)
	}

	switch variant.Protocol {
	case domain.ProtocolJSONEval:
		endpoint, err := url.JoinPath(variant.BaseURL, "eval")
		if err != nil {
			return "", nil, "", fmt.Errorf("build eval url: %w", err)
		}
		data, err := json.Marshal(evalRequest{Input: inv.Code})
		if err != nil {
			return "", nil, "", fmt.Errorf("encode eval request: %w", err)
		}
		return endpoint, bytes.NewReader(data), "application/json", nil
	case domain.ProtocolFormRun, "":
		language := inv.Language
		if language == "" {
			language = variant.Language
		}
		endpoint, err := url.JoinPath(variant.BaseURL, language, "run")
		if err != nil {
			return "", nil, "", fmt.Errorf("build run url: %w", err)
		}
		return endpoint, strings.NewReader(inv.Code), "text/plain; charset=utf-8", nil
	default:
		return "", nil, "", fmt.Errorf("%w: unsupported protocol %q", domain.ErrInvalidArgument, variant.Protocol)
	}
}

func toResult(payload runResponse, languageHint string) (domain.ExecutionResult, error) {
	if payload.Stdout == nil {
		return domain.ExecutionResult{}, fmt.Errorf("%w: missing stdout", domain.ErrMalformedResponse)
	}

	result := domain.ExecutionResult{
		Stdout:     []byte(*payload.Stdout),
		ReturnCode: payload.ReturnCode,
		Language:   payload.Language,
	}
	if result.ReturnCode == nil {
		result.ReturnCode = payload.LegacyReturnCode
	}
	if payload.Time != nil {
		elapsed := time.Duration(*payload.Time * float64(time.Second))
		result.Elapsed = &elapsed
	}
	if result.Language == "" {
		result.Language = languageHint
	}

	return result, nil
}

func (c Client) timeout(inv domain.Invocation) time.Duration {
	switch {
	case inv.Timeout > 0:
		return inv.Timeout
	case c.RequestTimeout > 0:
		return c.RequestTimeout
	default:
		return domain.DefaultBackendTimeout
	}
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
