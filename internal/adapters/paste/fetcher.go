package paste

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/cloudahk-cli/internal/ports"
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxPasteBytes         = 1 << 20
)

var errRedirected = errors.New("paste request was redirected")

// Fetcher downloads raw pastes. When BaseURL is set, the path and query of
// every requested link are resolved against it instead of the link's host.
type Fetcher struct {
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	BaseURL        string
	Logger         *slog.Logger
}

var _ ports.PasteFetcher = Fetcher{}

func (f Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	target, err := f.resolve(rawURL)
	if err != nil {
		return "", err
	}

	requestCtx, cancel := f.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("create paste request: %w", err)
	}

	resp, err := f.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch paste: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	f.logger().Debug("paste fetched", slog.String("url", target), slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		if location := resp.Header.Get("Location"); location != "" {
			return "", fmt.Errorf("fetch paste: %w to %s", errRedirected, location)
		}
		return "", fmt.Errorf("fetch paste: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPasteBytes))
	if err != nil {
		return "", fmt.Errorf("read paste: %w", err)
	}

	return string(body), nil
}

func (f Fetcher) resolve(rawURL string) (string, error) {
	link, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse paste url: %w", err)
	}
	if f.BaseURL == "" {
		return link.String(), nil
	}

	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse paste base url: %w", err)
	}
	base.Path = strings.TrimSuffix(base.Path, "/") + link.Path
	base.RawQuery = link.RawQuery
	return base.String(), nil
}

func (f Fetcher) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := f.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// httpClient returns a client that never follows redirects, so a moved or
// deleted paste surfaces as a failure instead of an unrelated page.
func (f Fetcher) httpClient() *http.Client {
	base := http.DefaultClient
	if f.HTTPClient != nil {
		base = f.HTTPClient
	}

	client := *base
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &client
}

func (f Fetcher) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.New(slog.DiscardHandler)
}
