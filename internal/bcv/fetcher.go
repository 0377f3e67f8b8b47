package bcv

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultURL is the homepage that publishes the official rates.
	DefaultURL = "https://www.bcv.org.ve/"

	DefaultFetchTimeout = 60 * time.Second
	DefaultMaxRedirects = 5

	errorSnippetBytes = 200
)

// DefaultHeaders are sent with every request unless overridden.
var DefaultHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml",
	"Accept-Language": "es-VE,es;q=0.9,en;q=0.8",
	"User-Agent":      "bcv-rates/1.0",
}

// FetchOptions are per-request settings.
type FetchOptions struct {
	Headers map[string]string
	Timeout time.Duration
}

// Fetcher retrieves a page as text.
type Fetcher interface {
	FetchText(ctx context.Context, url string, opts FetchOptions) (string, error)
}

// FetcherConfig holds the settings of a ResilientFetcher.
type FetcherConfig struct {
	// AllowInsecureTLS enables a single retry without certificate verification
	// when the primary attempt fails on a classified chain error.
	AllowInsecureTLS bool
	Timeout          time.Duration
	MaxRedirects     int
	// RootCAs overrides the system roots for the verified attempt.
	RootCAs *x509.CertPool
}

// FetcherOption customizes a ResilientFetcher.
type FetcherOption func(*ResilientFetcher)

// WithInsecureFallbackHook registers a callback invoked every time the insecure retry is taken.
func WithInsecureFallbackHook(fn func(code TLSErrorCode)) FetcherOption {
	return func(f *ResilientFetcher) {
		f.onFallback = fn
	}
}

// WithTransport replaces the base transport used for both attempts. The TLS
// configuration of the given transport is overwritten.
func WithTransport(t *http.Transport) FetcherOption {
	return func(f *ResilientFetcher) {
		f.base = t
	}
}

// ResilientFetcher performs a verified HTTPS GET and, on a classified certificate
// chain failure, retries once with verification disabled if allowed.
type ResilientFetcher struct {
	cfg        FetcherConfig
	base       *http.Transport
	secure     *http.Client
	insecure   *http.Client
	logger     *slog.Logger
	onFallback func(code TLSErrorCode)
}

// NewResilientFetcher creates a ResilientFetcher.
func NewResilientFetcher(cfg FetcherConfig, logger *slog.Logger, opts ...FetcherOption) *ResilientFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	if cfg.MaxRedirects < 0 {
		cfg.MaxRedirects = 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	f := &ResilientFetcher{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(f)
	}
	if f.base == nil {
		f.base = http.DefaultTransport.(*http.Transport)
	}

	f.secure = f.newClient(&tls.Config{RootCAs: cfg.RootCAs, MinVersion: tls.VersionTLS12})
	f.insecure = f.newClient(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // operator controlled fallback
	return f
}

func (f *ResilientFetcher) newClient(tlsCfg *tls.Config) *http.Client {
	t := f.base.Clone()
	t.TLSClientConfig = tlsCfg
	// Content-Encoding is negotiated and decoded by the fetcher itself.
	t.DisableCompression = true
	return &http.Client{
		Transport: t,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// FetchText implements Fetcher.
func (f *ResilientFetcher) FetchText(ctx context.Context, url string, opts FetchOptions) (string, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = f.cfg.Timeout
	}
	headers := make(map[string]string, len(DefaultHeaders)+len(opts.Headers))
	for k, v := range DefaultHeaders {
		headers[k] = v
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	body, err := f.attempt(ctx, f.secure, url, headers, timeout)
	if err == nil {
		return body, nil
	}

	code, ok := ClassifyTLSError(err)
	if !ok {
		return "", &FetchError{URL: url, Err: err}
	}
	if !f.cfg.AllowInsecureTLS {
		return "", &FetchError{URL: url, Err: &TLSVerificationError{Code: code, Err: err}}
	}

	f.logger.Warn("BCV TLS verification failed; retrying with insecure TLS",
		slog.String("code", string(code)),
		slog.String("url", url),
		slog.String("disable_with", InsecureTLSEnvVar+"=false"),
	)
	if f.onFallback != nil {
		f.onFallback(code)
	}

	body, err = f.attempt(ctx, f.insecure, url, headers, timeout)
	if err != nil {
		return "", &FetchError{URL: url, Insecure: true, Err: err}
	}
	return body, nil
}

// attempt performs one GET, following redirects by hand up to the configured hop count.
func (f *ResilientFetcher) attempt(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	current := rawURL
	for hops := 0; ; hops++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			return "", fmt.Errorf("building request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		req.Header.Set("Accept-Encoding", acceptEncoding)

		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}

		location := resp.Header.Get("Location")
		if isRedirect(resp.StatusCode) && location != "" {
			drainAndClose(resp.Body)
			if hops >= f.cfg.MaxRedirects {
				return "", fmt.Errorf("%w: stopped after %d hops at %s", ErrTooManyRedirects, hops, current)
			}
			next, err := resp.Request.URL.Parse(location)
			if err != nil {
				return "", fmt.Errorf("invalid redirect location %q: %w", location, err)
			}
			current = next.String()
			continue
		}

		return readBody(resp)
	}
}

func readBody(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetBytes))
		return "", &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(snippet),
		}
	}

	body, err := decodedBody(resp)
	if err != nil {
		return "", err
	}
	defer body.Close()

	b, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(b), nil
}

func isRedirect(status int) bool {
	return status >= 300 && status < 400
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
