package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/time/rate"

	"github.com/crmarques/geoserverctl/config"
	"github.com/crmarques/geoserverctl/server"
)

var _ server.Transport = (*HTTPTransport)(nil)

// HTTPTransport talks to one server endpoint. Every call opens its own
// connection and closes it before returning.
type HTTPTransport struct {
	baseURL  *url.URL
	auth     basicAuth
	client   *http.Client
	limiter  *rate.Limiter
	fs       afero.Fs
	tlsDebug tlsDebugInfo
}

type TransportOption func(*HTTPTransport)

// WithRoundTripper replaces the underlying round tripper, mostly for tests
// that need to observe raw requests.
func WithRoundTripper(roundTripper http.RoundTripper) TransportOption {
	return func(t *HTTPTransport) {
		if t == nil || roundTripper == nil {
			return
		}
		t.client.Transport = roundTripper
	}
}

// WithFs sets the filesystem TLS material is read from.
func WithFs(fs afero.Fs) TransportOption {
	return func(t *HTTPTransport) {
		if t == nil || fs == nil {
			return
		}
		t.fs = fs
	}
}

func NewHTTPTransport(cfg config.Server, opts ...TransportOption) (*HTTPTransport, error) {
	baseURL, err := cfg.BaseURL()
	if err != nil {
		return nil, validationError("server address is invalid", err)
	}

	auth, err := buildBasicAuth(cfg.User, cfg.Pass)
	if err != nil {
		return nil, err
	}

	if cfg.RequestsPerSecond < 0 {
		return nil, validationError("server.requests-per-second must not be negative", nil)
	}

	roundTripper := http.DefaultTransport.(*http.Transport).Clone()
	roundTripper.DisableKeepAlives = true

	transport := &HTTPTransport{
		baseURL: baseURL,
		auth:    auth,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: roundTripper,
		},
		fs:       afero.NewOsFs(),
		tlsDebug: newTLSDebugInfo(cfg.TLS),
	}
	if cfg.RequestsPerSecond > 0 {
		transport.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(transport)
	}

	tlsConfig, err := buildTLSConfig(transport.fs, cfg.TLS)
	if err != nil {
		return nil, err
	}
	roundTripper.TLSClientConfig = tlsConfig
	return transport, nil
}

func (t *HTTPTransport) BaseURL() string {
	return t.baseURL.String()
}

func (t *HTTPTransport) Send(ctx context.Context, method string, path string, payload []byte, contentType string) (int, []byte, error) {
	resolvedMethod, err := normalizeMethod(method)
	if err != nil {
		return 0, nil, err
	}

	targetURL, err := t.resolveRequestURL(path)
	if err != nil {
		return 0, nil, err
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return 0, nil, transportError("request throttling interrupted", err)
		}
	}

	var bodyReader io.Reader
	if len(payload) > 0 {
		bodyReader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, resolvedMethod, targetURL, bodyReader)
	if err != nil {
		return 0, nil, internalError("failed to create remote request", err)
	}
	request.Close = true
	if strings.TrimSpace(contentType) != "" {
		request.Header.Set("Content-Type", contentType)
	}
	t.auth.apply(request)

	response, err := t.doRequest(ctx, request)
	if err != nil {
		return 0, nil, transportError("remote request failed", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, nil, transportError("failed to read remote response body", err)
	}

	return response.StatusCode, body, nil
}

func (t *HTTPTransport) resolveRequestURL(requestPath string) (string, error) {
	trimmed := strings.TrimSpace(requestPath)
	if trimmed == "" {
		return "", validationError("request path is required", nil)
	}
	if parsed, err := url.Parse(trimmed); err != nil {
		return "", validationError("request path is invalid", err)
	} else if parsed.Scheme != "" || parsed.Host != "" {
		return "", validationError("request path must be relative to the server address", nil)
	}

	return t.baseURL.String() + strings.TrimLeft(trimmed, "/"), nil
}

func normalizeMethod(method string) (string, error) {
	resolved := strings.ToUpper(strings.TrimSpace(method))
	switch resolved {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return resolved, nil
	case "":
		return "", validationError("request method is required", nil)
	default:
		return "", validationError("request method "+resolved+" is not supported", nil)
	}
}
