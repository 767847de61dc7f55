package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-logr/logr"
)

// doRequest traces the round trip on the logger carried by ctx, if any.
// Tracing is emitted at verbosity 1.
func (t *HTTPTransport) doRequest(ctx context.Context, request *http.Request) (*http.Response, error) {
	logger := logr.FromContextOrDiscard(ctx).WithName("http").V(1)
	target := redactURLForDebug(request.URL)

	logger.Info(
		"http request",
		"method", request.Method,
		"url", target,
		"tls_enabled", t.tlsDebug.enabled,
		"tls_insecure_skip_verify", t.tlsDebug.insecureSkipVerify,
		"tls_ca_cert_file", t.tlsDebug.caCertFile,
		"tls_client_cert_file", t.tlsDebug.clientCertFile,
	)

	response, err := t.client.Do(request)
	if err != nil {
		logger.Info("http request failed", "method", request.Method, "url", target, "error", err.Error())
		return nil, err
	}

	logger.Info("http response", "method", request.Method, "url", target, "status", response.StatusCode)
	return response, nil
}

func redactURLForDebug(value *url.URL) string {
	if value == nil {
		return ""
	}

	cloned := *value
	cloned.User = nil

	query := cloned.Query()
	if len(query) > 0 {
		for key, values := range query {
			redacted := make([]string, len(values))
			for idx := range values {
				redacted[idx] = "<redacted>"
			}
			query[key] = redacted
		}
		cloned.RawQuery = query.Encode()
	}

	return cloned.String()
}
