package server

import "context"

//go:generate mockgen -source=transport.go -destination=transport_mock.go -package=server -write_package_comment=false Transport

const (
	MediaTypeJSON = "application/json"
	MediaTypeXML  = "text/xml"
)

// Transport sends one request to the configured server and returns the raw
// status and body. Implementations attach authentication, never retry and
// never interpret the status code; network faults are returned as errors.
type Transport interface {
	Send(ctx context.Context, method string, path string, payload []byte, contentType string) (int, []byte, error)
}
