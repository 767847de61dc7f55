package testkit

import (
	"context"
	"net/http"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/crmarques/geoserverctl/catalog"
	"github.com/crmarques/geoserverctl/internal/cli/common"
	"github.com/crmarques/geoserverctl/snapshot"
)

// Response is a canned reply keyed by "METHOD path".
type Response struct {
	Status int
	Body   string
}

// Request records one call seen by the Transport.
type Request struct {
	Method      string
	Path        string
	Payload     string
	ContentType string
}

// Transport answers from a fixed route table and records every request.
// Unknown routes answer 404.
type Transport struct {
	mu       sync.Mutex
	routes   map[string]Response
	requests []Request
}

func NewTransport(routes map[string]Response) *Transport {
	copied := make(map[string]Response, len(routes))
	for key, value := range routes {
		copied[key] = value
	}
	return &Transport{routes: copied}
}

func (t *Transport) Send(_ context.Context, method string, path string, payload []byte, contentType string) (int, []byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.requests = append(t.requests, Request{Method: method, Path: path, Payload: string(payload), ContentType: contentType})
	response, ok := t.routes[method+" "+path]
	if !ok {
		return http.StatusNotFound, []byte("not found"), nil
	}
	return response.Status, []byte(response.Body), nil
}

func (t *Transport) Requests() []Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Request(nil), t.requests...)
}

// Called reports whether "METHOD path" was requested at least once.
func (t *Transport) Called(method string, path string) bool {
	for _, request := range t.Requests() {
		if request.Method == method && request.Path == path {
			return true
		}
	}
	return false
}

// NewDependencies wires a catalog and a snapshot aggregator over transport.
// fs may be nil.
func NewDependencies(transport *Transport, fs afero.Fs) (common.CommandDependencies, error) {
	logger := zap.NewNop()
	cat, err := catalog.New(transport, logger)
	if err != nil {
		return common.CommandDependencies{}, err
	}
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	return common.CommandDependencies{
		Catalog:   cat,
		Snapshots: snapshot.NewAggregator(cat, logger),
		Fs:        fs,
		Logger:    logger,
	}, nil
}
