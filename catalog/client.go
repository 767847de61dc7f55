package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/crmarques/geoserverctl/resource"
	"github.com/crmarques/geoserverctl/server"
)

// restRoot prefixes every request path.
const restRoot = "rest/"

// ResourceClient performs the REST operations of one resource kind. Clients
// of nested kinds check their parent through the parent client before
// touching the server.
type ResourceClient struct {
	kind      resource.Kind
	transport server.Transport
	parent    *ResourceClient
	logger    *zap.Logger
}

func NewResourceClient(kind resource.Kind, transport server.Transport, parent *ResourceClient, logger *zap.Logger) *ResourceClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceClient{
		kind:      kind,
		transport: transport,
		parent:    parent,
		logger:    logger.With(zap.String("kind", string(kind.Name))),
	}
}

func (c *ResourceClient) Kind() resource.Kind {
	return c.kind
}

// Parent returns the client of the enclosing kind, or nil for top-level
// kinds.
func (c *ResourceClient) Parent() *ResourceClient {
	return c.parent
}

// List returns the collection under scope. An empty collection is an empty
// Listing; a non-success status or an unexpected body is an error.
func (c *ResourceClient) List(ctx context.Context, scope resource.Scope) (resource.Listing, error) {
	collectionPath, err := c.kind.CollectionPath(scope)
	if err != nil {
		return resource.Listing{}, err
	}

	status, body, err := c.send(ctx, http.MethodGet, resource.WithExtension(collectionPath, resource.JSONExtension), nil, server.MediaTypeJSON)
	if err != nil {
		return resource.Listing{}, err
	}
	if status < 200 || status > 299 {
		return resource.Listing{}, classifyStatusError(status, body)
	}

	listing, err := decodeListing(c.kind, body)
	if err != nil {
		return resource.Listing{}, err
	}
	c.logger.Debug("listed collection", zap.String("scope", scope.String()), zap.Int("count", listing.Len()))
	return listing, nil
}

// Exists reports whether the named resource is present. A missing parent
// answers false without a request for the resource itself.
func (c *ResourceClient) Exists(ctx context.Context, scope resource.Scope, name string) (bool, error) {
	itemPath, err := c.kind.ItemPath(scope, name)
	if err != nil {
		return false, err
	}

	parentExists, err := c.parentExists(ctx, scope)
	if err != nil || !parentExists {
		return false, err
	}

	status, _, err := c.send(ctx, http.MethodGet, resource.WithExtension(itemPath, resource.JSONExtension), nil, server.MediaTypeJSON)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		c.logger.Warn(c.kind.Label+" does not exist", zap.String("name", name), zap.String("scope", scope.String()), zap.Int("status", status))
		return false, nil
	}
	return true, nil
}

// GetInfo returns the description of the named resource. When the resource
// or one of its parents is missing the result is the sentinel info naming
// the missing kind.
func (c *ResourceClient) GetInfo(ctx context.Context, scope resource.Scope, name string) (resource.Info, error) {
	itemPath, err := c.kind.ItemPath(scope, name)
	if err != nil {
		return nil, err
	}

	parentExists, err := c.parentExists(ctx, scope)
	if err != nil {
		return nil, err
	}
	if !parentExists {
		c.logger.Warn("no "+c.kind.Label+" info without its "+c.parent.kind.Label, zap.String("name", name), zap.String("scope", scope.String()))
		return resource.NotExistInfo(c.parent.kind.Label), nil
	}

	status, body, err := c.send(ctx, http.MethodGet, resource.WithExtension(itemPath, resource.JSONExtension), nil, server.MediaTypeJSON)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		c.logger.Warn(c.kind.Label+" does not exist", zap.String("name", name), zap.String("scope", scope.String()), zap.Int("status", status))
		return resource.NotExistInfo(c.kind.Label), nil
	}

	return decodeInfo(c.kind, body)
}

// Create adds the named resource. It does not check whether the resource
// already exists; the result is true only when the server reports it was
// created.
func (c *ResourceClient) Create(ctx context.Context, scope resource.Scope, name string) (bool, error) {
	if !c.kind.Supports(resource.CapCreate) {
		return false, unsupportedError(c.kind, "create")
	}

	collectionPath, err := c.kind.CollectionPath(scope)
	if err != nil {
		return false, err
	}
	name = strings.TrimSpace(name)
	if _, err := resource.EscapeSegment(name); err != nil {
		return false, err
	}
	payload, err := encodeNamePayload(c.kind, name)
	if err != nil {
		return false, err
	}

	c.logger.Info("creating "+c.kind.Label, zap.String("name", name))
	status, _, err := c.send(ctx, http.MethodPost, collectionPath, payload, server.MediaTypeXML)
	if err != nil {
		return false, err
	}
	return status == http.StatusCreated, nil
}

// Delete removes the named resource without checking that it exists.
func (c *ResourceClient) Delete(ctx context.Context, scope resource.Scope, name string) (bool, error) {
	if !c.kind.Supports(resource.CapDelete) {
		return false, unsupportedError(c.kind, "delete")
	}

	itemPath, err := c.kind.ItemPath(scope, name)
	if err != nil {
		return false, err
	}

	c.logger.Info("deleting "+c.kind.Label, zap.String("name", name))
	status, _, err := c.send(ctx, http.MethodDelete, itemPath, nil, server.MediaTypeXML)
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

// DeleteReport lists the outcome of each delete issued by DeleteAll, in
// listing order.
type DeleteReport struct {
	Deleted []string `json:"deleted" yaml:"deleted"`
	Failed  []string `json:"failed" yaml:"failed"`
}

// DeleteAll lists the collection and deletes every entry in listing order.
// A failed delete does not stop the remaining ones and nothing is rolled
// back.
func (c *ResourceClient) DeleteAll(ctx context.Context, scope resource.Scope) (DeleteReport, error) {
	report := DeleteReport{Deleted: []string{}, Failed: []string{}}
	if !c.kind.Supports(resource.CapDeleteAll) {
		return report, unsupportedError(c.kind, "delete-all")
	}

	c.logger.Info("deleting all " + c.kind.Label + " resources")
	listing, err := c.List(ctx, scope)
	if err != nil {
		return report, err
	}

	var errs []error
	for _, name := range listing.Names() {
		deleted, err := c.Delete(ctx, scope, name)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("delete %s %q: %w", c.kind.Name, name, err))
			report.Failed = append(report.Failed, name)
		case deleted:
			report.Deleted = append(report.Deleted, name)
		default:
			c.logger.Error("failed to delete "+c.kind.Label, zap.String("name", name))
			report.Failed = append(report.Failed, name)
		}
	}

	return report, errors.Join(errs...)
}

// SetDefault marks an existing resource as the default of its collection.
func (c *ResourceClient) SetDefault(ctx context.Context, scope resource.Scope, name string) (bool, error) {
	if !c.kind.Supports(resource.CapSetDefault) {
		return false, unsupportedError(c.kind, "set-default")
	}

	collectionPath, err := c.kind.CollectionPath(scope)
	if err != nil {
		return false, err
	}

	exists, err := c.Exists(ctx, scope, name)
	if err != nil {
		return false, err
	}
	if !exists {
		c.logger.Error("cannot make a missing "+c.kind.Label+" the default", zap.String("name", name))
		return false, nil
	}

	payload, err := encodeNamePayload(c.kind, name)
	if err != nil {
		return false, err
	}

	status, _, err := c.send(ctx, http.MethodPut, collectionPath+"/default", payload, server.MediaTypeXML)
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

// DefaultName returns the name of the default resource of the collection.
// found is false when the server has no default.
func (c *ResourceClient) DefaultName(ctx context.Context, scope resource.Scope) (name string, found bool, err error) {
	if !c.kind.Supports(resource.CapSetDefault) {
		return "", false, unsupportedError(c.kind, "default")
	}

	collectionPath, err := c.kind.CollectionPath(scope)
	if err != nil {
		return "", false, err
	}

	status, body, err := c.send(ctx, http.MethodGet, resource.WithExtension(collectionPath+"/default", resource.JSONExtension), nil, server.MediaTypeJSON)
	if err != nil {
		return "", false, err
	}
	if status != http.StatusOK {
		c.logger.Warn("no default "+c.kind.Label, zap.Int("status", status))
		return "", false, nil
	}

	info, err := decodeInfo(c.kind, body)
	if err != nil {
		return "", false, err
	}

	var named resource.NamedInfo
	if err := info.Decode(&named); err != nil {
		return "", false, err
	}
	if named.Name == "" {
		return "", false, nil
	}
	return named.Name, true, nil
}

// RawAsset fetches the alternate representation of an existing resource,
// such as a style definition. found is false when the resource is missing
// or the server does not return the asset.
func (c *ResourceClient) RawAsset(ctx context.Context, scope resource.Scope, name string) (data []byte, found bool, err error) {
	if !c.kind.Supports(resource.CapRawAsset) {
		return nil, false, unsupportedError(c.kind, "raw asset")
	}

	itemPath, err := c.kind.ItemPath(scope, name)
	if err != nil {
		return nil, false, err
	}

	exists, err := c.Exists(ctx, scope, name)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		c.logger.Error(c.kind.Label+" does not exist, cannot get its "+c.kind.RawAssetExtension+" asset", zap.String("name", name))
		return nil, false, nil
	}

	status, body, err := c.send(ctx, http.MethodGet, resource.WithExtension(itemPath, c.kind.RawAssetExtension), nil, c.kind.RawAssetMediaType)
	if err != nil {
		return nil, false, err
	}
	if status != http.StatusOK {
		c.logger.Error("failed to get "+c.kind.Label+" asset", zap.String("name", name), zap.Int("status", status))
		return nil, false, nil
	}
	return body, true, nil
}

func (c *ResourceClient) parentExists(ctx context.Context, scope resource.Scope) (bool, error) {
	if c.parent == nil {
		return true, nil
	}

	parentScope, parentName, ok := scope.Parent()
	if !ok {
		return false, validationError(fmt.Sprintf("%s requires a %s name", c.kind.Name, c.parent.kind.Name), nil)
	}

	exists, err := c.parent.Exists(ctx, parentScope, parentName)
	if err != nil {
		return false, err
	}
	if !exists {
		c.logger.Warn(c.kind.Label+" cannot exist if its "+c.parent.kind.Label+" does not exist", zap.String("parent", parentName))
	}
	return exists, nil
}

func (c *ResourceClient) send(ctx context.Context, method string, path string, payload []byte, contentType string) (int, []byte, error) {
	return c.transport.Send(ctx, method, restRoot+path, payload, contentType)
}
