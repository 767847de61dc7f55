package catalog

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/crmarques/geoserverctl/resource"
	"github.com/crmarques/geoserverctl/server"
)

// Catalog holds one ResourceClient per kind, linked to their parents.
type Catalog struct {
	transport server.Transport
	logger    *zap.Logger
	clients   map[resource.KindName]*ResourceClient
}

func New(transport server.Transport, logger *zap.Logger) (*Catalog, error) {
	if transport == nil {
		return nil, validationError("catalog requires a transport", nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	kinds := resource.Kinds()
	clients := make(map[resource.KindName]*ResourceClient, len(kinds))
	for _, kind := range kinds {
		var parent *ResourceClient
		if parentName, ok := ParentOf(kind.Name); ok {
			parent, ok = clients[parentName]
			if !ok {
				return nil, validationError(fmt.Sprintf("parent kind %q of %q must be declared first", parentName, kind.Name), nil)
			}
			if parent.kind.ScopeDepth()+1 != kind.ScopeDepth() {
				return nil, validationError(fmt.Sprintf("kind %q must be nested exactly one level below %q", kind.Name, parentName), nil)
			}
		}
		clients[kind.Name] = NewResourceClient(kind, transport, parent, logger)
	}

	return &Catalog{
		transport: transport,
		logger:    logger,
		clients:   clients,
	}, nil
}

func (c *Catalog) Client(name resource.KindName) (*ResourceClient, error) {
	client, ok := c.clients[name]
	if !ok {
		return nil, validationError(fmt.Sprintf("unknown resource kind %q", name), nil)
	}
	return client, nil
}

func (c *Catalog) mustClient(name resource.KindName) *ResourceClient {
	client, err := c.Client(name)
	if err != nil {
		panic(err)
	}
	return client
}

func (c *Catalog) Workspaces() *ResourceClient     { return c.mustClient(resource.KindWorkspace) }
func (c *Catalog) DataStores() *ResourceClient     { return c.mustClient(resource.KindDataStore) }
func (c *Catalog) CoverageStores() *ResourceClient { return c.mustClient(resource.KindCoverageStore) }
func (c *Catalog) WMSStores() *ResourceClient      { return c.mustClient(resource.KindWMSStore) }
func (c *Catalog) WMTSStores() *ResourceClient     { return c.mustClient(resource.KindWMTSStore) }
func (c *Catalog) FeatureTypes() *ResourceClient   { return c.mustClient(resource.KindFeatureType) }
func (c *Catalog) Layers() *ResourceClient         { return c.mustClient(resource.KindLayer) }
func (c *Catalog) LayerGroups() *ResourceClient    { return c.mustClient(resource.KindLayerGroup) }
func (c *Catalog) Styles() *ResourceClient         { return c.mustClient(resource.KindStyle) }
