package snapshot

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/crmarques/geoserverctl/catalog"
	"github.com/crmarques/geoserverctl/faults"
	"github.com/crmarques/geoserverctl/resource"
)

// Aggregator walks the catalog in containment order and collects every
// resource description into one Snapshot. Requests are issued one at a time.
type Aggregator struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewAggregator(cat *catalog.Catalog, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{catalog: cat, logger: logger}
}

func (a *Aggregator) Build(ctx context.Context, opts Options) (Result, error) {
	result := Result{Snapshot: newSnapshot()}

	workspaces, err := a.collectWorkspaces(ctx, opts)
	if err != nil {
		return Result{}, err
	}
	result.Snapshot.Workspaces = workspaces

	_, layers, err := a.collectTopLevel(ctx, a.catalog.Layers())
	if err != nil {
		return Result{}, err
	}
	result.Snapshot.Layers = layers

	if opts.AllStores {
		_, groups, err := a.collectTopLevel(ctx, a.catalog.LayerGroups())
		if err != nil {
			return Result{}, err
		}
		if len(groups) > 0 {
			result.Snapshot.LayerGroups = groups
		}
	}

	styles, assets, err := a.collectStyles(ctx)
	if err != nil {
		return Result{}, err
	}
	result.Snapshot.Styles = styles
	result.Assets = assets

	a.logger.Info(
		"snapshot collected",
		zap.Int("workspaces", len(result.Snapshot.Workspaces)),
		zap.Int("layers", len(result.Snapshot.Layers)),
		zap.Int("styles", len(result.Snapshot.Styles)),
	)
	return result, nil
}

func (a *Aggregator) collectWorkspaces(ctx context.Context, opts Options) (map[string]Workspace, error) {
	client := a.catalog.Workspaces()

	listing, err := client.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defaultName, _, err := client.DefaultName(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("read default workspace: %w", err)
	}

	out := make(map[string]Workspace, listing.Len())
	for _, name := range listing.Names() {
		workspace := Workspace{Name: name, Default: name == defaultName}
		scope := resource.Scope{name}

		workspace.DataStores, err = a.collectDataStores(ctx, scope)
		if err != nil {
			return nil, err
		}

		if opts.AllStores {
			if _, workspace.CoverageStores, err = a.collectScoped(ctx, a.catalog.CoverageStores(), scope); err != nil {
				return nil, err
			}
			if _, workspace.WMSStores, err = a.collectScoped(ctx, a.catalog.WMSStores(), scope); err != nil {
				return nil, err
			}
			if _, workspace.WMTSStores, err = a.collectScoped(ctx, a.catalog.WMTSStores(), scope); err != nil {
				return nil, err
			}
		}

		out[name] = workspace
	}
	return out, nil
}

func (a *Aggregator) collectDataStores(ctx context.Context, workspaceScope resource.Scope) (map[string]resource.Info, error) {
	names, stores, err := a.collectScoped(ctx, a.catalog.DataStores(), workspaceScope)
	if err != nil || stores == nil {
		return stores, err
	}

	for _, storeName := range names {
		storeScope := append(append(resource.Scope{}, workspaceScope...), storeName)
		_, featureTypes, err := a.collectScoped(ctx, a.catalog.FeatureTypes(), storeScope)
		if err != nil {
			return nil, err
		}
		if featureTypes == nil {
			continue
		}

		enriched := stores[storeName].Clone()
		if enriched == nil {
			enriched = resource.Info{}
		}
		enriched[FeatureTypesKey] = featureTypes
		stores[storeName] = enriched
	}
	return stores, nil
}

// collectScoped returns the names in listing order and their infos. Both are
// nil for an empty collection so the parent omits the key entirely.
func (a *Aggregator) collectScoped(ctx context.Context, client *catalog.ResourceClient, scope resource.Scope) ([]string, map[string]resource.Info, error) {
	kind := client.Kind()

	listing, err := client.List(ctx, scope)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s under %q: %w", kind.Name, scope.String(), err)
	}
	if listing.Empty() {
		return nil, nil, nil
	}

	names := listing.Names()
	out := make(map[string]resource.Info, len(names))
	for _, name := range names {
		info, err := client.GetInfo(ctx, scope, name)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s %q under %q: %w", kind.Name, name, scope.String(), err)
		}
		out[name] = info
	}
	return names, out, nil
}

func (a *Aggregator) collectTopLevel(ctx context.Context, client *catalog.ResourceClient) ([]string, map[string]resource.Info, error) {
	names, out, err := a.collectScoped(ctx, client, nil)
	if err != nil {
		return nil, nil, err
	}
	if out == nil {
		out = map[string]resource.Info{}
	}
	return names, out, nil
}

// collectStyles fails when a style does not report its file name, since its
// definition could not be stored. A definition the server does not return
// is skipped.
func (a *Aggregator) collectStyles(ctx context.Context) (map[string]resource.Info, []Asset, error) {
	client := a.catalog.Styles()

	names, styles, err := a.collectTopLevel(ctx, client)
	if err != nil {
		return nil, nil, err
	}

	assets := make([]Asset, 0, len(names))
	for _, name := range names {
		var view resource.StyleInfo
		if err := styles[name].Decode(&view); err != nil {
			return nil, nil, fmt.Errorf("read style %q: %w", name, err)
		}
		if strings.TrimSpace(view.Filename) == "" {
			return nil, nil, faults.NewTypedError(
				faults.ValidationError,
				fmt.Sprintf("style %q has no filename", name),
				nil,
			)
		}

		data, found, err := client.RawAsset(ctx, nil, name)
		if err != nil {
			return nil, nil, fmt.Errorf("read style %q definition: %w", name, err)
		}
		if !found {
			a.logger.Warn("skipping style definition", zap.String("style", name))
			continue
		}
		assets = append(assets, Asset{Style: name, Filename: view.Filename, Data: data})
	}
	return styles, assets, nil
}
