package resource

import (
	"fmt"
	"strings"
)

type KindName string

const (
	KindWorkspace     KindName = "workspace"
	KindDataStore     KindName = "datastore"
	KindCoverageStore KindName = "coveragestore"
	KindWMSStore      KindName = "wmsstore"
	KindWMTSStore     KindName = "wmtsstore"
	KindFeatureType   KindName = "featuretype"
	KindLayer         KindName = "layer"
	KindLayerGroup    KindName = "layergroup"
	KindStyle         KindName = "style"
)

// Capability marks operations beyond list, exists and info that a kind
// supports on the server.
type Capability uint8

const (
	CapCreate Capability = 1 << iota
	CapDelete
	CapDeleteAll
	CapSetDefault
	CapRawAsset
)

// Kind describes one REST collection: where it lives and how the server wraps
// its JSON payloads. The envelope keys must match the server verbatim.
type Kind struct {
	Name  KindName
	Label string

	// CollectionTemplate is relative to the REST root; placeholders are
	// filled in order from the parent scope.
	CollectionTemplate string

	// ListKey wraps the whole list response, ItemKey wraps every list entry
	// and the singular response.
	ListKey string
	ItemKey string

	Capabilities Capability

	// RawAssetExtension and RawAssetMediaType describe the alternate
	// representation served next to the JSON one (style definitions).
	RawAssetExtension string
	RawAssetMediaType string
}

var kinds = []Kind{
	{
		Name:               KindWorkspace,
		Label:              "Workspace",
		CollectionTemplate: "workspaces",
		ListKey:            "workspaces",
		ItemKey:            "workspace",
		Capabilities:       CapCreate | CapDelete | CapDeleteAll | CapSetDefault,
	},
	{
		Name:               KindDataStore,
		Label:              "Datastore",
		CollectionTemplate: "workspaces/{workspace}/datastores",
		ListKey:            "dataStores",
		ItemKey:            "dataStore",
	},
	{
		Name:               KindCoverageStore,
		Label:              "Coveragestore",
		CollectionTemplate: "workspaces/{workspace}/coveragestores",
		ListKey:            "coverageStores",
		ItemKey:            "coverageStore",
	},
	{
		Name:               KindWMSStore,
		Label:              "WMS store",
		CollectionTemplate: "workspaces/{workspace}/wmsstores",
		ListKey:            "wmsStores",
		ItemKey:            "wmsStore",
	},
	{
		Name:               KindWMTSStore,
		Label:              "WMTS store",
		CollectionTemplate: "workspaces/{workspace}/wmtsstores",
		ListKey:            "wmtsStores",
		ItemKey:            "wmtsStore",
	},
	{
		Name:               KindFeatureType,
		Label:              "Featuretype",
		CollectionTemplate: "workspaces/{workspace}/datastores/{datastore}/featuretypes",
		ListKey:            "featureTypes",
		ItemKey:            "featureType",
	},
	{
		Name:               KindLayer,
		Label:              "Layer",
		CollectionTemplate: "layers",
		ListKey:            "layers",
		ItemKey:            "layer",
	},
	{
		Name:               KindLayerGroup,
		Label:              "Layergroup",
		CollectionTemplate: "layergroups",
		ListKey:            "layerGroups",
		ItemKey:            "layerGroup",
	},
	{
		Name:               KindStyle,
		Label:              "Style",
		CollectionTemplate: "styles",
		ListKey:            "styles",
		ItemKey:            "style",
		Capabilities:       CapRawAsset,
		RawAssetExtension:  ".sld",
		RawAssetMediaType:  "application/vnd.ogc.sld+xml",
	},
}

// Kinds returns every known kind, parents before children.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

func LookupKind(name string) (Kind, bool) {
	normalized := KindName(strings.ToLower(strings.TrimSpace(name)))
	for _, kind := range kinds {
		if kind.Name == normalized {
			return kind, true
		}
	}
	return Kind{}, false
}

func MustKind(name KindName) Kind {
	kind, ok := LookupKind(string(name))
	if !ok {
		panic(fmt.Sprintf("unknown resource kind %q", name))
	}
	return kind
}

func (k Kind) Supports(capability Capability) bool {
	return k.Capabilities&capability != 0
}

// ScopeDepth is the number of parent names needed to address the collection.
func (k Kind) ScopeDepth() int {
	return len(templatePlaceholders(k.CollectionTemplate))
}

// ScopeNames returns the placeholder names of the collection template, for
// usage strings.
func (k Kind) ScopeNames() []string {
	return templatePlaceholders(k.CollectionTemplate)
}

func (k Kind) CollectionPath(scope Scope) (string, error) {
	return RenderTemplate(k.CollectionTemplate, scope)
}

func (k Kind) ItemPath(scope Scope, name string) (string, error) {
	collection, err := k.CollectionPath(scope)
	if err != nil {
		return "", err
	}
	segment, err := EscapeSegment(name)
	if err != nil {
		return "", err
	}
	return collection + "/" + segment, nil
}

func (k Kind) String() string {
	return string(k.Name)
}
