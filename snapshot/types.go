package snapshot

import "github.com/crmarques/geoserverctl/resource"

// FeatureTypesKey is added to every datastore info that has feature types.
const FeatureTypesKey = "featuretypes"

// Snapshot is the exported server configuration. Struct fields are declared
// in key order so both output files list keys alphabetically.
type Snapshot struct {
	LayerGroups map[string]resource.Info `json:"layergroups,omitempty"`
	Layers      map[string]resource.Info `json:"layers"`
	Styles      map[string]resource.Info `json:"styles"`
	Workspaces  map[string]Workspace     `json:"workspaces"`
}

type Workspace struct {
	CoverageStores map[string]resource.Info `json:"coveragestores,omitempty"`
	DataStores     map[string]resource.Info `json:"datastores,omitempty"`
	Default        bool                     `json:"default"`
	Name           string                   `json:"name"`
	WMSStores      map[string]resource.Info `json:"wmsstores,omitempty"`
	WMTSStores     map[string]resource.Info `json:"wmtsstores,omitempty"`
}

// Asset is a style definition to be stored next to the snapshot under the
// file name the server reports for it.
type Asset struct {
	Style    string
	Filename string
	Data     []byte
}

type Result struct {
	Snapshot Snapshot
	Assets   []Asset
}

type Options struct {
	// AllStores adds coverage, WMS and WMTS stores and layer groups.
	AllStores bool
}

func newSnapshot() Snapshot {
	return Snapshot{
		Layers:     map[string]resource.Info{},
		Styles:     map[string]resource.Info{},
		Workspaces: map[string]Workspace{},
	}
}
