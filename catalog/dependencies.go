package catalog

import "github.com/crmarques/geoserverctl/resource"

// parentKinds is the containment table. A kind listed here only exists
// inside an existing resource of its parent kind.
var parentKinds = map[resource.KindName]resource.KindName{
	resource.KindDataStore:     resource.KindWorkspace,
	resource.KindCoverageStore: resource.KindWorkspace,
	resource.KindWMSStore:      resource.KindWorkspace,
	resource.KindWMTSStore:     resource.KindWorkspace,
	resource.KindFeatureType:   resource.KindDataStore,
}

func ParentOf(kind resource.KindName) (resource.KindName, bool) {
	parent, ok := parentKinds[kind]
	return parent, ok
}
