package common

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/crmarques/geoserverctl/catalog"
	"github.com/crmarques/geoserverctl/config"
	"github.com/crmarques/geoserverctl/snapshot"
)

// SettingsStore reads and writes the settings file resolved from --config,
// the environment, or the default name.
type SettingsStore interface {
	Load(explicitPath string) (cfg config.Config, path string, found bool, err error)
	Save(explicitPath string, cfg config.Config) (string, error)
}

type CommandDependencies struct {
	Catalog   *catalog.Catalog
	Snapshots *snapshot.Aggregator
	Settings  SettingsStore
	Fs        afero.Fs
	Logger    *zap.Logger
}

func RequireCatalog(deps CommandDependencies) (*catalog.Catalog, error) {
	if deps.Catalog == nil {
		return nil, ValidationError("geoserver catalog is not configured", nil)
	}
	return deps.Catalog, nil
}

func RequireSnapshots(deps CommandDependencies) (*snapshot.Aggregator, error) {
	if deps.Snapshots == nil {
		return nil, ValidationError("snapshot aggregator is not configured", nil)
	}
	return deps.Snapshots, nil
}

func RequireSettings(deps CommandDependencies) (SettingsStore, error) {
	if deps.Settings == nil {
		return nil, ValidationError("settings store is not configured", nil)
	}
	return deps.Settings, nil
}

func FileSystem(deps CommandDependencies) afero.Fs {
	if deps.Fs == nil {
		return afero.NewOsFs()
	}
	return deps.Fs
}

func Logger(deps CommandDependencies) *zap.Logger {
	if deps.Logger == nil {
		return zap.NewNop()
	}
	return deps.Logger
}
