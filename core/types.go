package core

import (
	"io"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/crmarques/geoserverctl/catalog"
	"github.com/crmarques/geoserverctl/config"
	"github.com/crmarques/geoserverctl/server"
	"github.com/crmarques/geoserverctl/snapshot"
)

// GeoserverContext carries everything a command needs for one run. It is
// built once and closed when the command returns.
type GeoserverContext struct {
	Config      config.Config
	ConfigPath  string
	ConfigFound bool

	Fs        afero.Fs
	Logger    *zap.Logger
	Transport server.Transport
	Catalog   *catalog.Catalog
	Snapshots *snapshot.Aggregator

	closeLogger func() error
}

type BootstrapConfig struct {
	// ConfigPath is the --config value; empty falls back to the
	// environment and then to the default file name.
	ConfigPath string
	Fs         afero.Fs
	Stdout     io.Writer
	Stderr     io.Writer
}
