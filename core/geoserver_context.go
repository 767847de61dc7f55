package core

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/crmarques/geoserverctl/catalog"
	"github.com/crmarques/geoserverctl/config"
	"github.com/crmarques/geoserverctl/internal/logging"
	configfile "github.com/crmarques/geoserverctl/internal/providers/config/file"
	httptransport "github.com/crmarques/geoserverctl/internal/providers/server/http"
	"github.com/crmarques/geoserverctl/snapshot"
)

// LoadConfig resolves and reads the settings file without building the
// logger or the transport.
func LoadConfig(opts BootstrapConfig) (cfg config.Config, path string, found bool, err error) {
	path = configfile.ResolvePath(opts.ConfigPath)
	cfg, found, err = configfile.NewLoader(opts.Fs).Load(path)
	return cfg, path, found, err
}

// SaveConfig writes cfg to the resolved settings path.
func SaveConfig(opts BootstrapConfig, cfg config.Config) (string, error) {
	path := configfile.ResolvePath(opts.ConfigPath)
	if err := configfile.NewLoader(opts.Fs).Save(path, cfg); err != nil {
		return "", err
	}
	return path, nil
}

func NewGeoserverContext(opts BootstrapConfig) (*GeoserverContext, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
		opts.Fs = fs
	}

	cfg, path, found, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, closeLogger, err := logging.New(cfg.Logging, logging.Options{
		Fs:     fs,
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
	})
	if err != nil {
		return nil, err
	}
	if found {
		logger.Info("initialised with settings", zap.String("path", path))
	} else {
		logger.Info("settings file not found, using defaults", zap.String("path", path))
	}

	transport, err := httptransport.NewHTTPTransport(cfg.Server, httptransport.WithFs(fs))
	if err != nil {
		_ = closeLogger()
		return nil, err
	}

	cat, err := catalog.New(transport, logger)
	if err != nil {
		_ = closeLogger()
		return nil, err
	}

	return &GeoserverContext{
		Config:      cfg,
		ConfigPath:  path,
		ConfigFound: found,
		Fs:          fs,
		Logger:      logger,
		Transport:   transport,
		Catalog:     cat,
		Snapshots:   snapshot.NewAggregator(cat, logger),
		closeLogger: closeLogger,
	}, nil
}

func (c *GeoserverContext) Close() error {
	if c == nil || c.closeLogger == nil {
		return nil
	}
	closeLogger := c.closeLogger
	c.closeLogger = nil
	return closeLogger()
}

// SettingsStore reads and writes settings files on one filesystem without
// building the rest of the context.
type SettingsStore struct {
	fs afero.Fs
}

func NewSettingsStore(fs afero.Fs) SettingsStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return SettingsStore{fs: fs}
}

func (s SettingsStore) Load(explicitPath string) (config.Config, string, bool, error) {
	return LoadConfig(BootstrapConfig{ConfigPath: explicitPath, Fs: s.fs})
}

func (s SettingsStore) Save(explicitPath string, cfg config.Config) (string, error) {
	return SaveConfig(BootstrapConfig{ConfigPath: explicitPath, Fs: s.fs}, cfg)
}
