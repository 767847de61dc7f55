package file

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/crmarques/geoserverctl/config"
	"github.com/crmarques/geoserverctl/faults"
)

// Loader reads settings files from a filesystem. The configuration is read
// once per process and never written back by the CLI.
type Loader struct {
	fs afero.Fs
}

func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// Load returns the configuration stored at path. A missing file yields the
// defaults and found == false; a present file must carry every required key.
func (l *Loader) Load(path string) (cfg config.Config, found bool, err error) {
	exists, err := afero.Exists(l.fs, path)
	if err != nil {
		return config.Config{}, false, internalError(fmt.Sprintf("failed to stat settings file %q", path), err)
	}
	if !exists {
		return config.Default(), false, nil
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return config.Config{}, true, internalError(fmt.Sprintf("failed to read settings file %q", path), err)
	}

	document, err := decodeSettings(data)
	if err != nil {
		return config.Config{}, true, err
	}
	if err := validateSettings(document); err != nil {
		return config.Config{}, true, err
	}

	return settingsToConfig(document), true, nil
}

// Save writes cfg to path. Used to scaffold a settings file.
func (l *Loader) Save(path string, cfg config.Config) error {
	data, err := encodeSettings(cfg)
	if err != nil {
		return internalError("failed to encode settings", err)
	}
	if err := afero.WriteFile(l.fs, path, data, 0o600); err != nil {
		return internalError(fmt.Sprintf("failed to write settings file %q", path), err)
	}
	return nil
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
