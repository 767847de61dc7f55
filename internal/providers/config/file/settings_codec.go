package file

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/crmarques/geoserverctl/config"
)

// settingsDocument mirrors config.Config with pointers on the keys that must
// be present in a settings file.
type settingsDocument struct {
	Server  *settingsServer  `yaml:"server"`
	Logging *settingsLogging `yaml:"logging"`
}

type settingsServer struct {
	URL               *string       `yaml:"url"`
	Port              *int          `yaml:"port"`
	Address           *string       `yaml:"address"`
	User              string        `yaml:"user"`
	Pass              string        `yaml:"pass"`
	Scheme            string        `yaml:"scheme"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests-per-second"`
	TLS               *config.TLS   `yaml:"tls"`
}

type settingsLogging struct {
	Destination *string `yaml:"destination"`
	Level       *string `yaml:"level"`
}

func decodeSettings(data []byte) (settingsDocument, error) {
	var document settingsDocument

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&document); err != nil && !errors.Is(err, io.EOF) {
		return settingsDocument{}, validationError("invalid settings yaml", err)
	}

	return document, nil
}

func encodeSettings(cfg config.Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// ResolvePath picks the settings file: the explicit path, then the
// environment variable, then the default file in the working directory.
func ResolvePath(explicitPath string) string {
	if path := strings.TrimSpace(explicitPath); path != "" {
		return path
	}
	if path := strings.TrimSpace(os.Getenv(config.ConfigFileEnvVar)); path != "" {
		return path
	}
	return config.DefaultConfigPath
}
