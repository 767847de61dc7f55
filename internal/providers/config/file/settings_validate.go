package file

import (
	"fmt"
	"strings"

	"github.com/crmarques/geoserverctl/config"
)

func validateSettings(document settingsDocument) error {
	var missing []string

	if document.Server == nil {
		missing = append(missing, "server.url", "server.port", "server.address")
	} else {
		if document.Server.URL == nil {
			missing = append(missing, "server.url")
		}
		if document.Server.Port == nil {
			missing = append(missing, "server.port")
		}
		if document.Server.Address == nil {
			missing = append(missing, "server.address")
		}
	}

	if document.Logging == nil {
		missing = append(missing, "logging.destination", "logging.level")
	} else {
		if document.Logging.Destination == nil {
			missing = append(missing, "logging.destination")
		}
		if document.Logging.Level == nil {
			missing = append(missing, "logging.level")
		}
	}

	if len(missing) > 0 {
		return validationError(fmt.Sprintf("settings file is missing required keys: %s", strings.Join(missing, ", ")), nil)
	}

	if document.Server.TLS != nil {
		hasCert := strings.TrimSpace(document.Server.TLS.ClientCertFile) != ""
		hasKey := strings.TrimSpace(document.Server.TLS.ClientKeyFile) != ""
		if hasCert != hasKey {
			return validationError("server.tls requires both client-cert-file and client-key-file", nil)
		}
	}
	if document.Server.Timeout < 0 {
		return validationError("server.timeout must not be negative", nil)
	}
	if document.Server.RequestsPerSecond < 0 {
		return validationError("server.requests-per-second must not be negative", nil)
	}

	return nil
}

func settingsToConfig(document settingsDocument) config.Config {
	server := config.Server{
		URL:               strings.TrimSpace(*document.Server.URL),
		Port:              *document.Server.Port,
		Address:           strings.TrimSpace(*document.Server.Address),
		User:              document.Server.User,
		Pass:              document.Server.Pass,
		Scheme:            strings.TrimSpace(document.Server.Scheme),
		Timeout:           document.Server.Timeout,
		RequestsPerSecond: document.Server.RequestsPerSecond,
		TLS:               document.Server.TLS,
	}

	return config.Config{
		Server: server.WithCredentialDefaults(),
		Logging: config.Logging{
			Destination: strings.TrimSpace(*document.Logging.Destination),
			Level:       strings.TrimSpace(*document.Logging.Level),
		},
	}
}
