package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	ConfigFileEnvVar  = "GEOSERVERCTL_CONFIG"
	DefaultConfigPath = "settings.yaml"

	DefaultServerURL     = "localhost"
	DefaultServerPort    = 8080
	DefaultServerAddress = "geoserver"
	DefaultServerUser    = "admin"
	DefaultServerPass    = "geoserver"
	DefaultServerScheme  = "http"

	DefaultLogDestination = "geoserverctl.log"
	DefaultLogLevel       = "info"

	LogDestinationStderr = "stderr"
	LogDestinationStdout = "stdout"
)

// Config is loaded once at startup and handed to every component by value.
type Config struct {
	Server  Server  `yaml:"server"`
	Logging Logging `yaml:"logging"`
}

type Server struct {
	URL               string        `yaml:"url"`
	Port              int           `yaml:"port"`
	Address           string        `yaml:"address"`
	User              string        `yaml:"user,omitempty"`
	Pass              string        `yaml:"pass,omitempty"`
	Scheme            string        `yaml:"scheme,omitempty"`
	Timeout           time.Duration `yaml:"timeout,omitempty"`
	RequestsPerSecond float64       `yaml:"requests-per-second,omitempty"`
	TLS               *TLS          `yaml:"tls,omitempty"`
}

type Logging struct {
	Destination string `yaml:"destination"`
	Level       string `yaml:"level"`
}

type TLS struct {
	CACertFile         string `yaml:"ca-cert-file,omitempty"`
	ClientCertFile     string `yaml:"client-cert-file,omitempty"`
	ClientKeyFile      string `yaml:"client-key-file,omitempty"`
	InsecureSkipVerify bool   `yaml:"insecure-skip-verify,omitempty"`
}

func Default() Config {
	return Config{
		Server: Server{
			URL:     DefaultServerURL,
			Port:    DefaultServerPort,
			Address: DefaultServerAddress,
			User:    DefaultServerUser,
			Pass:    DefaultServerPass,
			Scheme:  DefaultServerScheme,
		},
		Logging: Logging{
			Destination: DefaultLogDestination,
			Level:       DefaultLogLevel,
		},
	}
}

// BaseURL joins scheme, host, port and path prefix. The returned URL always
// ends with a slash so relative request paths resolve below the prefix.
func (s Server) BaseURL() (*url.URL, error) {
	scheme := strings.ToLower(strings.TrimSpace(s.Scheme))
	if scheme == "" {
		scheme = DefaultServerScheme
	}
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("server.scheme must be http or https, got %q", s.Scheme)
	}

	host := strings.TrimSpace(s.URL)
	if host == "" {
		return nil, fmt.Errorf("server.url is required")
	}
	if strings.Contains(host, "://") || strings.ContainsAny(host, "/?#") {
		return nil, fmt.Errorf("server.url must be a bare host name, got %q", s.URL)
	}
	if s.Port <= 0 || s.Port > 65535 {
		return nil, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port)
	}

	prefix := strings.Trim(strings.TrimSpace(s.Address), "/")
	path := "/"
	if prefix != "" {
		path = "/" + prefix + "/"
	}

	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(s.Port)),
		Path:   path,
	}, nil
}

// WithCredentialDefaults fills the credential pair when the config file omits it.
func (s Server) WithCredentialDefaults() Server {
	if s.User == "" && s.Pass == "" {
		s.User = DefaultServerUser
		s.Pass = DefaultServerPass
	}
	if strings.TrimSpace(s.Scheme) == "" {
		s.Scheme = DefaultServerScheme
	}
	return s
}
