package file

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/crmarques/geoserverctl/config"
	"github.com/crmarques/geoserverctl/faults"
)

const validSettingsYAML = `
server:
  url: geo.example.com
  port: 8443
  address: geoserver
  user: ops
  pass: s3cret
  scheme: https
  timeout: 30s
  requests-per-second: 5
logging:
  destination: /var/log/geoserverctl.log
  level: debug
`

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	loader := NewLoader(afero.NewMemMapFs())

	cfg, found, err := loader.Load("settings.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected found=false for a missing file")
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("unexpected defaults (-want +got):\n%s", diff)
	}

	baseURL, err := cfg.Server.BaseURL()
	if err != nil {
		t.Fatalf("unexpected base url error: %v", err)
	}
	if baseURL.String() != "http://localhost:8080/geoserver/" {
		t.Fatalf("unexpected default base url %q", baseURL.String())
	}
}

func TestLoadValidFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeSettings(t, fs, "/etc/geoserverctl/settings.yaml", validSettingsYAML)

	cfg, found, err := NewLoader(fs).Load("/etc/geoserverctl/settings.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}

	want := config.Config{
		Server: config.Server{
			URL:               "geo.example.com",
			Port:              8443,
			Address:           "geoserver",
			User:              "ops",
			Pass:              "s3cret",
			Scheme:            "https",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
		},
		Logging: config.Logging{
			Destination: "/var/log/geoserverctl.log",
			Level:       "debug",
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoadAppliesCredentialDefaults(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeSettings(t, fs, "settings.yaml", `
server:
  url: localhost
  port: 8080
  address: geoserver
logging:
  destination: stderr
  level: 20
`)

	cfg, _, err := NewLoader(fs).Load("settings.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.User != config.DefaultServerUser || cfg.Server.Pass != config.DefaultServerPass {
		t.Fatalf("expected default credentials, got %q/%q", cfg.Server.User, cfg.Server.Pass)
	}
	if cfg.Server.Scheme != config.DefaultServerScheme {
		t.Fatalf("expected default scheme, got %q", cfg.Server.Scheme)
	}
	if cfg.Logging.Level != "20" {
		t.Fatalf("expected numeric level kept as text, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsIncompleteFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		missing []string
	}{
		{
			name: "missing_port",
			content: `
server:
  url: localhost
  address: geoserver
logging:
  destination: stderr
  level: info
`,
			missing: []string{"server.port"},
		},
		{
			name: "missing_logging_section",
			content: `
server:
  url: localhost
  port: 8080
  address: geoserver
`,
			missing: []string{"logging.destination", "logging.level"},
		},
		{
			name:    "empty_file",
			content: "",
			missing: []string{"server.url", "server.port", "server.address", "logging.destination", "logging.level"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			writeSettings(t, fs, "settings.yaml", tt.content)

			_, found, err := NewLoader(fs).Load("settings.yaml")
			if !found {
				t.Fatal("expected found=true for a present file")
			}
			if !faults.IsCategory(err, faults.ValidationError) {
				t.Fatalf("expected validation error, got %v", err)
			}
			for _, key := range tt.missing {
				if !strings.Contains(err.Error(), key) {
					t.Fatalf("expected %q to be reported, got %v", key, err)
				}
			}
		})
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeSettings(t, fs, "settings.yaml", validSettingsYAML+"  colour: blue\n")

	_, _, err := NewLoader(fs).Load("settings.yaml")
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error for unknown key, got %v", err)
	}
}

func TestLoadRejectsIncompleteClientCertificate(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeSettings(t, fs, "settings.yaml", `
server:
  url: localhost
  port: 8443
  address: geoserver
  tls:
    client-cert-file: /tmp/cert.pem
logging:
  destination: stderr
  level: info
`)

	_, _, err := NewLoader(fs).Load("settings.yaml")
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	loader := NewLoader(fs)

	if err := loader.Save("settings.yaml", config.Default()); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	cfg, found, err := loader.Load("settings.yaml")
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if !found {
		t.Fatal("expected saved file to be found")
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("unexpected round trip (-want +got):\n%s", diff)
	}
}

func TestResolvePath(t *testing.T) {
	t.Run("explicit_path_wins", func(t *testing.T) {
		t.Setenv(config.ConfigFileEnvVar, "/from/env.yaml")
		if got := ResolvePath("/from/flag.yaml"); got != "/from/flag.yaml" {
			t.Fatalf("expected flag path, got %q", got)
		}
	})

	t.Run("environment_variable", func(t *testing.T) {
		t.Setenv(config.ConfigFileEnvVar, "/from/env.yaml")
		if got := ResolvePath(""); got != "/from/env.yaml" {
			t.Fatalf("expected env path, got %q", got)
		}
	})

	t.Run("default_path", func(t *testing.T) {
		t.Setenv(config.ConfigFileEnvVar, "")
		if got := ResolvePath(""); got != config.DefaultConfigPath {
			t.Fatalf("expected default path, got %q", got)
		}
	})
}

func writeSettings(t *testing.T, fs afero.Fs, path string, content string) {
	t.Helper()

	if err := afero.WriteFile(fs, path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write settings fixture: %v", err)
	}
}
