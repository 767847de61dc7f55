package snapshot

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/crmarques/geoserverctl/faults"
	"github.com/crmarques/geoserverctl/resource"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Workspaces: map[string]Workspace{
			"tiger": {Name: "tiger", Default: true},
		},
		Layers: map[string]resource.Info{},
		Styles: map[string]resource.Info{
			"line": {"name": "line", "filename": "default_line.sld"},
		},
	}
}

func TestEncodeSortsKeys(t *testing.T) {
	t.Parallel()

	compact, err := Encode(sampleSnapshot(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"layers":{},"styles":{"line":{"filename":"default_line.sld","name":"line"}},"workspaces":{"tiger":{"default":true,"name":"tiger"}}}`
	if string(compact) != want {
		t.Fatalf("unexpected compact output:\n got %s\nwant %s", compact, want)
	}

	pretty, err := Encode(sampleSnapshot(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantPretty := strings.Join([]string{
		`{`,
		`    "layers": {},`,
		`    "styles": {`,
		`        "line": {`,
		`            "filename": "default_line.sld",`,
		`            "name": "line"`,
		`        }`,
		`    },`,
		`    "workspaces": {`,
		`        "tiger": {`,
		`            "default": true,`,
		`            "name": "tiger"`,
		`        }`,
		`    }`,
		`}`,
	}, "\n")
	if diff := cmp.Diff(wantPretty, string(pretty)); diff != "" {
		t.Fatalf("unexpected pretty output (-want +got):\n%s", diff)
	}
}

func TestWriterWritesAllFiles(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writer := NewWriter(fs, "/out")

	written, err := writer.Write(Result{
		Snapshot: sampleSnapshot(),
		Assets:   []Asset{{Style: "line", Filename: "default_line.sld", Data: []byte("<sld/>")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPaths := []string{"/out/default_line.sld", "/out/geoserver_config.json", "/out/geoserver_config_prettyprint.json"}
	if diff := cmp.Diff(wantPaths, written); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}

	sld, err := afero.ReadFile(fs, "/out/default_line.sld")
	if err != nil || string(sld) != "<sld/>" {
		t.Fatalf("unexpected sld file %q err=%v", string(sld), err)
	}
	compact, err := afero.ReadFile(fs, "/out/geoserver_config.json")
	if err != nil || !strings.HasPrefix(string(compact), `{"layers":{}`) {
		t.Fatalf("unexpected compact file %q err=%v", string(compact), err)
	}
}

func TestWriteAssetStripsDirectories(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writer := NewWriter(fs, "/out")

	path, err := writer.WriteAsset(Asset{Style: "evil", Filename: "../../etc/evil.sld", Data: []byte("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/out/evil.sld" {
		t.Fatalf("expected asset to stay in the output directory, got %q", path)
	}

	if _, err := writer.WriteAsset(Asset{Style: "blank", Filename: "  "}); err == nil {
		t.Fatal("expected empty filename to be rejected")
	}
}

func TestWriteRejectsFilenameCollisions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		assets []Asset
	}{
		{
			name: "shared_style_filename",
			assets: []Asset{
				{Style: "line", Filename: "common.sld", Data: []byte("<line/>")},
				{Style: "point", Filename: "styles/common.sld", Data: []byte("<point/>")},
			},
		},
		{
			name: "snapshot_filename",
			assets: []Asset{
				{Style: "line", Filename: CompactFileName, Data: []byte("<line/>")},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			writer := NewWriter(fs, "/out")

			written, err := writer.Write(Result{Snapshot: sampleSnapshot(), Assets: tt.assets})
			if !faults.IsCategory(err, faults.ValidationError) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(written) != 0 {
				t.Fatalf("expected nothing written, got %v", written)
			}
			for _, path := range []string{"/out/common.sld", "/out/" + CompactFileName, "/out/" + PrettyFileName} {
				exists, statErr := afero.Exists(fs, path)
				if statErr != nil || exists {
					t.Fatalf("expected %s to be absent, exists=%t err=%v", path, exists, statErr)
				}
			}
		})
	}
}
