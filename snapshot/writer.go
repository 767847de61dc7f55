package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/crmarques/geoserverctl/faults"
)

const (
	CompactFileName = "geoserver_config.json"
	PrettyFileName  = "geoserver_config_prettyprint.json"

	prettyIndent = "    "
)

// Writer stores snapshot files and style definitions below one directory.
type Writer struct {
	fs  afero.Fs
	dir string
}

func NewWriter(fs afero.Fs, dir string) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return &Writer{fs: fs, dir: dir}
}

// Encode renders the snapshot as compact JSON, or indented by four spaces
// when pretty is set. Keys are sorted in both forms.
func Encode(snapshot Snapshot, pretty bool) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if pretty {
		encoder.SetIndent("", prettyIndent)
	}
	if err := encoder.Encode(snapshot); err != nil {
		return nil, faults.NewTypedError(faults.InternalError, "failed to encode snapshot", err)
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

// Write stores the result: every style definition, then the compact and
// the indented snapshot. It returns the written paths in that order.
// Nothing is written when two styles share a filename or a style filename
// matches a snapshot file.
func (w *Writer) Write(result Result) ([]string, error) {
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return nil, faults.NewTypedError(faults.InternalError, fmt.Sprintf("failed to create output directory %q", w.dir), err)
	}

	owners := map[string]string{}
	for _, asset := range result.Assets {
		name, err := assetFileName(asset)
		if err != nil {
			return nil, err
		}
		if name == CompactFileName || name == PrettyFileName {
			return nil, faults.NewTypedError(
				faults.ValidationError,
				fmt.Sprintf("style %q filename %q collides with a snapshot file", asset.Style, asset.Filename),
				nil,
			)
		}
		if owner, taken := owners[name]; taken {
			return nil, faults.NewTypedError(
				faults.ValidationError,
				fmt.Sprintf("styles %q and %q both use filename %q", owner, asset.Style, name),
				nil,
			)
		}
		owners[name] = asset.Style
	}

	written := make([]string, 0, len(result.Assets)+2)
	for _, asset := range result.Assets {
		path, err := w.WriteAsset(asset)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	for _, output := range []struct {
		name   string
		pretty bool
	}{
		{name: CompactFileName},
		{name: PrettyFileName, pretty: true},
	} {
		data, err := Encode(result.Snapshot, output.pretty)
		if err != nil {
			return written, err
		}
		path := filepath.Join(w.dir, output.name)
		if err := w.writeFile(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteAsset stores a style definition under the server-reported file name.
// Directory parts of that name are dropped.
func (w *Writer) WriteAsset(asset Asset) (string, error) {
	name, err := assetFileName(asset)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, name)
	if err := w.writeFile(path, asset.Data); err != nil {
		return "", err
	}
	return path, nil
}

func assetFileName(asset Asset) (string, error) {
	name := filepath.Base(filepath.Clean("/" + strings.TrimSpace(asset.Filename)))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("style %q has an unusable filename %q", asset.Style, asset.Filename),
			nil,
		)
	}
	return name, nil
}

func (w *Writer) writeFile(path string, data []byte) error {
	if err := afero.WriteFile(w.fs, path, data, 0o644); err != nil {
		return faults.NewTypedError(faults.InternalError, fmt.Sprintf("failed to write %q", path), err)
	}
	return nil
}
