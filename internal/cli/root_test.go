package cli

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/crmarques/geoserverctl/config"
	"github.com/crmarques/geoserverctl/faults"
	clitestkit "github.com/crmarques/geoserverctl/internal/cli/testkit"
)

const lineSLD = `<StyledLayerDescriptor version="1.0.0"><NamedLayer><Name>line</Name></NamedLayer></StyledLayerDescriptor>`

func ok(body string) clitestkit.Response {
	return clitestkit.Response{Status: http.StatusOK, Body: body}
}

func catalogRoutes() map[string]clitestkit.Response {
	return map[string]clitestkit.Response{
		"GET rest/workspaces.json":                 ok(`{"workspaces":{"workspace":[{"name":"cite","href":"h/cite.json"},{"name":"topp","href":"h/topp.json"}]}}`),
		"GET rest/workspaces/topp.json":            ok(`{"workspace":{"name":"topp","isolated":false}}`),
		"GET rest/workspaces/cite.json":            ok(`{"workspace":{"name":"cite"}}`),
		"GET rest/workspaces/default.json":         ok(`{"workspace":{"name":"topp"}}`),
		"GET rest/workspaces/cite/datastores.json": ok(`{"dataStores":""}`),
		"GET rest/workspaces/topp/datastores.json": ok(`{"dataStores":""}`),
		"GET rest/layers.json":                     ok(`{"layers":""}`),
		"GET rest/styles.json":                     ok(`{"styles":{"style":[{"name":"line","href":"h/line.json"}]}}`),
		"GET rest/styles/line.json":                ok(`{"style":{"name":"line","format":"sld","filename":"default_line.sld"}}`),
		"GET rest/styles/line.sld":                 ok(lineSLD),
		"GET rest/about/version.json":              ok(`{"about":{"resource":[{"@name":"GeoServer","Version":"2.19.2"}]}}`),
		"POST rest/workspaces":                     {Status: http.StatusCreated},
		"DELETE rest/workspaces/cite":              ok(""),
		"DELETE rest/workspaces/topp":              {Status: http.StatusForbidden, Body: "workspace is not empty"},
		"PUT rest/workspaces/default":              ok(""),
	}
}

func newTestDependencies(t *testing.T) (Dependencies, *clitestkit.Transport, afero.Fs) {
	t.Helper()

	transport := clitestkit.NewTransport(catalogRoutes())
	fs := afero.NewMemMapFs()
	commandDeps, err := clitestkit.NewDependencies(transport, fs)
	if err != nil {
		t.Fatalf("unexpected dependency error: %v", err)
	}
	return Dependencies{
		Catalog:   commandDeps.Catalog,
		Snapshots: commandDeps.Snapshots,
		Settings:  &memorySettings{},
		Fs:        fs,
		Logger:    commandDeps.Logger,
	}, transport, fs
}

func executeForTest(deps Dependencies, args ...string) (string, error) {
	return clitestkit.ExecuteCommandForTest(NewRootCommand(deps), "", args...)
}

type memorySettings struct {
	cfg   *config.Config
	saved int
}

func (m *memorySettings) Load(explicitPath string) (config.Config, string, bool, error) {
	path := explicitPath
	if path == "" {
		path = config.DefaultConfigPath
	}
	if m.cfg == nil {
		return config.Default(), path, false, nil
	}
	return *m.cfg, path, true, nil
}

func (m *memorySettings) Save(explicitPath string, cfg config.Config) (string, error) {
	m.cfg = &cfg
	m.saved++
	if explicitPath == "" {
		return config.DefaultConfigPath, nil
	}
	return explicitPath, nil
}

func TestRootRegistersCommandTree(t *testing.T) {
	t.Parallel()

	registered := map[string]struct{}{}
	for _, path := range clitestkit.RegisteredPaths(NewRootCommand(Dependencies{}), nil) {
		registered[clitestkit.JoinPath(path)] = struct{}{}
	}

	expected := []string{
		"workspace list", "workspace get", "workspace exists", "workspace create", "workspace delete",
		"workspace delete-all", "workspace set-default", "workspace default",
		"datastore list", "coveragestore list", "wmsstore list", "wmtsstore list",
		"featuretype get", "layer list", "layergroup list", "style list", "style sld",
		"snapshot", "server version", "config show", "config init", "config path",
		"completion bash", "version",
	}
	for _, path := range expected {
		if _, ok := registered[path]; !ok {
			t.Fatalf("expected command %q to be registered", path)
		}
	}

	for _, path := range []string{"datastore create", "layer delete", "style delete-all", "workspace sld"} {
		if _, ok := registered[path]; ok {
			t.Fatalf("command %q must not be registered", path)
		}
	}
}

func TestWorkspaceListOutputs(t *testing.T) {
	t.Parallel()

	deps, _, _ := newTestDependencies(t)

	output, err := executeForTest(deps, "workspace", "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("cite\ntopp\n", output); diff != "" {
		t.Fatalf("unexpected text output (-want +got):\n%s", diff)
	}

	output, err = executeForTest(deps, "workspace", "list", "--jq", "[.[].name]", "-o", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("[\n  \"cite\",\n  \"topp\"\n]\n", output); diff != "" {
		t.Fatalf("unexpected jq output (-want +got):\n%s", diff)
	}
}

func TestScopedListRequiresParentFlags(t *testing.T) {
	t.Parallel()

	deps, transport, _ := newTestDependencies(t)

	if _, err := executeForTest(deps, "datastore", "list"); err == nil {
		t.Fatal("expected missing --workspace to fail")
	}

	output, err := executeForTest(deps, "datastore", "list", "--workspace", "topp", "-o", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("[]\n", output); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
	if !transport.Called(http.MethodGet, "rest/workspaces/topp/datastores.json") {
		t.Fatalf("expected scoped listing request, got %#v", transport.Requests())
	}
}

func TestWorkspaceGetAndExists(t *testing.T) {
	t.Parallel()

	deps, _, _ := newTestDependencies(t)

	output, err := executeForTest(deps, "workspace", "get", "topp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("isolated: false\nname: topp\n", output); diff != "" {
		t.Fatalf("unexpected get output (-want +got):\n%s", diff)
	}

	_, err = executeForTest(deps, "workspace", "get", "missing")
	if !faults.IsCategory(err, faults.NotFoundError) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Workspace does not exist") {
		t.Fatalf("expected sentinel message, got %v", err)
	}

	output, err = executeForTest(deps, "workspace", "exists", "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "false\n" {
		t.Fatalf("unexpected exists output %q", output)
	}

	if _, err := executeForTest(deps, "workspace", "get"); !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected missing name to be a validation error, got %v", err)
	}
}

func TestWorkspaceMutations(t *testing.T) {
	t.Parallel()

	deps, transport, _ := newTestDependencies(t)

	output, err := executeForTest(deps, "workspace", "create", "nurc")
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if output != "created workspace \"nurc\"\n" {
		t.Fatalf("unexpected create output %q", output)
	}
	requests := transport.Requests()
	last := requests[len(requests)-1]
	if last.Payload != "<workspace><name>nurc</name></workspace>" {
		t.Fatalf("unexpected create payload %q", last.Payload)
	}

	_, err = executeForTest(deps, "workspace", "delete", "topp")
	if !faults.IsCategory(err, faults.ConflictError) {
		t.Fatalf("expected refused delete to be a conflict, got %v", err)
	}

	output, err = executeForTest(deps, "workspace", "set-default", "cite", "-o", "json", "--jq", ".action")
	if err != nil {
		t.Fatalf("unexpected set-default error: %v", err)
	}
	if output != "\"set default\"\n" {
		t.Fatalf("unexpected set-default output %q", output)
	}

	output, err = executeForTest(deps, "workspace", "default")
	if err != nil {
		t.Fatalf("unexpected default error: %v", err)
	}
	if output != "topp\n" {
		t.Fatalf("unexpected default output %q", output)
	}
}

func TestWorkspaceDeleteAll(t *testing.T) {
	t.Parallel()

	deps, transport, _ := newTestDependencies(t)

	_, err := executeForTest(deps, "workspace", "delete-all")
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected confirmation to be required, got %v", err)
	}
	if transport.Called(http.MethodDelete, "rest/workspaces/cite") {
		t.Fatal("expected no delete without confirmation")
	}

	output, err := executeForTest(deps, "workspace", "delete-all", "--yes", "-o", "json")
	if !faults.IsCategory(err, faults.ConflictError) {
		t.Fatalf("expected partial failure to be reported, got %v", err)
	}
	expected := "{\n  \"deleted\": [\n    \"cite\"\n  ],\n  \"failed\": [\n    \"topp\"\n  ]\n}\n"
	if diff := cmp.Diff(expected, output); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestStyleSLD(t *testing.T) {
	t.Parallel()

	deps, _, fs := newTestDependencies(t)

	output, err := executeForTest(deps, "style", "sld", "line")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != lineSLD {
		t.Fatalf("unexpected sld output %q", output)
	}

	if _, err := executeForTest(deps, "style", "sld", "line", "--output-file", "/styles/line.sld"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := afero.ReadFile(fs, "/styles/line.sld")
	if err != nil || string(data) != lineSLD {
		t.Fatalf("expected sld file, got %q err=%v", data, err)
	}

	_, err = executeForTest(deps, "style", "sld", "missing")
	if !faults.IsCategory(err, faults.NotFoundError) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServerVersion(t *testing.T) {
	t.Parallel()

	deps, _, _ := newTestDependencies(t)

	output, err := executeForTest(deps, "server", "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "2.19.2\n" {
		t.Fatalf("unexpected version output %q", output)
	}

	output, err = executeForTest(deps, "server", "version", "--min", ">= 2.20", "-o", "json")
	if !faults.IsCategory(err, faults.UnsupportedError) {
		t.Fatalf("expected unsupported error, got %v", err)
	}
	if !strings.Contains(output, "\"satisfies\": false") {
		t.Fatalf("expected constraint result in output, got %q", output)
	}
}

func TestSnapshotWritesFiles(t *testing.T) {
	t.Parallel()

	deps, _, fs := newTestDependencies(t)

	output, err := executeForTest(deps, "snapshot", "--output-dir", "/backup")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "/backup/default_line.sld\n/backup/geoserver_config.json\n/backup/geoserver_config_prettyprint.json\n"
	if diff := cmp.Diff(expected, output); diff != "" {
		t.Fatalf("unexpected written files (-want +got):\n%s", diff)
	}

	compact, err := afero.ReadFile(fs, "/backup/geoserver_config.json")
	if err != nil {
		t.Fatalf("expected compact snapshot: %v", err)
	}
	for _, fragment := range []string{`"topp":{"default":true`, `"cite":{"default":false`, `"styles":{"line":`} {
		if !strings.Contains(string(compact), fragment) {
			t.Fatalf("expected %s in snapshot, got %s", fragment, compact)
		}
	}
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	deps, _, _ := newTestDependencies(t)
	settings := deps.Settings.(*memorySettings)

	output, err := executeForTest(deps, "config", "path")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "settings.yaml (not found, defaults in use)\n" {
		t.Fatalf("unexpected path output %q", output)
	}

	output, err = executeForTest(deps, "config", "init")
	if err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}
	if output != "settings.yaml\n" || settings.saved != 1 {
		t.Fatalf("unexpected init result %q saved=%d", output, settings.saved)
	}

	_, err = executeForTest(deps, "config", "init")
	if !faults.IsCategory(err, faults.ConflictError) {
		t.Fatalf("expected existing settings to be kept, got %v", err)
	}
	if _, err := executeForTest(deps, "config", "init", "--force"); err != nil {
		t.Fatalf("unexpected forced init error: %v", err)
	}
	if settings.saved != 2 {
		t.Fatalf("expected forced overwrite, saved=%d", settings.saved)
	}

	output, err = executeForTest(deps, "config", "show")
	if err != nil {
		t.Fatalf("unexpected show error: %v", err)
	}
	if !strings.Contains(output, "pass: '********'") || strings.Contains(output, "pass: "+config.DefaultServerPass) {
		t.Fatalf("expected masked password, got %q", output)
	}

	if _, err := executeForTest(deps, "config", "show", "-o", "json"); !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected json to be rejected for config show, got %v", err)
	}
}

func TestWithoutCatalogCommandsFailCleanly(t *testing.T) {
	t.Parallel()

	_, err := executeForTest(Dependencies{}, "workspace", "list")
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error without catalog, got %v", err)
	}
}
