package commandmeta

import "testing"

func TestRequiresContextBootstrapPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path   string
		expect bool
	}{
		{path: "geoserverctl workspace list", expect: true},
		{path: "geoserverctl snapshot", expect: true},
		{path: "geoserverctl server version", expect: true},
		{path: "geoserverctl config show", expect: false},
		{path: "geoserverctl completion bash", expect: false},
		{path: "geoserverctl version", expect: false},
		{path: "geoserverctl", expect: false},
	}

	for _, testCase := range testCases {
		if got := RequiresContextBootstrapPath(testCase.path); got != testCase.expect {
			t.Fatalf("RequiresContextBootstrapPath(%q) = %t, want %t", testCase.path, got, testCase.expect)
		}
	}
}

func TestEmitsExecutionStatusPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path   string
		expect bool
	}{
		{path: "geoserverctl workspace create", expect: true},
		{path: "geoserverctl workspace delete-all", expect: true},
		{path: "geoserverctl workspace set-default", expect: true},
		{path: "geoserverctl snapshot", expect: true},
		{path: "geoserverctl workspace list", expect: false},
		{path: "geoserverctl style sld", expect: false},
	}

	for _, testCase := range testCases {
		if got := EmitsExecutionStatusPath(testCase.path); got != testCase.expect {
			t.Fatalf("EmitsExecutionStatusPath(%q) = %t, want %t", testCase.path, got, testCase.expect)
		}
	}
}
