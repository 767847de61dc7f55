package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"
	"go.uber.org/zap/zapcore"

	"github.com/crmarques/geoserverctl/config"
	"github.com/crmarques/geoserverctl/faults"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{input: "", want: zapcore.InfoLevel},
		{input: "debug", want: zapcore.DebugLevel},
		{input: "INFO", want: zapcore.InfoLevel},
		{input: "warning", want: zapcore.WarnLevel},
		{input: "warn", want: zapcore.WarnLevel},
		{input: "error", want: zapcore.ErrorLevel},
		{input: "critical", want: zapcore.ErrorLevel},
		{input: "10", want: zapcore.DebugLevel},
		{input: "20", want: zapcore.InfoLevel},
		{input: "25", want: zapcore.WarnLevel},
		{input: "30", want: zapcore.WarnLevel},
		{input: "40", want: zapcore.ErrorLevel},
		{input: "50", want: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("level_"+tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLevelRejectsUnknownName(t *testing.T) {
	t.Parallel()

	_, err := ParseLevel("verbose")
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewWritesToStderrAtConfiguredLevel(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	logger, closeFn, err := New(
		config.Logging{Destination: config.LogDestinationStderr, Level: "warning"},
		Options{Stderr: &stderr},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("Workspace does not exist")
	if err := closeFn(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	output := stderr.String()
	if strings.Contains(output, "hidden") {
		t.Fatalf("expected info entry to be filtered, got %q", output)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &entry); err != nil {
		t.Fatalf("expected one JSON entry, got %q: %v", output, err)
	}
	if entry["msg"] != "Workspace does not exist" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestNewAppendsToFileDestination(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "geoserverctl.log", []byte("previous\n"), 0o644); err != nil {
		t.Fatalf("failed to seed log file: %v", err)
	}

	logger, closeFn, err := New(config.Logging{Destination: "geoserverctl.log", Level: "info"}, Options{Fs: fs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("snapshot written")
	if err := closeFn(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	data, err := afero.ReadFile(fs, "geoserverctl.log")
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.HasPrefix(string(data), "previous\n") {
		t.Fatalf("expected existing content to be kept, got %q", string(data))
	}
	if !strings.Contains(string(data), "snapshot written") {
		t.Fatalf("expected new entry in log file, got %q", string(data))
	}
}

func TestNewCopiesEntriesToSpy(t *testing.T) {
	t.Parallel()

	var spy, stdout bytes.Buffer
	logger, closeFn, err := New(
		config.Logging{Destination: config.LogDestinationStdout, Level: "debug"},
		Options{Stdout: &stdout, Spy: &spy},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("listing workspaces")
	_ = closeFn()

	if !strings.Contains(spy.String(), "listing workspaces") || !strings.Contains(stdout.String(), "listing workspaces") {
		t.Fatalf("expected entry on both sinks, stdout=%q spy=%q", stdout.String(), spy.String())
	}
}

func TestTraceLoggerEnablesVerbosityOne(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	ctx := logr.NewContext(context.Background(), TraceLogger(&buffer))

	logr.FromContextOrDiscard(ctx).V(1).Info("http request", "method", "GET")
	if !strings.Contains(buffer.String(), "http request") {
		t.Fatalf("expected trace output, got %q", buffer.String())
	}
}
