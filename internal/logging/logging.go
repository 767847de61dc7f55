package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/crmarques/geoserverctl/config"
	"github.com/crmarques/geoserverctl/faults"
)

type Options struct {
	// Fs opens file destinations; defaults to the OS filesystem.
	Fs afero.Fs
	// Stdout and Stderr replace the process streams for the named
	// destinations.
	Stdout io.Writer
	Stderr io.Writer
	// Spy receives a copy of every entry at the configured level.
	Spy io.Writer
}

// New builds the process logger from the logging section. The returned close
// function flushes buffered entries and releases a file destination.
func New(cfg config.Logging, opts Options) (*zap.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	sink, closeSink, err := openDestination(cfg.Destination, opts)
	if err != nil {
		return nil, nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	atomicLevel := zap.NewAtomicLevelAt(level)

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.Lock(sink), atomicLevel),
	}
	if opts.Spy != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(opts.Spy)), atomicLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	closeFn := func() error {
		_ = logger.Sync()
		return closeSink()
	}
	return logger, closeFn, nil
}

// TraceLogger returns a logr.Logger that writes HTTP traffic traces to w.
// Traces are emitted at verbosity 1, which maps to the zap debug level.
func TraceLogger(w io.Writer) logr.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(zapcore.DebugLevel),
	)
	return zapr.NewLogger(zap.New(core))
}

// ParseLevel accepts zap level names, "warning" and "critical", and the
// numeric levels 10 to 50 used by settings files written for older tooling.
func ParseLevel(value string) (zapcore.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return zapcore.InfoLevel, nil
	}

	if numeric, err := strconv.Atoi(trimmed); err == nil {
		switch {
		case numeric <= 10:
			return zapcore.DebugLevel, nil
		case numeric <= 20:
			return zapcore.InfoLevel, nil
		case numeric <= 30:
			return zapcore.WarnLevel, nil
		default:
			return zapcore.ErrorLevel, nil
		}
	}

	switch trimmed {
	case "warning":
		return zapcore.WarnLevel, nil
	case "critical":
		return zapcore.ErrorLevel, nil
	}

	level, err := zapcore.ParseLevel(trimmed)
	if err != nil {
		return zapcore.InfoLevel, faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("logging.level %q is not a known level", value),
			err,
		)
	}
	return level, nil
}

func openDestination(destination string, opts Options) (zapcore.WriteSyncer, func() error, error) {
	noop := func() error { return nil }

	switch strings.TrimSpace(destination) {
	case "", config.LogDestinationStderr:
		if opts.Stderr != nil {
			return zapcore.AddSync(opts.Stderr), noop, nil
		}
		return zapcore.AddSync(os.Stderr), noop, nil
	case config.LogDestinationStdout:
		if opts.Stdout != nil {
			return zapcore.AddSync(opts.Stdout), noop, nil
		}
		return zapcore.AddSync(os.Stdout), noop, nil
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	file, err := fs.OpenFile(strings.TrimSpace(destination), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("logging.destination %q could not be opened", destination),
			err,
		)
	}
	return zapcore.AddSync(file), file.Close, nil
}
