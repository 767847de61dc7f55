package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"

	"github.com/crmarques/geoserverctl/core"
	"github.com/crmarques/geoserverctl/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs := afero.NewOsFs()
	deps := cli.Dependencies{
		Settings: core.NewSettingsStore(fs),
		Fs:       fs,
	}

	if !shouldSkipContextBootstrap(args) {
		geoserverContext, err := core.NewGeoserverContext(core.BootstrapConfig{
			ConfigPath: configPathFromArgs(args),
			Fs:         fs,
			Stdout:     os.Stdout,
			Stderr:     os.Stderr,
		})
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			return exitCodeForError(err)
		}
		defer func() { _ = geoserverContext.Close() }()

		deps.Catalog = geoserverContext.Catalog
		deps.Snapshots = geoserverContext.Snapshots
		deps.Logger = geoserverContext.Logger
	}

	if err := cli.Execute(ctx, deps); err != nil {
		return exitCodeForError(err)
	}
	return 0
}

func exitCodeForError(err error) int {
	return cli.ExitCodeForError(err)
}

func configPathFromArgs(args []string) string {
	for idx := 0; idx < len(args); idx++ {
		current := args[idx]
		if current == "--" {
			break
		}

		if current == "--config" || current == "-c" {
			if idx+1 < len(args) {
				return args[idx+1]
			}
			return ""
		}
		if strings.HasPrefix(current, "--config=") {
			return strings.TrimPrefix(current, "--config=")
		}
	}

	return ""
}

func isHelpInvocation(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if args[0] == "help" {
		return true
	}

	for _, current := range args {
		if current == "--" {
			break
		}
		if current == "--help" || current == "-h" {
			return true
		}
	}

	return false
}

func isCompletionInvocation(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "completion", "__complete", "__completeNoDesc":
		return true
	default:
		return false
	}
}

// shouldSkipContextBootstrap is true for invocations that never reach the
// server, so a broken settings file does not block help or config init.
func shouldSkipContextBootstrap(args []string) bool {
	if isHelpInvocation(args) || isCompletionInvocation(args) {
		return true
	}

	commandPath, ok := resolveRunnableCommandPath(args)
	if !ok {
		return true
	}
	return !requiresContextBootstrap(commandPath)
}

func resolveRunnableCommandPath(args []string) (string, bool) {
	probe := cli.NewRootCommand(cli.Dependencies{})
	command, remainingArgs, err := probe.Find(args)
	if err != nil || command == nil || !command.Runnable() {
		return "", false
	}
	if command == probe {
		return "", false
	}

	if err := command.ParseFlags(remainingArgs); err != nil {
		return "", false
	}
	if err := command.ValidateArgs(command.Flags().Args()); err != nil {
		return "", false
	}

	return strings.TrimSpace(command.CommandPath()), true
}

func requiresContextBootstrap(commandPath string) bool {
	return cli.RequiresContextBootstrapPath(commandPath)
}
