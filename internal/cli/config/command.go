package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	configdomain "github.com/crmarques/geoserverctl/config"
	"github.com/crmarques/geoserverctl/faults"
	"github.com/crmarques/geoserverctl/internal/cli/common"
)

const maskedSecret = "********"

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the settings file",
		Args:  cobra.NoArgs,
	}

	command.AddCommand(
		newShowCommand(deps, globalFlags),
		newInitCommand(deps, globalFlags),
		newPathCommand(deps, globalFlags),
	)
	return command
}

func newShowCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var showSecrets bool

	command := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Long:  "Print the settings after defaults are applied. Without a settings file the defaults are printed.",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			settings, err := common.RequireSettings(deps)
			if err != nil {
				return err
			}

			cfg, _, _, err := settings.Load(globalFlags.Config)
			if err != nil {
				return err
			}
			if !showSecrets && cfg.Server.Pass != "" {
				cfg.Server.Pass = maskedSecret
			}

			return common.WriteOutput(command, globalFlags, cfg, renderYAML)
		},
	}
	command.Flags().BoolVar(&showSecrets, "show-secrets", false, "print the server password in clear text")
	return command
}

func newInitCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var force bool

	command := &cobra.Command{
		Use:     "init",
		Short:   "Write a settings file populated with defaults",
		Example: "  geoserverctl config init\n  geoserverctl --config /etc/geoserverctl/settings.yaml config init --force",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			settings, err := common.RequireSettings(deps)
			if err != nil {
				return err
			}

			_, path, found, err := settings.Load(globalFlags.Config)
			if err != nil && !force {
				return err
			}
			if found && !force {
				return faults.NewTypedError(faults.ConflictError, fmt.Sprintf("settings file %q already exists; use --force to overwrite", path), nil)
			}

			written, err := settings.Save(globalFlags.Config, configdomain.Default())
			if err != nil {
				return err
			}
			return common.WriteText(command, globalFlags, written)
		},
	}
	command.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file")
	return command
}

func newPathCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path in use",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			settings, err := common.RequireSettings(deps)
			if err != nil {
				return err
			}

			_, path, found, err := settings.Load(globalFlags.Config)
			switch {
			case err != nil && faults.IsCategory(err, faults.ValidationError):
				path += " (invalid)"
			case err != nil:
				return err
			case !found:
				path += " (not found, defaults in use)"
			}
			return common.WriteText(command, globalFlags, path)
		},
	}
}

func renderYAML(w io.Writer, cfg configdomain.Config) error {
	encoded, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(encoded)
	return err
}
