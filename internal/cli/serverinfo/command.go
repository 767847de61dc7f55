package serverinfo

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crmarques/geoserverctl/catalog"
	"github.com/crmarques/geoserverctl/faults"
	"github.com/crmarques/geoserverctl/internal/cli/common"
)

type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Satisfies *bool  `json:"satisfies,omitempty" yaml:"satisfies,omitempty"`
}

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "server",
		Short: "Inspect the GeoServer instance",
		Args:  cobra.NoArgs,
	}
	command.AddCommand(newVersionCommand(deps, globalFlags))
	return command
}

func newVersionCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var constraint string

	command := &cobra.Command{
		Use:     "version",
		Short:   "Print the GeoServer version",
		Example: "  geoserverctl server version\n  geoserverctl server version --min '>= 2.20'",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			cat, err := common.RequireCatalog(deps)
			if err != nil {
				return err
			}

			version, err := cat.ServerVersion(command.Context())
			if err != nil {
				return err
			}

			value := versionInfo{Version: version.String()}
			if strings.TrimSpace(constraint) == "" {
				return common.WriteOutput(command, globalFlags, value, renderVersionText)
			}

			ok, err := catalog.CheckVersion(version, constraint)
			if err != nil {
				return err
			}
			value.Satisfies = &ok
			if err := common.WriteOutput(command, globalFlags, value, renderVersionText); err != nil {
				return err
			}
			if !ok {
				return faults.NewTypedError(
					faults.UnsupportedError,
					fmt.Sprintf("GeoServer %s does not satisfy %q", version, constraint),
					nil,
				)
			}
			return nil
		},
	}
	command.Flags().StringVar(&constraint, "min", "", "semver constraint the server must satisfy")
	return command
}

func renderVersionText(w io.Writer, value versionInfo) error {
	_, err := fmt.Fprintln(w, value.Version)
	return err
}
