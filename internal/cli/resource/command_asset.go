package resource

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/crmarques/geoserverctl/internal/cli/common"
	resourcedomain "github.com/crmarques/geoserverctl/resource"
)

// newRawAssetCommand is named after the asset extension, so styles get
// "sld".
func newRawAssetCommand(deps common.CommandDependencies, kind resourcedomain.Kind) *cobra.Command {
	var flags *scopeFlags
	var outputFile string
	use := strings.TrimPrefix(kind.RawAssetExtension, ".")

	command := &cobra.Command{
		Use:     use + " <name>",
		Short:   fmt.Sprintf("Print the %s document of a %s", use, kind.Label),
		Example: fmt.Sprintf("  geoserverctl %s %s my-%s --output-file my-%s%s", kind.Name, use, kind.Name, kind.Name, kind.RawAssetExtension),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			name, err := requireName(args)
			if err != nil {
				return err
			}
			scope, err := flags.scope()
			if err != nil {
				return err
			}
			client, err := requireClient(deps, kind)
			if err != nil {
				return err
			}

			data, found, err := client.RawAsset(command.Context(), scope, name)
			if err != nil {
				return err
			}
			if !found {
				return common.NotFoundError(fmt.Sprintf("%s document of %s %q is not available", use, kind.Label, name))
			}

			if strings.TrimSpace(outputFile) != "" {
				return afero.WriteFile(common.FileSystem(deps), outputFile, data, 0o644)
			}
			_, err = command.OutOrStdout().Write(data)
			return err
		},
	}
	flags = bindScopeFlags(command, kind)
	command.Flags().StringVar(&outputFile, "output-file", "", "write the document to this file instead of stdout")
	return command
}
