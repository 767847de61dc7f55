package snapshot

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crmarques/geoserverctl/internal/cli/common"
	snapshotdomain "github.com/crmarques/geoserverctl/snapshot"
)

type writeReport struct {
	Files []string `json:"files" yaml:"files"`
}

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var outputDir string
	var allStores bool
	var toStdout bool

	command := &cobra.Command{
		Use:   "snapshot",
		Short: "Export the server configuration as JSON",
		Long: "Export workspaces with their stores and feature types, layers and styles " +
			"into " + snapshotdomain.CompactFileName + " and " + snapshotdomain.PrettyFileName +
			", next to one .sld file per style.",
		Example: "  geoserverctl snapshot --output-dir ./backup\n" +
			"  geoserverctl snapshot --all-stores --stdout",
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			aggregator, err := common.RequireSnapshots(deps)
			if err != nil {
				return err
			}

			result, err := aggregator.Build(command.Context(), snapshotdomain.Options{AllStores: allStores})
			if err != nil {
				return err
			}

			if toStdout {
				encoded, err := snapshotdomain.Encode(result.Snapshot, true)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(command.OutOrStdout(), string(encoded))
				return err
			}

			writer := snapshotdomain.NewWriter(common.FileSystem(deps), outputDir)
			files, err := writer.Write(result)
			if err != nil {
				return err
			}
			return common.WriteOutput(command, globalFlags, writeReport{Files: files}, func(w io.Writer, report writeReport) error {
				for _, file := range report.Files {
					if _, err := fmt.Fprintln(w, file); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	command.Flags().StringVar(&outputDir, "output-dir", ".", "directory receiving the snapshot and style files")
	command.Flags().BoolVar(&allStores, "all-stores", false, "also export coverage, WMS and WMTS stores and layer groups")
	command.Flags().BoolVar(&toStdout, "stdout", false, "print the indented snapshot instead of writing files")
	return command
}
