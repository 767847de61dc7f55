package resource

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crmarques/geoserverctl/internal/cli/common"
	resourcedomain "github.com/crmarques/geoserverctl/resource"
)

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags, kind resourcedomain.Kind) *cobra.Command {
	var flags *scopeFlags

	command := &cobra.Command{
		Use:     "list",
		Short:   "List " + kind.Label + " resources",
		Example: fmt.Sprintf("  geoserverctl %s list%s", kind.Name, scopeExample(kind)),
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			scope, err := flags.scope()
			if err != nil {
				return err
			}
			client, err := requireClient(deps, kind)
			if err != nil {
				return err
			}

			listing, err := client.List(command.Context(), scope)
			if err != nil {
				return err
			}

			return common.WriteOutput(command, globalFlags, listing.Refs(), func(w io.Writer, refs []resourcedomain.Ref) error {
				for _, ref := range refs {
					if _, err := fmt.Fprintln(w, ref.Name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	flags = bindScopeFlags(command, kind)
	return command
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags, kind resourcedomain.Kind) *cobra.Command {
	var flags *scopeFlags

	command := &cobra.Command{
		Use:     "get <name>",
		Short:   "Show the server description of a " + kind.Label,
		Example: fmt.Sprintf("  geoserverctl %s get my-%s%s", kind.Name, kind.Name, scopeExample(kind)),
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

			info, err := client.GetInfo(command.Context(), scope, name)
			if err != nil {
				return err
			}
			if message, missing := info.Sentinel(); missing {
				return common.NotFoundError(message)
			}

			return common.WriteOutput(command, globalFlags, info, renderInfoText)
		},
	}
	flags = bindScopeFlags(command, kind)
	return command
}

func newExistsCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags, kind resourcedomain.Kind) *cobra.Command {
	var flags *scopeFlags

	command := &cobra.Command{
		Use:     "exists <name>",
		Short:   "Report whether a " + kind.Label + " exists",
		Example: fmt.Sprintf("  geoserverctl %s exists my-%s%s", kind.Name, kind.Name, scopeExample(kind)),
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

			exists, err := client.Exists(command.Context(), scope, name)
			if err != nil {
				return err
			}
			return common.WriteOutput(command, globalFlags, exists, nil)
		},
	}
	flags = bindScopeFlags(command, kind)
	return command
}

// renderInfoText prints top-level scalar fields as key: value lines and
// nested values as compact markers.
func renderInfoText(w io.Writer, info resourcedomain.Info) error {
	keys := make([]string, 0, len(info))
	for key := range info {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		value := info[key]
		var rendered string
		switch typed := value.(type) {
		case map[string]any:
			rendered = "{...}"
		case []any:
			rendered = fmt.Sprintf("[%d items]", len(typed))
		default:
			rendered = strings.TrimSpace(fmt.Sprint(typed))
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", key, rendered); err != nil {
			return err
		}
	}
	return nil
}
