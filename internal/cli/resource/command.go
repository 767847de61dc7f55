package resource

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crmarques/geoserverctl/catalog"
	"github.com/crmarques/geoserverctl/internal/cli/common"
	resourcedomain "github.com/crmarques/geoserverctl/resource"
)

// NewCommands returns one command group per resource kind.
func NewCommands(deps common.CommandDependencies, globalFlags *common.GlobalFlags) []*cobra.Command {
	kinds := resourcedomain.Kinds()
	commands := make([]*cobra.Command, 0, len(kinds))
	for _, kind := range kinds {
		commands = append(commands, NewKindCommand(deps, globalFlags, kind))
	}
	return commands
}

func NewKindCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags, kind resourcedomain.Kind) *cobra.Command {
	command := &cobra.Command{
		Use:   string(kind.Name),
		Short: "Manage " + kind.Label + " resources",
		Args:  cobra.NoArgs,
	}

	command.AddCommand(
		newListCommand(deps, globalFlags, kind),
		newGetCommand(deps, globalFlags, kind),
		newExistsCommand(deps, globalFlags, kind),
	)
	if kind.Supports(resourcedomain.CapCreate) {
		command.AddCommand(newCreateCommand(deps, globalFlags, kind))
	}
	if kind.Supports(resourcedomain.CapDelete) {
		command.AddCommand(newDeleteCommand(deps, globalFlags, kind))
	}
	if kind.Supports(resourcedomain.CapDeleteAll) {
		command.AddCommand(newDeleteAllCommand(deps, globalFlags, kind))
	}
	if kind.Supports(resourcedomain.CapSetDefault) {
		command.AddCommand(
			newSetDefaultCommand(deps, globalFlags, kind),
			newDefaultCommand(deps, globalFlags, kind),
		)
	}
	if kind.Supports(resourcedomain.CapRawAsset) {
		command.AddCommand(newRawAssetCommand(deps, kind))
	}

	return command
}

// scopeFlags binds one required flag per parent placeholder of the kind,
// e.g. --workspace and --datastore for feature types.
type scopeFlags struct {
	names  []string
	values []string
}

func bindScopeFlags(command *cobra.Command, kind resourcedomain.Kind) *scopeFlags {
	names := kind.ScopeNames()
	flags := &scopeFlags{names: names, values: make([]string, len(names))}
	for idx, name := range names {
		command.Flags().StringVar(&flags.values[idx], name, "", name+" name")
		_ = command.MarkFlagRequired(name)
	}
	return flags
}

func (f *scopeFlags) scope() (resourcedomain.Scope, error) {
	if f == nil || len(f.names) == 0 {
		return nil, nil
	}
	scope := make(resourcedomain.Scope, 0, len(f.values))
	for idx, value := range f.values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil, common.ValidationError(fmt.Sprintf("flag --%s is required", f.names[idx]), nil)
		}
		scope = append(scope, trimmed)
	}
	return scope, nil
}

func scopeExample(kind resourcedomain.Kind) string {
	parts := make([]string, 0, len(kind.ScopeNames()))
	for _, name := range kind.ScopeNames() {
		parts = append(parts, fmt.Sprintf("--%s my-%s", name, name))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func requireClient(deps common.CommandDependencies, kind resourcedomain.Kind) (*catalog.ResourceClient, error) {
	cat, err := common.RequireCatalog(deps)
	if err != nil {
		return nil, err
	}
	return cat.Client(kind.Name)
}

func requireName(args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", common.ValidationError("resource name is required", nil)
	}
	return strings.TrimSpace(args[0]), nil
}
