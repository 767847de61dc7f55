package resource

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crmarques/geoserverctl/catalog"
	"github.com/crmarques/geoserverctl/faults"
	"github.com/crmarques/geoserverctl/internal/cli/common"
	resourcedomain "github.com/crmarques/geoserverctl/resource"
)

type mutationResult struct {
	Kind   string `json:"kind" yaml:"kind"`
	Name   string `json:"name" yaml:"name"`
	Action string `json:"action" yaml:"action"`
}

func renderMutationText(w io.Writer, result mutationResult) error {
	_, err := fmt.Fprintf(w, "%s %s %q\n", result.Action, result.Kind, result.Name)
	return err
}

func newCreateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags, kind resourcedomain.Kind) *cobra.Command {
	var flags *scopeFlags

	command := &cobra.Command{
		Use:     "create <name>",
		Short:   "Create a " + kind.Label,
		Example: fmt.Sprintf("  geoserverctl %s create my-%s%s", kind.Name, kind.Name, scopeExample(kind)),
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

			created, err := client.Create(command.Context(), scope, name)
			if err != nil {
				return err
			}
			if !created {
				return faults.NewTypedError(faults.ConflictError, fmt.Sprintf("%s %q was not created", kind.Label, name), nil)
			}
			return common.WriteOutput(command, globalFlags, mutationResult{Kind: string(kind.Name), Name: name, Action: "created"}, renderMutationText)
		},
	}
	flags = bindScopeFlags(command, kind)
	return command
}

func newDeleteCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags, kind resourcedomain.Kind) *cobra.Command {
	var flags *scopeFlags

	command := &cobra.Command{
		Use:     "delete <name>",
		Short:   "Delete a " + kind.Label,
		Example: fmt.Sprintf("  geoserverctl %s delete my-%s%s", kind.Name, kind.Name, scopeExample(kind)),
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

			deleted, err := client.Delete(command.Context(), scope, name)
			if err != nil {
				return err
			}
			if !deleted {
				return faults.NewTypedError(faults.ConflictError, fmt.Sprintf("%s %q was not deleted", kind.Label, name), nil)
			}
			return common.WriteOutput(command, globalFlags, mutationResult{Kind: string(kind.Name), Name: name, Action: "deleted"}, renderMutationText)
		},
	}
	flags = bindScopeFlags(command, kind)
	return command
}

func newDeleteAllCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags, kind resourcedomain.Kind) *cobra.Command {
	var flags *scopeFlags
	var yes bool

	command := &cobra.Command{
		Use:     "delete-all",
		Short:   "Delete every " + kind.Label,
		Example: fmt.Sprintf("  geoserverctl %s delete-all --yes%s", kind.Name, scopeExample(kind)),
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

			confirmed, err := common.ConfirmOrYes(command, yes, fmt.Sprintf("Delete every %s on the server?", kind.Label))
			if err != nil {
				return err
			}
			if !confirmed {
				return common.ValidationError("delete-all was not confirmed", nil)
			}

			report, deleteErr := client.DeleteAll(command.Context(), scope)
			if err := common.WriteOutput(command, globalFlags, report, renderDeleteReportText); err != nil {
				return err
			}
			if deleteErr != nil {
				return deleteErr
			}
			if len(report.Failed) > 0 {
				return faults.NewTypedError(faults.ConflictError, fmt.Sprintf("%d %s resources were not deleted", len(report.Failed), kind.Label), nil)
			}
			return nil
		},
	}
	flags = bindScopeFlags(command, kind)
	command.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	return command
}

func renderDeleteReportText(w io.Writer, report catalog.DeleteReport) error {
	for _, name := range report.Deleted {
		if _, err := fmt.Fprintf(w, "deleted %q\n", name); err != nil {
			return err
		}
	}
	for _, name := range report.Failed {
		if _, err := fmt.Fprintf(w, "failed %q\n", name); err != nil {
			return err
		}
	}
	return nil
}

func newSetDefaultCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags, kind resourcedomain.Kind) *cobra.Command {
	var flags *scopeFlags

	command := &cobra.Command{
		Use:     "set-default <name>",
		Short:   "Make an existing " + kind.Label + " the default",
		Example: fmt.Sprintf("  geoserverctl %s set-default my-%s%s", kind.Name, kind.Name, scopeExample(kind)),
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

			updated, err := client.SetDefault(command.Context(), scope, name)
			if err != nil {
				return err
			}
			if !updated {
				return faults.NewTypedError(faults.ConflictError, fmt.Sprintf("%s %q was not made the default", kind.Label, name), nil)
			}
			return common.WriteOutput(command, globalFlags, mutationResult{Kind: string(kind.Name), Name: name, Action: "set default"}, renderMutationText)
		},
	}
	flags = bindScopeFlags(command, kind)
	return command
}

func newDefaultCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags, kind resourcedomain.Kind) *cobra.Command {
	var flags *scopeFlags

	command := &cobra.Command{
		Use:     "default",
		Short:   "Show the default " + kind.Label,
		Example: fmt.Sprintf("  geoserverctl %s default%s", kind.Name, scopeExample(kind)),
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

			name, found, err := client.DefaultName(command.Context(), scope)
			if err != nil {
				return err
			}
			if !found {
				return common.NotFoundError("no default " + kind.Label + " is set")
			}
			return common.WriteText(command, globalFlags, name)
		},
	}
	flags = bindScopeFlags(command, kind)
	return command
}
