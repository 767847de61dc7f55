package common

import "github.com/spf13/cobra"

type GlobalFlags struct {
	Config   string
	Debug    bool
	NoStatus bool
	NoColor  bool
	Output   string
	JQ       string
}

func BindGlobalFlags(command *cobra.Command, flags *GlobalFlags) {
	command.PersistentFlags().StringVarP(&flags.Config, "config", "c", "", "settings file path (defaults to $GEOSERVERCTL_CONFIG or settings.yaml)")
	command.PersistentFlags().BoolVarP(&flags.Debug, "debug", "d", false, "trace http requests to stderr")
	command.PersistentFlags().BoolVarP(&flags.NoStatus, "no-status", "n", false, "hide status output")
	command.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false, "disable color output")
	command.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputAuto, "output format: auto|text|json|yaml")
	command.PersistentFlags().StringVar(&flags.JQ, "jq", "", "jq expression applied to structured output")
	_ = command.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{OutputAuto, OutputText, OutputJSON, OutputYAML}, cobra.ShellCompDirectiveNoFileComp
	})
}

func JQExpression(flags *GlobalFlags) string {
	if flags == nil {
		return ""
	}
	return flags.JQ
}
