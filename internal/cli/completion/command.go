package completion

import (
	"bytes"
	"io"

	"github.com/spf13/cobra"
)

var (
	zshCompletionAppendPattern = []byte(`completions+=${comp}`)
	zshCompletionAppendQuoted  = []byte(`completions+=("${comp}")`)
	zshEvalRequestPattern      = []byte(`out=$(eval ${requestComp} 2>/dev/null)`)
	zshEvalRequestQuoted       = []byte(`out=$(eval "${requestComp}" 2>/dev/null)`)
)

func NewCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Args:  cobra.NoArgs,
	}
	command.AddCommand(
		newShellCommand("bash", "Generate Bash completion", func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		}),
		newShellCommand("zsh", "Generate Zsh completion", func(root *cobra.Command, w io.Writer) error {
			buffer := &bytes.Buffer{}
			if err := root.GenZshCompletion(buffer); err != nil {
				return err
			}
			_, err := w.Write(normalizeZshCompletion(buffer.Bytes()))
			return err
		}),
		newShellCommand("fish", "Generate Fish completion", func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		}),
		newShellCommand("powershell", "Generate PowerShell completion", func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		}),
	)
	return command
}

func newShellCommand(shell string, short string, generate func(*cobra.Command, io.Writer) error) *cobra.Command {
	return &cobra.Command{
		Use:   shell,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return generate(command.Root(), command.OutOrStdout())
		},
	}
}

// normalizeZshCompletion quotes completion items so names with spaces stay
// a single word.
func normalizeZshCompletion(script []byte) []byte {
	normalized := bytes.ReplaceAll(script, zshCompletionAppendPattern, zshCompletionAppendQuoted)
	normalized = bytes.ReplaceAll(normalized, zshEvalRequestPattern, zshEvalRequestQuoted)
	return normalized
}
