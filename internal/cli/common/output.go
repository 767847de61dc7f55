package common

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/crmarques/geoserverctl/internal/cli/commandmeta"
)

const (
	OutputAuto = "auto"
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

func ValidateOutputFormat(format string) error {
	switch format {
	case OutputAuto, OutputText, OutputJSON, OutputYAML:
		return nil
	default:
		return ValidationError("invalid output format: use auto, text, json, or yaml", nil)
	}
}

func ValidateOutputFormatForCommandPath(commandPath string, format string) error {
	switch strings.TrimSpace(format) {
	case "", OutputAuto, OutputText:
		return nil
	}

	switch commandmeta.OutputPolicyForPath(commandPath) {
	case commandmeta.OutputPolicyTextOnly:
		return ValidationError("command supports only text output; use --output text or --output auto", nil)
	case commandmeta.OutputPolicyYAMLDefaultTextOrYAML:
		if strings.TrimSpace(format) == OutputYAML {
			return nil
		}
		return ValidationError("command supports only yaml or text output; use --output yaml, text, or auto", nil)
	default:
		return nil
	}
}

func OutputFormat(globalFlags *GlobalFlags) string {
	if globalFlags == nil || globalFlags.Output == "" {
		return OutputAuto
	}
	return globalFlags.Output
}

// WriteOutput renders value in the selected format. A --jq expression is
// applied first; its results are always rendered as data.
func WriteOutput[T any](command *cobra.Command, globalFlags *GlobalFlags, value T, renderText func(io.Writer, T) error) error {
	if isNilOutputValue(value) {
		return nil
	}

	format := OutputFormat(globalFlags)
	if expression := strings.TrimSpace(JQExpression(globalFlags)); expression != "" {
		filtered, err := ApplyJQ(value, expression)
		if err != nil {
			return err
		}
		return writeData(command.OutOrStdout(), format, filtered)
	}

	switch format {
	case OutputAuto, OutputText:
		if renderText != nil {
			return renderText(command.OutOrStdout(), value)
		}
		_, err := fmt.Fprintln(command.OutOrStdout(), value)
		return err
	default:
		return writeData(command.OutOrStdout(), format, value)
	}
}

func WriteText(command *cobra.Command, globalFlags *GlobalFlags, text string) error {
	return WriteOutput(command, globalFlags, text, func(w io.Writer, value string) error {
		_, err := fmt.Fprintln(w, value)
		return err
	})
}

// ApplyJQ runs expression over value after a JSON round trip. Zero results
// yield nil, one result is returned as is, more are returned as a slice.
func ApplyJQ(value any, expression string) (any, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, ValidationError("invalid jq expression", err)
	}

	input, err := jqInput(value)
	if err != nil {
		return nil, err
	}

	iter := query.Run(input)
	var results []any
	for {
		result, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := result.(error); ok {
			return nil, ValidationError("jq evaluation failed", err)
		}
		results = append(results, result)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// jqInput converts value into the plain maps, slices and float64 numbers
// gojq accepts.
func jqInput(value any) (any, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, ValidationError("failed to encode output for jq", err)
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return nil, ValidationError("failed to decode output for jq", err)
	}
	return decoded, nil
}

func writeData(w io.Writer, format string, value any) error {
	switch format {
	case OutputAuto, OutputText:
		if text, ok := value.(string); ok {
			_, err := fmt.Fprintln(w, text)
			return err
		}
		return writeJSON(w, value)
	case OutputJSON:
		return writeJSON(w, value)
	case OutputYAML:
		encoded, err := yaml.Marshal(value)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(encoded))
		return err
	default:
		return ValidationError("invalid output format: use auto, text, json, or yaml", nil)
	}
}

func writeJSON(w io.Writer, value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(encoded))
	return err
}

func isNilOutputValue[T any](value T) bool {
	anyValue := any(value)
	if anyValue == nil {
		return true
	}

	reflected := reflect.ValueOf(anyValue)
	switch reflected.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return reflected.IsNil()
	default:
		return false
	}
}
