package resource

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/crmarques/geoserverctl/faults"
)

const JSONExtension = ".json"

// RenderTemplate fills the {placeholders} of template in order with the
// escaped scope values.
func RenderTemplate(template string, scope Scope) (string, error) {
	placeholders := templatePlaceholders(template)
	if len(placeholders) != len(scope) {
		return "", faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("path %q needs %d parent name(s) [%s], got %d", template, len(placeholders), strings.Join(placeholders, ", "), len(scope)),
			nil,
		)
	}

	var builder strings.Builder
	remaining := template
	for _, value := range scope {
		start := strings.Index(remaining, "{")
		end := strings.Index(remaining, "}")
		segment, err := EscapeSegment(value)
		if err != nil {
			return "", err
		}
		builder.WriteString(remaining[:start])
		builder.WriteString(segment)
		remaining = remaining[end+1:]
	}
	builder.WriteString(remaining)

	return builder.String(), nil
}

// EscapeSegment validates a resource name and escapes it for use as a single
// path segment.
func EscapeSegment(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", faults.NewTypedError(faults.ValidationError, "resource name must not be empty", nil)
	}
	if trimmed == "." || trimmed == ".." {
		return "", faults.NewTypedError(faults.ValidationError, "resource name must not be a traversal segment", nil)
	}
	return url.PathEscape(trimmed), nil
}

// WithExtension appends a representation suffix such as ".json" or ".sld".
func WithExtension(path string, extension string) string {
	if extension == "" {
		return path
	}
	return path + extension
}

func templatePlaceholders(template string) []string {
	var names []string
	remaining := template
	for {
		start := strings.Index(remaining, "{")
		if start < 0 {
			return names
		}
		end := strings.Index(remaining[start:], "}")
		if end < 0 {
			return names
		}
		names = append(names, remaining[start+1:start+end])
		remaining = remaining[start+end+1:]
	}
}
