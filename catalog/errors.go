package catalog

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/crmarques/geoserverctl/faults"
	"github.com/crmarques/geoserverctl/resource"
)

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func unsupportedError(kind resource.Kind, operation string) error {
	return faults.NewTypedError(
		faults.UnsupportedError,
		fmt.Sprintf("%s is not supported for %s resources", operation, kind.Name),
		nil,
	)
}

// classifyStatusError maps a non-success status of a collection request to
// an error category.
func classifyStatusError(statusCode int, body []byte) error {
	message := fmt.Sprintf("remote request failed with status %d: %s", statusCode, summarizeBody(body))

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return faults.NewTypedError(faults.AuthError, message, nil)
	case http.StatusNotFound:
		return faults.NewTypedError(faults.NotFoundError, message, nil)
	case http.StatusConflict:
		return faults.NewTypedError(faults.ConflictError, message, nil)
	}

	if statusCode >= 400 && statusCode < 500 {
		return validationError(message, nil)
	}
	return faults.NewTypedError(faults.TransportError, message, nil)
}

func summarizeBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "<empty>"
	}
	if len(trimmed) > 512 {
		return trimmed[:512] + "..."
	}
	return trimmed
}
