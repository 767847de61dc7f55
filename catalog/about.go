package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/crmarques/geoserverctl/server"
)

const (
	aboutVersionPath      = "about/version.json"
	serverVersionResource = "GeoServer"
)

type aboutDocument struct {
	About struct {
		Resource []aboutResource `json:"resource"`
	} `json:"about"`
}

type aboutResource struct {
	Name    string `json:"@name"`
	Version any    `json:"Version"`
}

// ServerVersion asks the server for its own version.
func (c *Catalog) ServerVersion(ctx context.Context) (*semver.Version, error) {
	status, body, err := c.transport.Send(ctx, http.MethodGet, restRoot+aboutVersionPath, nil, server.MediaTypeJSON)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, classifyStatusError(status, body)
	}

	var document aboutDocument
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, server.NewEnvelopeShapeError("version response is not valid", err)
	}

	for _, entry := range document.About.Resource {
		if !strings.EqualFold(entry.Name, serverVersionResource) {
			continue
		}

		raw := strings.TrimSpace(fmt.Sprint(entry.Version))
		version, err := semver.NewVersion(raw)
		if err != nil {
			return nil, validationError(fmt.Sprintf("server reported an unparseable version %q", raw), err)
		}
		c.logger.Debug("server version", zap.String("version", version.String()))
		return version, nil
	}

	return nil, server.NewEnvelopeShapeError("version response does not describe the server", nil)
}

// CheckVersion reports whether version satisfies the constraint, for example
// ">= 2.20".
func CheckVersion(version *semver.Version, constraint string) (bool, error) {
	if version == nil {
		return false, validationError("version is required", nil)
	}

	parsed, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, validationError(fmt.Sprintf("invalid version constraint %q", constraint), err)
	}
	return parsed.Check(version), nil
}
