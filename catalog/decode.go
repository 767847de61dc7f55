package catalog

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/crmarques/geoserverctl/resource"
	"github.com/crmarques/geoserverctl/server"
)

func decodeJSONBody(body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, server.NewEnvelopeShapeError("response body is empty", nil)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, server.NewEnvelopeShapeError("response body is not valid JSON", err)
	}

	object, ok := value.(map[string]any)
	if !ok {
		return nil, server.NewEnvelopeShapeError("response body must be a JSON object", nil)
	}
	return object, nil
}

// decodeListing reads {"<list>": {"<item>": [{"name": ..., "href": ...}]}}.
// The server sends {"<list>": ""} for an empty collection and a single
// object instead of an array for some one-element collections.
func decodeListing(kind resource.Kind, body []byte) (resource.Listing, error) {
	root, err := decodeJSONBody(body)
	if err != nil {
		return resource.Listing{}, err
	}

	envelope, ok := root[kind.ListKey]
	if !ok {
		return resource.Listing{}, server.NewEnvelopeShapeError(
			fmt.Sprintf("list response has no %q key", kind.ListKey),
			nil,
		)
	}

	switch typed := envelope.(type) {
	case string:
		if strings.TrimSpace(typed) == "" {
			return resource.Listing{}, nil
		}
		return resource.Listing{}, server.NewEnvelopeShapeError(
			fmt.Sprintf("list response key %q holds unexpected text", kind.ListKey),
			nil,
		)
	case map[string]any:
		return decodeListItems(kind, typed)
	default:
		return resource.Listing{}, server.NewEnvelopeShapeError(
			fmt.Sprintf("list response key %q must be an object", kind.ListKey),
			nil,
		)
	}
}

func decodeListItems(kind resource.Kind, envelope map[string]any) (resource.Listing, error) {
	rawItems, ok := envelope[kind.ItemKey]
	if !ok {
		return resource.Listing{}, server.NewEnvelopeShapeError(
			fmt.Sprintf("list response %q has no %q key", kind.ListKey, kind.ItemKey),
			nil,
		)
	}

	var items []any
	switch typed := rawItems.(type) {
	case []any:
		items = typed
	case map[string]any:
		items = []any{typed}
	default:
		return resource.Listing{}, server.NewEnvelopeShapeError(
			fmt.Sprintf("list response %q must be an array", kind.ItemKey),
			nil,
		)
	}

	listing := resource.Listing{}
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return resource.Listing{}, server.NewEnvelopeShapeError("list entries must be JSON objects", nil)
		}

		name := entryName(entry["name"])
		if strings.TrimSpace(name) == "" {
			return resource.Listing{}, server.NewEnvelopeShapeError("list entry has no name", nil)
		}
		href, _ := entry["href"].(string)

		listing.Add(resource.Ref{Name: name, Href: href})
	}
	return listing, nil
}

// entryName accepts names the server renders as JSON numbers, such as a
// layer called 2019.
func entryName(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case json.Number:
		return typed.String()
	default:
		return ""
	}
}

func decodeInfo(kind resource.Kind, body []byte) (resource.Info, error) {
	root, err := decodeJSONBody(body)
	if err != nil {
		return nil, err
	}

	item, ok := root[kind.ItemKey].(map[string]any)
	if !ok {
		return nil, server.NewEnvelopeShapeError(
			fmt.Sprintf("response has no %q object", kind.ItemKey),
			nil,
		)
	}
	return resource.Info(item), nil
}

func encodeNamePayload(kind resource.Kind, name string) ([]byte, error) {
	type namePayload struct {
		XMLName xml.Name
		Name    string `xml:"name"`
	}

	payload, err := xml.Marshal(namePayload{
		XMLName: xml.Name{Local: kind.ItemKey},
		Name:    name,
	})
	if err != nil {
		return nil, validationError("failed to encode request payload", err)
	}
	return payload, nil
}
