package resource

import (
	"github.com/mitchellh/mapstructure"

	"github.com/crmarques/geoserverctl/faults"
)

// StyleInfo is the part of a style description needed to store its
// definition file.
type StyleInfo struct {
	Name     string `mapstructure:"name"`
	Format   string `mapstructure:"format"`
	Filename string `mapstructure:"filename"`
}

// NamedInfo is the common shape of every singular response.
type NamedInfo struct {
	Name string `mapstructure:"name"`
}

// Decode copies the info into target, a pointer to a struct with
// mapstructure tags. Unknown keys are ignored.
func (i Info) Decode(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return faults.NewTypedError(faults.InternalError, "failed to build info decoder", err)
	}
	if err := decoder.Decode(map[string]any(i)); err != nil {
		return faults.NewTypedError(faults.ValidationError, "info does not have the expected shape", err)
	}
	return nil
}
