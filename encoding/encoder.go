// Package encoding decodes tool arguments written as JSON, YAML or TOML
// into the JSON object accepted by the tools.
package encoding

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	jsonenc "github.com/effective-security/yelpmcp/encoding/json"
	tomlenc "github.com/effective-security/yelpmcp/encoding/toml"
	yamlenc "github.com/effective-security/yelpmcp/encoding/yaml"
)

// Decoder decodes the arguments
type Decoder interface {
	Unmarshal([]byte, any) error
}

type Mode = string

const (
	ModeJSON Mode = "json"
	ModeYAML Mode = "yaml"
	ModeTOML Mode = "toml"
)

// ModeDefault is the default mode for the arguments
var ModeDefault = ModeJSON

// Modes returns the supported modes
func Modes() []Mode {
	return []Mode{ModeJSON, ModeYAML, ModeTOML}
}

var (
	_ Decoder = (*jsonenc.Decoder)(nil)
	_ Decoder = (*tomlenc.Decoder)(nil)
	_ Decoder = (*yamlenc.Decoder)(nil)
)

// PredefinedDecoder returns the decoder for the mode
func PredefinedDecoder(mode Mode) (Decoder, error) {
	switch mode {
	case ModeJSON, "":
		return jsonenc.NewDecoder(), nil
	case ModeYAML, "yml":
		return yamlenc.NewDecoder(), nil
	case ModeTOML:
		return tomlenc.NewDecoder(), nil
	}
	return nil, errors.Errorf("unsupported arguments format: %s", mode)
}

// ToJSON returns the arguments as JSON object.
// Empty input is an empty object.
func ToJSON(mode Mode, data []byte) ([]byte, error) {
	dec, err := PredefinedDecoder(mode)
	if err != nil {
		return nil, err
	}

	args := map[string]any{}
	if err := dec.Unmarshal(data, &args); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s arguments", mode)
	}
	if args == nil {
		args = map[string]any{}
	}
	return json.Marshal(args)
}
