package yaml

import (
	"github.com/effective-security/yelpmcp/pkg/llmutils"
	"sigs.k8s.io/yaml"
)

// Decoder decodes YAML through its JSON form,
// so the values have the same types as decoded from JSON.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Unmarshal(bs []byte, ret any) error {
	data := llmutils.TrimBackticks(bs)
	if len(data) == 0 {
		return nil
	}
	return yaml.Unmarshal(data, ret)
}
