package toml

import (
	"github.com/BurntSushi/toml"
	"github.com/effective-security/yelpmcp/pkg/llmutils"
)

type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Unmarshal(bs []byte, ret any) error {
	data := llmutils.TrimBackticks(bs)
	return toml.Unmarshal(data, ret)
}
