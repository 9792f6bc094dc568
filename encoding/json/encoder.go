package json

import (
	"bytes"
	stdjson "encoding/json"
	"reflect"
	"strings"

	"github.com/bububa/ljson"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/yelpmcp/pkg/llmutils"
	"github.com/spf13/cast"
)

// Decoder decodes JSON produced by people or models,
// the text around the JSON document is ignored.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Unmarshal decodes bs into ret.
// When ret points to a struct, string values of boolean and numeric fields
// are converted to the field type, e.g. "5", 5.0 or "true",
// other type mismatches are returned as errors.
func (d *Decoder) Unmarshal(bs []byte, ret any) error {
	data := bytes.TrimSpace(llmutils.CleanJSON(bs))
	if len(data) == 0 {
		return nil
	}

	typ := reflect.TypeOf(ret)
	if typ == nil || typ.Kind() != reflect.Pointer || typ.Elem().Kind() != reflect.Struct {
		return ljson.Unmarshal(data, ret)
	}

	args := map[string]any{}
	if err := ljson.Unmarshal(data, &args); err != nil {
		return err
	}
	coerce(args, typ.Elem())

	js, err := stdjson.Marshal(args)
	if err != nil {
		return errors.WithStack(err)
	}
	return stdjson.Unmarshal(js, ret)
}

func coerce(args map[string]any, typ reflect.Type) {
	for i := range typ.NumField() {
		f := typ.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		val, ok := args[name]
		if !ok {
			continue
		}

		kind := f.Type.Kind()
		if kind == reflect.Pointer {
			kind = f.Type.Elem().Kind()
		}
		if v, ok := convert(val, kind); ok {
			args[name] = v
		}
	}
}

func convert(val any, kind reflect.Kind) (any, bool) {
	s, ok := val.(string)
	if !ok {
		return nil, false
	}
	s = strings.TrimSpace(s)

	var (
		v   any
		err error
	)
	switch kind {
	case reflect.Bool:
		v, err = cast.ToBoolE(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err = cast.ToInt64E(s)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err = cast.ToUint64E(s)
	case reflect.Float32, reflect.Float64:
		v, err = cast.ToFloat64E(s)
	default:
		return nil, false
	}
	return v, err == nil
}
