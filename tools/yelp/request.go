package yelp

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Request describes a single call to the Yelp API
type Request struct {
	Method string
	// Route is the endpoint template, used in logs and metrics
	Route string
	// Path is the escaped path of the endpoint
	Path string
	// Query holds the present parameters only
	Query url.Values
	// Body is the JSON body for POST requests
	Body []byte
}

// EncodeQuery returns the query parameters from the fields of the struct.
// The parameter name is taken from `url` tag, or `json` tag when not present,
// nil pointers and fields tagged with "-" are skipped.
// Booleans are encoded as true or false, numbers in decimal form.
func EncodeQuery(v any) url.Values {
	q := url.Values{}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return q
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return q
	}

	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := fieldName(sf)
		if name == "" {
			continue
		}

		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if s, ok := formatValue(fv); ok {
			q.Set(name, s)
		}
	}
	return q
}

func fieldName(sf reflect.StructField) string {
	tag, ok := sf.Tag.Lookup("url")
	if !ok {
		tag = sf.Tag.Get("json")
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	}
	return name
}

func formatValue(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	}
	return "", false
}
