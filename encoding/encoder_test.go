package encoding_test

import (
	"encoding/json"
	"testing"

	"github.com/effective-security/yelpmcp/encoding"
	jsonenc "github.com/effective-security/yelpmcp/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ToJSON(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		mode  encoding.Mode
		input string
	}{
		{encoding.ModeJSON, `{"location":"Austin, TX","limit":5}`},
		{encoding.ModeJSON, "Sure:\n```json\n{\"location\": \"Austin, TX\", \"limit\": 5}\n```"},
		{encoding.ModeYAML, "location: Austin, TX\nlimit: 5\n"},
		{encoding.ModeYAML, "```yaml\nlocation: Austin, TX\nlimit: 5\n```"},
		{encoding.ModeTOML, "location = \"Austin, TX\"\nlimit = 5\n"},
	}
	for _, tc := range tcs {
		js, err := encoding.ToJSON(tc.mode, []byte(tc.input))
		require.NoError(t, err, tc.input)

		var args map[string]any
		require.NoError(t, json.Unmarshal(js, &args))
		assert.Equal(t, "Austin, TX", args["location"], tc.input)
		assert.EqualValues(t, 5, args["limit"], tc.input)
	}
}

func Test_ToJSON_Empty(t *testing.T) {
	t.Parallel()

	for _, mode := range encoding.Modes() {
		js, err := encoding.ToJSON(mode, nil)
		require.NoError(t, err, mode)
		assert.Equal(t, "{}", string(js), mode)
	}
}

func Test_ToJSON_Errors(t *testing.T) {
	t.Parallel()

	_, err := encoding.ToJSON("xml", []byte("<phone/>"))
	assert.EqualError(t, err, "unsupported arguments format: xml")

	_, err = encoding.ToJSON(encoding.ModeTOML, []byte("phone = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode toml arguments")

	_, err = encoding.ToJSON(encoding.ModeYAML, []byte("- a\n- b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode yaml arguments")
}

func Test_JSONDecoder_Struct(t *testing.T) {
	t.Parallel()

	type params struct {
		Location *string  `json:"location,omitempty"`
		Limit    *int     `json:"limit,omitempty"`
		Radius   int      `json:"radius"`
		OpenNow  *bool    `json:"open_now,omitempty"`
		Latitude *float64 `json:"latitude,omitempty"`
	}

	dec := jsonenc.NewDecoder()

	var p params
	err := dec.Unmarshal([]byte(`{"location":"NYC","limit":"5","radius":1000.0,"open_now":"true","latitude":"40.71"}`), &p)
	require.NoError(t, err)
	require.NotNil(t, p.Location)
	assert.Equal(t, "NYC", *p.Location)
	require.NotNil(t, p.Limit)
	assert.Equal(t, 5, *p.Limit)
	assert.Equal(t, 1000, p.Radius)
	require.NotNil(t, p.OpenNow)
	assert.True(t, *p.OpenNow)
	require.NotNil(t, p.Latitude)
	assert.Equal(t, 40.71, *p.Latitude)

	var empty params
	require.NoError(t, dec.Unmarshal([]byte("  "), &empty))
	assert.Nil(t, empty.Location)

	for _, input := range []string{
		`{"location":5}`,
		`{"limit":"five"}`,
		`{"limit":2.5}`,
		`{"open_now":"maybe"}`,
		`["NYC"]`,
	} {
		var p params
		assert.Error(t, dec.Unmarshal([]byte(input), &p), input)
	}
}
