package llmutils_test

import (
	"testing"

	"github.com/effective-security/yelpmcp/pkg/llmutils"
	"github.com/stretchr/testify/assert"
)

func Test_CleanJSON(t *testing.T) {
	llmOutput := "\n```json\n\n{\"location\": \"Austin, TX\", \"limit\": 5}\n\n```\n\n"
	expected := "{\"location\": \"Austin, TX\", \"limit\": 5}"
	assert.Equal(t, expected, string(llmutils.CleanJSON([]byte(llmOutput))))

	llmOutput = "Here you go:\n```json\n\n[{\"phone\": \"+14159083801\"}]\n```\n\n"
	expected = "[{\"phone\": \"+14159083801\"}]"
	assert.Equal(t, expected, string(llmutils.CleanJSON([]byte(llmOutput))))

	// nothing to clean
	assert.Equal(t, expected, string(llmutils.CleanJSON([]byte(expected))))
	assert.Equal(t, "plain string", string(llmutils.CleanJSON([]byte("plain string"))))
	assert.Equal(t, "{unterminated", string(llmutils.CleanJSON([]byte("{unterminated"))))
}

func Test_TrimBackticks(t *testing.T) {
	assert.Equal(t, "location: Austin, TX\nlimit: 5", string(llmutils.TrimBackticks([]byte("```yaml\nlocation: Austin, TX\nlimit: 5\n```\n"))))
	assert.Equal(t, `phone = "+14159083801"`, string(llmutils.TrimBackticks([]byte("Here:\n```toml\nphone = \"+14159083801\"\n```"))))
	assert.Equal(t, "location: NYC", string(llmutils.TrimBackticks([]byte("  location: NYC\n"))))
	assert.Equal(t, "location: NYC", string(llmutils.TrimBackticks([]byte("```\nlocation: NYC"))))
}

func Test_IsJSONObject(t *testing.T) {
	assert.True(t, llmutils.IsJSONObject([]byte(`{"businesses":[]}`)))
	assert.True(t, llmutils.IsJSONObject([]byte(" {}\n")))
	assert.False(t, llmutils.IsJSONObject([]byte(`[{"a":1}]`)))
	assert.False(t, llmutils.IsJSONObject([]byte(`{"a":`)))
	assert.False(t, llmutils.IsJSONObject([]byte(`<html></html>`)))
	assert.False(t, llmutils.IsJSONObject(nil))
}

func Test_JSONIndent(t *testing.T) {
	assert.Equal(t, "{\n\t\"total\": 1\n}", llmutils.JSONIndent([]byte(`{"total":1}`)))
	assert.Equal(t, "not json", llmutils.JSONIndent([]byte("not json")))
}

func Test_ToJSON(t *testing.T) {
	val := map[string]any{"id": "abc", "rating": 4.5}
	assert.Equal(t, `{"id":"abc","rating":4.5}`, llmutils.ToJSON(val))
	assert.Equal(t, "{\n\t\"id\": \"abc\",\n\t\"rating\": 4.5\n}", llmutils.ToJSONIndent(val))
}

func Test_ToYAML(t *testing.T) {
	val := map[string]any{"id": "abc"}
	assert.Equal(t, "id: abc\n", llmutils.ToYAML(val))
}

func Test_BackticksJSON(t *testing.T) {
	assert.Equal(t, "\n```json\n{\"id\": \"abc\"}\n```\n", llmutils.BackticksJSON("  {\"id\": \"abc\"}\n"))
}
