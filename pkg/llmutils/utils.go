// Package llmutils provides helpers to clean up tool input produced by
// language models and to render tool output.
package llmutils

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// CleanJSON returns the JSON document embedded in the model output,
// dropping any text before the first opening brace or bracket
// and after the last closing one, e.g.
// `Here you go: {json}` or a ```json fenced block.
func CleanJSON(bs []byte) []byte {
	start := bytes.IndexAny(bs, "{[")
	if start == -1 {
		return bs
	}
	bs = bs[start:]

	end := max(bytes.LastIndexByte(bs, '}'), bytes.LastIndexByte(bs, ']'))
	if end == -1 {
		return bs
	}
	return bs[:end+1]
}

var backtick = []byte("```")

// TrimBackticks returns the content of the fenced block,
// or the trimmed input when there is no fence.
func TrimBackticks(bs []byte) []byte {
	start := bytes.Index(bs, backtick)
	if start == -1 {
		return bytes.TrimSpace(bs)
	}
	content := bs[start+len(backtick):]
	// skip the language tag
	if nl := bytes.IndexByte(content, '\n'); nl != -1 && !bytes.ContainsAny(content[:nl], "{[:=") {
		content = content[nl+1:]
	}
	if end := bytes.LastIndex(content, backtick); end != -1 {
		content = content[:end]
	}
	return bytes.TrimSpace(content)
}

// IsJSONObject reports whether bs holds a single valid JSON object.
func IsJSONObject(bs []byte) bool {
	bs = bytes.TrimSpace(bs)
	return len(bs) > 1 && bs[0] == '{' && json.Valid(bs)
}

// JSONIndent returns the indented body,
// or the body as is when it is not valid JSON.
func JSONIndent(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "\t"); err != nil {
		return string(body)
	}
	return buf.String()
}

func ToJSON(val any) string {
	js, _ := json.Marshal(val)
	return string(js)
}

func ToJSONIndent(val any) string {
	js, _ := json.MarshalIndent(val, "", "\t")
	return string(js)
}

func ToYAML(val any) string {
	js, _ := yaml.Marshal(val)
	return string(js)
}

// BackticksJSON wraps the JSON into a markdown fenced block
func BackticksJSON(js string) string {
	return "\n```json\n" + strings.TrimSpace(js) + "\n```\n"
}
