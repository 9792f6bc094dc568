package tools_test

import (
	"context"
	"testing"

	"github.com/effective-security/yelpmcp/tools"
	"github.com/stretchr/testify/assert"
)

type fakeTool struct {
	name        string
	description string
}

func (f *fakeTool) Name() string        { return f.name }
func (f *fakeTool) Description() string { return f.description }
func (f *fakeTool) Parameters() any     { return nil }
func (f *fakeTool) Call(_ context.Context, input string) (string, error) {
	return input, nil
}

func TestGetDescriptions(t *testing.T) {
	res := tools.GetDescriptions(
		&fakeTool{name: "yelp_search", description: "Search businesses"},
		&fakeTool{name: "yelp_chat", description: "Chat"},
	)
	exp := "\n```json\n" + `{
	"Tools": [
		{
			"Name": "yelp_search",
			"Description": "Search businesses"
		},
		{
			"Name": "yelp_chat",
			"Description": "Chat"
		}
	]
}` + "\n```\n"
	assert.Equal(t, exp, res)

	assert.Equal(t, "\n```json\n{\n\t\"Tools\": null\n}\n```\n", tools.GetDescriptions())
}
