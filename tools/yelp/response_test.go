package yelp_test

import (
	"testing"

	"github.com/effective-security/yelpmcp/tools/yelp"
	"github.com/stretchr/testify/assert"
)

func Test_Response(t *testing.T) {
	t.Parallel()

	r := &yelp.Response{StatusCode: 200, Body: []byte(`{"error":{"code":"IGNORED"}}`)}
	assert.True(t, r.OK())
	assert.Empty(t, r.ErrorCode())
	assert.Empty(t, r.ErrorDescription())
	assert.Equal(t, `{"error":{"code":"IGNORED"}}`, r.String())

	r = &yelp.Response{StatusCode: 400, Body: []byte(`{"error":{"code":"VALIDATION_ERROR","description":"Please specify a location or a latitude and longitude"}}`)}
	assert.False(t, r.OK())
	assert.Equal(t, "VALIDATION_ERROR", r.ErrorCode())
	assert.Equal(t, "Please specify a location or a latitude and longitude", r.ErrorDescription())

	r = &yelp.Response{StatusCode: 500, Body: []byte(`[]`)}
	assert.False(t, r.OK())
	assert.Empty(t, r.ErrorCode())
}
