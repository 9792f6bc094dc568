package yelp

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Response is the Yelp API response,
// the body is returned as received.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// OK returns true for 2xx status codes
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrorCode returns the value of error.code from the error body,
// for example BUSINESS_NOT_FOUND or VALIDATION_ERROR.
func (r *Response) ErrorCode() string {
	if r.OK() {
		return ""
	}
	return gjson.GetBytes(r.Body, "error.code").String()
}

// ErrorDescription returns the value of error.description from the error body
func (r *Response) ErrorDescription() string {
	if r.OK() {
		return ""
	}
	return gjson.GetBytes(r.Body, "error.description").String()
}

func (r *Response) String() string {
	return string(r.Body)
}
