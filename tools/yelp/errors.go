package yelp

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrValidation marks errors for parameters that violate the declared constraints,
	// no request is sent in this case.
	ErrValidation = errors.New("invalid request")
	// ErrTransport marks errors for requests that did not reach the Yelp API
	ErrTransport = errors.New("transport error")
	// ErrDecode marks errors for responses that are not JSON
	ErrDecode = errors.New("invalid response")
)

func invalidf(format string, args ...any) error {
	return errors.Mark(errors.Newf("invalid request: "+format, args...), ErrValidation)
}
