// Package yelp implements passthrough tools over the Yelp Fusion and Yelp AI APIs.
//
// Each tool accepts a typed parameter set, validates it, builds a single HTTP
// request from the present fields only and returns the upstream JSON body
// unchanged, regardless of the status code.
// Upstream errors are exposed through Response.OK and Response.ErrorCode,
// validation and transport failures are returned as errors marked with
// ErrValidation and ErrTransport.
package yelp
