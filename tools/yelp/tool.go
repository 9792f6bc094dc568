package yelp

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	jsonenc "github.com/effective-security/yelpmcp/encoding/json"
	"github.com/effective-security/yelpmcp/pkg/llmutils"
	"github.com/effective-security/yelpmcp/pkg/metricskey"
	"github.com/effective-security/yelpmcp/pkg/schema"
	"github.com/effective-security/yelpmcp/tools"
	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var inputDecoder = jsonenc.NewDecoder()

// Tool forwards the parameters of type I to a Yelp API endpoint
type Tool[I any] struct {
	name        string
	title       string
	description string
	funcParams  *jsonschema.Schema

	client   *Client
	build    func(*I) (*Request, error)
	callback tools.Callback
}

// ensure Tool implements the tools interfaces
var (
	_ tools.Tool[SearchRequest, Response] = (*Tool[SearchRequest])(nil)
	_ tools.IMCPTool                      = (*Tool[SearchRequest])(nil)
)

// Option configures the tools
type Option func(*options)

type options struct {
	callback tools.Callback
}

// WithCallback sets the callback notified on tool start, end and error
func WithCallback(cb tools.Callback) Option {
	return func(o *options) {
		o.callback = cb
	}
}

func newTool[I any](client *Client, name, title, description string, build func(*I) (*Request, error), opts ...Option) (*Tool[I], error) {
	if client == nil {
		return nil, errors.New("client is not provided")
	}
	sc, err := schema.For[I]()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create schema: %s", name)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Tool[I]{
		name:        name,
		title:       title,
		description: description,
		funcParams:  sc.Parameters,
		client:      client,
		build:       build,
		callback:    o.callback,
	}, nil
}

func (t *Tool[I]) Name() string {
	return t.name
}

func (t *Tool[I]) Title() string {
	return t.title
}

func (t *Tool[I]) Description() string {
	return t.description
}

func (t *Tool[I]) Parameters() any {
	return t.funcParams
}

// Run validates the request and forwards it to the Yelp API.
// The upstream body is returned for any status code.
// Defaults are applied to a copy, req is not modified.
func (t *Tool[I]) Run(ctx context.Context, req *I) (*Response, error) {
	if req == nil {
		return nil, invalidf("parameters are not provided")
	}

	defer metricskey.PerfToolCall.MeasureSince(time.Now(), t.name)

	if _, ok := any(req).(defaulter); ok {
		cp := *req
		req = &cp
		any(req).(defaulter).SetDefaults()
	}
	if err := Validate(req); err != nil {
		metricskey.StatsToolCallsInvalid.IncrCounter(1, t.name)
		return nil, err
	}

	hreq, err := t.build(req)
	if err != nil {
		metricskey.StatsToolCallsFailed.IncrCounter(1, t.name)
		return nil, err
	}

	res, err := t.client.Do(ctx, hreq)
	if err != nil {
		metricskey.StatsToolCallsFailed.IncrCounter(1, t.name)
		return nil, err
	}

	metricskey.StatsToolCallsSucceeded.IncrCounter(1, t.name)
	metricskey.StatsUpstreamResponses.IncrCounter(1, t.name, strconv.Itoa(res.StatusCode))
	metricskey.StatsUpstreamBytesReceived.IncrCounter(float64(len(res.Body)), t.name)

	if !res.OK() {
		logger.ContextKV(ctx, xlog.NOTICE,
			"tool", t.name,
			"status", res.StatusCode,
			"code", res.ErrorCode(),
		)
	}
	return res, nil
}

// Call runs the tool with the JSON input and returns the response body
func (t *Tool[I]) Call(ctx context.Context, input string) (string, error) {
	res, err := t.invoke(ctx, []byte(input))
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func (t *Tool[I]) invoke(ctx context.Context, input []byte) (*Response, error) {
	callID := uuid.NewString()
	started := time.Now()

	logger.ContextKV(ctx, xlog.DEBUG,
		"tool", t.name,
		"call_id", callID,
		"status", "started",
	)
	if t.callback != nil {
		t.callback.OnToolStart(ctx, t, string(input))
	}

	res, err := t.call(ctx, input)
	if err != nil {
		logger.ContextKV(ctx, xlog.DEBUG,
			"tool", t.name,
			"call_id", callID,
			"status", "failed",
			"err", err.Error(),
		)
		if t.callback != nil {
			t.callback.OnToolError(ctx, t, string(input), err)
		}
		return nil, err
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"tool", t.name,
		"call_id", callID,
		"status", res.StatusCode,
		"elapsed", time.Since(started).String(),
	)

	if t.callback != nil {
		t.callback.OnToolEnd(ctx, t, string(input), res.String())
	}
	return res, nil
}

// call decodes the model input leniently:
// "5" and 5.0 are accepted for integers, "true" for booleans.
func (t *Tool[I]) call(ctx context.Context, input []byte) (*Response, error) {
	var req I
	if err := inputDecoder.Unmarshal(input, &req); err != nil {
		metricskey.StatsToolCallsInvalid.IncrCounter(1, t.name)
		return nil, errors.WithStack(tools.ErrFailedUnmarshalInput)
	}
	return t.Run(ctx, &req)
}

// RegisterMCP adds the tool to the MCP server
func (t *Tool[I]) RegisterMCP(server *mcp.Server) error {
	if server == nil {
		return errors.New("server is not provided")
	}

	openWorld := true
	server.AddTool(&mcp.Tool{
		Name:        t.name,
		Title:       t.title,
		Description: t.description,
		InputSchema: t.funcParams,
		Annotations: &mcp.ToolAnnotations{
			Title:         t.title,
			ReadOnlyHint:  true,
			OpenWorldHint: &openWorld,
		},
	}, t.handleMCP)
	return nil
}

// handleMCP returns the upstream body as the tool result,
// errors and non-2xx responses are reported with IsError.
func (t *Tool[I]) handleMCP(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args []byte
	if req != nil && req.Params != nil {
		args = req.Params.Arguments
	}

	res, err := t.invoke(ctx, args)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			IsError: true,
		}, nil
	}

	result := &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: res.String()}},
		IsError: !res.OK(),
	}
	if llmutils.IsJSONObject(res.Body) {
		result.StructuredContent = res.Body
	}
	return result, nil
}
