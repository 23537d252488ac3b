package pim

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/go-pim-client/internal/logging"
	"github.com/llehouerou/go-pim-client/types"
)

// This function allows you to tweak the HTTP request. It might be useful to set authentication
// headers  amongst other things
type RequestModifier func(*http.Request)

// Client is a GraphQL client for the PIM backend.
//
// # Immutable Pattern
//
// The Client's With* methods return a new Client instance rather than
// modifying the receiver. Always use the returned Client:
//
//	client = client.WithDebug(true)  // Correct
//	client.WithDebug(true)            // Wrong - original client unchanged
//
// Methods can be chained since each returns a new Client:
//
//	client = client.WithDebug(true).WithOrganization("org-1")
type Client struct {
	url             string // GraphQL server URL.
	httpClient      *http.Client
	requestModifier RequestModifier
	debug           bool
	organizationID  string
	retry           retryPolicy
	log             *logrus.Entry
}

// NewClient creates a GraphQL client targeting the specified GraphQL server URL.
// If httpClient is nil, then http.DefaultClient is used.
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		url:        url,
		httpClient: httpClient,
		log:        logging.WithPrefix("graphql"),
	}
}

// Exec executes a pre-built query and unmarshals the response data into v
// with encoding/json. The query is sent as-is; variables must match the
// declarations the query carries.
func (c *Client) Exec(
	ctx context.Context,
	query string,
	v any,
	variables map[string]any,
) error {
	data, resp, respBuf, errs := c.request(ctx, query, variables)
	return c.processResponse(v, data, resp, respBuf, errs)
}

// ExecRaw executes a pre-built query and returns the raw json "data" member.
func (c *Client) ExecRaw(
	ctx context.Context,
	query string,
	variables map[string]any,
) ([]byte, error) {
	data, _, _, errs := c.request(ctx, query, variables)
	if len(errs) > 0 {
		return data, errs
	}
	return data, nil
}

func (c *Client) request(
	ctx context.Context,
	query string,
	variables map[string]any,
) ([]byte, *http.Response, io.Reader, Errors) {
	opName := operationName(query)
	log := c.log.WithField("operation", opName)
	start := time.Now()

	policy := c.retry
	if isMutation(query) {
		policy = policy.once()
	}

	ex, err := policy.do(ctx, log, func() (*exchange, error) {
		return roundTrip(c.httpClient, func() (*http.Request, []byte, error) {
			return c.BuildRequest(ctx, query, variables)
		})
	})
	if err != nil {
		log.WithError(err).Debug("request failed")
		e := c.NewRequestError(ErrRequestError, err, nil, nil, nil, nil)
		return nil, nil, nil, Errors{e}
	}
	log.WithFields(logrus.Fields{
		"status":   ex.response.StatusCode,
		"duration": time.Since(start),
	}).Debug("request done")

	// Check status code
	if ex.response.StatusCode != http.StatusOK {
		err := c.NewRequestError(
			ErrRequestError,
			fmt.Errorf("%v; body: %q", ex.response.Status, ex.body),
			ex.request,
			ex.response,
			ex.reqBodyReader(),
			ex.bodyReader(),
		)
		return nil, nil, nil, Errors{err}
	}

	// Decode GraphQL response
	rawData, gqlErrors := c.DecodeResponse(ex.bodyReader())

	if len(gqlErrors) > 0 {
		if gqlErrors[0].GetCode() == ErrJsonDecode {
			we := c.NewRequestError(
				ErrJsonDecode,
				errors.New(gqlErrors[0].Message),
				ex.request,
				ex.response,
				ex.reqBodyReader(),
				ex.bodyReader(),
			)
			return nil, nil, nil, Errors{we}
		}

		// Decorate the first error if debug mode
		if c.debug && gqlErrors[0].getInternalExtension()["request"] == nil {
			gqlErrors[0] = c.DecorateError(
				gqlErrors[0],
				ex.request,
				ex.response,
				ex.reqBodyReader(),
				ex.bodyReader(),
			)
		}

		return rawData, ex.response, ex.bodyReader(), gqlErrors
	}

	if rawData == nil {
		we := c.NewRequestError(
			ErrMissingData,
			errors.New("response contains no data"),
			ex.request,
			ex.response,
			ex.reqBodyReader(),
			ex.bodyReader(),
		)
		return nil, nil, nil, Errors{we}
	}

	return rawData, ex.response, ex.bodyReader(), nil
}

// BuildRequest constructs an HTTP request with JSON body for a GraphQL operation.
// It returns the HTTP request and the request body bytes (useful for error decoration).
func (c *Client) BuildRequest(
	ctx context.Context,
	query string,
	variables map[string]any,
) (*http.Request, []byte, error) {
	// Normalize empty variable maps to nil
	if len(variables) == 0 {
		variables = nil
	}
	in := struct {
		Query         string         `json:"query"`
		OperationName string         `json:"operationName,omitempty"`
		Variables     map[string]any `json:"variables,omitempty"`
	}{
		Query:         query,
		OperationName: operationName(query),
		Variables:     variables,
	}
	var buf bytes.Buffer
	err := json.NewEncoder(&buf).Encode(in)
	if err != nil {
		return nil, nil, err
	}

	reqBody := buf.Bytes()
	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.url,
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, reqBody, err
	}
	setCommonHeaders(request, c.organizationID)

	if c.requestModifier != nil {
		c.requestModifier(request)
	}

	return request, reqBody, nil
}

func setCommonHeaders(request *http.Request, organizationID string) {
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set(types.RequestIDHeader, uuid.NewString())
	if organizationID != "" {
		request.Header.Set(types.OrganizationHeader, organizationID)
	}
}

// DecodeResponse decodes a GraphQL JSON response into raw data and errors.
// It returns the raw data bytes (if present and not null) and any GraphQL errors.
func (c *Client) DecodeResponse(reader io.Reader) ([]byte, Errors) {
	var out struct {
		Data   *json.RawMessage
		Errors Errors
	}

	err := json.NewDecoder(reader).Decode(&out)
	if err != nil {
		return nil, newSimpleErrors(ErrJsonDecode, err)
	}

	var rawData []byte
	if out.Data != nil && len(*out.Data) > 0 && string(*out.Data) != "null" {
		rawData = *out.Data
	}

	if len(out.Errors) > 0 {
		return rawData, out.Errors
	}

	return rawData, nil
}

func (c *Client) processResponse(
	v any,
	data []byte,
	resp *http.Response,
	respBuf io.Reader,
	errs Errors,
) error {
	if len(data) > 0 && v != nil {
		err := json.Unmarshal(data, v)
		if err != nil {
			we := c.DecorateError(
				newError(ErrGraphQLDecode, err),
				nil,
				resp,
				nil,
				respBuf,
			)
			errs = append(errs, we)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// operationName extracts the name of a "query Name(...) {" style document.
// Anonymous documents yield "".
func operationName(query string) string {
	query = strings.TrimSpace(query)
	for _, keyword := range []string{"query", "mutation", "subscription"} {
		rest, ok := strings.CutPrefix(query, keyword)
		if !ok {
			continue
		}
		rest = strings.TrimLeft(rest, " \t\n")
		end := strings.IndexAny(rest, "({ \t\n")
		if end == -1 {
			return rest
		}
		return rest[:end]
	}
	return ""
}

// isMutation reports whether query is a mutation document. A mutation may
// have been applied even when its response was lost, so it is never resent.
func isMutation(query string) bool {
	rest, ok := strings.CutPrefix(strings.TrimSpace(query), "mutation")
	if !ok {
		return false
	}
	return rest == "" || strings.ContainsRune(" \t\r\n({", rune(rest[0]))
}

// clone creates a copy of the Client with all fields preserved.
// This helper prevents field-copying bugs when adding new fields to Client.
func (c *Client) clone() *Client {
	return &Client{
		url:             c.url,
		httpClient:      c.httpClient,
		requestModifier: c.requestModifier,
		debug:           c.debug,
		organizationID:  c.organizationID,
		retry:           c.retry,
		log:             c.log,
	}
}

// WithRequestModifier returns a new Client with the request modifier set.
// This allows you to reuse the same TCP connection for multiple slightly
// different requests to the same server (e.g., different authentication
// headers for multitenant applications).
func (c *Client) WithRequestModifier(f RequestModifier) *Client {
	clone := c.clone()
	clone.requestModifier = f
	return clone
}

// WithDebug returns a new Client with debug mode enabled or disabled.
// When enabled, debug mode adds detailed request/response information to
// error extensions, which is useful for troubleshooting GraphQL API issues.
func (c *Client) WithDebug(debug bool) *Client {
	clone := c.clone()
	clone.debug = debug
	return clone
}

// WithOrganization returns a new Client that sends organizationID in the
// X-Organization-ID header.
func (c *Client) WithOrganization(organizationID string) *Client {
	clone := c.clone()
	clone.organizationID = organizationID
	return clone
}

// WithRetry returns a new Client that retries queries on transport failures,
// 429 and 5xx responses up to maxRetries times. Mutations are sent once.
// Zero disables retries.
func (c *Client) WithRetry(maxRetries int) *Client {
	clone := c.clone()
	clone.retry.maxRetries = maxRetries
	return clone
}

// WithBackOff returns a new Client using newBackOff to space retries.
// newBackOff is called once per request.
func (c *Client) WithBackOff(newBackOff func() backoff.BackOff) *Client {
	clone := c.clone()
	clone.retry.newBackOff = newBackOff
	return clone
}

// WithLogger returns a new Client logging to log.
func (c *Client) WithLogger(log *logrus.Entry) *Client {
	clone := c.clone()
	clone.log = log
	return clone
}

// DecorateError decorates an error with request/response information if debug
// mode is enabled.
func (c *Client) DecorateError(
	err Error,
	req *http.Request,
	resp *http.Response,
	reqBody,
	respBody io.Reader,
) Error {
	if !c.debug {
		return err
	}

	if req != nil && reqBody != nil {
		err = err.withRequest(req, reqBody)
	}

	if resp != nil && respBody != nil {
		err = err.withResponse(resp, respBody)
	}

	return err
}

// NewRequestError creates a new error with the given code and decorates it with
// request/response information if debug mode is enabled.
func (c *Client) NewRequestError(
	code string,
	err error,
	req *http.Request,
	resp *http.Response,
	reqBody,
	respBody io.Reader,
) Error {
	e := newError(code, err)
	return c.DecorateError(e, req, resp, reqBody, respBody)
}

// Errors represents the "errors" array in a response from a GraphQL server,
// or a single transport failure normalized into the same shape.
// If returned via error interface, the slice is expected to contain at least 1 element.
//
// Specification: https://facebook.github.io/graphql/#sec-Errors.
type Errors []Error

type Error struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
	Locations  []struct {
		Line   int `json:"line"`
		Column int `json:"column"`
	} `json:"locations"`
	Path []any `json:"path"`
}

// RequestInfo contains HTTP request information stored in error extensions.
type RequestInfo struct {
	Headers http.Header
	Body    string
}

// ResponseInfo contains HTTP response information stored in error extensions.
type ResponseInfo struct {
	Headers http.Header
	Body    string
}

// InternalExtensions contains internal debugging information stored in error
// extensions. This information is added when debug mode is enabled.
type InternalExtensions struct {
	Request  *RequestInfo
	Response *ResponseInfo
	Error    error
}

// Error implements error interface.
func (e Error) Error() string {
	return fmt.Sprintf("Message: %s, Locations: %+v", e.Message, e.Locations)
}

// Error implements error interface. Messages are joined with "; ".
func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the bare message of every error.
func (e Errors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Message)
	}
	return msgs
}

// HasCode reports whether any error carries the given extension code.
func (e Errors) HasCode(code string) bool {
	for _, err := range e {
		if err.GetCode() == code {
			return true
		}
	}
	return false
}

// GetCode returns the error code from the extensions, or an empty string if
// not present.
func (e Error) GetCode() string {
	if e.Extensions == nil {
		return ""
	}
	code, ok := e.Extensions["code"].(string)
	if !ok {
		return ""
	}
	return code
}

// GetInternalExtensions returns the typed internal extensions, or nil if not
// present.
func (e Error) GetInternalExtensions() *InternalExtensions {
	if e.Extensions == nil {
		return nil
	}

	internal, ok := e.Extensions["internal"].(map[string]any)
	if !ok {
		return nil
	}

	ext := &InternalExtensions{}

	if req, ok := internal["request"].(map[string]any); ok {
		ext.Request = &RequestInfo{}
		if headers, ok := req["headers"].(http.Header); ok {
			ext.Request.Headers = headers
		}
		if body, ok := req["body"].(string); ok {
			ext.Request.Body = body
		}
	}

	if resp, ok := internal["response"].(map[string]any); ok {
		ext.Response = &ResponseInfo{}
		if headers, ok := resp["headers"].(http.Header); ok {
			ext.Response.Headers = headers
		}
		if body, ok := resp["body"].(string); ok {
			ext.Response.Body = body
		}
	}

	if err, ok := internal["error"].(error); ok {
		ext.Error = err
	}

	return ext
}

func (e Error) getInternalExtension() map[string]any {
	if e.Extensions == nil {
		return make(map[string]any)
	}

	if ex, ok := e.Extensions["internal"].(map[string]any); ok {
		return ex
	}

	return make(map[string]any)
}

// newError creates a new Error with the given code and underlying error.
func newError(code string, err error) Error {
	return Error{
		Message: err.Error(),
		Extensions: map[string]any{
			"code": code,
		},
	}
}

// newSimpleErrors creates an Errors slice with a single error, wrapping the
// given error with the specified code.
func newSimpleErrors(code string, err error) Errors {
	return Errors{newError(code, err)}
}

// withDebugInfo adds debug information to the error's internal extensions.
// It reads the body from bodyReader and stores it along with headers under the
// specified infoType key ("request" or "response").
func (e Error) withDebugInfo(
	infoType string,
	headers http.Header,
	bodyReader io.Reader,
) Error {
	internal := e.getInternalExtension()
	bodyBytes, err := io.ReadAll(bodyReader)
	if err != nil {
		internal["error"] = err
	} else {
		internal[infoType] = map[string]any{
			"headers": headers,
			"body":    string(bodyBytes),
		}
	}

	if e.Extensions == nil {
		e.Extensions = make(map[string]any)
	}
	e.Extensions["internal"] = internal
	return e
}

func (e Error) withRequest(req *http.Request, bodyReader io.Reader) Error {
	return e.withDebugInfo("request", req.Header, bodyReader)
}

func (e Error) withResponse(res *http.Response, bodyReader io.Reader) Error {
	return e.withDebugInfo("response", res.Header, bodyReader)
}

const (
	ErrRequestError  = "request_error"
	ErrJsonDecode    = "json_decode_error"
	ErrGraphQLDecode = "graphql_decode_error"
	ErrMissingData   = "missing_data"
)
