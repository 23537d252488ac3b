package pim

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/go-pim-client/internal/logging"
)

// ErrNotFound matches an APIError for a 404 response.
var ErrNotFound = errors.New("not found")

// APIError is a failed REST call: a non-2xx response, or a 2xx response
// whose envelope reports an error status.
type APIError struct {
	StatusCode int
	// Status is the envelope "status" member, if the body had one.
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d: %s", e.StatusCode, e.Message)
}

// Is makes errors.Is(err, ErrNotFound) work for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// responseStatus accepts the "status" member as a string, number or boolean.
type responseStatus string

func (s *responseStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = responseStatus(str)
		return nil
	}
	// numbers, booleans and null keep their literal text
	*s = responseStatus(strings.Trim(string(b), `"`))
	return nil
}

func (s responseStatus) failed() bool {
	switch strings.ToLower(string(s)) {
	case "error", "fail", "failed", "failure", "false":
		return true
	}
	if code, err := strconv.Atoi(string(s)); err == nil {
		return code >= 400
	}
	return false
}

// envelope is the {status, message, data} wrapper of every REST response.
type envelope struct {
	Status  responseStatus  `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RESTClient calls the PIM REST API. Like Client, its With* methods return
// a modified copy.
type RESTClient struct {
	baseURL         string
	httpClient      *http.Client
	requestModifier RequestModifier
	organizationID  string
	retry           retryPolicy
	log             *logrus.Entry
}

// NewRESTClient creates a client for the REST API rooted at baseURL.
// If httpClient is nil, then http.DefaultClient is used.
func NewRESTClient(baseURL string, httpClient *http.Client) *RESTClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        logging.WithPrefix("rest"),
	}
}

func (c *RESTClient) clone() *RESTClient {
	return &RESTClient{
		baseURL:         c.baseURL,
		httpClient:      c.httpClient,
		requestModifier: c.requestModifier,
		organizationID:  c.organizationID,
		retry:           c.retry,
		log:             c.log,
	}
}

// WithRequestModifier returns a new RESTClient with the request modifier set.
func (c *RESTClient) WithRequestModifier(f RequestModifier) *RESTClient {
	clone := c.clone()
	clone.requestModifier = f
	return clone
}

// WithOrganization returns a new RESTClient scoped to organizationID.
func (c *RESTClient) WithOrganization(organizationID string) *RESTClient {
	clone := c.clone()
	clone.organizationID = organizationID
	return clone
}

// WithRetry returns a new RESTClient retrying GET requests up to maxRetries
// times.
func (c *RESTClient) WithRetry(maxRetries int) *RESTClient {
	clone := c.clone()
	clone.retry.maxRetries = maxRetries
	return clone
}

// WithBackOff returns a new RESTClient using newBackOff to space retries.
func (c *RESTClient) WithBackOff(newBackOff func() backoff.BackOff) *RESTClient {
	clone := c.clone()
	clone.retry.newBackOff = newBackOff
	return clone
}

// WithLogger returns a new RESTClient logging to log.
func (c *RESTClient) WithLogger(log *logrus.Entry) *RESTClient {
	clone := c.clone()
	clone.log = log
	return clone
}

// Post sends body as JSON to path and decodes the envelope data into out.
// out may be nil.
func (c *RESTClient) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Get requests path with the query parameters and decodes the envelope data
// into out.
func (c *RESTClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *RESTClient) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, out any,
) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	log := c.log.WithFields(logrus.Fields{"method": method, "path": path})
	start := time.Now()

	// POSTs create or copy resources and are not resent.
	policy := c.retry
	if method != http.MethodGet {
		policy = policy.once()
	}

	ex, err := policy.do(ctx, log, func() (*exchange, error) {
		return roundTrip(c.httpClient, func() (*http.Request, []byte, error) {
			return c.buildRequest(ctx, method, target, reqBody)
		})
	})
	if err != nil {
		log.WithError(err).Debug("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	log.WithFields(logrus.Fields{
		"status":   ex.response.StatusCode,
		"duration": time.Since(start),
	}).Debug("request done")

	return decodeEnvelope(ex, out)
}

func (c *RESTClient) buildRequest(
	ctx context.Context,
	method, target string,
	body []byte,
) (*http.Request, []byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	request, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, body, err
	}
	setCommonHeaders(request, c.organizationID)

	if c.requestModifier != nil {
		c.requestModifier(request)
	}
	return request, body, nil
}

func decodeEnvelope(ex *exchange, out any) error {
	code := ex.response.StatusCode
	var env envelope
	var decodeErr error
	if len(bytes.TrimSpace(ex.body)) > 0 {
		decodeErr = json.Unmarshal(ex.body, &env)
	}

	if code < 200 || code > 299 {
		apiErr := &APIError{StatusCode: code, Status: string(env.Status), Message: env.Message}
		if decodeErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(truncate(string(ex.body), 256))
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if env.Status.failed() {
		return &APIError{StatusCode: code, Status: string(env.Status), Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
