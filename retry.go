package pim

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// exchange is one completed HTTP round trip with the response body already
// read (and decompressed).
type exchange struct {
	request  *http.Request
	reqBody  []byte
	response *http.Response
	body     []byte
}

// errRetryableStatus marks a response whose status is worth another attempt.
var errRetryableStatus = errors.New("retryable status")

// retryPolicy retries transport failures, 429 and 5xx responses. Anything
// else is returned to the caller after the first attempt. Callers apply it
// to idempotent requests only: GraphQL queries and REST GETs.
type retryPolicy struct {
	maxRetries int
	newBackOff func() backoff.BackOff
}

// once returns p without retries, for requests that must not be sent twice.
func (p retryPolicy) once() retryPolicy {
	p.maxRetries = 0
	return p
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = 0
	return b
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// do runs attempt until it succeeds or the policy gives up. When the last
// attempt got a response with a retryable status, that exchange is
// returned without error so the caller can report the status.
func (p retryPolicy) do(
	ctx context.Context,
	log *logrus.Entry,
	attempt func() (*exchange, error),
) (*exchange, error) {
	var ex *exchange
	n := 0
	op := func() error {
		n++
		var err error
		ex, err = attempt()
		if err != nil {
			return err
		}
		if retryableStatus(ex.response.StatusCode) {
			return fmt.Errorf("%w: %s", errRetryableStatus, ex.response.Status)
		}
		return nil
	}

	newBackOff := p.newBackOff
	if newBackOff == nil {
		newBackOff = defaultBackOff
	}
	maxRetries := p.maxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	b := backoff.WithContext(
		backoff.WithMaxRetries(newBackOff(), uint64(maxRetries)),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		log.WithError(err).WithField("attempt", n).Warnf("request failed, retrying in %s", wait)
	}

	err := backoff.RetryNotify(op, b, notify)
	if err != nil && errors.Is(err, errRetryableStatus) && ex != nil {
		return ex, nil
	}
	return ex, err
}

// roundTrip sends the request built by build and reads the whole response.
// build is called once per attempt, so request bodies are never reused.
func roundTrip(
	httpClient *http.Client,
	build func() (*http.Request, []byte, error),
) (*exchange, error) {
	request, reqBody, err := build()
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("problem constructing request: %w", err))
	}

	resp, err := httpClient.Do(request)
	if err != nil {
		if request.Context().Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	r, err := handleGzipResponse(resp, resp.Body)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	defer func() { _ = r.Close() }()

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &exchange{
		request:  request,
		reqBody:  reqBody,
		response: resp,
		body:     body,
	}, nil
}

// handleGzipResponse wraps the response body reader with a gzip decompressor
// if the Content-Encoding header indicates gzip compression.
func handleGzipResponse(
	resp *http.Response,
	bodyReader io.Reader,
) (io.ReadCloser, error) {
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gr, err := gzip.NewReader(bodyReader)
		if err != nil {
			return nil, fmt.Errorf("problem trying to create gzip reader: %w", err)
		}
		return gr, nil
	}
	return io.NopCloser(bodyReader), nil
}

func (ex *exchange) bodyReader() io.Reader {
	return bytes.NewReader(ex.body)
}

func (ex *exchange) reqBodyReader() io.Reader {
	return bytes.NewReader(ex.reqBody)
}
