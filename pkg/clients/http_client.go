package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = time.Second * 15

var ErrFailedCloseResponseBody = errors.New("failed close response body")

type HTTPClientI interface {
	Do(req *http.Request) (*http.Response, error)
}

type HTTPClientAdapter struct {
	client *http.Client
}

func (h *HTTPClientAdapter) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

// HTTPClient wraps an http.Client behind a swappable interface so tests can
// substitute a mock transport.
type HTTPClient struct {
	client HTTPClientI
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		client: &HTTPClientAdapter{
			client: &http.Client{Timeout: timeout},
		},
	}
}

// DoJSON sends body (when non-nil) as JSON and decodes a 2xx response into
// out (when non-nil). The status code is returned even when decoding fails.
func (h *HTTPClient) DoJSON(ctx context.Context, method, url string, body, out any) (statusCode int, err error) {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		raw, merr := json.Marshal(body)
		if merr != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", merr)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		if e := resp.Body.Close(); e != nil {
			err = errors.Join(err, ErrFailedCloseResponseBody)
		}
	}()

	statusCode = resp.StatusCode
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return statusCode, err
	}

	if out != nil && statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		if err = json.Unmarshal(respBody, out); err != nil {
			return statusCode, fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return statusCode, nil
}

func (h *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

func (h *HTTPClient) SetClient(mock HTTPClientI) {
	h.client = mock
}
