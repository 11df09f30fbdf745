package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// baseClient handles the underlying HTTP transport for the Brain API:
// URL construction, default parameters, error mapping and retry on 5xx.
type baseClient struct {
	httpClient *http.Client
	baseURL    string
	params     RequestParams
	authToken  string
	maxRetries int
	timeout    time.Duration
}

// buildURL joins the base URL with an endpoint path.
func (c *baseClient) buildURL(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path, err = url.JoinPath(u.Path, path)
	if err != nil {
		return "", fmt.Errorf("failed to join URL path: %w", err)
	}
	return u.String(), nil
}

// doJSON performs a request with a JSON body (or none) and unmarshals the
// JSON response into respBody when it is non-nil.
func (c *baseClient) doJSON(ctx context.Context, method, path string, reqBody, respBody any) error {
	var payload []byte
	if reqBody != nil {
		var err error
		payload, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}
	return c.do(ctx, method, path, "application/json", payload, respBody)
}

// doMultipart uploads a single file as a multipart form and unmarshals the
// JSON response into respBody. The whole upload is buffered so retries can
// replay it.
func (c *baseClient) doMultipart(ctx context.Context, path, field, filename string, file io.Reader, respBody any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, mw.FormDataContentType(), buf.Bytes(), respBody)
}

// do executes the request with bounded retries on 5xx responses and network
// errors. Each attempt rebuilds the request from the buffered payload.
func (c *baseClient) do(ctx context.Context, method, path, contentType string, payload []byte, respBody any) error {
	endpoint := path

	u, err := c.buildURL(path)
	if err != nil {
		return err
	}

	var (
		httpResp *http.Response
		lastErr  error
	)
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
		if err != nil {
			return fmt.Errorf("failed to create HTTP request: %w", err)
		}
		c.setHeaders(httpReq, contentType)

		httpResp, lastErr = c.httpClient.Do(httpReq)
		if lastErr == nil && httpResp.StatusCode < 500 {
			break // Success or non-retriable error
		}
		if lastErr == nil && attempt < c.maxRetries-1 {
			// The 5xx body won't be decoded, drop it before retrying.
			io.Copy(io.Discard, httpResp.Body)
			httpResp.Body.Close()
		}
		if attempt < c.maxRetries-1 {
			select {
			case <-ctx.Done():
				return c.wrapTransportError(endpoint, ctx.Err())
			case <-time.After(time.Second):
			}
		}
	}
	if lastErr != nil {
		return c.wrapTransportError(endpoint, fmt.Errorf("request failed after %d attempts: %w", c.maxRetries, lastErr))
	}
	defer httpResp.Body.Close()

	respBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		return c.statusError(endpoint, httpResp, respBytes)
	}

	if respBody != nil {
		if err := json.Unmarshal(respBytes, respBody); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// setHeaders applies the default parameters and auth token to a request.
func (c *baseClient) setHeaders(req *http.Request, contentType string) {
	for key, values := range c.params.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}

// statusError maps a non-2xx response onto the error taxonomy, decoding the
// FastAPI {"detail": ...} envelope when present.
func (c *baseClient) statusError(endpoint string, resp *http.Response, body []byte) error {
	detail := string(body)
	var envelope apiError
	if json.Unmarshal(body, &envelope) == nil && envelope.Detail != "" {
		detail = envelope.Detail
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return NewAuthenticationError(endpoint, resp.StatusCode, detail, nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewRateLimitError(endpoint, detail, parseRetryAfter(resp), nil)
	case resp.StatusCode == http.StatusServiceUnavailable:
		return NewServiceUnavailableError(endpoint, detail, nil)
	case resp.StatusCode >= 500:
		return NewServerError(endpoint, resp.StatusCode, detail, nil)
	case resp.StatusCode >= 400:
		return NewInvalidRequestError(endpoint, resp.StatusCode, http.StatusText(resp.StatusCode), detail, nil)
	}
	return NewUnknownError(endpoint, resp.StatusCode, detail, nil)
}

// wrapTransportError classifies request-level failures as timeouts or
// network errors.
func (c *baseClient) wrapTransportError(endpoint string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(endpoint, c.timeout, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(endpoint, c.timeout, err)
	}
	return NewNetworkError(endpoint, err.Error(), err)
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}
