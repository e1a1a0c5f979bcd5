package rpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPCaller implements the outbound call contract over plain HTTP: a
// method call is a POST of the JSON payload to <endpoint>/rpc/<method>.
// An error means the transport failed; a response with a non-2xx status
// still returns the body, since errors travel in-band as envelope fields.
type HTTPCaller struct {
	client *http.Client
}

func NewHTTPCaller() *HTTPCaller {
	return &HTTPCaller{client: &http.Client{}}
}

func (c *HTTPCaller) Call(ctx context.Context, endpoint, method string, payload []byte) ([]byte, error) {
	url := fmt.Sprintf("%s/rpc/%s", endpoint, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}
	return body, nil
}
