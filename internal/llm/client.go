package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

type Options struct {
	BaseURL string
	Model   string

	Timeout time.Duration

	// HTTPClient is intended for tests; it allows a custom RoundTripper
	// instead of network access.
	HTTPClient *http.Client
}

// Client talks to the local model backend. It performs exactly one
// attempt per call; retry policy, if any, belongs to the caller.
type Client struct {
	baseURL string
	model   string
	timeout time.Duration

	httpClient *http.Client
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("llm: baseURL required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	hc := opts.HTTPClient
	if hc == nil {
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		}
		hc = &http.Client{Transport: tr}
	}

	return &Client{
		baseURL:    baseURL,
		model:      strings.TrimSpace(opts.Model),
		timeout:    timeout,
		httpClient: hc,
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

type generateRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends one prompt to the backend and returns the raw text of
// its reply. The text is not guaranteed to be valid JSON or to match
// any requested shape.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
	}

	var resp generateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/generate", reqBody, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if strings.TrimSpace(resp.Response) == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return resp.Response, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx2, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
