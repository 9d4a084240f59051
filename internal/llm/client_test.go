package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func newTestClient(t *testing.T, rt roundTripperFunc) *Client {
	t.Helper()
	c, err := New(Options{
		BaseURL:    "http://model-host:8002",
		Model:      "local",
		Timeout:    2 * time.Second,
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func jsonResponse(status int, body any) *http.Response {
	b, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(b)),
	}
}

func TestGenerate(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/generate" {
			t.Fatalf("unexpected request: %s %s", req.Method, req.URL.Path)
		}
		var in generateRequest
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			t.Fatalf("decode req: %v", err)
		}
		if in.Model != "local" {
			t.Fatalf("model=%q", in.Model)
		}
		if in.Prompt == "" {
			t.Fatal("empty prompt forwarded")
		}
		return jsonResponse(http.StatusOK, generateResponse{Response: `{"advice":"x"}`}), nil
	})

	out, err := c.Generate(context.Background(), "analyze this")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != `{"advice":"x"}` {
		t.Fatalf("out=%q", out)
	}
}

func TestGenerateNon2xxIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, map[string]string{"error": "boom"}), nil
	})

	_, err := c.Generate(context.Background(), "p")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestGenerateTransportErrorIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := c.Generate(context.Background(), "p")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestGenerateEmptyResponseIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, generateResponse{Response: "   "}), nil
	})

	_, err := c.Generate(context.Background(), "p")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestGenerateSingleAttempt(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusBadGateway, nil), nil
	})

	_, _ = c.Generate(context.Background(), "p")
	if calls != 1 {
		t.Fatalf("calls=%d, client must not retry", calls)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error for missing baseURL")
	}
}
