package transport

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/goliatone/go-pix-gateway/core"
)

type capturingClient struct {
	last     *http.Request
	lastBody string
	status   int
	body     string
}

func (c *capturingClient) Do(req *http.Request) (*http.Response, error) {
	c.last = req
	if req.Body != nil {
		payload, _ := io.ReadAll(req.Body)
		c.lastBody = string(payload)
	}
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(c.body)),
	}, nil
}

func TestRESTAdapterAttachesIdempotencyHeader(t *testing.T) {
	client := &capturingClient{body: "{}"}
	adapter := NewRESTAdapter(client)

	_, err := adapter.Do(context.Background(), core.TransportRequest{
		Method:      http.MethodPost,
		URL:         "https://dict.example/chaves",
		Body:        []byte(`{"chave":"x"}`),
		Idempotency: "req-123",
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if got := client.last.Header.Get(IdempotencyHeader); got != "req-123" {
		t.Fatalf("expected idempotency header, got %q", got)
	}
	if client.lastBody != `{"chave":"x"}` {
		t.Fatalf("unexpected body %q", client.lastBody)
	}
}

func TestRESTAdapterNoIdempotencyHeaderWhenUnset(t *testing.T) {
	client := &capturingClient{body: "{}"}
	adapter := NewRESTAdapter(client)

	_, err := adapter.Do(context.Background(), core.TransportRequest{
		Method: http.MethodGet,
		URL:    "https://dict.example/chaves/abc",
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if _, ok := client.last.Header[IdempotencyHeader]; ok {
		t.Fatalf("idempotency header must be absent on reads")
	}
}

func TestRESTAdapterMergesQuery(t *testing.T) {
	client := &capturingClient{body: "{}"}
	adapter := NewRESTAdapter(client)

	_, err := adapter.Do(context.Background(), core.TransportRequest{
		Method: http.MethodGet,
		URL:    "https://dict.example/reivindicacoes?existing=1",
		Query:  map[string]string{"stReivindicacao": "1"},
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	query := client.last.URL.Query()
	if query.Get("existing") != "1" || query.Get("stReivindicacao") != "1" {
		t.Fatalf("unexpected query %q", client.last.URL.RawQuery)
	}
}

func TestRESTAdapterDefaultAndRequestHeaders(t *testing.T) {
	client := &capturingClient{body: "{}"}
	adapter := NewRESTAdapter(client)
	adapter.DefaultHeaders["User-Agent"] = "pix-gateway"

	_, err := adapter.Do(context.Background(), core.TransportRequest{
		Method:  http.MethodGet,
		URL:     "https://dict.example/chaves/abc",
		Headers: map[string]string{"ISPB-Solicitante": "00001234"},
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if got := client.last.Header.Get("User-Agent"); got != "pix-gateway" {
		t.Fatalf("expected default header, got %q", got)
	}
	if got := client.last.Header.Get("ISPB-Solicitante"); got != "00001234" {
		t.Fatalf("expected request header, got %q", got)
	}
}

func TestRESTAdapterPassesThroughErrorStatuses(t *testing.T) {
	// Classification is the caller's concern; the adapter reports the raw
	// status and body.
	client := &capturingClient{status: http.StatusUnprocessableEntity, body: `{"codigo":"ENTRY_ALREADY_EXISTS"}`}
	adapter := NewRESTAdapter(client)

	res, err := adapter.Do(context.Background(), core.TransportRequest{
		Method: http.MethodPost,
		URL:    "https://dict.example/chaves",
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected raw status, got %d", res.StatusCode)
	}
	if string(res.Body) != `{"codigo":"ENTRY_ALREADY_EXISTS"}` {
		t.Fatalf("expected raw body, got %q", res.Body)
	}
}

func TestRESTAdapterRejectsMissingURL(t *testing.T) {
	adapter := NewRESTAdapter(&capturingClient{body: "{}"})
	if _, err := adapter.Do(context.Background(), core.TransportRequest{Method: http.MethodGet}); err == nil {
		t.Fatalf("expected error for missing url")
	}
}
