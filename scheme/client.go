// Package scheme carries the shared outbound-call runtime composed by every
// operation gateway: token acquisition, transport dispatch, response
// classification, and per-operation observability.
package scheme

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pix-gateway/core"
)

// RequesterHeader identifies the calling institution on directory lookups.
const RequesterHeader = "ISPB-Solicitante"

// EndToEndHeader carries an optional end-to-end transaction id on decode
// calls.
const EndToEndHeader = "PmtInfId"

type ClientConfig struct {
	BaseURL   string
	ISPB      string
	Timeout   time.Duration
	Transport core.TransportAdapter
	Tokens    core.TokenSource
	Logger    core.Logger
	Metrics   core.MetricsRecorder
}

// Client performs one scheme call end to end: token, request, classify.
type Client struct {
	baseURL   string
	ispb      string
	timeout   time.Duration
	transport core.TransportAdapter
	tokens    core.TokenSource
	observer  *core.OperationObserver
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("scheme: base url is required")
	}
	if cfg.Transport == nil {
		return nil, fmt.Errorf("scheme: transport adapter is required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("scheme: token source is required")
	}
	return &Client{
		baseURL:   baseURL,
		ispb:      strings.TrimSpace(cfg.ISPB),
		timeout:   cfg.Timeout,
		transport: cfg.Transport,
		tokens:    cfg.Tokens,
		observer:  core.NewOperationObserver(cfg.Logger, cfg.Metrics),
	}, nil
}

// ISPB is the calling institution's routing code.
func (c *Client) ISPB() string {
	if c == nil {
		return ""
	}
	return c.ispb
}

// Operation describes one outbound call. Lookup operations treat 404/406 as
// an absent result instead of an error.
type Operation struct {
	Name        string
	Method      string
	Path        string
	Query       map[string]string
	Headers     map[string]string
	Idempotency string
	Body        any
	Lookup      bool
	Fields      map[string]any
}

// Do issues the operation. A nil response with nil error means "not found"
// on a lookup operation.
func (c *Client) Do(ctx context.Context, op Operation) (*core.TransportResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("scheme: client is nil")
	}
	startedAt := time.Now().UTC()
	res, err := c.do(ctx, op)
	fields := map[string]any{"capability": op.Name}
	for key, value := range op.Fields {
		fields[key] = value
	}
	if res != nil {
		fields["status_code"] = res.StatusCode
	}
	c.observer.Observe(ctx, startedAt, op.Name, err, fields)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, op Operation) (*core.TransportResponse, error) {
	var body []byte
	if op.Body != nil {
		encoded, err := json.Marshal(op.Body)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "scheme: encode request payload").
				WithTextCode(core.GatewayErrorInternal)
		}
		body = encoded
	}

	header, err := c.tokens.AuthorizationHeader(ctx)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Authorization": header,
		"Accept":        "application/json",
	}
	if len(body) > 0 {
		headers["Content-Type"] = "application/json"
	}
	for key, value := range op.Headers {
		headers[key] = value
	}

	res, err := c.transport.Do(ctx, core.TransportRequest{
		Method:      op.Method,
		URL:         c.baseURL + "/" + strings.TrimLeft(op.Path, "/"),
		Headers:     headers,
		Query:       op.Query,
		Body:        body,
		Timeout:     c.timeout,
		Idempotency: op.Idempotency,
	})
	if err != nil {
		return nil, err
	}

	if op.Lookup && core.NotFoundStatus(res.StatusCode) {
		return nil, nil
	}
	if err := core.ClassifyScheme(res.StatusCode, res.Body); err != nil {
		return nil, err
	}
	return &res, nil
}

// DecodeInto unmarshals a 2xx response body into out.
func DecodeInto(res *core.TransportResponse, out any) error {
	if res == nil {
		return fmt.Errorf("scheme: response is nil")
	}
	if len(res.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Body, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "scheme: decode response payload").
			WithCode(res.StatusCode).
			WithTextCode(core.GatewayErrorProtocol).
			WithMetadata(map[string]any{"response_body": string(res.Body)})
	}
	return nil
}
