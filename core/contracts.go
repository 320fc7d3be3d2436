package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// TokenSource owns the bearer-token lifecycle shared by every outbound call.
// AuthorizationHeader returns a ready-to-send "Bearer <token>" value; it never
// returns a token at or past its expiry. Implementations must de-duplicate
// concurrent refreshes: when the cached token is missing or expired, exactly
// one refresh call reaches the auth endpoint and every waiter observes its
// result.
type TokenSource interface {
	AuthorizationHeader(ctx context.Context) (string, error)
}

// TransportRequest is a protocol-agnostic outbound call description.
// Idempotency, when set, is attached as the scheme's deduplication header by
// the adapter.
type TransportRequest struct {
	Method      string
	URL         string
	Headers     map[string]string
	Query       map[string]string
	Body        []byte
	Metadata    map[string]any
	Timeout     time.Duration
	Idempotency string
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
