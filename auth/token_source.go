package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-pix-gateway/core"
)

const (
	defaultSafetyMargin   = time.Minute
	defaultRetryDelay     = 5 * time.Second
	defaultRequestTimeout = 30 * time.Second
	maxTokenResponseBytes = 1 << 20
)

var ErrSourceClosed = errors.New("auth: token source is closed")

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientCredentialsConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scope        string

	// SafetyMargin shortens the issuer-stated lifetime so renewal happens
	// before the stated expiry. Defaults to one minute.
	SafetyMargin time.Duration
	// RetryDelay bounds how soon a failed refresh is retried. Refreshes are
	// retried indefinitely; only callers that need a token while none is
	// usable see an error.
	RetryDelay     time.Duration
	RequestTimeout time.Duration

	Client HTTPDoer
	Logger core.Logger
	Now    func() time.Time
}

// ClientCredentialsTokenSource implements core.TokenSource. The cached token
// and the single in-flight refresh are the only shared mutable state in the
// gateway; both live behind one mutex. Token values never reach logs.
type ClientCredentialsTokenSource struct {
	config ClientCredentialsConfig

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	inflight  chan struct{}
	lastErr   error
	timer     *time.Timer
	closed    bool
}

func NewClientCredentialsTokenSource(cfg ClientCredentialsConfig) (*ClientCredentialsTokenSource, error) {
	cfg.TokenURL = strings.TrimSpace(cfg.TokenURL)
	cfg.ClientID = strings.TrimSpace(cfg.ClientID)
	cfg.ClientSecret = strings.TrimSpace(cfg.ClientSecret)
	cfg.Scope = strings.TrimSpace(cfg.Scope)
	if cfg.TokenURL == "" {
		return nil, fmt.Errorf("auth: token url is required")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("auth: client credentials are required")
	}
	if cfg.SafetyMargin <= 0 {
		cfg.SafetyMargin = defaultSafetyMargin
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.RequestTimeout}
	}
	cfg.Logger = glog.Ensure(cfg.Logger)
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	return &ClientCredentialsTokenSource{config: cfg}, nil
}

// AuthorizationHeader returns "Bearer <token>", refreshing first when the
// cache is empty or expired. Concurrent callers needing a refresh all join
// the same in-flight operation; exactly one request reaches the auth
// endpoint.
func (s *ClientCredentialsTokenSource) AuthorizationHeader(ctx context.Context) (string, error) {
	if s == nil {
		return "", core.AuthFailureError(fmt.Errorf("auth: token source is nil"))
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", core.AuthFailureError(ErrSourceClosed)
	}
	if header, ok := s.headerLocked(); ok {
		s.mu.Unlock()
		return header, nil
	}
	done := s.beginRefreshLocked()
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", core.AuthFailureError(ctx.Err())
	case <-done:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if header, ok := s.headerLocked(); ok {
		return header, nil
	}
	return "", core.AuthFailureError(s.lastErr)
}

// Close stops the proactive refresh timer. Subsequent callers receive an
// authentication failure.
func (s *ClientCredentialsTokenSource) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.token = ""
	s.expiresAt = time.Time{}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// headerLocked hands out the cached token only strictly before expiresAt.
func (s *ClientCredentialsTokenSource) headerLocked() (string, bool) {
	if s.token == "" {
		return "", false
	}
	if !s.expiresAt.After(s.config.Now().UTC()) {
		return "", false
	}
	return "Bearer " + s.token, true
}

func (s *ClientCredentialsTokenSource) beginRefreshLocked() chan struct{} {
	if s.inflight != nil {
		return s.inflight
	}
	done := make(chan struct{})
	s.inflight = done
	go s.refresh(done)
	return done
}

func (s *ClientCredentialsTokenSource) refresh(done chan struct{}) {
	token, lifetime, err := s.requestToken()

	s.mu.Lock()
	if s.closed {
		s.inflight = nil
		s.mu.Unlock()
		close(done)
		return
	}
	if err != nil {
		s.token = ""
		s.expiresAt = time.Time{}
		s.lastErr = err
		s.inflight = nil
		retryIn := s.config.RetryDelay
		s.armTimerLocked(retryIn)
		s.mu.Unlock()
		close(done)
		s.config.Logger.Error("access token refresh failed",
			"error", err.Error(),
			"retry_in", retryIn.String(),
		)
		return
	}

	now := s.config.Now().UTC()
	effective := lifetime - s.config.SafetyMargin
	if effective <= 0 {
		effective = lifetime / 2
	}
	if effective <= 0 {
		effective = time.Second
	}
	s.token = token
	s.expiresAt = now.Add(effective)
	s.lastErr = nil
	s.inflight = nil
	s.armTimerLocked(effective)
	expiresAt := s.expiresAt
	s.mu.Unlock()
	close(done)
	s.config.Logger.Info("access token refreshed", "expires_at", expiresAt.Format(time.RFC3339))
}

// armTimerLocked schedules the next proactive refresh, independent of
// traffic.
func (s *ClientCredentialsTokenSource) armTimerLocked(delay time.Duration) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, s.timerFired)
}

func (s *ClientCredentialsTokenSource) timerFired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.inflight != nil {
		return
	}
	s.beginRefreshLocked()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *ClientCredentialsTokenSource) requestToken() (string, time.Duration, error) {
	form := url.Values{}
	form.Set("client_id", s.config.ClientID)
	form.Set("client_secret", s.config.ClientSecret)
	form.Set("grant_type", "client_credentials")
	if s.config.Scope != "" {
		form.Set("scope", s.config.Scope)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("auth: create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.config.Client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("auth: token request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxTokenResponseBytes))
	if err != nil {
		return "", 0, fmt.Errorf("auth: read token response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", 0, fmt.Errorf("auth: token endpoint returned status %d", res.StatusCode)
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", 0, fmt.Errorf("auth: decode token response: %w", err)
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return "", 0, fmt.Errorf("auth: token endpoint returned an empty access token")
	}
	if payload.ExpiresIn <= 0 {
		return "", 0, fmt.Errorf("auth: token endpoint returned a non-positive expiry")
	}
	return payload.AccessToken, time.Duration(payload.ExpiresIn) * time.Second, nil
}

var _ core.TokenSource = (*ClientCredentialsTokenSource)(nil)
