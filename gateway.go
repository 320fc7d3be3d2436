// Package pixgateway lets a core banking platform participate in Brazil's
// instant-payment rail and its key directory. It translates internal domain
// requests into the scheme's wire format, manages the shared OAuth2 bearer
// token, and classifies scheme errors back into domain results.
package pixgateway

import (
	"fmt"
	"net/http"
	"time"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-pix-gateway/auth"
	"github.com/goliatone/go-pix-gateway/bank"
	"github.com/goliatone/go-pix-gateway/core"
	"github.com/goliatone/go-pix-gateway/dict"
	"github.com/goliatone/go-pix-gateway/frauddetection"
	"github.com/goliatone/go-pix-gateway/infraction"
	"github.com/goliatone/go-pix-gateway/payment"
	"github.com/goliatone/go-pix-gateway/refund"
	"github.com/goliatone/go-pix-gateway/transport"
)

// Gateway aggregates the per-capability gateways behind one construction
// path: a single token source and a single transport shared by all of them.
type Gateway struct {
	config  core.Config
	tokens  core.TokenSource
	dict    *dict.Gateway
	payment *payment.Gateway
	infra   *infraction.Gateway
	refund  *refund.Gateway
	fraud   *frauddetection.Gateway
	bank    *bank.Gateway

	ownedTokens *auth.ClientCredentialsTokenSource
}

type Option func(*gatewayOptions)

type gatewayOptions struct {
	logger    core.Logger
	metrics   core.MetricsRecorder
	transport core.TransportAdapter
	tokens    core.TokenSource
	client    *http.Client
	now       func() time.Time
}

func WithLogger(logger core.Logger) Option {
	return func(o *gatewayOptions) { o.logger = logger }
}

func WithMetricsRecorder(metrics core.MetricsRecorder) Option {
	return func(o *gatewayOptions) { o.metrics = metrics }
}

// WithTransport replaces the REST adapter, mostly for tests.
func WithTransport(adapter core.TransportAdapter) Option {
	return func(o *gatewayOptions) { o.transport = adapter }
}

// WithTokenSource injects an externally managed token source. The gateway
// will not close it.
func WithTokenSource(tokens core.TokenSource) Option {
	return func(o *gatewayOptions) { o.tokens = tokens }
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *gatewayOptions) { o.client = client }
}

func WithNow(now func() time.Time) Option {
	return func(o *gatewayOptions) { o.now = now }
}

func New(cfg core.Config, opts ...Option) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options := gatewayOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}
	logger := glog.Ensure(options.logger)

	g := &Gateway{config: cfg, tokens: options.tokens}
	if g.tokens == nil {
		httpClient := options.client
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.Timeout}
		}
		owned, err := auth.NewClientCredentialsTokenSource(auth.ClientCredentialsConfig{
			TokenURL:     cfg.Auth.TokenURL,
			ClientID:     cfg.Auth.ClientID,
			ClientSecret: cfg.Auth.ClientSecret,
			Scope:        cfg.Auth.Scope,
			Client:       httpClient,
			Logger:       logger,
			Now:          options.now,
		})
		if err != nil {
			return nil, err
		}
		g.ownedTokens = owned
		g.tokens = owned
	}

	adapter := options.transport
	if adapter == nil {
		httpClient := options.client
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.Timeout}
		}
		adapter = transport.NewRESTAdapter(httpClient)
	}

	var err error
	g.dict, err = dict.New(dict.Config{
		BaseURL:   cfg.Endpoints.DictBaseURL,
		ISPB:      cfg.ISPB,
		Timeout:   cfg.Timeout,
		Transport: adapter,
		Tokens:    g.tokens,
		Logger:    logger,
		Metrics:   options.metrics,
	})
	if err != nil {
		return nil, g.closeOnError(fmt.Errorf("pixgateway: dict gateway: %w", err))
	}
	g.payment, err = payment.New(payment.Config{
		BaseURL:   cfg.Endpoints.PaymentBaseURL,
		ISPB:      cfg.ISPB,
		Timeout:   cfg.Timeout,
		Transport: adapter,
		Tokens:    g.tokens,
		Logger:    logger,
		Metrics:   options.metrics,
		Now:       options.now,
	})
	if err != nil {
		return nil, g.closeOnError(fmt.Errorf("pixgateway: payment gateway: %w", err))
	}
	g.infra, err = infraction.New(infraction.Config{
		BaseURL:   cfg.Endpoints.InfractionBaseURL,
		ISPB:      cfg.ISPB,
		Timeout:   cfg.Timeout,
		Transport: adapter,
		Tokens:    g.tokens,
		Logger:    logger,
		Metrics:   options.metrics,
	})
	if err != nil {
		return nil, g.closeOnError(fmt.Errorf("pixgateway: infraction gateway: %w", err))
	}
	g.refund, err = refund.New(refund.Config{
		BaseURL:   cfg.Endpoints.RefundBaseURL,
		ISPB:      cfg.ISPB,
		Timeout:   cfg.Timeout,
		Transport: adapter,
		Tokens:    g.tokens,
		Logger:    logger,
		Metrics:   options.metrics,
	})
	if err != nil {
		return nil, g.closeOnError(fmt.Errorf("pixgateway: refund gateway: %w", err))
	}
	g.fraud, err = frauddetection.New(frauddetection.Config{
		BaseURL:   cfg.Endpoints.FraudDetectionBaseURL,
		ISPB:      cfg.ISPB,
		Timeout:   cfg.Timeout,
		Transport: adapter,
		Tokens:    g.tokens,
		Logger:    logger,
		Metrics:   options.metrics,
	})
	if err != nil {
		return nil, g.closeOnError(fmt.Errorf("pixgateway: fraud detection gateway: %w", err))
	}
	g.bank, err = bank.New(bank.Config{
		BaseURL:   cfg.Endpoints.BankBaseURL,
		ISPB:      cfg.ISPB,
		Timeout:   cfg.Timeout,
		Transport: adapter,
		Tokens:    g.tokens,
		Logger:    logger,
		Metrics:   options.metrics,
	})
	if err != nil {
		return nil, g.closeOnError(fmt.Errorf("pixgateway: bank gateway: %w", err))
	}

	return g, nil
}

func (g *Gateway) closeOnError(err error) error {
	if g.ownedTokens != nil {
		g.ownedTokens.Close()
	}
	return err
}

// Close releases the token refresh timer when the gateway owns its token
// source. Injected token sources are left alone.
func (g *Gateway) Close() error {
	if g == nil || g.ownedTokens == nil {
		return nil
	}
	g.ownedTokens.Close()
	return nil
}

func (g *Gateway) Keys() *dict.Gateway { return g.dict }

func (g *Gateway) Payments() *payment.Gateway { return g.payment }

func (g *Gateway) Infractions() *infraction.Gateway { return g.infra }

func (g *Gateway) Refunds() *refund.Gateway { return g.refund }

func (g *Gateway) FraudMarks() *frauddetection.Gateway { return g.fraud }

func (g *Gateway) Banks() *bank.Gateway { return g.bank }

func (g *Gateway) TokenSource() core.TokenSource { return g.tokens }

func (g *Gateway) Config() core.Config { return g.config }
