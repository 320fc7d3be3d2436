package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	opts "github.com/goliatone/go-options"
)

// ConfigProvider loads gateway configuration over supplied defaults.
type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

// RawConfigLoader yields raw key/value configuration from whatever source the
// host application wires in (file, env, secret manager).
type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

// OptionsResolver merges defaults, loaded, and runtime configuration layers.
type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// StaticRawConfigLoader wraps literal values as a RawConfigLoader.
func StaticRawConfigLoader(values map[string]any) RawConfigLoader {
	return staticRawConfigLoader{Values: values}
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GoOptionsResolver layers defaults < loaded < runtime with deterministic
// precedence, then revalidates the merged result.
type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.ServiceName) != "" {
		layer["service_name"] = cfg.ServiceName
	}
	if includeZero || strings.TrimSpace(cfg.ISPB) != "" {
		layer["ispb"] = cfg.ISPB
	}
	if includeZero || cfg.Timeout > 0 {
		layer["timeout"] = cfg.Timeout
	}

	auth := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.Auth.TokenURL) != "" {
		auth["token_url"] = cfg.Auth.TokenURL
	}
	if includeZero || strings.TrimSpace(cfg.Auth.ClientID) != "" {
		auth["client_id"] = cfg.Auth.ClientID
	}
	if includeZero || strings.TrimSpace(cfg.Auth.ClientSecret) != "" {
		auth["client_secret"] = cfg.Auth.ClientSecret
	}
	if includeZero || strings.TrimSpace(cfg.Auth.Scope) != "" {
		auth["scope"] = cfg.Auth.Scope
	}
	if len(auth) > 0 {
		layer["auth"] = auth
	}

	endpoints := map[string]any{}
	for key, value := range map[string]string{
		"dict_base_url":            cfg.Endpoints.DictBaseURL,
		"payment_base_url":         cfg.Endpoints.PaymentBaseURL,
		"infraction_base_url":      cfg.Endpoints.InfractionBaseURL,
		"refund_base_url":          cfg.Endpoints.RefundBaseURL,
		"fraud_detection_base_url": cfg.Endpoints.FraudDetectionBaseURL,
		"bank_base_url":            cfg.Endpoints.BankBaseURL,
	} {
		if includeZero || strings.TrimSpace(value) != "" {
			endpoints[key] = value
		}
	}
	if len(endpoints) > 0 {
		layer["endpoints"] = endpoints
	}
	return layer
}
