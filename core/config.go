package core

import (
	"fmt"
	"strings"
	"time"
)

// Config carries everything the gateway needs to reach the scheme: the
// institution identity, the auth endpoint credentials, and the per-family
// base URLs.
type Config struct {
	ServiceName string          `json:"service_name" koanf:"service_name"`
	ISPB        string          `json:"ispb" koanf:"ispb"`
	Auth        AuthConfig      `json:"auth" koanf:"auth"`
	Endpoints   EndpointsConfig `json:"endpoints" koanf:"endpoints"`
	Timeout     time.Duration   `json:"timeout" koanf:"timeout"`
}

type AuthConfig struct {
	TokenURL     string `json:"token_url" koanf:"token_url"`
	ClientID     string `json:"client_id" koanf:"client_id"`
	ClientSecret string `json:"client_secret" koanf:"client_secret"`
	Scope        string `json:"scope" koanf:"scope"`
}

type EndpointsConfig struct {
	DictBaseURL           string `json:"dict_base_url" koanf:"dict_base_url"`
	PaymentBaseURL        string `json:"payment_base_url" koanf:"payment_base_url"`
	InfractionBaseURL     string `json:"infraction_base_url" koanf:"infraction_base_url"`
	RefundBaseURL         string `json:"refund_base_url" koanf:"refund_base_url"`
	FraudDetectionBaseURL string `json:"fraud_detection_base_url" koanf:"fraud_detection_base_url"`
	BankBaseURL           string `json:"bank_base_url" koanf:"bank_base_url"`
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("core: config is nil")
	}
	ispb := strings.TrimSpace(c.ISPB)
	if ispb == "" {
		return fmt.Errorf("core: institution ispb is required")
	}
	if len(ispb) > 8 {
		return fmt.Errorf("core: institution ispb %q exceeds 8 digits", ispb)
	}
	for _, r := range ispb {
		if r < '0' || r > '9' {
			return fmt.Errorf("core: institution ispb %q must be digits only", ispb)
		}
	}
	if strings.TrimSpace(c.Auth.TokenURL) == "" {
		return fmt.Errorf("core: auth token url is required")
	}
	if strings.TrimSpace(c.Auth.ClientID) == "" {
		return fmt.Errorf("core: auth client id is required")
	}
	if strings.TrimSpace(c.Auth.ClientSecret) == "" {
		return fmt.Errorf("core: auth client secret is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("core: timeout must not be negative")
	}
	return nil
}

// DefaultConfig carries the settings that do not depend on the institution.
func DefaultConfig() Config {
	return Config{
		ServiceName: "pix-gateway",
		Timeout:     30 * time.Second,
	}
}
