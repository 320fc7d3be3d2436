// Package payment is the operation gateway for the instant-payment rail:
// payment initiation, settlement queries, devolutions, QR code issuance and
// decoding, and credit statement verification.
package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pix-gateway/codec"
	"github.com/goliatone/go-pix-gateway/core"
	"github.com/goliatone/go-pix-gateway/scheme"
)

type Config struct {
	BaseURL   string
	ISPB      string
	Timeout   time.Duration
	Transport core.TransportAdapter
	Tokens    core.TokenSource
	Logger    core.Logger
	Metrics   core.MetricsRecorder
	Now       func() time.Time
}

type Gateway struct {
	client *scheme.Client
	now    func() time.Time
}

func New(cfg Config) (*Gateway, error) {
	client, err := scheme.NewClient(scheme.ClientConfig{
		BaseURL:   cfg.BaseURL,
		ISPB:      cfg.ISPB,
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
		Tokens:    cfg.Tokens,
		Logger:    cfg.Logger,
		Metrics:   cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Gateway{client: client, now: now}, nil
}

// GenerateEndToEndID builds a scheme-shaped end-to-end id: "E" + the 8-digit
// ISPB + yyyyMMddHHmm + an 11-character unique suffix.
func (g *Gateway) GenerateEndToEndID() (string, error) {
	ispb, err := codec.FormatISPB(g.client.ISPB())
	if err != nil {
		return "", err
	}
	suffix := strings.ToLower(strings.ReplaceAll(uuid.NewString(), "-", ""))[:11]
	return fmt.Sprintf("E%s%s%s", ispb, g.now().UTC().Format("200601021504"), suffix), nil
}

type wireParty struct {
	Name       string `json:"nome"`
	PersonType string `json:"tpPessoa"`
	Document   string `json:"cpfCnpj"`
	ISPB       string `json:"ispb"`
	Branch     string `json:"nrAgencia"`
	Number     string `json:"nrConta"`
	Type       string `json:"tpConta"`
	Key        string `json:"chave,omitempty"`
}

func encodeParty(party core.PaymentParty) (wireParty, error) {
	name, err := codec.SanitizeName(party.Name, codec.NameLengthLong)
	if err != nil {
		return wireParty{}, err
	}
	personType, err := codec.EncodePersonType(party.Document.PersonType)
	if err != nil {
		return wireParty{}, err
	}
	document, err := codec.FormatDocument(party.Document)
	if err != nil {
		return wireParty{}, err
	}
	ispb, err := codec.FormatISPB(party.Account.ISPB)
	if err != nil {
		return wireParty{}, err
	}
	branch, err := codec.FormatBranch(party.Account.Branch)
	if err != nil {
		return wireParty{}, err
	}
	number, err := codec.FormatAccountNumber(party.Account.Number)
	if err != nil {
		return wireParty{}, err
	}
	accountType, err := codec.EncodeAccountType(party.Account.Type)
	if err != nil {
		return wireParty{}, err
	}
	return wireParty{
		Name:       name,
		PersonType: personType,
		Document:   document,
		ISPB:       ispb,
		Branch:     branch,
		Number:     number,
		Type:       accountType,
		Key:        strings.TrimSpace(party.Key),
	}, nil
}

func decodeParty(in wireParty) (core.PaymentParty, error) {
	personType, err := codec.DecodePersonType(in.PersonType)
	if err != nil {
		return core.PaymentParty{}, err
	}
	accountType, err := codec.DecodeAccountType(in.Type)
	if err != nil {
		return core.PaymentParty{}, err
	}
	return core.PaymentParty{
		Name:     in.Name,
		Document: core.Document{Value: in.Document, PersonType: personType},
		Account: core.Account{
			ISPB:   in.ISPB,
			Branch: in.Branch,
			Number: in.Number,
			Type:   accountType,
		},
		Key: in.Key,
	}, nil
}
