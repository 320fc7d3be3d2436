// Package dict is the operation gateway for the scheme's key directory:
// key registration and the ownership/portability claim lifecycle.
package dict

import (
	"time"

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
}

type Gateway struct {
	client *scheme.Client
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
	return &Gateway{client: client}, nil
}

// wireAccount / wireOwner are the directory's account and owner shapes,
// shared by key and claim payloads.
type wireAccount struct {
	ISPB     string `json:"ispb"`
	Branch   string `json:"nrAgencia"`
	Number   string `json:"nrConta"`
	Type     string `json:"tpConta"`
	OpenedAt string `json:"dtAberturaConta,omitempty"`
}

type wireOwner struct {
	PersonType string `json:"tpPessoa"`
	Document   string `json:"cpfCnpj"`
	Name       string `json:"nome"`
	TradeName  string `json:"nomeFantasia,omitempty"`
}

func encodeAccount(account core.Account) (wireAccount, error) {
	ispb, err := codec.FormatISPB(account.ISPB)
	if err != nil {
		return wireAccount{}, err
	}
	branch, err := codec.FormatBranch(account.Branch)
	if err != nil {
		return wireAccount{}, err
	}
	number, err := codec.FormatAccountNumber(account.Number)
	if err != nil {
		return wireAccount{}, err
	}
	accountType, err := codec.EncodeAccountType(account.Type)
	if err != nil {
		return wireAccount{}, err
	}
	out := wireAccount{
		ISPB:   ispb,
		Branch: branch,
		Number: number,
		Type:   accountType,
	}
	if !account.OpenedAt.IsZero() {
		opened, err := codec.FormatWireInstant(account.OpenedAt)
		if err != nil {
			return wireAccount{}, err
		}
		out.OpenedAt = opened
	}
	return out, nil
}

func encodeOwner(owner core.Owner) (wireOwner, error) {
	personType, err := codec.EncodePersonType(owner.Document.PersonType)
	if err != nil {
		return wireOwner{}, err
	}
	document, err := codec.FormatDocument(owner.Document)
	if err != nil {
		return wireOwner{}, err
	}
	name, err := codec.SanitizeName(owner.Name, codec.NameLengthLong)
	if err != nil {
		return wireOwner{}, err
	}
	out := wireOwner{
		PersonType: personType,
		Document:   document,
		Name:       name,
	}
	if owner.TradeName != "" {
		tradeName, err := codec.SanitizeName(owner.TradeName, codec.NameLengthLong)
		if err != nil {
			return wireOwner{}, err
		}
		out.TradeName = tradeName
	}
	return out, nil
}

func decodeAccount(in wireAccount) (core.Account, error) {
	accountType, err := codec.DecodeAccountType(in.Type)
	if err != nil {
		return core.Account{}, err
	}
	out := core.Account{
		ISPB:   in.ISPB,
		Branch: in.Branch,
		Number: in.Number,
		Type:   accountType,
	}
	if in.OpenedAt != "" {
		opened, err := codec.ParseWireInstant(in.OpenedAt)
		if err != nil {
			return core.Account{}, err
		}
		out.OpenedAt = opened
	}
	return out, nil
}

func decodeOwner(in wireOwner) (core.Owner, error) {
	personType, err := codec.DecodePersonType(in.PersonType)
	if err != nil {
		return core.Owner{}, err
	}
	return core.Owner{
		Document:  core.Document{Value: in.Document, PersonType: personType},
		Name:      in.Name,
		TradeName: in.TradeName,
	}, nil
}
