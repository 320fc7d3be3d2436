package payment

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-pix-gateway/codec"
	"github.com/goliatone/go-pix-gateway/core"
	"github.com/goliatone/go-pix-gateway/scheme"
)

// CreditEntry is one inbound settlement on the institution's scheme account.
type CreditEntry struct {
	EndToEndID string
	Amount     core.Money
	Payer      core.PaymentParty
	SettledAt  string
}

type wireCreditEntry struct {
	EndToEndID string    `json:"endToEndId"`
	Amount     float64   `json:"valor"`
	Payer      wireParty `json:"pagador"`
	SettledAt  string    `json:"dtHrLiquidacao,omitempty"`
}

type wireCreditStatement struct {
	Entries []wireCreditEntry `json:"creditos"`
}

// VerifyCreditStatement pulls the credits the scheme has settled into this
// institution's account but the platform has not acknowledged yet.
func (g *Gateway) VerifyCreditStatement(ctx context.Context) ([]CreditEntry, error) {
	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   "payment.statement.verify",
		Method: http.MethodGet,
		Path:   "/extrato/creditos",
	})
	if err != nil {
		return nil, err
	}
	var payload wireCreditStatement
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	out := make([]CreditEntry, 0, len(payload.Entries))
	for _, entry := range payload.Entries {
		decoded, err := decodeCreditEntry(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

type wireNotifyCredit struct {
	EndToEndIDs []string `json:"endToEndIds"`
}

// NotifyCreditStatement acknowledges received credits so the scheme stops
// reporting them. The first end-to-end id keys the deduplication header.
func (g *Gateway) NotifyCreditStatement(ctx context.Context, endToEndIDs []string) error {
	ids := make([]string, 0, len(endToEndIDs))
	for _, id := range endToEndIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) == 0 {
		return core.MissingInputError("payment: at least one end-to-end id is required")
	}

	_, err := g.client.Do(ctx, scheme.Operation{
		Name:        "payment.statement.notify",
		Method:      http.MethodPost,
		Path:        "/extrato/creditos/confirmar",
		Body:        wireNotifyCredit{EndToEndIDs: ids},
		Idempotency: ids[0],
		Fields:      map[string]any{"end_to_end_id": ids[0]},
	})
	return err
}

func decodeCreditEntry(entry wireCreditEntry) (CreditEntry, error) {
	payer, err := decodeParty(entry.Payer)
	if err != nil {
		return CreditEntry{}, err
	}
	return CreditEntry{
		EndToEndID: entry.EndToEndID,
		Amount:     codec.FloatToMinorUnits(entry.Amount),
		Payer:      payer,
		SettledAt:  entry.SettledAt,
	}, nil
}
