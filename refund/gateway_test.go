package refund

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/goliatone/go-pix-gateway/core"
)

type staticTokens struct{}

func (staticTokens) AuthorizationHeader(ctx context.Context) (string, error) {
	return "Bearer test-token", nil
}

type fakeTransport struct {
	requests  []core.TransportRequest
	responses []core.TransportResponse
}

func (f *fakeTransport) Kind() string { return "fake" }

func (f *fakeTransport) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		return core.TransportResponse{StatusCode: http.StatusOK, Body: []byte("{}")}, nil
	}
	res := f.responses[0]
	f.responses = f.responses[1:]
	return res, nil
}

func newTestGateway(t *testing.T, transport *fakeTransport) *Gateway {
	t.Helper()
	gateway, err := New(Config{
		BaseURL:   "https://refund.example",
		ISPB:      "00001234",
		Transport: transport,
		Tokens:    staticTokens{},
	})
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return gateway
}

const refundBody = `{
	"idSolDevolucao": "ref-1",
	"endToEndId": "E00001234202603101200abcdefghijk",
	"stSolDevolucao": "1",
	"valor": 123.45
}`

func TestCancelRefundCarriesRejectionReason(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body:       []byte(refundBody),
	}}}
	gateway := newTestGateway(t, transport)

	refund, err := gateway.CancelRefund(context.Background(), &CancelRefundRequest{
		RefundID:        "ref-1",
		RejectionReason: core.RefundRejectionNoBalance,
	})
	if err != nil {
		t.Fatalf("cancel refund: %v", err)
	}
	if refund.Amount != 12345 {
		t.Fatalf("expected minor-unit amount, got %d", refund.Amount)
	}
	var sent map[string]any
	if err := json.Unmarshal(transport.requests[0].Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent["motivoRejeicao"] != "0" {
		t.Fatalf("expected mapped rejection reason, got %v", sent["motivoRejeicao"])
	}
	if transport.requests[0].Idempotency != "ref-1" {
		t.Fatalf("expected refund id as idempotency key, got %q", transport.requests[0].Idempotency)
	}
}

func TestCloseRefundRequiresDevolutionID(t *testing.T) {
	transport := &fakeTransport{}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CloseRefund(context.Background(), &CloseRefundRequest{RefundID: "ref-1"})
	if err == nil {
		t.Fatalf("expected rejection without devolution id")
	}
	if len(transport.requests) != 0 {
		t.Fatalf("precondition failures must not reach the network")
	}
}

func TestCloseRefundLinksDevolution(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body:       []byte(refundBody),
	}}}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CloseRefund(context.Background(), &CloseRefundRequest{
		RefundID:     "ref-1",
		DevolutionID: "dev-1",
	})
	if err != nil {
		t.Fatalf("close refund: %v", err)
	}
	req := transport.requests[0]
	if !strings.HasSuffix(req.URL, "/solicitacoes-devolucao/ref-1/fechar") {
		t.Fatalf("unexpected url %q", req.URL)
	}
	var sent map[string]any
	if err := json.Unmarshal(req.Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent["idDevolucao"] != "dev-1" {
		t.Fatalf("expected devolution link, got %v", sent["idDevolucao"])
	}
}

func TestListRefunds(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"solicitacoesDevolucao": [` + refundBody + `]}`),
	}}}
	gateway := newTestGateway(t, transport)

	refunds, err := gateway.ListRefunds(context.Background(), &ListRefundsRequest{Status: core.RefundStatusOpen})
	if err != nil {
		t.Fatalf("list refunds: %v", err)
	}
	if len(refunds) != 1 || refunds[0].Status != core.RefundStatusClosed {
		t.Fatalf("unexpected refunds %+v", refunds)
	}
	if transport.requests[0].Query["stSolDevolucao"] != "0" {
		t.Fatalf("expected status filter, got %v", transport.requests[0].Query)
	}
}
