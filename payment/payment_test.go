package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/goliatone/go-pix-gateway/core"
)

const paymentBody = `{
	"idPagamento": "pay-1",
	"endToEndId": "E00001234202603101200abcdefghijk",
	"stPagamento": "9",
	"valor": 123.45,
	"pagador": {"nome": "MARIA DA SILVA", "tpPessoa": "0", "cpfCnpj": "00123456789", "ispb": "00001234", "nrAgencia": "0001", "nrConta": "56789", "tpConta": "CACC"},
	"recebedor": {"nome": "JOAO PEREIRA", "tpPessoa": "0", "cpfCnpj": "00987654321", "ispb": "00009999", "nrAgencia": "0002", "nrConta": "11111", "tpConta": "SVGS"}
}`

func TestCreatePaymentConvertsAmountToMajorUnits(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusCreated,
		Body:       []byte(paymentBody),
	}}}
	gateway := newTestGateway(t, transport)

	payment, err := gateway.CreatePayment(context.Background(), &CreatePaymentRequest{
		ID:         "req-1",
		Amount:     12345,
		Payer:      testParty("Maria da Silva"),
		Payee:      testParty("Joao Pereira"),
		Priority:   core.PaymentPriorityNormal,
		Finality:   core.PaymentFinalityTransfer,
		Initiation: core.InitiationTypeKey,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if payment.Status != core.PaymentStatusSettled {
		t.Fatalf("expected settled status, got %q", payment.Status)
	}
	if payment.Amount != 12345 {
		t.Fatalf("expected amount back in minor units, got %d", payment.Amount)
	}

	var sent map[string]any
	if err := json.Unmarshal(transport.requests[0].Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent["valor"] != 123.45 {
		t.Fatalf("expected decimal major units on the wire, got %v", sent["valor"])
	}
	if sent["endToEndId"] == "" || sent["endToEndId"] == nil {
		t.Fatalf("expected generated end-to-end id")
	}
	if transport.requests[0].Idempotency != "req-1" {
		t.Fatalf("expected request id as idempotency key, got %q", transport.requests[0].Idempotency)
	}
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	transport := &fakeTransport{}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CreatePayment(context.Background(), &CreatePaymentRequest{
		Amount:     0,
		Payer:      testParty("Maria da Silva"),
		Payee:      testParty("Joao Pereira"),
		Priority:   core.PaymentPriorityNormal,
		Finality:   core.PaymentFinalityTransfer,
		Initiation: core.InitiationTypeKey,
	})
	if err == nil {
		t.Fatalf("expected rejection for zero amount")
	}
	if len(transport.requests) != 0 {
		t.Fatalf("precondition failures must not reach the network")
	}
}

func TestGetPaymentNotFoundYieldsNil(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusNotFound,
		Body:       []byte(`{"codigo":"ENTRY_NOT_FOUND"}`),
	}}}
	gateway := newTestGateway(t, transport)

	payment, err := gateway.GetPaymentByID(context.Background(), "pay-404")
	if err != nil {
		t.Fatalf("expected absent result, got %v", err)
	}
	if payment != nil {
		t.Fatalf("expected nil payment, got %+v", payment)
	}
}

func TestGetPaymentByEndToEndID(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body:       []byte(paymentBody),
	}}}
	gateway := newTestGateway(t, transport)

	payment, err := gateway.GetPaymentByEndToEndID(context.Background(), "E00001234202603101200abcdefghijk")
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if payment == nil || payment.ID != "pay-1" {
		t.Fatalf("unexpected payment %+v", payment)
	}
}

func TestCreateDevolution(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusCreated,
		Body: []byte(`{
			"idDevolucao": "dev-1",
			"endToEndIdDevolucao": "D00001234202603101200abcdefghijk",
			"stPagamento": "1",
			"valor": 50.00
		}`),
	}}}
	gateway := newTestGateway(t, transport)

	devolution, err := gateway.CreateDevolution(context.Background(), &CreateDevolutionRequest{
		ID:         "dev-1",
		EndToEndID: "E00001234202603101200abcdefghijk",
		Amount:     5000,
		Code:       core.DevolutionCodeClientRequest,
	})
	if err != nil {
		t.Fatalf("create devolution: %v", err)
	}
	if devolution.ID != "dev-1" || devolution.Amount != 5000 {
		t.Fatalf("unexpected devolution %+v", devolution)
	}
	if transport.requests[0].Idempotency != "dev-1" {
		t.Fatalf("expected devolution id as idempotency key, got %q", transport.requests[0].Idempotency)
	}

	var sent map[string]any
	if err := json.Unmarshal(transport.requests[0].Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent["codigoDevolucao"] != "MD06" {
		t.Fatalf("expected mapped devolution code, got %v", sent["codigoDevolucao"])
	}
}

func TestRefundDevolutionRequiresRefundID(t *testing.T) {
	transport := &fakeTransport{}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CreateRefundDevolution(context.Background(), &CreateDevolutionRequest{
		EndToEndID: "E00001234202603101200abcdefghijk",
		Amount:     5000,
		Code:       core.DevolutionCodeFraud,
	})
	if err == nil {
		t.Fatalf("expected rejection without refund id")
	}
	if len(transport.requests) != 0 {
		t.Fatalf("precondition failures must not reach the network")
	}
}
