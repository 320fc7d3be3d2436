package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/goliatone/go-pix-gateway/core"
)

func TestCreateDynamicQRCodeRequiresAmount(t *testing.T) {
	transport := &fakeTransport{}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CreateDynamicQRCode(context.Background(), &CreateQRCodeRequest{Key: "maria@example.com"})
	if err == nil {
		t.Fatalf("expected rejection without amount")
	}
	if len(transport.requests) != 0 {
		t.Fatalf("precondition failures must not reach the network")
	}
}

func TestCreateStaticQRCode(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusCreated,
		Body: []byte(`{
			"idQrCode": "qr-1",
			"tpQrCode": "11",
			"emv": "00020126580014br.gov.bcb.pix",
			"chave": "maria@example.com"
		}`),
	}}}
	gateway := newTestGateway(t, transport)

	qr, err := gateway.CreateStaticQRCode(context.Background(), &CreateQRCodeRequest{
		Key:       "maria@example.com",
		RequestID: "req-1",
	})
	if err != nil {
		t.Fatalf("create qr code: %v", err)
	}
	if qr.Type != core.QRCodeTypeStatic || qr.Payload == "" {
		t.Fatalf("unexpected qr code %+v", qr)
	}
}

func TestCreateDueDateQRCodeRequiresWireDate(t *testing.T) {
	transport := &fakeTransport{}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CreateDueDateQRCode(context.Background(), &CreateQRCodeRequest{
		Key:     "maria@example.com",
		Amount:  5000,
		DueDate: "10/03/2026",
	})
	if err == nil {
		t.Fatalf("expected rejection for non-wire date format")
	}
	if len(transport.requests) != 0 {
		t.Fatalf("precondition failures must not reach the network")
	}
}

func TestCreateQRCodeCapsMerchantFields(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusCreated,
		Body:       []byte(`{"idQrCode": "qr-1", "tpQrCode": "11", "emv": "payload"}`),
	}}}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CreateStaticQRCode(context.Background(), &CreateQRCodeRequest{
		Key:          "maria@example.com",
		MerchantName: "Mercearia São João da Esquina do Centro",
		MerchantCity: "São José dos Campos",
	})
	if err != nil {
		t.Fatalf("create qr code: %v", err)
	}
	var sent map[string]any
	if err := json.Unmarshal(transport.requests[0].Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent["nomeRecebedor"] != "MERCEARIA SAO JOAO DA ESQ" {
		t.Fatalf("expected merchant name capped at 25, got %q", sent["nomeRecebedor"])
	}
	if sent["cidadeRecebedor"] != "SAO JOSE DOS CA" {
		t.Fatalf("expected merchant city capped at 15, got %q", sent["cidadeRecebedor"])
	}
}

func TestUpdateDynamicQRCodeUsesCodeIDAsIdempotencyKey(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"idQrCode": "qr-1", "tpQrCode": "12", "emv": "payload"}`),
	}}}
	gateway := newTestGateway(t, transport)

	_, err := gateway.UpdateDynamicQRCode(context.Background(), &UpdateQRCodeRequest{
		QRCodeID: "qr-1",
		Amount:   7500,
	})
	if err != nil {
		t.Fatalf("update qr code: %v", err)
	}
	if transport.requests[0].Idempotency != "qr-1" {
		t.Fatalf("expected qr code id as idempotency key, got %q", transport.requests[0].Idempotency)
	}
	var sent map[string]any
	if err := json.Unmarshal(transport.requests[0].Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent["valor"] != 75.0 {
		t.Fatalf("expected major-unit amount, got %v", sent["valor"])
	}
}

func TestDecodeQRCodeNotFoundYieldsNil(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusNotAcceptable,
		Body:       []byte(`{"codigo":"ENTRY_NOT_FOUND"}`),
	}}}
	gateway := newTestGateway(t, transport)

	qr, err := gateway.DecodeQRCode(context.Background(), &DecodeQRCodeRequest{Payload: "00020126..."})
	if err != nil {
		t.Fatalf("expected absent result, got %v", err)
	}
	if qr != nil {
		t.Fatalf("expected nil qr code, got %+v", qr)
	}
}
