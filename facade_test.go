package pixgateway

import (
	"context"
	"strings"
	"testing"

	pixcommand "github.com/goliatone/go-pix-gateway/command"
)

func TestNewFacadeRequiresGateway(t *testing.T) {
	if _, err := NewFacade(nil); err == nil {
		t.Fatalf("expected rejection for nil gateway")
	}
}

func TestNewFacadeWiresCommands(t *testing.T) {
	gateway, err := New(testConfig(), WithTransport(&fakeTransport{}), WithTokenSource(staticTokens{}))
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	defer gateway.Close()

	facade, err := NewFacade(gateway)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	commands := facade.Commands()
	if commands.CreateKey == nil || commands.FinishClaim == nil {
		t.Fatalf("expected key directory commands to be wired")
	}
	if commands.CreatePayment == nil || commands.NotifyCredit == nil {
		t.Fatalf("expected payment commands to be wired")
	}
	if commands.CreateInfraction == nil || commands.CancelRefund == nil || commands.CancelFraudMark == nil {
		t.Fatalf("expected scheme mediation commands to be wired")
	}
	if facade.Gateway() != gateway {
		t.Fatalf("expected facade to expose its gateway")
	}
}

func TestFacadeCommandReachesConfiguredEndpoint(t *testing.T) {
	transport := &fakeTransport{}
	gateway, err := New(testConfig(), WithTransport(transport), WithTokenSource(staticTokens{}))
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	defer gateway.Close()

	facade, err := NewFacade(gateway)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	msg := pixcommand.NotifyCreditMessage{EndToEndIDs: []string{"E00001234202603101200abcdefghijk"}}
	if err := msg.Validate(); err != nil {
		t.Fatalf("validate message: %v", err)
	}
	if err := facade.Commands().NotifyCredit.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute notify credit: %v", err)
	}
	if len(transport.requests) != 1 {
		t.Fatalf("expected one request, got %d", len(transport.requests))
	}
	if !strings.HasPrefix(transport.requests[0].URL, "https://payment.example/") {
		t.Fatalf("expected payment base url, got %q", transport.requests[0].URL)
	}
}

func TestNilFacadeAccessorsAreSafe(t *testing.T) {
	var facade *Facade
	if facade.Gateway() != nil {
		t.Fatalf("expected nil gateway")
	}
	if facade.Commands().CreateKey != nil {
		t.Fatalf("expected zero commands")
	}
}
