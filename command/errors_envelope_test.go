package command

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pix-gateway/core"
)

func TestCreateKeyMessage_ValidateReturnsRichError(t *testing.T) {
	err := (CreateKeyMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input category, got %q", rich.Category)
	}
	if rich.TextCode != core.GatewayErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.GatewayErrorBadInput, rich.TextCode)
	}
}

func TestCreatePaymentCommand_NilServiceReturnsRichError(t *testing.T) {
	var cmd *CreatePaymentCommand
	err := cmd.Execute(context.Background(), CreatePaymentMessage{})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
	if rich.TextCode != core.GatewayErrorInternal {
		t.Fatalf("expected %q text code, got %q", core.GatewayErrorInternal, rich.TextCode)
	}
}
