package codec

import (
	"testing"

	"github.com/goliatone/go-pix-gateway/core"
)

func TestFormatDocumentPadsByPersonType(t *testing.T) {
	got, err := FormatDocument(core.Document{Value: "123456789", PersonType: core.PersonTypeNatural})
	if err != nil {
		t.Fatalf("format natural document: %v", err)
	}
	if got != "00123456789" {
		t.Fatalf("expected 11-digit value, got %q", got)
	}

	got, err = FormatDocument(core.Document{Value: "12345678000195", PersonType: core.PersonTypeLegal})
	if err != nil {
		t.Fatalf("format legal document: %v", err)
	}
	if got != "12345678000195" {
		t.Fatalf("expected value unchanged, got %q", got)
	}
}

func TestFormatDocumentRejectsOverlongValue(t *testing.T) {
	if _, err := FormatDocument(core.Document{Value: "123456789012", PersonType: core.PersonTypeNatural}); err == nil {
		t.Fatalf("expected error for 12-digit natural-person document")
	}
}

func TestParseDocumentInfersPersonType(t *testing.T) {
	doc, err := ParseDocument("00123456789")
	if err != nil {
		t.Fatalf("parse cpf: %v", err)
	}
	if doc.PersonType != core.PersonTypeNatural {
		t.Fatalf("expected natural person, got %q", doc.PersonType)
	}
	doc, err = ParseDocument("12345678000195")
	if err != nil {
		t.Fatalf("parse cnpj: %v", err)
	}
	if doc.PersonType != core.PersonTypeLegal {
		t.Fatalf("expected legal person, got %q", doc.PersonType)
	}
}

func TestFormatISPBAndAccountFields(t *testing.T) {
	ispb, err := FormatISPB("1234")
	if err != nil {
		t.Fatalf("format ispb: %v", err)
	}
	if ispb != "00001234" {
		t.Fatalf("expected zero-padded ispb, got %q", ispb)
	}

	branch, err := FormatBranch("1")
	if err != nil {
		t.Fatalf("format branch: %v", err)
	}
	if branch != "0001" {
		t.Fatalf("expected zero-padded branch, got %q", branch)
	}

	// Punctuation is stripped before padding.
	number, err := FormatAccountNumber("12.345-6")
	if err != nil {
		t.Fatalf("format account number: %v", err)
	}
	if number != "123456" {
		t.Fatalf("expected digits only, got %q", number)
	}
}
