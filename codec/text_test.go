package codec

import "testing"

func TestSanitizeNameStripsAccentsAndUppercases(t *testing.T) {
	got, err := SanitizeName("José  da Conceição", NameLengthLong)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if got != "JOSE DA CONCEICAO" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeNameTruncates(t *testing.T) {
	got, err := SanitizeName("Banco Cooperativo do Centro Oeste Ltda", NameLengthShort)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if len(got) > NameLengthShort {
		t.Fatalf("expected at most %d characters, got %d (%q)", NameLengthShort, len(got), got)
	}
}

func TestSanitizeNameRejectsEmptyResult(t *testing.T) {
	if _, err := SanitizeName("   ", NameLengthLong); err == nil {
		t.Fatalf("expected error for blank name")
	}
}
