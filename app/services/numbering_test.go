package services

import (
	"strings"
	"testing"
	"time"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

func TestStudentReference(t *testing.T) {
	at := time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)
	if got := StudentReference(at, 12); got != "IP24-0012" {
		t.Errorf("expected IP24-0012, got %s", got)
	}
	if got := StudentReferencePrefix(at); got != "IP24-" {
		t.Errorf("expected IP24-, got %s", got)
	}
}

func TestAttestationNumber(t *testing.T) {
	if got := AttestationNumber("IP24-0012", 2, models.ProgramBBA, 0); got != "ATT-IP24-0012-2B" {
		t.Errorf("expected ATT-IP24-0012-2B, got %s", got)
	}
	if got := AttestationNumber("IP24-0012", 1, models.ProgramMBAComp, 0); got != "ATT-IP24-0012-1MC" {
		t.Errorf("expected ATT-IP24-0012-1MC, got %s", got)
	}
	// re-issue for the same period gets a suffix
	if got := AttestationNumber("IP24-0012", 2, models.ProgramBBA, 1); got != "ATT-IP24-0012-2B-2" {
		t.Errorf("expected ATT-IP24-0012-2B-2, got %s", got)
	}
}

func TestAttestationNumberPrefix(t *testing.T) {
	if got := AttestationNumberPrefix("IP24-0012", 2, models.ProgramBBA); got != "ATT-IP24-0012-2B" {
		t.Errorf("expected ATT-IP24-0012-2B, got %s", got)
	}
	// An MBA prefix must not be a dash-free prefix of the MBA-Complementary
	// one, or prefix counting would conflate their sequences.
	mba := AttestationNumberPrefix("IP24-0012", 1, models.ProgramMBA)
	mbaComp := AttestationNumberPrefix("IP24-0012", 1, models.ProgramMBAComp)
	if mbaComp == mba || strings.HasPrefix(mbaComp, mba+"-") {
		t.Errorf("prefixes %s and %s must count separately", mba, mbaComp)
	}
}

func TestInvoiceNumber(t *testing.T) {
	at := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		ptype models.PaymentType
		want  string
	}{
		{models.PaymentTuition, "IPEC-202501-0012-MIN"},
		{models.PaymentRegistrationFee, "IPEC-202501-0012-INS"},
		{models.PaymentShippingFee, "IPEC-202501-0012-ENV"},
		{models.PaymentDuplicate, "IPEC-202501-0012-DUP"},
	}
	for _, c := range cases {
		if got := InvoiceNumber(at, "IP24-0012", c.ptype); got != c.want {
			t.Errorf("%s: expected %s, got %s", c.ptype, c.want, got)
		}
	}
}

func TestCreditNoteNumber(t *testing.T) {
	if got := CreditNoteNumber("IPEC-202501-ABCD-MIN"); got != "NC-202501-ABCD-MIN" {
		t.Errorf("expected NC-202501-ABCD-MIN, got %s", got)
	}
	if got := CreditNoteNumber("FOO-1"); got != "NC-FOO-1" {
		t.Errorf("expected NC-FOO-1, got %s", got)
	}
}
