package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/habab6/ipec-campus-connect-sub000/app/academics"
	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

// invoiceTypeCodes maps a payment type to the code embedded in invoice numbers.
var invoiceTypeCodes = map[models.PaymentType]string{
	models.PaymentTuition:         "MIN",
	models.PaymentRegistrationFee: "INS",
	models.PaymentShippingFee:     "ENV",
	models.PaymentDuplicate:       "DUP",
}

// StudentReference builds the registrar code for a new student, e.g. IP24-0012.
func StudentReference(registeredAt time.Time, seq int) string {
	return fmt.Sprintf("IP%s-%04d", registeredAt.Format("06"), seq)
}

// StudentReferencePrefix returns the per-year prefix used to count existing
// references when allocating the next sequence.
func StudentReferencePrefix(registeredAt time.Time) string {
	return fmt.Sprintf("IP%s-", registeredAt.Format("06"))
}

// AttestationNumberPrefix is the base number shared by every attestation a
// student holds for one (study year, program) pair. Re-issue counting keys on
// this prefix: the academic year is not part of the number, so counting per
// period would regenerate an already-issued number when a student repeats a
// study year.
func AttestationNumberPrefix(reference string, studyYear int, program models.Program) string {
	return fmt.Sprintf("ATT-%s-%d%s", reference, studyYear, academics.Code(program))
}

// AttestationNumber composes an attestation number from the student reference,
// the study year and the program code. seq is the count of numbers already
// issued on the same prefix (0 for the first document).
func AttestationNumber(reference string, studyYear int, program models.Program, seq int) string {
	number := AttestationNumberPrefix(reference, studyYear, program)
	if seq > 0 {
		number = fmt.Sprintf("%s-%d", number, seq+1)
	}
	return number
}

// InvoiceNumber composes an invoice number from the issue month, a fragment of
// the student reference and the payment type code, e.g. IPEC-202501-0012-MIN.
func InvoiceNumber(issuedAt time.Time, reference string, ptype models.PaymentType) string {
	code, ok := invoiceTypeCodes[ptype]
	if !ok {
		code = "DIV"
	}
	return fmt.Sprintf("IPEC-%s-%s-%s", issuedAt.Format("200601"), referenceFragment(reference), code)
}

// CreditNoteNumber derives the credit-note number from the originating invoice.
func CreditNoteNumber(invoiceNumber string) string {
	if strings.HasPrefix(invoiceNumber, "IPEC-") {
		return "NC-" + strings.TrimPrefix(invoiceNumber, "IPEC-")
	}
	return "NC-" + invoiceNumber
}

// referenceFragment keeps the last four alphanumeric characters of a student
// reference, uppercased.
func referenceFragment(reference string) string {
	var b strings.Builder
	for _, r := range reference {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	s := strings.ToUpper(b.String())
	if len(s) > 4 {
		s = s[len(s)-4:]
	}
	return s
}
