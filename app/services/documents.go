package services

import (
	"fmt"
	"strings"

	"github.com/habab6/ipec-campus-connect-sub000/app/academics"
	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

// AttestationFields maps an attestation snapshot onto the layout field names
// of the attestation template. Values come from the snapshot row, never the
// live student record, so a later download reproduces the original document.
func AttestationFields(a *models.Attestation) map[string]string {
	fields := map[string]string{
		"number":        a.Number,
		"full_name":     a.FirstName + " " + a.LastName,
		"reference":     a.Reference,
		"nationality":   a.Nationality,
		"program":       academics.Label(a.Program),
		"study_year":    fmt.Sprintf("%d", a.StudyYear),
		"academic_year": a.AcademicYear,
		"generate_date": a.GenerateDate.Format("02/01/2006"),
	}
	if !a.BirthDate.Time.IsZero() {
		fields["birth_date"] = a.BirthDate.Time.Format("02/01/2006")
	}
	if a.BirthPlace != "" {
		fields["birth_place"] = a.BirthPlace
	}
	if a.Specialty != nil {
		fields["specialty"] = *a.Specialty
	}
	return fields
}

// InvoiceFields maps an invoice and its student onto the invoice template.
func InvoiceFields(inv *models.Invoice, s *models.Student) map[string]string {
	fields := map[string]string{
		"number":        inv.Number,
		"full_name":     s.FullName(),
		"reference":     s.Reference,
		"address":       strings.TrimSpace(s.AddressStreet),
		"city":          strings.TrimSpace(s.AddressPostal + " " + s.AddressCity),
		"type":          paymentTypeLabel(inv.Type),
		"amount":        formatAmount(inv.Amount),
		"total":         formatAmount(inv.Amount),
		"generate_date": inv.GenerateDate.Format("02/01/2006"),
	}
	if inv.AcademicYear != nil {
		fields["academic_year"] = *inv.AcademicYear
	}
	if inv.StudyYear != nil {
		fields["study_year"] = fmt.Sprintf("%d", *inv.StudyYear)
	}
	return fields
}

// CreditNoteFields maps a credit note, its invoice and student onto the
// credit-note template.
func CreditNoteFields(note *models.CreditNote, inv *models.Invoice, s *models.Student) map[string]string {
	return map[string]string{
		"number":         note.Number,
		"invoice_number": inv.Number,
		"full_name":      s.FullName(),
		"reference":      s.Reference,
		"amount":         formatAmount(note.Amount),
		"reason":         note.Reason,
		"date":           note.Date.Time.Format("02/01/2006"),
	}
}

// AttestationFilename builds the download name, e.g.
// attestation-Jean-Dupont-ATT-IP24-0001-1B.pdf.
func AttestationFilename(a *models.Attestation) string {
	name := sanitizeFilename(a.FirstName + "-" + a.LastName)
	return fmt.Sprintf("attestation-%s-%s.pdf", name, a.Number)
}

func InvoiceFilename(inv *models.Invoice) string {
	return fmt.Sprintf("facture-%s.pdf", inv.Number)
}

func CreditNoteFilename(note *models.CreditNote) string {
	return fmt.Sprintf("note-credit-%s.pdf", note.Number)
}

func paymentTypeLabel(t models.PaymentType) string {
	switch t {
	case models.PaymentTuition:
		return "Minerval"
	case models.PaymentRegistrationFee:
		return "Frais d'inscription"
	case models.PaymentShippingFee:
		return "Frais d'envoi"
	case models.PaymentDuplicate:
		return "Duplicata"
	default:
		return string(t)
	}
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f EUR", amount)
}

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
