package services

import (
	"testing"
	"time"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

func TestAttestationFieldsUseSnapshot(t *testing.T) {
	a := &models.Attestation{
		Number:       "ATT-IP24-0001-1B",
		FirstName:    "Jean",
		LastName:     "Dupont",
		Reference:    "IP24-0001",
		Nationality:  "French",
		BirthDate:    models.CustomDate{Time: time.Date(2000, 5, 4, 0, 0, 0, 0, time.UTC)},
		BirthPlace:   "Lyon",
		Program:      models.ProgramBBA,
		StudyYear:    1,
		AcademicYear: "2024-2025",
		GenerateDate: time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC),
	}

	fields := AttestationFields(a)

	if fields["full_name"] != "Jean Dupont" {
		t.Errorf("unexpected full_name %q", fields["full_name"])
	}
	if fields["nationality"] != "French" {
		t.Errorf("unexpected nationality %q", fields["nationality"])
	}
	if fields["birth_date"] != "04/05/2000" {
		t.Errorf("unexpected birth_date %q", fields["birth_date"])
	}
	if fields["program"] != "BBA" || fields["study_year"] != "1" {
		t.Error("program fields should come from the snapshot")
	}
	if _, ok := fields["specialty"]; ok {
		t.Error("nil specialty should not produce a field")
	}
}

func TestAttestationFilename(t *testing.T) {
	a := &models.Attestation{
		FirstName: "Jean",
		LastName:  "Dupont",
		Number:    "ATT-IP24-0001-1B",
	}
	if got := AttestationFilename(a); got != "attestation-Jean-Dupont-ATT-IP24-0001-1B.pdf" {
		t.Errorf("unexpected filename %s", got)
	}
}

func TestDocumentFilenames(t *testing.T) {
	inv := &models.Invoice{Number: "IPEC-202501-0001-MIN"}
	if got := InvoiceFilename(inv); got != "facture-IPEC-202501-0001-MIN.pdf" {
		t.Errorf("unexpected invoice filename %s", got)
	}
	note := &models.CreditNote{Number: "NC-202501-0001-MIN"}
	if got := CreditNoteFilename(note); got != "note-credit-NC-202501-0001-MIN.pdf" {
		t.Errorf("unexpected credit-note filename %s", got)
	}
}
