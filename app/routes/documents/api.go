package documents

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/habab6/ipec-campus-connect-sub000/app/config"
	"github.com/habab6/ipec-campus-connect-sub000/app/database"
	"github.com/habab6/ipec-campus-connect-sub000/app/models"
	"github.com/habab6/ipec-campus-connect-sub000/app/services"
	"github.com/habab6/ipec-campus-connect-sub000/app/services/pdf"
)

func newFiller() *pdf.Filler {
	assets := config.AppConfig.Assets
	return pdf.NewFiller(assets.LayoutDir, assets.FontPath)
}

func sendPDF(c *fiber.Ctx, data []byte, filename string) error {
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

func renderError(c *fiber.Ctx, err error) error {
	if errors.Is(err, pdf.ErrTemplateLoad) {
		return c.Status(500).JSON(fiber.Map{"error": "Document template unavailable"})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Failed to render document"})
}

// CreateAttestationAPI issues a new enrollment attestation for the student's
// current period. Identity fields are copied onto the row so the document can
// be reproduced later regardless of student edits.
func CreateAttestationAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")
	db := config.GetDB()

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	if student.Status == models.StudentArchived {
		return c.Status(409).JSON(fiber.Map{"error": "Archived students cannot receive attestations"})
	}

	prefix := services.AttestationNumberPrefix(student.Reference, student.StudyYear, student.Program)
	seq, err := database.CountAttestationsByNumber(db, prefix)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to number attestation"})
	}

	attestation := &models.Attestation{
		StudentID:    student.ID,
		Number:       services.AttestationNumber(student.Reference, student.StudyYear, student.Program, seq),
		AcademicYear: student.AcademicYear,
		StudyYear:    student.StudyYear,
		Program:      student.Program,
		Specialty:    student.Specialty,
		FirstName:    student.FirstName,
		LastName:     student.LastName,
		Reference:    student.Reference,
		BirthDate:    student.BirthDate,
		BirthPlace:   student.BirthPlace,
		Nationality:  student.Nationality,
		GenerateDate: time.Now(),
	}
	if err := database.CreateAttestation(db, attestation); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create attestation"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":     "Attestation created successfully",
		"attestation": attestation,
	})
}

func GetAttestationsAPI(c *fiber.Ctx) error {
	attestations, err := database.GetAttestations(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attestations"})
	}

	return c.JSON(fiber.Map{
		"attestations": attestations,
		"count":        len(attestations),
	})
}

func GetStudentAttestationsAPI(c *fiber.Ctx) error {
	attestations, err := database.GetStudentAttestations(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attestations"})
	}

	return c.JSON(fiber.Map{
		"attestations": attestations,
		"count":        len(attestations),
	})
}

// DownloadAttestationAPI renders the stored snapshot onto the attestation
// layout and streams the PDF.
func DownloadAttestationAPI(c *fiber.Ctx) error {
	attestation, err := database.GetAttestationByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Attestation not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attestation"})
	}

	data, err := newFiller().Render("attestation", services.AttestationFields(attestation))
	if err != nil {
		return renderError(c, err)
	}
	return sendPDF(c, data, services.AttestationFilename(attestation))
}

// CreateInvoiceAPI creates the invoice for a payment, or returns the existing
// one. The unique index on payment_id decides races, not a prior lookup.
func CreateInvoiceAPI(c *fiber.Ctx) error {
	paymentID := c.Params("id")
	db := config.GetDB()

	invoice, created, err := ensureInvoice(db, paymentID)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create invoice"})
	}

	status := 200
	message := "Invoice already exists"
	if created {
		status = 201
		message = "Invoice created successfully"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"invoice": invoice,
	})
}

// ensureInvoice builds and inserts the invoice row for a payment, returning
// the existing row when one was already created for it.
func ensureInvoice(db *sql.DB, paymentID string) (*models.Invoice, bool, error) {
	payment, err := database.GetPaymentByID(db, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, fiber.NewError(404, "Payment not found")
		}
		return nil, false, err
	}
	student, err := database.GetStudentByID(db, payment.StudentID)
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	invoice := &models.Invoice{
		StudentID:    student.ID,
		PaymentID:    payment.ID,
		Number:       services.InvoiceNumber(now, student.Reference, payment.Type),
		Amount:       payment.Amount,
		Type:         payment.Type,
		AcademicYear: payment.AcademicYear,
		StudyYear:    payment.StudyYear,
		GenerateDate: now,
	}
	created, err := database.CreateInvoice(db, invoice)
	if err != nil {
		return nil, false, err
	}
	return invoice, created, nil
}

// AutoInvoiceAPI ensures the invoice exists for a payment and immediately
// streams its PDF, so one call gives the front office a printable invoice.
func AutoInvoiceAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	invoice, _, err := ensureInvoice(db, c.Params("id"))
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create invoice"})
	}
	student, err := database.GetStudentByID(db, invoice.StudentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	data, err := newFiller().Render("invoice", services.InvoiceFields(invoice, student))
	if err != nil {
		return renderError(c, err)
	}
	return sendPDF(c, data, services.InvoiceFilename(invoice))
}

func GetStudentInvoicesAPI(c *fiber.Ctx) error {
	invoices, err := database.GetStudentInvoices(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch invoices"})
	}

	return c.JSON(fiber.Map{
		"invoices": invoices,
		"count":    len(invoices),
	})
}

func DownloadInvoiceAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	invoice, err := database.GetInvoiceByID(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Invoice not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch invoice"})
	}
	student, err := database.GetStudentByID(db, invoice.StudentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	data, err := newFiller().Render("invoice", services.InvoiceFields(invoice, student))
	if err != nil {
		return renderError(c, err)
	}
	return sendPDF(c, data, services.InvoiceFilename(invoice))
}

// GetInvoiceCreditNoteAPI looks up the credit note issued against an invoice.
func GetInvoiceCreditNoteAPI(c *fiber.Ctx) error {
	note, err := database.GetCreditNoteByInvoiceID(config.GetDB(), c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "No credit note for this invoice"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch credit note"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"credit_note": note,
	})
}

func DownloadCreditNoteAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	note, err := database.GetCreditNoteByID(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Credit note not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch credit note"})
	}
	invoice, err := database.GetInvoiceByID(db, note.InvoiceID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch invoice"})
	}
	student, err := database.GetStudentByID(db, invoice.StudentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	data, err := newFiller().Render("credit_note", services.CreditNoteFields(note, invoice, student))
	if err != nil {
		return renderError(c, err)
	}
	return sendPDF(c, data, services.CreditNoteFilename(note))
}
