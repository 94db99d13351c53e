package payments

import (
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/habab6/ipec-campus-connect-sub000/app/academics"
	"github.com/habab6/ipec-campus-connect-sub000/app/config"
	"github.com/habab6/ipec-campus-connect-sub000/app/database"
	"github.com/habab6/ipec-campus-connect-sub000/app/models"
	"github.com/habab6/ipec-campus-connect-sub000/app/services"
)

var validate = validator.New()

// GetPaymentsAPI lists payments with student details. The status filter
// matches the effective status, so partially_paid and overdue work even though
// they are never stored. The effective status only exists after the rows are
// loaded, so filtering and pagination both happen here rather than in SQL: a
// LIMIT applied before the status filter would silently shorten pages.
func GetPaymentsAPI(c *fiber.Ctx) error {
	filters := database.PaymentFilters{
		StudentID:    c.Query("student_id"),
		Type:         c.Query("type"),
		AcademicYear: c.Query("academic_year"),
	}
	status := c.Query("status")
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	payments, err := database.GetPaymentsWithDetails(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	filtered := filterByEffectiveStatus(payments, status, time.Now())
	page := paginatePayments(filtered, limit, offset)

	return c.JSON(fiber.Map{
		"payments":    page,
		"count":       len(page),
		"total_count": len(filtered),
	})
}

func decorate(p *models.PaymentWithDetails, now time.Time) {
	p.TotalPaid = p.Payment.TotalPaid()
	p.Remaining = academics.Remaining(&p.Payment)
	p.EffectiveStatus = academics.EffectiveStatus(&p.Payment, now)
}

// filterByEffectiveStatus decorates every payment with its derived figures and
// keeps those matching the requested effective status (all of them when the
// filter is empty).
func filterByEffectiveStatus(payments []*models.PaymentWithDetails, status string, now time.Time) []*models.PaymentWithDetails {
	var result []*models.PaymentWithDetails
	for _, p := range payments {
		decorate(p, now)
		if status != "" && string(p.EffectiveStatus) != status {
			continue
		}
		result = append(result, p)
	}
	return result
}

// paginatePayments applies limit/offset to an already-filtered list. limit 0
// means no pagination.
func paginatePayments(payments []*models.PaymentWithDetails, limit, offset int) []*models.PaymentWithDetails {
	if offset > 0 {
		if offset >= len(payments) {
			return nil
		}
		payments = payments[offset:]
	}
	if limit > 0 && limit < len(payments) {
		payments = payments[:limit]
	}
	return payments
}

func GetPaymentByIDAPI(c *fiber.Ctx) error {
	paymentID := c.Params("id")

	payment, err := database.GetPaymentByID(config.GetDB(), paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment"})
	}

	return c.JSON(fiber.Map{
		"payment":          payment,
		"total_paid":       payment.TotalPaid(),
		"remaining":        academics.Remaining(payment),
		"effective_status": academics.EffectiveStatus(payment, time.Now()),
	})
}

func CreatePaymentAPI(c *fiber.Ctx) error {
	type CreatePaymentRequest struct {
		StudentID    string  `json:"student_id" validate:"required,uuid"`
		Type         string  `json:"type" validate:"required"`
		Amount       float64 `json:"amount" validate:"required,gt=0"`
		DueDate      string  `json:"due_date" validate:"required"`
		AcademicYear *string `json:"academic_year"`
		StudyYear    *int    `json:"study_year"`
		Notes        string  `json:"notes"`
	}

	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	ptype := models.PaymentType(req.Type)
	switch ptype {
	case models.PaymentRegistrationFee, models.PaymentTuition, models.PaymentShippingFee, models.PaymentDuplicate:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Unknown payment type"})
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid due date"})
	}

	db := config.GetDB()
	if _, err := database.GetStudentByID(db, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	payment := &models.Payment{
		StudentID:    req.StudentID,
		Type:         ptype,
		Amount:       req.Amount,
		DueDate:      models.CustomDate{Time: dueDate},
		AcademicYear: req.AcademicYear,
		StudyYear:    req.StudyYear,
		Notes:        req.Notes,
	}
	if err := database.CreatePayment(db, payment); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create payment"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Payment created successfully",
		"payment": payment,
	})
}

func UpdatePaymentAPI(c *fiber.Ctx) error {
	paymentID := c.Params("id")
	db := config.GetDB()

	payment, err := database.GetPaymentByID(db, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment"})
	}

	if payment.Status == models.PaymentRefunded {
		return c.Status(409).JSON(fiber.Map{"error": "Refunded payments cannot be changed"})
	}

	type UpdatePaymentRequest struct {
		Amount  *float64 `json:"amount"`
		DueDate *string  `json:"due_date"`
		Notes   *string  `json:"notes"`
	}

	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Amount must be positive"})
		}
		if *req.Amount < payment.TotalPaid() {
			return c.Status(400).JSON(fiber.Map{"error": "Amount cannot drop below what was already paid"})
		}
		payment.Amount = *req.Amount
	}
	if req.DueDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid due date"})
		}
		payment.DueDate = models.CustomDate{Time: parsed}
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}

	if err := database.UpdatePayment(db, payment); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	return c.JSON(fiber.Map{
		"message": "Payment updated successfully",
		"payment": payment,
	})
}

func DeletePaymentAPI(c *fiber.Ctx) error {
	paymentID := c.Params("id")

	if err := database.SoftDeletePayment(config.GetDB(), paymentID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete payment"})
	}

	return c.JSON(fiber.Map{"message": "Payment deleted successfully"})
}

func GetInstallmentsAPI(c *fiber.Ctx) error {
	paymentID := c.Params("id")

	installments, err := database.GetInstallments(config.GetDB(), paymentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch installments"})
	}

	return c.JSON(fiber.Map{
		"installments": installments,
		"count":        len(installments),
	})
}

// AddInstallmentAPI records a partial payment. The amount is validated against
// the remaining balance before anything is written; an installment that
// settles the balance marks the payment paid in the same transaction.
func AddInstallmentAPI(c *fiber.Ctx) error {
	paymentID := c.Params("id")
	db := config.GetDB()

	payment, err := database.GetPaymentByID(db, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment"})
	}

	type AddInstallmentRequest struct {
		Amount    float64 `json:"amount" validate:"required,gt=0"`
		PaidDate  string  `json:"paid_date" validate:"required"`
		Method    string  `json:"method" validate:"required"`
		Reference string  `json:"reference"`
	}

	var req AddInstallmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	method := models.PaymentMethod(req.Method)
	switch method {
	case models.MethodCash, models.MethodTransfer, models.MethodCard:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Unknown payment method"})
	}

	paidDate, err := time.Parse("2006-01-02", req.PaidDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid paid date"})
	}

	if err := academics.ValidateInstallment(payment, req.Amount); err != nil {
		if errors.Is(err, academics.ErrExceedsBalance) {
			return c.Status(400).JSON(fiber.Map{
				"error":     "Installment exceeds the remaining balance",
				"remaining": academics.Remaining(payment),
			})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	installment := &models.Installment{
		PaymentID: payment.ID,
		Amount:    req.Amount,
		PaidDate:  models.CustomDate{Time: paidDate},
		Method:    method,
		Reference: req.Reference,
	}
	completes := academics.CompletesBalance(payment, req.Amount)

	if err := database.AddInstallment(db, installment, completes); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record installment"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":     "Installment recorded successfully",
		"installment": installment,
		"completed":   completes,
	})
}

// RefundPaymentAPI refunds an invoiced payment: the stored status flips to
// refunded and a credit note numbered from the invoice is written in the same
// transaction.
func RefundPaymentAPI(c *fiber.Ctx) error {
	paymentID := c.Params("id")
	db := config.GetDB()

	payment, err := database.GetPaymentByID(db, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment"})
	}
	if payment.Status == models.PaymentRefunded {
		return c.Status(409).JSON(fiber.Map{"error": "Payment is already refunded"})
	}

	type RefundRequest struct {
		Reason string `json:"reason" validate:"required"`
	}

	var req RefundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "A refund reason is required"})
	}

	invoice, err := database.GetInvoiceByPaymentID(db, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(409).JSON(fiber.Map{"error": "Payment has no invoice; generate one before refunding"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch invoice"})
	}

	note := &models.CreditNote{
		InvoiceID: invoice.ID,
		Number:    services.CreditNoteNumber(invoice.Number),
		Amount:    invoice.Amount,
		Reason:    req.Reason,
		Date:      models.CustomDate{Time: time.Now()},
	}
	if err := database.RefundPayment(db, paymentID, note); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to refund payment"})
	}

	return c.JSON(fiber.Map{
		"message":     "Payment refunded successfully",
		"credit_note": note,
	})
}

// PaymentSummaryPage renders the printable payment summary for one student.
func PaymentSummaryPage(c *fiber.Ctx) error {
	studentID := c.Params("id")
	db := config.GetDB()

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	payments, err := database.GetPaymentsWithDetails(db, database.PaymentFilters{StudentID: student.ID})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	now := time.Now()
	summary := &models.PaymentSummary{
		Student:     student,
		Payments:    payments,
		GeneratedAt: now,
	}
	for _, p := range payments {
		decorate(p, now)
		summary.TotalDue += p.Amount
		summary.TotalPaid += p.TotalPaid
	}

	return c.Render("summary/payment", fiber.Map{
		"Title":   "Relevé de paiements - " + student.FullName(),
		"summary": summary,
	})
}
