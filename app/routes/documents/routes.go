package documents

import (
	"github.com/gofiber/fiber/v2"

	"github.com/habab6/ipec-campus-connect-sub000/app/routes/auth"
)

func SetupDocumentsRoutes(app *fiber.App) {
	// Attestations
	app.Post("/api/students/:id/attestations", auth.AuthMiddleware, CreateAttestationAPI)
	app.Get("/api/students/:id/attestations", auth.AuthMiddleware, GetStudentAttestationsAPI)
	app.Get("/api/attestations", auth.AuthMiddleware, GetAttestationsAPI)
	app.Get("/api/attestations/:id/download", auth.AuthMiddleware, DownloadAttestationAPI)

	// Invoices and credit notes
	app.Post("/api/payments/:id/invoice", auth.AuthMiddleware, CreateInvoiceAPI)
	app.Post("/api/payments/:id/invoice/auto", auth.AuthMiddleware, AutoInvoiceAPI)
	app.Get("/api/students/:id/invoices", auth.AuthMiddleware, GetStudentInvoicesAPI)
	app.Get("/api/invoices/:id/download", auth.AuthMiddleware, DownloadInvoiceAPI)
	app.Get("/api/invoices/:id/credit-note", auth.AuthMiddleware, GetInvoiceCreditNoteAPI)
	app.Get("/api/credit-notes/:id/download", auth.AuthMiddleware, DownloadCreditNoteAPI)
}
