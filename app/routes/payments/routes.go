package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/habab6/ipec-campus-connect-sub000/app/routes/auth"
)

func SetupPaymentsRoutes(app *fiber.App) {
	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetPaymentsAPI)    // List payments, status filter is effective
	api.Post("/", CreatePaymentAPI) // Manual charge (shipping fee, duplicate...)
	api.Get("/:id", GetPaymentByIDAPI)
	api.Put("/:id", UpdatePaymentAPI)
	api.Delete("/:id", DeletePaymentAPI)
	api.Get("/:id/installments", GetInstallmentsAPI)
	api.Post("/:id/installments", AddInstallmentAPI)
	api.Post("/:id/refund", RefundPaymentAPI)

	// Printable per-student summary
	app.Get("/api/students/:id/payments/summary", auth.AuthMiddleware, PaymentSummaryPage)
}
