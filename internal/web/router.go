package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bottegalab/gestionale/internal/handlers"
	"github.com/bottegalab/gestionale/internal/mail"
)

// Router wires the JSON API. The management front-end is a separate app,
// hence the permissive CORS policy.
func Router(mailer mail.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", handlers.Health)

	// QR image for workshop flyers
	r.Get("/qr/{code}.png", handlers.QR)

	r.Route("/api", func(api chi.Router) {
		api.Get("/company", handlers.CompanyProfileGet)
		api.Put("/company", handlers.CompanyProfileUpdate)

		api.Get("/parents", handlers.ParentsList)
		api.Post("/parents", handlers.ParentCreate)
		api.Put("/parents/{id}", handlers.ParentUpdate)
		api.Delete("/parents/{id}", handlers.ParentDelete)

		api.Get("/children", handlers.ChildrenList)
		api.Post("/children", handlers.ChildCreate)
		api.Put("/children/{id}", handlers.ChildUpdate)
		api.Delete("/children/{id}", handlers.ChildDelete)

		api.Get("/workshops", handlers.WorkshopsList)
		api.Post("/workshops", handlers.WorkshopCreate)
		api.Put("/workshops/{id}", handlers.WorkshopUpdate)
		api.Delete("/workshops/{id}", handlers.WorkshopDelete)

		api.Get("/registrations", handlers.RegistrationsList)
		api.Post("/registrations", handlers.RegistrationCreate)
		api.Delete("/registrations/{id}", handlers.RegistrationDelete)

		api.Get("/payments", handlers.PaymentsList)
		api.Post("/payments", handlers.PaymentCreate)
		api.Put("/payments/{id}", handlers.PaymentUpdate)
		api.Delete("/payments/{id}", handlers.PaymentDelete)

		api.Get("/costs", handlers.CostsList)
		api.Post("/costs", handlers.CostCreate)
		api.Put("/costs/{id}", handlers.CostUpdate)
		api.Delete("/costs/{id}", handlers.CostDelete)

		api.Get("/quotes", handlers.QuotesList)
		api.Post("/quotes", handlers.QuoteCreate)
		api.Put("/quotes/{id}", handlers.QuoteUpdate)
		api.Delete("/quotes/{id}", handlers.QuoteDelete)
		api.Put("/quotes/{id}/status", handlers.QuoteSetStatus)
		api.Get("/quotes/{id}/document", handlers.QuoteDocument)

		api.Get("/invoices", handlers.InvoicesList)
		api.Post("/invoices", handlers.InvoiceCreate)
		api.Put("/invoices/{id}", handlers.InvoiceUpdate)
		api.Delete("/invoices/{id}", handlers.InvoiceDelete)

		api.Get("/suppliers", handlers.SuppliersList)
		api.Post("/suppliers", handlers.SupplierCreate)
		api.Put("/suppliers/{id}", handlers.SupplierUpdate)
		api.Delete("/suppliers/{id}", handlers.SupplierDelete)

		api.Get("/locations", handlers.LocationsList)
		api.Post("/locations", handlers.LocationCreate)
		api.Put("/locations/{id}", handlers.LocationUpdate)
		api.Delete("/locations/{id}", handlers.LocationDelete)

		api.Get("/campaigns", handlers.CampaignsList)
		api.Post("/campaigns", handlers.CampaignCreate)
		api.Put("/campaigns/{id}", handlers.CampaignUpdate)
		api.Delete("/campaigns/{id}", handlers.CampaignDelete)
		api.Post("/campaigns/{id}/send", handlers.CampaignSend(mailer))

		api.Get("/reminders", handlers.ReminderSettingsList)
		api.Post("/reminders", handlers.ReminderSettingCreate)
		api.Put("/reminders/{id}", handlers.ReminderSettingUpdate)
		api.Delete("/reminders/{id}", handlers.ReminderSettingDelete)

		api.Get("/dashboard", handlers.Dashboard)
		api.Route("/reports", func(rep chi.Router) {
			rep.Get("/costs/categories", handlers.ReportCostCategories)
			rep.Get("/workshops/revenue", handlers.ReportWorkshopRevenue)
			rep.Get("/suppliers", handlers.ReportSupplierCosts)
			rep.Get("/locations", handlers.ReportLocationRevenue)
			rep.Get("/participants", handlers.ReportParticipants)
		})

		api.Get("/backup", handlers.BackupExport)
		api.Post("/backup", handlers.BackupImport)
	})

	return r
}
