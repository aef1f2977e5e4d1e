package handlers

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"mesai/config"
	"mesai/identity"
	"mesai/middleware"
	"mesai/models"
	"mesai/overtime"
	"mesai/state"
)

// Deps bundles everything the HTTP surface needs. main wires it once.
type Deps struct {
	Config    *config.Config
	Calendar  *config.Calendar
	Service   *overtime.Service
	Container *state.Container
	Provider  identity.Provider
}

func NewRouter(d Deps) *chi.Mux {
	auth := NewAuthHandler(d.Config, d.Calendar, d.Provider, d.Container)
	entries := NewEntryHandler(d.Calendar, d.Service, d.Container)
	team := NewTeamHandler(d.Service, d.Container)
	admin := NewAdminHandler(d.Calendar, d.Service, d.Container)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(d.Container))

			r.Post("/logout", auth.Logout)
			r.Get("/session", auth.Session)

			r.Get("/entries", entries.History)
			r.Put("/entries/{id}", entries.Update)
			r.Delete("/entries/{id}", entries.Delete)
			r.Get("/classify", entries.Classify)

			r.Get("/staging", entries.Staged)
			r.Post("/staging", entries.Stage)
			r.Delete("/staging/{id}", entries.Unstage)
			r.Post("/staging/commit", entries.Commit)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleTeamLead, models.RoleAdmin))

				r.Get("/team", team.Overview)
				r.Post("/team/entries/{id}/approve", team.Approve)
				r.Post("/team/entries/{id}/reject", team.Reject)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))

				r.Get("/admin/records", admin.Records)
				r.Put("/admin/records/{id}", admin.UpdateRecord)
				r.Delete("/admin/records/{id}", admin.DeleteRecord)
				r.Get("/admin/reports", admin.Reports)
				r.Get("/admin/users", admin.ListUsers)
				r.Post("/admin/users", admin.CreateUser)
				r.Put("/admin/users/{id}", admin.UpdateUser)
				r.Delete("/admin/users/{id}", admin.DeleteUser)
				r.Get("/admin/export/csv", admin.ExportCSV)
			})
		})
	})

	return r
}
