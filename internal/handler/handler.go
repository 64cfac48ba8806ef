package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sweet-solutions/backend/internal/config"
	"github.com/sweet-solutions/backend/internal/domain"
	"github.com/sweet-solutions/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	startedAt   time.Time

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		startedAt:   time.Now(),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/health", h.Health)

	h.Mux.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.GetCurrentUser)
			r.Post("/logout", h.Logout)
		})
	})

	// everything below requires a valid bearer token
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/employees", func(r chi.Router) {
			r.Get("/", h.GetAllEmployees)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeRecord)
				r.Get("/", h.GetEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Put("/", h.UpdateEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteEmployee)
			})
		})

		r.Route("/api/shifts", func(r chi.Router) {
			r.Get("/", h.GetShifts)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateShift)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftRecord)
				r.Get("/", h.GetShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Put("/", h.UpdateShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteShift)
			})
		})

		r.Route("/api/requests", func(r chi.Router) {
			r.Get("/", h.GetRequests)
			r.Post("/", h.CreateRequest)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.requestRecord)
				r.Get("/", h.GetRequest)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Put("/approve", h.ApproveRequest)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Put("/deny", h.DenyRequest)
			})
		})

		r.Route("/api/payroll", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleManager}))
			r.Get("/", h.GetPayroll)
			r.Post("/generate", h.GeneratePayroll)
			r.Get("/export", h.ExportPayroll)
			r.With(h.payrollEntryRecord).Put("/{id}/status", h.UpdatePayrollStatus)
		})
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Seconds(),
	})
}
