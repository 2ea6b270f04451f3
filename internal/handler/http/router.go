package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/quanlycuahang/attendance-backend-go/internal/config"
	"github.com/quanlycuahang/attendance-backend-go/internal/handler/http/middleware"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	scheduleHandler ScheduleHandler,
	settingsHandler SettingsHandler,
	attendanceHandler AttendanceHandler,
	ledgerHandler LedgerHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Device-Key"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		r.Route("/attendance", func(r chi.Router) {
			// Kiosk-facing, no JWT: the token + PIN are the credential.
			r.Post("/submit", attendanceHandler.Submit)
			r.Post("/tokens/validate", attendanceHandler.ValidateToken)

			// Token minting is restricted to the registered kiosk device.
			r.Group(func(r chi.Router) {
				r.Use(middleware.DeviceKeyRequired(cfg.Device.APIKey))
				r.Post("/tokens", attendanceHandler.IssueToken)
			})

			// Admin timesheet views and manual corrections.
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Use(middleware.AdminOnly)

				r.Get("/", attendanceHandler.List)
				r.Put("/", attendanceHandler.Upsert)
			})
		})

		// Requires authentication, admin only
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.AdminOnly)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Get("/{id}", employeeHandler.Get)
				r.Put("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Deactivate)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListWeek)
				r.Put("/", scheduleHandler.Upsert)
				r.Post("/copy-week", scheduleHandler.CopyWeek)
				r.Delete("/{id}", scheduleHandler.Delete)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.Get)
				r.Put("/", settingsHandler.Update)
			})

			r.Route("/ledger", func(r chi.Router) {
				r.Route("/entries", func(r chi.Router) {
					r.Get("/", ledgerHandler.ListEntries)
					r.Post("/", ledgerHandler.CreateEntry)
					r.Put("/{id}", ledgerHandler.UpdateEntry)
					r.Delete("/{id}", ledgerHandler.DeleteEntry)
				})

				r.Route("/debts", func(r chi.Router) {
					r.Get("/", ledgerHandler.ListDebts)
					r.Post("/", ledgerHandler.CreateDebt)
					r.Post("/{id}/pay", ledgerHandler.MarkDebtPaid)
					r.Delete("/{id}", ledgerHandler.DeleteDebt)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/summary", payrollHandler.StaffSummary)
				r.Get("/employees/{id}/summary", payrollHandler.EmployeeSummary)
				r.Post("/auto-generate-penalties", payrollHandler.GeneratePenalties)
			})
		})
	})

	return r
}
