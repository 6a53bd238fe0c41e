package server

import (
	"net/http"
	"time"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/handler"
	"github.com/bhel/hrm/internal/pdf"
	"github.com/bhel/hrm/internal/repository"
	"github.com/bhel/hrm/internal/server/middleware"
	"github.com/bhel/hrm/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.App.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Repository and the exception-handling pipeline
	queries := repository.New(s.manager)
	errs := apperr.NewHandler(apperr.NewTranslator(), apperr.NewMessageProvider(), s.logger)

	// Services
	authService := service.NewAuthService(queries, s.manager, s.rdb, &s.cfg.Auth, errs, s.logger)
	employeeService := service.NewEmployeeService(queries, s.manager, errs, s.logger)
	leaveService := service.NewLeaveService(queries, s.manager, errs, s.logger)
	courseService := service.NewCourseService(queries, s.manager, errs, s.logger)
	benefitService := service.NewBenefitService(queries, errs, s.logger)
	recruitmentService := service.NewRecruitmentService(queries, errs, s.logger)
	pdfGen := pdf.NewPDFGenerator(s.logger)
	exportService := service.NewExportService(queries, pdfGen, errs, s.logger)
	s.cleanup = service.NewCleanupService(queries, s.cfg.Auth.CleanupInterval, s.logger)

	// Handlers
	healthHandler := handler.NewHealthHandler(s.db, s.rdb)
	authHandler := handler.NewAuthHandler(authService, &s.cfg.Auth)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	leaveHandler := handler.NewLeaveHandler(leaveService)
	courseHandler := handler.NewCourseHandler(courseService)
	benefitHandler := handler.NewBenefitHandler(benefitService)
	recruitmentHandler := handler.NewRecruitmentHandler(recruitmentService)
	exportHandler := handler.NewExportHandler(exportService)

	// Authentication middleware (extracts user from cookie, does not reject)
	r.Use(middleware.Authenticate(authService, s.cfg.Auth.CookieName))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Get("/health", healthHandler.Health)

		// Rate limiter for auth endpoints (20 attempts per minute per IP)
		authRateLimit := middleware.RateLimit(20, 1*time.Minute)

		// Auth endpoints
		r.Route("/auth", func(r chi.Router) {
			r.With(authRateLimit).Post("/register", authHandler.Register)
			r.With(authRateLimit).Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(middleware.RequireAuth).Get("/me", authHandler.Me)

			// TOTP 2FA
			r.With(middleware.RequireAuth).Post("/totp/setup", authHandler.SetupTOTP)
			r.With(middleware.RequireAuth).Post("/totp/enable", authHandler.EnableTOTP)
			r.With(middleware.RequireAuth).Post("/totp/disable", authHandler.DisableTOTP)
		})

		// Employee directory
		r.Route("/employees", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", employeeHandler.List)
			r.Get("/{id}", employeeHandler.GetByID)
			r.Get("/{employeeId}/leave", leaveHandler.ListByEmployee)

			// Mutations: HR staff only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireHRStaff)
				r.Post("/", employeeHandler.Create)
				r.Put("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Delete)
			})
		})

		// Leave applications
		r.Route("/leave", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", leaveHandler.Apply)
			r.Get("/{id}", leaveHandler.GetByID)

			// Decisions: HR staff only
			r.With(middleware.RequireHRStaff).Post("/{id}/approve", leaveHandler.Approve)
			r.With(middleware.RequireHRStaff).Post("/{id}/reject", leaveHandler.Reject)
		})

		// Training courses
		r.Route("/courses", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", courseHandler.List)
			r.Get("/{id}", courseHandler.GetByID)
			r.Post("/{id}/enroll", courseHandler.Enroll)
			r.With(middleware.RequireHRStaff).Post("/", courseHandler.Create)
		})

		// Benefit plans
		r.Route("/benefits", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", benefitHandler.List)
			r.With(middleware.RequireHRStaff).Post("/", benefitHandler.Create)
		})

		// Recruitment pipeline
		r.Route("/openings", func(r chi.Router) {
			// Openings and applications are public: candidates are not users.
			r.Get("/", recruitmentHandler.ListOpenings)
			r.Get("/{id}", recruitmentHandler.GetOpening)
			r.With(authRateLimit).Post("/{id}/applicants", recruitmentHandler.Apply)

			// Pipeline management: HR staff only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.RequireHRStaff)
				r.Post("/", recruitmentHandler.CreateOpening)
				r.Post("/{id}/close", recruitmentHandler.CloseOpening)
				r.Get("/{id}/applicants", recruitmentHandler.ListApplicants)
			})
		})
		r.With(middleware.RequireAuth, middleware.RequireHRStaff).
			Post("/applicants/{applicantId}/advance", recruitmentHandler.AdvanceApplicant)

		// Exports: HR staff only
		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireHRStaff)
			r.Get("/employees/csv", exportHandler.EmployeesCSV)
			r.Get("/employees/{employeeId}/leave/csv", exportHandler.LeaveCSV)
			r.Get("/roster/pdf", exportHandler.RosterPDF)
		})
	})

	return r
}
