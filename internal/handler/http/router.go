package http

import (
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	FrontendURL string
	Env         string
	LogLevel    slog.Level
	// LogOutput receives the request log. Defaults to stdout.
	LogOutput io.Writer
}

func NewRouter(
	JWTService jwt.Service,
	authService auth.AuthService,
	opts RouterOptions,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	requestHandler RequestHandler,
	employeeHandler EmployeeHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()

	out := opts.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kintai"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService, authService))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)
			r.Get("/events", eventsHandler.Stream)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/history", attendanceHandler.History)
				r.Get("/submission", attendanceHandler.SubmissionStatus)
				r.Post("/submission", attendanceHandler.Submit)
			})

			r.Route("/requests", func(r chi.Router) {
				r.Post("/leave", requestHandler.CreateLeave)
				r.Post("/adjustment", requestHandler.CreateAdjustment)
				r.Get("/my", requestHandler.ListMy)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", requestHandler.List)
					r.Post("/{id}/approve", requestHandler.Approve)
					r.Post("/{id}/reject", requestHandler.Reject)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", employeeHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", employeeHandler.Create)
					r.Post("/{id}/retire", employeeHandler.Retire)
					r.Post("/{id}/leave-balance", employeeHandler.AdjustLeaveBalance)
				})
			})
		})
	})
	return r
}
