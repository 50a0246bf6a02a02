package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirin/absensi-backend-go/internal/config"
	"github.com/hadirin/absensi-backend-go/internal/domain/user"
	"github.com/hadirin/absensi-backend-go/internal/handler/http/middleware"
	"github.com/hadirin/absensi-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
	settingsHandler SettingsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "absensi-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/masuk", attendanceHandler.CheckIn)
				r.Post("/keluar", attendanceHandler.CheckOut)
				r.Get("/my", attendanceHandler.GetMyRecords)

				// Kepala and admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewAllRecords))
					r.Get("/", attendanceHandler.List)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/attendance/my", reportHandler.GetMy)
				// CSV audience narrows to self for roles without view-all
				r.Get("/attendance/export", reportHandler.ExportCSV)

				// Kepala and admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewAllRecords))
					r.Get("/attendance", reportHandler.Get)
				})
			})

			r.Route("/office", func(r chi.Router) {
				r.Get("/", settingsHandler.GetOfficeLocation)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionManageSettings))
					r.Put("/", settingsHandler.UpdateOfficeLocation)
				})
			})

			r.Route("/shift", func(r chi.Router) {
				r.Get("/", settingsHandler.GetShiftPolicy)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionManageSettings))
					r.Put("/", settingsHandler.UpdateShiftPolicy)
				})
			})
		})
	})

	// Proof photos served from local storage
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	return r
}
