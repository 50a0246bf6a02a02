package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/hadirin/absensi-backend-go/internal/config"
	appHTTP "github.com/hadirin/absensi-backend-go/internal/handler/http"
	"github.com/hadirin/absensi-backend-go/internal/pkg/cron"
	"github.com/hadirin/absensi-backend-go/internal/pkg/database"
	"github.com/hadirin/absensi-backend-go/internal/pkg/face"
	"github.com/hadirin/absensi-backend-go/internal/pkg/jwt"
	"github.com/hadirin/absensi-backend-go/internal/pkg/storage"
	"github.com/hadirin/absensi-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hadirin/absensi-backend-go/internal/service/attendance"
	serviceAuth "github.com/hadirin/absensi-backend-go/internal/service/auth"
	"github.com/hadirin/absensi-backend-go/internal/service/file"
	reportService "github.com/hadirin/absensi-backend-go/internal/service/report"
	"github.com/hadirin/absensi-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	officeRepo := postgresql.NewOfficeLocationRepository(db)
	shiftRepo := postgresql.NewShiftPolicyRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileService := file.NewFileService(fileStorage)

	// Without a recognition service, classification runs on client-supplied
	// confidence only and fails closed when it is absent.
	var recognizer face.Recognizer
	if cfg.Face.ServiceURL != "" {
		recognizer = face.NewClient(cfg.Face)
	}

	authSvc := serviceAuth.NewAuthService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		officeRepo,
		shiftRepo,
		recognizer,
		fileService,
		cfg.Face.Threshold,
		cfg.App.Timezone,
		slog.Default(),
	)
	reportSvc := reportService.NewReportService(attendanceRepo, cfg.App.Timezone)
	settingsSvc := settings.NewSettingsService(officeRepo, shiftRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc, cfg.App.Timezone)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)

	router := appHTTP.NewRouter(cfg, jwtService, authHandler, attendanceHandler, reportHandler, settingsHandler)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, attendanceRepo, userRepo, cfg.App.Timezone)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server starting", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error:", err)
	}
}
