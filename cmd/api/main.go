package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-timekeeping/internal/handler/http"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/email"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-timekeeping/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-timekeeping/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hris-timekeeping/internal/service/auth"
	employeeService "github.com/cmlabs-hris/hris-timekeeping/internal/service/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/file"
	holidayService "github.com/cmlabs-hris/hris-timekeeping/internal/service/holiday"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/master"
	officeService "github.com/cmlabs-hris/hris-timekeeping/internal/service/officelocation"
	payrollService "github.com/cmlabs-hris/hris-timekeeping/internal/service/payroll"
	reportService "github.com/cmlabs-hris/hris-timekeeping/internal/service/report"
	shiftService "github.com/cmlabs-hris/hris-timekeeping/internal/service/shift"
	userService "github.com/cmlabs-hris/hris-timekeeping/internal/service/user"
	"github.com/go-chi/httplog/v3"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-timekeeping"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("initialize local storage: %w", err)
	}
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("initialize email service: %w", err)
	}
	loc := cfg.Location()

	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	otpRepo := postgresql.NewOTPRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	officeRepo := postgresql.NewOfficeLocationRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	fileService := file.NewFileService(fileStorage)

	authSvc := serviceAuth.NewAuthService(txManager, userRepo, otpRepo, refreshTokenRepo, JWTService, emailService, cfg.OTP)
	userSvc := userService.NewUserService(userRepo)
	employeeSvc := employeeService.NewEmployeeService(txManager, employeeRepo, userRepo, fileService)
	masterSvc := master.NewMasterService(departmentRepo, positionRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	officeSvc := officeService.NewOfficeLocationService(officeRepo)
	leaveSvc := leave.NewLeaveService(leaveTypeRepo, leaveRequestRepo, employeeRepo, holidayRepo)
	attendanceSvc, err := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		shiftRepo,
		holidayRepo,
		officeRepo,
		userRepo,
		cfg.FaceMatch,
		loc,
	)
	if err != nil {
		return fmt.Errorf("initialize attendance service: %w", err)
	}
	reportSvc := reportService.NewReportService(attendanceRepo, employeeRepo, leaveRequestRepo, loc)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, employeeRepo, leaveRequestRepo, cfg.Payroll, loc)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		UploadsDir:     fileStorage.BasePath(),
	}, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		User:       appHTTP.NewUserHandler(userSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Master:     appHTTP.NewMasterHandler(masterSvc),
		Schedule:   appHTTP.NewScheduleHandler(shiftSvc, holidaySvc, officeSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(otpRepo, refreshTokenRepo).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
