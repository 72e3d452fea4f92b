package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-timekeeping/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the process-level settings the router needs.
type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	// UploadsDir is served under /uploads when set.
	UploadsDir string
}

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Employee   EmployeeHandler
	Master     MasterHandler
	Schedule   ScheduleHandler
	Leave      LeaveHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Payroll    PayrollHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/request-otp", h.Auth.RequestOTP)
			r.Post("/verify-otp", h.Auth.VerifyOTP)
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired())

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/users", h.User.ListUsers)
				r.Put("/users/{id}/role", h.User.UpdateRole)
				r.Get("/office-location", h.Schedule.GetOfficeLocation)
				r.Put("/office-location", h.Schedule.UpsertOfficeLocation)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Route("/me", func(r chi.Router) {
					r.Get("/", h.Employee.GetMe)
					r.Put("/", h.Employee.UpdateMe)
					r.Post("/face", h.Employee.UploadMyFace)
					r.Post("/face-embedding", h.Employee.SetMyFaceEmbedding)
				})

				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
					r.Get("/{id}/payroll-settings", h.Employee.GetPayrollSettings)
					r.Put("/{id}/payroll-settings", h.Employee.UpdatePayrollSettings)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Master.ListDepartments)
				r.Get("/{id}", h.Master.GetDepartment)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Master.CreateDepartment)
					r.Put("/{id}", h.Master.UpdateDepartment)
					r.Delete("/{id}", h.Master.DeleteDepartment)
				})
			})

			r.Route("/positions", func(r chi.Router) {
				r.Get("/", h.Master.ListPositions)
				r.Get("/{id}", h.Master.GetPosition)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Master.CreatePosition)
					r.Put("/{id}", h.Master.UpdatePosition)
					r.Delete("/{id}", h.Master.DeletePosition)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Schedule.ListShifts)
				r.Get("/{id}", h.Schedule.GetShift)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Schedule.CreateShift)
					r.Put("/{id}", h.Schedule.UpdateShift)
					r.Delete("/{id}", h.Schedule.DeleteShift)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Schedule.ListHolidays)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Schedule.CreateHoliday)
					r.Delete("/{id}", h.Schedule.DeleteHoliday)
				})
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", h.Leave.ListTypes)
				r.Get("/{id}", h.Leave.GetType)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Leave.CreateType)
					r.Put("/{id}", h.Leave.UpdateType)
					r.Delete("/{id}", h.Leave.DeleteType)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.CreateRequest)
				r.Get("/my", h.Leave.GetMyRequests)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Leave.ListRequests)
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-in/face", h.Attendance.FaceCheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/today", h.Attendance.Today)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Attendance.ListAttendance)
					r.Put("/{id}/approve", h.Attendance.ApproveAttendance)
					r.Put("/{id}/reject", h.Attendance.RejectAttendance)
					r.Put("/{id}/fix", h.Attendance.FixAttendance)
				})
			})

			r.Route("/face-attendance", func(r chi.Router) {
				r.Get("/today", h.Attendance.FaceToday)
				r.Post("/check-in", h.Attendance.FaceAttendanceCheckIn)
				r.Post("/check-out", h.Attendance.FaceAttendanceCheckOut)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/timesheet", h.Report.Timesheet)
				r.Get("/timesheet/export", h.Report.ExportTimesheet)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/my", h.Payroll.MyPayslip)
				r.Get("/my/export", h.Payroll.ExportMyPayslip)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/employee-payslip", h.Payroll.EmployeePayslip)
					r.Get("/employee-payslip/export", h.Payroll.ExportEmployeePayslip)
					r.Get("/calc", h.Payroll.Calc)
				})
			})
		})
	})
	return r
}
