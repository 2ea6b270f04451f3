package main

import (
	"fmt"
	"net/http"

	"github.com/quanlycuahang/attendance-backend-go/internal/config"
	appHTTP "github.com/quanlycuahang/attendance-backend-go/internal/handler/http"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/cron"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/database"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/jwt"
	"github.com/quanlycuahang/attendance-backend-go/internal/repository/postgresql"
	tokenService "github.com/quanlycuahang/attendance-backend-go/internal/service/accesstoken"
	attendanceService "github.com/quanlycuahang/attendance-backend-go/internal/service/attendance"
	authService "github.com/quanlycuahang/attendance-backend-go/internal/service/auth"
	employeeService "github.com/quanlycuahang/attendance-backend-go/internal/service/employee"
	ledgerService "github.com/quanlycuahang/attendance-backend-go/internal/service/ledger"
	payrollService "github.com/quanlycuahang/attendance-backend-go/internal/service/payroll"
	penaltyService "github.com/quanlycuahang/attendance-backend-go/internal/service/penalty"
	scheduleService "github.com/quanlycuahang/attendance-backend-go/internal/service/schedule"
	settingsService "github.com/quanlycuahang/attendance-backend-go/internal/service/settings"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	scheduleRepo := postgresql.NewWorkScheduleRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	tokenRepo := postgresql.NewTokenRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	entryRepo := postgresql.NewEntryRepository(db)
	debtRepo := postgresql.NewDebtRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	scheduleSvc := scheduleService.NewWorkScheduleService(scheduleRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	tokenSvc := tokenService.NewTokenService(tokenRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		scheduleRepo,
		settingsSvc,
		tokenSvc,
	)
	ledgerSvc := ledgerService.NewLedgerService(entryRepo, debtRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		employeeRepo,
		scheduleRepo,
		attendanceRepo,
		entryRepo,
		debtRepo,
	)
	penaltyGen := penaltyService.NewPenaltyGenerator(scheduleRepo, attendanceRepo, entryRepo, settingsSvc)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, tokenSvc)
	ledgerHandler := appHTTP.NewLedgerHandler(ledgerSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, penaltyGen)

	scheduler := cron.NewScheduler()
	jobs := cron.NewAttendanceJobs(attendanceRepo, attendanceSvc, scheduleRepo, settingsSvc, tokenSvc)
	jobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		employeeHandler,
		scheduleHandler,
		settingsHandler,
		attendanceHandler,
		ledgerHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
