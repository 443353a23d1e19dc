package app

import (
	"context"
	"database/sql"

	"workflowhr/internal/auth"
	"workflowhr/internal/calendarevent"
	"workflowhr/internal/deduction"
	"workflowhr/internal/employee"
	"workflowhr/internal/leavebalance"
	"workflowhr/internal/leaverequest"
	"workflowhr/internal/leavetype"
	"workflowhr/internal/messaging/kafka"
	"workflowhr/internal/middleware"
	"workflowhr/internal/payroll"
	"workflowhr/internal/rbac"
	"workflowhr/internal/shared/counter"
	"workflowhr/internal/workcalendar"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	calendarRepo := workcalendar.NewRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(gormDB)
	requestRepo := leaverequest.NewRepository(gormDB)
	deductionRepo := deduction.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	eventRepo := calendarevent.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	// Payroll is built before the leave request workflow because approvals
	// of late unpaid leave flag already generated slips through it.
	authService := auth.NewService(db, authRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo)
	calendarService := workcalendar.NewService(calendarRepo)
	ledgerService := leavebalance.NewService(balanceRepo, employeeRepo, leaveTypeRepo)
	deductionService := deduction.NewService(db, deductionRepo)
	payrollService := payroll.NewServiceWithOutbox(
		db, payrollRepo,
		employeeRepo, deductionRepo, requestRepo, leaveTypeRepo,
		calendarService, counterRepo, outboxRepo,
	)
	requestService := leaverequest.NewServiceWithOutbox(
		db, requestRepo,
		employeeRepo, leaveTypeRepo,
		calendarService, ledgerService, outboxRepo, payrollService,
	)
	eventService := calendarevent.NewService(eventRepo)

	ctx := context.Background()
	if err := leaveTypeRepo.Seed(ctx); err != nil {
		return err
	}

	// Sweep the ledger for duplicates left behind by crashed writers before
	// taking traffic.
	report, err := ledgerService.GlobalCleanup(ctx)
	if err != nil {
		return err
	}
	zap.L().Info("startup leave balance cleanup finished",
		zap.Int("duplicate_groups", report.DuplicateGroups),
		zap.Int("rows_removed", report.RowsRemoved),
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeRepo)
	calendarHandler := workcalendar.NewHandler(calendarService)
	balanceHandler := leavebalance.NewHandler(ledgerService)
	requestHandler := leaverequest.NewHandler(requestService)
	deductionHandler := deduction.NewHandler(deductionService)
	payrollHandler := payroll.NewHandler(payrollService)
	eventHandler := calendarevent.NewHandler(eventService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		workcalendar.RegisterRoutes(api, calendarHandler, rbacService)
		leavebalance.RegisterRoutes(api, balanceHandler, rbacService)
		leaverequest.RegisterRoutes(api, requestHandler, rbacService, rdb)
		deduction.RegisterRoutes(api, deductionHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		calendarevent.RegisterRoutes(api, eventHandler, rbacService)
	}

	return nil
}
