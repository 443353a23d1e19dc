package app

import (
	"os"

	"workflowhr/internal/auth"
	"workflowhr/internal/calendarevent"
	"workflowhr/internal/company"
	"workflowhr/internal/deduction"
	"workflowhr/internal/employee"
	"workflowhr/internal/leavebalance"
	"workflowhr/internal/leaverequest"
	"workflowhr/internal/leavetype"
	"workflowhr/internal/payroll"
	"workflowhr/internal/shared/connection"
	"workflowhr/internal/workcalendar"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The outbox and the counters are written with raw SQL, so they are created
// with raw SQL too instead of gorm entities.
const outboxEventsDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id            UUID PRIMARY KEY,
	request_id    TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id  UUID NOT NULL,
	event_type    TEXT NOT NULL,
	topic         TEXT NOT NULL,
	payload       JSONB NOT NULL,
	status        TEXT NOT NULL DEFAULT 'pending',
	retry_count   INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at  TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const companyCountersDDL = `
CREATE TABLE IF NOT EXISTS company_counters (
	company_id   UUID NOT NULL,
	counter_type TEXT NOT NULL,
	last_value   BIGINT NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (company_id, counter_type)
)`

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, redisClient)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&company.Company{},
		&auth.User{},
		&employee.Employee{},
		&leavetype.LeaveType{},
		&workcalendar.WorkingDaysConfig{},
		&leavebalance.LeaveBalance{},
		&leaverequest.LeaveRequest{},
		&deduction.FixedDeduction{},
		&payroll.SalarySlip{},
		&payroll.SalarySlipDetail{},
		&calendarevent.CalendarEvent{},
	); err != nil {
		return err
	}

	for _, ddl := range []string{outboxEventsDDL, companyCountersDDL} {
		if err := db.Exec(ddl).Error; err != nil {
			return err
		}
	}

	return nil
}
