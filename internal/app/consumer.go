package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"workflowhr/internal/deduction"
	"workflowhr/internal/employee"
	"workflowhr/internal/events"
	"workflowhr/internal/leavebalance"
	"workflowhr/internal/leaverequest"
	"workflowhr/internal/leavetype"
	"workflowhr/internal/messaging/kafka/consumer"
	"workflowhr/internal/payroll"
	"workflowhr/internal/shared/connection"
	"workflowhr/internal/shared/counter"
	"workflowhr/internal/workcalendar"

	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(gormDB)
	requestRepo := leaverequest.NewRepository(gormDB)
	deductionRepo := deduction.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)

	calendarService := workcalendar.NewService(workcalendar.NewRepository(gormDB))
	ledgerService := leavebalance.NewService(balanceRepo, employeeRepo, leaveTypeRepo)
	payrollService := payroll.NewService(
		sqlDB, payrollRepo,
		employeeRepo, deductionRepo, requestRepo, leaveTypeRepo,
		calendarService, counterRepo,
	)
	notifier := consumer.NewLogNotifier(logger)

	lifecycleReader := connection.NewKafkaReader(kafkaBroker, events.EmployeeCreatedTopic, "workflowhr-leave-balance")
	defer lifecycleReader.Close()
	notificationReader := connection.NewKafkaReader(kafkaBroker, events.LeaveNotificationTopic, "workflowhr-leave-notifications")
	defer notificationReader.Close()
	payslipReader := connection.NewKafkaReader(kafkaBroker, events.SalarySlipGeneratedTopic, "workflowhr-payslip-render")
	defer payslipReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, ledgerService, logger)
	go consumer.ConsumeLeaveNotifications(ctx, notificationReader, notifier, logger)
	go consumer.ConsumeSalarySlipGenerated(ctx, payslipReader, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
