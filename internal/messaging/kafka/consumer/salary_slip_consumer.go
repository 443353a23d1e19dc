package consumer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"workflowhr/internal/events"
	"workflowhr/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultPayslipDir = "./payslips"

// ConsumeSalarySlipGenerated renders the payslip PDF for every generated
// slip and drops it in PAYSLIP_STORAGE_DIR.
func ConsumeSalarySlipGenerated(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.salary_slip")
	log.Info("salary slip consumer started")

	dir := os.Getenv("PAYSLIP_STORAGE_DIR")
	if dir == "" {
		dir = defaultPayslipDir
	}

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("salary slip consumer stopped")
				return
			}
			log.Error("fetch salary slip message failed", zap.Error(err))
			continue
		}

		var event events.SalarySlipGeneratedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode salary slip event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		pdf, filename, err := payrollService.GeneratePayslipPDF(ctx, event.CompanyID, event.SlipID)
		if err != nil {
			log.Error("render payslip failed",
				zap.String("slip_id", event.SlipID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("create payslip dir failed", zap.Error(err))
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, filename), pdf, 0o644); err != nil {
			log.Error("write payslip file failed",
				zap.String("filename", filename),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary slip message failed", zap.Error(err))
			continue
		}

		log.Info("payslip rendered",
			zap.String("slip_id", event.SlipID),
			zap.String("filename", filename),
		)
	}
}
