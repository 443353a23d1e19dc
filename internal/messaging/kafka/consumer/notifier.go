package consumer

import (
	"context"

	"workflowhr/internal/events"

	"go.uber.org/zap"
)

// Notifier delivers leave lifecycle notifications to people. The default
// implementation writes structured log lines; a mail or chat integration can
// replace it without touching the consumer loop.
type Notifier interface {
	NotifyLeaveSubmitted(ctx context.Context, event events.LeaveRequestSubmittedEvent) error
	NotifyLeaveDecided(ctx context.Context, event events.LeaveRequestDecidedEvent) error
}

type logNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) Notifier {
	return &logNotifier{logger: logger.Named("notifier")}
}

func (n *logNotifier) NotifyLeaveSubmitted(ctx context.Context, event events.LeaveRequestSubmittedEvent) error {
	n.logger.Info("leave request awaiting review",
		zap.String("request_id", event.RequestID),
		zap.String("company_id", event.CompanyID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("start_date", event.StartDate),
		zap.String("end_date", event.EndDate),
		zap.Int("total_days", event.TotalDays),
	)
	return nil
}

func (n *logNotifier) NotifyLeaveDecided(ctx context.Context, event events.LeaveRequestDecidedEvent) error {
	n.logger.Info("leave request decided",
		zap.String("request_id", event.RequestID),
		zap.String("company_id", event.CompanyID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("status", event.Status),
		zap.String("remarks", event.Remarks),
	)
	return nil
}
