package payroll

import (
	"context"
	"encoding/json"
	"time"

	"workflowhr/internal/events"
	"workflowhr/internal/messaging/kafka"
	"workflowhr/internal/shared/contextutil"

	"github.com/google/uuid"
)

func publishSlipGenerated(ctx context.Context, outbox kafka.OutboxRepository, slip *SalarySlip) error {
	event := events.SalarySlipGeneratedEvent{
		EventType:  "salary_slip.generated",
		SlipID:     slip.ID.String(),
		CompanyID:  slip.CompanyID.String(),
		EmployeeID: slip.EmployeeID.String(),
		Month:      slip.Month,
		Year:       slip.Year,
		NetSalary:  slip.NetSalary.String(),
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "salary_slip",
		AggregateID:   slip.ID.String(),
		EventType:     event.EventType,
		Topic:         events.SalarySlipGeneratedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
