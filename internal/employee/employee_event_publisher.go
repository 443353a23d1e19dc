package employee

import (
	"context"
	"encoding/json"
	"time"

	"workflowhr/internal/events"
	"workflowhr/internal/messaging/kafka"
	"workflowhr/internal/shared/contextutil"

	"github.com/google/uuid"
)

// publishEmployeeCreated writes the lifecycle event into the outbox inside
// the caller's transaction so the event and the row commit together.
func publishEmployeeCreated(ctx context.Context, outbox kafka.OutboxRepository, e *Employee) error {
	event := events.EmployeeCreatedEvent{
		EventType:  "employee.created",
		EmployeeID: e.ID.String(),
		CompanyID:  e.CompanyID.String(),
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   e.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
