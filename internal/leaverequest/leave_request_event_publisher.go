package leaverequest

import (
	"context"
	"encoding/json"
	"time"

	"workflowhr/internal/events"
	"workflowhr/internal/messaging/kafka"
	"workflowhr/internal/shared/contextutil"

	"github.com/google/uuid"
)

// Notification events ride the outbox inside the caller's transaction, so a
// rolled back decision never notifies anyone.
func publishSubmitted(ctx context.Context, outbox kafka.OutboxRepository, l *LeaveRequest) error {
	event := events.LeaveRequestSubmittedEvent{
		EventType:   events.LeaveRequestSubmittedType,
		RequestID:   l.ID.String(),
		CompanyID:   l.CompanyID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		TotalDays:   l.TotalDays,
		OccurredAt:  time.Now().UTC(),
	}
	if l.TeamLeadID != nil {
		event.TeamLeadID = l.TeamLeadID.String()
	}
	if l.HRID != nil {
		event.HRID = l.HRID.String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveNotificationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func publishDecided(ctx context.Context, outbox kafka.OutboxRepository, l *LeaveRequest) error {
	event := events.LeaveRequestDecidedEvent{
		EventType:  events.LeaveRequestDecidedType,
		RequestID:  l.ID.String(),
		CompanyID:  l.CompanyID.String(),
		EmployeeID: l.EmployeeID.String(),
		Status:     l.Status,
		OccurredAt: time.Now().UTC(),
	}
	if l.Remarks != nil {
		event.Remarks = *l.Remarks
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveNotificationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
