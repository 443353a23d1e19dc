package consumer

import (
	"context"
	"encoding/json"

	"workflowhr/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveNotifications drains the leave notification topic and hands
// each event to the notifier. Delivery is fire-and-forget: a failed delivery
// is logged and the message is not retried.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notifications")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		eventType := headerValue(msg, "event_type")
		switch eventType {
		case events.LeaveRequestSubmittedType:
			var event events.LeaveRequestSubmittedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Error("decode leave submitted event failed", zap.Error(err))
				break
			}
			if err := notifier.NotifyLeaveSubmitted(ctx, event); err != nil {
				log.Warn("leave submitted notification not delivered",
					zap.String("request_id", event.RequestID),
					zap.Error(err),
				)
			}
		case events.LeaveRequestDecidedType:
			var event events.LeaveRequestDecidedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Error("decode leave decided event failed", zap.Error(err))
				break
			}
			if err := notifier.NotifyLeaveDecided(ctx, event); err != nil {
				log.Warn("leave decided notification not delivered",
					zap.String("request_id", event.RequestID),
					zap.Error(err),
				)
			}
		default:
			log.Warn("unknown leave notification event type", zap.String("event_type", eventType))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
		}
	}
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
