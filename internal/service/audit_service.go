package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/pkg/events"
)

const auditTopic = "auth.audit"

// IAuditService fans auth lifecycle events out to the audit log through
// an in-process pub/sub channel, so publishing never blocks a request.
type IAuditService interface {
	Publish(ctx context.Context, event events.Event)
	Start(ctx context.Context) error
	Close() error
}

type auditService struct {
	pubSub   *gochannel.GoChannel
	log      logger.ILogger
	auditLog logger.ILogger
}

func NewAuditService(log, auditLog logger.ILogger) IAuditService {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NopLogger{},
	)
	return &auditService{
		pubSub:   pubSub,
		log:      log,
		auditLog: auditLog,
	}
}

// Publish is fire-and-forget: an audit failure must never fail the
// request that triggered it.
func (s *auditService) Publish(ctx context.Context, event events.Event) {
	payload, err := json.Marshal(events.BaseEvent{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		s.log.Warn("audit", "failed to encode audit event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := s.pubSub.Publish(auditTopic, msg); err != nil {
		s.log.Warn("audit", "failed to publish audit event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

// Start subscribes the audit log writer. Must be called once before the
// server starts accepting requests.
func (s *auditService) Start(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, auditTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var evt events.BaseEvent
			if err := json.Unmarshal(msg.Payload, &evt); err != nil {
				s.log.Warn("audit", "malformed audit event", map[string]interface{}{
					"error": err.Error(),
				})
				msg.Ack()
				continue
			}

			s.auditLog.Info("audit", evt.Type, evt.Data)
			msg.Ack()
		}
	}()

	return nil
}

func (s *auditService) Close() error {
	return s.pubSub.Close()
}
