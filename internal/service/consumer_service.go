package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/oculairmedia/keep-mcp/internal/pkg/logger"
	"github.com/oculairmedia/keep-mcp/pkg/events"
	pktNats "github.com/oculairmedia/keep-mcp/pkg/nats"
)

// IConsumerService drains the note-activity topic. Every mutation ends up in
// the structured audit log and, when a NATS publisher is wired, on the
// external bus as well.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub        *gochannel.GoChannel
	log           logger.ILogger
	natsPublisher *pktNats.Publisher
}

func NewConsumerService(pubSub *gochannel.GoChannel, log logger.ILogger, natsPublisher *pktNats.Publisher) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		log:           log,
		natsPublisher: natsPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, NoteActivityTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event events.NoteEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.log.Error("audit", "Failed to unmarshal note event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed messages would loop forever on Nack
		return
	}

	cs.log.Info("audit", event.Type, map[string]interface{}{
		"note_id":     event.NoteId,
		"title":       event.Title,
		"occurred_at": event.OccurredAt,
	})

	if cs.natsPublisher != nil {
		if err := cs.natsPublisher.Publish(ctx, event); err != nil {
			cs.log.Warn("audit", "Failed to forward note event to NATS", map[string]interface{}{
				"error":   err.Error(),
				"note_id": event.NoteId,
			})
		}
	}

	msg.Ack()
}
