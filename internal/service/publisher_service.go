package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/oculairmedia/keep-mcp/pkg/events"
)

// NoteActivityTopic is the in-process topic carrying note mutation events.
const NoteActivityTopic = "note-activity"

type IPublisherService interface {
	Publish(ctx context.Context, event events.NoteEvent) error
}

type publisherService struct {
	pubSub *gochannel.GoChannel
}

func NewPublisherService(pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{pubSub: pubSub}
}

func (s *publisherService) Publish(ctx context.Context, event events.NoteEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.pubSub.Publish(NoteActivityTopic, message.NewMessage(watermill.NewUUID(), payload))
}
