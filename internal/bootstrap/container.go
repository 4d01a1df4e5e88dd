package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/oculairmedia/keep-mcp/internal/config"
	"github.com/oculairmedia/keep-mcp/internal/controller"
	"github.com/oculairmedia/keep-mcp/internal/mapper"
	"github.com/oculairmedia/keep-mcp/internal/pkg/logger"
	"github.com/oculairmedia/keep-mcp/internal/service"
	"github.com/oculairmedia/keep-mcp/pkg/keep"
	pktNats "github.com/oculairmedia/keep-mcp/pkg/nats"
)

type Container struct {
	// Controllers
	NoteController   controller.INoteController
	HealthController controller.IHealthController

	// Shared services (the MCP entrypoint wires its own transport around these)
	NoteService service.INoteService

	// Background services (exposed for main to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Keep session (lazy: first request authenticates)
	keepProvider := keep.NewProvider(cfg.Google.Email, cfg.Google.MasterToken, cfg.Keep.APIBaseURL)
	sessionProvider := service.SessionProviderFrom(keepProvider)

	// 3. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisherService := service.NewPublisherService(pubSub)

	// NATS bridge is optional; the audit log works without it
	var natsPublisher *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPublisher, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPublisher = nil
		}
	}

	// 4. Domain services
	guard := service.NewModificationGuard(cfg.Keep.UnsafeMode)
	if cfg.Keep.UnsafeMode {
		log.Printf("[WARN] UNSAFE_MODE is enabled: ownership checks on note mutations are OFF")
	}
	noteMapper := mapper.NewNoteMapper()
	noteService := service.NewNoteService(sessionProvider, guard, noteMapper, publisherService, sysLogger)

	consumerService := service.NewConsumerService(pubSub, sysLogger, natsPublisher)

	// 5. Controllers
	noteController := controller.NewNoteController(noteService)
	healthController := controller.NewHealthController(noteService)

	return &Container{
		NoteController:   noteController,
		HealthController: healthController,
		NoteService:      noteService,
		ConsumerService:  consumerService,
		Logger:           sysLogger,
	}
}
