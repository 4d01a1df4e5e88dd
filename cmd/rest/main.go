package main

import (
	"context"
	"log"

	"github.com/oculairmedia/keep-mcp/internal/bootstrap"
	"github.com/oculairmedia/keep-mcp/internal/config"
	"github.com/oculairmedia/keep-mcp/internal/server"
	"github.com/oculairmedia/keep-mcp/internal/tracer"
)

func main() {
	// 1. Initialize tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer("keep-rest-api")
	defer shutdownTracer(context.Background())

	// 2. Load configuration
	cfg := config.Load()

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(cfg)

	// 4. Start the audit consumer
	go func() {
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	// 5. Run server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
