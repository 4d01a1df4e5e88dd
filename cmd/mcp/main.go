package main

import (
	"context"
	"log"
	"net/http"

	"github.com/oculairmedia/keep-mcp/internal/bootstrap"
	"github.com/oculairmedia/keep-mcp/internal/config"
	"github.com/oculairmedia/keep-mcp/internal/mcpserver"
	"github.com/oculairmedia/keep-mcp/internal/tracer"
)

func main() {
	shutdownTracer := tracer.InitTracer("keep-mcp-server")
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	container := bootstrap.NewContainer(cfg)

	go func() {
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	mux := mcpserver.Mount(cfg.Mcp.Path, container.NoteService)

	addr := cfg.Mcp.Host + ":" + cfg.Mcp.Port
	log.Printf("✅ MCP server is running on http://%s%s", addr, cfg.Mcp.Path)
	log.Printf("Health check: http://%s/health", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
