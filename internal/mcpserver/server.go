// Package mcpserver exposes the note operations as MCP tools over the
// streamable HTTP transport, sharing the same service layer as the REST API.
package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oculairmedia/keep-mcp/internal/dto"
	"github.com/oculairmedia/keep-mcp/internal/service"
)

const (
	ServiceName    = "google-keep-mcp"
	ServiceVersion = "1.0.0"
)

// NewHTTPHandler builds the streamable HTTP handler for the MCP server.
func NewHTTPHandler(noteService service.INoteService) http.Handler {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    ServiceName,
		Version: ServiceVersion,
	}, nil)

	registerTools(server, noteService)

	return mcpsdk.NewStreamableHTTPHandler(func(r *http.Request) *mcpsdk.Server {
		return server
	}, nil)
}

// NewServer builds a bare MCP server, used by the in-memory transport tests.
func NewServer(noteService service.INoteService) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    ServiceName,
		Version: ServiceVersion,
	}, nil)
	registerTools(server, noteService)
	return server
}

// handleToolResult marshals the result to JSON and wraps it in MCP CallToolResult format
func handleToolResult(result any, err error) (*mcpsdk.CallToolResult, any, error) {
	if err != nil {
		return nil, nil, err
	}
	jsonData, err := json.Marshal(result)
	if err != nil {
		return nil, nil, err
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(jsonData)},
		},
	}, result, nil
}

func registerTools(s *mcpsdk.Server, noteService service.INoteService) {
	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "find",
		Description: "Search Google Keep notes by free-text query. An empty query lists every non-archived, non-trashed note in the account. Returns the matching notes with their identifiers, titles, text, pinned state, color and labels.",
		InputSchema: createSchema(map[string]any{
			"query": stringProperty("Search query string. Empty matches all active notes"),
		}, nil),
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		Query string `json:"query"`
	}) (*mcpsdk.CallToolResult, any, error) {
		result, err := noteService.Search(ctx, args.Query)
		return handleToolResult(result, err)
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "get_note",
		Description: "Fetch a single Google Keep note by its identifier.",
		InputSchema: createSchema(map[string]any{
			"note_id": stringProperty("Identifier of the note to fetch"),
		}, []string{"note_id"}),
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		NoteID string `json:"note_id"`
	}) (*mcpsdk.CallToolResult, any, error) {
		result, err := noteService.Get(ctx, args.NoteID)
		return handleToolResult(result, err)
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "create_note",
		Description: "Create a new Google Keep note with an optional title and text. The note is tagged with the keep-mcp label and synced to the account before the result is returned.",
		InputSchema: createSchema(map[string]any{
			"title": stringProperty("Optional note title"),
			"text":  stringProperty("Optional note text content"),
		}, nil),
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		Title *string `json:"title"`
		Text  *string `json:"text"`
	}) (*mcpsdk.CallToolResult, any, error) {
		result, err := noteService.Create(ctx, &dto.CreateNoteRequest{Title: args.Title, Text: args.Text})
		return handleToolResult(result, err)
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "update_note",
		Description: "Update a Google Keep note's title and/or text. Omitted fields keep their current value. Only notes carrying the keep-mcp label can be modified unless UNSAFE_MODE is enabled.",
		InputSchema: createSchema(map[string]any{
			"note_id": stringProperty("Identifier of the note to update"),
			"title":   stringProperty("New title. Omit to keep the current title"),
			"text":    stringProperty("New text content. Omit to keep the current text"),
		}, []string{"note_id"}),
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		NoteID string  `json:"note_id"`
		Title  *string `json:"title"`
		Text   *string `json:"text"`
	}) (*mcpsdk.CallToolResult, any, error) {
		result, err := noteService.Update(ctx, args.NoteID, &dto.UpdateNoteRequest{Title: args.Title, Text: args.Text})
		return handleToolResult(result, err)
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "delete_note",
		Description: "Mark a Google Keep note for deletion and sync the marker to the account. Only notes carrying the keep-mcp label can be deleted unless UNSAFE_MODE is enabled.",
		InputSchema: createSchema(map[string]any{
			"note_id": stringProperty("Identifier of the note to delete"),
		}, []string{"note_id"}),
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		NoteID string `json:"note_id"`
	}) (*mcpsdk.CallToolResult, any, error) {
		result, err := noteService.Delete(ctx, args.NoteID)
		return handleToolResult(result, err)
	})
}

func stringProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

func createSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
