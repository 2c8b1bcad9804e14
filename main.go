package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/include"
	"github.com/deckforge/deckforge/internal/logger"
	"github.com/deckforge/deckforge/internal/mcp"
	"github.com/deckforge/deckforge/internal/render"
)

func main() {
	// Read from stdin, write to stdout
	// IMPORTANT: Only JSON should go to stdout for MCP protocol
	// All errors/logs should go to stderr
	reader := bufio.NewReader(os.Stdin)
	writer := os.Stdout

	cfg := config.LoadOrDefault(config.GetConfigPath("config.yml"))

	log, err := logger.NewFromLoggingConfig(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	loader := include.NewFSLoader(cfg.Include.Root)
	expander := include.NewExpander(loader, cfg.Include.MaxDepth)

	server := mcp.NewServer(
		mcp.NewStore(),
		expander,
		render.NewOutline(),
		log,
		cfg.Server.Name,
		cfg.Server.Version,
	)

	log.Info("deckforge MCP server started",
		logger.String("name", cfg.Server.Name),
		logger.String("version", cfg.Server.Version),
		logger.String("include_root", cfg.Include.Root))

	// Process requests
	// MCP protocol expects compact JSON (no indentation) for better compatibility
	decoder := json.NewDecoder(reader)
	encoder := json.NewEncoder(writer)
	// Don't use SetIndent - MCP clients expect compact JSON

	for {
		var request mcp.Request
		if err := decoder.Decode(&request); err != nil {
			if err == io.EOF {
				break
			}
			// For parse errors, we can't get the ID from the request, so use a default
			// JSON-RPC requires ID to be string or number, not null
			sendError(writer, encoder, 0, mcp.ParseError, "Failed to parse request", nil)
			continue
		}

		// Handle request
		// JSON-RPC notifications (requests without ID) don't require responses
		response := server.HandleRequest(&request)
		if response != nil {
			// Only send response if this was a request (has ID), not a notification
			// Preserve the original request ID exactly as sent
			if response.ID == nil && request.ID != nil {
				response.ID = request.ID
			}
			// Don't send response if request had no ID (notification)
			if request.ID == nil {
				continue
			}
			if encodeErr := encoder.Encode(response); encodeErr != nil {
				log.Error("failed to encode response", logger.Err(encodeErr))
			}
		}
	}
}

func sendError(_ io.Writer, encoder *json.Encoder, id any, code int, message string, data any) {
	errorResponse := mcp.ErrorResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: mcp.ErrorObject{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
	if encodeErr := encoder.Encode(errorResponse); encodeErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode error response: %v\n", encodeErr)
	}
}
