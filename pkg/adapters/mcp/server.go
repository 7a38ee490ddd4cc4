package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	producerpal "github.com/adamjmurray/producer-pal"
	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// DuplicateResponse provides a unified result structure across
// adapters: a single copy collapses to "result", multiple copies are
// listed under "results".
type DuplicateResponse struct {
	Result  *domain.Duplicated  `json:"result,omitempty" jsonschema_description:"The created object when exactly one copy was made"`
	Results []domain.Duplicated `json:"results,omitempty" jsonschema_description:"The created objects when more than one copy was made"`
}

// DeleteLocatorResponse reports a locator deletion.
type DeleteLocatorResponse struct {
	Name    string `json:"name" jsonschema_description:"The locator name that was matched"`
	Deleted int    `json:"deleted" jsonschema_description:"How many locators were deleted"`
}

// NewDuplicateResponse collapses a result slice per the wire contract.
func NewDuplicateResponse(results []domain.Duplicated) DuplicateResponse {
	if len(results) == 1 {
		return DuplicateResponse{Result: &results[0]}
	}
	return DuplicateResponse{Results: results}
}

// Engine defines the interface required by the MCP server to interact
// with the duplication layer.
type Engine interface {
	Duplicate(ctx context.Context, req domain.DuplicateRequest) ([]domain.Duplicated, error)
	Locators() ([]domain.Locator, error)
	DeleteLocators(ctx context.Context, name string) (int, error)
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("producer-pal-mcp", strings.TrimSpace(producerpal.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: duplicate
	duplicateTool := mcp.NewTool("duplicate",
		mcp.WithDescription("Duplicate a track, scene, clip, or device. Supports count-based copies with auto-incrementing names, stripped track copies, and arrangement placement by bar|beat position or locator."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Object type: track, scene, clip, or device")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Host id of the source object")),
		mcp.WithNumber("count", mcp.Description("Number of copies to create (default 1)")),
		mcp.WithString("name", mcp.Description("Base name for the copies; later copies get ' 2', ' 3' suffixes")),
		mcp.WithBoolean("withoutClips", mcp.Description("Track/scene only: strip all clips from the copies")),
		mcp.WithBoolean("withoutDevices", mcp.Description("Track only: strip all devices from the copies")),
		mcp.WithBoolean("routeToSource", mcp.Description("Track only: route the copy's output into the source track and arm it")),
		mcp.WithString("destination", mcp.Description("Clip/scene only: 'session' or 'arrangement'")),
		mcp.WithNumber("toTrackIndex", mcp.Description("Clip only: destination track index for session duplication")),
		mcp.WithNumber("toSceneIndex", mcp.Description("Clip only: destination scene index for session duplication")),
		mcp.WithString("arrangementStart", mcp.Description("Arrangement position(s) as bar|beat, comma-separated for multiple copies")),
		mcp.WithString("arrangementLocatorId", mcp.Description("Arrangement position by locator id (from list-locators)")),
		mcp.WithString("arrangementLocatorName", mcp.Description("Arrangement position by exact locator name; the earliest match wins")),
		mcp.WithString("arrangementLength", mcp.Description("Length as bars:beats, parsed against the clip's own meter")),
		mcp.WithString("toPath", mcp.Description("Device only: explicit destination path for the copy")),
		mcp.WithOutputSchema[DuplicateResponse](),
	)
	s.mcpServer.AddTool(duplicateTool, mcp.NewStructuredToolHandler(s.handleDuplicate))

	// TOOL: list-locators
	locatorsTool := mcp.NewTool("list-locators",
		mcp.WithDescription("List the arrangement locators (cue points) with ids usable as arrangementLocatorId."),
	)
	s.mcpServer.AddTool(locatorsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		locs, err := s.engine.Locators()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list locators failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(locs)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: delete-locator
	deleteTool := mcp.NewTool("delete-locator",
		mcp.WithDescription("Delete every arrangement locator whose name matches exactly."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Exact locator name to delete")),
		mcp.WithOutputSchema[DeleteLocatorResponse](),
	)
	s.mcpServer.AddTool(deleteTool, mcp.NewStructuredToolHandler(s.handleDeleteLocator))
}

// Handler methods for structured tools

func (s *Server) handleDuplicate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DuplicateResponse, error) {
	var req domain.DuplicateRequest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return DuplicateResponse{}, fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(args); err != nil {
		return DuplicateResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}

	results, err := s.engine.Duplicate(ctx, req)
	if err != nil {
		slog.Warn("MCP Duplicate: request failed", "type", req.Type, "id", req.ID, "error", err)
		return DuplicateResponse{}, err
	}
	return NewDuplicateResponse(results), nil
}

func (s *Server) handleDeleteLocator(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DeleteLocatorResponse, error) {
	name, _ := args["name"].(string)
	deleted, err := s.engine.DeleteLocators(ctx, name)
	if err != nil {
		return DeleteLocatorResponse{}, err
	}
	return DeleteLocatorResponse{Name: name, Deleted: deleted}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: producer-pal://locators
	s.mcpServer.AddResource(mcp.NewResource("producer-pal://locators", "Arrangement Locators",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		locs, err := s.engine.Locators()
		if err != nil {
			return nil, fmt.Errorf("failed to list locators: %w", err)
		}
		jsonBytes, _ := json.Marshal(locs)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "producer-pal://locators",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
