package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/levelance"
	"github.com/aretw0/levelance/pkg/domain"
)

// SymbolsURI is the resource exposing the rule table.
const SymbolsURI = "levelance://symbols"

// DecodeResponse is the structured output of the decode tool.
type DecodeResponse struct {
	Output      string `json:"output" jsonschema_description:"Decoded digits with delimiters passed through"`
	Digits      []int  `json:"digits" jsonschema_description:"Group digits in input order"`
	TotalLength int    `json:"total_length" jsonschema_description:"Input length without delimiters"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	Decode(ctx context.Context, input string) (levelance.Result, error)
	Explain(ctx context.Context, input string) ([]domain.Trace, error)
}

// Server wraps the Levelance Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("levelance-mcp", strings.TrimSpace(levelance.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and shuts it down
// when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

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
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	decodeTool := mcp.NewTool("decode",
		mcp.WithDescription("Decode a Levelance string (LPS...LP) into digits."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The Levelance string, e.g. LPSAAA.BBBLP")),
		mcp.WithOutputSchema[DecodeResponse](),
	)
	s.mcpServer.AddTool(decodeTool, mcp.NewStructuredToolHandler(s.handleDecode))

	s.mcpServer.AddTool(mcp.NewTool("explain",
		mcp.WithDescription("Show how every symbol group of a Levelance string evaluates to its digit."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The Levelance string")),
	), s.handleExplain)
}

func (s *Server) handleDecode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DecodeResponse, error) {
	input, _ := args["input"].(string)

	res, err := s.engine.Decode(ctx, input)
	if err != nil {
		slog.Debug("MCP Decode: rejected", "error", err, "kind", domain.Kind(err))
		return DecodeResponse{}, fmt.Errorf("decode failed: %w", err)
	}
	return DecodeResponse{
		Output:      res.Output,
		Digits:      res.Digits,
		TotalLength: res.TotalLength,
	}, nil
}

func (s *Server) handleExplain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	traces, err := s.engine.Explain(ctx, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("explain failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(traces)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(SymbolsURI, "Levelance Symbol Rules",
		mcp.WithMIMEType("application/json"),
	), s.readSymbols)
}

func (s *Server) readSymbols(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(domain.Rules())
	if err != nil {
		return nil, fmt.Errorf("failed to encode rules: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      SymbolsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
