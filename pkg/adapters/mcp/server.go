// Package mcp exposes questionnaire sessions as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/ucanfire"
	"github.com/aretw0/ucanfire/internal/dto"
	"github.com/aretw0/ucanfire/internal/logging"
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/questionnaire"
	"github.com/aretw0/ucanfire/pkg/runner"
	"github.com/aretw0/ucanfire/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TableURI is the resource exposing the decision table.
const TableURI = "ucanfire://table"

// SessionArgs identifies a session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// AnswerArgs is the input of the answer tool.
type AnswerArgs struct {
	SessionID string `json:"session_id"`
	Choice    string `json:"choice"`
}

// Server exposes a session.Manager as an MCP Server.
type Server struct {
	sessions  *session.Manager
	table     *questionnaire.Table
	logger    *slog.Logger
	maxInput  int
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithTable sets the table returned by get_table.
func WithTable(t *questionnaire.Table) Option {
	return func(s *Server) {
		s.table = t
	}
}

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputSize bounds the choice argument of the answer tool.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInput = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		table:     questionnaire.Default(),
		logger:    logging.NewNop(),
		maxInput:  runner.DefaultMaxInputSize,
		mcpServer: server.NewMCPServer("ucanfire-mcp", strings.TrimSpace(ucanfire.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int, shutdownTimeout time.Duration) error {
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

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("current_question",
		mcp.WithDescription("Show the current question of a session, or its result. Starts the session if it does not exist."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier chosen by the caller")),
		mcp.WithOutputSchema[dto.View](),
	), mcp.NewStructuredToolHandler(s.handleCurrent))

	s.mcpServer.AddTool(mcp.NewTool("answer",
		mcp.WithDescription("Answer the current question of a session with yes or no."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("choice", mcp.Required(), mcp.Enum("yes", "no"), mcp.Description("The answer")),
		mcp.WithOutputSchema[dto.View](),
	), mcp.NewStructuredToolHandler(s.handleAnswer))

	s.mcpServer.AddTool(mcp.NewTool("restart",
		mcp.WithDescription("Restart the questionnaire of a session from the first question."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[dto.View](),
	), mcp.NewStructuredToolHandler(s.handleRestart))

	s.mcpServer.AddTool(mcp.NewTool("get_table",
		mcp.WithDescription("Get the full question table: prompts and where each answer leads."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := s.tableJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode table: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleCurrent(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (dto.View, error) {
	if args.SessionID == "" {
		return dto.View{}, errors.New("session_id is required")
	}
	view, err := s.sessions.LoadOrStart(ctx, args.SessionID)
	if err != nil {
		return dto.View{}, fmt.Errorf("load session: %w", err)
	}
	return dto.NewView(view), nil
}

func (s *Server) handleAnswer(ctx context.Context, request mcp.CallToolRequest, args AnswerArgs) (dto.View, error) {
	if args.SessionID == "" {
		return dto.View{}, errors.New("session_id is required")
	}
	clean, err := runner.SanitizeInputLimit(args.Choice, s.maxInput)
	if err != nil {
		s.logger.Warn("MCP answer: input rejected", "err", err, "size", len(args.Choice))
		return dto.View{}, fmt.Errorf("input rejected: %w", err)
	}
	choice, err := domain.ParseChoice(clean)
	if err != nil {
		return dto.View{}, err
	}
	view, _, err := s.sessions.Answer(ctx, args.SessionID, choice)
	if err != nil {
		return dto.View{}, fmt.Errorf("answer failed: %w", err)
	}
	return dto.NewView(view), nil
}

func (s *Server) handleRestart(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (dto.View, error) {
	if args.SessionID == "" {
		return dto.View{}, errors.New("session_id is required")
	}
	view, err := s.sessions.Restart(ctx, args.SessionID)
	if err != nil {
		return dto.View{}, fmt.Errorf("restart failed: %w", err)
	}
	return dto.NewView(view), nil
}

func (s *Server) tableJSON() ([]byte, error) {
	return json.Marshal(dto.NewTable(s.table.Questions()))
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TableURI, "Question Table",
		mcp.WithResourceDescription("The six questions and the edge taken by each answer."),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := s.tableJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode table: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      TableURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
