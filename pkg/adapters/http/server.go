package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/aretw0/ucanfire"
	"github.com/aretw0/ucanfire/internal/dto"
	"github.com/aretw0/ucanfire/internal/logging"
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/questionnaire"
	"github.com/aretw0/ucanfire/pkg/runner"
	"github.com/aretw0/ucanfire/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ErrInvalidSessionID is returned for session IDs outside [A-Za-z0-9_-]{1,128}.
var ErrInvalidSessionID = errors.New("invalid session id")

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Server exposes sessions of the questionnaire over HTTP.
type Server struct {
	sessions *session.Manager
	table    *questionnaire.Table
	streams  *StreamManager
	metrics  http.Handler
	logger   *slog.Logger
	maxInput int
	pages    *template.Template
}

// Option configures the Server.
type Option func(*Server)

// WithTable sets the table served by /questions and /stages.
// It should be the table the session manager's engines use.
func WithTable(t *questionnaire.Table) Option {
	return func(s *Server) {
		s.table = t
	}
}

// WithStreams sets the StreamManager behind /sessions/{id}/events.
// Register its Publish method on the session manager with session.WithListener.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.streams = sm
	}
}

// WithMetricsHandler overrides the /metrics handler (default: promhttp.Handler()).
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger configures a logger for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputSize bounds request bodies and answer text.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInput = n
	}
}

// NewServer creates a Server over sessions.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions: sessions,
		table:    questionnaire.Default(),
		metrics:  promhttp.Handler(),
		logger:   logging.NewNop(),
		maxInput: runner.DefaultMaxInputSize,
		pages:    parsePages(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.streams == nil {
		s.streams = NewStreamManager(s.logger)
	}
	return s
}

// NewHandler creates a new HTTP handler for the questionnaire.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(sessions, opts...).Handler()
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(RawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Handle("/metrics", s.metrics)

	r.Get("/questions", s.ListQuestions)
	r.Get("/stages", s.ListStages)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/answer", s.Answer)
			r.Post("/restart", s.Restart)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	r.Get("/", s.StartPage)
	r.Get("/start.html", s.StartPage)
	r.Post("/start.html", s.SubmitStart)
	r.Get("/stages/stage{id:[0-9]+}.html", s.StagePage)

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>U CAN FIRE API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "ucanfire-http",
		"version":     strings.TrimSpace(ucanfire.Version),
		"api_version": apiVersion,
	})
}

// ListQuestions handles GET /questions.
func (s *Server) ListQuestions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, dto.NewTable(s.table.Questions()))
}

// ListStages handles GET /stages.
func (s *Server) ListStages(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, dto.NewStages(s.table.Stages()))
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.sessions.Start(r.Context(), uuid.NewString())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, dto.NewView(view))
}

// GetSession handles GET /sessions/{sessionId}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	view, err := s.sessions.Current(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.NewView(view))
}

// DeleteSession handles DELETE /sessions/{sessionId}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AnswerRequest is the body of POST /sessions/{sessionId}/answer.
type AnswerRequest struct {
	Choice string `json:"choice"`
}

// Answer handles POST /sessions/{sessionId}/answer.
func (s *Server) Answer(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var body AnswerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, int64(s.maxInput))).Decode(&body); err != nil {
		s.writeErrorStatus(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	choice, err := s.parseChoice(body.Choice)
	if err != nil {
		s.logger.Warn("Answer: input rejected", "session_id", id, "err", err)
		s.writeError(w, err)
		return
	}

	view, _, err := s.sessions.Answer(r.Context(), id, choice)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.NewView(view))
}

// Restart handles POST /sessions/{sessionId}/restart.
func (s *Server) Restart(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	view, err := s.sessions.Restart(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.NewView(view))
}

func (s *Server) parseChoice(raw string) (domain.Choice, error) {
	clean, err := runner.SanitizeInputLimit(raw, s.maxInput)
	if err != nil {
		return 0, err
	}
	return domain.ParseChoice(clean)
}

// sessionIDParam binds the {sessionId} path parameter.
func sessionIDParam(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "sessionId", chi.URLParam(r, "sessionId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSessionID, err)
	}
	if !sessionIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	return id, nil
}

// statusFor maps errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidChoice),
		errors.Is(err, ErrInvalidSessionID),
		errors.Is(err, runner.ErrInputTooLarge),
		errors.Is(err, runner.ErrInvalidUTF8):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeErrorStatus(w, status, err.Error())
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
