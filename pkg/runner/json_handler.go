package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/ucanfire/pkg/domain"
)

// Message types written by JSONHandler, one JSON object per line.
const (
	MessageQuestion = "question"
	MessageResult   = "result"
	MessageSystem   = "system"
)

// Message is a single line of JSONHandler output.
type Message struct {
	Type     string         `json:"type"`
	Index    *int           `json:"index,omitempty"`
	Question *domain.Prompt `json:"question,omitempty"`
	Stage    *StageMessage  `json:"stage,omitempty"`
	Text     string         `json:"text,omitempty"`
}

// StageMessage describes a resolved stage.
type StageMessage struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Link    string `json:"link"`
	Summary string `json:"summary"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Reader       *bufio.Reader
	Writer       io.Writer
	Encoder      *json.Encoder
	MaxInputSize int
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:       bufio.NewReader(r),
		Writer:       w,
		Encoder:      json.NewEncoder(w),
		MaxInputSize: DefaultMaxInputSize,
	}
}

func (h *JSONHandler) Question(ctx context.Context, index int, q domain.Question) error {
	prompt := q.Prompt
	return h.Encoder.Encode(Message{Type: MessageQuestion, Index: &index, Question: &prompt})
}

func (h *JSONHandler) Result(ctx context.Context, stage domain.Stage) error {
	return h.Encoder.Encode(Message{
		Type: MessageResult,
		Stage: &StageMessage{
			ID:      stage.ID,
			Name:    stage.Name,
			Link:    stage.Link(),
			Summary: stage.Summary(),
		},
	})
}

// Input reads one line. A JSON string ("yes") is unquoted; anything else
// is returned as raw text.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}

	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		text = val
	}
	return SanitizeInputLimit(text, h.MaxInputSize)
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Message{Type: MessageSystem, Text: msg})
}
