package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/ucanfire/pkg/domain"
)

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader       *bufio.Reader
	Writer       io.Writer
	Renderer     ContentRenderer
	MaxInputSize int

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerMaxInputSize overrides DefaultMaxInputSize.
func WithTextHandlerMaxInputSize(n int) TextHandlerOption {
	return func(h *TextHandler) {
		h.MaxInputSize = n
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader:       bufio.NewReader(r),
		Writer:       w,
		MaxInputSize: DefaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// initPump starts a single reader goroutine so Input can honour
// context cancellation while a read is blocked.
func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}

		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

func (h *TextHandler) render(markdown string) string {
	if h.Renderer == nil {
		return markdown
	}
	rendered, err := h.Renderer(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

func (h *TextHandler) Question(ctx context.Context, index int, q domain.Question) error {
	_, err := fmt.Fprintln(h.Writer, strings.TrimSpace(h.render(QuestionMarkdown(q))))
	return err
}

func (h *TextHandler) Result(ctx context.Context, stage domain.Stage) error {
	_, err := fmt.Fprintln(h.Writer, strings.TrimSpace(h.render(ResultMarkdown(stage))))
	return err
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, "> ")
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}

			clean, err := SanitizeInputLimit(strings.TrimSpace(res.text), h.MaxInputSize)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "[System] %s\n", msg)
	return err
}
