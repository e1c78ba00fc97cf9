package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventQuestionEnter EventType = "question_enter"
	EventAnswer        EventType = "answer"
	EventStageResolved EventType = "stage_resolved"
	EventRestart       EventType = "restart"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// QuestionEvent is emitted when the engine moves onto a question.
type QuestionEvent struct {
	EventBase
	Index    int    `json:"index"`
	Headline string `json:"headline"`
}

// AnswerEvent is emitted for every answer, before its outcome is applied.
type AnswerEvent struct {
	EventBase
	Index  int    `json:"index"`
	Choice Choice `json:"choice"`
}

// StageEvent is emitted when an answer resolves to a stage.
type StageEvent struct {
	EventBase
	Index int   `json:"index"`
	Stage Stage `json:"stage"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnQuestionEnter func(*QuestionEvent)
	OnAnswer        func(*AnswerEvent)
	OnStageResolved func(*StageEvent)
	OnRestart       func(*EventBase)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnQuestionEnter: chain(h.OnQuestionEnter, other.OnQuestionEnter),
		OnAnswer:        chain(h.OnAnswer, other.OnAnswer),
		OnStageResolved: chain(h.OnStageResolved, other.OnStageResolved),
		OnRestart:       chain(h.OnRestart, other.OnRestart),
	}
}

func chain[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
