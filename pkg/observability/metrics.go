package observability

import (
	"strconv"

	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ucanfire"

// Metrics holds the questionnaire collectors.
type Metrics struct {
	QuestionsEntered *prometheus.CounterVec
	Answers          *prometheus.CounterVec
	StagesResolved   *prometheus.CounterVec
	Restarts         prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		QuestionsEntered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "question_enter_total",
				Help:      "Total number of times a question was shown.",
			},
			[]string{"index"},
		),
		Answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "answers_total",
				Help:      "Total number of answers by question and choice.",
			},
			[]string{"index", "choice"},
		),
		StagesResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stages_resolved_total",
				Help:      "Total number of questionnaires that ended on a stage.",
			},
			[]string{"stage_id", "stage_name"},
		),
		Restarts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "restarts_total",
				Help:      "Total number of questionnaire restarts.",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.QuestionsEntered, m.Answers, m.StagesResolved, m.Restarts)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuestionEnter: func(e *domain.QuestionEvent) {
			m.QuestionsEntered.WithLabelValues(strconv.Itoa(e.Index)).Inc()
		},
		OnAnswer: func(e *domain.AnswerEvent) {
			m.Answers.WithLabelValues(strconv.Itoa(e.Index), e.Choice.String()).Inc()
		},
		OnStageResolved: func(e *domain.StageEvent) {
			m.StagesResolved.WithLabelValues(strconv.Itoa(e.Stage.ID), e.Stage.Name).Inc()
		},
		OnRestart: func(*domain.EventBase) {
			m.Restarts.Inc()
		},
	}
}
