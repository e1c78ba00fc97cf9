package observability

import (
	"log/slog"

	"github.com/aretw0/ucanfire/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one structured record per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuestionEnter: func(e *domain.QuestionEvent) {
			logger.Debug(string(e.Type), "index", e.Index, "headline", e.Headline)
		},
		OnAnswer: func(e *domain.AnswerEvent) {
			logger.Info(string(e.Type), "index", e.Index, "choice", e.Choice.String())
		},
		OnStageResolved: func(e *domain.StageEvent) {
			logger.Info(string(e.Type),
				"index", e.Index,
				"stage_id", e.Stage.ID,
				"stage_name", e.Stage.Name,
			)
		},
		OnRestart: func(e *domain.EventBase) {
			logger.Info(string(e.Type))
		},
	}
}
