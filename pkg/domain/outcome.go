package domain

// Outcome is the result of answering the current question.
// Exactly one of Question or Stage is set.
type Outcome struct {
	// Question is set when the answer continued to another question.
	Question *Question
	// Stage is set when the answer resolved the questionnaire.
	Stage *Stage
}

// NextQuestion builds an Outcome that continues to q.
func NextQuestion(q Question) Outcome {
	return Outcome{Question: &q}
}

// Resolved builds an Outcome that ends on stage.
func Resolved(stage Stage) Outcome {
	return Outcome{Stage: &stage}
}

// IsResolved reports whether the outcome is a terminal stage.
func (o Outcome) IsResolved() bool {
	return o.Stage != nil
}
