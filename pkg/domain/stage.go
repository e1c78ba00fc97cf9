package domain

import "fmt"

// Stage is a financial-readiness category a user is classified into.
// Two stages may share an ID and differ only in Name; they are distinct values.
type Stage struct {
	ID   int    `json:"id" yaml:"id" mapstructure:"id"`
	Name string `json:"name" yaml:"name" mapstructure:"name"`
}

// Link returns the relative path of the stage detail page.
func (s Stage) Link() string {
	return fmt.Sprintf("stages/stage%d.html", s.ID)
}

// Summary returns the sentence shown when a user lands on this stage.
func (s Stage) Summary() string {
	return fmt.Sprintf("Based on your answers, you're currently at Stage %d — %s.", s.ID, s.Name)
}

// String implements fmt.Stringer.
func (s Stage) String() string {
	return fmt.Sprintf("Stage %d (%s)", s.ID, s.Name)
}
