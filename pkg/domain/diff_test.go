package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	stage1 := Stage{ID: 1, Name: "Stabilize Your Base (Mini Emergency Fund)"}
	stage6a := Stage{ID: 6, Name: "Continue Refining Your Long-Term Plan"}
	stage6b := Stage{ID: 6, Name: "Long-Term Freedom & FI Basics"}

	tests := []struct {
		name           string
		old            *State
		new            *State
		wantNil        bool
		wantIndex      *int
		wantResolved   *Stage
		wantTerminated *bool
	}{
		{
			name:      "Initial Load (Old is Nil)",
			old:       nil,
			new:       &State{SessionID: "sess-1"},
			wantIndex: ptr(0),
		},
		{
			name:    "No Changes",
			old:     &State{SessionID: "sess-1", QuestionIndex: 2},
			new:     &State{SessionID: "sess-1", QuestionIndex: 2},
			wantNil: true,
		},
		{
			name:      "Question Advanced",
			old:       &State{SessionID: "sess-1", QuestionIndex: 0},
			new:       &State{SessionID: "sess-1", QuestionIndex: 1},
			wantIndex: ptr(1),
		},
		{
			name:           "Resolved Without Moving",
			old:            &State{SessionID: "sess-1"},
			new:            &State{SessionID: "sess-1", Resolved: &stage1},
			wantResolved:   &stage1,
			wantTerminated: ptr(true),
		},
		{
			name:           "Restart Clears Result",
			old:            &State{SessionID: "sess-1", QuestionIndex: 0, Resolved: &stage1},
			new:            &State{SessionID: "sess-1"},
			wantTerminated: ptr(false),
		},
		{
			name:         "Same Stage ID Different Name",
			old:          &State{SessionID: "sess-1", QuestionIndex: 5, Resolved: &stage6a},
			new:          &State{SessionID: "sess-1", QuestionIndex: 5, Resolved: &stage6b},
			wantResolved: &stage6b,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Diff() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Diff() = nil, want a diff")
			}
			if got.SessionID != tt.new.SessionID {
				t.Errorf("Diff().SessionID = %v, want %v", got.SessionID, tt.new.SessionID)
			}
			if !equalPtr(got.QuestionIndex, tt.wantIndex) {
				t.Errorf("Diff().QuestionIndex = %v, want %v", got.QuestionIndex, tt.wantIndex)
			}
			if !equalPtr(got.Resolved, tt.wantResolved) {
				t.Errorf("Diff().Resolved = %v, want %v", got.Resolved, tt.wantResolved)
			}
			if !equalPtr(got.Terminated, tt.wantTerminated) {
				t.Errorf("Diff().Terminated = %v, want %v", got.Terminated, tt.wantTerminated)
			}
		})
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	diff := Diff(&State{SessionID: "s"}, &State{SessionID: "s", QuestionIndex: 3})
	if diff == nil {
		t.Fatal("Expected diff, got nil")
	}

	bytes, _ := json.Marshal(diff)
	if strings.Contains(string(bytes), `"resolved"`) {
		t.Errorf("JSON should not contain 'resolved' when unchanged, got: %s", string(bytes))
	}
	if !strings.Contains(string(bytes), `"question_index":3`) {
		t.Errorf("JSON should contain the new index, got: %s", string(bytes))
	}
}

func ptr[T any](v T) *T {
	return &v
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
