package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input   string
		want    Choice
		wantErr bool
	}{
		{input: "yes", want: Yes},
		{input: " Y ", want: Yes},
		{input: "TRUE", want: Yes},
		{input: "1", want: Yes},
		{input: "no", want: No},
		{input: "N", want: No},
		{input: "false", want: No},
		{input: "0", want: No},
		{input: "", wantErr: true},
		{input: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseChoice(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidChoice) {
					t.Fatalf("ParseChoice(%q) error = %v, want ErrInvalidChoice", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChoice(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseChoice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestChoiceJSON(t *testing.T) {
	var body struct {
		Choice Choice `json:"choice"`
	}
	if err := json.Unmarshal([]byte(`{"choice":"no"}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Choice != No {
		t.Errorf("Choice = %v, want no", body.Choice)
	}

	if err := json.Unmarshal([]byte(`{"choice":"perhaps"}`), &body); err == nil {
		t.Error("expected error for invalid choice")
	}

	out, _ := json.Marshal(body)
	if string(out) != `{"choice":"no"}` {
		t.Errorf("marshal = %s", out)
	}
}

func TestStageLinkAndSummary(t *testing.T) {
	s := Stage{ID: 4, Name: "Understand TFSA vs RRSP"}
	if got := s.Link(); got != "stages/stage4.html" {
		t.Errorf("Link() = %q", got)
	}
	want := "Based on your answers, you're currently at Stage 4 — Understand TFSA vs RRSP."
	if got := s.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
