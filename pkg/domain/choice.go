package domain

import (
	"fmt"
	"strings"
)

// Choice is the answer to a yes/no question.
type Choice int

const (
	Yes Choice = iota
	No
)

// String returns the canonical lower-case form ("yes" or "no").
func (c Choice) String() string {
	switch c {
	case Yes:
		return "yes"
	case No:
		return "no"
	}
	return fmt.Sprintf("Choice(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Choice) MarshalText() ([]byte, error) {
	if c != Yes && c != No {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChoice, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Choice) UnmarshalText(text []byte) error {
	parsed, err := ParseChoice(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseChoice converts free text into a Choice.
// It accepts y/yes/true/1 and n/no/false/0, case-insensitively.
func ParseChoice(input string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes", "true", "1":
		return Yes, nil
	case "n", "no", "false", "0":
		return No, nil
	}
	return 0, fmt.Errorf("%w: '%s' (expected y/n/yes/no)", ErrInvalidChoice, input)
}
