// Package steps defines the test step record emitted by every generator,
// and the parsing, validation and repair of step text.
//
// A step is one comma-separated line:
//
//	DESCRIPTION, CLICK_COORDS, X, Y, SLEEP, SECONDS, CHECK, MARKER
//	DESCRIPTION, CLICK, TARGET, SLEEP, SECONDS, CHECK, MARKER
package steps

import (
	"fmt"
	"strconv"
	"strings"
)

// Action is the interaction a step performs.
type Action string

const (
	ActionClickCoords Action = "CLICK_COORDS"
	ActionClick       Action = "CLICK"
)

const (
	// MaxSteps is the most lines any generator returns.
	MaxSteps = 8
	// MinSteps is the fewest accepted lines for a completion to count as usable.
	MinSteps = 6

	// DefaultSleep is the settle time written into every reconstructed step.
	DefaultSleep = 2

	tokenSleep = "SLEEP"
	tokenCheck = "CHECK"
)

// Step is one parsed step record.
type Step struct {
	Description string `json:"description"`
	Action      Action `json:"action"`
	X           int    `json:"x,omitempty"`
	Y           int    `json:"y,omitempty"`
	Target      string `json:"target,omitempty"`
	Sleep       int    `json:"sleep"`
	Check       string `json:"check"`
}

// String renders the step in its canonical line form.
func (s Step) String() string {
	switch s.Action {
	case ActionClickCoords:
		return fmt.Sprintf("%s, %s, %d, %d, %s, %d, %s, %s",
			s.Description, s.Action, s.X, s.Y, tokenSleep, s.Sleep, tokenCheck, s.Check)
	default:
		return fmt.Sprintf("%s, %s, %s, %s, %d, %s, %s",
			s.Description, s.Action, s.Target, tokenSleep, s.Sleep, tokenCheck, s.Check)
	}
}

// Join renders steps as newline-separated lines.
func Join(steps []Step) string {
	lines := make([]string, len(steps))
	for i, s := range steps {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

// Lines splits step text into its non-blank lines.
func Lines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, strings.TrimSpace(l))
		}
	}
	return out
}

// Parse strictly parses one canonical step line. Field counts must match
// the action shape exactly.
func Parse(line string) (Step, error) {
	parts := splitFields(line)
	if len(parts) < 2 {
		return Step{}, fmt.Errorf("expected comma-separated fields, got %q", line)
	}

	s := Step{Description: parts[0], Action: Action(parts[1])}
	if s.Description == "" {
		return Step{}, fmt.Errorf("empty description")
	}

	var rest []string
	switch s.Action {
	case ActionClickCoords:
		if len(parts) != 8 {
			return Step{}, fmt.Errorf("%s step needs 8 fields, got %d", s.Action, len(parts))
		}
		x, err := strconv.Atoi(parts[2])
		if err != nil {
			return Step{}, fmt.Errorf("x coordinate %q is not an integer", parts[2])
		}
		y, err := strconv.Atoi(parts[3])
		if err != nil {
			return Step{}, fmt.Errorf("y coordinate %q is not an integer", parts[3])
		}
		if x < 0 || y < 0 {
			return Step{}, fmt.Errorf("coordinates %d,%d must be non-negative", x, y)
		}
		s.X, s.Y = x, y
		rest = parts[4:]
	case ActionClick:
		if len(parts) != 7 {
			return Step{}, fmt.Errorf("%s step needs 7 fields, got %d", s.Action, len(parts))
		}
		if parts[2] == "" {
			return Step{}, fmt.Errorf("empty click target")
		}
		s.Target = parts[2]
		rest = parts[3:]
	default:
		return Step{}, fmt.Errorf("unknown action %q, want %s or %s", parts[1], ActionClickCoords, ActionClick)
	}

	if rest[0] != tokenSleep {
		return Step{}, fmt.Errorf("expected %s, got %q", tokenSleep, rest[0])
	}
	sleep, err := strconv.Atoi(rest[1])
	if err != nil || sleep < 0 {
		return Step{}, fmt.Errorf("sleep duration %q is not a non-negative integer", rest[1])
	}
	s.Sleep = sleep
	if rest[2] != tokenCheck {
		return Step{}, fmt.Errorf("expected %s, got %q", tokenCheck, rest[2])
	}
	if rest[3] == "" {
		return Step{}, fmt.Errorf("empty check marker")
	}
	s.Check = rest[3]
	return s, nil
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
