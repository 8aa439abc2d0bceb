package steps

import (
	"fmt"
	"strconv"
	"strings"
)

// placeholderDescriptions are header-ish descriptions models echo back from
// format examples instead of describing the step.
var placeholderDescriptions = map[string]bool{
	"DESCRIPTION": true,
	"TEST CASE":   true,
	"STEP":        true,
}

// EnforceStrictFormat salvages step records from free-form completion text.
//
// Lines are upper-cased; blank lines, headings, code fences and bullet
// lines are dropped and emphasis markers stripped. A line is kept only when
// it has at least 6 comma-separated fields, a CLICK_COORDS or CLICK action,
// and both SLEEP and CHECK tokens. Kept lines are rebuilt in canonical form
// with a sleep of DefaultSleep. The caller decides what count is enough.
func EnforceStrictFormat(raw string) []Step {
	var out []Step
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.ToUpper(strings.TrimSpace(line))
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "```") || strings.HasPrefix(line, "*") {
			continue
		}
		line = strings.ReplaceAll(line, "**", "")
		line = strings.TrimSpace(strings.ReplaceAll(line, "*", ""))

		if !strings.Contains(line, ",") {
			continue
		}
		parts := splitFields(line)
		if len(parts) < MinSteps {
			continue
		}
		if s, ok := reconstruct(line, parts); ok {
			out = append(out, s)
		}
	}
	return out
}

func reconstruct(line string, parts []string) (Step, bool) {
	action := Action(parts[1])
	if action != ActionClickCoords && action != ActionClick {
		return Step{}, false
	}
	if !strings.Contains(line, tokenSleep) || !strings.Contains(line, tokenCheck) {
		return Step{}, false
	}

	s := Step{Description: parts[0], Action: action, Sleep: DefaultSleep}
	switch action {
	case ActionClickCoords:
		x, errX := strconv.Atoi(parts[2])
		y, errY := strconv.Atoi(parts[3])
		if errX != nil || errY != nil || x < 0 || y < 0 {
			return Step{}, false
		}
		s.X, s.Y = x, y
		s.Check = markerAfterCheck(parts[4:], "SCREEN")
		if placeholderDescriptions[s.Description] || s.Description == "" {
			s.Description = fmt.Sprintf("NAVIGATE TO COORDINATES %d,%d", x, y)
		}
	case ActionClick:
		target := parts[2]
		if target == "" || target == tokenSleep || target == tokenCheck {
			return Step{}, false
		}
		s.Target = target
		s.Check = markerAfterCheck(parts[3:], target+" SCREEN")
		if placeholderDescriptions[s.Description] || s.Description == "" {
			s.Description = fmt.Sprintf("TAP %s BUTTON", target)
		}
	}
	return s, true
}

// markerAfterCheck returns the field following the CHECK token, or fallback.
func markerAfterCheck(parts []string, fallback string) string {
	for i, p := range parts {
		if p == tokenCheck && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1]
		}
	}
	return fallback
}
