package steps

import "fmt"

// ValidationError is a problem found in step text.
type ValidationError struct {
	Line     int    `json:"line"` // 1-based; 0 for whole-document problems
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (e *ValidationError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Validate checks every non-blank line of text against the canonical step
// shape and the document against the step-count bounds. Fewer than
// MinSteps lines is a warning; more than MaxSteps is an error.
func Validate(text string) ([]Step, []*ValidationError) {
	var (
		parsed []Step
		errs   []*ValidationError
	)
	lines := Lines(text)
	for i, line := range lines {
		s, err := Parse(line)
		if err != nil {
			errs = append(errs, &ValidationError{Line: i + 1, Message: err.Error(), Severity: "error"})
			continue
		}
		parsed = append(parsed, s)
	}

	switch {
	case len(lines) == 0:
		errs = append(errs, &ValidationError{Message: "no steps", Severity: "error"})
	case len(lines) > MaxSteps:
		errs = append(errs, &ValidationError{
			Message:  fmt.Sprintf("%d steps, at most %d allowed", len(lines), MaxSteps),
			Severity: "error",
		})
	case len(lines) < MinSteps:
		errs = append(errs, &ValidationError{
			Message:  fmt.Sprintf("%d steps, expected at least %d", len(lines), MinSteps),
			Severity: "warning",
		})
	}
	return parsed, errs
}

// HasErrors reports whether any entry has error severity.
func HasErrors(errs []*ValidationError) bool {
	for _, e := range errs {
		if e.Severity == "error" {
			return true
		}
	}
	return false
}
