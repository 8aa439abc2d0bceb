package extract

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter keeps the elements for which the boolean expression holds.
// Expressions use expr-lang syntax over the fields
// name, type, screen, x, y, has_interaction and has_text, e.g.
//
//	has_interaction && screen == "Home"
//	type in ["INSTANCE", "COMPONENT"] and y < 400
//
// An empty expression keeps everything.
func Filter(elements []Element, expression string) ([]Element, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return elements, nil
	}

	program, err := compileFilter(expression)
	if err != nil {
		return nil, err
	}

	var kept []Element
	for _, e := range elements {
		out, err := expr.Run(program, filterEnv(e))
		if err != nil {
			return nil, fmt.Errorf("eval filter %q on %q: %w", expression, e.Name, err)
		}
		ok, isBool := out.(bool)
		if !isBool {
			return nil, fmt.Errorf("filter %q did not return bool (got %T: %v)", expression, out, out)
		}
		if ok {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

func compileFilter(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(filterEnv(Element{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	return program, nil
}

func filterEnv(e Element) map[string]any {
	return map[string]any{
		"name":            e.Name,
		"type":            e.Type,
		"screen":          e.Screen,
		"x":               e.Coordinates.X,
		"y":               e.Coordinates.Y,
		"has_interaction": e.HasInteraction,
		"has_text":        e.HasText,
	}
}
