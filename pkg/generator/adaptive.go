package generator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ormasoftchile/figmatest/pkg/extract"
	"github.com/ormasoftchile/figmatest/pkg/steps"
)

// adaptivePhrases are looked up, in order, against lower-cased element names.
var adaptivePhrases = []string{
	"saved recipes",
	"favorite recipes",
	"popular recipes",
	"profile",
	"settings",
}

// Adaptive builds a navigation sequence from sections it can find by name,
// padded with the fixed section lines when too few are found.
type Adaptive struct {
	Logger *zap.Logger
}

// Generate implements Generator. It never fails.
func (a *Adaptive) Generate(_ context.Context, elements []extract.Element, _ string) (string, error) {
	return strings.Join(a.Lines(elements), "\n"), nil
}

// Lines returns the adaptive sequence as individual lines.
func (a *Adaptive) Lines(elements []extract.Element) []string {
	log := a.logger()
	if ce := log.Check(zap.DebugLevel, "grouped elements by screen"); ce != nil {
		groups := extract.GroupByScreen(elements)
		counts := make(map[string]int, len(groups))
		for screen, els := range groups {
			counts[screen] = len(els)
		}
		ce.Write(zap.Any("screens", counts))
	}

	lines := []string{fixedLines[0], fixedLines[1]}
	for _, phrase := range adaptivePhrases {
		el, ok := findByName(elements, phrase)
		if !ok {
			continue
		}
		section := strings.ToUpper(phrase)
		if el.Coordinates.Positive() {
			lines = append(lines, fmt.Sprintf("NAVIGATE TO %s FROM MENU, CLICK_COORDS, %d, %d, SLEEP, 2, CHECK, %s",
				section, el.Coordinates.X, el.Coordinates.Y, section))
		} else {
			lines = append(lines, fmt.Sprintf("NAVIGATE TO %s FROM MENU, CLICK, %s, SLEEP, 2, CHECK, %s",
				section, section, section))
		}
		lines = append(lines, fmt.Sprintf("OPEN MENU FROM %s SCREEN, CLICK_COORDS, %s, SLEEP, 2, CHECK, POPULAR RECIPES",
			section, menuCoords))
	}

	if len(lines) < steps.MinSteps {
		for _, l := range fixedLines[2:] {
			if len(lines) >= steps.MaxSteps {
				break
			}
			lines = append(lines, l)
		}
	}

	log.Debug("adaptive sequence built", zap.Int("lines", len(lines)))
	return firstN(lines, steps.MaxSteps)
}

func (a *Adaptive) logger() *zap.Logger {
	if a == nil || a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func findByName(elements []extract.Element, phrase string) (extract.Element, bool) {
	for _, e := range elements {
		if strings.Contains(strings.ToLower(e.Name), phrase) {
			return e, true
		}
	}
	return extract.Element{}, false
}
