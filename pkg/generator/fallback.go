package generator

import (
	"fmt"
	"strings"

	"github.com/ormasoftchile/figmatest/pkg/extract"
	"github.com/ormasoftchile/figmatest/pkg/figma"
	"github.com/ormasoftchile/figmatest/pkg/steps"
)

var fallbackDefaults = []string{
	"Navigate to main screen, CLICK_COORDS, 540, 960, SLEEP, 2, CHECK, MAIN SCREEN",
	"Open navigation menu, CLICK_COORDS, 74, 83, SLEEP, 2, CHECK, MENU",
	"Access user profile, CLICK, profile, SLEEP, 2, CHECK, PROFILE",
	"Return to home, CLICK, home, SLEEP, 2, CHECK, HOME",
}

const (
	fallbackButtonScan  = 10
	fallbackButtonLimit = 3
)

// BuildFallbackCases derives lines directly from well-known element names
// when a completion could not be salvaged. It returns at most steps.MaxSteps
// lines; with only the generic defaults available it may return fewer than
// steps.MinSteps.
func BuildFallbackCases(elements []extract.Element) []string {
	var (
		lines []string
		skip  = map[int]bool{}
	)

	if i := indexOf(elements, func(e extract.Element) bool {
		return nameHas(e, "splash") && e.Type == figma.TypeFrame
	}); i >= 0 {
		c := elements[i].Coordinates
		lines = append(lines, fmt.Sprintf("NAVIGATE FROM SPLASH TO HOME, CLICK_COORDS, %d, %d, SLEEP, 2, CHECK, HOME SCREEN", c.X, c.Y))
	}
	if i := indexOf(elements, func(e extract.Element) bool {
		return nameHas(e, "home") && e.Type == figma.TypeFrame
	}); i >= 0 {
		c := elements[i].Coordinates
		lines = append(lines, fmt.Sprintf("NAVIGATE TO HOME SCREEN, CLICK_COORDS, %d, %d, SLEEP, 2, CHECK, HOME VIEW", c.X, c.Y))
	}
	if i := indexOf(elements, func(e extract.Element) bool {
		return nameHas(e, "menu") && nameHas(e, "btn")
	}); i >= 0 {
		c := elements[i].Coordinates
		lines = append(lines, fmt.Sprintf("OPEN MENU FROM HOME, CLICK_COORDS, %d, %d, SLEEP, 2, CHECK, MENU OPEN", c.X, c.Y))
		skip[i] = true
	}
	if i := indexOf(elements, func(e extract.Element) bool {
		return nameHas(e, "search") && nameHas(e, "btn")
	}); i >= 0 {
		lines = append(lines, fmt.Sprintf("TAP SEARCH BUTTON, CLICK, %s, SLEEP, 2, CHECK, SEARCH SCREEN", strings.ToUpper(elements[i].Name)))
		skip[i] = true
	}

	buttons := 0
	for i, e := range elements {
		if i >= fallbackButtonScan || buttons >= fallbackButtonLimit {
			break
		}
		if skip[i] || !(nameHas(e, "btn") || nameHas(e, "button")) {
			continue
		}
		lines = append(lines, fmt.Sprintf("Interact with %s, CLICK, %s, SLEEP, 2, CHECK, %s", e.Name, e.Name, strings.ToUpper(e.Name)))
		buttons++
	}

	for _, d := range fallbackDefaults {
		if len(lines) >= steps.MinSteps {
			break
		}
		lines = append(lines, d)
	}
	return firstN(lines, steps.MaxSteps)
}

func nameHas(e extract.Element, sub string) bool {
	return strings.Contains(strings.ToLower(e.Name), sub)
}

func indexOf(elements []extract.Element, match func(extract.Element) bool) int {
	for i, e := range elements {
		if match(e) {
			return i
		}
	}
	return -1
}
