package generator

import (
	"context"
	"strings"

	"github.com/ormasoftchile/figmatest/pkg/extract"
)

const (
	splashCoords = "540, 960"
	menuCoords   = "74, 83"
)

var fixedLines = []string{
	"NAVIGATE FROM SPLASH TO HOME, CLICK_COORDS, " + splashCoords + ", SLEEP, 2, CHECK, POPULAR RECIPES",
	"OPEN MENU FROM HOME, CLICK_COORDS, " + menuCoords + ", SLEEP, 2, CHECK, POPULAR RECIPES",
	"NAVIGATE TO SAVED RECIPES FROM MENU, CLICK, SAVED RECIPES, SLEEP, 2, CHECK, SAVED RECIPES",
	"OPEN MENU FROM SAVED SCREEN, CLICK_COORDS, " + menuCoords + ", SLEEP, 2, CHECK, POPULAR RECIPES",
	"NAVIGATE TO FAVORITE RECIPES FROM MENU, CLICK, FAVORITE RECIPES, SLEEP, 2, CHECK, FAVORITE RECIPES",
	"OPEN MENU FROM FAVORITE SCREEN, CLICK_COORDS, " + menuCoords + ", SLEEP, 2, CHECK, POPULAR RECIPES",
	"NAVIGATE TO POPULAR RECIPES FROM MENU, CLICK, POPULAR RECIPES, SLEEP, 2, CHECK, POPULAR RECIPES",
	"OPEN MENU FROM HOME FINAL, CLICK_COORDS, " + menuCoords + ", SLEEP, 2, CHECK, POPULAR RECIPES",
}

// FixedLines returns a copy of the canonical splash, home, menu and
// saved/favorite/popular navigation sequence.
func FixedLines() []string {
	return append([]string(nil), fixedLines...)
}

// Fixed ignores its input and always returns the canonical sequence.
type Fixed struct{}

// Generate implements Generator.
func (Fixed) Generate(context.Context, []extract.Element, string) (string, error) {
	return strings.Join(fixedLines, "\n"), nil
}
