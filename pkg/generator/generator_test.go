package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ormasoftchile/figmatest/pkg/extract"
	"github.com/ormasoftchile/figmatest/pkg/figma"
	"github.com/ormasoftchile/figmatest/pkg/steps"
)

func el(name, typ string, x, y int) extract.Element {
	return extract.Element{
		Name:        name,
		Type:        typ,
		Coordinates: extract.Coordinates{X: x, Y: y},
		Screen:      "Home",
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"":           ModeFixed,
		"fixed":      ModeFixed,
		" adaptive ": ModeAdaptive,
		"ai":         ModeAI,
		"creative":   ModeAI,
	}
	for in, want := range tests {
		if got := ParseMode(in); got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFixedInvariantUnderInput(t *testing.T) {
	want, _ := Fixed{}.Generate(context.Background(), nil, "")
	inputs := [][]extract.Element{
		{},
		{el("Splash", figma.TypeFrame, 540, 960)},
		{el("saved recipes btn", figma.TypeInstance, 100, 200), el("Profile", figma.TypeFrame, 0, 0)},
	}
	for _, in := range inputs {
		got, err := Fixed{}.Generate(context.Background(), in, "ignored")
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		if got != want {
			t.Errorf("Fixed output changed for input %v", in)
		}
	}
	if n := len(steps.Lines(want)); n != 8 {
		t.Errorf("fixed lines = %d, want 8", n)
	}
	if _, errs := steps.Validate(want); len(errs) != 0 {
		t.Errorf("fixed lines do not validate: %v", errs)
	}
}

func TestFixedLinesReturnsCopy(t *testing.T) {
	lines := FixedLines()
	lines[0] = "changed"
	if FixedLines()[0] == "changed" {
		t.Error("FixedLines exposed internal slice")
	}
}

func TestAdaptiveNoMatchesPadsWithFixed(t *testing.T) {
	got := (&Adaptive{}).Lines(nil)
	if diff := cmp.Diff(FixedLines(), got); diff != "" {
		t.Errorf("adaptive with no matches (-want +got):\n%s", diff)
	}
}

func TestAdaptiveUsesCoordinatesOrClick(t *testing.T) {
	elements := []extract.Element{
		el("Saved Recipes Tab", figma.TypeInstance, 300, 400),
		el("favorite recipes", figma.TypeGroup, 0, 500),
	}
	got := (&Adaptive{}).Lines(elements)
	want := []string{
		FixedLines()[0],
		FixedLines()[1],
		"NAVIGATE TO SAVED RECIPES FROM MENU, CLICK_COORDS, 300, 400, SLEEP, 2, CHECK, SAVED RECIPES",
		"OPEN MENU FROM SAVED RECIPES SCREEN, CLICK_COORDS, 74, 83, SLEEP, 2, CHECK, POPULAR RECIPES",
		"NAVIGATE TO FAVORITE RECIPES FROM MENU, CLICK, FAVORITE RECIPES, SLEEP, 2, CHECK, FAVORITE RECIPES",
		"OPEN MENU FROM FAVORITE RECIPES SCREEN, CLICK_COORDS, 74, 83, SLEEP, 2, CHECK, POPULAR RECIPES",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("adaptive lines (-want +got):\n%s", diff)
	}
}

func TestAdaptiveLineCountBounds(t *testing.T) {
	all := []extract.Element{
		el("saved recipes", figma.TypeFrame, 100, 200),
		el("favorite recipes", figma.TypeFrame, 100, 300),
		el("popular recipes", figma.TypeFrame, 100, 400),
		el("profile", figma.TypeFrame, 100, 500),
		el("settings", figma.TypeFrame, 100, 600),
	}
	for n := 0; n <= len(all); n++ {
		lines := (&Adaptive{}).Lines(all[:n])
		if len(lines) < steps.MinSteps || len(lines) > steps.MaxSteps {
			t.Errorf("%d matches: %d lines, want 6..8", n, len(lines))
		}
		if lines[0] != FixedLines()[0] || lines[1] != FixedLines()[1] {
			t.Errorf("%d matches: first lines differ from fixed", n)
		}
	}
}

func TestAdaptiveOnePadsToEight(t *testing.T) {
	lines := (&Adaptive{}).Lines([]extract.Element{el("Profile", figma.TypeFrame, 120, 300)})
	if len(lines) != 8 {
		t.Fatalf("lines = %d, want 8", len(lines))
	}
	if lines[4] != FixedLines()[2] {
		t.Errorf("line 5 = %q, want first fixed section line", lines[4])
	}
}

func TestBuildFallbackCases(t *testing.T) {
	elements := []extract.Element{
		el("Splash Screen", figma.TypeFrame, 540, 960),
		el("Home", figma.TypeFrame, 100, 200),
		el("menu btn", figma.TypeInstance, 74, 100),
		el("search btn", figma.TypeInstance, 900, 100),
		el("Login Button", figma.TypeInstance, 500, 1500),
	}
	got := BuildFallbackCases(elements)
	want := []string{
		"NAVIGATE FROM SPLASH TO HOME, CLICK_COORDS, 540, 960, SLEEP, 2, CHECK, HOME SCREEN",
		"NAVIGATE TO HOME SCREEN, CLICK_COORDS, 100, 200, SLEEP, 2, CHECK, HOME VIEW",
		"OPEN MENU FROM HOME, CLICK_COORDS, 74, 100, SLEEP, 2, CHECK, MENU OPEN",
		"TAP SEARCH BUTTON, CLICK, SEARCH BTN, SLEEP, 2, CHECK, SEARCH SCREEN",
		"Interact with Login Button, CLICK, Login Button, SLEEP, 2, CHECK, LOGIN BUTTON",
		"Navigate to main screen, CLICK_COORDS, 540, 960, SLEEP, 2, CHECK, MAIN SCREEN",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fallback cases (-want +got):\n%s", diff)
	}
}

func TestBuildFallbackCasesDefaultsOnly(t *testing.T) {
	got := BuildFallbackCases([]extract.Element{el("Card", figma.TypeGroup, 200, 300)})
	if diff := cmp.Diff(fallbackDefaults, got); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}
}

func TestBuildFallbackCasesCaps(t *testing.T) {
	var elements []extract.Element
	elements = append(elements, el("splash", figma.TypeFrame, 1, 1), el("home", figma.TypeFrame, 1, 1))
	for _, n := range []string{"a btn", "b btn", "c btn", "d btn", "e btn"} {
		elements = append(elements, el(n, figma.TypeInstance, 1, 1))
	}
	got := BuildFallbackCases(elements)
	buttons := 0
	for _, l := range got {
		if strings.HasPrefix(l, "Interact with") {
			buttons++
		}
	}
	if buttons != 3 {
		t.Errorf("button lines = %d, want 3", buttons)
	}
	if len(got) > steps.MaxSteps {
		t.Errorf("lines = %d, want <= 8", len(got))
	}
}

func TestBuildFallbackCasesScansFirstTen(t *testing.T) {
	var elements []extract.Element
	for i := 0; i < 10; i++ {
		elements = append(elements, el("card", figma.TypeGroup, 1, 1))
	}
	elements = append(elements, el("late btn", figma.TypeInstance, 1, 1))
	for _, l := range BuildFallbackCases(elements) {
		if strings.Contains(l, "late btn") {
			t.Errorf("button beyond the first ten was used: %q", l)
		}
	}
}
