package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ormasoftchile/figmatest/pkg/figma"
)

func box(x, y float64) *figma.Rect {
	return &figma.Rect{X: x, Y: y, Width: 10, Height: 10}
}

func onClick() []figma.Reaction {
	return []figma.Reaction{{Trigger: &figma.Trigger{Type: "ON_CLICK"}}}
}

func sampleFile() *figma.File {
	return &figma.File{
		Name: "Recipe App",
		Document: figma.Node{Type: figma.TypeDocument, Children: []figma.Node{
			{Name: "Page 1", Type: figma.TypeCanvas, Children: []figma.Node{
				{Name: "Splash", Type: figma.TypeFrame, AbsoluteBoundingBox: box(0, 0), Children: []figma.Node{
					{Name: "Logo", Type: figma.TypeText, AbsoluteBoundingBox: box(10, 10), Characters: "Yum"},
				}},
				{Name: "Home", Type: figma.TypeFrame, AbsoluteBoundingBox: box(400, 0), Children: []figma.Node{
					{Name: "menu btn", Type: "RECTANGLE", AbsoluteBoundingBox: box(26, 32), Reactions: onClick()},
					{Name: "Card", Type: figma.TypeGroup, AbsoluteBoundingBox: box(20, 300), Children: []figma.Node{
						{Name: "Saved Recipes", Type: figma.TypeText, AbsoluteBoundingBox: box(24, 304), Characters: "Saved Recipes"},
						{Name: "Inner", Type: figma.TypeFrame, AbsoluteBoundingBox: box(30, 310), Children: []figma.Node{
							{Name: "nav icon", Type: "VECTOR", AbsoluteBoundingBox: box(187.5, 406)},
						}},
					}},
					{Name: "Big Button", Type: "RECTANGLE"},
				}},
			}},
			{Type: figma.TypeCanvas, Children: []figma.Node{
				{Name: "Profile", Type: figma.TypeInstance, AbsoluteBoundingBox: box(75, 203)},
			}},
		}},
	}
}

func TestExtractOrderAndScreens(t *testing.T) {
	got := Extract(sampleFile())

	want := []Element{
		{Name: "Splash", Type: "FRAME", Coordinates: Coordinates{100, 200}, Screen: "Page 1", HasText: true},
		{Name: "Home", Type: "FRAME", Coordinates: Coordinates{1030, 200}, Screen: "Page 1", HasText: true},
		{Name: "menu btn", Type: "RECTANGLE", Coordinates: Coordinates{74, 100}, Screen: "Home", HasInteraction: true},
		{Name: "Card", Type: "GROUP", Coordinates: Coordinates{57, 709}, Screen: "Home", HasText: true},
		{Name: "Inner", Type: "FRAME", Coordinates: Coordinates{86, 733}, Screen: "Home"},
		{Name: "nav icon", Type: "VECTOR", Coordinates: Coordinates{540, 960}, Screen: "Inner"},
		{Name: "Profile", Type: "INSTANCE", Coordinates: Coordinates{216, 480}, Screen: "Unknown Page"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractEmpty(t *testing.T) {
	if got := Extract(&figma.File{Name: "empty"}); len(got) != 0 {
		t.Errorf("Extract(empty) = %v, want none", got)
	}
	if got := Extract(nil); got != nil {
		t.Errorf("Extract(nil) = %v, want nil", got)
	}
}

func TestIsInteractive(t *testing.T) {
	tests := []struct {
		node figma.Node
		want bool
	}{
		{figma.Node{Name: "x", Type: figma.TypeComponent}, true},
		{figma.Node{Name: "x", Type: figma.TypeInstance}, true},
		{figma.Node{Name: "x", Type: figma.TypeGroup}, true},
		{figma.Node{Name: "x", Type: figma.TypeFrame}, true},
		{figma.Node{Name: "Submit BUTTON", Type: "RECTANGLE"}, true},
		{figma.Node{Name: "Back Link", Type: "TEXT"}, true},
		{figma.Node{Name: "hero", Type: "RECTANGLE", Reactions: onClick()}, true},
		{figma.Node{Name: "hero", Type: "RECTANGLE"}, false},
		{figma.Node{Name: "Title", Type: figma.TypeText}, false},
	}
	for _, tt := range tests {
		if got := IsInteractive(&tt.node); got != tt.want {
			t.Errorf("IsInteractive(%q %s) = %v, want %v", tt.node.Name, tt.node.Type, got, tt.want)
		}
	}
}

func TestHasTextDeep(t *testing.T) {
	n := figma.Node{Type: figma.TypeGroup, Children: []figma.Node{
		{Type: figma.TypeGroup, Children: []figma.Node{
			{Type: "RECTANGLE", Characters: "deep"},
		}},
	}}
	if !HasText(&n) {
		t.Error("HasText should find characters in a grandchild")
	}
	if HasText(&figma.Node{Type: figma.TypeGroup}) {
		t.Error("empty group should have no text")
	}
}

func TestGroupByScreen(t *testing.T) {
	groups := GroupByScreen(Extract(sampleFile()))
	if len(groups["Home"]) != 3 {
		t.Errorf("Home = %d elements, want 3", len(groups["Home"]))
	}
	if len(groups["Page 1"]) != 2 {
		t.Errorf("Page 1 = %d elements, want 2", len(groups["Page 1"]))
	}
	if groups["Home"][0].Name != "menu btn" {
		t.Errorf("first Home element = %q, want menu btn", groups["Home"][0].Name)
	}
}

type fakeFetcher struct {
	file *figma.File
	err  error
	key  string
}

func (f *fakeFetcher) GetFile(_ context.Context, key string) (*figma.File, error) {
	f.key = key
	return f.file, f.err
}

func TestExtractorExtract(t *testing.T) {
	f := &fakeFetcher{file: sampleFile()}
	res, err := NewExtractor(f, nil).Extract(context.Background(), "KEY")
	if err != nil {
		t.Fatal(err)
	}
	if f.key != "KEY" {
		t.Errorf("fetched key = %q", f.key)
	}
	if res.FileName != "Recipe App" {
		t.Errorf("FileName = %q", res.FileName)
	}
	if res.TotalElements != len(res.Elements) || res.TotalElements != 7 {
		t.Errorf("TotalElements = %d, len = %d, want 7", res.TotalElements, len(res.Elements))
	}
}

func TestExtractorUnnamedFile(t *testing.T) {
	res, err := NewExtractor(&fakeFetcher{file: &figma.File{}}, nil).Extract(context.Background(), "k")
	if err != nil {
		t.Fatal(err)
	}
	if res.FileName != "Unknown File" {
		t.Errorf("FileName = %q, want Unknown File", res.FileName)
	}
}

func TestExtractorWrapsFetchError(t *testing.T) {
	apiErr := &figma.APIError{StatusCode: 404, Body: "Not found"}
	_, err := NewExtractor(&fakeFetcher{err: apiErr}, nil).Extract(context.Background(), "k")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "Failed to extract Figma elements: Figma API error: 404 - Not found") {
		t.Errorf("err = %q", err)
	}
	var target *figma.APIError
	if !errors.As(err, &target) {
		t.Error("wrapped error should unwrap to *figma.APIError")
	}
}
