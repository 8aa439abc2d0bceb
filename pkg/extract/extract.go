// Package extract walks a Figma document tree and produces a flat, ordered
// list of the interactive elements a navigation test can target.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ormasoftchile/figmatest/pkg/figma"
	"go.uber.org/zap"
)

const (
	unknownScreen = "Unknown"
	unknownPage   = "Unknown Page"
	unknownFile   = "Unknown File"
)

// interactiveTypes are node types that always count as tappable.
var interactiveTypes = map[string]bool{
	figma.TypeComponent: true,
	figma.TypeInstance:  true,
	figma.TypeFrame:     true,
	figma.TypeGroup:     true,
}

// interactiveKeywords mark a node as tappable when found in its lower-cased name.
var interactiveKeywords = []string{"button", "btn", "menu", "nav", "click", "tap", "link", "icon"}

// Element is one detected interactive node.
type Element struct {
	Name           string      `json:"name"`
	Type           string      `json:"type"`
	Coordinates    Coordinates `json:"coordinates"`
	Screen         string      `json:"screen"`
	HasInteraction bool        `json:"has_interaction"`
	HasText        bool        `json:"has_text"`
}

// Result is the outcome of extracting one file.
type Result struct {
	FileName      string    `json:"file_name"`
	Elements      []Element `json:"elements"`
	TotalElements int       `json:"total_elements"`
}

// Extract returns the interactive elements of file in traversal order:
// for each page, for each page child, depth-first pre-order.
func Extract(file *figma.File) []Element {
	if file == nil {
		return nil
	}
	var out []Element
	for _, page := range file.Document.Children {
		screen := page.Name
		if screen == "" {
			screen = unknownPage
		}
		for i := range page.Children {
			out = walk(&page.Children[i], screen, out)
		}
	}
	return out
}

// walk appends node and its qualifying descendants to out. Only FRAME
// nodes open a new screen scope for their children.
func walk(node *figma.Node, screen string, out []Element) []Element {
	if node.AbsoluteBoundingBox != nil && IsInteractive(node) {
		box := node.AbsoluteBoundingBox
		out = append(out, Element{
			Name:           node.Name,
			Type:           node.Type,
			Coordinates:    SynthesizeCoordinates(box.X, box.Y),
			Screen:         screen,
			HasInteraction: node.HasReactions(),
			HasText:        HasText(node),
		})
	}

	childScreen := screen
	if node.Type == figma.TypeFrame {
		childScreen = node.Name
	}
	for i := range node.Children {
		out = walk(&node.Children[i], childScreen, out)
	}
	return out
}

// IsInteractive applies the type, name-keyword and reaction tests. It does
// not check for a bounding box.
func IsInteractive(node *figma.Node) bool {
	if interactiveTypes[node.Type] {
		return true
	}
	lower := strings.ToLower(node.Name)
	for _, kw := range interactiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return node.HasReactions()
}

// HasText reports whether node or any descendant carries literal text.
func HasText(node *figma.Node) bool {
	if node.Type == figma.TypeText || node.Characters != "" {
		return true
	}
	for i := range node.Children {
		if HasText(&node.Children[i]) {
			return true
		}
	}
	return false
}

// GroupByScreen buckets elements by their screen, preserving order within each bucket.
func GroupByScreen(elements []Element) map[string][]Element {
	screens := make(map[string][]Element)
	for _, e := range elements {
		s := e.Screen
		if s == "" {
			s = unknownScreen
		}
		screens[s] = append(screens[s], e)
	}
	return screens
}

// FileFetcher retrieves a design file by key.
type FileFetcher interface {
	GetFile(ctx context.Context, fileKey string) (*figma.File, error)
}

// Extractor fetches a file and extracts its elements.
type Extractor struct {
	Files  FileFetcher
	Logger *zap.Logger
}

// NewExtractor creates an Extractor over files.
func NewExtractor(files FileFetcher, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{Files: files, Logger: logger}
}

// Extract fetches fileKey and returns its elements. Every failure is
// wrapped so callers see a single "failed to extract" cause chain.
func (x *Extractor) Extract(ctx context.Context, fileKey string) (*Result, error) {
	file, err := x.Files.GetFile(ctx, fileKey)
	if err != nil {
		return nil, fmt.Errorf("Failed to extract Figma elements: %w", err)
	}

	elements := Extract(file)
	name := file.Name
	if name == "" {
		name = unknownFile
	}

	x.Logger.Info("extracted elements",
		zap.String("file_key", fileKey),
		zap.String("file_name", name),
		zap.Int("elements", len(elements)))

	return &Result{
		FileName:      name,
		Elements:      elements,
		TotalElements: len(elements),
	}, nil
}
