package figma

// File is the subset of the GET /v1/files/{key} response we consume.
type File struct {
	Name         string `json:"name"`
	LastModified string `json:"lastModified,omitempty"`
	Version      string `json:"version,omitempty"`
	Document     Node   `json:"document"`
}

// Node is one element of the document tree. The document root's children are
// pages (CANVAS nodes); everything below a page is a layer.
type Node struct {
	ID                  string     `json:"id,omitempty"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	Children            []Node     `json:"children,omitempty"`
	AbsoluteBoundingBox *Rect      `json:"absoluteBoundingBox,omitempty"`
	Reactions           []Reaction `json:"reactions,omitempty"`
	Characters          string     `json:"characters,omitempty"`
}

// Rect is an absolute bounding box in canvas units.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Reaction is a prototype interaction declared on a node.
type Reaction struct {
	Trigger *Trigger `json:"trigger,omitempty"`
	Action  *Action  `json:"action,omitempty"`
}

// Trigger is the user event that fires a reaction (ON_CLICK, ON_HOVER, ...).
type Trigger struct {
	Type string `json:"type"`
}

// Action is what a reaction does when triggered.
type Action struct {
	Type          string `json:"type"`
	DestinationID string `json:"destinationId,omitempty"`
	Navigation    string `json:"navigation,omitempty"`
}

// Node types referenced by the extractor.
const (
	TypeDocument  = "DOCUMENT"
	TypeCanvas    = "CANVAS"
	TypeFrame     = "FRAME"
	TypeGroup     = "GROUP"
	TypeComponent = "COMPONENT"
	TypeInstance  = "INSTANCE"
	TypeText      = "TEXT"
)

// HasReactions reports whether the node declares any prototype interaction.
func (n *Node) HasReactions() bool {
	return len(n.Reactions) > 0
}
