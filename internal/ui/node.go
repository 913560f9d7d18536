package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, etc. It has optional class and id for CSS matching,
// bounds (position and size), and optional text for labels.
// Bounds are relative to Parent when set, otherwise to the screen. The stylesheet
// overrides position and size only for the properties it declares.
type Node struct {
	Type   string // "panel", "label", etc.
	Class  string // e.g. "menu" for .menu
	ID     string // e.g. "main" for #main
	Bounds rl.Rectangle
	Text   string // for label-type nodes
	Parent *Node
	// Swatch, when set, draws a small colour sample at the right end of the node.
	Swatch *color.RGBA

	placed rl.Rectangle // screen rectangle from the last Draw
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:  typ,
		Class: class,
		ID:    id,
		Text:  text,
	}
}
