// Package svgmap reads the subset of SVG a world map uses: the root viewBox and size,
// inherited presentation styles, and every <path> in document order.
package svgmap

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// ViewBox is the user coordinate rectangle of the document.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// Document is a parsed SVG map. Paths keep source order; that order is the country identity.
type Document struct {
	ViewBox ViewBox
	// Width and Height are the output size in pixels. They fall back to the viewBox size.
	Width, Height float64
	// Style is the resolved root style (what a path inherits when it sets nothing).
	Style Style
	Paths []Path
}

// Path is one <path> element with its resolved style and parsed geometry.
type Path struct {
	ID    string
	Name  string
	D     string
	Style Style
	Cmds  []Segment
}

// elements whose children are never painted directly.
var skipElements = map[string]bool{
	"defs":     true,
	"clipPath": true,
	"mask":     true,
	"symbol":   true,
	"pattern":  true,
	"marker":   true,
}

type frame struct {
	name  string
	style Style
	skip  bool
	path  int // index into doc.Paths when name == "path", else -1
}

// Parse reads an SVG document. Malformed XML or path data is an error; the map is a
// startup precondition so callers should not try to render a partial document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	l := xml.NewLexer(parse.NewInputBytes(data))

	var stack []frame
	var tag string
	attrs := map[string]string{}
	inTitle := false
	sawRoot := false

	top := func() frame {
		if len(stack) == 0 {
			return frame{style: Style{}, path: -1}
		}
		return stack[len(stack)-1]
	}

	open := func(void bool) error {
		parent := top()
		f := frame{name: tag, path: -1, skip: parent.skip || skipElements[tag]}
		f.style = parseStyle(attrs).inherit(parent.style)

		switch tag {
		case "svg":
			if !sawRoot {
				sawRoot = true
				if err := doc.readRoot(attrs); err != nil {
					return err
				}
				doc.Style = f.style.resolved()
			}
		case "path":
			if !f.skip {
				p, err := newPath(attrs, f.style)
				if err != nil {
					return err
				}
				doc.Paths = append(doc.Paths, p)
				f.path = len(doc.Paths) - 1
			}
		case "title":
			inTitle = true
		}
		if !void {
			stack = append(stack, f)
		} else if tag == "title" {
			inTitle = false
		}
		return nil
	}

	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if errors.Is(l.Err(), io.EOF) {
				if !sawRoot {
					return nil, fmt.Errorf("svgmap: no <svg> root element")
				}
				return doc, nil
			}
			return nil, fmt.Errorf("svgmap: %w", l.Err())
		case xml.StartTagToken:
			tag = localName(l.Text())
			attrs = map[string]string{}
		case xml.AttributeToken:
			attrs[localName(l.Text())] = unquote(l.AttrVal())
		case xml.StartTagCloseToken:
			if err := open(false); err != nil {
				return nil, err
			}
		case xml.StartTagCloseVoidToken:
			if err := open(true); err != nil {
				return nil, err
			}
		case xml.EndTagToken:
			if len(stack) == 0 {
				continue
			}
			if stack[len(stack)-1].name == "title" {
				inTitle = false
			}
			stack = stack[:len(stack)-1]
		case xml.TextToken:
			if !inTitle || len(stack) < 2 {
				continue
			}
			// <path><title>Name</title></path>
			owner := stack[len(stack)-2]
			if owner.path >= 0 && doc.Paths[owner.path].Name == "" {
				doc.Paths[owner.path].Name = strings.TrimSpace(html.UnescapeString(string(data)))
			}
		}
	}
}

// readRoot takes viewBox, width and height from the outermost <svg>.
func (doc *Document) readRoot(attrs map[string]string) error {
	if vb, ok := attrs["viewBox"]; ok {
		nums, err := parseNumberList(vb)
		if err != nil || len(nums) != 4 {
			return fmt.Errorf("svgmap: bad viewBox %q", vb)
		}
		doc.ViewBox = ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}
	}
	doc.Width = parseLength(attrs["width"])
	doc.Height = parseLength(attrs["height"])
	if doc.ViewBox.Width == 0 || doc.ViewBox.Height == 0 {
		doc.ViewBox.Width, doc.ViewBox.Height = doc.Width, doc.Height
	}
	if doc.Width == 0 {
		doc.Width = doc.ViewBox.Width
	}
	if doc.Height == 0 {
		doc.Height = doc.ViewBox.Height
	}
	return nil
}

func newPath(attrs map[string]string, style Style) (Path, error) {
	p := Path{
		ID:    attrs["id"],
		D:     attrs["d"],
		Style: style.resolved(),
		Name:  attrs["data-name"],
	}
	if p.Name == "" {
		p.Name = attrs["name"]
	}
	if p.Name == "" {
		p.Name = attrs["title"]
	}
	cmds, err := ParsePathData(p.D)
	if err != nil {
		return Path{}, fmt.Errorf("svgmap: path %q: %w", p.ID, err)
	}
	p.Cmds = cmds
	return p, nil
}

// localName drops a namespace prefix ("svg:path" -> "path").
func localName(b []byte) string {
	if i := bytes.IndexByte(b, ':'); i >= 0 {
		return string(b[i+1:])
	}
	return string(b)
}

func unquote(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) >= 2 && (b[0] == '"' || b[0] == '\'') && b[len(b)-1] == b[0] {
		b = b[1 : len(b)-1]
	}
	return html.UnescapeString(string(b))
}
