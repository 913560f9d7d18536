package svgmap

import (
	"bytes"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// Paint value meaning "do not paint".
const None = "none"

// Style holds the inheritable presentation properties the map uses.
// Empty strings and a zero StrokeWidth mean "inherit from the parent".
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// inherit fills unset properties from parent.
func (s Style) inherit(parent Style) Style {
	if s.Fill == "" {
		s.Fill = parent.Fill
	}
	if s.Stroke == "" {
		s.Stroke = parent.Stroke
	}
	if s.StrokeWidth == 0 {
		s.StrokeWidth = parent.StrokeWidth
	}
	return s
}

// resolved applies SVG initial values to anything still unset.
func (s Style) resolved() Style {
	return s.inherit(Style{Fill: "#000000", Stroke: None, StrokeWidth: 1})
}

// parseStyle reads presentation attributes, then the inline style attribute which wins.
func parseStyle(attrs map[string]string) Style {
	var s Style
	s.set("fill", attrs["fill"])
	s.set("stroke", attrs["stroke"])
	s.set("stroke-width", attrs["stroke-width"])
	if inline, ok := attrs["style"]; ok {
		for k, v := range ParseInlineStyle(inline) {
			s.set(k, v)
		}
	}
	return s
}

func (s *Style) set(prop, value string) {
	value = strings.TrimSpace(value)
	if value == "" || value == "inherit" {
		return
	}
	switch prop {
	case "fill":
		s.Fill = strings.ToLower(value)
	case "stroke":
		s.Stroke = strings.ToLower(value)
	case "stroke-width":
		if w := parseLength(value); w > 0 {
			s.StrokeWidth = w
		}
	}
}

// ParseInlineStyle parses a style attribute body ("fill:#fff; stroke:none") into a map.
func ParseInlineStyle(body string) map[string]string {
	out := map[string]string{}
	p := css.NewParser(parse.NewInputBytes([]byte(body)), true)
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			return out
		}
		if gt != css.DeclarationGrammar {
			continue
		}
		var val bytes.Buffer
		for _, tok := range p.Values() {
			val.Write(tok.Data)
		}
		out[strings.ToLower(string(data))] = strings.TrimSpace(val.String())
	}
}

// parseLength reads a number with an optional px unit. Other units and percentages give 0.
func parseLength(s string) float64 {
	b := []byte(strings.TrimSpace(s))
	if len(b) == 0 {
		return 0
	}
	f, n := pstrconv.ParseFloat(b)
	if n == 0 {
		return 0
	}
	switch unit := string(b[n:]); unit {
	case "", "px":
		return f
	default:
		return 0
	}
}
