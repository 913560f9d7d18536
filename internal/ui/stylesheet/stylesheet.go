// Package stylesheet parses the small CSS subset the overlay uses: .class and #id
// selectors (comma lists allowed) with plain declarations. Later rules win.
package stylesheet

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"svg-globe/internal/raster"
)

// Rule is one selector and its declarations as raw strings.
type Rule struct {
	Selector string            // ".panel" or "#menu"
	Props    map[string]string // "background" -> "#333"
}

// Sheet is an ordered rule list.
type Sheet struct {
	Rules []Rule
}

// Parse reads content. Rules with other selectors and at-rules are skipped.
func Parse(content string) (*Sheet, error) {
	sheet := &Sheet{}
	p := css.NewParser(parse.NewInputString(content), false)
	var open []int // indices of the rules the current block feeds
	depth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != io.EOF {
				return sheet, fmt.Errorf("stylesheet: %w", err)
			}
			return sheet, nil
		case css.BeginRulesetGrammar:
			depth++
			open = open[:0]
			if depth > 1 {
				continue
			}
			for _, sel := range selectors(p.Values()) {
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: map[string]string{}})
				open = append(open, len(sheet.Rules)-1)
			}
		case css.EndRulesetGrammar:
			depth--
			open = open[:0]
		case css.BeginAtRuleGrammar:
			depth++
			open = open[:0]
		case css.EndAtRuleGrammar:
			depth--
		case css.DeclarationGrammar:
			k := strings.ToLower(string(data))
			v := value(p.Values())
			for _, i := range open {
				sheet.Rules[i].Props[k] = v
			}
		}
	}
}

// selectors splits a selector list, keeping only simple class and id selectors.
func selectors(toks []css.Token) []string {
	var buf bytes.Buffer
	for _, t := range toks {
		buf.Write(t.Data)
	}
	var out []string
	for _, s := range strings.Split(buf.String(), ",") {
		s = strings.TrimSpace(s)
		if len(s) < 2 || (s[0] != '.' && s[0] != '#') || strings.ContainsAny(s[1:], " .#:>[") {
			continue
		}
		out = append(out, s)
	}
	return out
}

func value(toks []css.Token) string {
	var buf bytes.Buffer
	for _, t := range toks {
		buf.Write(t.Data)
	}
	return strings.TrimSpace(buf.String())
}

// Props merges the declarations of every rule matching class or id, in order.
func (s *Sheet) Props(class, id string) map[string]string {
	merged := map[string]string{}
	if s == nil {
		return merged
	}
	for _, r := range s.Rules {
		if (class != "" && r.Selector == "."+class) || (id != "" && r.Selector == "#"+id) {
			for k, v := range r.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Style is a resolved node style. LeftPct/TopPct of -1 mean Left/Top are pixels.
// HasLeft and HasTop report whether the style positions the node at all.
type Style struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	HasLeft    bool
	HasTop     bool
	Padding    int32
	FontSize   int32
}

// Default is transparent with white 20px text and 4px padding.
func Default() Style {
	return Style{
		Color:    color.RGBA{255, 255, 255, 255},
		Border:   color.RGBA{0, 0, 0, 255},
		LeftPct:  -1,
		TopPct:   -1,
		Padding:  4,
		FontSize: 20,
	}
}

// Resolve builds a Style from merged declarations. Unparseable values are ignored.
func Resolve(props map[string]string) Style {
	out := Default()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := Color(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := Color(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			if c, ok := Color(v); ok {
				out.Border = c
				out.HasBorder = c.A > 0
			}
		case "width":
			if n, ok := Px(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := Px(v); ok {
				out.Height = n
			}
		case "left":
			if pct, ok := Pct(v); ok {
				out.LeftPct, out.HasLeft = pct, true
			} else if n, ok := Px(v); ok {
				out.Left, out.HasLeft = n, true
			}
		case "top":
			if pct, ok := Pct(v); ok {
				out.TopPct, out.HasTop = pct, true
			} else if n, ok := Px(v); ok {
				out.Top, out.HasTop = n, true
			}
		case "padding":
			if n, ok := Px(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := Px(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}

// Color parses #rgb, #rrggbb and the keywords the map colours accept.
// "none" and "transparent" give a zero colour.
func Color(s string) (color.RGBA, bool) {
	c, ok, err := raster.ParseColor(strings.ToLower(s))
	if err != nil {
		return color.RGBA{}, false
	}
	if !ok {
		return color.RGBA{}, true
	}
	return color.RGBA{c.R, c.G, c.B, c.A}, true
}

// Px parses a whole number with an optional px suffix.
func Px(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// Pct parses "N%" with N in [0,100].
func Pct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}
