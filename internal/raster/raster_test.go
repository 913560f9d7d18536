package raster

import (
	"image/color"
	"testing"

	"svg-globe/internal/svgmap"
)

func mustParse(t *testing.T, src string) *svgmap.Document {
	t.Helper()
	doc, err := svgmap.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}, true},
		{"#0F0", color.NRGBA{0, 255, 0, 255}, true},
		{"#9a9591", color.NRGBA{0x9a, 0x95, 0x91, 255}, true},
		{"none", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
		{"white", color.NRGBA{255, 255, 255, 255}, true},
	}
	for _, tc := range tests {
		got, ok, err := ParseColor(tc.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tc.in, err)
			continue
		}
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseColor(%q) = %v,%v want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
	for _, bad := range []string{"#12", "#gggggg", "red", "rgb(1,2,3)"} {
		if _, _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) accepted", bad)
		}
	}
}

func TestRenderFill(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 100 50">
<path d="M10 10H40V40H10Z" fill="#ff0000"/>
</svg>`)
	img, err := Render(doc, 200, 100, 0.5)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := img.RGBAAt(50, 50); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside pixel = %v, want opaque red", got)
	}
	if got := img.RGBAAt(150, 50); got.A != 0 {
		t.Errorf("outside pixel = %v, want transparent", got)
	}
}

func TestRenderHoleStaysEmpty(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 100 100">
<path d="M0 0H100V100H0Z M30 30V70H70V30Z" fill="#000"/>
</svg>`)
	img, err := Render(doc, 100, 100, 0.5)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.RGBAAt(10, 10).A != 255 {
		t.Error("outer ring not filled")
	}
	if img.RGBAAt(50, 50).A != 0 {
		t.Error("counter-wound hole was filled")
	}
}

func TestRenderStrokeOnly(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 100 100">
<path d="M20 20H80V80H20Z" fill="none" stroke="#0000ff" stroke-width="4"/>
</svg>`)
	img, err := Render(doc, 100, 100, 0.5)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := img.RGBAAt(50, 20); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("edge pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(20, 20); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("corner pixel = %v, want blue (overlaps must not cancel)", got)
	}
	if img.RGBAAt(50, 50).A != 0 {
		t.Error("interior painted with fill none")
	}
	if img.RGBAAt(50, 10).A != 0 {
		t.Error("stroke wider than its width")
	}
}

func TestRenderRespectsViewBoxOffset(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 -100 100 100">
<path d="M0 -100H100V-50H0Z" fill="#fff"/>
</svg>`)
	img, err := Render(doc, 100, 100, 0.5)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.RGBAAt(50, 25).A != 255 || img.RGBAAt(50, 75).A != 0 {
		t.Error("viewBox min-y not applied")
	}
}

func TestRenderErrors(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 10 10"><path d="M0 0H5V5Z" fill="tomato"/></svg>`)
	if _, err := Render(doc, 10, 10, 0.5); err == nil {
		t.Error("unsupported colour accepted")
	}
	if _, err := Render(doc, 0, 10, 0.5); err == nil {
		t.Error("zero width accepted")
	}
}
