package hover

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"svg-globe/internal/atlas"
	"svg-globe/internal/svgmap"
)

// testMap has four countries in a 2000x1000 map space:
//
//	0 "West"    square 100..500 x 100..500
//	1 "Centre"  square 900..1100 x 350..450 (covers map point 1000,400)
//	2 "Ring"    square 1200..1600 x 200..600 with a hole 1300..1500 x 300..500
//	3 "Overlap" square 950..1050 x 370..430, fully inside Centre
const testMap = `<svg viewBox="0 -100 2000 1000">
<path id="west" d="M100 100H500V500H100Z"/>
<path id="centre" d="M900 350H1100V450H900Z"/>
<path id="ring" d="M1200 200H1600V600H1200Z M1300 300V500H1500V300Z"/>
<path id="overlap" d="M950 370H1050V430H950Z"/>
</svg>`

func newTestAtlas(t *testing.T, src string) *atlas.Atlas {
	t.Helper()
	doc, err := svgmap.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return atlas.New(doc, atlas.Options{Width: 2000, Height: 1000, OffsetY: -0.1, Tolerance: 1})
}

// uvFor inverts the map conversion so tests can aim at map points.
func uvFor(a *atlas.Atlas, x, y float64) (float64, float64) {
	return x / a.Width, 1 + a.OffsetY - y/a.Height
}

func TestToMapScenario(t *testing.T) {
	a := newTestAtlas(t, testMap)
	p := a.ToMap(0.5, 0.5)
	if math.Abs(p[0]-1000) > 1e-9 || math.Abs(p[1]-400) > 1e-9 {
		t.Fatalf("ToMap(0.5,0.5) = %v, want [1000 400]", p)
	}
}

func TestResolveScenarioCentre(t *testing.T) {
	a := newTestAtlas(t, testMap)
	r := NewResolver(a, 0)
	if !r.Resolve(0.5, 0.5) {
		t.Fatal("Resolve(0.5,0.5) reported no change")
	}
	if got := r.State().Index; got != 1 {
		t.Fatalf("hover index = %d, want 1 (Centre covers 1000,400)", got)
	}
}

func TestResolveInsideCountry(t *testing.T) {
	a := newTestAtlas(t, testMap)
	tests := []struct {
		x, y float64
		want int
	}{
		{300, 300, 0},
		{110, 490, 0},
		{1000, 360, 1},
		{1250, 250, 2},
		{1550, 550, 2},
	}
	for _, tc := range tests {
		r := NewResolver(a, 3)
		u, v := uvFor(a, tc.x, tc.y)
		r.Resolve(u, v)
		if got := r.State().Index; got != tc.want {
			t.Errorf("point (%v,%v): hover index = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestResolveMissLeavesStateUnchanged(t *testing.T) {
	a := newTestAtlas(t, testMap)
	r := NewResolver(a, 2)
	calls := 0
	r.OnChange(func(*atlas.Country) { calls++ })

	misses := [][2]float64{
		{50, 50},    // open ocean
		{700, 300},  // between West and Centre
		{1400, 400}, // inside Ring's hole
		{1999, 899}, // far corner
		{300, -50},  // above every country
		{1000, 700}, // below Centre, inside its x range only
	}
	for _, m := range misses {
		u, v := uvFor(a, m[0], m[1])
		if r.Resolve(u, v) {
			t.Errorf("point %v changed hover state", m)
		}
		if got := r.State().Index; got != 2 {
			t.Errorf("point %v: hover index = %d, want unchanged 2", m, got)
		}
	}
	if calls != 0 {
		t.Errorf("listener called %d times on misses, want 0", calls)
	}
}

func TestResolveNotifiesOncePerChange(t *testing.T) {
	a := newTestAtlas(t, testMap)
	r := NewResolver(a, 2)
	var got []string
	r.OnChange(func(c *atlas.Country) { got = append(got, c.Name) })

	u, v := uvFor(a, 300, 300)
	r.Resolve(u, v)
	r.Resolve(u, v)
	u2, v2 := uvFor(a, 200, 200)
	r.Resolve(u2, v2)

	if len(got) != 1 || got[0] != "West" {
		t.Fatalf("notifications = %v, want [West]", got)
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	a := newTestAtlas(t, testMap)
	// (1000,400) is inside both Centre (1) and Overlap (3).
	u, v := uvFor(a, 1000, 400)
	tests := []struct {
		initial int
		want    int
	}{
		{0, 1},
		{1, 3}, // the hovered country is skipped, so the next match wins
		{2, 1},
		{3, 1},
	}
	for _, tt := range tests {
		r := NewResolver(a, tt.initial)
		if !r.Resolve(u, v) {
			t.Errorf("initial %d: Resolve reported no change", tt.initial)
		}
		if got := r.State().Index; got != tt.want {
			t.Errorf("initial %d: hover index = %d, want %d", tt.initial, got, tt.want)
		}
	}
}

func TestResolveSkipsHoveredCountry(t *testing.T) {
	a := newTestAtlas(t, testMap)
	r := NewResolver(a, 1)
	var got []int
	r.OnChange(func(c *atlas.Country) { got = append(got, c.Index) })

	u, v := uvFor(a, 1000, 400)
	r.Resolve(u, v)
	r.Resolve(u, v)
	if len(got) != 2 || got[0] != 3 || got[1] != 1 {
		t.Fatalf("changes = %v, want [3 1]", got)
	}

	// Inside Centre only: the hovered country is the sole match, nothing changes.
	u, v = uvFor(a, 920, 360)
	if r.Resolve(u, v) {
		t.Errorf("sole match on the hovered country reported a change")
	}
	if r.State().Index != 1 || len(got) != 2 {
		t.Errorf("index = %d, changes = %v", r.State().Index, got)
	}
}

func TestResolveEmptyAtlas(t *testing.T) {
	a := newTestAtlas(t, `<svg viewBox="0 0 2000 1000"></svg>`)
	r := NewResolver(a, 0)
	if r.Resolve(0.5, 0.5) {
		t.Fatal("empty atlas matched a country")
	}
	if a.Index.Len() != 0 {
		t.Fatalf("index has %d boxes, want 0", a.Index.Len())
	}
	if _, ok := r.Current(); ok {
		t.Fatal("Current() found a country in an empty atlas")
	}
}

func TestBoxesHaveNoFalseNegatives(t *testing.T) {
	a := newTestAtlas(t, testMap)
	for i, c := range a.Countries {
		for x := 0.0; x <= 2000; x += 10 {
			for y := -100.0; y <= 900; y += 10 {
				p := orb.Point{x, y}
				if planar.MultiPolygonContains(c.Shape, p) && !a.Index.MayContain(i, p) {
					t.Fatalf("country %d contains %v but its box rejects it", i, p)
				}
			}
		}
	}
}

func TestBoxRejectsOutsideAnySide(t *testing.T) {
	a := newTestAtlas(t, testMap)
	// West's box is 100..500 x 100..500.
	for _, p := range []orb.Point{{50, 300}, {550, 300}, {300, 50}, {300, 550}} {
		if a.Index.MayContain(0, p) {
			t.Errorf("box 0 accepted %v which is outside one side", p)
		}
	}
	if !a.Index.MayContain(0, orb.Point{300, 300}) {
		t.Error("box 0 rejected its centre")
	}
}

func TestSetEnabled(t *testing.T) {
	a := newTestAtlas(t, testMap)
	r := NewResolver(a, 0)
	if !r.State().Enabled {
		t.Fatal("new resolver should start enabled")
	}
	r.SetEnabled(false)
	if r.State().Enabled {
		t.Fatal("SetEnabled(false) had no effect")
	}
}
