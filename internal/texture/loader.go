package texture

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/anthonynsimon/bild/transform"

	"svg-globe/internal/raster"
	"svg-globe/internal/svgmap"
)

// Layer names a render surface an image is meant for.
type Layer int

const (
	LayerColor Layer = iota
	LayerStrokes
	LayerSelection
)

func (l Layer) String() string {
	switch l {
	case LayerColor:
		return "color"
	case LayerStrokes:
		return "strokes"
	case LayerSelection:
		return "selection"
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

// Result is a finished load. Err is set when decoding failed; Image is nil then.
type Result struct {
	Layer Layer
	Ref   string
	Image *image.RGBA
	Err   error
}

// DefaultMaxSide is the largest texture side the loader hands to the GPU.
const DefaultMaxSide = 4096

// cacheSize bounds the decoded images kept for repeat references.
const cacheSize = 64

// Loader decodes image references in goroutines. Results queue on a channel until the
// frame loop drains them, so installing a texture always happens on the caller's thread.
// Loads are not cancelled: an older load finishing late still gets delivered.
type Loader struct {
	MaxSide   int
	Tolerance float64

	results chan Result
	wg      sync.WaitGroup

	mu    sync.Mutex
	cache map[string]*image.RGBA
}

// NewLoader returns a Loader capping images at maxSide (0 means DefaultMaxSide).
func NewLoader(maxSide int, tolerance float64) *Loader {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	return &Loader{
		MaxSide:   maxSide,
		Tolerance: tolerance,
		results:   make(chan Result, 16),
		cache:     make(map[string]*image.RGBA),
	}
}

// Load starts decoding ref for layer and returns immediately.
func (l *Loader) Load(ref string, layer Layer) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.image(ref)
		l.results <- Result{Layer: layer, Ref: ref, Image: img, Err: err}
	}()
}

// Drain hands every finished result to fn without blocking and returns how many there were.
func (l *Loader) Drain(fn func(Result)) int {
	n := 0
	for {
		select {
		case r := <-l.results:
			fn(r)
			n++
		default:
			return n
		}
	}
}

// Wait blocks until every started load has delivered its result to the queue.
// The queue must be drained concurrently if more loads are pending than it buffers.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Decode decodes ref synchronously, using the cache.
func (l *Loader) Decode(ref string) (*image.RGBA, error) {
	return l.image(ref)
}

func (l *Loader) image(ref string) (*image.RGBA, error) {
	l.mu.Lock()
	img, ok := l.cache[ref]
	l.mu.Unlock()
	if ok {
		return img, nil
	}

	img, err := l.decode(ref)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if len(l.cache) >= cacheSize {
		l.cache = make(map[string]*image.RGBA)
	}
	l.cache[ref] = img
	l.mu.Unlock()
	return img, nil
}

func (l *Loader) decode(ref string) (*image.RGBA, error) {
	p, err := decode(ref)
	if err != nil {
		return nil, err
	}
	if p.svg != nil {
		doc, err := svgmap.Parse(p.svg)
		if err != nil {
			return nil, err
		}
		w, h := fit(int(doc.Width+0.5), int(doc.Height+0.5), l.MaxSide)
		return raster.Render(doc, w, h, l.Tolerance)
	}

	b := p.img.Bounds()
	w, h := fit(b.Dx(), b.Dy(), l.MaxSide)
	if w != b.Dx() || h != b.Dy() {
		return transform.Resize(p.img, w, h, transform.Linear), nil
	}
	if rgba, ok := p.img.(*image.RGBA); ok {
		return rgba, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), p.img, b.Min, draw.Src)
	return out, nil
}

// fit scales w x h down, keeping the aspect ratio, so neither side exceeds limit.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
