package texture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/anthonynsimon/bild/imgio"
)

// Export writes each image as <dir>/<layer>.png and returns the written paths in layer order.
func Export(dir string, images map[Layer]image.Image) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("texture: export: %w", err)
	}
	layers := make([]Layer, 0, len(images))
	for l := range images {
		layers = append(layers, l)
	}
	sort.Slice(layers, func(i, j int) bool { return layers[i] < layers[j] })

	var paths []string
	for _, l := range layers {
		img := images[l]
		if img == nil {
			continue
		}
		path := filepath.Join(dir, l.String()+".png")
		if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
			return paths, fmt.Errorf("texture: export %s: %w", l, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Open reads an image file, e.g. one written by Export.
func Open(path string) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	return img, nil
}
