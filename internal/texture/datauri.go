package texture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/url"
	"strings"
)

// SVGPrefix starts every SVG reference the generator produces.
const SVGPrefix = "data:image/svg+xml;charset=utf-8,"

// ErrUnsupported is returned for references that are not svg or png data URIs.
var ErrUnsupported = errors.New("texture: unsupported image reference")

// uriComponent undoes the query-escaping differences from encodeURIComponent:
// spaces are %20 and !'()* stay literal.
var uriComponent = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// EncodeSVG wraps an SVG document as a data URI, escaping it the way
// encodeURIComponent does.
func EncodeSVG(svg []byte) string {
	return SVGPrefix + uriComponent.Replace(url.QueryEscape(string(svg)))
}

// EncodePNG wraps img as a base64 PNG data URI.
func EncodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("texture: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// payload is a decoded data URI: either SVG source or a PNG image.
type payload struct {
	svg []byte
	img image.Image
}

func decode(ref string) (payload, error) {
	if !strings.HasPrefix(ref, "data:") {
		return payload{}, ErrUnsupported
	}
	comma := strings.IndexByte(ref, ',')
	if comma < 0 {
		return payload{}, fmt.Errorf("texture: data URI without payload")
	}
	meta, body := ref[len("data:"):comma], ref[comma+1:]
	params := strings.Split(meta, ";")
	mime := strings.ToLower(params[0])
	b64 := false
	for _, p := range params[1:] {
		if p == "base64" {
			b64 = true
		}
	}

	var raw []byte
	if b64 {
		data, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return payload{}, fmt.Errorf("texture: %w", err)
		}
		raw = data
	} else {
		s, err := url.PathUnescape(body)
		if err != nil {
			return payload{}, fmt.Errorf("texture: %w", err)
		}
		raw = []byte(s)
	}

	switch mime {
	case "image/svg+xml":
		return payload{svg: raw}, nil
	case "image/png":
		img, err := png.Decode(bytes.NewReader(raw))
		if err != nil {
			return payload{}, fmt.Errorf("texture: %w", err)
		}
		return payload{img: img}, nil
	}
	return payload{}, fmt.Errorf("%w: %s", ErrUnsupported, mime)
}
