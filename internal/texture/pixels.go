package texture

import "image"

// Straight returns img's pixels as tightly packed non-premultiplied RGBA bytes, the
// layout GPU uploads with regular alpha blending expect.
func Straight(img *image.RGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := out[y*w*4:]
		for x := 0; x < w*4; x += 4 {
			a := src[x+3]
			switch a {
			case 0:
				// fully transparent stays zero
			case 0xff:
				copy(dst[x:x+4], src[x:x+4])
			default:
				dst[x] = unpremultiply(src[x], a)
				dst[x+1] = unpremultiply(src[x+1], a)
				dst[x+2] = unpremultiply(src[x+2], a)
				dst[x+3] = a
			}
		}
	}
	return out
}

func unpremultiply(c, a uint8) uint8 {
	v := (uint32(c)*0xff + uint32(a)/2) / uint32(a)
	if v > 0xff {
		v = 0xff
	}
	return uint8(v)
}
