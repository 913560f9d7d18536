package app

// InputState is one frame of polled input.
type InputState struct {
	MouseX, MouseY float32
	// DeltaX is the horizontal mouse movement since the last frame.
	DeltaX float32
	// Pressed and Released are edges of the primary button this frame.
	Pressed, Released bool
	Wheel             float32
	Touches           int
	Resized           bool
	Width, Height     int
}

// Input turns polled input into messages, remembering what it needs between frames.
type Input struct {
	dragging bool
	touching bool
	x, y     float32
}

// Translate appends the messages for s to dst: resize first, then touch, pointer,
// drag and wheel. A pointer that never moved off the origin reports nothing.
func (in *Input) Translate(dst []Msg, s InputState) []Msg {
	if s.Resized {
		dst = append(dst, Resized{Width: s.Width, Height: s.Height})
	}
	if s.Touches > 0 && !in.touching {
		dst = append(dst, TouchStarted{})
	}
	in.touching = s.Touches > 0

	if s.MouseX != in.x || s.MouseY != in.y {
		dst = append(dst, PointerMoved{X: s.MouseX, Y: s.MouseY})
		in.x, in.y = s.MouseX, s.MouseY
	}

	if s.Pressed && !in.dragging {
		in.dragging = true
		dst = append(dst, DragStarted{})
	}
	if in.dragging && s.DeltaX != 0 && !s.Pressed {
		dst = append(dst, DragMoved{DX: s.DeltaX})
	}
	if in.dragging && s.Released {
		in.dragging = false
		dst = append(dst, DragEnded{})
	}

	if s.Wheel != 0 {
		dst = append(dst, Zoomed{Notches: s.Wheel})
	}
	return dst
}
