package app

// Msg is an input event queued for the next Update.
type Msg interface {
	msg()
}

// PointerMoved carries the pointer position in window pixels.
type PointerMoved struct{ X, Y float32 }

// TouchStarted marks the session as touch driven.
type TouchStarted struct{}

// DragStarted, DragMoved and DragEnded follow a camera drag. DX is in pixels.
type (
	DragStarted struct{}
	DragMoved   struct{ DX float32 }
	DragEnded   struct{}
)

// Zoomed is a wheel movement in notches; positive zooms in.
type Zoomed struct{ Notches float32 }

// Resized carries the new window size in pixels.
type Resized struct{ Width, Height int }

func (PointerMoved) msg() {}
func (TouchStarted) msg() {}
func (DragStarted) msg()  {}
func (DragMoved) msg()    {}
func (DragEnded) msg()    {}
func (Zoomed) msg()       {}
func (Resized) msg()      {}
