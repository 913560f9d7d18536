// Package orbit is an orbit camera controller: the camera circles the origin at a fixed
// polar angle, spins on its own and can be dragged around or zoomed.
package orbit

import (
	"github.com/chewxy/math32"

	"svg-globe/internal/globe"
)

// Controls holds the camera's spherical position and the pending rotation.
type Controls struct {
	Theta  float32 // azimuth around +Y, 0 looks from +Z
	Phi    float32 // polar angle from +Y
	Radius float32
	Zoom   float32

	MinPolar, MaxPolar float32
	MinZoom, MaxZoom   float32

	AutoRotate      bool
	AutoRotateSpeed float32 // 2 is one turn per 30 s at 60 frames per second
	Damping         float32 // fraction of the pending rotation applied per frame
	ZoomStep        float32 // wheel scale per notch

	HalfExtent float32

	pendingTheta float32
	dragging     bool
}

// New returns the globe's default controller: camera 1.3 from the centre,
// polar angle locked at 0.46 pi, auto-rotating at speed 2.4.
func New() *Controls {
	polar := float32(0.46 * math32.Pi)
	return &Controls{
		Phi:             math32.Pi / 2,
		Radius:          1.3,
		Zoom:            1,
		MinPolar:        polar,
		MaxPolar:        polar,
		MinZoom:         0.5,
		MaxZoom:         3,
		AutoRotate:      true,
		AutoRotateSpeed: 2.4,
		Damping:         0.05,
		ZoomStep:        0.95,
		HalfExtent:      1.2,
	}
}

// Dragging reports whether a drag is in progress.
func (c *Controls) Dragging() bool { return c.dragging }

// BeginDrag starts a drag. It returns false if one was already active.
func (c *Controls) BeginDrag() bool {
	if c.dragging {
		return false
	}
	c.dragging = true
	return true
}

// EndDrag finishes the drag. It returns false if none was active.
func (c *Controls) EndDrag() bool {
	if !c.dragging {
		return false
	}
	c.dragging = false
	return true
}

// Drag rotates by a pointer movement of dx pixels; a full viewport height is one turn.
func (c *Controls) Drag(dx, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	c.rotateLeft(2 * math32.Pi * dx / viewportHeight)
}

// Wheel zooms by notches; positive zooms in.
func (c *Controls) Wheel(notches float32) {
	if notches == 0 {
		return
	}
	c.Zoom /= math32.Pow(c.ZoomStep, notches)
	c.Zoom = clamp(c.Zoom, c.MinZoom, c.MaxZoom)
}

func (c *Controls) rotateLeft(angle float32) {
	c.pendingTheta -= angle
}

// Update advances one frame: auto-rotation, damped rotation and the polar clamp.
func (c *Controls) Update() {
	if c.AutoRotate && !c.dragging {
		c.rotateLeft(2 * math32.Pi / 60 / 60 * c.AutoRotateSpeed)
	}
	if c.Damping > 0 {
		c.Theta += c.pendingTheta * c.Damping
		c.pendingTheta *= 1 - c.Damping
	} else {
		c.Theta += c.pendingTheta
		c.pendingTheta = 0
	}
	c.Theta = math32.Mod(c.Theta, 2*math32.Pi)
	c.Phi = clamp(c.Phi, c.MinPolar, c.MaxPolar)
}

// Position is the camera position for the current angles.
func (c *Controls) Position() globe.Vec3 {
	s := math32.Sin(c.Phi)
	return globe.Vec3{
		X: c.Radius * s * math32.Sin(c.Theta),
		Y: c.Radius * math32.Cos(c.Phi),
		Z: c.Radius * s * math32.Cos(c.Theta),
	}
}

// Camera returns the orthographic camera the controller currently describes.
func (c *Controls) Camera() globe.Camera {
	return globe.Camera{
		Position:   c.Position(),
		Up:         globe.Vec3{Y: 1},
		HalfExtent: c.HalfExtent,
		Zoom:       c.Zoom,
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
