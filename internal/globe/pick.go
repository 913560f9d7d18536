package globe

import "github.com/chewxy/math32"

// Camera is an orthographic camera looking at Target.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	// HalfExtent is half the visible height (and width) at zoom 1.
	HalfExtent float32
	Zoom       float32
}

// Basis returns the camera's forward, right and up unit vectors.
func (c Camera) Basis() (forward, right, up Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// Ray is a half line; Dir is unit length.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Ray returns the ray through the pointer at normalised device coordinates
// (x right, y up, both in [-1, 1]). Orthographic rays all share the view direction
// and start on the camera plane.
func (c Camera) Ray(ndcX, ndcY float32) Ray {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	f, r, u := c.Basis()
	ext := c.HalfExtent / zoom
	o := c.Position.Add(r.Scale(ndcX * ext)).Add(u.Scale(ndcY * ext))
	return Ray{Origin: o, Dir: f}
}

// IntersectSphere returns the distance to where r enters the origin-centred sphere of
// the given radius. Exits and hits beyond far do not count.
func IntersectSphere(r Ray, radius, far float32) (float32, bool) {
	b := r.Origin.Dot(r.Dir)
	c := r.Origin.Dot(r.Origin) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math32.Sqrt(disc)
	if t < 0 || t > far {
		return 0, false
	}
	return t, true
}

// Pick casts the pointer ray at the globe and returns the texture coordinate of the hit.
func Pick(c Camera, ndcX, ndcY, radius, far float32) (u, v float32, ok bool) {
	r := c.Ray(ndcX, ndcY)
	t, ok := IntersectSphere(r, radius, far)
	if !ok {
		return 0, 0, false
	}
	hit := r.Origin.Add(r.Dir.Scale(t))
	u, v = UV(hit.Scale(1 / radius))
	return u, v, true
}
