// Package globe holds the sphere geometry, its texture parameterisation and pointer picking.
package globe

import "github.com/chewxy/math32"

// Mesh is renderer-neutral triangle data. Texcoords use a top-left image origin.
type Mesh struct {
	Vertices  []float32
	Normals   []float32
	Texcoords []float32
	Indices   []uint16
}

// VertexCount is the number of vertices in m.
func (m Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount is the number of triangles in m.
func (m Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// UV returns the texture coordinate of a unit direction: u runs around the equator
// starting behind -X, v runs from 0 at the south pole to 1 at the north pole.
func UV(p Vec3) (u, v float32) {
	u = math32.Atan2(p.Z, -p.X)/(2*math32.Pi) + 0.5
	y := p.Y
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	v = 0.5 + math32.Asin(y)/math32.Pi
	return u, v
}

// Direction is the inverse of UV.
func Direction(u, v float32) Vec3 {
	az := (u - 0.5) * 2 * math32.Pi
	lat := (v - 0.5) * math32.Pi
	c := math32.Cos(lat)
	return Vec3{-c * math32.Cos(az), math32.Sin(lat), c * math32.Sin(az)}
}

// Sphere builds a unit UV sphere with rings x slices quads. The seam column is
// duplicated so u reaches 1 without wrapping. Triangles wind counter-clockwise
// seen from outside.
func Sphere(rings, slices int) Mesh {
	if rings < 2 {
		rings = 2
	}
	if slices < 3 {
		slices = 3
	}
	n := (rings + 1) * (slices + 1)
	m := Mesh{
		Vertices:  make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
		Texcoords: make([]float32, 0, n*2),
		Indices:   make([]uint16, 0, rings*slices*6),
	}
	for i := 0; i <= rings; i++ {
		v := 1 - float32(i)/float32(rings)
		for j := 0; j <= slices; j++ {
			u := float32(j) / float32(slices)
			p := Direction(u, v)
			m.Vertices = append(m.Vertices, p.X, p.Y, p.Z)
			m.Normals = append(m.Normals, p.X, p.Y, p.Z)
			m.Texcoords = append(m.Texcoords, u, 1-v)
		}
	}
	row := slices + 1
	for i := 0; i < rings; i++ {
		for j := 0; j < slices; j++ {
			a := uint16(i*row + j)
			b := uint16((i+1)*row + j)
			c := b + 1
			d := a + 1
			m.Indices = append(m.Indices, a, b, c, a, c, d)
		}
	}
	return m
}
