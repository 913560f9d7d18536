// Package scene draws the globe with raylib: one sphere mesh, three textured layers and
// fog, rendered into a square texture that is drawn centred in the window.
package scene

import (
	"image"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"svg-globe/internal/app"
	"svg-globe/internal/globe"
	"svg-globe/internal/logger"
	"svg-globe/internal/raster"
	"svg-globe/internal/texture"
)

const (
	sphereRings  = 64
	sphereSlices = 128
	// colorAlphaCutoff drops the transparent sea of the colour layer so the far side
	// of the globe shows through it.
	colorAlphaCutoff = 0.5
	layerCount       = 3
)

type layer struct {
	tex     rl.Texture2D
	mtl     rl.Material
	loaded  bool
	pending *image.RGBA
}

// Scene implements app.Surface. Images and fog settings arrive at any time; GPU work is
// deferred to Draw so that it runs after the window and GL context exist.
type Scene struct {
	log *logger.Logger

	sphere globe.Mesh
	pin    runtime.Pinner // keeps sphere's slices fixed while raylib points at them
	mesh   rl.Mesh
	shader fogShader
	ready  bool
	failed bool

	layers [layerCount]layer

	fogColor [3]float32
	fogFar   float32
	fogDirty bool

	target     rl.RenderTexture2D
	targetSide int
}

var _ app.Surface = (*Scene)(nil)

// New returns a scene with no textures. log may be nil.
func New(log *logger.Logger) *Scene {
	return &Scene{
		log:    log,
		sphere: globe.Sphere(sphereRings, sphereSlices),
		fogFar: 1,
	}
}

// Install queues img for layer; the texture is replaced on the next Draw.
func (s *Scene) Install(l texture.Layer, img *image.RGBA) {
	if int(l) < 0 || int(l) >= layerCount {
		return
	}
	s.layers[l].pending = img
}

// SetFog sets the fog colour and the depth at which the fog is complete.
func (s *Scene) SetFog(color string, distance float64) {
	c, ok, err := raster.ParseColor(color)
	if err != nil || !ok {
		s.logf("fog colour %q: %v", color, err)
		return
	}
	s.fogColor = [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
	s.fogFar = float32(distance)
	s.fogDirty = true
}

// Draw renders v. Call between BeginDrawing and EndDrawing.
func (s *Scene) Draw(v app.View) {
	if v.Side <= 0 || !s.ensureLoaded() {
		return
	}
	for i := range s.layers {
		s.upload(texture.Layer(i))
	}
	if s.fogDirty {
		s.shader.setFog(s.fogColor, s.fogFar)
		s.fogDirty = false
	}
	s.ensureTarget(v.Side)

	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Blank)
	rl.BeginMode3D(camera(v.Camera))
	transform := rl.MatrixScale(v.Scale, v.Scale, v.Scale)

	// Colour and selection show their back faces through the transparent sea.
	rl.DisableBackfaceCulling()
	s.drawLayer(texture.LayerColor, transform, colorAlphaCutoff)
	s.drawLayer(texture.LayerSelection, transform, 0)
	rl.EnableBackfaceCulling()

	// Strokes go on top of everything facing the camera.
	rl.DisableDepthTest()
	s.drawLayer(texture.LayerStrokes, transform, 0)
	rl.EnableDepthTest()

	rl.EndMode3D()
	rl.EndTextureMode()

	side := float32(s.targetSide)
	src := rl.NewRectangle(0, 0, side, -side)
	rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(float32(v.Left), float32(v.Top)), rl.White)
}

// Unload releases textures, the render target and the shader. The mesh's vertex data
// is Go memory, so it is unpinned instead of handed to UnloadMesh.
func (s *Scene) Unload() {
	for i := range s.layers {
		if s.layers[i].loaded {
			rl.UnloadTexture(s.layers[i].tex)
			s.layers[i].loaded = false
		}
	}
	if s.targetSide > 0 {
		rl.UnloadRenderTexture(s.target)
		s.targetSide = 0
	}
	if s.ready {
		rl.UnloadShader(s.shader.shader)
		s.ready = false
	}
	s.pin.Unpin()
}

func (s *Scene) ensureLoaded() bool {
	if s.ready {
		return true
	}
	if s.failed {
		return false
	}
	sh, ok := loadFogShader()
	if !ok {
		s.failed = true
		s.logf("scene: fog shader failed to compile")
		return false
	}
	s.shader = sh

	m := s.sphere
	s.pin.Pin(&m.Vertices[0])
	s.pin.Pin(&m.Normals[0])
	s.pin.Pin(&m.Texcoords[0])
	s.pin.Pin(&m.Indices[0])
	s.mesh = rl.Mesh{
		VertexCount:   int32(m.VertexCount()),
		TriangleCount: int32(m.TriangleCount()),
		Vertices:      &m.Vertices[0],
		Normals:       &m.Normals[0],
		Texcoords:     &m.Texcoords[0],
		Indices:       &m.Indices[0],
	}
	rl.UploadMesh(&s.mesh, false)

	for i := range s.layers {
		s.layers[i].mtl = rl.LoadMaterialDefault()
		s.layers[i].mtl.Shader = sh.shader
	}
	s.fogDirty = true
	s.ready = true
	return true
}

func (s *Scene) upload(l texture.Layer) {
	ly := &s.layers[l]
	img := ly.pending
	if img == nil {
		return
	}
	ly.pending = nil
	b := img.Bounds()
	if b.Empty() {
		return
	}

	pix := texture.Straight(img)
	var pin runtime.Pinner
	pin.Pin(&pix[0])
	tex := rl.LoadTextureFromImage(rl.NewImage(pix, int32(b.Dx()), int32(b.Dy()), 1, rl.UncompressedR8g8b8a8))
	pin.Unpin()
	if !rl.IsTextureValid(tex) {
		s.logf("scene: %s texture upload failed", l)
		return
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	rl.SetTextureWrap(tex, rl.WrapClamp)

	if ly.loaded {
		rl.UnloadTexture(ly.tex)
	}
	ly.tex = tex
	ly.loaded = true
	rl.SetMaterialTexture(&ly.mtl, rl.MapAlbedo, tex)
}

func (s *Scene) drawLayer(l texture.Layer, transform rl.Matrix, cutoff float32) {
	ly := &s.layers[l]
	if !ly.loaded {
		return
	}
	s.shader.setAlphaCutoff(cutoff)
	rl.DrawMesh(s.mesh, ly.mtl, transform)
}

func (s *Scene) ensureTarget(side int) {
	if side == s.targetSide {
		return
	}
	if s.targetSide > 0 {
		rl.UnloadRenderTexture(s.target)
	}
	s.target = rl.LoadRenderTexture(int32(side), int32(side))
	s.targetSide = side
}

// camera converts the picking camera; raylib's orthographic fovy is the full view height.
func camera(c globe.Camera) rl.Camera3D {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return rl.Camera3D{
		Position:   vec3(c.Position),
		Target:     vec3(c.Target),
		Up:         vec3(c.Up),
		Fovy:       2 * c.HalfExtent / zoom,
		Projection: rl.CameraOrthographic,
	}
}

func vec3(v globe.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

func (s *Scene) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Logf(format, args...)
	}
}
