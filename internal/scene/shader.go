package scene

import rl "github.com/gen2brain/raylib-go/raylib"

// Unlit textured shader with linear fog on view depth: the colour fades to fogColor
// as depth goes from 0 to fogFar. alphaCutoff discards texels below it.
const (
	fogVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
uniform mat4 mvp;
uniform mat4 matView;
uniform mat4 matModel;
out vec2 fragTexCoord;
out float fragDepth;
void main() {
  fragTexCoord = vertexTexCoord;
  vec4 viewPos = matView * matModel * vec4(vertexPosition, 1.0);
  fragDepth = -viewPos.z;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	fogFS = `#version 330
in vec2 fragTexCoord;
in float fragDepth;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 fogColor;
uniform float fogFar;
uniform float alphaCutoff;
out vec4 finalColor;
void main() {
  vec4 c = texture(texture0, fragTexCoord) * colDiffuse;
  if (c.a < alphaCutoff) discard;
  float f = smoothstep(0.0, fogFar, fragDepth);
  finalColor = vec4(mix(c.rgb, fogColor, f), c.a);
}
`
)

// fogShader wraps the shader and its uniform locations.
type fogShader struct {
	shader   rl.Shader
	colorLoc int32
	farLoc   int32
	alphaLoc int32
}

func loadFogShader() (fogShader, bool) {
	sh := rl.LoadShaderFromMemory(fogVS, fogFS)
	if !rl.IsShaderValid(sh) {
		return fogShader{}, false
	}
	return fogShader{
		shader:   sh,
		colorLoc: rl.GetShaderLocation(sh, "fogColor"),
		farLoc:   rl.GetShaderLocation(sh, "fogFar"),
		alphaLoc: rl.GetShaderLocation(sh, "alphaCutoff"),
	}, true
}

func (f fogShader) setFog(color [3]float32, far float32) {
	if f.colorLoc >= 0 {
		rl.SetShaderValue(f.shader, f.colorLoc, color[:], rl.ShaderUniformVec3)
	}
	if f.farLoc >= 0 {
		rl.SetShaderValue(f.shader, f.farLoc, []float32{far}, rl.ShaderUniformFloat)
	}
}

func (f fogShader) setAlphaCutoff(v float32) {
	if f.alphaLoc >= 0 {
		rl.SetShaderValue(f.shader, f.alphaLoc, []float32{v}, rl.ShaderUniformFloat)
	}
}
