package desktop

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"uberdrive/internal/render"
	"uberdrive/internal/scene"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// gpuMesh is the uploaded form of a scene.MeshPart, stored in its Handle.
type gpuMesh struct {
	vao, vbo, ebo uint32
	tex           uint32
	count         int32
}

type Renderer struct {
	prog uint32

	uModel     int32
	uView      int32
	uProj      int32
	uNormalMat int32
	uColor     int32
	uTex       int32
	uUseTex    int32

	uLightDir       int32
	uLightDiffuse   int32
	uLightGround    int32
	uLightIntensity int32

	meshes   []*gpuMesh
	drawBuf  []*scene.Node
	fbW, fbH int
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	r := &Renderer{prog: prog}

	gl.UseProgram(prog)
	r.uModel = gl.GetUniformLocation(prog, gl.Str("uModel\x00"))
	r.uView = gl.GetUniformLocation(prog, gl.Str("uView\x00"))
	r.uProj = gl.GetUniformLocation(prog, gl.Str("uProj\x00"))
	r.uNormalMat = gl.GetUniformLocation(prog, gl.Str("uNormalMat\x00"))
	r.uColor = gl.GetUniformLocation(prog, gl.Str("uColor\x00"))
	r.uTex = gl.GetUniformLocation(prog, gl.Str("uTex\x00"))
	r.uUseTex = gl.GetUniformLocation(prog, gl.Str("uUseTex\x00"))
	r.uLightDir = gl.GetUniformLocation(prog, gl.Str("uLightDir\x00"))
	r.uLightDiffuse = gl.GetUniformLocation(prog, gl.Str("uLightDiffuse\x00"))
	r.uLightGround = gl.GetUniformLocation(prog, gl.Str("uLightGround\x00"))
	r.uLightIntensity = gl.GetUniformLocation(prog, gl.Str("uLightIntensity\x00"))
	gl.Uniform1i(r.uTex, 0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// The view mirrors x, which flips winding; draw both faces.
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, m := range r.meshes {
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		gl.DeleteVertexArrays(1, &m.vao)
		if m.tex != 0 {
			gl.DeleteTextures(1, &m.tex)
		}
	}
	r.meshes = nil
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

// Resize records the framebuffer size for the viewport and aspect ratio.
func (r *Renderer) Resize(fbW, fbH int) {
	r.fbW, r.fbH = fbW, fbH
}

// upload creates GPU buffers for a mesh part on first use.
func (r *Renderer) upload(m *scene.MeshPart) *gpuMesh {
	if g, ok := m.Handle.(*gpuMesh); ok {
		return g
	}
	if len(m.Positions) == 0 || len(m.Indices) == 0 {
		return nil
	}
	verts := render.Interleave(m)
	g := &gpuMesh{count: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.GenBuffers(1, &g.ebo)
	gl.BindVertexArray(g.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	stride := int32(render.VertexStride * 4)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aNormal (vec3)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
	// aUV (vec2)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, glOffset(6*4))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)

	if m.Texture != nil {
		g.tex = uploadTexture(m.Texture)
	}
	m.Handle = g
	r.meshes = append(r.meshes, g)
	return g
}

func uploadTexture(img *image.RGBA) uint32 {
	b := img.Bounds()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	return tex
}

// BeginFrame clears the framebuffer to the sky colour.
func (r *Renderer) BeginFrame(sky render.RGB) {
	gl.Viewport(0, 0, int32(r.fbW), int32(r.fbH))
	c := sky.Linear()
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders every visible mesh in the scene.
func (r *Renderer) Draw(s *scene.Scene, cam render.Camera, light render.Hemispheric) {
	if r.fbW <= 0 || r.fbH <= 0 {
		return
	}
	view := cam.View()
	proj := cam.Projection(float32(r.fbW) / float32(r.fbH))

	gl.UseProgram(r.prog)
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])
	gl.Uniform3f(r.uLightDir, light.Direction.X(), light.Direction.Y(), light.Direction.Z())
	gl.Uniform3f(r.uLightDiffuse, light.Diffuse.X(), light.Diffuse.Y(), light.Diffuse.Z())
	gl.Uniform3f(r.uLightGround, light.Ground.X(), light.Ground.Y(), light.Ground.Z())
	gl.Uniform1f(r.uLightIntensity, light.Intensity)
	gl.ActiveTexture(gl.TEXTURE0)

	r.drawBuf = s.Drawables(r.drawBuf[:0])
	for _, n := range r.drawBuf {
		g := r.upload(n.Mesh)
		if g == nil {
			continue
		}
		model := n.World()
		normal := model.Inv().Transpose().Mat3()
		if model.Det() == 0 {
			normal = mgl32.Ident3()
		}
		gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
		gl.UniformMatrix3fv(r.uNormalMat, 1, false, &normal[0])
		c := n.Mesh.Color
		gl.Uniform4f(r.uColor, c[0], c[1], c[2], c[3])
		if g.tex != 0 {
			gl.Uniform1i(r.uUseTex, 1)
			gl.BindTexture(gl.TEXTURE_2D, g.tex)
		} else {
			gl.Uniform1i(r.uUseTex, 0)
		}
		gl.BindVertexArray(g.vao)
		gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}
