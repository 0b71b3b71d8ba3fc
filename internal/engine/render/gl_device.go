package render

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/distantland/internal/engine/shader"
	"github.com/Faultbox/distantland/pkg/quadtree"
)

// Geometry is an uploaded vertex array with its index count.
type Geometry struct {
	VAO     uint32
	VBO     uint32
	EBO     uint32
	Indices int32
}

// GLDevice implements Device on OpenGL 4.1 core.
// It must be created after the GL context.
type GLDevice struct {
	logger *zap.Logger

	program *shader.Program

	textures map[quadtree.ResourceID]uint32
	geometry map[quadtree.ResourceID]Geometry
	bound    Geometry
}

// NewGLDevice initializes OpenGL and compiles the land program.
func NewGLDevice(vertexSrc, fragmentSrc string, logger *zap.Logger) (*GLDevice, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing OpenGL")
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := shader.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, errors.Wrap(err, "land program")
	}

	d := &GLDevice{
		logger:   logger,
		program:  program,
		textures: make(map[quadtree.ResourceID]uint32),
		geometry: make(map[quadtree.ResourceID]Geometry),
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.55, 0.65, 0.75, 1.0)

	logger.Debug("land program created", zap.Uint32("program", program.ID))
	return d, nil
}

// Close deletes the program and every uploaded resource.
func (d *GLDevice) Close() {
	for _, tex := range d.textures {
		gl.DeleteTextures(1, &tex)
	}
	for _, g := range d.geometry {
		gl.DeleteVertexArrays(1, &g.VAO)
		gl.DeleteBuffers(1, &g.VBO)
		gl.DeleteBuffers(1, &g.EBO)
	}
	clear(d.textures)
	clear(d.geometry)
	d.program.Delete()
}

// Resize updates the viewport.
func (d *GLDevice) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	d.logger.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin clears the frame and sets per-frame uniforms.
func (d *GLDevice) Begin(viewProj mgl32.Mat4, eye mgl32.Vec3, fogFar float32) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	d.program.Use()
	d.program.SetMat4("uViewProj", viewProj)
	d.program.SetVec3("uEye", eye)
	d.program.SetFloat("uFogFar", fogFar)
	d.program.SetBool("uHasAlpha", false)
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
}

// End restores default state.
func (d *GLDevice) End() {
	gl.BindVertexArray(0)
	gl.DepthMask(true)
	d.bound = Geometry{}
}

// SetBlend toggles alpha blending. Blended meshes do not write depth.
func (d *GLDevice) SetBlend(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
	} else {
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
	}
	d.program.SetBool("uHasAlpha", enabled)
}

// BindTexture binds an uploaded texture to unit 0. Unknown ids unbind.
func (d *GLDevice) BindTexture(id quadtree.ResourceID) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.textures[id])
}

// BindGeometry binds the vertex array registered for the vertex buffer id.
// Index buffers are part of the vertex array.
func (d *GLDevice) BindGeometry(vertexBuffer, _ quadtree.ResourceID) {
	d.bound = d.geometry[vertexBuffer]
	gl.BindVertexArray(d.bound.VAO)
}

// SetWorld sets the world matrix.
func (d *GLDevice) SetWorld(world mgl32.Mat4) {
	d.program.SetMat4("uWorld", world)
}

// Draw issues an indexed draw. Face counts beyond the uploaded geometry are
// clamped.
func (d *GLDevice) Draw(_, faces int) {
	count := min(int32(faces*3), d.bound.Indices)
	if d.bound.VAO == 0 || count <= 0 {
		return
	}
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
}

// UploadColorTexture creates a 1x1 texture for id.
func (d *GLDevice) UploadColorTexture(id quadtree.ResourceID, rgba [4]uint8) {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if old, ok := d.textures[id]; ok {
		gl.DeleteTextures(1, &old)
	}
	d.textures[id] = tex
}

// UploadBox creates box geometry with the given half extents for id.
func (d *GLDevice) UploadBox(id quadtree.ResourceID, extents [3]float32) {
	vertices, indices := BoxMesh(extents)

	var g Geometry
	gl.GenVertexArrays(1, &g.VAO)
	gl.BindVertexArray(g.VAO)

	gl.GenBuffers(1, &g.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, boxStride*4, nil)
	gl.EnableVertexAttribArray(0)
	// Normal (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, boxStride*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	g.Indices = int32(len(indices))
	if old, ok := d.geometry[id]; ok {
		gl.DeleteVertexArrays(1, &old.VAO)
		gl.DeleteBuffers(1, &old.VBO)
		gl.DeleteBuffers(1, &old.EBO)
	}
	d.geometry[id] = g
	d.logger.Debug("box uploaded", zap.Uint64("id", uint64(id)), zap.Uint32("vao", g.VAO))
}
