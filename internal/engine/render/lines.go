package render

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/Faultbox/distantland/internal/engine/shader"
)

// lineStride is position + color, in floats.
const lineStride = 6

// LineRenderer draws colored line lists from a streaming buffer.
type LineRenderer struct {
	program  *shader.Program
	vao      uint32
	vbo      uint32
	capacity int // floats
}

// NewLineRenderer compiles the line program. Requires a GL context.
func NewLineRenderer(vertexSrc, fragmentSrc string) (*LineRenderer, error) {
	program, err := shader.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, errors.Wrap(err, "line program")
	}
	r := &LineRenderer{program: program}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, lineStride*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, lineStride*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return r, nil
}

// Draw uploads and draws interleaved [x, y, z, r, g, b] line vertices.
func (r *LineRenderer) Draw(viewProj mgl32.Mat4, vertices []float32) {
	if len(vertices) < 2*lineStride {
		return
	}

	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(vertices) > r.capacity {
		r.capacity = len(vertices)
		gl.BufferData(gl.ARRAY_BUFFER, r.capacity*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, unsafe.Pointer(&vertices[0]))
	}
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/lineStride))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Close deletes GL objects.
func (r *LineRenderer) Close() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.vbo)
	r.program.Delete()
}

// ReadPixels reads the back buffer as RGBA, bottom row first.
func ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
