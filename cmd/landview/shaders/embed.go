// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LandVertexShader is the vertex shader for distant land statics.
//
//go:embed land.vert
var LandVertexShader string

// LandFragmentShader is the fragment shader for distant land statics.
//
//go:embed land.frag
var LandFragmentShader string

// LineVertexShader is the vertex shader for debug lines.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for debug lines.
//
//go:embed line.frag
var LineFragmentShader string
