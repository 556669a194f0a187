package core

import "errors"

var (
	// ErrSurfaceOutdated means the surface must be reconfigured before it can
	// be drawn to again, typically right after a resize or while minimized.
	ErrSurfaceOutdated = errors.New("surface outdated")
	// ErrSurfaceLost means the surface is gone and frame acquisition failed.
	ErrSurfaceLost = errors.New("surface lost")
)

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
	TextureSRGBA8
)

type PresentMode int

const (
	PresentFifo      PresentMode = iota // vsync
	PresentImmediate                    // no vsync
)

// SurfaceConfig describes how the presentation surface is set up.
type SurfaceConfig struct {
	Format      TextureFormat
	Width       int
	Height      int
	PresentMode PresentMode
}

// SurfaceTexture is the drawable acquired for one frame.
type SurfaceTexture struct {
	Width, Height int
	Frame         uint64
}

type LoadOp int

const (
	LoadClear LoadOp = iota
	LoadKeep
)

// PassDesc starts a render pass on a surface texture.
type PassDesc struct {
	Target     SurfaceTexture
	Load       LoadOp
	ClearColor [4]float32 // premultiplied RGBA, used with LoadClear
}

// Texture is an opaque GPU texture handle.
type Texture interface {
	Size() (w, h int)
}

type Pipeline interface{}

type Mesh interface{}

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte // tightly packed rows, may be nil
	MinFilter     string // "linear" or "nearest"
	MagFilter     string
	WrapU         string // "clamp" or "repeat"
	WrapV         string
}

// TextureRegion is a sub-rectangle in texels, origin top-left.
type TextureRegion struct {
	X, Y, W, H int
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool // premultiplied alpha
}

// Rect is a pixel rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H int
}

type DrawCmd struct {
	Pipe       Pipeline
	Mesh       Mesh
	FirstIndex int
	IndexCount int
	Scissor    Rect
	Uniforms   map[string]any
	Samplers   map[string]Texture
}
