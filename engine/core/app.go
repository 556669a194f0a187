package core

import "image"

// Window abstraction. Implementations deliver input through the callback set
// with SetEventCallback while PollEvents/WaitEvents run.
type Window interface {
	PollEvents()
	WaitEvents()
	Wake() // unblocks a pending WaitEvents from any goroutine
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	Position() (int, int)
	Size() (int, int)
	ContentScale() float32
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	Clipboard() string
	SetClipboard(text string)
	SetCursor(c Cursor)
	Destroy()
}

// Renderer is the GPU context: device + queue + presentation surface.
type Renderer interface {
	Configure(cfg SurfaceConfig) error
	SurfaceConfig() SurfaceConfig
	// AcquireFrame returns the surface texture for this redraw, or
	// ErrSurfaceOutdated when the surface no longer matches the window.
	AcquireFrame() (SurfaceTexture, error)

	CreateTexture(desc TextureDesc) (Texture, error)
	UpdateTexture(t Texture, region TextureRegion, pixels []byte) error
	DeleteTexture(t Texture)
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error

	BeginPass(desc PassDesc) (RenderPass, error)
	Submit()
	Present(target SurfaceTexture)

	Info() GPUInfo
	Shutdown()
}

// RenderPass records draws against one surface texture until End.
type RenderPass interface {
	Draw(cmd DrawCmd)
	End()
}

type GPUInfo struct {
	Vendor   string
	Renderer string
	Version  string
}

// Config for the window and surface.
type Config struct {
	Title       string
	Width       int
	Height      int
	X, Y        int
	HasPosition bool
	VSync       bool
	ClearColor  [4]float32 // RGBA
	Icon        image.Image
}
