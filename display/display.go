// Package display - Shows a decoded image in a single resizable window.
//
// The Pipeline drives a Backend through a fixed setup order (subsystem,
// window, renderer, texture, upload), runs a polling render loop until the
// user quits, and releases everything in reverse order.
package display

import "image/color"

// PixelFormat is a backend-neutral texture pixel format.
type PixelFormat int

const (
	// PixelFormatRGB24 is packed 8-bit R, G, B.
	PixelFormatRGB24 PixelFormat = iota + 1
	// PixelFormatRGBA32 is packed 8-bit R, G, B, A in byte order.
	PixelFormatRGBA32
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB24:
		return "RGB24"
	case PixelFormatRGBA32:
		return "RGBA32"
	default:
		return "unknown"
	}
}

// TextureAccess describes how a texture's pixels are updated.
type TextureAccess int

const (
	// TextureAccessStatic textures are uploaded once and rarely changed.
	TextureAccessStatic TextureAccess = iota
	// TextureAccessStreaming textures are rewritten every frame.
	TextureAccessStreaming
)

// WindowFlags modify window creation.
type WindowFlags uint32

const (
	// WindowResizable lets the user resize the window.
	WindowResizable WindowFlags = 1 << iota
)

// EventType identifies a polled input event.
type EventType int

const (
	// EventQuit asks the application to stop.
	EventQuit EventType = iota + 1
	// EventKey is a key press that did not quit.
	EventKey
)

// Event is a single input event returned by Backend.PollEvent.
type Event struct {
	Type EventType
	// Key is the key code for EventKey.
	Key int
}

// Backend is the window/render subsystem.
type Backend interface {
	// Init starts the subsystem. Quit is only called after a successful Init.
	Init() error
	// Quit shuts the subsystem down.
	Quit()
	// CreateWindow opens a window with the given client size.
	CreateWindow(title string, width, height int, flags WindowFlags) (Window, error)
	// CreateRenderer creates a renderer drawing into w.
	CreateRenderer(w Window) (Renderer, error)
	// PollEvent returns the next pending event without blocking. The second
	// result is false when no event is pending.
	PollEvent() (Event, bool)
}

// Window is a backend window.
type Window interface {
	Destroy() error
}

// Renderer draws into a window.
type Renderer interface {
	// CreateTexture allocates a texture owned by this renderer.
	CreateTexture(format PixelFormat, access TextureAccess, width, height int) (Texture, error)
	SetDrawColor(c color.RGBA) error
	// Clear fills the frame with the draw color.
	Clear() error
	// Copy draws t stretched to the full viewport.
	Copy(t Texture) error
	// Present shows the frame.
	Present() error
	Destroy() error
}

// Texture is an image resource held by a renderer.
type Texture interface {
	// Update copies pix into the texture. The texture keeps its own copy.
	Update(pix []byte, stride int) error
	Destroy() error
}
