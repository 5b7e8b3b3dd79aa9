package display

import (
	"image/color"

	"github.com/nvr-ai/go-pngbench/images"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var black = color.RGBA{A: 255}

// Options configures a Pipeline.
type Options struct {
	// Logger receives state transitions at debug level (default: no-op).
	Logger *zap.Logger
}

// Pipeline is a display session: the subsystem, window, renderer and texture
// created for one image. Teardown releases whatever was created, so callers
// should defer it right after NewPipeline.
type Pipeline struct {
	backend Backend
	logger  *zap.Logger
	state   State

	subsystem bool
	window    Window
	renderer  Renderer
	texture   Texture

	format        textureFormat
	width, height int
}

// NewPipeline creates an uninitialized pipeline on backend.
func NewPipeline(backend Backend, opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Pipeline{backend: backend, logger: opts.Logger}
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	return p.state
}

// Initialize starts the display subsystem and opens a resizable window.
//
// Arguments:
//   - title: The window title.
//   - width: The window width, normally the image width.
//   - height: The window height, normally the image height.
//
// Returns:
//   - Window: The created window.
//   - error: A *SubsystemInitError if the subsystem or the window could not be created.
func (p *Pipeline) Initialize(title string, width, height int) (Window, error) {
	if p.state != StateUninitialized {
		return nil, stateError("initialize", StateUninitialized, p.state)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid window size %dx%d", width, height)
	}

	if err := p.backend.Init(); err != nil {
		return nil, &SubsystemInitError{Stage: "init", Err: err}
	}
	p.subsystem = true

	window, err := p.backend.CreateWindow(title, width, height, WindowResizable)
	if err != nil {
		return nil, &SubsystemInitError{Stage: "window", Err: err}
	}
	p.window = window
	p.transition(StateWindowCreated)
	return window, nil
}

// CreateRenderer creates the renderer bound to window.
func (p *Pipeline) CreateRenderer(window Window) (Renderer, error) {
	if p.state != StateWindowCreated {
		return nil, stateError("create renderer", StateWindowCreated, p.state)
	}
	if window == nil {
		return nil, errors.New("create renderer: nil window")
	}

	renderer, err := p.backend.CreateRenderer(window)
	if err != nil {
		return nil, &SubsystemInitError{Stage: "renderer", Err: err}
	}
	p.renderer = renderer
	p.transition(StateRendererCreated)
	return renderer, nil
}

// CreateTexture creates a static texture whose pixel format matches layout.
func (p *Pipeline) CreateTexture(renderer Renderer, layout images.Layout, width, height int) (Texture, error) {
	if p.state != StateRendererCreated || p.texture != nil {
		return nil, stateError("create texture", StateRendererCreated, p.state)
	}
	format, ok := lookupFormat(layout)
	if !ok {
		return nil, &SubsystemInitError{Stage: "texture", Err: errors.Errorf("no pixel format for layout %s", layout)}
	}

	texture, err := renderer.CreateTexture(format.pixelFormat, TextureAccessStatic, width, height)
	if err != nil {
		return nil, &SubsystemInitError{Stage: "texture", Err: err}
	}
	p.texture = texture
	p.format = format
	p.width, p.height = width, height
	p.logger.Debug("texture created",
		zap.Stringer("format", format.pixelFormat),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return texture, nil
}

// Upload copies the whole pixel buffer into texture. stride must equal the
// texture width times the bytes per pixel of its format.
func (p *Pipeline) Upload(texture Texture, pix []byte, stride int) error {
	if p.state != StateRendererCreated || p.texture == nil {
		return stateError("upload", StateRendererCreated, p.state)
	}
	if want := p.width * p.format.bytesPerPixel; stride != want {
		return &SubsystemInitError{Stage: "upload", Err: errors.Errorf("row stride %d, want %d", stride, want)}
	}
	if want := stride * p.height; len(pix) != want {
		return &SubsystemInitError{Stage: "upload", Err: errors.Errorf("buffer holds %d bytes, want %d", len(pix), want)}
	}

	if err := texture.Update(pix, stride); err != nil {
		return &SubsystemInitError{Stage: "upload", Err: err}
	}
	p.transition(StateTextureUploaded)
	return nil
}

// Run renders frames until a quit event is observed. Every frame first drains
// all pending events; if none of them was a quit, the frame is cleared to
// black, the texture is drawn over the full viewport and the frame is
// presented.
func (p *Pipeline) Run() error {
	if p.state != StateTextureUploaded {
		return stateError("run", StateTextureUploaded, p.state)
	}
	p.transition(StateRunning)

	frames := 0
	for !p.drainEvents() {
		if err := p.renderFrame(); err != nil {
			return errors.Wrapf(err, "render frame %d", frames)
		}
		frames++
	}
	p.logger.Debug("quit requested", zap.Int("frames", frames))
	return nil
}

func (p *Pipeline) drainEvents() (quit bool) {
	for {
		event, ok := p.backend.PollEvent()
		if !ok {
			return quit
		}
		if event.Type == EventQuit {
			quit = true
		}
	}
}

func (p *Pipeline) renderFrame() error {
	if err := p.renderer.SetDrawColor(black); err != nil {
		return err
	}
	if err := p.renderer.Clear(); err != nil {
		return err
	}
	if err := p.renderer.Copy(p.texture); err != nil {
		return err
	}
	return p.renderer.Present()
}

// Teardown destroys the texture, renderer and window and quits the subsystem,
// in that order, skipping anything that was never created. It is safe to call
// more than once.
func (p *Pipeline) Teardown() error {
	if p.state == StateTerminated {
		return nil
	}

	var err error
	if p.texture != nil {
		err = multierr.Append(err, errors.Wrap(p.texture.Destroy(), "destroy texture"))
		p.texture = nil
	}
	if p.renderer != nil {
		err = multierr.Append(err, errors.Wrap(p.renderer.Destroy(), "destroy renderer"))
		p.renderer = nil
	}
	if p.window != nil {
		err = multierr.Append(err, errors.Wrap(p.window.Destroy(), "destroy window"))
		p.window = nil
	}
	if p.subsystem {
		p.backend.Quit()
		p.subsystem = false
	}
	p.transition(StateTerminated)
	return err
}

func (p *Pipeline) transition(to State) {
	p.logger.Debug("display state", zap.Stringer("from", p.state), zap.Stringer("to", to))
	p.state = to
}

// Show displays img until the user quits.
//
// Arguments:
//   - backend: The window/render subsystem.
//   - title: The window title.
//   - img: The image to show. Its buffer is copied into the texture.
//   - opts: Pipeline options.
//
// Returns:
//   - error: A *SubsystemInitError if setup failed, a render error, or a
//     teardown error. Teardown has always run when Show returns.
func Show(backend Backend, title string, img *images.Image, opts Options) (err error) {
	if err := img.Validate(); err != nil {
		return errors.Wrap(err, "invalid image")
	}

	p := NewPipeline(backend, opts)
	defer func() {
		err = multierr.Append(err, p.Teardown())
	}()

	window, err := p.Initialize(title, img.Width, img.Height)
	if err != nil {
		return err
	}
	renderer, err := p.CreateRenderer(window)
	if err != nil {
		return err
	}
	texture, err := p.CreateTexture(renderer, img.Layout, img.Width, img.Height)
	if err != nil {
		return err
	}
	if err := p.Upload(texture, img.Pix, img.Stride()); err != nil {
		return err
	}
	return p.Run()
}
