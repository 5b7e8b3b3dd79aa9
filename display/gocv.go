package display

import (
	"image"
	"image/color"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

const keyEscape = 27

// GocvBackend implements Backend with OpenCV highgui windows. A renderer is a
// BGR frame sized to its window, a texture is an RGB or RGBA Mat, and the
// window itself scales the presented frame to its current size.
type GocvBackend struct {
	logger      *zap.Logger
	initialized bool
	windows     []*gocvWindow
	pending     []Event
	pumped      bool
}

// NewGocvBackend creates a backend. logger may be nil.
func NewGocvBackend(logger *zap.Logger) *GocvBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GocvBackend{logger: logger}
}

// Init implements Backend. It fails when no display server is reachable.
func (b *GocvBackend) Init() error {
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return errors.New("no display available: neither DISPLAY nor WAYLAND_DISPLAY is set")
	}
	b.initialized = true
	return nil
}

// Quit implements Backend.
func (b *GocvBackend) Quit() {
	b.initialized = false
	b.windows = nil
	b.pending = nil
	b.pumped = false
}

// CreateWindow implements Backend.
func (b *GocvBackend) CreateWindow(title string, width, height int, flags WindowFlags) (Window, error) {
	if !b.initialized {
		return nil, errors.New("create window: subsystem not initialized")
	}

	window := gocv.NewWindow(title)
	if flags&WindowResizable == 0 {
		if err := window.SetWindowProperty(gocv.WindowPropertyAutosize, gocv.WindowAutosize); err != nil {
			return nil, multierr.Combine(errors.Wrap(err, "create window: autosize"), window.Close())
		}
	}
	if err := window.ResizeWindow(width, height); err != nil {
		return nil, multierr.Combine(errors.Wrap(err, "create window: resize"), window.Close())
	}

	w := &gocvWindow{window: window, events: window, width: width, height: height}
	b.windows = append(b.windows, w)
	b.logger.Debug("window created", zap.String("title", title), zap.Int("width", width), zap.Int("height", height))
	return w, nil
}

// CreateRenderer implements Backend.
func (b *GocvBackend) CreateRenderer(w Window) (Renderer, error) {
	window, ok := w.(*gocvWindow)
	if !ok || window.destroyed {
		return nil, errors.New("create renderer: not an open gocv window")
	}
	return &gocvRenderer{
		window:  window,
		frame:   gocv.NewMatWithSize(window.height, window.width, gocv.MatTypeCV8UC3),
		scratch: gocv.NewMat(),
		color:   black,
	}, nil
}

// PollEvent implements Backend. Window events are pumped once per drain: the
// first call after an empty poll collects key presses and closed windows,
// later calls hand them out until none are left.
func (b *GocvBackend) PollEvent() (Event, bool) {
	if len(b.pending) == 0 && !b.pumped {
		b.pump()
		b.pumped = true
	}
	if len(b.pending) == 0 {
		b.pumped = false
		return Event{}, false
	}
	event := b.pending[0]
	b.pending = b.pending[1:]
	return event, true
}

func (b *GocvBackend) pump() {
	for _, w := range b.windows {
		if w.destroyed {
			continue
		}
		if w.shown && (!w.events.IsOpen() || w.events.GetWindowProperty(gocv.WindowPropertyVisible) < 1) {
			b.pending = append(b.pending, Event{Type: EventQuit})
			continue
		}
		switch key := w.events.PollKey(); {
		case key == keyEscape:
			b.pending = append(b.pending, Event{Type: EventQuit})
		case key >= 0:
			b.pending = append(b.pending, Event{Type: EventKey, Key: key})
		}
	}
}

// windowEvents is the part of *gocv.Window read by the event pump.
type windowEvents interface {
	IsOpen() bool
	GetWindowProperty(flag gocv.WindowPropertyFlag) float64
	PollKey() int
}

type gocvWindow struct {
	window        *gocv.Window
	events        windowEvents
	width, height int
	shown         bool
	destroyed     bool
}

func (w *gocvWindow) Destroy() error {
	if w.destroyed {
		return nil
	}
	w.destroyed = true
	return w.window.Close()
}

type gocvRenderer struct {
	window  *gocvWindow
	frame   gocv.Mat
	scratch gocv.Mat
	color   color.RGBA
}

type matFormat struct {
	matType       gocv.MatType
	toBGR         gocv.ColorConversionCode
	bytesPerPixel int
}

var matFormats = map[PixelFormat]matFormat{
	PixelFormatRGB24:  {matType: gocv.MatTypeCV8UC3, toBGR: gocv.ColorRGBToBGR, bytesPerPixel: 3},
	PixelFormatRGBA32: {matType: gocv.MatTypeCV8UC4, toBGR: gocv.ColorRGBAToBGR, bytesPerPixel: 4},
}

func (r *gocvRenderer) CreateTexture(format PixelFormat, access TextureAccess, width, height int) (Texture, error) {
	if access != TextureAccessStatic {
		return nil, errors.New("create texture: only static access is supported")
	}
	mf, ok := matFormats[format]
	if !ok {
		return nil, errors.Errorf("create texture: unsupported pixel format %s", format)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("create texture: invalid size %dx%d", width, height)
	}
	return &gocvTexture{
		mat:    gocv.NewMatWithSize(height, width, mf.matType),
		format: mf,
		width:  width,
		height: height,
	}, nil
}

func (r *gocvRenderer) SetDrawColor(c color.RGBA) error {
	r.color = c
	return nil
}

func (r *gocvRenderer) Clear() error {
	r.frame.SetTo(gocv.NewScalar(float64(r.color.B), float64(r.color.G), float64(r.color.R), float64(r.color.A)))
	return nil
}

func (r *gocvRenderer) Copy(t Texture) error {
	texture, ok := t.(*gocvTexture)
	if !ok {
		return errors.New("copy: not a gocv texture")
	}
	if err := gocv.CvtColor(texture.mat, &r.scratch, texture.format.toBGR); err != nil {
		return errors.Wrap(err, "copy: convert to BGR")
	}
	if err := gocv.Resize(r.scratch, &r.frame, image.Pt(r.frame.Cols(), r.frame.Rows()), 0, 0, gocv.InterpolationLinear); err != nil {
		return errors.Wrap(err, "copy: stretch to viewport")
	}
	return nil
}

func (r *gocvRenderer) Present() error {
	if err := r.window.window.IMShow(r.frame); err != nil {
		return errors.Wrap(err, "present")
	}
	r.window.shown = true
	return nil
}

func (r *gocvRenderer) Destroy() error {
	return multierr.Combine(r.scratch.Close(), r.frame.Close())
}

type gocvTexture struct {
	mat           gocv.Mat
	format        matFormat
	width, height int
}

// Update copies pix row by row into the Mat's own memory.
func (t *gocvTexture) Update(pix []byte, stride int) error {
	dst, err := t.mat.DataPtrUint8()
	if err != nil {
		return errors.Wrap(err, "texture data")
	}
	rowLen := t.width * t.format.bytesPerPixel
	if stride < rowLen || len(pix) < stride*(t.height-1)+rowLen {
		return errors.Errorf("update: %d bytes with stride %d do not cover %dx%d", len(pix), stride, t.width, t.height)
	}
	for y := 0; y < t.height; y++ {
		copy(dst[y*rowLen:(y+1)*rowLen], pix[y*stride:y*stride+rowLen])
	}
	return nil
}

func (t *gocvTexture) Destroy() error {
	return t.mat.Close()
}
