package display

import (
	"fmt"
	"image/color"

	"github.com/pkg/errors"
)

// fakeBackend records every call in order. Each entry of frames is the event
// queue for one drain; once they run out, a quit event is delivered.
type fakeBackend struct {
	calls []string

	failInit, failWindow, failRenderer, failTexture error
	failDestroyTexture, failDestroyWindow           error

	frames   [][]Event
	drains   int
	queue    []Event
	draining bool

	texture *fakeTexture
}

func (b *fakeBackend) record(format string, args ...any) {
	b.calls = append(b.calls, fmt.Sprintf(format, args...))
}

func (b *fakeBackend) Init() error {
	b.record("init")
	return b.failInit
}

func (b *fakeBackend) Quit() {
	b.record("quit")
}

func (b *fakeBackend) CreateWindow(title string, width, height int, flags WindowFlags) (Window, error) {
	b.record("create window %q %dx%d resizable=%t", title, width, height, flags&WindowResizable != 0)
	if b.failWindow != nil {
		return nil, b.failWindow
	}
	return &fakeWindow{backend: b}, nil
}

func (b *fakeBackend) CreateRenderer(w Window) (Renderer, error) {
	if _, ok := w.(*fakeWindow); !ok {
		return nil, errors.New("foreign window")
	}
	b.record("create renderer")
	if b.failRenderer != nil {
		return nil, b.failRenderer
	}
	return &fakeRenderer{backend: b}, nil
}

func (b *fakeBackend) PollEvent() (Event, bool) {
	if !b.draining {
		b.draining = true
		if b.drains < len(b.frames) {
			b.queue = append([]Event(nil), b.frames[b.drains]...)
		} else {
			b.queue = []Event{{Type: EventQuit}}
		}
		b.drains++
	}
	if len(b.queue) == 0 {
		b.draining = false
		return Event{}, false
	}
	event := b.queue[0]
	b.queue = b.queue[1:]
	return event, true
}

type fakeWindow struct {
	backend *fakeBackend
}

func (w *fakeWindow) Destroy() error {
	w.backend.record("destroy window")
	return w.backend.failDestroyWindow
}

type fakeRenderer struct {
	backend *fakeBackend
	color   color.RGBA
}

func (r *fakeRenderer) CreateTexture(format PixelFormat, access TextureAccess, width, height int) (Texture, error) {
	r.backend.record("create texture %s static=%t %dx%d", format, access == TextureAccessStatic, width, height)
	if r.backend.failTexture != nil {
		return nil, r.backend.failTexture
	}
	r.backend.texture = &fakeTexture{backend: r.backend}
	return r.backend.texture, nil
}

func (r *fakeRenderer) SetDrawColor(c color.RGBA) error {
	r.color = c
	return nil
}

func (r *fakeRenderer) Clear() error {
	r.backend.record("clear %v", r.color)
	return nil
}

func (r *fakeRenderer) Copy(t Texture) error {
	if t != Texture(r.backend.texture) {
		return errors.New("copy of unknown texture")
	}
	r.backend.record("copy")
	return nil
}

func (r *fakeRenderer) Present() error {
	r.backend.record("present")
	return nil
}

func (r *fakeRenderer) Destroy() error {
	r.backend.record("destroy renderer")
	return nil
}

type fakeTexture struct {
	backend *fakeBackend
	pix     []byte
	stride  int
}

func (t *fakeTexture) Update(pix []byte, stride int) error {
	t.backend.record("update stride=%d len=%d", stride, len(pix))
	t.pix = append([]byte(nil), pix...)
	t.stride = stride
	return nil
}

func (t *fakeTexture) Destroy() error {
	t.backend.record("destroy texture")
	return t.backend.failDestroyTexture
}
