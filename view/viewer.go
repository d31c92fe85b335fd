// Package view drives a fractal image from pointer and resize events.
package view

import (
	"image"
	"math"

	mandel "github.com/marben/mandel_viewer"
)

// scrollThreshold is the smallest scroll delta that zooms.
const scrollThreshold = 0.1

// Viewer turns raw input into viewport changes and keeps its buffer rendered for the current view.
// It is not safe for concurrent use.
type Viewer struct {
	fractal mandel.Fractal
	initial mandel.Viewport
	region  *mandel.Region
	buf     mandel.Buffer
	newBuf  func(w, h int, vp mandel.Viewport) mandel.Buffer

	zoomIn, zoomOut float64

	// sub-pixel drag carried over to the next Drag
	remX, remY float64

	cursor image.Point
	hover  bool
}

type Option func(*Viewer)

// WithZoomFactors sets the scale multipliers applied per scroll step.
func WithZoomFactors(in, out float64) Option {
	return func(v *Viewer) {
		v.zoomIn, v.zoomOut = in, out
	}
}

// WithRegion fits r to the display surface on the first Frame instead of starting at the initial viewport.
func WithRegion(r mandel.Region) Option {
	return func(v *Viewer) {
		v.region = &r
	}
}

// WithBuffer replaces the constructor of the image buffer.
func WithBuffer(newBuf func(w, h int, vp mandel.Viewport) mandel.Buffer) Option {
	return func(v *Viewer) {
		v.newBuf = newBuf
	}
}

func New(f mandel.Fractal, initial mandel.Viewport, opts ...Option) *Viewer {
	v := &Viewer{
		fractal: f,
		initial: initial,
		zoomIn:  0.9,
		zoomOut: 1.1,
		newBuf: func(w, h int, vp mandel.Viewport) mandel.Buffer {
			return mandel.NewImage(w, h, vp)
		},
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Buffer returns the current image or nil before the first Frame.
func (v *Viewer) Buffer() mandel.Buffer {
	return v.buf
}

// Viewport returns the viewport currently displayed.
func (v *Viewer) Viewport() mandel.Viewport {
	if v.buf == nil {
		return v.initial
	}
	return v.buf.Viewport()
}

// Frame adapts the buffer to a w×h display surface.
// It renders on the first non-empty frame and on every size change and reports whether it did.
func (v *Viewer) Frame(w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	if v.buf == nil {
		if v.region != nil {
			v.initial = v.region.Viewport(w, h)
		}
		v.buf = v.newBuf(w, h, v.initial)
		v.buf.Render(v.fractal, v.initial)
		return true
	}
	if v.buf.Width() == w && v.buf.Height() == h {
		return false
	}
	vp := v.buf.Viewport()
	v.buf.Resize(w, h)
	v.buf.Render(v.fractal, vp)
	return true
}

// Drag pans by a pointer movement of (dx, dy) pixels.
// Only whole pixels are applied, the fraction is kept for the next call so pans stay on the pixel grid.
func (v *Viewer) Drag(dx, dy float64) bool {
	if v.buf == nil {
		return false
	}
	dx, dy = dx+v.remX, dy+v.remY
	px, py := math.Trunc(dx), math.Trunc(dy)
	v.remX, v.remY = dx-px, dy-py
	if px == 0 && py == 0 {
		return false
	}
	v.buf.Pan(v.fractal, v.buf.Viewport().Translate(px, py))
	return true
}

// Scroll zooms in for positive delta and out for negative delta.
// When hover is set the complex point under cursor stays in place, otherwise the zoom is centred.
func (v *Viewer) Scroll(delta float64, cursor image.Point, hover bool) bool {
	if hover {
		v.Move(cursor)
	}
	if v.buf == nil || math.Abs(delta) <= scrollThreshold {
		return false
	}
	factor := v.zoomOut
	if delta > 0 {
		factor = v.zoomIn
	}

	vp := v.buf.Viewport()
	focus := vp.Center
	if hover {
		focus = vp.PxToCmplx(cursor.X, cursor.Y, v.buf.Width(), v.buf.Height())
	}
	v.buf.Zoom(v.fractal, vp.ZoomAt(focus, factor))
	// a zoom moves the pixel grid
	v.remX, v.remY = 0, 0
	return true
}

// Move records the pointer position shown in the status.
func (v *Viewer) Move(cursor image.Point) {
	v.cursor, v.hover = cursor, true
}

// Status is the debug overlay shown next to the image.
type Status struct {
	Fractal  string  `json:"fractal"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Zoom     float64 `json:"zoom"`
	Scale    float64 `json:"scale"`
	CenterRe float64 `json:"center_re"`
	CenterIm float64 `json:"center_im"`
	// Mouse is nil until the pointer has been over a rendered image.
	Mouse *Mouse `json:"mouse,omitempty"`
}

// Mouse is the last pointer position in pixels and on the complex plane.
type Mouse struct {
	X  int     `json:"x"`
	Y  int     `json:"y"`
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

func (v *Viewer) Status() Status {
	vp := v.Viewport()
	s := Status{
		Fractal:  v.fractal.Name(),
		Zoom:     vp.Zoom(),
		Scale:    vp.Scale,
		CenterRe: real(vp.Center),
		CenterIm: imag(vp.Center),
	}
	if v.buf == nil {
		return s
	}
	s.Width, s.Height = v.buf.Width(), v.buf.Height()
	if v.hover && s.Width > 0 && s.Height > 0 {
		c := vp.PxToCmplx(v.cursor.X, v.cursor.Y, s.Width, s.Height)
		s.Mouse = &Mouse{X: v.cursor.X, Y: v.cursor.Y, Re: real(c), Im: imag(c)}
	}
	return s
}
