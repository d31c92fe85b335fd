package mandel

import "image/color"

// Buffer is a fractal image that a frame driver keeps in sync with the current view.
// The viewport passed to a mutator becomes the buffer's viewport.
type Buffer interface {
	Pixels() []color.RGBA
	Width() int
	Height() int
	Viewport() Viewport

	Resize(w, h int)
	Render(f Fractal, vp Viewport)
	Pan(f Fractal, vp Viewport)
	Zoom(f Fractal, vp Viewport)
}
