package mandel

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridViewport has a power of two scale so that whole pixel pans are exact in float64.
var gridViewport = Viewport{Center: complex(-0.5, 0), Scale: 1.0 / 128}

type countingFractal struct {
	Fractal
	calls int
}

func (f *countingFractal) EscapeTime(c complex128) uint32 {
	f.calls++
	return f.Fractal.EscapeTime(c)
}

func rendered(w, h int, f Fractal, vp Viewport) *Image {
	img := NewImage(w, h, vp)
	img.Render(f, vp)
	return img
}

func TestNewImage(t *testing.T) {
	img := NewImage(4, 3, gridViewport)

	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 3, img.Height())
	assert.Equal(t, gridViewport, img.Viewport())
	require.Len(t, img.Pixels(), 12)
	for _, p := range img.Pixels() {
		assert.Equal(t, InSet, p)
	}
}

func TestRender(t *testing.T) {
	f := Mandelbrot{Iter: 64}
	const w, h = 40, 30
	img := rendered(w, h, f, gridViewport)

	require.Len(t, img.Pixels(), w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := Color(f.EscapeTime(gridViewport.PxToCmplx(x, y, w, h)), f.MaxIter())
			assert.Equal(t, want, img.Pixels()[y*w+x], "pixel %d,%d", x, y)
		}
	}
	// the centre of the default view is inside the main cardioid
	assert.Equal(t, InSet, img.At(w/2, h/2))
	assert.Equal(t, InSet, img.At(-1, 0))
}

func TestPanMatchesRender(t *testing.T) {
	f := Mandelbrot{Iter: 50}
	sizes := [][2]int{{64, 48}, {65, 37}}
	offsets := [][2]int{
		{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{5, 3}, {-7, 2}, {11, -9}, {-4, -4},
		{63, 0}, {0, 36}, {-63, -36},
	}

	for _, s := range sizes {
		w, h := s[0], s[1]
		for _, o := range offsets {
			next := gridViewport.Translate(float64(o[0]), float64(o[1]))

			img := rendered(w, h, f, gridViewport)
			img.Pan(f, next)

			want := rendered(w, h, f, next)
			assert.Equal(t, want.Pixels(), img.Pixels(), "size %v offset %v", s, o)
			assert.Equal(t, next, img.Viewport())
		}
	}
}

func TestPanSequence(t *testing.T) {
	f := Mandelbrot{Iter: 80}
	const w, h = 50, 40

	vp := gridViewport
	img := rendered(w, h, f, vp)
	for _, o := range [][2]int{{3, 0}, {0, -5}, {-12, 7}, {20, 20}, {-1, -1}} {
		vp = vp.Translate(float64(o[0]), float64(o[1]))
		img.Pan(f, vp)
	}

	assert.Equal(t, rendered(w, h, f, vp).Pixels(), img.Pixels())
}

func TestPanRendersExposedAreaOnly(t *testing.T) {
	const w, h = 64, 48
	tests := []struct {
		dx, dy int
		calls  int
	}{
		{0, 0, 0},
		{3, 0, 3 * h},
		{-3, 0, 3 * h},
		{0, 2, 2 * w},
		{0, -2, 2 * w},
		{3, -2, 3*h + 2*(w-3)},
		{-10, 10, 10*h + 10*(w-10)},
	}

	for _, tt := range tests {
		f := &countingFractal{Fractal: Mandelbrot{Iter: 20}}
		img := rendered(w, h, f, gridViewport)
		f.calls = 0

		img.Pan(f, gridViewport.Translate(float64(tt.dx), float64(tt.dy)))
		assert.Equal(t, tt.calls, f.calls, "offset %d,%d", tt.dx, tt.dy)
	}
}

func TestPanFallback(t *testing.T) {
	f := Mandelbrot{Iter: 50}
	const w, h = 64, 48

	deep := Viewport{Center: -0.5, Scale: 1e-15}

	tests := []struct {
		name string
		from Viewport
		next Viewport
	}{
		{"no horizontal overlap", gridViewport, gridViewport.Translate(w, 0)},
		{"no vertical overlap", gridViewport, gridViewport.Translate(0, -h)},
		{"far jump", gridViewport, gridViewport.Translate(-1000, 1000)},
		{"scale change", gridViewport, Viewport{Center: gridViewport.Center, Scale: gridViewport.Scale * 2}},
		{"scale change with shift", gridViewport, Viewport{Center: gridViewport.Center + 0.1, Scale: gridViewport.Scale / 2}},
		// the offset is around 1e20 pixels, beyond the int range
		{"deep zoom jump", deep, Viewport{Center: 1e5, Scale: deep.Scale}},
		{"deep zoom jump back", Viewport{Center: 1e5, Scale: deep.Scale}, Viewport{Center: -1e5, Scale: deep.Scale}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf := &countingFractal{Fractal: f}
			img := rendered(w, h, cf, tt.from)
			cf.calls = 0

			require.NotPanics(t, func() { img.Pan(cf, tt.next) })

			assert.Equal(t, w*h, cf.calls)
			assert.Equal(t, rendered(w, h, f, tt.next).Pixels(), img.Pixels())
			assert.Equal(t, tt.next, img.Viewport())
		})
	}
}

func TestPanOffGrid(t *testing.T) {
	f := Mandelbrot{Iter: 100}
	const w, h = 200, 150

	// 0.004*0.9 is not a power of two, so copied pixels carry the rounding of the old viewport
	vp := DefaultViewport.ZoomAt(complex(-0.3, 0.2), 0.9)
	img := rendered(w, h, f, vp)

	for i := 0; i < 20; i++ {
		prev := append(img.Pixels()[:0:0], img.Pixels()...)
		next := vp.Translate(3, -2)
		img.Pan(f, next)
		require.Equal(t, next, img.Viewport())

		fresh := rendered(w, h, f, next)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				got := img.Pixels()[y*w+x]
				if x >= 3 && y < h-2 {
					// shifted unchanged from the previous frame
					require.Equal(t, prev[(y+2)*w+x-3], got, "pan %d pixel %d,%d", i, x, y)
				} else {
					// newly exposed, rendered for next
					require.Equal(t, fresh.Pixels()[y*w+x], got, "pan %d pixel %d,%d", i, x, y)
				}
			}
		}
		vp = next
	}

	// drift against a fresh render is limited to rare boundary pixels
	fresh := rendered(w, h, f, vp)
	mismatched := 0
	for i, p := range img.Pixels() {
		if p != fresh.Pixels()[i] {
			mismatched++
		}
	}
	assert.LessOrEqual(t, mismatched, w*h/100)
}

func TestZoom(t *testing.T) {
	f := Mandelbrot{Iter: 50}
	const w, h = 32, 24

	img := rendered(w, h, f, gridViewport)
	next := gridViewport.ZoomAt(gridViewport.PxToCmplx(3, 4, w, h), 0.5)
	img.Zoom(f, next)

	assert.Equal(t, rendered(w, h, f, next).Pixels(), img.Pixels())
	assert.Equal(t, next, img.Viewport())
}

func TestResize(t *testing.T) {
	f := Mandelbrot{Iter: 30}
	img := rendered(10, 10, f, gridViewport)

	img.Resize(20, 5)
	assert.Equal(t, 20, img.Width())
	assert.Equal(t, 5, img.Height())
	assert.Equal(t, gridViewport, img.Viewport())

	img.Render(f, img.Viewport())
	assert.Len(t, img.Pixels(), 20*5)
	assert.Equal(t, rendered(20, 5, f, gridViewport).Pixels(), img.Pixels())

	img.Resize(3, 7)
	img.Render(f, img.Viewport())
	assert.Len(t, img.Pixels(), 3*7)
}

func TestResizeSameSizeKeepsPixels(t *testing.T) {
	f := Mandelbrot{Iter: 30}
	img := rendered(10, 10, f, gridViewport)
	before := append(img.Pixels()[:0:0], img.Pixels()...)

	img.Resize(10, 10)
	assert.Equal(t, before, img.Pixels())
}

func TestEmptyImage(t *testing.T) {
	f := Mandelbrot{Iter: 30}

	for _, s := range [][2]int{{0, 0}, {0, 5}, {5, 0}, {-3, 2}} {
		img := NewImage(s[0], s[1], gridViewport)
		img.Render(f, gridViewport)
		img.Pan(f, gridViewport.Translate(1, 1))
		img.Zoom(f, gridViewport)

		assert.Empty(t, img.Pixels(), "size %v", s)
		assert.Equal(t, gridViewport, img.Viewport())
	}
}

func TestRGBA(t *testing.T) {
	img := rendered(7, 5, Mandelbrot{Iter: 40}, gridViewport)
	out := img.RGBA()

	assert.Equal(t, image.Rect(0, 0, 7, 5), out.Bounds())
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			assert.Equal(t, img.At(x, y), out.RGBAAt(x, y))
		}
	}
}

func TestExposed(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   []image.Rectangle
	}{
		{0, 0, nil},
		{2, 0, []image.Rectangle{image.Rect(0, 0, 2, 8)}},
		{-2, 0, []image.Rectangle{image.Rect(8, 0, 10, 8)}},
		{0, 3, []image.Rectangle{image.Rect(0, 0, 10, 3)}},
		{0, -3, []image.Rectangle{image.Rect(0, 5, 10, 8)}},
		{2, 3, []image.Rectangle{image.Rect(0, 0, 2, 8), image.Rect(2, 0, 10, 3)}},
		{-2, -3, []image.Rectangle{image.Rect(8, 0, 10, 8), image.Rect(0, 5, 8, 8)}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, exposed(10, 8, tt.dx, tt.dy), "offset %d,%d", tt.dx, tt.dy)
	}
}
