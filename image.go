package mandel

import (
	"image"
	"image/color"
	"math"
)

// scaleEpsilon is the largest scale difference a pan may carry and still be treated as a pixel shift.
const scaleEpsilon = 1e-10

// Image is a rendered fractal together with the viewport it was rendered against.
// Pixels are stored row-major.
type Image struct {
	pix  []color.RGBA
	w, h int
	vp   Viewport
}

var _ Buffer = (*Image)(nil)

// NewImage returns a black w×h image. Nothing is rendered until Render is called.
func NewImage(w, h int, vp Viewport) *Image {
	w, h = max(w, 0), max(h, 0)
	return &Image{
		pix: blank(w * h),
		w:   w,
		h:   h,
		vp:  vp,
	}
}

func blank(n int) []color.RGBA {
	pix := make([]color.RGBA, n)
	for i := range pix {
		pix[i] = InSet
	}
	return pix
}

func (img *Image) Pixels() []color.RGBA {
	return img.pix
}

func (img *Image) Width() int {
	return img.w
}

func (img *Image) Height() int {
	return img.h
}

func (img *Image) Viewport() Viewport {
	return img.vp
}

// At returns the pixel at (x, y). Coordinates outside the image return black.
func (img *Image) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= img.w || y >= img.h {
		return InSet
	}
	return img.pix[y*img.w+x]
}

// RGBA copies the pixels into a new image.RGBA.
func (img *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.w, img.h))
	for i, c := range img.pix {
		out.Pix[4*i+0] = c.R
		out.Pix[4*i+1] = c.G
		out.Pix[4*i+2] = c.B
		out.Pix[4*i+3] = c.A
	}
	return out
}

// Resize reallocates the pixel buffer when the dimensions change.
// The viewport is kept and the pixels are black until the next Render.
func (img *Image) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == img.w && h == img.h {
		return
	}
	img.w, img.h = w, h
	img.pix = blank(w * h)
}

// Render computes every pixel of the image for vp.
func (img *Image) Render(f Fractal, vp Viewport) {
	img.vp = vp
	img.renderRect(f, image.Rect(0, 0, img.w, img.h))
}

// Pan moves the image to vp, reusing the pixels still visible and rendering only the exposed strips.
// Copied pixels keep the colour computed for the old viewport, exposed strips are rendered for vp.
// This is bit-identical to Render(f, vp) when both viewports lie exactly on the same pixel grid,
// e.g. power of two scales; otherwise a copied pixel may differ from a fresh render by rounding.
// Scale changes and jumps without overlap fall back to Render.
func (img *Image) Pan(f Fractal, vp Viewport) {
	fx, fy := img.offset(vp)

	// compare before converting, far jumps do not fit in an int and NaN must not reach the shift
	if !(math.Abs(fx) < float64(img.w)) || !(math.Abs(fy) < float64(img.h)) || math.Abs(img.vp.Scale-vp.Scale) > scaleEpsilon {
		img.Render(f, vp)
		return
	}
	dx, dy := int(fx), int(fy)

	pix := blank(len(img.pix))
	for y := 0; y < img.h; y++ {
		oldY := y - dy
		if oldY < 0 || oldY >= img.h {
			continue
		}
		// copy the overlapping run of the row in one go
		x0, x1 := max(dx, 0), min(img.w+dx, img.w)
		copy(pix[y*img.w+x0:y*img.w+x1], img.pix[oldY*img.w+x0-dx:oldY*img.w+x1-dx])
	}

	img.pix = pix
	img.vp = vp

	for _, r := range exposed(img.w, img.h, dx, dy) {
		img.renderRect(f, r)
	}
}

// Zoom renders the image for vp from scratch.
// TODO: reuse scaled pixels as a preview once there is a way to mark a frame as approximate.
func (img *Image) Zoom(f Fractal, vp Viewport) {
	img.Render(f, vp)
}

// offset returns the shift in whole pixels that aligns the current content with vp.
func (img *Image) offset(vp Viewport) (dx, dy float64) {
	ox, oy := img.vp.CmplxToPx(vp.Center, img.w, img.h)
	return math.Round(float64(img.w)/2 - ox), math.Round(float64(img.h)/2 - oy)
}

// exposed returns the regions of a w×h frame left uncovered after shifting its content by (dx, dy).
// Column strips span the full height, row strips skip the columns already covered.
func exposed(w, h, dx, dy int) []image.Rectangle {
	var rects []image.Rectangle

	// dx > 0 moves content right, so the left edge is new
	x0, x1 := 0, w
	switch {
	case dx > 0:
		rects = append(rects, image.Rect(0, 0, dx, h))
		x0 = dx
	case dx < 0:
		rects = append(rects, image.Rect(w+dx, 0, w, h))
		x1 = w + dx
	}

	switch {
	case dy > 0:
		rects = append(rects, image.Rect(x0, 0, x1, dy))
	case dy < 0:
		rects = append(rects, image.Rect(x0, h+dy, x1, h))
	}

	return rects
}

func (img *Image) renderRect(f Fractal, r image.Rectangle) {
	maxIter := f.MaxIter()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.pix[y*img.w : (y+1)*img.w]
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.vp.PxToCmplx(x, y, img.w, img.h)
			row[x] = Color(f.EscapeTime(c), maxIter)
		}
	}
}
