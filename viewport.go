package mandel

// Viewport maps pixel space onto the complex plane.
// Center is the complex point shown in the middle of the frame,
// Scale is the width of one pixel in complex-plane units and must be positive.
type Viewport struct {
	Center complex128
	Scale  float64
}

// DefaultViewport shows the whole set in a 800x600 frame.
var DefaultViewport = Viewport{Center: complex(-0.5, 0), Scale: 0.004}

// PxToCmplx returns the complex point under pixel (x, y) of a w×h frame.
// Pixel (w/2, h/2) maps exactly to Center.
func (v Viewport) PxToCmplx(x, y, w, h int) complex128 {
	re := real(v.Center) + (float64(x)-float64(w)/2)*v.Scale
	im := imag(v.Center) + (float64(y)-float64(h)/2)*v.Scale
	return complex(re, im)
}

// CmplxToPx is the inverse of PxToCmplx. The result is not rounded.
func (v Viewport) CmplxToPx(c complex128, w, h int) (x, y float64) {
	x = (real(c)-real(v.Center))/v.Scale + float64(w)/2
	y = (imag(c)-imag(v.Center))/v.Scale + float64(h)/2
	return x, y
}

// Translate moves the viewport so that content follows a pointer dragged by (dx, dy) pixels.
func (v Viewport) Translate(dx, dy float64) Viewport {
	return Viewport{
		Center: complex(real(v.Center)-dx*v.Scale, imag(v.Center)-dy*v.Scale),
		Scale:  v.Scale,
	}
}

// ZoomAt multiplies the scale by factor while keeping focus at the same pixel.
// factor < 1 zooms in.
func (v Viewport) ZoomAt(focus complex128, factor float64) Viewport {
	return Viewport{
		Center: complex(
			real(focus)+(real(v.Center)-real(focus))*factor,
			imag(focus)+(imag(v.Center)-imag(focus))*factor,
		),
		Scale: v.Scale * factor,
	}
}

// Zoom is the magnification relative to a scale of one unit per pixel.
func (v Viewport) Zoom() float64 {
	return 1 / v.Scale
}
