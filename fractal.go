package mandel

// Fractal computes escape times of an escape-time fractal.
// Implementations must be pure so that they can be evaluated from many goroutines at once.
type Fractal interface {
	Name() string
	// MaxIter is the iteration budget. EscapeTime returns it for points that did not escape.
	MaxIter() uint32
	// EscapeTime returns the iteration at which c escaped, in range [0, MaxIter()].
	EscapeTime(c complex128) uint32
}

// Mandelbrot iterates z = z*z + c from z = 0.
type Mandelbrot struct {
	Iter uint32
}

var _ Fractal = Mandelbrot{}

func (m Mandelbrot) Name() string {
	return "Mandelbrot"
}

func (m Mandelbrot) MaxIter() uint32 {
	return m.Iter
}

// EscapeTime returns the index of the first iteration with |z|² > 4.
// |z|² == 4 does not count as escaped.
func (m Mandelbrot) EscapeTime(c complex128) uint32 {
	z := complex(0, 0)

	for i := uint32(0); i < m.Iter; i++ {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) > 4 {
			return i
		}
	}
	return m.Iter
}
