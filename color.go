package mandel

import "image/color"

// InSet is the color of points that did not escape.
var InSet = color.RGBA{A: 255}

// Color maps an escape time to a blue gradient.
// Brightness is 255*iter/maxIter truncated, applied to the red and green channels.
func Color(iter, maxIter uint32) color.RGBA {
	if iter == maxIter || maxIter == 0 {
		return InSet
	}
	v := uint8(255 * uint64(iter) / uint64(maxIter))
	return color.RGBA{v, v, 255, 255}
}
