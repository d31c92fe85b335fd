package view

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"

	mandel "github.com/marben/mandel_viewer"
)

var ErrUnknownEvent = errors.New("unknown event")

// Event kinds sent by the browser.
const (
	KindResize = "resize"
	KindDrag   = "drag"
	KindScroll = "scroll"
	KindMove   = "move"
)

// Event is a single input event of the display surface.
type Event struct {
	Kind string `json:"kind"`

	// resize
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// drag
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`

	// scroll and move, X and Y is the cursor position if Hover is set
	Delta float64 `json:"delta,omitempty"`
	X     int     `json:"x,omitempty"`
	Y     int     `json:"y,omitempty"`
	Hover bool    `json:"hover,omitempty"`
}

// Apply feeds ev to the viewer and reports whether the image changed.
// A move only updates the pointer shown in Status.
func (v *Viewer) Apply(ev Event) (bool, error) {
	switch ev.Kind {
	case KindResize:
		return v.Frame(ev.Width, ev.Height), nil
	case KindDrag:
		return v.Drag(ev.DX, ev.DY), nil
	case KindScroll:
		return v.Scroll(ev.Delta, image.Pt(ev.X, ev.Y), ev.Hover), nil
	case KindMove:
		v.Move(image.Pt(ev.X, ev.Y))
		return false, nil
	}
	return false, fmt.Errorf("%w %q", ErrUnknownEvent, ev.Kind)
}

// FrameHeaderSize is the length of the width and height prefix of an encoded frame.
const FrameHeaderSize = 8

// EncodeFrame serializes b as little endian uint32 width and height followed by RGBA bytes, row by row.
func EncodeFrame(b mandel.Buffer) []byte {
	pix := b.Pixels()
	out := make([]byte, FrameHeaderSize, FrameHeaderSize+4*len(pix))
	binary.LittleEndian.PutUint32(out[0:], uint32(b.Width()))
	binary.LittleEndian.PutUint32(out[4:], uint32(b.Height()))
	for _, c := range pix {
		out = append(out, c.R, c.G, c.B, c.A)
	}
	return out
}

// DecodeFrameSize returns the dimensions stored in an encoded frame.
func DecodeFrameSize(frame []byte) (w, h int, err error) {
	if len(frame) < FrameHeaderSize {
		return 0, 0, fmt.Errorf("frame too short: %d bytes", len(frame))
	}
	w = int(binary.LittleEndian.Uint32(frame[0:]))
	h = int(binary.LittleEndian.Uint32(frame[4:]))
	if uint64(w)*uint64(h) > (math.MaxInt-FrameHeaderSize)/4 {
		return 0, 0, fmt.Errorf("frame %dx%d too large", w, h)
	}
	if len(frame) != FrameHeaderSize+4*w*h {
		return 0, 0, fmt.Errorf("frame %dx%d has %d bytes", w, h, len(frame))
	}
	return w, h, nil
}
