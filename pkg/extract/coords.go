package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Source canvas (an iPhone-sized frame) and target device geometry.
const (
	refWidth     = 375.0
	refHeight    = 812.0
	targetWidth  = 1080.0
	targetHeight = 1920.0

	// Placement for nodes whose origin sits at zero on an axis.
	zeroOffsetX = 100.0
	zeroOffsetY = 200.0
	zeroSpanX   = 900.0
	zeroSpanY   = 1700.0

	MinX = 50
	MaxX = 1030
	MinY = 100
	MaxY = 1850
)

// Coordinates is a synthesized tap position on a 1080x1920 screen.
// It encodes as the string "x,y" in JSON.
type Coordinates struct {
	X int
	Y int
}

// SynthesizeCoordinates maps a bounding box origin in canvas units to
// device coordinates. Negative origins are mirrored to positive, positive
// values are scaled from 375x812 to 1080x1920, and the result is clamped
// to [50,1030]x[100,1850].
//
// An origin of exactly zero would scale to the screen corner, so that axis
// is placed at offset + (|v| mod span) instead. The arithmetic is kept
// bit-for-bit with the generator's historical output.
func SynthesizeCoordinates(fx, fy float64) Coordinates {
	x := scaleAxis(fx, refWidth, targetWidth, zeroOffsetX, zeroSpanX)
	y := scaleAxis(fy, refHeight, targetHeight, zeroOffsetY, zeroSpanY)
	return Coordinates{
		X: clamp(x, MinX, MaxX),
		Y: clamp(y, MinY, MaxY),
	}
}

func scaleAxis(v, ref, target, offset, span float64) int {
	base := math.Abs(v)
	if base > 0 {
		return int(base / ref * target)
	}
	return int(offset + math.Mod(math.Abs(v), span))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Positive reports whether both components are greater than zero.
func (c Coordinates) Positive() bool {
	return c.X > 0 && c.Y > 0
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// MarshalText implements encoding.TextMarshaler.
func (c Coordinates) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for the "x,y" form.
func (c *Coordinates) UnmarshalText(text []byte) error {
	xs, ys, ok := strings.Cut(string(text), ",")
	if !ok {
		return fmt.Errorf("coordinates %q: expected \"x,y\"", text)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return fmt.Errorf("coordinates %q: x: %w", text, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return fmt.Errorf("coordinates %q: y: %w", text, err)
	}
	c.X, c.Y = x, y
	return nil
}
