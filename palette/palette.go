// Package palette defines the RGB triple used throughout the orb and the
// normalization of the color inputs accepted at the public surface: a
// triple, a recognized color name, or a driver-native packed value.
package palette

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidColor marks a color input that cannot be normalized. The
// rejected call leaves no state behind; callers may retry with fixed input.
var ErrInvalidColor = errors.New("invalid color")

// RGB is a plain 8-bit-per-channel color triple.
type RGB struct {
	R, G, B uint8
}

// Native is a driver-native packed color value, 0xRRGGBB.
type Native uint32

// RGB unpacks the native value into a triple.
func (n Native) RGB() RGB {
	return RGB{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
	}
}

// Named colors recognized by Normalize. Lookup is case-insensitive.
var names = map[string]RGB{
	"red":    {255, 0, 0},
	"green":  {0, 255, 0},
	"blue":   {0, 0, 255},
	"yellow": {255, 255, 0},
	"purple": {128, 0, 128},
	"cyan":   {0, 255, 255},
	"white":  {255, 255, 255},
	"black":  {0, 0, 0},
	"orange": {255, 165, 0},
}

// Names returns the recognized color names.
func Names() []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	return out
}

// Normalize reduces any accepted color form to an RGB triple. It accepts
// an RGB value, a [3]int triple with channels in 0..255, a named color
// string, or a driver-native packed value. Anything else fails with
// ErrInvalidColor.
func Normalize(v interface{}) (RGB, error) {
	switch c := v.(type) {
	case RGB:
		return c, nil
	case [3]int:
		for _, ch := range c {
			if ch < 0 || ch > 255 {
				return RGB{}, fmt.Errorf("%w: channel %d outside 0..255", ErrInvalidColor, ch)
			}
		}
		return RGB{uint8(c[0]), uint8(c[1]), uint8(c[2])}, nil
	case string:
		name := strings.ToLower(strings.TrimSpace(c))
		if rgb, ok := names[name]; ok {
			return rgb, nil
		}
		return RGB{}, fmt.Errorf("%w: unknown name %q", ErrInvalidColor, c)
	case Native:
		return c.RGB(), nil
	default:
		return RGB{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidColor, v)
	}
}

// Scale multiplies each channel by s (clamped to [0,1]).
func Scale(c RGB, s float64) RGB {
	if s <= 0 {
		return RGB{}
	}
	if s > 1 {
		s = 1
	}
	return RGB{
		R: uint8(float64(c.R) * s),
		G: uint8(float64(c.G) * s),
		B: uint8(float64(c.B) * s),
	}
}

// Wheel maps h in [0,1) around the hue circle at full saturation. Values
// outside the range wrap.
func Wheel(h float64) RGB {
	h = h - float64(int(h))
	if h < 0 {
		h += 1
	}
	h *= 6
	switch {
	case h < 1:
		return RGB{R: 255, G: uint8(255 * h)}
	case h < 2:
		return RGB{R: uint8(255 * (2 - h)), G: 255}
	case h < 3:
		return RGB{G: 255, B: uint8(255 * (h - 2))}
	case h < 4:
		return RGB{G: uint8(255 * (4 - h)), B: 255}
	case h < 5:
		return RGB{R: uint8(255 * (h - 4)), B: 255}
	default:
		return RGB{R: 255, B: uint8(255 * (6 - h))}
	}
}
