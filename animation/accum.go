// Package animation holds the orb's step-based animation state machines: a
// comet orbiting a ring with a decaying tail, a gust-driven flame flicker
// along an axis, and the composer that merges comets into one frame.
package animation

import "github.com/coreelectronics/glowbit-orb/palette"

// Accum is the per-frame additive color buffer. Overlapping contributions
// sum per channel and can exceed the channel maximum until Clamped.
type Accum map[int][3]int

// Add blends c scaled by intensity into the pixel at index.
func (a Accum) Add(index int, c palette.RGB, intensity float64) {
	if intensity <= 0 {
		return
	}
	if intensity > 1 {
		intensity = 1
	}
	v := a[index]
	v[0] += int(float64(c.R) * intensity)
	v[1] += int(float64(c.G) * intensity)
	v[2] += int(float64(c.B) * intensity)
	a[index] = v
}

// Clamped returns the buffer reduced to displayable triples.
func (a Accum) Clamped() map[int]palette.RGB {
	out := make(map[int]palette.RGB, len(a))
	for pix, v := range a {
		out[pix] = palette.RGB{
			R: clamp255(v[0]),
			G: clamp255(v[1]),
			B: clamp255(v[2]),
		}
	}
	return out
}

func clamp255(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// smoothstep is the shared easing curve: 3t^2 - 2t^3 on [0,1].
func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
