// Package show sequences orb effects into timed programs: clips pick an
// effect and preset, keyframe tracks automate effect parameters, and
// adjacent clips can crossfade through a mixed ornament frame.
package show

import (
	"github.com/coreelectronics/glowbit-orb/geometry"
	"github.com/coreelectronics/glowbit-orb/palette"
)

// Params are the live numeric parameters of the active effect.
type Params map[string]float64

// Get reads a parameter with a fallback default.
func (p Params) Get(key string, def float64) float64 {
	if p == nil {
		return def
	}
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Effect renders one ornament frame per step. dst spans the ornament only
// (index 0 = first pixel after the status LEDs) and is fully overwritten.
type Effect interface {
	Name() string
	Presets() []string
	ApplyPreset(name string, p Params) error
	Render(dst []palette.RGB, g *geometry.Table, now, dt float64, p Params)
}

// Registry maps effect names to instances.
type Registry struct{ m map[string]Effect }

func NewRegistry() *Registry { return &Registry{m: map[string]Effect{}} }

func (r *Registry) Register(e Effect) {
	if e == nil {
		return
	}
	r.m[e.Name()] = e
}

func (r *Registry) Get(name string) (Effect, bool) { e, ok := r.m[name]; return e, ok }

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for name := range r.m {
		out = append(out, name)
	}
	return out
}

// Mix blends frames a and b into dst by alpha (0 = all a, 1 = all b).
func Mix(dst, a, b []palette.RGB, alpha float64) {
	if alpha <= 0 {
		copy(dst, a)
		return
	}
	if alpha >= 1 {
		copy(dst, b)
		return
	}
	af := 1 - alpha
	for i := range dst {
		dst[i] = palette.RGB{
			R: uint8(float64(a[i].R)*af + float64(b[i].R)*alpha + 0.5),
			G: uint8(float64(a[i].G)*af + float64(b[i].G)*alpha + 0.5),
			B: uint8(float64(a[i].B)*af + float64(b[i].B)*alpha + 0.5),
		}
	}
}
