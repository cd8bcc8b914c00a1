package show

import (
	"fmt"
	"math"

	"github.com/coreelectronics/glowbit-orb/animation"
	"github.com/coreelectronics/glowbit-orb/geometry"
	"github.com/coreelectronics/glowbit-orb/palette"
)

// DefaultEffects builds a registry with the built-in effects for the given
// geometry.
func DefaultEffects(g *geometry.Table) *Registry {
	reg := NewRegistry()
	reg.Register(&solidEffect{})
	reg.Register(&rainbowEffect{mode: rainbowWave})
	reg.Register(newCometsEffect(g))
	reg.Register(newFlameEffect(g))
	return reg
}

// solidEffect fills the ornament with one colour, scaled by the "level"
// parameter track when present.
type solidEffect struct {
	colour palette.RGB
	set    bool
}

func (e *solidEffect) Name() string { return "solid" }

func (e *solidEffect) Presets() []string {
	return []string{"red", "green", "blue", "orange", "purple", "white"}
}

func (e *solidEffect) ApplyPreset(name string, _ Params) error {
	c, err := palette.Normalize(name)
	if err != nil {
		return err
	}
	e.colour = c
	e.set = true
	return nil
}

func (e *solidEffect) Render(dst []palette.RGB, _ *geometry.Table, _, _ float64, p Params) {
	c := e.colour
	if !e.set {
		c = palette.RGB{R: 255, G: 255, B: 255}
	}
	c = palette.Scale(c, p.Get("level", 1))
	for i := range dst {
		dst[i] = c
	}
}

const (
	rainbowWave  = "wave"
	rainbowRings = "rings"
)

// rainbowEffect sweeps the colour wheel across the ornament. In wave mode
// the hue advances along the strip so it spirals outward ring by ring; in
// rings mode each ring holds a single rotating hue.
type rainbowEffect struct {
	mode string
}

func (e *rainbowEffect) Name() string      { return "rainbow" }
func (e *rainbowEffect) Presets() []string { return []string{rainbowWave, rainbowRings} }

func (e *rainbowEffect) ApplyPreset(name string, _ Params) error {
	switch name {
	case rainbowWave, rainbowRings:
		e.mode = name
		return nil
	}
	return fmt.Errorf("%w: rainbow preset %q", geometry.ErrRange, name)
}

func (e *rainbowEffect) Render(dst []palette.RGB, g *geometry.Table, now, _ float64, p Params) {
	speed := p.Get("speed", 0.2) // wheel revolutions per second
	base := now * speed
	start := g.OrnamentStart()
	switch e.mode {
	case rainbowRings:
		for r := 0; r < g.NumRings(); r++ {
			indices, _ := g.RingIndices(r)
			h := math.Mod(base+float64(r)/float64(g.NumRings()), 1)
			c := palette.Wheel(h)
			for _, pix := range indices {
				dst[pix-start] = c
			}
		}
	default:
		n := float64(len(dst))
		for i := range dst {
			dst[i] = palette.Wheel(math.Mod(base+float64(i)/n, 1))
		}
	}
}

// cometsEffect drives a set of comets through the shared accumulation
// buffer. Presets rebuild the set; an unknown preset leaves it unchanged.
type cometsEffect struct {
	geo    *geometry.Table
	comets []*animation.Comet
}

func newCometsEffect(g *geometry.Table) *cometsEffect {
	e := &cometsEffect{geo: g}
	// Construction over a valid geometry cannot fail for the default set.
	_ = e.ApplyPreset("trio", nil)
	return e
}

func (e *cometsEffect) Name() string      { return "comets" }
func (e *cometsEffect) Presets() []string { return []string{"trio", "duel"} }

func (e *cometsEffect) ApplyPreset(name string, _ Params) error {
	var cfgs []animation.CometConfig
	switch name {
	case "trio":
		rings := e.geo.NumRings()
		colours := []string{"cyan", "purple", "orange"}
		for i := 0; i < 3 && i < rings; i++ {
			cnt, _ := e.geo.RingCount(i)
			if cnt < 2 {
				break
			}
			cfgs = append(cfgs, animation.CometConfig{
				Ring:      i,
				Colour:    colours[i],
				Direction: 1 - 2*(i%2),
				Speed:     0.6 - 0.15*float64(i),
			})
		}
	case "duel":
		half := float64(e.geo.OuterCount()) / 2
		cfgs = []animation.CometConfig{
			{Ring: 0, Colour: "red", Direction: 1, Speed: 0.5, Easing: true},
			{Ring: 0, Colour: "blue", Direction: -1, Speed: 0.5, StartPos: half, Easing: true},
		}
	default:
		return fmt.Errorf("%w: comets preset %q", geometry.ErrRange, name)
	}
	comets := make([]*animation.Comet, 0, len(cfgs))
	for _, cfg := range cfgs {
		c, err := animation.NewComet(e.geo, cfg)
		if err != nil {
			return err
		}
		comets = append(comets, c)
	}
	e.comets = comets
	return nil
}

func (e *cometsEffect) Render(dst []palette.RGB, g *geometry.Table, _, dt float64, _ Params) {
	for i := range dst {
		dst[i] = palette.RGB{}
	}
	accum := animation.Accum{}
	for _, c := range e.comets {
		if dt > 0 {
			c.Step()
		}
		c.Render(accum)
	}
	start := g.OrnamentStart()
	for pix, c := range accum.Clamped() {
		dst[pix-start] = c
	}
}

// flameEffect wraps a single flame on a fixed axis. Presets trade flicker
// character: a steady candle versus a gusty torch.
type flameEffect struct {
	geo   *geometry.Table
	flame *animation.Flame
}

func newFlameEffect(g *geometry.Table) *flameEffect {
	e := &flameEffect{geo: g}
	_ = e.ApplyPreset("candle", nil)
	return e
}

func (e *flameEffect) Name() string      { return "flame" }
func (e *flameEffect) Presets() []string { return []string{"candle", "torch"} }

func (e *flameEffect) ApplyPreset(name string, _ Params) error {
	cfg := animation.FlameConfig{Axis: 0, AngularWidth: 2}
	switch name {
	case "candle":
		cfg.FlickerStrength = 0.3
		cfg.FlickerSpeed = 0.8
		cfg.GustMean = 7
		cfg.GustMagMax = 0.4
	case "torch":
		cfg.FlickerStrength = 0.6
		cfg.FlickerSpeed = 1.6
		cfg.GustMean = 2.5
		cfg.GustMagMax = 0.9
		cfg.AngularWidth = 3
	default:
		return fmt.Errorf("%w: flame preset %q", geometry.ErrRange, name)
	}
	f, err := animation.NewFlame(e.geo, cfg)
	if err != nil {
		return err
	}
	e.flame = f
	return nil
}

func (e *flameEffect) Render(dst []palette.RGB, g *geometry.Table, _, dt float64, _ Params) {
	for i := range dst {
		dst[i] = palette.RGB{}
	}
	start := g.OrnamentStart()
	for pix, c := range e.flame.Step(dt) {
		dst[pix-start] = c
	}
}
