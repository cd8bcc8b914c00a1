package show

import (
	"github.com/coreelectronics/glowbit-orb/geometry"
	"github.com/coreelectronics/glowbit-orb/orb"
	"github.com/coreelectronics/glowbit-orb/palette"
	"github.com/rs/zerolog"
)

// Conductor renders the active effect (and, during a crossfade, the
// incoming one) into ornament-sized frames and pushes them to the orb.
type Conductor struct {
	orb *orb.Orb
	geo *geometry.Table
	reg *Registry
	log zerolog.Logger

	active Effect
	next   Effect
	alpha  float64

	params Params
	now    float64

	bufA []palette.RGB
	bufB []palette.RGB
	out  []palette.RGB
}

func NewConductor(o *orb.Orb, reg *Registry, log zerolog.Logger) *Conductor {
	g := o.Geometry()
	n := g.OrnamentCount()
	return &Conductor{
		orb:    o,
		geo:    g,
		reg:    reg,
		log:    log,
		params: Params{},
		bufA:   make([]palette.RGB, n),
		bufB:   make([]palette.RGB, n),
		out:    make([]palette.RGB, n),
	}
}

// SetEffect makes the named effect the active one, replacing any pending
// crossfade target.
func (c *Conductor) SetEffect(name, preset string) {
	e, ok := c.reg.Get(name)
	if !ok {
		c.log.Warn().Str("effect", name).Msg("unknown effect")
		return
	}
	if preset != "" {
		if err := e.ApplyPreset(preset, c.params); err != nil {
			c.log.Warn().Err(err).Str("effect", name).Str("preset", preset).Msg("preset not applied")
		}
	}
	c.active = e
	c.next = nil
	c.alpha = 0
}

// ArmNext stages the incoming effect for a crossfade.
func (c *Conductor) ArmNext(name, preset string) {
	e, ok := c.reg.Get(name)
	if !ok {
		c.log.Warn().Str("effect", name).Msg("unknown effect")
		return
	}
	if preset != "" {
		if err := e.ApplyPreset(preset, c.params); err != nil {
			c.log.Warn().Err(err).Str("effect", name).Str("preset", preset).Msg("preset not applied")
		}
	}
	c.next = e
}

// SetCrossfade sets the blend toward the armed effect. Reaching 1 promotes
// it to active.
func (c *Conductor) SetCrossfade(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	c.alpha = alpha
	if alpha >= 1 && c.next != nil {
		c.active = c.next
		c.next = nil
		c.alpha = 0
	}
}

func (c *Conductor) SetParam(name string, v float64) {
	c.params[name] = v
}

// Hooks returns a player hook set wired to this conductor.
func (c *Conductor) Hooks() Hooks {
	return Hooks{
		SetEffect:    c.SetEffect,
		ArmNext:      c.ArmNext,
		SetCrossfade: c.SetCrossfade,
		SetParam:     c.SetParam,
	}
}

// Step renders one frame and flushes it through the orb.
func (c *Conductor) Step(dt float64) error {
	if c.active == nil {
		return nil
	}
	c.now += dt

	c.active.Render(c.bufA, c.geo, c.now, dt, c.params)
	if c.next != nil && c.alpha > 0 {
		c.next.Render(c.bufB, c.geo, c.now, dt, c.params)
		Mix(c.out, c.bufA, c.bufB, c.alpha)
	} else {
		copy(c.out, c.bufA)
	}

	if err := c.orb.Blit(c.out); err != nil {
		return err
	}
	return c.orb.Show()
}
