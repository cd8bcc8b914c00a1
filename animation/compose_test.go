package animation_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/coreelectronics/glowbit-orb/animation"
	"github.com/coreelectronics/glowbit-orb/driver/sim"
	"github.com/coreelectronics/glowbit-orb/orb"
	"github.com/coreelectronics/glowbit-orb/palette"
)

func TestStepCometsStagesWithoutFlush(t *testing.T) {
	cfg := orb.Config{RingCounts: []int{8, 4, 1}, StatusLEDs: 1}
	drv := sim.New(14, zerolog.Nop())
	o, err := orb.New(cfg, drv)
	assert.NoError(t, err)

	g := o.Geometry()
	c1, err := animation.NewComet(g, animation.CometConfig{Ring: 0, Colour: "blue", Speed: 1, TailLength: 2})
	assert.NoError(t, err)
	c2, err := animation.NewComet(g, animation.CometConfig{Ring: 1, Colour: "red", Speed: 1, TailLength: 2, StartPos: 2})
	assert.NoError(t, err)

	assert.NoError(t, animation.StepComets(o, []*animation.Comet{c1, c2}, true))

	// Flushing stayed with the caller.
	assert.Zero(t, drv.Shows())

	buf := drv.Snapshot()
	lit := 0
	for _, c := range buf[1:] {
		if c != (palette.RGB{}) {
			lit++
		}
	}
	assert.Equal(t, 4, lit)
	// Status LED untouched by the composed clear.
	assert.Equal(t, palette.RGB{}, buf[0])
}

func TestStepCometsClears(t *testing.T) {
	cfg := orb.Config{RingCounts: []int{8, 1}}
	drv := sim.New(9, zerolog.Nop())
	o, err := orb.New(cfg, drv)
	assert.NoError(t, err)
	assert.NoError(t, o.Fill("white", false))

	c, err := animation.NewComet(o.Geometry(), animation.CometConfig{Ring: 0, Colour: "red", Speed: 1, TailLength: 1})
	assert.NoError(t, err)
	assert.NoError(t, animation.StepComets(o, []*animation.Comet{c}, true))

	buf := drv.Snapshot()
	lit := 0
	for _, px := range buf {
		if px != (palette.RGB{}) {
			lit++
		}
	}
	// Only the single-pixel comet survives the clear.
	assert.Equal(t, 1, lit)
}
