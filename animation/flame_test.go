package animation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreelectronics/glowbit-orb/animation"
	"github.com/coreelectronics/glowbit-orb/palette"
)

func TestFlameFootprint(t *testing.T) {
	g := testTable(t)
	f, err := animation.NewFlame(g, animation.FlameConfig{
		Axis: 0, AngularWidth: 1, Seed: 1,
	})
	assert.NoError(t, err)

	frame := f.Step(0.05)
	assert.NotEmpty(t, frame)

	// Only pixels on the central axis and its two neighbors light up.
	allowed := map[int]bool{}
	for _, axis := range []int{0, 1, 23} {
		for _, pix := range g.AxisIndices(axis, true) {
			allowed[pix] = true
		}
	}
	for pix := range frame {
		assert.True(t, allowed[pix], "pixel %d outside the flame footprint", pix)
	}
}

func TestFlameRadialLimit(t *testing.T) {
	g := testTable(t)
	f, err := animation.NewFlame(g, animation.FlameConfig{
		Axis: 3, RadialLimit: 2, Seed: 1,
	})
	assert.NoError(t, err)

	frame := f.Step(0.05)
	outerTwo := g.AxisIndices(3, true)[:2]
	assert.Len(t, frame, len(outerTwo))
	for _, pix := range outerTwo {
		_, ok := frame[pix]
		assert.True(t, ok, "pixel %d missing", pix)
	}
}

// A zero dt must not advance the noise process: the frame repeats exactly.
func TestFlameZeroDtIsNoop(t *testing.T) {
	g := testTable(t)
	f, err := animation.NewFlame(g, animation.FlameConfig{Axis: 0, AngularWidth: 2, Seed: 42})
	assert.NoError(t, err)

	f.Step(0.1)
	base := f.Step(0.1)
	again := f.Step(0)
	assert.Equal(t, base, again)
}

func TestFlameSeedDeterminism(t *testing.T) {
	g := testTable(t)
	run := func() []map[int]palette.RGB {
		f, err := animation.NewFlame(g, animation.FlameConfig{Axis: 5, AngularWidth: 1, Seed: 7})
		assert.NoError(t, err)
		var frames []map[int]palette.RGB
		for i := 0; i < 50; i++ {
			frames = append(frames, f.Step(0.2))
		}
		return frames
	}
	assert.Equal(t, run(), run())
}

func TestFlameBaseColourRejection(t *testing.T) {
	g := testTable(t)
	_, err := animation.NewFlame(g, animation.FlameConfig{BaseColour: "plasma"})
	assert.ErrorIs(t, err, palette.ErrInvalidColor)
}

func TestFlameTintFollowsBaseColour(t *testing.T) {
	g := testTable(t)
	f, err := animation.NewFlame(g, animation.FlameConfig{
		Axis: 0, BaseColour: palette.RGB{R: 200}, Seed: 3,
	})
	assert.NoError(t, err)

	for _, c := range f.Step(0.1) {
		assert.Zero(t, c.G)
		assert.Zero(t, c.B)
	}
}
