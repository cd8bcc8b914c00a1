package animation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreelectronics/glowbit-orb/animation"
	"github.com/coreelectronics/glowbit-orb/geometry"
	"github.com/coreelectronics/glowbit-orb/palette"
)

func testTable(t *testing.T) *geometry.Table {
	t.Helper()
	g, err := geometry.New([]int{24, 12, 6, 1}, 0)
	assert.NoError(t, err)
	return g
}

func TestNewCometRejections(t *testing.T) {
	g := testTable(t)

	_, err := animation.NewComet(g, animation.CometConfig{Ring: 9, Speed: 1})
	assert.ErrorIs(t, err, geometry.ErrRange)

	_, err = animation.NewComet(g, animation.CometConfig{Ring: 0, Speed: 0})
	assert.ErrorIs(t, err, geometry.ErrRange)

	_, err = animation.NewComet(g, animation.CometConfig{Ring: 0, Speed: -0.5})
	assert.ErrorIs(t, err, geometry.ErrRange)

	_, err = animation.NewComet(g, animation.CometConfig{Ring: 0, Speed: 1, Direction: 2})
	assert.ErrorIs(t, err, geometry.ErrRange)

	_, err = animation.NewComet(g, animation.CometConfig{Ring: 0, Speed: 1, Colour: "ultraviolet"})
	assert.ErrorIs(t, err, palette.ErrInvalidColor)
}

// Without easing, N steps at speed s on a ring of C pixels land on
// position s*N mod C exactly.
func TestCometStepModularPosition(t *testing.T) {
	g := testTable(t)
	c, err := animation.NewComet(g, animation.CometConfig{
		Ring: 0, Colour: "blue", Speed: 0.7, TailLength: 3,
	})
	assert.NoError(t, err)

	const n = 100
	for i := 0; i < n; i++ {
		c.Step()
	}
	want := math.Mod(0.7*n, 24)
	assert.InDelta(t, want, c.Position(), 1e-9)
}

func TestCometStepReverse(t *testing.T) {
	g := testTable(t)
	c, err := animation.NewComet(g, animation.CometConfig{
		Ring: 1, Colour: "red", Speed: 1.5, Direction: -1, StartPos: 2,
	})
	assert.NoError(t, err)

	c.Step()
	// 2 - 1.5 = 0.5
	assert.InDelta(t, 0.5, c.Position(), 1e-9)
	c.Step()
	// wraps below zero onto the ring of 12
	assert.InDelta(t, 11.0, c.Position(), 1e-9)
}

func TestCometEasingStaysForward(t *testing.T) {
	g := testTable(t)
	c, err := animation.NewComet(g, animation.CometConfig{
		Ring: 0, Colour: "white", Speed: 0.3, Easing: true,
	})
	assert.NoError(t, err)

	prev := c.Position()
	traveled := 0.0
	for i := 0; i < 200; i++ {
		c.Step()
		pos := c.Position()
		delta := math.Mod(pos-prev+24, 24)
		// Monotonic forward: every step advances, never reverses and
		// never exceeds the configured speed.
		assert.Greater(t, delta, 0.0)
		assert.LessOrEqual(t, delta, 0.3+1e-9)
		traveled += delta
		prev = pos
	}
	assert.Greater(t, traveled, 10.0)
}

func TestCometRenderTailFalloff(t *testing.T) {
	g := testTable(t)
	c, err := animation.NewComet(g, animation.CometConfig{
		Ring: 0, Colour: palette.RGB{R: 200}, Speed: 1, TailLength: 4, StartPos: 10,
	})
	assert.NoError(t, err)

	accum := animation.Accum{}
	c.Render(accum)
	frame := accum.Clamped()

	assert.Len(t, frame, 4)
	// Head at full colour, trail decaying behind the direction of travel.
	assert.Equal(t, palette.RGB{R: 200}, frame[10])
	assert.Greater(t, frame[10].R, frame[9].R)
	assert.Greater(t, frame[9].R, frame[8].R)
	assert.Greater(t, frame[8].R, frame[7].R)
}

// Two identical comets with overlapping tails accumulate to the
// component-wise sum of their individual renders.
func TestCometAdditiveBlend(t *testing.T) {
	g := testTable(t)
	mk := func(start float64) *animation.Comet {
		c, err := animation.NewComet(g, animation.CometConfig{
			Ring: 0, Colour: palette.RGB{R: 60, G: 10}, Speed: 1, TailLength: 5, StartPos: start,
		})
		assert.NoError(t, err)
		return c
	}

	single := animation.Accum{}
	mk(6).Render(single)
	other := animation.Accum{}
	mk(8).Render(other)

	both := animation.Accum{}
	mk(6).Render(both)
	mk(8).Render(both)

	for pix := 0; pix < 24; pix++ {
		want := [3]int{single[pix][0] + other[pix][0], single[pix][1] + other[pix][1], single[pix][2] + other[pix][2]}
		assert.Equal(t, want, both[pix], "pixel %d", pix)
	}
}

func TestAccumClamp(t *testing.T) {
	a := animation.Accum{}
	a.Add(3, palette.RGB{R: 200, G: 100, B: 0}, 1.0)
	a.Add(3, palette.RGB{R: 200, G: 100, B: 0}, 1.0)
	assert.Equal(t, [3]int{400, 200, 0}, a[3])
	assert.Equal(t, palette.RGB{R: 255, G: 200, B: 0}, a.Clamped()[3])
}
