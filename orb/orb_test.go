package orb

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/coreelectronics/glowbit-orb/driver/sim"
	"github.com/coreelectronics/glowbit-orb/geometry"
	"github.com/coreelectronics/glowbit-orb/palette"
)

func newTestOrb(t *testing.T, cfg Config) (*Orb, *sim.Driver) {
	t.Helper()
	geo, err := geometry.New(cfg.RingCounts, cfg.StatusLEDs)
	assert.NoError(t, err)
	drv := sim.New(geo.Total(), zerolog.Nop())
	o, err := New(cfg, drv)
	assert.NoError(t, err)
	return o, drv
}

func TestNewRejectsBadConfig(t *testing.T) {
	drv := sim.New(0, zerolog.Nop())
	_, err := New(Config{RingCounts: nil}, drv)
	assert.ErrorIs(t, err, geometry.ErrConfiguration)
}

func TestClearThenFillSparesStatusLEDs(t *testing.T) {
	o, drv := newTestOrb(t, Config{RingCounts: []int{4, 2, 1}, StatusLEDs: 2})

	marker := palette.RGB{R: 9, G: 9, B: 9}
	drv.SetPixel(0, marker)
	drv.SetPixel(1, marker)

	assert.NoError(t, o.Clear(false))
	assert.NoError(t, o.Fill("red", false))

	buf := drv.Snapshot()
	assert.Equal(t, marker, buf[0])
	assert.Equal(t, marker, buf[1])
	for pix := 2; pix < len(buf); pix++ {
		assert.Equal(t, palette.RGB{R: 255}, buf[pix], "pixel %d", pix)
	}
}

func TestSetRing(t *testing.T) {
	o, drv := newTestOrb(t, Config{RingCounts: []int{4, 2, 1}})

	indices, err := o.SetRing(1, "blue", false)
	assert.NoError(t, err)
	assert.Equal(t, []int{4, 5}, indices)

	buf := drv.Snapshot()
	assert.Equal(t, palette.RGB{B: 255}, buf[4])
	assert.Equal(t, palette.RGB{B: 255}, buf[5])
	assert.Equal(t, palette.RGB{}, buf[0])
}

func TestSetRingOutOfRange(t *testing.T) {
	o, drv := newTestOrb(t, Config{RingCounts: []int{4, 2, 1}})
	_, err := o.SetRing(7, "red", true)
	assert.ErrorIs(t, err, geometry.ErrRange)
	assert.Equal(t, make([]palette.RGB, 7), drv.Snapshot())
	assert.Zero(t, drv.Shows())
}

// A rejected color must stage nothing: index resolution and normalization
// both happen before the first pixel write.
func TestInvalidColorLeavesBufferUntouched(t *testing.T) {
	o, drv := newTestOrb(t, Config{RingCounts: []int{4, 2, 1}})

	_, err := o.SetRing(0, "ultraviolet", true)
	assert.ErrorIs(t, err, palette.ErrInvalidColor)
	_, err = o.SetAxis(0, 3.14, 0, true)
	assert.ErrorIs(t, err, palette.ErrInvalidColor)
	err = o.Fill([3]int{0, 999, 0}, true)
	assert.ErrorIs(t, err, palette.ErrInvalidColor)

	assert.Equal(t, make([]palette.RGB, 7), drv.Snapshot())
	assert.Zero(t, drv.Shows())
}

func TestSetAxisLength(t *testing.T) {
	o, _ := newTestOrb(t, Config{RingCounts: []int{4, 2, 1}})

	indices, err := o.SetAxis(1, "white", 0, false)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 4, 6}, indices)

	indices, err = o.SetAxis(1, "white", 2, false)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 4}, indices)
}

func TestSetLine(t *testing.T) {
	o, _ := newTestOrb(t, Config{RingCounts: []int{4, 2, 1}})
	indices, err := o.SetLine(0, "cyan", 0, true, false)
	assert.NoError(t, err)
	// forward [0 4 6], opposite axis 2 walked back out: [5 2].
	assert.Equal(t, []int{0, 4, 6, 5, 2}, indices)
}

func TestShowRateLimit(t *testing.T) {
	o, drv := newTestOrb(t, Config{RingCounts: []int{4, 2, 1}, RateLimitFPS: 10})

	clock := time.Unix(0, 0)
	o.now = func() time.Time { return clock }

	assert.NoError(t, o.Show())
	assert.Equal(t, 1, drv.Shows())

	// Within the 100ms window: flush is skipped, not queued.
	clock = clock.Add(50 * time.Millisecond)
	assert.NoError(t, o.Show())
	assert.Equal(t, 1, drv.Shows())

	clock = clock.Add(60 * time.Millisecond)
	assert.NoError(t, o.Show())
	assert.Equal(t, 2, drv.Shows())
}

func TestBlit(t *testing.T) {
	o, drv := newTestOrb(t, Config{RingCounts: []int{4, 2, 1}, StatusLEDs: 1})

	frame := make([]palette.RGB, 7)
	frame[0] = palette.RGB{R: 1}
	assert.NoError(t, o.Blit(frame))
	assert.Equal(t, palette.RGB{R: 1}, drv.Snapshot()[1])
	assert.Zero(t, drv.Shows())

	assert.ErrorIs(t, o.Blit(make([]palette.RGB, 3)), geometry.ErrRange)
}

func TestSpiralIn(t *testing.T) {
	o, drv := newTestOrb(t, Config{RingCounts: []int{4, 2, 1}})
	clock := time.Unix(0, 0)
	o.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	err := o.SpiralIn(context.Background(), "green", 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, 3, drv.Shows())
	for _, c := range drv.Snapshot() {
		assert.Equal(t, palette.RGB{G: 255}, c)
	}
}

func TestRotateAxisStopsOnCancel(t *testing.T) {
	o, drv := newTestOrb(t, Config{RingCounts: []int{4, 2, 1}})
	clock := time.Unix(0, 0)
	o.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := o.RotateAxis(ctx, "red", RotateOptions{StepDelay: time.Millisecond})
	assert.NoError(t, err)
	// The final clear always goes out.
	for _, c := range drv.Snapshot() {
		assert.Equal(t, palette.RGB{}, c)
	}
}
