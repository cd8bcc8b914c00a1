package orb

import (
	"context"
	"time"

	"github.com/coreelectronics/glowbit-orb/palette"
)

// wait sleeps for d or until ctx is done, whichever comes first.
func (o *Orb) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// spiral lights rings one at a time with a flush and delay between rings.
// Within each ring, pixels are written in rotational order starting at the
// position aligned with startAxis, so the written order traces a spiral.
func (o *Orb) spiral(ctx context.Context, colour interface{}, delay time.Duration, startAxis int, inward bool) error {
	c, err := palette.Normalize(colour)
	if err != nil {
		return err
	}
	n := o.geo.NumRings()
	for step := 0; step < n; step++ {
		r := step
		if !inward {
			r = n - 1 - step
		}
		indices, err := o.geo.RingIndices(r)
		if err != nil {
			return err
		}
		// Rotate the write order to start at the axis-aligned pixel.
		aligned := o.geo.AxisIndices(startAxis, true)[r]
		off, _ := o.geo.RingOffset(r)
		pivot := aligned - off
		for i := range indices {
			o.drv.SetPixel(indices[(pivot+i)%len(indices)], c)
		}
		if err := o.Show(); err != nil {
			return err
		}
		if err := o.wait(ctx, delay); err != nil {
			return err
		}
	}
	return nil
}

// SpiralIn sweeps the ornament ring by ring from the outside in.
func (o *Orb) SpiralIn(ctx context.Context, colour interface{}, delay time.Duration, startAxis int) error {
	return o.spiral(ctx, colour, delay, startAxis, true)
}

// SpiralOut sweeps the ornament ring by ring from the center out.
func (o *Orb) SpiralOut(ctx context.Context, colour interface{}, delay time.Duration, startAxis int) error {
	return o.spiral(ctx, colour, delay, startAxis, false)
}

// RotateOptions parameterizes RotateAxis.
type RotateOptions struct {
	StepDelay time.Duration
	Duration  time.Duration // <= 0 runs until ctx is done
	StartAxis int
	Direction int // +1 or -1; zero means +1
}

// RotateAxis sweeps a single lit axis around the orb until the duration
// elapses or ctx is canceled, then clears the ornament.
func (o *Orb) RotateAxis(ctx context.Context, colour interface{}, opts RotateOptions) error {
	c, err := palette.Normalize(colour)
	if err != nil {
		return err
	}
	dir := opts.Direction
	if dir == 0 {
		dir = 1
	}
	start := o.now()
	axis := opts.StartAxis
	for {
		if opts.Duration > 0 && o.now().Sub(start) >= opts.Duration {
			break
		}
		if err := o.Clear(false); err != nil {
			return err
		}
		if _, err := o.SetAxis(axis, c, 0, false); err != nil {
			return err
		}
		if err := o.Show(); err != nil {
			return err
		}
		axis += dir
		if err := o.wait(ctx, opts.StepDelay); err != nil {
			break
		}
	}
	return o.Clear(true)
}
