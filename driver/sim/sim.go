// Package sim provides an in-memory driver for headless runs and tests.
package sim

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/coreelectronics/glowbit-orb/driver"
	"github.com/coreelectronics/glowbit-orb/palette"
)

// Driver keeps the staged frame in memory and hands every shown frame to
// an optional hook (the preview server subscribes through it).
type Driver struct {
	mu         sync.Mutex
	buf        []palette.RGB
	brightness float64
	shows      int
	onFrame    func([]palette.RGB)
	log        zerolog.Logger
}

// New returns a sim driver for a strip of n pixels.
func New(n int, log zerolog.Logger) *Driver {
	return &Driver{
		buf:        make([]palette.RGB, n),
		brightness: 1.0,
		log:        log,
	}
}

// OnFrame registers a hook invoked with a brightness-scaled copy of each
// shown frame.
func (d *Driver) OnFrame(f func([]palette.RGB)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onFrame = f
}

func (d *Driver) SetPixel(index int, c palette.RGB) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.buf) {
		return
	}
	d.buf[index] = c
}

func (d *Driver) Show() error {
	d.mu.Lock()
	frame := make([]palette.RGB, len(d.buf))
	for i, c := range d.buf {
		frame[i] = palette.Scale(c, d.brightness)
	}
	d.shows++
	n := d.shows
	hook := d.onFrame
	d.mu.Unlock()

	d.log.Debug().Int("frame", n).Int("pixels", len(frame)).Msg("sim frame shown")
	if hook != nil {
		hook(frame)
	}
	return nil
}

func (d *Driver) SetBrightness(level float64) error {
	b, ok := driver.NormalizeBrightness(level)
	if !ok {
		return fmt.Errorf("brightness %v outside 0..255", level)
	}
	d.mu.Lock()
	d.brightness = b
	d.mu.Unlock()
	return nil
}

func (d *Driver) Close() error { return nil }

// Snapshot returns a copy of the staged (unscaled) buffer.
func (d *Driver) Snapshot() []palette.RGB {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]palette.RGB, len(d.buf))
	copy(out, d.buf)
	return out
}

// Shows returns how many frames have been pushed.
func (d *Driver) Shows() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shows
}
