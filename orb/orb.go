// Package orb is the facade over the geometry table and an LED driver:
// ring/axis/line mutators, bulk fills that leave status LEDs alone, and a
// rate-limited flush to hardware.
package orb

import (
	"fmt"
	"time"

	"github.com/coreelectronics/glowbit-orb/driver"
	"github.com/coreelectronics/glowbit-orb/geometry"
	"github.com/coreelectronics/glowbit-orb/palette"
)

// DefaultRateLimitFPS caps hardware flushes when the config leaves the
// limit unset.
const DefaultRateLimitFPS = 30

// Config describes one orb. RingCounts runs outer to inner; the last entry
// is conventionally 1 for a center pixel.
type Config struct {
	RingCounts   []int
	StatusLEDs   int
	Brightness   float64 // 0..255 or 0.0..1.0; zero leaves the driver default
	RateLimitFPS int     // advisory flush cap; zero selects DefaultRateLimitFPS
}

// Orb owns exclusive access to the driver's pixel buffer. All methods are
// single-actor; wrap calls in your own mutex if a concurrent host needs
// shared access.
type Orb struct {
	geo *geometry.Table
	drv driver.Driver

	minInterval time.Duration
	lastShow    time.Time
	now         func() time.Time
}

// New validates the configuration, builds the geometry table and applies
// the initial brightness to the driver.
func New(cfg Config, drv driver.Driver) (*Orb, error) {
	geo, err := geometry.New(cfg.RingCounts, cfg.StatusLEDs)
	if err != nil {
		return nil, err
	}
	fps := cfg.RateLimitFPS
	if fps <= 0 {
		fps = DefaultRateLimitFPS
	}
	o := &Orb{
		geo:         geo,
		drv:         drv,
		minInterval: time.Second / time.Duration(fps),
		now:         time.Now,
	}
	if cfg.Brightness > 0 {
		if err := drv.SetBrightness(cfg.Brightness); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Geometry exposes the derived layout for animations and callers.
func (o *Orb) Geometry() *geometry.Table { return o.geo }

// Show flushes the staged buffer to hardware, unless a flush already went
// out within the rate-limit interval. Skipping never loses pixel writes;
// they remain staged for the next flush.
func (o *Orb) Show() error {
	t := o.now()
	if !o.lastShow.IsZero() && t.Sub(o.lastShow) < o.minInterval {
		return nil
	}
	if err := o.drv.Show(); err != nil {
		return err
	}
	o.lastShow = t
	return nil
}

// SetBrightness forwards either brightness scale to the driver.
func (o *Orb) SetBrightness(level float64) error {
	return o.drv.SetBrightness(level)
}

// Close releases the driver.
func (o *Orb) Close() error { return o.drv.Close() }

// write stages c at every index. Callers resolve indices and normalize the
// color first so a rejected call stages nothing.
func (o *Orb) write(indices []int, c palette.RGB, show bool) error {
	for _, pix := range indices {
		o.drv.SetPixel(pix, c)
	}
	if show {
		return o.Show()
	}
	return nil
}

// SetRing colors every pixel of a ring. Returns the indices written.
func (o *Orb) SetRing(ringNum int, colour interface{}, show bool) ([]int, error) {
	indices, err := o.geo.RingIndices(ringNum)
	if err != nil {
		return nil, err
	}
	c, err := palette.Normalize(colour)
	if err != nil {
		return nil, err
	}
	return indices, o.write(indices, c, show)
}

// SetAxis colors the pixels along a radial axis, outer to inner. length > 0
// limits the write to that many rings from the outside in.
func (o *Orb) SetAxis(axis int, colour interface{}, length int, show bool) ([]int, error) {
	indices := o.geo.AxisIndices(axis, true)
	if length > 0 && length < len(indices) {
		indices = indices[:length]
	}
	c, err := palette.Normalize(colour)
	if err != nil {
		return nil, err
	}
	return indices, o.write(indices, c, show)
}

// SetLine colors a line across the orb: the axis plus, when
// includeOpposite, its diametrical opposite. length > 0 truncates each arm.
func (o *Orb) SetLine(axis int, colour interface{}, length int, includeOpposite, show bool) ([]int, error) {
	indices := o.geo.LineIndices(axis, length, includeOpposite)
	c, err := palette.Normalize(colour)
	if err != nil {
		return nil, err
	}
	return indices, o.write(indices, c, show)
}

// SetPixel stages one pixel after bounds-checking it against the strip.
func (o *Orb) SetPixel(index int, colour interface{}) error {
	if index < 0 || index >= o.geo.Total() {
		return fmt.Errorf("%w: pixel %d of %d", geometry.ErrRange, index, o.geo.Total())
	}
	c, err := palette.Normalize(colour)
	if err != nil {
		return err
	}
	o.drv.SetPixel(index, c)
	return nil
}

// SetPixels stages one color across an arbitrary index set. An empty set
// is a no-op, not an error.
func (o *Orb) SetPixels(indices []int, colour interface{}, show bool) error {
	c, err := palette.Normalize(colour)
	if err != nil {
		return err
	}
	return o.write(indices, c, show)
}

// Clear blacks out every ornament pixel. Status LEDs are untouched, as in
// every bulk operation.
func (o *Orb) Clear(show bool) error {
	return o.fillOrnament(palette.RGB{}, show)
}

// Fill colors every ornament pixel, excluding status LEDs.
func (o *Orb) Fill(colour interface{}, show bool) error {
	c, err := palette.Normalize(colour)
	if err != nil {
		return err
	}
	return o.fillOrnament(c, show)
}

func (o *Orb) fillOrnament(c palette.RGB, show bool) error {
	for pix := o.geo.OrnamentStart(); pix < o.geo.Total(); pix++ {
		o.drv.SetPixel(pix, c)
	}
	if show {
		return o.Show()
	}
	return nil
}

// Blit stages a whole ornament frame (index 0 = first ornament pixel)
// without flushing. Frame pacing stays with the caller.
func (o *Orb) Blit(frame []palette.RGB) error {
	if len(frame) != o.geo.OrnamentCount() {
		return fmt.Errorf("%w: frame length %d, ornament has %d pixels",
			geometry.ErrRange, len(frame), o.geo.OrnamentCount())
	}
	start := o.geo.OrnamentStart()
	for i, c := range frame {
		o.drv.SetPixel(start+i, c)
	}
	return nil
}
