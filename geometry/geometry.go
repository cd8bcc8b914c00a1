// Package geometry derives the linear pixel layout of a concentric-ring
// orb from its ring-count configuration: per-ring offsets into the strip
// buffer, axis columns, and diametrical lines.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfiguration marks an invalid ring-count configuration; the
	// table cannot be built and the caller must fix the config.
	ErrConfiguration = errors.New("invalid orb configuration")
	// ErrRange marks a ring, axis or pixel index outside the configured
	// bounds of an otherwise valid table.
	ErrRange = errors.New("index out of range")
)

// ring is one concentric band of the strip. start is the absolute index of
// its first LED; count LEDs follow contiguously.
type ring struct {
	start int
	count int
}

// Table holds the derived layout for one orb. It is immutable after New.
type Table struct {
	rings     []ring
	statusLED int
	total     int
}

// New builds a Table from ring LED counts (outer to inner) preceded by
// statusLEDs strip positions reserved for status indicators.
func New(ringCounts []int, statusLEDs int) (*Table, error) {
	if len(ringCounts) == 0 {
		return nil, fmt.Errorf("%w: ring counts empty", ErrConfiguration)
	}
	if statusLEDs < 0 {
		return nil, fmt.Errorf("%w: negative status LED count %d", ErrConfiguration, statusLEDs)
	}
	t := &Table{
		rings:     make([]ring, 0, len(ringCounts)),
		statusLED: statusLEDs,
	}
	start := statusLEDs
	for i, c := range ringCounts {
		if c <= 0 {
			return nil, fmt.Errorf("%w: ring %d has non-positive count %d", ErrConfiguration, i, c)
		}
		t.rings = append(t.rings, ring{start: start, count: c})
		start += c
	}
	t.total = start
	return t, nil
}

// NumRings returns the number of configured rings.
func (t *Table) NumRings() int { return len(t.rings) }

// OuterCount returns the LED count of the outermost ring, which also fixes
// the number of addressable axes.
func (t *Table) OuterCount() int { return t.rings[0].count }

// StatusLEDs returns the number of strip positions before the ornament.
func (t *Table) StatusLEDs() int { return t.statusLED }

// OrnamentStart returns the absolute index of the first ornament pixel.
func (t *Table) OrnamentStart() int { return t.statusLED }

// Total returns the total strip length including status LEDs.
func (t *Table) Total() int { return t.total }

// OrnamentCount returns the number of ornament pixels (status excluded).
func (t *Table) OrnamentCount() int { return t.total - t.statusLED }

// RingCount returns the LED count of ring r.
func (t *Table) RingCount(r int) (int, error) {
	if r < 0 || r >= len(t.rings) {
		return 0, fmt.Errorf("%w: ring %d of %d", ErrRange, r, len(t.rings))
	}
	return t.rings[r].count, nil
}

// RingOffset returns the absolute index of the first LED of ring r.
func (t *Table) RingOffset(r int) (int, error) {
	if r < 0 || r >= len(t.rings) {
		return 0, fmt.Errorf("%w: ring %d of %d", ErrRange, r, len(t.rings))
	}
	return t.rings[r].start, nil
}

// RingIndices returns the absolute strip indices of ring r, in strip order.
func (t *Table) RingIndices(r int) ([]int, error) {
	if r < 0 || r >= len(t.rings) {
		return nil, fmt.Errorf("%w: ring %d of %d", ErrRange, r, len(t.rings))
	}
	rg := t.rings[r]
	out := make([]int, rg.count)
	for i := range out {
		out[i] = rg.start + i
	}
	return out, nil
}

// normAxis maps any integer onto [0, OuterCount). Angular wraparound is a
// supported normalization, never an error.
func (t *Table) normAxis(axis int) int {
	c := t.rings[0].count
	a := axis % c
	if a < 0 {
		a += c
	}
	return a
}

// AxisIndices returns one absolute index per ring (outer to inner) along a
// radial axis. The inner-ring position is the proportional angular position
// round(axis*count[r]/count[0]) mod count[r], with ties rounded half to
// even. If the innermost ring is a single center pixel and includeCenter is
// false, it is omitted.
func (t *Table) AxisIndices(axis int, includeCenter bool) []int {
	a := t.normAxis(axis)
	outer := float64(t.rings[0].count)
	out := make([]int, 0, len(t.rings))
	for i, rg := range t.rings {
		if rg.count == 1 && i == len(t.rings)-1 && !includeCenter {
			continue
		}
		local := int(math.RoundToEven(float64(a)*float64(rg.count)/outer)) % rg.count
		out = append(out, rg.start+local)
	}
	return out
}

// OppositeAxis returns the axis diametrically opposite to axis.
func (t *Table) OppositeAxis(axis int) int {
	return t.normAxis(axis + t.rings[0].count/2)
}

// LineIndices returns the pixels of a line through the orb: the forward
// axis outer to inner, then (when includeOpposite) the opposite axis inner
// to outer with a shared center pixel counted once. length > 0 truncates
// each arm to that many rings from the outside in before concatenation.
func (t *Table) LineIndices(axis, length int, includeOpposite bool) []int {
	forward := t.AxisIndices(axis, true)
	if length > 0 && length < len(forward) {
		forward = forward[:length]
	}
	if !includeOpposite {
		return forward
	}
	opposite := t.AxisIndices(t.OppositeAxis(axis), true)
	if length > 0 && length < len(opposite) {
		opposite = opposite[:length]
	}
	// Walk the opposite arm back out so the line reads as one traversal.
	out := forward
	for i := len(opposite) - 1; i >= 0; i-- {
		if len(forward) > 0 && opposite[i] == forward[len(forward)-1] {
			continue
		}
		out = append(out, opposite[i])
	}
	return out
}

// SegmentByAxis splits the ornament in two around the line through axis.
// It returns the pixel sets below (counter-clockwise side) and above
// (clockwise side); the splitting line itself is excluded. Inner-ring
// pixels shared by adjacent axes on both sides of the line can land in
// both halves.
func (t *Table) SegmentByAxis(axis int, includeCenter bool) (below, above []int) {
	c := t.rings[0].count
	if c <= 1 {
		return nil, nil
	}
	k := t.normAxis(axis)
	op := t.OppositeAxis(axis)

	// The split line itself never belongs to either half. The center pixel
	// sits on every axis; when requested it shows up in both halves.
	excluded := map[int]bool{}
	for _, pix := range t.AxisIndices(k, !includeCenter) {
		excluded[pix] = true
	}
	for _, pix := range t.AxisIndices(op, !includeCenter) {
		excluded[pix] = true
	}

	collect := func(step int) []int {
		var out []int
		seen := map[int]bool{}
		for j := t.normAxis(k + step); j != op; j = t.normAxis(j + step) {
			for _, pix := range t.AxisIndices(j, includeCenter) {
				if excluded[pix] || seen[pix] {
					continue
				}
				out = append(out, pix)
				seen[pix] = true
			}
		}
		return out
	}
	return collect(-1), collect(1)
}
