package animation

import "github.com/coreelectronics/glowbit-orb/orb"

// StepComets advances every comet one step, merges their renders through a
// fresh accumulation buffer, and stages the clamped result on the orb.
// When clear is set the ornament is blanked first so only the comets
// remain lit. No flush happens here; frame pacing belongs to the caller.
func StepComets(o *orb.Orb, comets []*Comet, clear bool) error {
	for _, c := range comets {
		c.Step()
	}
	if clear {
		if err := o.Clear(false); err != nil {
			return err
		}
	}
	accum := Accum{}
	for _, c := range comets {
		c.Render(accum)
	}
	for pix, colour := range accum.Clamped() {
		if err := o.SetPixel(pix, colour); err != nil {
			return err
		}
	}
	return nil
}
