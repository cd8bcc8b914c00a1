// Package driver abstracts the LED output sink behind the orb facade.
package driver

import "github.com/coreelectronics/glowbit-orb/palette"

// Driver is the narrow surface the orb core consumes. SetPixel only
// mutates the in-memory buffer; Show transmits it to hardware.
type Driver interface {
	// SetPixel stages a color at index. Out-of-bounds indices are ignored.
	SetPixel(index int, c palette.RGB)
	// Show pushes the staged buffer to the output.
	Show() error
	// SetBrightness accepts either 0..255 or 0.0..1.0; the driver owns
	// normalization to its internal scale.
	SetBrightness(level float64) error
	// Close releases resources.
	Close() error
}

// NormalizeBrightness reduces either accepted brightness scale to 0.0..1.0.
func NormalizeBrightness(level float64) (float64, bool) {
	if level < 0 {
		return 0, false
	}
	if level <= 1.0 {
		return level, true
	}
	if level <= 255 {
		return level / 255.0, true
	}
	return 0, false
}
