// Package nrz drives WS2812-class strips over SPI through periph.io's
// nrzled device. When no SPI port can be opened it falls back to a
// terminal preview drawer so sequences remain testable off-hardware.
package nrz

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/coreelectronics/glowbit-orb/driver"
	"github.com/coreelectronics/glowbit-orb/palette"
)

// refreshRate is the nominal strip data rate in kHz per channel.
const refreshRate physic.Frequency = 800

// Driver stages a frame and draws it through a periph display.Drawer,
// either a real nrzled SPI device or the screen preview fallback.
type Driver struct {
	drawer     display.Drawer
	buf        []palette.RGB
	brightness float64
	hardware   bool
	log        zerolog.Logger
}

// New opens the named SPI port (empty selects the first available) and
// prepares an n-pixel strip. A failed open degrades to the terminal
// preview rather than erroring; Hardware reports which one is active.
func New(port string, n int, log zerolog.Logger) (*Driver, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid pixel count %d", n)
	}
	d := &Driver{
		buf:        make([]palette.RGB, n),
		brightness: 1.0,
		log:        log,
	}

	p, err := spireg.Open(port)
	if err != nil {
		log.Warn().Err(err).Str("port", port).Msg("no SPI port; using terminal preview")
		d.drawer = screen.New(n)
		return d, nil
	}
	opts := nrzled.Opts{
		NumPixels: n,
		Channels:  3,
		Freq:      ((refreshRate * 3) + 100) * physic.KiloHertz,
	}
	dev, err := nrzled.NewSPI(p, &opts)
	if err != nil {
		return nil, fmt.Errorf("nrzled init: %w", err)
	}
	d.drawer = dev
	d.hardware = true
	return d, nil
}

// Hardware reports whether a real SPI device backs this driver.
func (d *Driver) Hardware() bool { return d.hardware }

func (d *Driver) SetPixel(index int, c palette.RGB) {
	if index < 0 || index >= len(d.buf) {
		return
	}
	d.buf[index] = c
}

// Show renders the staged buffer as a one-row image and draws it. The
// brightness scale is applied here, at the edge, so staged colors stay
// exact.
func (d *Driver) Show() error {
	img := image.NewNRGBA(image.Rect(0, 0, len(d.buf), 1))
	for x, c := range d.buf {
		s := palette.Scale(c, d.brightness)
		img.SetNRGBA(x, 0, color.NRGBA{R: s.R, G: s.G, B: s.B, A: 255})
	}
	return d.drawer.Draw(d.drawer.Bounds(), img, image.Point{})
}

func (d *Driver) SetBrightness(level float64) error {
	b, ok := driver.NormalizeBrightness(level)
	if !ok {
		return fmt.Errorf("brightness %v outside 0..255", level)
	}
	d.brightness = b
	return nil
}

func (d *Driver) Close() error {
	for i := range d.buf {
		d.buf[i] = palette.RGB{}
	}
	if err := d.Show(); err != nil {
		return err
	}
	return d.drawer.Halt()
}
