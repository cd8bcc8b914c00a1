package animation

import (
	"fmt"
	"math"

	"github.com/coreelectronics/glowbit-orb/geometry"
	"github.com/coreelectronics/glowbit-orb/palette"
)

// CometConfig parameterizes a comet. Speed is in pixel positions per Step
// and must be positive; Direction is +1 or -1 (zero selects +1).
type CometConfig struct {
	Ring       int
	Colour     interface{}
	Direction  int
	TailLength int // head included; zero selects 4
	Speed      float64
	StartPos   float64
	Easing     bool
}

// Comet is a point of light orbiting one ring with a tail that decays to
// black opposite the direction of travel. All state is owned by the
// instance; Step and Render are single-actor calls.
type Comet struct {
	ringIndices []int
	ringLen     int
	colour      palette.RGB
	dir         int
	tail        int
	speed       float64
	easing      bool

	pos float64 // fractional position along the ring
}

// NewComet validates the configuration against the geometry and returns a
// comet at its starting position.
func NewComet(g *geometry.Table, cfg CometConfig) (*Comet, error) {
	indices, err := g.RingIndices(cfg.Ring)
	if err != nil {
		return nil, err
	}
	if cfg.Speed <= 0 {
		return nil, fmt.Errorf("%w: comet speed %v must be positive", geometry.ErrRange, cfg.Speed)
	}
	dir := cfg.Direction
	switch dir {
	case 0:
		dir = 1
	case 1, -1:
	default:
		return nil, fmt.Errorf("%w: comet direction %d must be +1 or -1", geometry.ErrRange, cfg.Direction)
	}
	colour, err := palette.Normalize(cfg.Colour)
	if err != nil {
		return nil, err
	}
	tail := cfg.TailLength
	if tail <= 0 {
		tail = 4
	}
	c := &Comet{
		ringIndices: indices,
		ringLen:     len(indices),
		colour:      colour,
		dir:         dir,
		tail:        tail,
		speed:       cfg.Speed,
		easing:      cfg.Easing,
	}
	c.pos = wrapPos(cfg.StartPos, c.ringLen)
	return c, nil
}

// Position returns the current fractional position along the ring.
func (c *Comet) Position() float64 { return c.pos }

// Step advances the position by direction*speed, wrapped to the ring.
// With easing on the advance is scaled down near pixel centers (the settle
// positions), but stays positive: the comet never stalls or reverses.
func (c *Comet) Step() {
	adv := c.speed
	if c.easing {
		adv *= easeFactor(c.pos)
	}
	c.pos = wrapPos(c.pos+float64(c.dir)*adv, c.ringLen)
}

// easeFactor dips toward 0.25 at pixel centers and returns to 1.0 halfway
// between them.
func easeFactor(pos float64) float64 {
	frac := pos - math.Floor(pos)
	d := math.Min(frac, 1-frac) // distance to nearest settle position, 0..0.5
	return 0.25 + 0.75*smoothstep(2*d)
}

// Render adds the comet into the accumulation buffer: full colour at the
// head, then a smoothstep falloff to zero across the tail, trailing
// opposite the direction of travel. Contributions sum with whatever is
// already in accum.
func (c *Comet) Render(accum Accum) {
	head := int(math.Round(c.pos)) % c.ringLen
	tail := c.tail
	if tail > c.ringLen {
		tail = c.ringLen
	}
	for t := 0; t < tail; t++ {
		local := ((head-c.dir*t)%c.ringLen + c.ringLen) % c.ringLen
		frac := smoothstep(1 - float64(t)/float64(tail))
		accum.Add(c.ringIndices[local], c.colour, frac)
	}
}

func wrapPos(pos float64, ringLen int) float64 {
	p := math.Mod(pos, float64(ringLen))
	if p < 0 {
		p += float64(ringLen)
	}
	return p
}
