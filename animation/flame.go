package animation

import (
	"math"
	"math/rand"
	"time"

	"github.com/coreelectronics/glowbit-orb/geometry"
	"github.com/coreelectronics/glowbit-orb/palette"
)

// FlameConfig parameterizes a flame. Zero-valued fields take the defaults
// noted per field. Seed fixes the gust process for reproducible runs; zero
// seeds from the clock.
type FlameConfig struct {
	Axis            int
	BaseColour      interface{} // default warm orange (255,160,64)
	AngularWidth    int         // neighbor axes lit on each side
	RadialLimit     int         // rings lit from the outside in; zero = all
	FlickerStrength float64     // default 0.45
	FlickerSpeed    float64     // default 1.0
	GustMean        float64     // mean seconds between gusts; default 4.0
	GustMagMax      float64     // default 0.9
	GustSmooth      float64     // gust transition smoothing; default 0.6
	ExcludeCenter   bool
	Seed            int64
}

// flamePix is the per-pixel placement metadata fixed at construction.
type flamePix struct {
	pix     int
	colIdx  int // axis this pixel sits on
	colDist int // lateral distance from the flame's central axis
	ridx    int // radial index, 0 = outermost
}

// Flame generates a flickering flame along one axis. A slow gust bias
// (low-pass-filtered random walk with exponentially distributed gust
// arrivals) combines with a fast sinusoidal flicker; the lateral falloff
// across neighbor axes is 1/(1+0.6*dist).
type Flame struct {
	base            palette.RGB
	axis            int
	outerCount      int
	flickerStrength float64
	flickerSpeed    float64
	gustMean        float64
	gustMagMax      float64
	gustSmooth      float64

	pixels  []flamePix
	maxRidx int

	rng       *rand.Rand
	phase     float64
	intensity float64
	now       float64
	bias      float64
	biasTgt   float64
	nextGust  float64
}

// NewFlame builds the pixel footprint once from the geometry and seeds the
// noise process.
func NewFlame(g *geometry.Table, cfg FlameConfig) (*Flame, error) {
	base := cfg.BaseColour
	if base == nil {
		base = palette.RGB{R: 255, G: 160, B: 64}
	}
	colour, err := palette.Normalize(base)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := &Flame{
		base:            colour,
		outerCount:      g.OuterCount(),
		flickerStrength: defaultF(cfg.FlickerStrength, 0.45),
		flickerSpeed:    defaultF(cfg.FlickerSpeed, 1.0),
		gustMean:        defaultF(cfg.GustMean, 4.0),
		gustMagMax:      defaultF(cfg.GustMagMax, 0.9),
		gustSmooth:      defaultF(cfg.GustSmooth, 0.6),
		rng:             rand.New(rand.NewSource(seed)),
		intensity:       1.0,
	}
	f.axis = ((cfg.Axis % f.outerCount) + f.outerCount) % f.outerCount

	// Central axis first, then alternating neighbors outward.
	cols := []int{f.axis}
	for d := 1; d <= cfg.AngularWidth; d++ {
		cols = append(cols, (f.axis+d)%f.outerCount)
		cols = append(cols, ((f.axis-d)%f.outerCount+f.outerCount)%f.outerCount)
	}
	seen := map[int]bool{}
	for i, col := range cols {
		dist := (i + 1) / 2 // cols alternates +d, -d around the center
		indices := g.AxisIndices(col, !cfg.ExcludeCenter)
		if cfg.RadialLimit > 0 && cfg.RadialLimit < len(indices) {
			indices = indices[:cfg.RadialLimit]
		}
		for ridx, pix := range indices {
			if seen[pix] {
				continue
			}
			seen[pix] = true
			f.pixels = append(f.pixels, flamePix{pix: pix, colIdx: col, colDist: dist, ridx: ridx})
			if ridx > f.maxRidx {
				f.maxRidx = ridx
			}
		}
	}

	f.phase = f.rng.Float64() * 1000.0
	f.nextGust = f.expovariate(f.gustMean)
	return f, nil
}

func defaultF(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// expovariate draws an exponentially distributed interval with the given
// mean.
func (f *Flame) expovariate(mean float64) float64 {
	u := f.rng.Float64()
	if u <= 0 {
		u = 1e-10
	}
	return -mean * math.Log(u)
}

// Step advances the noise process by dt seconds and returns the resulting
// frame as pixel index to color. A zero dt leaves every internal value
// unchanged and reproduces the previous frame; negative dt is clamped to
// zero.
func (f *Flame) Step(dt float64) map[int]palette.RGB {
	if dt < 0 {
		dt = 0
	}

	// Fast flicker: two incommensurate sines low-pass blended into the
	// global intensity.
	f.phase += dt * (0.8 + f.flickerSpeed*1.6)
	noise := math.Sin(f.phase*3.7)*0.7 + math.Sin(f.phase*13.1)*0.3
	target := 1.0 + noise*0.5*f.flickerStrength
	tau := math.Max(0.001, 1.0/math.Max(0.1, f.flickerSpeed))
	alpha := 1.0 - math.Exp(-dt/tau)
	f.intensity += (target - f.intensity) * alpha

	// Gust arrivals on the instance clock.
	f.now += dt
	if dt > 0 && f.now >= f.nextGust {
		f.biasTgt = (f.rng.Float64()*2.0 - 1.0) * f.gustMagMax
		f.nextGust = f.now + f.expovariate(math.Max(0.001, f.gustMean))
	}
	if f.gustSmooth > 0 {
		bAlpha := 1.0 - math.Exp(-dt/math.Max(0.0001, f.gustSmooth))
		f.bias += (f.biasTgt - f.bias) * bAlpha
	} else {
		f.bias = f.biasTgt
	}

	out := make(map[int]palette.RGB, len(f.pixels))
	for _, p := range f.pixels {
		out[p.pix] = f.colourAt(p)
	}
	return out
}

func (f *Flame) colourAt(p flamePix) palette.RGB {
	// Lateral falloff toward neighbor axes.
	angW := 1.0
	if p.colDist > 0 {
		angW = 1.0 / (1.0 + float64(p.colDist)*0.6)
	}

	// Radial shape: brightest around 60% of the way in.
	radW := 1.0
	if f.maxRidx > 0 {
		t := float64(p.ridx) / float64(f.maxRidx)
		radW = 0.5 + 0.6*(1.0-math.Abs(t-0.6))
	}
	radW = math.Max(0.02, math.Min(1.0, radW))

	// Wind: the gust bias pushes brightness toward one side of the axis.
	cw := ((p.colIdx-f.axis)%f.outerCount + f.outerCount) % f.outerCount
	ccw := ((f.axis-p.colIdx)%f.outerCount + f.outerCount) % f.outerCount
	var side float64
	switch {
	case cw == ccw:
		side = 0
	case cw < ccw:
		side = 1
	default:
		side = -1
	}

	brightness := math.Max(0, angW*radW+side*f.bias*angW*0.5)
	brightness = math.Min(1.5, brightness) * f.intensity

	// Per-pixel micro variation keyed off the shared phase; fades with
	// radial depth.
	micro := math.Sin(f.phase*(7.1+float64(p.ridx)*0.9+float64(p.colDist)*0.6)+float64(p.pix)) * 0.5
	brightness += micro * 0.18 * f.flickerStrength * (0.8 - float64(p.ridx)/math.Max(1, float64(f.maxRidx)))
	brightness = math.Max(0, math.Min(2.0, brightness))

	return palette.RGB{
		R: clamp255(int(math.Round(float64(f.base.R) * brightness))),
		G: clamp255(int(math.Round(float64(f.base.G) * brightness))),
		B: clamp255(int(math.Round(float64(f.base.B) * brightness))),
	}
}
