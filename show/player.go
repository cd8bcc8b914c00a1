package show

import "fmt"

// State enumerates player states.
type State string

const (
	Idle    State = "idle"
	Running State = "running"
	Paused  State = "paused"
)

// Hooks are the injected callbacks the player drives the conductor (or
// anything else rendering effects) through.
type Hooks struct {
	SetEffect    func(name, preset string)
	ArmNext      func(name, preset string)
	SetCrossfade func(alpha float64)
	SetParam     func(name string, v float64)
}

// Player owns the program timeline. It performs no rendering and keeps no
// clock of its own; the host loop feeds it dt through Tick.
type Player struct {
	state State
	hooks Hooks

	prog   Program
	starts []float64 // program time at which each clip begins
	total  float64

	now       float64
	idx       int
	armed     bool
	lastAlpha float64
}

func NewPlayer(h Hooks) *Player {
	return &Player{state: Idle, hooks: h}
}

// State returns the current player state.
func (p *Player) State() State { return p.state }

// Load replaces the program and resets the timeline.
func (p *Player) Load(prog Program) error {
	if len(prog.Clips) == 0 {
		return fmt.Errorf("program has no clips")
	}
	p.prog = prog
	p.starts = make([]float64, len(prog.Clips))
	acc := 0.0
	for i, c := range prog.Clips {
		p.starts[i] = acc
		acc += c.DurationS
	}
	p.total = acc
	p.reset()
	return nil
}

func (p *Player) reset() {
	p.state = Idle
	p.now = 0
	p.idx = 0
	p.armed = false
	p.lastAlpha = 0
}

// Start begins playback from the current position.
func (p *Player) Start() {
	if p.state == Running || len(p.prog.Clips) == 0 {
		return
	}
	p.state = Running
	p.applyClip()
}

func (p *Player) Pause() { p.state = Paused }

func (p *Player) Resume() {
	if p.state == Paused {
		p.state = Running
	}
}

// Stop halts playback and rewinds to the start.
func (p *Player) Stop() {
	p.reset()
	if p.hooks.SetCrossfade != nil {
		p.hooks.SetCrossfade(0)
	}
}

// applyClip switches the renderer to the current clip and clears any
// pending crossfade.
func (p *Player) applyClip() {
	clip := p.prog.Clips[p.idx]
	if p.hooks.SetEffect != nil {
		p.hooks.SetEffect(clip.Effect, clip.Preset)
	}
	if p.hooks.SetCrossfade != nil {
		p.hooks.SetCrossfade(0)
	}
	p.armed = false
	p.lastAlpha = 0
}

// next returns the index of the clip after the current one, or -1 at the
// end of a non-looping program.
func (p *Player) next() int {
	if p.idx+1 < len(p.prog.Clips) {
		return p.idx + 1
	}
	if p.prog.Loop {
		return 0
	}
	return -1
}

// Tick advances the timeline by dt seconds, emitting parameter and
// crossfade hooks for the active clip.
func (p *Player) Tick(dt float64) {
	if p.state != Running || dt <= 0 {
		return
	}
	p.now += dt

	clip := p.prog.Clips[p.idx]
	local := p.now - p.starts[p.idx]

	for name, tr := range clip.Params {
		if p.hooks.SetParam != nil {
			p.hooks.SetParam(name, tr.Eval(local))
		}
	}

	if clip.XFadeS > 0 {
		remain := clip.DurationS - local
		if remain >= 0 && remain <= clip.XFadeS {
			if ni := p.next(); ni != -1 {
				if !p.armed {
					nc := p.prog.Clips[ni]
					if p.hooks.ArmNext != nil {
						p.hooks.ArmNext(nc.Effect, nc.Preset)
					}
					p.armed = true
				}
				alpha := 1 - remain/clip.XFadeS
				if alpha < 0 {
					alpha = 0
				} else if alpha > 1 {
					alpha = 1
				}
				if p.hooks.SetCrossfade != nil && alpha != p.lastAlpha {
					p.hooks.SetCrossfade(alpha)
					p.lastAlpha = alpha
				}
			}
		}
	}

	if local >= clip.DurationS {
		p.advance()
	}
}

func (p *Player) advance() {
	ni := p.next()
	if ni == -1 {
		p.state = Idle
		if p.hooks.SetCrossfade != nil {
			p.hooks.SetCrossfade(0)
		}
		return
	}
	if ni == 0 {
		// Looping back: rebase the timeline.
		p.now -= p.total
	}
	p.idx = ni
	p.applyClip()
}
