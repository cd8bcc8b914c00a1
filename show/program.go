package show

import (
	"encoding/json"
	"fmt"
)

// Version tag expected in program files.
const ProgramVersion = "orbshow.v1"

// Clip is one segment of a show: an effect plus preset, a duration, an
// optional crossfade into the next clip, and parameter automation tracks.
type Clip struct {
	Name      string           `json:"name"`
	Effect    string           `json:"effect"`
	Preset    string           `json:"preset,omitempty"`
	DurationS float64          `json:"durationS"`
	XFadeS    float64          `json:"xFadeS,omitempty"`
	Params    map[string]Track `json:"params,omitempty"`
}

// Program is a full timed sequence of clips.
type Program struct {
	Version string `json:"version"`
	Loop    bool   `json:"loop,omitempty"`
	Seed    int64  `json:"seed,omitempty"`
	Clips   []Clip `json:"clips"`
}

// ParseProgram decodes and validates a JSON program.
func ParseProgram(b []byte) (Program, error) {
	var p Program
	if err := json.Unmarshal(b, &p); err != nil {
		return Program{}, fmt.Errorf("parse program: %w", err)
	}
	if p.Version != "" && p.Version != ProgramVersion {
		return Program{}, fmt.Errorf("unsupported program version %q", p.Version)
	}
	if len(p.Clips) == 0 {
		return Program{}, fmt.Errorf("program has no clips")
	}
	for i, c := range p.Clips {
		if c.Effect == "" {
			return Program{}, fmt.Errorf("clip %d has no effect", i)
		}
		if c.DurationS <= 0 {
			return Program{}, fmt.Errorf("clip %d (%s) has non-positive duration", i, c.Name)
		}
		if c.XFadeS < 0 || c.XFadeS > c.DurationS {
			return Program{}, fmt.Errorf("clip %d (%s) has invalid crossfade", i, c.Name)
		}
	}
	return p, nil
}
