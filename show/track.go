package show

// Key is a value at time T seconds; Ease shapes the segment that starts
// here. Supported kinds: "linear" (default), "smooth", "cubic".
type Key struct {
	T    float64 `json:"t"`
	V    float64 `json:"v"`
	Ease string  `json:"ease,omitempty"`
}

// Track is a sorted keyframe list evaluated against clip-local time.
type Track struct {
	Keys []Key `json:"keys"`
}

func ease(kind string, u float64) float64 {
	switch kind {
	case "smooth":
		return u * u * (3 - 2*u)
	case "cubic":
		// 6u^5 - 15u^4 + 10u^3
		return u * u * u * (u*(u*6-15) + 10)
	default:
		return u
	}
}

// Eval interpolates the track at time t. Before the first key it holds the
// first value, after the last key the last value.
func (tr Track) Eval(t float64) float64 {
	n := len(tr.Keys)
	if n == 0 {
		return 0
	}
	if t <= tr.Keys[0].T {
		return tr.Keys[0].V
	}
	if t >= tr.Keys[n-1].T {
		return tr.Keys[n-1].V
	}
	for i := 0; i < n-1; i++ {
		a, b := tr.Keys[i], tr.Keys[i+1]
		if t > b.T {
			continue
		}
		span := b.T - a.T
		if span <= 0 {
			return b.V
		}
		u := (t - a.T) / span
		if u < 0 {
			u = 0
		} else if u > 1 {
			u = 1
		}
		u = ease(a.Ease, u)
		return a.V + (b.V-a.V)*u
	}
	return tr.Keys[n-1].V
}
