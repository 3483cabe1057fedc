package brain

// Normalizer validates and smooths raw sensor readings and converts encoder
// pulses to traveled distance. It keeps its own cache of previous smoothed
// values; it never touches the rest of the brain's state.
type Normalizer struct {
	cfg Config

	smoothed    SmoothedState
	initialized bool

	lastPulses int64
	hasPulses  bool
}

// NewNormalizer creates a normalizer with the given parameters.
func NewNormalizer(cfg Config) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Update ingests one raw reading and returns the new smoothed state plus the
// incremental distance traveled (cm) since the previous reading. The first
// reading establishes the encoder baseline and reports zero travel.
func (n *Normalizer) Update(r SensorReading) (SmoothedState, float64) {
	front := n.sanitize(r.Front, n.smoothed.Front)
	left := n.sanitize(r.Left, n.smoothed.Left)
	right := n.sanitize(r.Right, n.smoothed.Right)

	if n.initialized {
		w := n.cfg.SmoothingWeight
		n.smoothed.Front = w*front + (1-w)*n.smoothed.Front
		n.smoothed.Left = w*left + (1-w)*n.smoothed.Left
		n.smoothed.Right = w*right + (1-w)*n.smoothed.Right
	} else {
		n.smoothed = SmoothedState{Front: front, Left: left, Right: right}
		n.initialized = true
	}

	var increment float64
	if n.hasPulses {
		delta := r.EncoderPulses - n.lastPulses
		if delta < 0 {
			// Hardware glitch or counter reset. Never propagate
			// negative travel; adopt the new count as the baseline.
			delta = 0
		}
		increment = float64(delta) * n.cfg.Encoder.DistancePerPulse()
	}
	n.lastPulses = r.EncoderPulses
	n.hasPulses = true

	return n.smoothed, increment
}

// sanitize clamps a raw distance to the physical sensing envelope. Values
// outside the envelope (dropped echo, timeout sentinel) are replaced with the
// previous smoothed value, or the far limit when no history exists, so a
// single lost echo never triggers a spurious emergency stop.
func (n *Normalizer) sanitize(raw, prev float64) float64 {
	if raw < n.cfg.Safety.MinValidDistance || raw > n.cfg.Safety.MaxValidDistance {
		if n.initialized {
			return prev
		}
		return n.cfg.Safety.MaxValidDistance
	}
	return raw
}

// Reset clears all cached sensor history.
func (n *Normalizer) Reset() {
	n.smoothed = SmoothedState{}
	n.initialized = false
	n.lastPulses = 0
	n.hasPulses = false
}
