package brain

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Brain owns all process-lifetime navigation state: the current stage, the
// smoothed-reading cache, and the decision history. A single mutex guards the
// read-stage / compute / append / advance-stage sequence so concurrent
// decision cycles can never both advance the stage.
type Brain struct {
	mu sync.RWMutex

	cfg    Config
	norm   *Normalizer
	engine *Engine

	stage         Stage
	stageTraveled float64
	totalTraveled float64

	decisionCount int
	history       []Decision
	lastReading   *SensorReading
	smoothed      SmoothedState

	epoch   int
	epochID string
}

// New creates a brain with the given parameters, at the first configured
// stage with an empty history.
func New(cfg Config) *Brain {
	return &Brain{
		cfg:     cfg,
		norm:    NewNormalizer(cfg),
		engine:  NewEngine(cfg),
		stage:   initialStage(cfg),
		history: make([]Decision, 0, cfg.HistorySize),
		epochID: uuid.NewString(),
	}
}

func initialStage(cfg Config) Stage {
	if len(cfg.Navigation.Legs) > 0 {
		return cfg.Navigation.Legs[0].Stage
	}
	return StageArrived
}

// Decide runs one full decision cycle: validate, normalize, decide, record.
// Exactly one Decision is appended per successful call; a failed call leaves
// the brain untouched.
func (b *Brain) Decide(r SensorReading) (Decision, error) {
	if err := validateReading(r); err != nil {
		return Decision{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	smoothed, increment := b.norm.Update(r)
	b.stageTraveled += increment
	b.totalTraveled += increment

	target, hasTarget := b.cfg.Navigation.Target(b.stage)
	if r.TargetDistance > 0 {
		target, hasTarget = r.TargetDistance, true
	}
	if b.stage == StageArrived {
		// Terminal stage: any reading is an arrival.
		target, hasTarget = 0, true
	}

	v := b.engine.Decide(smoothed, b.stageTraveled, target, hasTarget)

	stageForDecision := b.stage
	traveledForDecision := b.stageTraveled
	if v.arrived {
		b.stage = b.cfg.Navigation.Next(b.stage)
		b.stageTraveled = 0
	}

	b.decisionCount++
	left, right := b.engine.Motors(v.action, v.speed)
	d := Decision{
		Action:      v.action,
		Speed:       v.speed,
		LeftMotor:   left,
		RightMotor:  right,
		Explanation: v.explanation,
		Arrived:     v.arrived,
		Number:      b.decisionCount,
		Stage:       stageForDecision,
		TraveledCM:  traveledForDecision,
		Timestamp:   time.Now(),
	}

	b.history = append(b.history, d)
	if b.cfg.HistorySize > 0 && len(b.history) > b.cfg.HistorySize {
		b.history = b.history[1:]
	}
	reading := r
	b.lastReading = &reading
	b.smoothed = smoothed

	return d, nil
}

// validateReading rejects malformed input. Out-of-range but numeric values
// are not errors; the normalizer substitutes those.
func validateReading(r SensorReading) error {
	fields := map[string]string{}
	for name, v := range map[string]float64{
		"front_dist": r.Front,
		"left_dist":  r.Left,
		"right_dist": r.Right,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			fields[name] = "must be a finite number"
		}
	}
	if r.EncoderPulses < 0 {
		fields["encoder_pulses"] = "must not be negative"
	}
	if r.TargetDistance < 0 {
		fields["target_distance"] = "must not be negative"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Status returns a consistent snapshot of the brain. Reads never mutate.
func (b *Brain) Status() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()

	recent := make([]Decision, len(b.history))
	copy(recent, b.history)

	s := Status{
		Epoch:         b.epoch,
		EpochID:       b.epochID,
		Stage:         b.stage,
		DecisionCount: b.decisionCount,
		StageTraveled: b.stageTraveled,
		TotalTraveled: b.totalTraveled,
		Smoothed:      b.smoothed,
		Recent:        recent,
		SafeDistance:  b.cfg.Safety.SafeDistance,
		CriticalDist:  b.cfg.Safety.CriticalDistance,
	}
	if b.lastReading != nil {
		reading := *b.lastReading
		s.LastReading = &reading
	}
	if len(b.history) > 0 {
		last := b.history[len(b.history)-1]
		s.LastDecision = &last
	}
	return s
}

// Config returns the static parameter record. Constant per epoch.
func (b *Brain) Config() Config {
	return b.cfg
}

// ResetResult reports the new epoch after a reset.
type ResetResult struct {
	Epoch   int    `json:"epoch"`
	EpochID string `json:"epoch_id"`
}

// Reset atomically clears history, decision numbering, traveled distance and
// stage, and starts a new epoch. Safe to call at any time, including
// concurrently with an in-flight decision cycle.
func (b *Brain) Reset() ResetResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.norm.Reset()
	b.stage = initialStage(b.cfg)
	b.stageTraveled = 0
	b.totalTraveled = 0
	b.decisionCount = 0
	b.history = b.history[:0]
	b.lastReading = nil
	b.smoothed = SmoothedState{}
	b.epoch++
	b.epochID = uuid.NewString()

	return ResetResult{Epoch: b.epoch, EpochID: b.epochID}
}

// Ask classifies a free-text question and answers it from the current
// snapshot. Unknown questions fall back to the state summary; they never
// error. An empty question is the one rejected input.
func (b *Brain) Ask(question string) (Answer, error) {
	if question == "" {
		return Answer{}, ErrEmptyQuestion
	}
	intent := Classify(question)
	snap := b.Status()
	return b.respond(question, intent, snap), nil
}
