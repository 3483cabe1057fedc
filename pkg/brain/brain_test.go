package brain

import (
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func clearReading(pulses int64) SensorReading {
	return SensorReading{Front: 300, Left: 300, Right: 300, EncoderPulses: pulses}
}

func TestBrain_ScenarioAllClear(t *testing.T) {
	b := New(DefaultConfig())

	d, err := b.Decide(SensorReading{
		Front: 45.2, Left: 60.0, Right: 35.5,
		EncoderPulses: 1240, Stage: StageAToB, TargetDistance: 100,
	})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.Action != ActionForward {
		t.Fatalf("got %s, want FORWARD", d.Action)
	}
	if d.Speed != 180 {
		t.Errorf("speed = %d, want normal tier 180", d.Speed)
	}
	for _, want := range []string{"45.2", "60.0", "35.5"} {
		if !strings.Contains(d.Explanation, want) {
			t.Errorf("explanation %q missing %s", d.Explanation, want)
		}
	}
	if d.Number != 1 {
		t.Errorf("decision number = %d, want 1", d.Number)
	}
}

func TestBrain_DecisionNumberingAndReset(t *testing.T) {
	b := New(DefaultConfig())

	for i := 1; i <= 3; i++ {
		d, err := b.Decide(clearReading(int64(i)))
		if err != nil {
			t.Fatalf("decide %d: %v", i, err)
		}
		if d.Number != i {
			t.Errorf("decision number = %d, want %d", d.Number, i)
		}
	}

	res := b.Reset()
	if res.Epoch != 1 {
		t.Errorf("epoch = %d, want 1 after first reset", res.Epoch)
	}

	st := b.Status()
	if st.DecisionCount != 0 || len(st.Recent) != 0 || st.Stage != StageAToB {
		t.Errorf("reset left state behind: %+v", st)
	}

	d, err := b.Decide(clearReading(10))
	if err != nil {
		t.Fatalf("decide after reset: %v", err)
	}
	if d.Number != 1 {
		t.Errorf("post-reset decision number = %d, want 1", d.Number)
	}
}

func TestBrain_StatusIdempotent(t *testing.T) {
	b := New(DefaultConfig())
	if _, err := b.Decide(clearReading(100)); err != nil {
		t.Fatalf("decide: %v", err)
	}

	first := b.Status()
	second := b.Status()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("status is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestBrain_StageAdvanceOnArrival(t *testing.T) {
	cfg := DefaultConfig()
	b := New(cfg)

	// Baseline reading, then enough pulses to cover the 100cm A->B leg.
	if _, err := b.Decide(clearReading(0)); err != nil {
		t.Fatalf("baseline: %v", err)
	}
	pulses := int64(math.Ceil(100/cfg.Encoder.DistancePerPulse())) + 1
	d, err := b.Decide(clearReading(pulses))
	if err != nil {
		t.Fatalf("arrival decide: %v", err)
	}

	if d.Action != ActionStop {
		t.Fatalf("got %s, want STOP on arrival", d.Action)
	}
	if d.Stage != StageAToB {
		t.Errorf("arrival decision reported stage %s, want %s", d.Stage, StageAToB)
	}

	st := b.Status()
	if st.Stage != StageBToC {
		t.Errorf("stage = %s, want %s after arrival", st.Stage, StageBToC)
	}
	if st.StageTraveled != 0 {
		t.Errorf("stage accumulator = %.2f, want 0 after advance", st.StageTraveled)
	}
}

func TestBrain_ConcurrentArrivalAdvancesOnce(t *testing.T) {
	cfg := DefaultConfig()
	b := New(cfg)

	if _, err := b.Decide(clearReading(0)); err != nil {
		t.Fatalf("baseline: %v", err)
	}
	pulses := int64(math.Ceil(100/cfg.Encoder.DistancePerPulse())) + 1

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := b.Decide(clearReading(pulses)); err != nil {
				t.Errorf("concurrent decide: %v", err)
			}
		}()
	}
	wg.Wait()

	// Whichever cycle ran first consumed the arrival; the other must have
	// seen the already-advanced stage. The stage advances exactly once.
	st := b.Status()
	if st.Stage != StageBToC {
		t.Fatalf("stage = %s, want %s (advanced exactly once)", st.Stage, StageBToC)
	}
	arrivals := 0
	for _, d := range st.Recent {
		if strings.Contains(d.Explanation, "DESTINATION REACHED") {
			arrivals++
		}
	}
	if arrivals != 1 {
		t.Errorf("arrival decisions = %d, want exactly 1", arrivals)
	}
}

func TestBrain_TerminalStageKeepsStopping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Navigation.Legs = []Leg{{Stage: StageAToB, TargetCM: 10}}
	b := New(cfg)

	if _, err := b.Decide(clearReading(0)); err != nil {
		t.Fatalf("baseline: %v", err)
	}
	if _, err := b.Decide(clearReading(20)); err != nil { // ~20cm, arrival
		t.Fatalf("arrival: %v", err)
	}
	if st := b.Status(); st.Stage != StageArrived {
		t.Fatalf("stage = %s, want %s", st.Stage, StageArrived)
	}

	d, err := b.Decide(clearReading(20))
	if err != nil {
		t.Fatalf("terminal decide: %v", err)
	}
	if d.Action != ActionStop {
		t.Errorf("terminal stage decision = %s, want STOP", d.Action)
	}
}

func TestBrain_ValidationLeavesLedgerUntouched(t *testing.T) {
	b := New(DefaultConfig())

	_, err := b.Decide(SensorReading{Front: math.NaN(), Left: 50, Right: 50})
	if err == nil {
		t.Fatal("expected validation error for NaN distance")
	}
	if !IsValidation(err) {
		t.Errorf("error %v should be a validation error", err)
	}

	_, err = b.Decide(SensorReading{Front: 50, Left: 50, Right: 50, EncoderPulses: -1})
	if !IsValidation(err) {
		t.Errorf("negative pulses should be a validation error, got %v", err)
	}

	if st := b.Status(); st.DecisionCount != 0 || len(st.Recent) != 0 {
		t.Errorf("failed cycles must append nothing: %+v", st)
	}
}

func TestBrain_TraveledNeverDecreases(t *testing.T) {
	b := New(DefaultConfig())

	var prev float64
	for _, pulses := range []int64{0, 40, 20, 45, 10, 60} {
		if _, err := b.Decide(clearReading(pulses)); err != nil {
			t.Fatalf("decide: %v", err)
		}
		st := b.Status()
		if st.TotalTraveled < prev {
			t.Fatalf("traveled decreased: %.2f -> %.2f", prev, st.TotalTraveled)
		}
		prev = st.TotalTraveled
	}
}

func TestBrain_AskFallsBackToSummary(t *testing.T) {
	b := New(DefaultConfig())
	if _, err := b.Decide(clearReading(10)); err != nil {
		t.Fatalf("decide: %v", err)
	}

	ans, err := b.Ask("quxzzle frobnicate")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if ans.Intent != IntentSummary {
		t.Errorf("intent = %s, want summary fallback", ans.Intent)
	}
	if ans.Text == "" {
		t.Error("summary answer should not be empty")
	}

	if _, err := b.Ask(""); err == nil {
		t.Error("empty question should be rejected")
	}
}

func TestBrain_HistoryBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistorySize = 5
	// Long journey so arrivals don't interfere.
	cfg.Navigation.Legs = []Leg{{Stage: StageAToB, TargetCM: 1e9}}
	b := New(cfg)

	for i := 0; i < 20; i++ {
		if _, err := b.Decide(clearReading(int64(i))); err != nil {
			t.Fatalf("decide: %v", err)
		}
	}
	st := b.Status()
	if len(st.Recent) != 5 {
		t.Fatalf("history length = %d, want 5", len(st.Recent))
	}
	if st.Recent[4].Number != 20 {
		t.Errorf("newest decision number = %d, want 20", st.Recent[4].Number)
	}
}
