package brain

import (
	"strings"
	"testing"
)

func askResponder(t *testing.T, b *Brain, q string) Answer {
	t.Helper()
	ans, err := b.Ask(q)
	if err != nil {
		t.Fatalf("ask %q: %v", q, err)
	}
	return ans
}

func TestResponder_ObstacleStatus(t *testing.T) {
	b := New(DefaultConfig())
	if _, err := b.Decide(SensorReading{Front: 10, Left: 25, Right: 80}); err != nil {
		t.Fatalf("decide: %v", err)
	}

	ans := askResponder(t, b, "obstacle irukku?")
	if ans.Intent != IntentObstacle {
		t.Fatalf("intent = %s", ans.Intent)
	}
	for _, want := range []string{"FRONT: BLOCKED", "LEFT: CAUTION", "RIGHT: CLEAR"} {
		if !strings.Contains(ans.Text, want) {
			t.Errorf("answer %q missing %q", ans.Text, want)
		}
	}
}

func TestResponder_PathComparison(t *testing.T) {
	b := New(DefaultConfig())
	if _, err := b.Decide(SensorReading{Front: 100, Left: 60, Right: 45}); err != nil {
		t.Fatalf("decide: %v", err)
	}

	ans := askResponder(t, b, "left free aa? right free aa?")
	if ans.Intent != IntentPath {
		t.Fatalf("intent = %s", ans.Intent)
	}
	if !strings.Contains(ans.Text, "Choose LEFT") {
		t.Errorf("answer should recommend the wider left path: %q", ans.Text)
	}
	if !strings.Contains(ans.Text, "15.0") {
		t.Errorf("answer should quote the width margin: %q", ans.Text)
	}
}

func TestResponder_ProgressCheck(t *testing.T) {
	b := New(DefaultConfig())
	b.Decide(clearReading(0))
	b.Decide(clearReading(20)) // ~20.4cm into the 100cm leg

	ans := askResponder(t, b, "how far to the target?")
	if ans.Intent != IntentProgress {
		t.Fatalf("intent = %s", ans.Intent)
	}
	if !strings.Contains(ans.Text, "100.0cm target") {
		t.Errorf("answer should state the stage target: %q", ans.Text)
	}
}

func TestResponder_HardwareSubtopics(t *testing.T) {
	b := New(DefaultConfig())

	cases := []struct {
		question string
		want     string
	}{
		{"which gpio pins are used?", "GPIO pin mapping"},
		{"what are the safety thresholds?", "critical 15cm"},
		{"tell me about the encoder wheel", "20 slots"},
		{"what motor speeds do you use?", "normal 180"},
	}
	for _, c := range cases {
		ans := askResponder(t, b, c.question)
		if ans.Intent != IntentHardware {
			t.Errorf("%q: intent = %s, want hardware", c.question, ans.Intent)
			continue
		}
		if !strings.Contains(ans.Text, c.want) {
			t.Errorf("%q: answer %q missing %q", c.question, ans.Text, c.want)
		}
	}
}
