package brain

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		question string
		want     Intent
	}{
		// English
		{"Is there an obstacle ahead?", IntentObstacle},
		{"anything in front of you?", IntentObstacle},
		{"Which way should we go, left or right?", IntentPath},
		{"is the right side free?", IntentPath},
		{"Have we reached the target yet?", IntentProgress},
		{"how far have we traveled?", IntentProgress},
		{"what gpio pin is the encoder on?", IntentHardware},
		{"show me the motor config", IntentHardware},

		// Tamil, transliterated and in script
		{"Obstacle irukku na enna pannuva?", IntentObstacle},
		{"Left free aa? Right free aa?", IntentPath},
		{"innum evlo dooram?", IntentProgress},
		{"தடை இருக்கா?", IntentObstacle},
		{"இடது பக்கம் காலியா?", IntentPath},

		// Fallback
		{"tell me something", IntentSummary},
		{"???", IntentSummary},
	}

	for _, c := range cases {
		if got := Classify(c.question); got != c.want {
			t.Errorf("Classify(%q) = %s, want %s", c.question, got, c.want)
		}
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// Mentions both an obstacle and the flanks; the obstacle rule is
	// earlier in the priority table.
	if got := Classify("obstacle on the left?"); got != IntentObstacle {
		t.Errorf("got %s, want obstacle (priority order)", got)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	if got := Classify("IS THERE AN OBSTACLE?"); got != IntentObstacle {
		t.Errorf("got %s, want obstacle", got)
	}
}
