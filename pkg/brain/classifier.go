package brain

import "strings"

// Intent is the classified purpose of a free-text question.
type Intent string

const (
	// IntentObstacle asks whether the sensors see something blocking.
	IntentObstacle Intent = "obstacle_status"
	// IntentPath asks which side, left or right, is the better path.
	IntentPath Intent = "path_comparison"
	// IntentProgress asks how far the rover has traveled toward its target.
	IntentProgress Intent = "progress_check"
	// IntentHardware asks about wiring, thresholds or encoder geometry.
	IntentHardware Intent = "hardware_config"
	// IntentSummary is the total fallback: a state summary.
	IntentSummary Intent = "state_summary"
)

// intentRule maps trigger keywords to an intent. Rules are evaluated in
// order; the first rule with any matching keyword wins. The vocabulary mixes
// English with the Tamil phrasing the operators actually use, both
// transliterated and in Tamil script.
type intentRule struct {
	intent   Intent
	keywords []string
}

var intentRules = []intentRule{
	{IntentObstacle, []string{
		"obstacle", "blocked", "collision", "anything ahead", "in front",
		"irukku", "enna pannuva", "thadai", "தடை", "முன்னால்",
	}},
	{IntentPath, []string{
		"left", "right", "which way", "which side", "free aa",
		"pakkam", "இடது", "வலது", "எந்த பக்கம்",
	}},
	{IntentProgress, []string{
		"reached", "arrived", "how far", "progress", "target", "traveled",
		"travelled", "remaining", "evlo dooram", "eththana", "தூரம்",
	}},
	{IntentHardware, []string{
		"pin", "gpio", "config", "hardware", "encoder", "wheel",
		"threshold", "motor", "baud", "api", "server",
	}},
}

// Classify maps a question to an intent by case-insensitive substring
// matching. Unmatched input falls back to IntentSummary; it never errors.
func Classify(question string) Intent {
	q := strings.ToLower(question)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.intent
			}
		}
	}
	return IntentSummary
}
