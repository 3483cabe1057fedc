package brain

import "fmt"

// verdict is the engine's raw output before the ledger stamps numbering and
// timestamps onto it.
type verdict struct {
	action      Action
	speed       int
	explanation string
	arrived     bool
}

// Engine applies the obstacle-avoidance rule set to a smoothed state.
// It is stateless and deterministic: identical inputs yield identical output.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given parameters.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Decide evaluates the rules in strict priority order. The ordering is a
// correctness contract:
//
//  1. arrival: traveled >= target stops regardless of sensor state
//  2. critical front: emergency stop regardless of flanks
//  3. caution front: turn toward a clear flank (wider side wins, exact tie
//     turns right), or creep forward slowly when neither flank is clear
//  4. clear front: straight when both flanks clear, turn toward the only
//     clear flank, stop to re-evaluate in a narrow corridor
func (e *Engine) Decide(s SmoothedState, traveled, target float64, hasTarget bool) verdict {
	safety := e.cfg.Safety
	motor := e.cfg.Motor

	// Rule 1: arrival. Reaching the destination supersedes locomotion.
	if hasTarget && traveled >= target {
		return verdict{
			action:  ActionStop,
			arrived: true,
			explanation: fmt.Sprintf(
				"DESTINATION REACHED! Traveled %.1fcm / Target %.1fcm. Navigation complete.",
				traveled, target),
		}
	}

	// Rule 2: critical front. Emergency stop no matter what the flanks say.
	if s.Front <= safety.CriticalDistance {
		return verdict{
			action: ActionStop,
			explanation: fmt.Sprintf(
				"OBSTACLE AHEAD! Front distance %.1fcm <= %.0fcm (critical). EMERGENCY STOP.",
				s.Front, safety.CriticalDistance),
		}
	}

	leftClear := s.Left > safety.SafeDistance
	rightClear := s.Right > safety.SafeDistance

	// Rule 3: caution front. Straight travel is unsafe; prefer a clear flank.
	if s.Front <= safety.SafeDistance {
		switch {
		case leftClear && rightClear:
			// Wider side wins; an exact tie turns right.
			if s.Left > s.Right {
				return verdict{
					action: ActionTurnLeft,
					speed:  motor.SpeedNormal,
					explanation: fmt.Sprintf(
						"TURN LEFT! Front blocked (%.1fcm), left path wider: Left %.1fcm vs Right %.1fcm.",
						s.Front, s.Left, s.Right),
				}
			}
			return verdict{
				action: ActionTurnRight,
				speed:  motor.SpeedNormal,
				explanation: fmt.Sprintf(
					"TURN RIGHT! Front blocked (%.1fcm), right path wider or equal: Right %.1fcm vs Left %.1fcm.",
					s.Front, s.Right, s.Left),
			}
		case leftClear:
			return verdict{
				action: ActionTurnLeft,
				speed:  motor.SpeedSlow,
				explanation: fmt.Sprintf(
					"FORCED LEFT TURN! Front (%.1fcm) and right (%.1fcm) blocked. Only left path available: %.1fcm.",
					s.Front, s.Right, s.Left),
			}
		case rightClear:
			return verdict{
				action: ActionTurnRight,
				speed:  motor.SpeedSlow,
				explanation: fmt.Sprintf(
					"FORCED RIGHT TURN! Front (%.1fcm) and left (%.1fcm) blocked. Only right path available: %.1fcm.",
					s.Front, s.Left, s.Right),
			}
		default:
			return verdict{
				action: ActionForwardSlow,
				speed:  motor.SpeedSlow,
				explanation: fmt.Sprintf(
					"CAUTION ZONE! Front %.1fcm in warning range (%.0f-%.0fcm), flanks tight (Left: %.1fcm, Right: %.1fcm). Moving FORWARD SLOWLY at %d PWM.",
					s.Front, safety.CriticalDistance, safety.SafeDistance, s.Left, s.Right, motor.SpeedSlow),
			}
		}
	}

	// Rule 4: clear front. Compare the flanks.
	switch {
	case leftClear && rightClear:
		return verdict{
			action: ActionForward,
			speed:  motor.SpeedNormal,
			explanation: fmt.Sprintf(
				"ALL PATHS CLEAR! Front: %.1fcm, Left: %.1fcm, Right: %.1fcm. Moving FORWARD at %d PWM.",
				s.Front, s.Left, s.Right, motor.SpeedNormal),
		}
	case leftClear:
		return verdict{
			action: ActionTurnLeft,
			speed:  motor.SpeedNormal,
			explanation: fmt.Sprintf(
				"TURN LEFT! Front clear (%.1fcm) but right constrained (%.1fcm). Left open: %.1fcm.",
				s.Front, s.Right, s.Left),
		}
	case rightClear:
		return verdict{
			action: ActionTurnRight,
			speed:  motor.SpeedNormal,
			explanation: fmt.Sprintf(
				"TURN RIGHT! Front clear (%.1fcm) but left constrained (%.1fcm). Right open: %.1fcm.",
				s.Front, s.Left, s.Right),
		}
	default:
		return verdict{
			action: ActionStop,
			explanation: fmt.Sprintf(
				"NARROW CORRIDOR! Front clear (%.1fcm) but Left %.1fcm and Right %.1fcm constrained. STOPPING to re-evaluate.",
				s.Front, s.Left, s.Right),
		}
	}
}

// Motors maps an action and chosen speed to the per-wheel command table.
// Turns slow the inner wheel by the configured ratio; stop halts both.
func (e *Engine) Motors(action Action, speed int) (left, right MotorOutput) {
	inner := int(float64(speed) * e.cfg.Motor.TurnInnerRatio)
	switch action {
	case ActionForward, ActionForwardSlow:
		return MotorOutput{Speed: speed, Direction: DirForward},
			MotorOutput{Speed: speed, Direction: DirForward}
	case ActionTurnLeft:
		return MotorOutput{Speed: inner, Direction: DirForward},
			MotorOutput{Speed: speed, Direction: DirForward}
	case ActionTurnRight:
		return MotorOutput{Speed: speed, Direction: DirForward},
			MotorOutput{Speed: inner, Direction: DirForward}
	default:
		return MotorOutput{Speed: 0, Direction: DirStop},
			MotorOutput{Speed: 0, Direction: DirStop}
	}
}
