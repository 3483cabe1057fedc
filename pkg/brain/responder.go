package brain

import (
	"fmt"
	"strings"
)

// zoneLabel buckets a distance against the safety thresholds.
func (b *Brain) zoneLabel(d float64) string {
	switch {
	case d <= b.cfg.Safety.CriticalDistance:
		return "BLOCKED"
	case d <= b.cfg.Safety.SafeDistance:
		return "CAUTION"
	default:
		return "CLEAR"
	}
}

// respond builds a templated answer for a classified question from a
// snapshot. Pure formatting; no state is mutated.
func (b *Brain) respond(question string, intent Intent, snap Status) Answer {
	ans := Answer{Intent: intent, Question: question}

	switch intent {
	case IntentObstacle:
		s := snap.Smoothed
		lines := []string{
			fmt.Sprintf("FRONT: %s (%.1fcm)", b.zoneLabel(s.Front), s.Front),
			fmt.Sprintf("LEFT: %s (%.1fcm)", b.zoneLabel(s.Left), s.Left),
			fmt.Sprintf("RIGHT: %s (%.1fcm)", b.zoneLabel(s.Right), s.Right),
		}
		ans.Text = strings.Join(lines, "\n")
		ans.Data = map[string]any{
			"front_cm": s.Front, "left_cm": s.Left, "right_cm": s.Right,
			"critical_cm": b.cfg.Safety.CriticalDistance,
			"safe_cm":     b.cfg.Safety.SafeDistance,
		}

	case IntentPath:
		s := snap.Smoothed
		leftFree := s.Left > b.cfg.Safety.SafeDistance
		rightFree := s.Right > b.cfg.Safety.SafeDistance
		var sb strings.Builder
		fmt.Fprintf(&sb, "LEFT: %s (%.1fcm)\n", freeLabel(leftFree), s.Left)
		fmt.Fprintf(&sb, "RIGHT: %s (%.1fcm)\n", freeLabel(rightFree), s.Right)
		switch {
		case leftFree && rightFree:
			better := "RIGHT"
			if s.Left > s.Right {
				better = "LEFT"
			}
			fmt.Fprintf(&sb, "BOTH FREE. Choose %s (wider by %.1fcm).", better, abs(s.Left-s.Right))
		case leftFree:
			sb.WriteString("Turn LEFT, only option.")
		case rightFree:
			sb.WriteString("Turn RIGHT, only option.")
		default:
			sb.WriteString("Both sides BLOCKED. STOP and re-evaluate.")
		}
		ans.Text = sb.String()
		ans.Data = map[string]any{
			"left_cm": s.Left, "right_cm": s.Right,
			"left_free": leftFree, "right_free": rightFree,
		}

	case IntentProgress:
		target, hasTarget := b.cfg.Navigation.Target(snap.Stage)
		if !hasTarget {
			ans.Text = fmt.Sprintf("Stage %s: destination reached. Total traveled %.1fcm over %d decisions.",
				snap.Stage, snap.TotalTraveled, snap.DecisionCount)
		} else {
			remaining := target - snap.StageTraveled
			if remaining < 0 {
				remaining = 0
			}
			ans.Text = fmt.Sprintf("Stage %s: traveled %.1fcm of %.1fcm target, %.1fcm remaining.",
				snap.Stage, snap.StageTraveled, target, remaining)
		}
		ans.Data = map[string]any{
			"stage": snap.Stage, "stage_traveled_cm": snap.StageTraveled,
			"total_traveled_cm": snap.TotalTraveled,
		}

	case IntentHardware:
		ans.Text = b.hardwareInfo(question)
		ans.Data = map[string]any{
			"wheel_diameter_cm":     b.cfg.Encoder.WheelDiameterCM,
			"encoder_slots":         b.cfg.Encoder.Slots,
			"distance_per_pulse_cm": b.cfg.Encoder.DistancePerPulse(),
		}

	default:
		var last string
		if snap.LastDecision != nil {
			last = string(snap.LastDecision.Action)
		} else {
			last = "none yet"
		}
		ans.Text = fmt.Sprintf(
			"Stage %s, epoch %d. %d decisions made, last: %s. Smoothed distances: Front %.1fcm, Left %.1fcm, Right %.1fcm. Traveled %.1fcm this stage.",
			snap.Stage, snap.Epoch, snap.DecisionCount, last,
			snap.Smoothed.Front, snap.Smoothed.Left, snap.Smoothed.Right, snap.StageTraveled)
		ans.Data = map[string]any{
			"stage": snap.Stage, "decisions": snap.DecisionCount,
			"front_cm": snap.Smoothed.Front, "left_cm": snap.Smoothed.Left,
			"right_cm": snap.Smoothed.Right,
		}
	}
	return ans
}

// hardwareInfo answers configuration questions, narrowed by the sub-topic
// mentioned in the question.
func (b *Brain) hardwareInfo(question string) string {
	q := strings.ToLower(question)
	pins := b.cfg.Pins
	switch {
	case strings.Contains(q, "pin") || strings.Contains(q, "gpio"):
		return fmt.Sprintf(
			"GPIO pin mapping: Motor A PWM=GPIO%d IN1=GPIO%d IN2=GPIO%d; Motor B PWM=GPIO%d IN1=GPIO%d IN2=GPIO%d; "+
				"Ultrasonic front TRIG=GPIO%d ECHO=GPIO%d, left TRIG=GPIO%d ECHO=GPIO%d, right TRIG=GPIO%d ECHO=GPIO%d; Encoder GPIO%d.",
			pins.MotorAPWM, pins.MotorAIn1, pins.MotorAIn2,
			pins.MotorBPWM, pins.MotorBIn1, pins.MotorBIn2,
			pins.UltraFrontTrig, pins.UltraFrontEcho,
			pins.UltraLeftTrig, pins.UltraLeftEcho,
			pins.UltraRightTrig, pins.UltraRightEcho,
			pins.Encoder)
	case strings.Contains(q, "threshold") || strings.Contains(q, "distance"):
		return fmt.Sprintf(
			"Safety thresholds: safe %.0fcm, critical %.0fcm (emergency stop), follow %.0fcm.",
			b.cfg.Safety.SafeDistance, b.cfg.Safety.CriticalDistance, b.cfg.Safety.FollowDistance)
	case strings.Contains(q, "encoder") || strings.Contains(q, "wheel"):
		return fmt.Sprintf(
			"Encoder wheel: diameter %.1fcm, %d slots, circumference %.2fcm, %.3fcm per pulse.",
			b.cfg.Encoder.WheelDiameterCM, b.cfg.Encoder.Slots,
			b.cfg.Encoder.Circumference(), b.cfg.Encoder.DistancePerPulse())
	case strings.Contains(q, "motor") || strings.Contains(q, "speed") || strings.Contains(q, "pwm"):
		return fmt.Sprintf(
			"Motor speeds (PWM 0-255): full %d, normal %d, slow %d. PWM %dHz at %d-bit resolution.",
			b.cfg.Motor.SpeedFull, b.cfg.Motor.SpeedNormal, b.cfg.Motor.SpeedSlow,
			b.cfg.Motor.PWMFrequency, b.cfg.Motor.PWMResolution)
	default:
		return "Ask about: pins, thresholds, encoder wheel, or motor speeds."
	}
}

func freeLabel(free bool) string {
	if free {
		return "FREE"
	}
	return "BLOCKED"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
