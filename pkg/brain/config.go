package brain

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// SafetyConfig holds the distance thresholds that gate every decision.
// All values are centimeters.
type SafetyConfig struct {
	SafeDistance     float64 `yaml:"safe_distance" json:"safe_distance_cm"`
	CriticalDistance float64 `yaml:"critical_distance" json:"critical_distance_cm"`
	FollowDistance   float64 `yaml:"follow_distance" json:"follow_distance_cm"`

	// Physical sensing envelope of the ultrasonic modules. Readings outside
	// this range are treated as dropped echoes, not obstacles.
	MinValidDistance float64 `yaml:"min_valid_distance" json:"min_valid_distance_cm"`
	MaxValidDistance float64 `yaml:"max_valid_distance" json:"max_valid_distance_cm"`
}

// MotorConfig holds the PWM speed tiers and the turn mapping ratio.
type MotorConfig struct {
	SpeedFull   int `yaml:"speed_full" json:"speed_full"`
	SpeedNormal int `yaml:"speed_normal" json:"speed_normal"`
	SpeedSlow   int `yaml:"speed_slow" json:"speed_slow"`

	PWMFrequency  int `yaml:"pwm_frequency" json:"pwm_frequency_hz"`
	PWMResolution int `yaml:"pwm_resolution" json:"pwm_resolution_bits"`

	// TurnInnerRatio scales the inner wheel's speed during a turn.
	TurnInnerRatio float64 `yaml:"turn_inner_ratio" json:"turn_inner_ratio"`
}

// EncoderConfig describes the slotted encoder wheel.
type EncoderConfig struct {
	WheelDiameterCM float64 `yaml:"wheel_diameter_cm" json:"wheel_diameter_cm"`
	Slots           int     `yaml:"slots" json:"slots"`
}

// Circumference returns the wheel circumference in centimeters.
func (e EncoderConfig) Circumference() float64 {
	return e.WheelDiameterCM * math.Pi
}

// DistancePerPulse returns centimeters traveled per encoder pulse.
func (e EncoderConfig) DistancePerPulse() float64 {
	if e.Slots <= 0 {
		return 0
	}
	return e.Circumference() / float64(e.Slots)
}

// PinConfig mirrors the ESP32 GPIO wiring. The brain never touches pins; the
// record exists so config queries can echo the wiring to a human.
type PinConfig struct {
	MotorAPWM int `yaml:"motor_a_pwm" json:"motor_a_pwm"`
	MotorAIn1 int `yaml:"motor_a_in1" json:"motor_a_in1"`
	MotorAIn2 int `yaml:"motor_a_in2" json:"motor_a_in2"`
	MotorBPWM int `yaml:"motor_b_pwm" json:"motor_b_pwm"`
	MotorBIn1 int `yaml:"motor_b_in1" json:"motor_b_in1"`
	MotorBIn2 int `yaml:"motor_b_in2" json:"motor_b_in2"`

	UltraFrontTrig int `yaml:"ultra_front_trig" json:"ultra_front_trig"`
	UltraFrontEcho int `yaml:"ultra_front_echo" json:"ultra_front_echo"`
	UltraLeftTrig  int `yaml:"ultra_left_trig" json:"ultra_left_trig"`
	UltraLeftEcho  int `yaml:"ultra_left_echo" json:"ultra_left_echo"`
	UltraRightTrig int `yaml:"ultra_right_trig" json:"ultra_right_trig"`
	UltraRightEcho int `yaml:"ultra_right_echo" json:"ultra_right_echo"`

	Encoder int `yaml:"encoder" json:"encoder"`
}

// Leg is one stage of the journey with its target distance.
type Leg struct {
	Stage    Stage   `yaml:"stage" json:"stage"`
	TargetCM float64 `yaml:"target_cm" json:"target_cm"`
}

// NavigationConfig describes the multi-leg journey.
type NavigationConfig struct {
	Legs              []Leg   `yaml:"legs" json:"legs"`
	DistanceTolerance float64 `yaml:"distance_tolerance" json:"distance_tolerance_cm"`
}

// Target returns the configured target distance for a stage.
// The terminal stage has no target; ok is false.
func (n NavigationConfig) Target(s Stage) (float64, bool) {
	for _, leg := range n.Legs {
		if leg.Stage == s {
			return leg.TargetCM, true
		}
	}
	return 0, false
}

// Next returns the stage that follows s. The last configured leg advances to
// StageArrived.
func (n NavigationConfig) Next(s Stage) Stage {
	for i, leg := range n.Legs {
		if leg.Stage == s {
			if i+1 < len(n.Legs) {
				return n.Legs[i+1].Stage
			}
			return StageArrived
		}
	}
	return StageArrived
}

// Config is the full parameter record for the brain. Every threshold and
// speed tier the engine uses lives here so tests can override them without
// touching engine logic.
type Config struct {
	Safety     SafetyConfig     `yaml:"safety" json:"safety_thresholds"`
	Motor      MotorConfig      `yaml:"motor" json:"motor"`
	Encoder    EncoderConfig    `yaml:"encoder" json:"encoder_info"`
	Pins       PinConfig        `yaml:"pins" json:"pin_config"`
	Navigation NavigationConfig `yaml:"navigation" json:"navigation"`

	// SmoothingWeight is the EWMA weight of the newest raw reading (0-1).
	SmoothingWeight float64 `yaml:"smoothing_weight" json:"smoothing_weight"`

	// HistorySize bounds the in-memory decision history.
	HistorySize int `yaml:"history_size" json:"history_size"`
}

// DefaultConfig returns the stock rover parameters.
func DefaultConfig() Config {
	return Config{
		Safety: SafetyConfig{
			SafeDistance:     30,
			CriticalDistance: 15,
			FollowDistance:   25,
			MinValidDistance: 2,
			MaxValidDistance: 400,
		},
		Motor: MotorConfig{
			SpeedFull:      255,
			SpeedNormal:    180,
			SpeedSlow:      100,
			PWMFrequency:   5000,
			PWMResolution:  8,
			TurnInnerRatio: 0.5,
		},
		Encoder: EncoderConfig{
			WheelDiameterCM: 6.5,
			Slots:           20,
		},
		Pins: PinConfig{
			MotorAPWM: 25, MotorAIn1: 27, MotorAIn2: 26,
			MotorBPWM: 12, MotorBIn1: 14, MotorBIn2: 13,
			UltraFrontTrig: 5, UltraFrontEcho: 18,
			UltraLeftTrig: 19, UltraLeftEcho: 21,
			UltraRightTrig: 23, UltraRightEcho: 22,
			Encoder: 4,
		},
		Navigation: NavigationConfig{
			Legs: []Leg{
				{Stage: StageAToB, TargetCM: 100},
				{Stage: StageBToC, TargetCM: 50},
			},
			DistanceTolerance: 5,
		},
		SmoothingWeight: 0.7,
		HistorySize:     500,
	}
}

// LoadConfig overlays a YAML file on top of the defaults.
// A missing path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("brain: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("brain: parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Safety.CriticalDistance <= 0 || c.Safety.SafeDistance <= c.Safety.CriticalDistance {
		return fmt.Errorf("brain: safe distance (%.1f) must exceed critical distance (%.1f)",
			c.Safety.SafeDistance, c.Safety.CriticalDistance)
	}
	if c.SmoothingWeight <= 0 || c.SmoothingWeight > 1 {
		return fmt.Errorf("brain: smoothing weight %.2f out of range (0,1]", c.SmoothingWeight)
	}
	if c.Encoder.Slots <= 0 || c.Encoder.WheelDiameterCM <= 0 {
		return fmt.Errorf("brain: encoder geometry must be positive")
	}
	return nil
}
