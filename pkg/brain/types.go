// Package brain implements the navigation decision engine for the rover.
// It ingests raw ultrasonic and encoder readings, maintains smoothed sensor
// state, tracks stage progress, and emits motor commands with a plain-English
// explanation for every decision.
package brain

import "time"

// Action is the discrete motor command chosen by the engine.
type Action string

const (
	ActionForward     Action = "FORWARD"
	ActionForwardSlow Action = "FORWARD_SLOW"
	ActionTurnLeft    Action = "TURN_LEFT"
	ActionTurnRight   Action = "TURN_RIGHT"
	ActionStop        Action = "STOP"
)

// Direction is the rotation direction of a single wheel.
type Direction string

const (
	DirForward Direction = "FWD"
	DirReverse Direction = "REV"
	DirStop    Direction = "STOP"
)

// Stage identifies one leg of the A -> B -> C journey.
type Stage string

const (
	StageIdle    Stage = "IDLE"
	StageAToB    Stage = "A->B"
	StageBToC    Stage = "B->C"
	StageArrived Stage = "ARRIVED_C"
)

// SensorReading is one raw report from the robot: three ultrasonic distances
// in centimeters plus the cumulative encoder pulse count. Stage and
// TargetDistance are advisory; the brain's own stage tracking is
// authoritative.
type SensorReading struct {
	Front          float64 `json:"front_dist"`
	Left           float64 `json:"left_dist"`
	Right          float64 `json:"right_dist"`
	EncoderPulses  int64   `json:"encoder_pulses"`
	Stage          Stage   `json:"stage,omitempty"`
	TargetDistance float64 `json:"target_distance,omitempty"`
}

// SmoothedState holds the noise-filtered sensor values derived from the
// current raw reading and recent history.
type SmoothedState struct {
	Front float64 `json:"front"`
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// MotorOutput is the command for a single wheel.
type MotorOutput struct {
	Speed     int       `json:"speed"` // PWM 0-255
	Direction Direction `json:"direction"`
}

// Decision is the engine's output for one cycle. Immutable once created;
// appended to history and never mutated afterward.
type Decision struct {
	Action      Action      `json:"decision"`
	Speed       int         `json:"speed"`
	LeftMotor   MotorOutput `json:"motor_left"`
	RightMotor  MotorOutput `json:"motor_right"`
	Explanation string      `json:"explanation"`
	Arrived     bool        `json:"arrived"`
	Number      int         `json:"decision_number"`
	Stage       Stage       `json:"current_stage"`
	TraveledCM  float64     `json:"stage_distance_cm"`
	Timestamp   time.Time   `json:"timestamp"`
}

// Status is a consistent point-in-time snapshot of the brain.
type Status struct {
	Epoch          int            `json:"epoch"`
	EpochID        string         `json:"epoch_id"`
	Stage          Stage          `json:"current_stage"`
	DecisionCount  int            `json:"total_decisions"`
	StageTraveled  float64        `json:"stage_distance_cm"`
	TotalTraveled  float64        `json:"total_distance_cm"`
	Smoothed       SmoothedState  `json:"smoothed"`
	LastReading    *SensorReading `json:"last_reading,omitempty"`
	LastDecision   *Decision      `json:"last_decision,omitempty"`
	Recent         []Decision     `json:"recent_decisions"`
	SafeDistance   float64        `json:"safe_distance_cm"`
	CriticalDist   float64        `json:"critical_distance_cm"`
}

// Answer is the response to a free-text question about the robot's state.
type Answer struct {
	Intent   Intent         `json:"intent"`
	Question string         `json:"question"`
	Text     string         `json:"response"`
	Data     map[string]any `json:"supporting_data,omitempty"`
}
