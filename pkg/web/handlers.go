package web

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/teslashibe/go-rover/internal/log"
	"github.com/teslashibe/go-rover/internal/metrics"
	"github.com/teslashibe/go-rover/pkg/brain"
)

// decideRequest is the wire format the ESP32 posts each report cycle.
// Distances are pointers so a missing field is distinguishable from zero.
type decideRequest struct {
	Front          *float64 `json:"front_dist" validate:"required"`
	Left           *float64 `json:"left_dist" validate:"required"`
	Right          *float64 `json:"right_dist" validate:"required"`
	EncoderPulses  int64    `json:"encoder_pulses" validate:"gte=0"`
	Stage          string   `json:"stage"`
	TargetDistance float64  `json:"target_distance" validate:"gte=0"`
}

type decideResponse struct {
	brain.Decision
	Status string `json:"status"`
}

// handleDecide is the main cycle: sensor data in, navigation decision out.
func (s *Server) handleDecide(c *fiber.Ctx) error {
	var req decideRequest
	if err := c.BodyParser(&req); err != nil {
		metrics.ObserveValidationFailure()
		return badRequest(c, "invalid JSON body: "+err.Error())
	}
	if err := s.validate.Struct(req); err != nil {
		metrics.ObserveValidationFailure()
		return validationFailed(c, err)
	}

	reading := brain.SensorReading{
		Front:          *req.Front,
		Left:           *req.Left,
		Right:          *req.Right,
		EncoderPulses:  req.EncoderPulses,
		Stage:          brain.Stage(req.Stage),
		TargetDistance: req.TargetDistance,
	}

	start := time.Now()
	decision, err := s.brain.Decide(reading)
	if err != nil {
		if brain.IsValidation(err) {
			metrics.ObserveValidationFailure()
			return badRequest(c, err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error", "message": err.Error(),
		})
	}

	status := s.brain.Status()
	metrics.ObserveDecision(decision, status.Smoothed, status.CriticalDist, time.Since(start))
	s.telemetry.BroadcastJSON(decision)

	if s.journal != nil {
		if err := s.journal.Append(status.Epoch, decision); err != nil {
			log.Warn("journal append failed", "error", err)
		}
	}

	return c.JSON(decideResponse{Decision: decision, Status: "success"})
}

// handleStatus returns the current brain snapshot. Read-only.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	status := s.brain.Status()

	// Cap the recent-decision list on the wire; the full history stays
	// in memory for the journal and dashboards that want the stream.
	const maxRecent = 20
	if len(status.Recent) > maxRecent {
		status.Recent = status.Recent[len(status.Recent)-maxRecent:]
	}

	return c.JSON(fiber.Map{"status": "success", "data": status})
}

// handleConfig echoes the static parameter record. Read-only.
func (s *Server) handleConfig(c *fiber.Ctx) error {
	cfg := s.brain.Config()
	return c.JSON(fiber.Map{
		"status":            "success",
		"pin_config":        cfg.Pins,
		"safety_thresholds": cfg.Safety,
		"motor":             cfg.Motor,
		"encoder_info": fiber.Map{
			"wheel_diameter_cm":     cfg.Encoder.WheelDiameterCM,
			"slots":                 cfg.Encoder.Slots,
			"circumference_cm":      cfg.Encoder.Circumference(),
			"distance_per_pulse_cm": cfg.Encoder.DistancePerPulse(),
		},
		"navigation": cfg.Navigation,
	})
}

// handleReset clears all mutable state and starts a new epoch.
func (s *Server) handleReset(c *fiber.Ctx) error {
	res := s.brain.Reset()
	log.Info("brain reset", "epoch", res.Epoch, "epoch_id", res.EpochID)
	return c.JSON(fiber.Map{
		"status":   "success",
		"epoch":    res.Epoch,
		"epoch_id": res.EpochID,
		"message":  "Robot brain reset. Ready for new navigation.",
	})
}

type askRequest struct {
	Question string `json:"question" validate:"required"`
}

// handleAsk classifies a free-text question and answers from current state.
func (s *Server) handleAsk(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON body: "+err.Error())
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, "question is required")
	}

	answer, err := s.brain.Ask(req.Question)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(fiber.Map{
		"status":          "success",
		"question":        answer.Question,
		"intent":          answer.Intent,
		"response":        answer.Text,
		"supporting_data": answer.Data,
		"timestamp":       time.Now().Format(time.RFC3339),
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   "go-rover navigation engine",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleIndex lists the available endpoints.
func (s *Server) handleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "online",
		"service": "go-rover - real-time navigation engine",
		"endpoints": fiber.Map{
			"POST /api/robot/decide": "send sensor data, get a navigation decision",
			"GET /api/robot/status":  "current robot state",
			"GET /api/robot/config":  "hardware configuration",
			"POST /api/robot/reset":  "reset the brain, new epoch",
			"POST /api/chat/ask":     "ask about robot state",
			"GET /api/health":        "health check",
			"GET /metrics":           "prometheus counters",
			"GET /ws/telemetry":      "live decision stream",
		},
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status": "error", "message": message,
	})
}

// validationFailed renders validator errors as a per-field map.
func validationFailed(c *fiber.Ctx, err error) error {
	fields := fiber.Map{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"message": "missing or invalid fields",
		"fields":  fields,
	})
}
