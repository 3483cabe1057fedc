// roverd is the navigation decision daemon: it serves the decide/status/chat
// API the rover's ESP32 and dashboard talk to.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teslashibe/go-rover/internal/config"
	"github.com/teslashibe/go-rover/internal/journal"
	"github.com/teslashibe/go-rover/internal/log"
	"github.com/teslashibe/go-rover/pkg/brain"
	"github.com/teslashibe/go-rover/pkg/web"
)

var (
	flagPort     string
	flagConfig   string
	flagJournal  string
	flagLogLevel string
)

func main() {
	root := &cobra.Command{
		Use:   "roverd",
		Short: "Real-time navigation decision engine for the rover",
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "engine parameter YAML file (default: built-in)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE:  runServe,
	}
	serve.Flags().StringVar(&flagPort, "port", "", "HTTP port (default 5000, or ROVER_PORT)")
	serve.Flags().StringVar(&flagJournal, "journal", "", "SQLite flight-recorder path (disabled when empty)")

	show := &cobra.Command{
		Use:   "config",
		Short: "Print the effective engine configuration",
		RunE:  runShowConfig,
	}

	root.AddCommand(serve, show)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadBrainConfig() (brain.Config, error) {
	path := config.BrainConfigPath(flagConfig)
	return brain.LoadConfig(path)
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Init(config.LogLevel(flagLogLevel))

	cfg, err := loadBrainConfig()
	if err != nil {
		return err
	}

	var store *journal.Store
	if path := config.JournalPath(flagJournal); path != "" {
		store, err = journal.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		log.Info("flight recorder enabled", "path", path)
	}

	b := brain.New(cfg)
	port := config.Port(flagPort)
	server := web.NewServer(port, b, store)

	log.Info("starting roverd",
		"port", port,
		"safe_cm", cfg.Safety.SafeDistance,
		"critical_cm", cfg.Safety.CriticalDistance,
		"wheel_cm", cfg.Encoder.WheelDiameterCM,
		"encoder_slots", cfg.Encoder.Slots,
	)

	// Serve until interrupted.
	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		return server.Shutdown()
	case err := <-errCh:
		return err
	}
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadBrainConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "go-rover configuration")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Safety:    safe %.0fcm, critical %.0fcm, follow %.0fcm\n",
		cfg.Safety.SafeDistance, cfg.Safety.CriticalDistance, cfg.Safety.FollowDistance)
	fmt.Fprintf(out, "  Envelope:  %.0f-%.0fcm valid sensing range\n",
		cfg.Safety.MinValidDistance, cfg.Safety.MaxValidDistance)
	fmt.Fprintf(out, "  Motors:    full %d, normal %d, slow %d PWM (%dHz, %d-bit)\n",
		cfg.Motor.SpeedFull, cfg.Motor.SpeedNormal, cfg.Motor.SpeedSlow,
		cfg.Motor.PWMFrequency, cfg.Motor.PWMResolution)
	fmt.Fprintf(out, "  Encoder:   wheel %.1fcm, %d slots, %.3fcm per pulse\n",
		cfg.Encoder.WheelDiameterCM, cfg.Encoder.Slots, cfg.Encoder.DistancePerPulse())
	fmt.Fprintf(out, "  Smoothing: %.0f%% new reading weight\n", cfg.SmoothingWeight*100)
	fmt.Fprintln(out, "  Journey:")
	for _, leg := range cfg.Navigation.Legs {
		fmt.Fprintf(out, "    %-10s target %.0fcm\n", leg.Stage, leg.TargetCM)
	}
	fmt.Fprintf(out, "  Pins:      motor A PWM=%d, motor B PWM=%d, encoder=%d\n",
		cfg.Pins.MotorAPWM, cfg.Pins.MotorBPWM, cfg.Pins.Encoder)
	return nil
}
