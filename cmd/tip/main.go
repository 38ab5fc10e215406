// Command tip runs the reactive motion planner as a standalone process:
// load configuration, wire up the transform broker and optional debug
// telemetry server, and drive the planner until an OS signal arrives.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/geo/r3"

	"github.com/aclswarm/tip/config"
	"github.com/aclswarm/tip/logging"
	"github.com/aclswarm/tip/spatialmath"
	"github.com/aclswarm/tip/tip"
	"github.com/aclswarm/tip/tip/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML/JSON/TOML config file (defaults used if empty)")
	sensorFrame := flag.String("sensor-frame", "camera", "sensor frame id to register with the static transform broker")
	debugAddr := flag.String("debug-addr", ":8090", "address for the debug telemetry websocket, active only when config debug=true")
	flag.Parse()

	logger := logging.NewLogger("tip")

	cfg, err := loadConfig(*configPath, logger)
	if err != nil {
		logger.Errorw("failed to load config", "err", err)
		os.Exit(1)
	}

	broker := tip.NewStaticTransformBroker()
	broker.RegisterFrame(*sensorFrame, spatialmath.NewZeroPose())

	planner := tip.NewPlanner(cfg, broker, logger)

	var hub *telemetry.Hub
	var srv *http.Server
	if cfg.Debug {
		hub = telemetry.NewHub()
		mux := http.NewServeMux()
		mux.Handle("/debug/ws", hub)
		srv = &http.Server{Addr: *debugAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Errorw("debug telemetry server stopped", "err", err)
			}
		}()
		logger.Infow("debug telemetry enabled", "addr", *debugAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go drainSetpoints(ctx, planner)

	logger.Infow("planner starting", "goal", r3.Vector{X: cfg.GoalX, Y: cfg.GoalY, Z: cfg.GoalZ})
	if err := planner.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Errorw("planner exited with error", "err", err)
	}

	if srv != nil {
		_ = srv.Close()
	}
	if hub != nil {
		hub.Close()
	}
	logger.Infow("planner stopped")
}

func loadConfig(path string, logger logging.Logger) (*config.Options, error) {
	if path == "" {
		opts := config.DefaultOptions()
		return &opts, opts.Validate()
	}
	logger.Infow("loading config", "path", path)
	return config.Load(path)
}

// drainSetpoints consumes the planner's output channel for the life of
// the process; a real deployment would forward these to the vehicle's
// autopilot interface instead.
func drainSetpoints(ctx context.Context, p *tip.Planner) {
	for {
		select {
		case <-ctx.Done():
			return
		case sp, ok := <-p.Setpoints():
			if !ok {
				return
			}
			_ = sp
		}
	}
}
