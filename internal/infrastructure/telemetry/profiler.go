package telemetry

import (
	"fmt"
	"os"

	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// Profiler streams continuous profiles to Pyroscope
type Profiler struct {
	profiler *pyroscope.Profiler
}

// ProfileTypes are the profiles pushed to the server
var ProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

// NewProfiler starts profiling when cfg.ProfilingServer is set
func NewProfiler(cfg config.TelemetryConfig, version string, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{}
	if cfg.ProfilingServer == "" {
		return p, nil
	}

	tags := map[string]string{"version": version}
	if host := os.Getenv("HOSTNAME"); host != "" {
		tags["hostname"] = host
	}
	prof, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ServiceName,
		ServerAddress:   cfg.ProfilingServer,
		Logger:          logger.Named("pyroscope").Sugar(),
		Tags:            tags,
		ProfileTypes:    ProfileTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}
	p.profiler = prof

	logger.Info("Pyroscope profiler started", zap.String("server_address", cfg.ProfilingServer))
	return p, nil
}

// IsEnabled reports whether profiles are pushed
func (p *Profiler) IsEnabled() bool {
	return p.profiler != nil
}

// Stop flushes and stops the profiler
func (p *Profiler) Stop() error {
	if p.profiler == nil {
		return nil
	}
	return p.profiler.Stop()
}
