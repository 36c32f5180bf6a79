package internal

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/itsfriday/itsfriday-controller/pkg/metrics"
)

func shutdown(logger logr.Logger, sdowns ...context.CancelFunc) context.CancelFunc {
	return func() {
		for i := range sdowns {
			if sdowns[i] != nil {
				logger.V(2).Info("shutting down...")
				defer sdowns[i]()
			}
		}
	}
}

type SetupResult struct {
	Logger         logr.Logger
	MetricsManager metrics.MetricsConfigManager
}

// Setup configures the process wide concerns: logging, runtime limits,
// profiling, signals, metrics and tracing.
func Setup(config Configuration, name string) (context.Context, SetupResult, context.CancelFunc) {
	logger := setupLogger()
	showVersion(logger)
	printFlagSettings(logger)
	sdownMaxProcs := setupMaxProcs(logger)
	if config.UsesMemLimit() {
		setupMemLimit(logger)
	}
	if config.UsesProfiling() {
		setupProfiling(logger)
	}
	ctx, sdownSignals := setupSignals(logger)
	var metricsManager metrics.MetricsConfigManager
	var sdownMetrics context.CancelFunc
	if config.UsesMetrics() {
		metricsManager, sdownMetrics = SetupMetrics(ctx, logger)
	}
	var sdownTracing context.CancelFunc
	if config.UsesTracing() {
		sdownTracing = SetupTracing(logger, name)
	}
	return ctx,
		SetupResult{
			Logger:         logger,
			MetricsManager: metricsManager,
		},
		shutdown(logger.WithName("shutdown"), sdownMaxProcs, sdownMetrics, sdownTracing, sdownSignals)
}
