package internal

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/itsfriday/itsfriday-controller/pkg/config"
	"github.com/itsfriday/itsfriday-controller/pkg/logging"
	"github.com/itsfriday/itsfriday-controller/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otlp "go.opentelemetry.io/otel"
)

func metricsConfiguration() metrics.Configuration {
	configuration := metrics.NewDefaultConfiguration()
	if len(metricsBucketBoundaries) > 0 {
		configuration.BucketBoundaries = metricsBucketBoundaries
	}
	for _, name := range strings.Split(disabledMetrics, ",") {
		if name = strings.TrimSpace(name); name != "" {
			configuration.DisabledMetrics = append(configuration.DisabledMetrics, name)
		}
	}
	return configuration
}

func SetupMetrics(ctx context.Context, logger logr.Logger) (metrics.MetricsConfigManager, context.CancelFunc) {
	logger = logger.WithName("metrics")
	logger.V(2).Info("setup metrics...", "otel", otel, "port", metricsPort, "collector", otelCollector, "creds", transportCreds)
	// in case of otel collector being GRPC the metrics port is the target port instead of the listening port
	metricsConfig, meterProvider, err := metrics.InitMetrics(
		ctx,
		disableMetricsExport,
		otel,
		net.JoinHostPort(otelCollector, metricsPort),
		metricsConfiguration(),
		transportCreds,
		logging.WithName("metrics"),
	)
	checkError(logger, err, "failed to init metrics")
	// Pass logger to opentelemetry so JSON format is used (when configured)
	otlp.SetLogger(logger)
	shutdownProvider := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		metrics.ShutDownController(ctx, meterProvider)
	}
	if disableMetricsExport || otel != metrics.ProviderPrometheus {
		return metricsConfig, shutdownProvider
	}
	mux := http.NewServeMux()
	mux.Handle(config.MetricsPath, promhttp.Handler())
	server := &http.Server{
		Addr:              net.JoinHostPort("", metricsPort),
		Handler:           mux,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       5 * time.Minute,
		ErrorLog:          logging.StdLogger(logging.WithName("prometheus-server"), ""),
	}
	go func() {
		logger.Info("Starting HTTP metrics server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(err, "failed to enable metrics server", "address", server.Addr)
		}
	}()
	return metricsConfig, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(err, "failed to stop metrics server")
		}
		shutdownProvider()
	}
}
