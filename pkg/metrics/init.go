package metrics

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const (
	ProviderPrometheus = "prometheus"
	ProviderGRPC       = "grpc"
)

// InitMetrics creates the meter provider for the requested exporter, installs
// it globally and creates every instrument on it.
func InitMetrics(
	ctx context.Context,
	disableMetricsExport bool,
	otelProvider string,
	otelCollector string,
	configuration Configuration,
	caFile string,
	logger logr.Logger,
) (MetricsConfigManager, *sdkmetric.MeterProvider, error) {
	var err error
	var meterProvider *sdkmetric.MeterProvider
	if !disableMetricsExport {
		switch otelProvider {
		case ProviderGRPC:
			meterProvider, err = NewOTLPGRPCConfig(ctx, otelCollector, caFile, logger, configuration)
		case ProviderPrometheus:
			meterProvider, err = NewPrometheusConfig(ctx, logger, configuration)
		default:
			err = fmt.Errorf("unknown metrics provider %q, expected %q or %q", otelProvider, ProviderPrometheus, ProviderGRPC)
		}
		if err != nil {
			return nil, nil, err
		}
		otel.SetMeterProvider(meterProvider)
	}
	metricsConfig := NewMetricsConfigManager(logger, configuration)
	if err := metricsConfig.initializeMetrics(otel.GetMeterProvider()); err != nil {
		logger.Error(err, "Failed initializing metrics")
		return nil, nil, err
	}
	return metricsConfig, meterProvider, nil
}
