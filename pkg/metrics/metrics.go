package metrics

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/itsfriday/itsfriday-controller/pkg/version"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc/credentials"
)

const (
	MeterName = "itsfriday"
)

type MetricsConfig struct {
	// instruments
	infoMetric       metric.Int64ObservableGauge
	admissionMetrics *admissionMetrics
	httpMetrics      *httpMetrics

	// config
	config Configuration
	Log    logr.Logger
}

type MetricsConfigManager interface {
	Config() Configuration
	AdmissionMetrics() AdmissionMetrics
	HTTPMetrics() HTTPMetrics
}

func (m *MetricsConfig) Config() Configuration {
	return m.config
}

func (m *MetricsConfig) AdmissionMetrics() AdmissionMetrics {
	return m.admissionMetrics
}

func (m *MetricsConfig) HTTPMetrics() HTTPMetrics {
	return m.httpMetrics
}

func (m *MetricsConfig) initializeMetrics(meterProvider metric.MeterProvider) error {
	var err error
	meter := meterProvider.Meter(MeterName)
	if meter == nil {
		return nil
	}
	m.infoMetric, err = meter.Int64ObservableGauge(
		"itsfriday_info",
		metric.WithDescription("itsfriday-controller version information"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			observer.Observe(1, metric.WithAttributes(attribute.String("version", version.Version())))
			return nil
		}),
	)
	if err != nil {
		m.Log.Error(err, "Failed to create instrument, itsfriday_info")
		return err
	}
	if err := m.admissionMetrics.init(meter); err != nil {
		return err
	}
	return m.httpMetrics.init(meter)
}

func ShutDownController(ctx context.Context, pusher *sdkmetric.MeterProvider) {
	if pusher != nil {
		// pushes any last exports to the receiver
		if err := pusher.Shutdown(ctx); err != nil {
			otel.Handle(err)
		}
	}
}

func aggregationSelector(configuration Configuration) sdkmetric.AggregationSelector {
	return func(ik sdkmetric.InstrumentKind) sdkmetric.Aggregation {
		switch ik {
		case sdkmetric.InstrumentKindHistogram:
			return sdkmetric.AggregationExplicitBucketHistogram{
				Boundaries: configuration.GetBucketBoundaries(),
				NoMinMax:   true,
			}
		default:
			return sdkmetric.DefaultAggregationSelector(ik)
		}
	}
}

func newResource(name string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceNameKey.String(name),
			semconv.ServiceVersionKey.String(version.Version()),
		),
	)
}

// NewOTLPGRPCConfig creates a meter provider pushing to an OpenTelemetry collector.
// When caFile is empty the connection is insecure.
func NewOTLPGRPCConfig(ctx context.Context, endpoint string, caFile string, log logr.Logger, configuration Configuration) (*sdkmetric.MeterProvider, error) {
	options := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(endpoint), otlpmetricgrpc.WithAggregationSelector(aggregationSelector(configuration))}
	if caFile != "" {
		transportCreds, err := credentials.NewClientTLSFromFile(caFile, "")
		if err != nil {
			log.Error(err, "Error loading collector CA", "file", caFile)
			return nil, errors.Wrap(err, "failed to load collector CA")
		}
		options = append(options, otlpmetricgrpc.WithTLSCredentials(transportCreds))
	} else {
		options = append(options, otlpmetricgrpc.WithInsecure())
	}
	// create new exporter for exporting metrics
	exporter, err := otlpmetricgrpc.New(ctx, options...)
	if err != nil {
		log.Error(err, "Failed to create the collector exporter")
		return nil, err
	}
	res, err := newResource(MeterName)
	if err != nil {
		log.Error(err, "failed creating resource")
		return nil, err
	}
	reader := sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(2*time.Second),
	)
	// create controller and bind the exporter with it
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
		sdkmetric.WithView(configuration.BuildMeterProviderViews()...),
	)
	return provider, nil
}

// NewPrometheusConfig creates a meter provider backed by the prometheus default registerer.
func NewPrometheusConfig(ctx context.Context, log logr.Logger, configuration Configuration) (*sdkmetric.MeterProvider, error) {
	res, err := newResource("itsfriday-svc-metrics")
	if err != nil {
		log.Error(err, "failed creating resource")
		return nil, err
	}
	exporter, err := prometheus.New(
		prometheus.WithoutUnits(),
		prometheus.WithoutTargetInfo(),
		prometheus.WithAggregationSelector(aggregationSelector(configuration)),
	)
	if err != nil {
		log.Error(err, "failed to initialize prometheus exporter")
		return nil, err
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
		sdkmetric.WithView(configuration.BuildMeterProviderViews()...),
	)
	return provider, nil
}

func NewMetricsConfigManager(logger logr.Logger, configuration Configuration) *MetricsConfig {
	return &MetricsConfig{
		Log:              logger,
		config:           configuration,
		admissionMetrics: &admissionMetrics{logger: logger.WithName("admission")},
		httpMetrics:      &httpMetrics{logger: logger.WithName("http")},
	}
}
