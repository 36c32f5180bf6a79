package metrics

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	HTTPRequestsMetricName = "itsfriday_http_requests"
	HTTPDurationMetricName = "itsfriday_http_request_duration_seconds"
)

type HTTPMetrics interface {
	RecordRequest(ctx context.Context, method string, path string, code int, startTime time.Time, attrs ...attribute.KeyValue)
}

type httpMetrics struct {
	requestsMetric metric.Int64Counter
	durationMetric metric.Float64Histogram
	logger         logr.Logger
}

func (m *httpMetrics) init(meter metric.Meter) error {
	var err error
	m.requestsMetric, err = meter.Int64Counter(
		HTTPRequestsMetricName,
		metric.WithDescription("can be used to track the number of http requests served by the webhook server"),
	)
	if err != nil {
		m.logger.Error(err, "Failed to create instrument", "name", HTTPRequestsMetricName)
		return err
	}
	m.durationMetric, err = meter.Float64Histogram(
		HTTPDurationMetricName,
		metric.WithDescription("can be used to track the latencies (in seconds) of http requests served by the webhook server"),
		metric.WithUnit("s"),
	)
	if err != nil {
		m.logger.Error(err, "Failed to create instrument", "name", HTTPDurationMetricName)
		return err
	}
	return nil
}

func (m *httpMetrics) RecordRequest(ctx context.Context, method string, path string, code int, startTime time.Time, attrs ...attribute.KeyValue) {
	if m == nil || m.requestsMetric == nil || m.durationMetric == nil {
		return
	}
	commonLabels := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_path", path),
		attribute.Int("http_status_code", code),
	}
	commonLabels = append(commonLabels, attrs...)
	m.requestsMetric.Add(ctx, 1, metric.WithAttributes(commonLabels...))
	m.durationMetric.Record(ctx, time.Since(startTime).Seconds(), metric.WithAttributes(commonLabels...))
}
