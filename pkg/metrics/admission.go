package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	admissionv1 "k8s.io/api/admission/v1"
)

const (
	AdmissionRequestsMetricName       = "itsfriday_admission_requests"
	AdmissionReviewDurationMetricName = "itsfriday_admission_review_duration_seconds"
)

type AdmissionMetrics interface {
	RecordRequest(ctx context.Context, allowed bool, namespace string, operation admissionv1.Operation, kind string, startTime time.Time, attrs ...attribute.KeyValue)
}

type admissionMetrics struct {
	requestsMetric metric.Int64Counter
	reviewDuration metric.Float64Histogram
	logger         logr.Logger
}

func (m *admissionMetrics) init(meter metric.Meter) error {
	var err error
	m.requestsMetric, err = meter.Int64Counter(
		AdmissionRequestsMetricName,
		metric.WithDescription("can be used to track the number of admission requests encountered by the webhook"),
	)
	if err != nil {
		m.logger.Error(err, "Failed to create instrument", "name", AdmissionRequestsMetricName)
		return err
	}
	m.reviewDuration, err = meter.Float64Histogram(
		AdmissionReviewDurationMetricName,
		metric.WithDescription("can be used to track the latencies (in seconds) associated with the entire individual admission review"),
		metric.WithUnit("s"),
	)
	if err != nil {
		m.logger.Error(err, "Failed to create instrument", "name", AdmissionReviewDurationMetricName)
		return err
	}
	return nil
}

func (m *admissionMetrics) RecordRequest(ctx context.Context, allowed bool, namespace string, operation admissionv1.Operation, kind string, startTime time.Time, attrs ...attribute.KeyValue) {
	if m == nil || m.requestsMetric == nil || m.reviewDuration == nil {
		return
	}
	commonLabels := []attribute.KeyValue{
		attribute.String("resource_kind", kind),
		attribute.String("resource_namespace", namespace),
		attribute.String("resource_request_operation", string(operation)),
		attribute.String("request_allowed", strconv.FormatBool(allowed)),
	}
	commonLabels = append(commonLabels, attrs...)
	m.requestsMetric.Add(ctx, 1, metric.WithAttributes(commonLabels...))
	m.reviewDuration.Record(ctx, time.Since(startTime).Seconds(), metric.WithAttributes(commonLabels...))
}
