package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/itsfriday/itsfriday-controller/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

func (inner AdmissionHandler) WithMetrics(logger logr.Logger, metricsConfig metrics.MetricsConfigManager, attrs ...attribute.KeyValue) AdmissionHandler {
	return inner.withMetrics(logger, metricsConfig, attrs...).WithTrace("METRICS")
}

func (inner AdmissionHandler) withMetrics(logger logr.Logger, metricsConfig metrics.MetricsConfigManager, attrs ...attribute.KeyValue) AdmissionHandler {
	if metricsConfig == nil {
		logger.V(4).Info("no metrics manager, admission metrics are not recorded")
		return inner
	}
	recorder := metricsConfig.AdmissionMetrics()
	return func(ctx context.Context, logger logr.Logger, request AdmissionRequest, startTime time.Time) AdmissionResponse {
		response := inner(ctx, logger, request, startTime)
		recorder.RecordRequest(ctx, response.Allowed, request.Namespace, request.Operation, request.Kind.Kind, startTime, attrs...)
		return response
	}
}

func (inner HttpHandler) WithMetrics(logger logr.Logger, metricsConfig metrics.MetricsConfigManager, attrs ...attribute.KeyValue) HttpHandler {
	return inner.withMetrics(logger, metricsConfig, attrs...).WithTrace("METRICS")
}

func (inner HttpHandler) withMetrics(logger logr.Logger, metricsConfig metrics.MetricsConfigManager, attrs ...attribute.KeyValue) HttpHandler {
	if metricsConfig == nil {
		logger.V(4).Info("no metrics manager, http metrics are not recorded")
		return inner
	}
	recorder := metricsConfig.HTTPMetrics()
	return func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		status := &statusWriter{ResponseWriter: writer, code: http.StatusOK}
		inner(status, request)
		recorder.RecordRequest(request.Context(), request.Method, request.URL.Path, status.code, startTime, attrs...)
	}
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
