package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/itsfriday/itsfriday-controller/pkg/tracing"
	"go.opentelemetry.io/otel/trace"
)

func (inner HttpHandler) WithTrace(name string) HttpHandler {
	return func(writer http.ResponseWriter, request *http.Request) {
		tracing.Span(
			request.Context(),
			"webhooks/handlers",
			fmt.Sprintf("%s %s %s", name, request.Method, request.URL.Path),
			func(ctx context.Context, span trace.Span) {
				inner(writer, request.WithContext(ctx))
			},
			trace.WithAttributes(
				tracing.HttpContentLengthKey.Int64(request.ContentLength),
				tracing.HttpMethodKey.String(tracing.StringValue(request.Method)),
				tracing.HttpPathKey.String(tracing.StringValue(request.URL.Path)),
			),
			trace.WithSpanKind(trace.SpanKindServer),
		)
	}
}

func (inner AdmissionHandler) WithTrace(name string) AdmissionHandler {
	return func(ctx context.Context, logger logr.Logger, request AdmissionRequest, startTime time.Time) AdmissionResponse {
		return tracing.Span1(
			ctx,
			"webhooks/handlers",
			fmt.Sprintf("%s %s %s", name, request.Operation, request.Kind.Kind),
			func(ctx context.Context, span trace.Span) AdmissionResponse {
				response := inner(ctx, logger, request, startTime)
				span.SetAttributes(
					tracing.ResponseUidKey.String(tracing.StringValue(string(response.UID))),
					tracing.ResponseAllowedKey.Bool(response.Allowed),
				)
				if response.Result != nil {
					span.SetAttributes(
						tracing.ResponseResultStatusKey.String(tracing.StringValue(response.Result.Status)),
						tracing.ResponseResultMessageKey.String(tracing.StringValue(response.Result.Message)),
						tracing.ResponseResultCodeKey.Int(int(response.Result.Code)),
					)
				}
				return response
			},
			trace.WithAttributes(
				tracing.RequestNameKey.String(tracing.StringValue(request.Name)),
				tracing.RequestNamespaceKey.String(tracing.StringValue(request.Namespace)),
				tracing.RequestUidKey.String(tracing.StringValue(string(request.UID))),
				tracing.RequestOperationKey.String(tracing.StringValue(string(request.Operation))),
				tracing.RequestDryRunKey.Bool(request.DryRun != nil && *request.DryRun),
				tracing.RequestKindGroupKey.String(tracing.StringValue(request.Kind.Group)),
				tracing.RequestKindVersionKey.String(tracing.StringValue(request.Kind.Version)),
				tracing.RequestKindKindKey.String(tracing.StringValue(request.Kind.Kind)),
				tracing.RequestSubResourceKey.String(tracing.StringValue(request.SubResource)),
				tracing.RequestUserNameKey.String(tracing.StringValue(request.UserInfo.Username)),
				tracing.RequestUserUidKey.String(tracing.StringValue(request.UserInfo.UID)),
				tracing.RequestUserGroupsKey.StringSlice(request.UserInfo.Groups),
				tracing.RequestReviewAPIVersionKey.String(tracing.StringValue(request.APIVersion)),
			),
		)
	}
}
