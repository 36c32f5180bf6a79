package validation

import (
	"context"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/itsfriday/itsfriday-controller/pkg/engine"
	"github.com/itsfriday/itsfriday-controller/pkg/tracing"
	admissionutils "github.com/itsfriday/itsfriday-controller/pkg/utils/admission"
	"github.com/itsfriday/itsfriday-controller/pkg/webhooks/handlers"
	"go.opentelemetry.io/otel/trace"
)

type ValidationHandler interface {
	// HandleValidation answers a validating webhook admission request using
	// startTime as the admission time.
	HandleValidation(context.Context, logr.Logger, handlers.AdmissionRequest, time.Time) handlers.AdmissionResponse
}

func NewValidationHandler(engine engine.Engine) ValidationHandler {
	return &validationHandler{
		engine: engine,
	}
}

type validationHandler struct {
	engine engine.Engine
}

func (v *validationHandler) HandleValidation(
	ctx context.Context,
	logger logr.Logger,
	request handlers.AdmissionRequest,
	startTime time.Time,
) handlers.AdmissionResponse {
	return tracing.Span1(
		ctx,
		"webhooks/resource/validate",
		"DECIDE",
		func(ctx context.Context, span trace.Span) handlers.AdmissionResponse {
			response, decision, err := v.engine.Validate(&request.AdmissionRequest, startTime)
			if err != nil {
				// the admission layer already rejects malformed reviews, reaching this is a bug
				logger.Error(err, "failed to evaluate admission request")
				tracing.SetSpanStatus(span, err)
				response := admissionutils.ResponseFailure(request.UID, err.Error())
				response.Result.Code = http.StatusBadRequest
				return *response
			}
			span.SetAttributes(
				tracing.DecisionOwnedKey.Bool(decision.Reason == engine.OwnerFoundReason),
				tracing.DecisionAllowedKey.Bool(decision.Allowed),
				tracing.DecisionReasonKey.String(decision.Reason),
			)
			logger.Info(response.Result.Message, "allowed", decision.Allowed)
			return *response
		},
	)
}
