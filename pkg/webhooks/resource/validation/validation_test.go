package validation

import (
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/itsfriday/itsfriday-controller/pkg/calendar"
	"github.com/itsfriday/itsfriday-controller/pkg/engine"
	"github.com/itsfriday/itsfriday-controller/pkg/webhooks/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	admissionv1 "k8s.io/api/admission/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

var friday = time.Date(2024, time.January, 5, 18, 30, 0, 0, time.UTC)

func newHandler(t *testing.T) ValidationHandler {
	t.Helper()
	cal, err := calendar.Parse("4", calendar.WithLocation(time.UTC))
	require.NoError(t, err)
	return NewValidationHandler(engine.NewEngine(cal, "itsfriday-0"))
}

func TestHandleValidation(t *testing.T) {
	tests := []struct {
		name        string
		request     handlers.AdmissionRequest
		wantAllowed bool
		wantCode    int32
		wantMessage string
	}{{
		name: "owned object",
		request: handlers.AdmissionRequest{AdmissionRequest: admissionv1.AdmissionRequest{
			UID:    "705ab4f5",
			Object: runtime.RawExtension{Raw: []byte(`{"metadata":{"ownerReferences":[{"kind":"CronJob"}]}}`)},
		}},
		wantAllowed: true,
		wantCode:    200,
		wantMessage: "itsfriday-0: Accepted request 705ab4f5, owner references found (automated job)",
	}, {
		name: "parentless object",
		request: handlers.AdmissionRequest{AdmissionRequest: admissionv1.AdmissionRequest{
			UID:    "705ab4f5",
			Object: runtime.RawExtension{Raw: []byte(`{"metadata":{"name":"web"}}`)},
		}},
		wantAllowed: false,
		wantCode:    403,
		wantMessage: "itsfriday-0: Rejected request 705ab4f5, ITS FRIDAY!",
	}, {
		name:        "missing uid",
		request:     handlers.AdmissionRequest{},
		wantAllowed: false,
		wantCode:    400,
		wantMessage: "malformed admission request",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := newHandler(t).HandleValidation(context.Background(), logr.Discard(), tt.request, friday)
			assert.Equal(t, tt.wantAllowed, response.Allowed)
			require.NotNil(t, response.Result)
			assert.Equal(t, tt.wantCode, response.Result.Code)
			assert.Contains(t, response.Result.Message, tt.wantMessage)
		})
	}
}
