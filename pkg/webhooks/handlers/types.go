package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	admissionv1 "k8s.io/api/admission/v1"
)

type AdmissionRequest struct {
	admissionv1.AdmissionRequest

	// APIVersion is the apiVersion of the enclosing AdmissionReview, echoed
	// back in the response envelope.
	APIVersion string
}

type AdmissionResponse = admissionv1.AdmissionResponse

type (
	AdmissionHandler func(context.Context, logr.Logger, AdmissionRequest, time.Time) AdmissionResponse
	HttpHandler      func(http.ResponseWriter, *http.Request)
)

func FromAdmissionFunc(name string, h AdmissionHandler) AdmissionHandler {
	return h.WithTrace(name)
}

func (h HttpHandler) ToHandlerFunc(operation string) http.HandlerFunc {
	return http.HandlerFunc(h.WithTrace(operation))
}
