package admission

import (
	"net/http"

	admissionv1 "k8s.io/api/admission/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

const (
	// DefaultAPIVersion is echoed back when the review carries no apiVersion.
	DefaultAPIVersion = "admission.k8s.io/v1"
	// ReviewKind is the kind of every review we return.
	ReviewKind = "AdmissionReview"
)

// StatusCode maps an admission decision onto the code carried in the
// response status, 200 when allowed and 403 otherwise.
func StatusCode(allowed bool) int32 {
	if allowed {
		return http.StatusOK
	}
	return http.StatusForbidden
}

func Response(uid types.UID, allowed bool, message string) *admissionv1.AdmissionResponse {
	status := metav1.StatusSuccess
	if !allowed {
		status = metav1.StatusFailure
	}
	return &admissionv1.AdmissionResponse{
		UID:     uid,
		Allowed: allowed,
		Result: &metav1.Status{
			Status:  status,
			Code:    StatusCode(allowed),
			Message: message,
		},
	}
}

func ResponseFailure(uid types.UID, message string) *admissionv1.AdmissionResponse {
	return Response(uid, false, message)
}

// Review wraps a response into the envelope sent back to the API server.
func Review(apiVersion string, response *admissionv1.AdmissionResponse) *admissionv1.AdmissionReview {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &admissionv1.AdmissionReview{
		TypeMeta: metav1.TypeMeta{
			APIVersion: apiVersion,
			Kind:       ReviewKind,
		},
		Response: response,
	}
}

// Verdict builds the complete review for a decision.
func Verdict(uid types.UID, allowed bool, apiVersion string, message string) *admissionv1.AdmissionReview {
	return Review(apiVersion, Response(uid, allowed, message))
}
