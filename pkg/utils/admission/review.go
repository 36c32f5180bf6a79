package admission

import (
	"encoding/json"

	admissionv1 "k8s.io/api/admission/v1"
)

// UnmarshalReview decodes and validates an incoming AdmissionReview.
// The returned review always carries an apiVersion, DefaultAPIVersion when
// the payload did not set one.
func UnmarshalReview(raw []byte) (*admissionv1.AdmissionReview, error) {
	if len(raw) == 0 {
		return nil, malformed("empty body", nil)
	}
	var review admissionv1.AdmissionReview
	if err := json.Unmarshal(raw, &review); err != nil {
		return nil, malformed("cannot decode body as AdmissionReview", err)
	}
	if err := ValidateReview(&review); err != nil {
		return nil, err
	}
	if review.APIVersion == "" {
		review.APIVersion = DefaultAPIVersion
	}
	return &review, nil
}

// ValidateReview checks the parts of a review a verdict depends on.
func ValidateReview(review *admissionv1.AdmissionReview) error {
	if review == nil {
		return malformed("no review", nil)
	}
	if review.Request == nil {
		return malformed("review has no request", nil)
	}
	if review.Request.UID == "" {
		return malformed("request has no uid", nil)
	}
	return nil
}

func GetResourceName(request *admissionv1.AdmissionRequest) string {
	resourceName := request.Kind.Kind + "/" + request.Name
	if request.Namespace != "" {
		resourceName = request.Namespace + "/" + resourceName
	}
	return resourceName
}
