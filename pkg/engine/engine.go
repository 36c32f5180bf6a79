package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/itsfriday/itsfriday-controller/pkg/calendar"
	admissionutils "github.com/itsfriday/itsfriday-controller/pkg/utils/admission"
	admissionv1 "k8s.io/api/admission/v1"
)

const OwnerFoundReason = "owner references found (automated job)"

type Decision struct {
	Allowed bool
	Reason  string
}

func (d Decision) Verb() string {
	if d.Allowed {
		return "Accepted"
	}
	return "Rejected"
}

// Decide applies, in order: owned objects are allowed, objects admitted on
// an excluded day are rejected, everything else is allowed.
func Decide(request *admissionv1.AdmissionRequest, cal *calendar.Calendar, now time.Time) Decision {
	if HasOwner(request) {
		return Decision{Allowed: true, Reason: OwnerFoundReason}
	}
	excluded, label := cal.IsExcluded(now)
	return Decision{
		Allowed: !excluded,
		Reason:  fmt.Sprintf("ITS %s!", strings.ToUpper(label)),
	}
}

type Engine interface {
	// Decide returns the decision for a request at the given time.
	Decide(*admissionv1.AdmissionRequest, time.Time) Decision
	// Validate returns the admission response for a request, or a
	// MalformedRequestError when the request cannot be answered.
	Validate(*admissionv1.AdmissionRequest, time.Time) (*admissionv1.AdmissionResponse, Decision, error)
	// Evaluate turns a review into the review sent back to the API server.
	Evaluate(*admissionv1.AdmissionReview, time.Time) (*admissionv1.AdmissionReview, error)
}

type engine struct {
	calendar *calendar.Calendar
	instance string
}

// NewEngine returns an engine for an immutable calendar. instance is the
// label prefixed to every message, typically the pod name.
func NewEngine(cal *calendar.Calendar, instance string) Engine {
	return &engine{
		calendar: cal,
		instance: instance,
	}
}

func (e *engine) Decide(request *admissionv1.AdmissionRequest, now time.Time) Decision {
	return Decide(request, e.calendar, now)
}

func (e *engine) Validate(request *admissionv1.AdmissionRequest, now time.Time) (*admissionv1.AdmissionResponse, Decision, error) {
	if err := admissionutils.ValidateReview(&admissionv1.AdmissionReview{Request: request}); err != nil {
		return nil, Decision{}, err
	}
	decision := e.Decide(request, now)
	return admissionutils.Response(request.UID, decision.Allowed, e.message(request, decision)), decision, nil
}

// Evaluate is the transport-free entry point: the webhook server reaches the
// same verdict through Validate, then wraps it with admission.Review.
func (e *engine) Evaluate(review *admissionv1.AdmissionReview, now time.Time) (*admissionv1.AdmissionReview, error) {
	if err := admissionutils.ValidateReview(review); err != nil {
		return nil, err
	}
	decision := e.Decide(review.Request, now)
	return admissionutils.Verdict(review.Request.UID, decision.Allowed, review.APIVersion, e.message(review.Request, decision)), nil
}

func (e *engine) message(request *admissionv1.AdmissionRequest, decision Decision) string {
	return fmt.Sprintf("%s: %s request %s, %s", e.instance, decision.Verb(), request.UID, decision.Reason)
}
