package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-logr/logr"
	admissionv1 "k8s.io/api/admission/v1"
	authenticationv1 "k8s.io/api/authentication/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
)

const redacted = "**REDACTED**"

func (inner AdmissionHandler) WithDump(enabled func() bool) AdmissionHandler {
	if enabled == nil {
		return inner
	}
	return inner.withDump(enabled).WithTrace("DUMP")
}

func (inner AdmissionHandler) withDump(enabled func() bool) AdmissionHandler {
	return func(ctx context.Context, logger logr.Logger, request AdmissionRequest, startTime time.Time) AdmissionResponse {
		response := inner(ctx, logger, request, startTime)
		if enabled() {
			dumpPayload(logger, request, response)
		}
		return response
	}
}

func dumpPayload(logger logr.Logger, request AdmissionRequest, response AdmissionResponse) {
	reqPayload, err := newAdmissionRequestPayload(&request.AdmissionRequest)
	if err != nil {
		logger.Error(err, "Failed to extract resources")
	} else {
		logger.Info("Logging admission request and response payload ", "AdmissionRequest", reqPayload, "AdmissionResponse", response)
	}
}

// admissionRequestPayload holds a copy of the AdmissionRequest payload
type admissionRequestPayload struct {
	UID         types.UID                   `json:"uid"`
	Kind        metav1.GroupVersionKind     `json:"kind"`
	Resource    metav1.GroupVersionResource `json:"resource"`
	SubResource string                      `json:"subResource,omitempty"`
	Name        string                      `json:"name,omitempty"`
	Namespace   string                      `json:"namespace,omitempty"`
	Operation   string                      `json:"operation"`
	UserInfo    authenticationv1.UserInfo   `json:"userInfo"`
	Object      unstructured.Unstructured   `json:"object,omitempty"`
	OldObject   unstructured.Unstructured   `json:"oldObject,omitempty"`
	DryRun      *bool                       `json:"dryRun,omitempty"`
}

func newAdmissionRequestPayload(rq *admissionv1.AdmissionRequest) (*admissionRequestPayload, error) {
	newResource, err := toUnstructured(rq.Object.Raw)
	if err != nil {
		return nil, err
	}
	oldResource, err := toUnstructured(rq.OldObject.Raw)
	if err != nil {
		return nil, err
	}
	return redactPayload(&admissionRequestPayload{
		UID:         rq.UID,
		Kind:        rq.Kind,
		Resource:    rq.Resource,
		SubResource: rq.SubResource,
		Name:        rq.Name,
		Namespace:   rq.Namespace,
		Operation:   string(rq.Operation),
		UserInfo:    rq.UserInfo,
		Object:      newResource,
		OldObject:   oldResource,
		DryRun:      rq.DryRun,
	}), nil
}

func toUnstructured(raw []byte) (unstructured.Unstructured, error) {
	var obj unstructured.Unstructured
	if len(raw) == 0 {
		return obj, nil
	}
	var content map[string]interface{}
	if err := json.Unmarshal(raw, &content); err != nil {
		return obj, err
	}
	obj.Object = content
	return obj, nil
}

func redactPayload(payload *admissionRequestPayload) *admissionRequestPayload {
	if strings.EqualFold(payload.Kind.Kind, "Secret") {
		redactSecret(&payload.Object)
		redactSecret(&payload.OldObject)
	}
	return payload
}

func redactSecret(obj *unstructured.Unstructured) {
	if obj.Object == nil {
		return
	}
	for _, field := range []string{"data", "stringData"} {
		values, found, err := unstructured.NestedMap(obj.Object, field)
		if err != nil || !found {
			continue
		}
		for key := range values {
			values[key] = redacted
		}
		_ = unstructured.SetNestedMap(obj.Object, values, field)
	}
	if annotations := obj.GetAnnotations(); annotations != nil {
		delete(annotations, "kubectl.kubernetes.io/last-applied-configuration")
		obj.SetAnnotations(annotations)
	}
}
