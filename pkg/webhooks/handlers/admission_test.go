package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	admissionutils "github.com/itsfriday/itsfriday-controller/pkg/utils/admission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	admissionv1 "k8s.io/api/admission/v1"
)

func serve(handler http.HandlerFunc, contentType, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, "/validate", bytes.NewBufferString(body))
	request.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	handler(recorder, request)
	return recorder
}

func TestWithAdmission(t *testing.T) {
	var received AdmissionRequest
	inner := AdmissionHandler(func(_ context.Context, _ logr.Logger, request AdmissionRequest, _ time.Time) AdmissionResponse {
		received = request
		// a handler answering with the wrong uid must not leak it
		return *admissionutils.Response("other", true, "ok")
	})
	handler := inner.WithAdmission(logr.Discard()).ToHandlerFunc("VALIDATE")

	recorder := serve(handler, "application/json", `{"apiVersion":"admission.k8s.io/v1beta1","request":{"uid":"u-1","namespace":"batch"}}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "admission.k8s.io/v1beta1", received.APIVersion)
	assert.Equal(t, "batch", received.Namespace)

	var review admissionv1.AdmissionReview
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &review))
	assert.Equal(t, "admission.k8s.io/v1beta1", review.APIVersion)
	assert.Equal(t, "u-1", string(review.Response.UID))
	assert.True(t, review.Response.Allowed)
}

func TestWithAdmissionLogsResource(t *testing.T) {
	var messages []string
	logger := funcr.New(func(prefix, args string) {
		messages = append(messages, args)
	}, funcr.Options{Verbosity: 4})
	inner := AdmissionHandler(func(_ context.Context, _ logr.Logger, request AdmissionRequest, _ time.Time) AdmissionResponse {
		return *admissionutils.Response(request.UID, true, "ok")
	})
	handler := inner.WithAdmission(logger).ToHandlerFunc("VALIDATE")

	recorder := serve(handler, "application/json", `{"request":{"uid":"u-1","kind":{"group":"batch","version":"v1","kind":"Job"},"namespace":"batch","name":"nightly-1"}}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotEmpty(t, messages)
	assert.Contains(t, messages[0], `"resource"="batch/Job/nightly-1"`)
}

func TestWithAdmissionErrors(t *testing.T) {
	called := false
	inner := AdmissionHandler(func(context.Context, logr.Logger, AdmissionRequest, time.Time) AdmissionResponse {
		called = true
		return AdmissionResponse{}
	})
	handler := inner.WithAdmission(logr.Discard()).ToHandlerFunc("VALIDATE")
	tests := []struct {
		name        string
		contentType string
		body        string
		wantCode    int
	}{
		{name: "wrong content type", contentType: "application/yaml", body: `{"request":{"uid":"u"}}`, wantCode: http.StatusUnsupportedMediaType},
		{name: "empty body", contentType: "application/json", body: ``, wantCode: http.StatusBadRequest},
		{name: "not json", contentType: "application/json", body: `uid: u`, wantCode: http.StatusBadRequest},
		{name: "no request", contentType: "application/json", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "no uid", contentType: "application/json", body: `{"request":{}}`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(handler, tt.contentType, tt.body)
			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
	assert.False(t, called)
}

func TestWithDump(t *testing.T) {
	enabled := false
	calls := 0
	inner := AdmissionHandler(func(context.Context, logr.Logger, AdmissionRequest, time.Time) AdmissionResponse {
		calls++
		return AdmissionResponse{Allowed: true}
	})
	handler := inner.WithDump(func() bool { return enabled })
	response := handler(context.Background(), logr.Discard(), AdmissionRequest{}, time.Now())
	assert.True(t, response.Allowed)
	enabled = true
	response = handler(context.Background(), logr.Discard(), AdmissionRequest{}, time.Now())
	assert.True(t, response.Allowed)
	assert.Equal(t, 2, calls)
}

func TestNewAdmissionRequestPayloadRedactsSecrets(t *testing.T) {
	request := &admissionv1.AdmissionRequest{UID: "u"}
	request.Kind.Kind = "Secret"
	request.Object.Raw = []byte(`{"metadata":{"name":"creds","annotations":{"kubectl.kubernetes.io/last-applied-configuration":"{}"}},"data":{"password":"aHVudGVyMg=="},"stringData":{"token":"t"}}`)
	payload, err := newAdmissionRequestPayload(request)
	require.NoError(t, err)
	assert.Equal(t, redacted, payload.Object.Object["data"].(map[string]interface{})["password"])
	assert.Equal(t, redacted, payload.Object.Object["stringData"].(map[string]interface{})["token"])
	assert.Empty(t, payload.Object.GetAnnotations())
	assert.Nil(t, payload.OldObject.Object)
}

func TestNewAdmissionRequestPayloadKeepsOtherKinds(t *testing.T) {
	request := &admissionv1.AdmissionRequest{UID: "u"}
	request.Kind.Kind = "ConfigMap"
	request.Object.Raw = []byte(`{"data":{"key":"value"}}`)
	payload, err := newAdmissionRequestPayload(request)
	require.NoError(t, err)
	assert.Equal(t, "value", payload.Object.Object["data"].(map[string]interface{})["key"])
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name     string
		check    func(context.Context) bool
		wantCode int
		wantBody string
	}{
		{name: "nil check", check: nil, wantCode: http.StatusOK, wantBody: `{"status":true}`},
		{name: "ready", check: func(context.Context) bool { return true }, wantCode: http.StatusOK, wantBody: `{"status":true}`},
		{name: "not ready", check: func(context.Context) bool { return false }, wantCode: http.StatusInternalServerError, wantBody: `{"status":false}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			Probe(tt.check)(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}
