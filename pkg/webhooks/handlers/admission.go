package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/itsfriday/itsfriday-controller/pkg/tracing"
	admissionutils "github.com/itsfriday/itsfriday-controller/pkg/utils/admission"
)

func (inner AdmissionHandler) WithAdmission(logger logr.Logger) HttpHandler {
	return inner.withAdmission(logger).WithTrace("ADMISSION")
}

func (inner AdmissionHandler) withAdmission(rootLogger logr.Logger) HttpHandler {
	return func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		startTime := time.Now()
		if request.Body == nil {
			httpError(writer, request, rootLogger, nil, "empty body", http.StatusBadRequest)
			return
		}
		defer request.Body.Close()
		body, err := io.ReadAll(request.Body)
		if err != nil {
			httpError(writer, request, rootLogger, err, "failed to read HTTP body", http.StatusBadRequest)
			return
		}
		contentType := request.Header.Get("Content-Type")
		if contentType != "application/json" {
			httpError(writer, request, rootLogger, nil, "invalid Content-Type, expect `application/json`", http.StatusUnsupportedMediaType)
			return
		}
		admissionReview, err := admissionutils.UnmarshalReview(body)
		if err != nil {
			httpError(writer, request, rootLogger, err, "malformed admission review", http.StatusBadRequest)
			return
		}
		logger := rootLogger.WithValues(
			"kind", admissionReview.Request.Kind.Kind,
			"namespace", admissionReview.Request.Namespace,
			"name", admissionReview.Request.Name,
			"resource", admissionutils.GetResourceName(admissionReview.Request),
			"operation", admissionReview.Request.Operation,
			"uid", admissionReview.Request.UID,
			"user", admissionReview.Request.UserInfo.Username,
		)
		logger.V(4).Info("received admission review")
		admissionRequest := AdmissionRequest{
			AdmissionRequest: *admissionReview.Request,
			APIVersion:       admissionReview.APIVersion,
		}
		admissionResponse := inner(ctx, logger, admissionRequest, startTime)
		// the uid must always match the request, whatever the inner handler did
		admissionResponse.UID = admissionReview.Request.UID
		responseJSON, err := json.Marshal(admissionutils.Review(admissionReview.APIVersion, &admissionResponse))
		if err != nil {
			httpError(writer, request, logger, err, "could not encode response", http.StatusInternalServerError)
			return
		}
		writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		if _, err := writer.Write(responseJSON); err != nil {
			logger.Error(err, "could not write response")
			return
		}
		tracing.SetHttpStatus(ctx, nil, http.StatusOK)
		logger.V(4).Info("admission review request processed", "time", time.Since(startTime).String())
	}
}

func httpError(writer http.ResponseWriter, request *http.Request, logger logr.Logger, err error, message string, code int) {
	logger.Info("admission review rejected", "req", request.URL.String(), "reason", message, "error", err)
	tracing.SetHttpStatus(request.Context(), err, code)
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	http.Error(writer, message, code)
}
