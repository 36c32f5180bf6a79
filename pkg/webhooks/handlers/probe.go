package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

type probeStatus struct {
	Status bool `json:"status"`
}

// Probe answers {"status":true} with 200, or {"status":false} with 500 when
// check reports the process as not ready. A nil check always succeeds.
func Probe(check func(context.Context) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := probeStatus{Status: check == nil || check(r.Context())}
		w.Header().Set("Content-Type", "application/json")
		if status.Status {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		_ = json.NewEncoder(w).Encode(status)
	}
}
