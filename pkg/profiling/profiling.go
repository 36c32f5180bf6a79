package profiling

import (
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/go-logr/logr"
	"github.com/itsfriday/itsfriday-controller/pkg/logging"
)

// NewHandler returns the pprof endpoints under /debug/pprof/.
func NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// Start serves pprof on address in a separate goroutine.
func Start(logger logr.Logger, address string) {
	logger.Info("Enable profiling", "address", address)
	go func() {
		s := http.Server{
			Addr:              address,
			Handler:           NewHandler(),
			ErrorLog:          logging.StdLogger(logger, ""),
			ReadHeaderTimeout: 30 * time.Second,
		}
		if err := s.ListenAndServe(); err != nil {
			logger.Error(err, "failed to enable profiling")
		}
	}()
}
