package webhooks

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"github.com/itsfriday/itsfriday-controller/pkg/config"
	"github.com/itsfriday/itsfriday-controller/pkg/logging"
	"github.com/itsfriday/itsfriday-controller/pkg/metrics"
	"github.com/itsfriday/itsfriday-controller/pkg/tracing"
	"github.com/itsfriday/itsfriday-controller/pkg/webhooks/handlers"
	"github.com/julienschmidt/httprouter"
	"go.opentelemetry.io/otel/attribute"
)

type Server interface {
	// Run TLS server in separate thread and returns control immediately,
	// the returned channel receives the error if the server stops unexpectedly
	Run() <-chan error
	// Stop TLS server and returns control after the server is shut down
	Stop(context.Context)
}

type server struct {
	server *http.Server
}

type (
	TlsProvider       = func() ([]byte, []byte, error)
	ValidationHandler = handlers.AdmissionHandler
)

type Probes interface {
	IsReady(context.Context) bool
	IsLive(context.Context) bool
}

type DebugModeOptions struct {
	// DumpPayload is evaluated per request, admission payloads are logged when it returns true
	DumpPayload func() bool
}

var webhookValidating = attribute.String("webhook_type", "validate")

// NewRouter registers the admission and probe endpoints.
func NewRouter(
	validationHandler ValidationHandler,
	metricsConfig metrics.MetricsConfigManager,
	debugModeOpts DebugModeOptions,
	probes Probes,
) http.Handler {
	logger := logging.WithName("itsfriday")
	mux := httprouter.New()
	mux.HandlerFunc(
		"POST",
		config.ValidatingWebhookServicePath,
		handlers.FromAdmissionFunc("VALIDATE", validationHandler).
			WithDump(debugModeOpts.DumpPayload).
			WithMetrics(logger, metricsConfig, webhookValidating).
			WithAdmission(logger.WithName("validate")).
			WithMetrics(logger, metricsConfig).
			ToHandlerFunc("VALIDATE"),
	)
	mux.HandlerFunc("GET", config.LivenessServicePath, handlers.Probe(probes.IsLive))
	mux.HandlerFunc("GET", config.ReadinessServicePath, handlers.Probe(probes.IsReady))
	return tracing.Handler(mux, "itsfriday")
}

// NewServer creates new instance of server accordingly to given configuration
func NewServer(
	address string,
	tlsProvider TlsProvider,
	validationHandler ValidationHandler,
	metricsConfig metrics.MetricsConfigManager,
	debugModeOpts DebugModeOptions,
	probes Probes,
) Server {
	return &server{
		server: &http.Server{
			Addr: address,
			TLSConfig: &tls.Config{
				GetCertificate: func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
					certPem, keyPem, err := tlsProvider()
					if err != nil {
						return nil, err
					}
					pair, err := tls.X509KeyPair(certPem, keyPem)
					if err != nil {
						return nil, err
					}
					return &pair, nil
				},
				MinVersion: tls.VersionTLS12,
				CipherSuites: []uint16{
					// AEADs w/ ECDHE
					tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
					tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
					tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
					tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
					tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
					tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
				},
			},
			Handler:           NewRouter(validationHandler, metricsConfig, debugModeOpts, probes),
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			ReadHeaderTimeout: 30 * time.Second,
			IdleTimeout:       5 * time.Minute,
			ErrorLog:          logging.StdLogger(logging.WithName("server"), ""),
		},
	}
}

func (s *server) Run() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logging.Info("starting server", "address", s.server.Addr)
		if err := s.server.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(err, "failed to start server")
			errCh <- err
		}
	}()
	return errCh
}

func (s *server) Stop(ctx context.Context) {
	err := s.server.Shutdown(ctx)
	if err != nil {
		err = s.server.Close()
		if err != nil {
			logging.Error(err, "failed to stop server")
		}
	}
}
