package tracing

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var defaultSpanFormatter = otelhttp.WithSpanNameFormatter(
	func(_ string, request *http.Request) string {
		return fmt.Sprintf("HTTP %s %s", request.Method, request.URL.Path)
	},
)

// Handler wraps an inbound handler so that every request starts a server span,
// extracting the caller trace context when present.
func Handler(handler http.Handler, operation string, opts ...otelhttp.Option) http.Handler {
	o := []otelhttp.Option{defaultSpanFormatter}
	o = append(o, opts...)
	return otelhttp.NewHandler(handler, operation, o...)
}
