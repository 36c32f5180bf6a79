package internal

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/itsfriday/itsfriday-controller/pkg/logging"
	"github.com/itsfriday/itsfriday-controller/pkg/metrics"
)

var (
	// logging
	loggingFormat   string
	loggingTsFormat string
	// profiling
	profilingEnabled bool
	profilingAddress string
	profilingPort    string
	// tracing
	tracingEnabled bool
	tracingAddress string
	tracingPort    string
	tracingCreds   string
	// metrics
	otel                    string
	otelCollector           string
	metricsPort             string
	transportCreds          string
	disableMetricsExport    bool
	metricsBucketBoundaries bucketBoundaries
	disabledMetrics         string
	// memlimit
	autoMemLimitEnabled bool
	autoMemLimitRatio   float64
)

func initLoggingFlags() {
	logging.InitFlags(nil)
	flag.StringVar(&loggingFormat, "loggingFormat", logging.TextFormat, "This determines the output format of the logger.")
	flag.StringVar(&loggingTsFormat, "loggingtsFormat", logging.DefaultTime, "This determines the timestamp format of the logger.")
	checkErr(flag.Set("v", "2"), "failed to init flags")
}

func initProfilingFlags() {
	flag.BoolVar(&profilingEnabled, "profile", false, "Set this flag to 'true', to enable profiling.")
	flag.StringVar(&profilingPort, "profilePort", "6060", "Profiling server port, defaults to '6060'.")
	flag.StringVar(&profilingAddress, "profileAddress", "", "Profiling server address, defaults to ''.")
}

func initTracingFlags() {
	flag.BoolVar(&tracingEnabled, "enableTracing", false, "Set this flag to 'true', to enable tracing.")
	flag.StringVar(&tracingPort, "tracingPort", "4317", "Tracing receiver port, defaults to '4317'.")
	flag.StringVar(&tracingAddress, "tracingAddress", "", "Tracing receiver address, defaults to ''.")
	flag.StringVar(&tracingCreds, "tracingCreds", "", "Set this flag to the CA file used to verify the Opentelemetry Collector. If empty string is set, means an insecure connection will be used")
}

func initMetricsFlags() {
	flag.StringVar(&otel, "otelConfig", metrics.ProviderPrometheus, "Set this flag to 'grpc', to enable exporting metrics to an Opentelemetry Collector. The default collector is set to \"prometheus\"")
	flag.StringVar(&otelCollector, "otelCollector", "opentelemetrycollector.itsfriday.svc.cluster.local", "Set this flag to the OpenTelemetry Collector Service Address. The controller will try to connect to this on the metrics port.")
	flag.StringVar(&transportCreds, "transportCreds", "", "Set this flag to the CA file used to verify the Opentelemetry Collector. If empty string is set, means an insecure connection will be used")
	flag.StringVar(&metricsPort, "metricsPort", "8000", "Expose prometheus metrics at the given port, default to 8000.")
	flag.BoolVar(&disableMetricsExport, "disableMetrics", false, "Set this flag to 'true' to disable metrics.")
	flag.Var(&metricsBucketBoundaries, "metricsBucketBoundaries", "Comma separated histogram bucket boundaries in seconds.")
	flag.StringVar(&disabledMetrics, "disabledMetrics", "", "Comma separated metric names that are not exported, for example 'itsfriday_http_requests'.")
}

func initMemLimitFlags() {
	flag.BoolVar(&autoMemLimitEnabled, "autoMemLimit", true, "Set this flag to 'true', to enable automatic GOMEMLIMIT configuration.")
	flag.Float64Var(&autoMemLimitRatio, "autoMemLimitRatio", 0.9, "Ratio of the container memory limit used for GOMEMLIMIT.")
}

func InitFlags(config Configuration) {
	// logging
	initLoggingFlags()
	// profiling
	if config.UsesProfiling() {
		initProfilingFlags()
	}
	// tracing
	if config.UsesTracing() {
		initTracingFlags()
	}
	// metrics
	if config.UsesMetrics() {
		initMetricsFlags()
	}
	// memlimit
	if config.UsesMemLimit() {
		initMemLimitFlags()
	}
	for _, flagset := range config.FlagSets() {
		flagset.VisitAll(func(f *flag.Flag) {
			flag.CommandLine.Var(f.Value, f.Name, f.Usage)
		})
	}
}

func ParseFlags(config Configuration) {
	InitFlags(config)
	flag.Parse()
}

type bucketBoundaries []float64

func (b *bucketBoundaries) String() string {
	values := make([]string, 0, len(*b))
	for _, value := range *b {
		values = append(values, strconv.FormatFloat(value, 'f', -1, 64))
	}
	return strings.Join(values, ",")
}

func (b *bucketBoundaries) Set(in string) error {
	var values []float64
	for _, entry := range strings.Split(in, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		value, err := strconv.ParseFloat(entry, 64)
		if err != nil {
			return fmt.Errorf("invalid bucket boundary %q: %w", entry, err)
		}
		values = append(values, value)
	}
	*b = values
	return nil
}
