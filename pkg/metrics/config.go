package metrics

import (
	"slices"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

var defaultBucketBoundaries = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Configuration controls how instruments are aggregated and which ones are exported.
type Configuration struct {
	// BucketBoundaries are the histogram bucket boundaries, in seconds.
	BucketBoundaries []float64
	// DisabledMetrics lists instrument names that are dropped before export.
	DisabledMetrics []string
}

func NewDefaultConfiguration() Configuration {
	return Configuration{
		BucketBoundaries: slices.Clone(defaultBucketBoundaries),
	}
}

func (c Configuration) GetBucketBoundaries() []float64 {
	if len(c.BucketBoundaries) == 0 {
		return defaultBucketBoundaries
	}
	return c.BucketBoundaries
}

func (c Configuration) IsDisabled(name string) bool {
	return slices.Contains(c.DisabledMetrics, name)
}

func (c Configuration) BuildMeterProviderViews() []sdkmetric.View {
	var views []sdkmetric.View
	for _, name := range c.DisabledMetrics {
		views = append(views, sdkmetric.NewView(
			sdkmetric.Instrument{Name: name},
			sdkmetric.Stream{Aggregation: sdkmetric.AggregationDrop{}},
		))
	}
	return views
}
