package logging

import (
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
)

func TestResolveTimestampFormat(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		expected string
	}{
		{
			name:     "default format",
			format:   DefaultTime,
			expected: time.RFC3339,
		},
		{
			name:     "iso8601 format",
			format:   ISO8601,
			expected: time.RFC3339,
		},
		{
			name:     "rfc3339 format",
			format:   RFC3339,
			expected: time.RFC3339,
		},
		{
			name:     "millis format",
			format:   MILLIS,
			expected: time.StampMilli,
		},
		{
			name:     "nanos format",
			format:   NANOS,
			expected: time.StampNano,
		},
		{
			name:     "epoch format",
			format:   EPOCH,
			expected: time.UnixDate,
		},
		{
			name:     "rfc3339nano format",
			format:   RFC3339NANO,
			expected: time.RFC3339Nano,
		},
		{
			name:     "unknown format",
			format:   "unknown",
			expected: time.RFC3339,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolveTimestampFormat(tt.format)
			if result != tt.expected {
				t.Errorf("resolveTimestampFormat(%s) = %s, want %s", tt.format, result, tt.expected)
			}
		})
	}
}

func TestSetupUnknownFormat(t *testing.T) {
	assert.Error(t, Setup("yaml", DefaultTime, 2))
}

func TestSetup(t *testing.T) {
	for _, format := range []string{TextFormat, JSONFormat} {
		assert.NoError(t, Setup(format, RFC3339, 2), format)
	}
}

func TestStdLogger(t *testing.T) {
	var messages []string
	logger := funcr.New(func(prefix, args string) {
		messages = append(messages, args)
	}, funcr.Options{})
	std := StdLogger(logger, "server: ")
	std.Print("http: TLS handshake error")
	assert.Len(t, messages, 1)
	assert.Contains(t, messages[0], "server: http: TLS handshake error")
}

func TestContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.Error(t, err)

	var messages []string
	root := funcr.New(func(prefix, args string) {
		messages = append(messages, args)
	}, funcr.Options{})
	ctx := IntoContext(context.Background(), root)
	logger, err := FromContext(ctx, "uid", "705ab4f5")
	assert.NoError(t, err)
	logger.Info("received admission review")
	assert.Len(t, messages, 1)
	assert.Contains(t, messages[0], `"uid"="705ab4f5"`)
}
