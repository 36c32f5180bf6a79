package logging

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"os"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"k8s.io/klog/v2"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	// JSONFormat represents JSON logging mode.
	JSONFormat = "json"
	// TextFormat represents text logging mode.
	// Default logging mode is TextFormat.
	TextFormat = "text"
	// timestamp formats
	DefaultTime = "default"
	ISO8601     = "iso8601"
	RFC3339     = "rfc3339"
	MILLIS      = "millis"
	NANOS       = "nanos"
	EPOCH       = "epoch"
	RFC3339NANO = "rfc3339nano"
)

// InitFlags registers the klog flags on the given flag set, or on the
// command line flag set when flags is nil.
func InitFlags(flags *flag.FlagSet) {
	// clear flags initialized in static dependencies
	if flag.CommandLine.Lookup("log_dir") != nil {
		flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	}
	klog.InitFlags(flags)
}

// Setup configures the logger with the supplied log format, timestamp format and verbosity.
// It returns an error if the logger could not be initialized or passed logFormat is not recognized.
func Setup(logFormat string, loggingTimestampFormat string, level int) error {
	var config zap.Config
	switch logFormat {
	case TextFormat:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case JSONFormat:
		config = zap.NewProductionConfig()
	default:
		return errors.New("log format not recognized, pass `text` for text mode or `json` to enable JSON logging")
	}
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(resolveTimestampFormat(loggingTimestampFormat))
	// logr V(n) maps to zap level -n
	config.Level = zap.NewAtomicLevelAt(zapcore.Level(-level))
	config.Sampling = nil
	zapLog, err := config.Build()
	if err != nil {
		return err
	}
	logger := zapr.NewLogger(zapLog)
	klog.SetLogger(logger)
	log.SetLogger(logger)
	return nil
}

func resolveTimestampFormat(format string) string {
	switch format {
	case ISO8601, RFC3339, DefaultTime:
		return time.RFC3339
	case MILLIS:
		return time.StampMilli
	case NANOS:
		return time.StampNano
	case EPOCH:
		return time.UnixDate
	case RFC3339NANO:
		return time.RFC3339Nano
	default:
		return time.RFC3339
	}
}

// GlobalLogger returns a logr.Logger as configured in main.
func GlobalLogger() logr.Logger {
	return log.Log
}

// WithName returns a new logr.Logger instance with the specified name element added to the Logger's name.
func WithName(name string) logr.Logger {
	return GlobalLogger().WithName(name)
}

// WithValues returns a new logr.Logger instance with additional key/value pairs.
func WithValues(keysAndValues ...interface{}) logr.Logger {
	return GlobalLogger().WithValues(keysAndValues...)
}

// V returns a new logr.Logger instance for a specific verbosity level.
func V(level int) logr.Logger {
	return GlobalLogger().V(level)
}

// Info logs a non-error message with the given key/value pairs.
func Info(msg string, keysAndValues ...interface{}) {
	GlobalLogger().Info(msg, keysAndValues...)
}

// Error logs an error, with the given message and key/value pairs.
func Error(err error, msg string, keysAndValues ...interface{}) {
	GlobalLogger().Error(err, msg, keysAndValues...)
}

// FromContext returns a logger with predefined values from a context.Context.
func FromContext(ctx context.Context, keysAndValues ...interface{}) (logr.Logger, error) {
	logger, err := logr.FromContext(ctx)
	if err != nil {
		return logger, err
	}
	return logger.WithValues(keysAndValues...), nil
}

// IntoContext takes a context and sets the logger as one of its values.
// Use FromContext function to retrieve the logger.
func IntoContext(ctx context.Context, log logr.Logger) context.Context {
	return logr.NewContext(ctx, log)
}

type writerAdapter struct {
	logger logr.Logger
}

func (a writerAdapter) Write(p []byte) (int, error) {
	a.logger.Info(strings.TrimSpace(string(p)))
	return len(p), nil
}

// StdLogger returns a standard library logger writing to the given logr.Logger,
// suitable for http.Server.ErrorLog.
func StdLogger(logger logr.Logger, prefix string) *stdlog.Logger {
	return stdlog.New(writerAdapter{logger: logger}, prefix, 0)
}
