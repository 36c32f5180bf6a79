package internal

import (
	"flag"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/itsfriday/itsfriday-controller/pkg/logging"
)

func setupLogger() logr.Logger {
	level := 2
	if v := flag.Lookup("v"); v != nil {
		if parsed, err := strconv.Atoi(v.Value.String()); err == nil {
			level = parsed
		}
	}
	checkErr(logging.Setup(loggingFormat, loggingTsFormat, level), "failed to setup logger")
	return logging.WithName("setup")
}

func printFlagSettings(logger logr.Logger) {
	logger = logger.WithName("flag")
	flag.VisitAll(func(f *flag.Flag) {
		logger.V(2).Info("", f.Name, f.Value)
	})
}
