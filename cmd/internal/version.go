package internal

import (
	"github.com/go-logr/logr"
	"github.com/itsfriday/itsfriday-controller/pkg/version"
)

func showVersion(logger logr.Logger) {
	version.PrintVersionInfo(logger.WithName("version"))
}
