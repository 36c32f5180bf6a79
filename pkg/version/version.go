package version

import (
	"runtime/debug"

	"github.com/go-logr/logr"
)

// These fields are set during an official build
// Global vars set from command-line arguments
var (
	BuildVersion = "--"
	BuildHash    = "--"
	BuildTime    = "--"
)

// Version returns the build version, falling back to the module version
// recorded by the Go toolchain.
func Version() string {
	if BuildVersion != "--" {
		return BuildVersion
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return BuildVersion
}

// PrintVersionInfo displays the itsfriday-controller version - git version
func PrintVersionInfo(log logr.Logger) {
	log.Info("version", "version", Version(), "hash", BuildHash, "time", BuildTime)
}
