package internal

import (
	"fmt"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"github.com/go-logr/logr"
	"go.uber.org/automaxprocs/maxprocs"
)

// setupMaxProcs aligns GOMAXPROCS with the container CPU quota.
func setupMaxProcs(logger logr.Logger) func() {
	logger = logger.WithName("maxprocs")
	logger.V(2).Info("setup maxprocs...")
	undo, err := maxprocs.Set(
		maxprocs.Logger(
			func(format string, args ...interface{}) {
				logger.V(2).Info(fmt.Sprintf(format, args...))
			},
		),
	)
	if err != nil {
		logger.Error(err, "failed to configure maxprocs")
		return func() {}
	}
	return undo
}

// setupMemLimit sets GOMEMLIMIT from the cgroup memory limit, or from the system memory outside of a container.
func setupMemLimit(logger logr.Logger) {
	if !autoMemLimitEnabled {
		return
	}
	logger = logger.WithName("memlimit").WithValues("ratio", autoMemLimitRatio)
	logger.V(2).Info("setup memlimit...")
	limit, err := memlimit.SetGoMemLimitWithOpts(
		memlimit.WithRatio(autoMemLimitRatio),
		memlimit.WithProvider(
			memlimit.ApplyFallback(
				memlimit.FromCgroup,
				memlimit.FromSystem,
			),
		),
	)
	if err != nil {
		logger.Error(err, "failed to set GOMEMLIMIT automatically")
		return
	}
	logger.V(2).Info("GOMEMLIMIT configured", "limit", limit)
}
