package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/itsfriday/itsfriday-controller/cmd/internal"
	"github.com/itsfriday/itsfriday-controller/pkg/config"
	"github.com/itsfriday/itsfriday-controller/pkg/engine"
	tlsutils "github.com/itsfriday/itsfriday-controller/pkg/tls"
	"github.com/itsfriday/itsfriday-controller/pkg/toggle"
	"github.com/itsfriday/itsfriday-controller/pkg/webhooks"
	"github.com/itsfriday/itsfriday-controller/pkg/webhooks/resource/validation"
)

const shutdownTimeout = 10 * time.Second

type probes struct {
	keyPair *tlsutils.FileKeyPairProvider
}

func (p probes) IsReady(ctx context.Context) bool {
	return p.keyPair.IsReady(ctx)
}

func (p probes) IsLive(context.Context) bool {
	return true
}

func main() {
	var (
		excludedDays string
		freezeWindow string
		timezone     string
		tlsCertFile  string
		tlsKeyFile   string
		serverPort   int
	)
	// application flags
	flagset := flag.NewFlagSet("application", flag.ExitOnError)
	flagset.StringVar(&excludedDays, "excludedDays", config.ExcludedDays(), "Comma separated weekdays on which objects without owner references are rejected, 0 is Monday. Defaults to $MY_FRIDAY, or '4' when unset.")
	flagset.StringVar(&freezeWindow, "freezeWindow", "", "Optional cron expression (minute hour day-of-month month day-of-week), objects without owner references are also rejected while it matches.")
	flagset.StringVar(&timezone, "timezone", "", "IANA time zone used to compute the weekday, defaults to the process local time zone.")
	flagset.StringVar(&tlsCertFile, "tlsCertFile", "", "Path to the PEM encoded serving certificate, defaults to the first positional argument.")
	flagset.StringVar(&tlsKeyFile, "tlsKeyFile", "", "Path to the PEM encoded serving private key, defaults to the second positional argument.")
	flagset.IntVar(&serverPort, "serverPort", config.DefaultServerPort, "Port the admission server listens on.")
	flagset.Var(toggle.DumpPayload, toggle.DumpPayloadFlagName, toggle.DumpPayloadDescription)
	// config
	appConfig := internal.NewConfiguration(
		internal.WithProfiling(),
		internal.WithMetrics(),
		internal.WithTracing(),
		internal.WithMemLimit(),
		internal.WithFlagSets(flagset),
	)
	// parse flags
	internal.ParseFlags(appConfig)
	tlsCertFile, tlsKeyFile = keyPairFiles(tlsCertFile, tlsKeyFile, flag.Args())
	// setup
	ctx, setup, sdown := internal.Setup(appConfig, config.ControllerName)
	defer sdown()
	logger := setup.Logger.WithName("main")
	if tlsCertFile == "" || tlsKeyFile == "" {
		logger.Error(fmt.Errorf("missing key pair"), "usage: itsfriday-controller [flags] <cert file> <key file>")
		os.Exit(1)
	}
	// exclusion calendar, frozen before the first request
	cal, err := newCalendar(excludedDays, freezeWindow, timezone)
	if err != nil {
		logger.Error(err, "invalid exclusion calendar", "excludedDays", excludedDays, "freezeWindow", freezeWindow, "timezone", timezone)
		os.Exit(1)
	}
	instance := config.InstanceName()
	logger.Info("exclusion calendar loaded", "instance", instance, "calendar", cal.String(), "location", cal.Location().String())
	// serving key pair
	keyPair := tlsutils.NewFileKeyPairProvider(logger.WithName("tls"), tlsCertFile, tlsKeyFile)
	if err := keyPair.Load(); err != nil {
		// not ready until the watcher picks up a valid pair
		logger.Error(err, "failed to load key pair")
	}
	if _, err := keyPair.Watch(ctx); err != nil {
		logger.Error(err, "failed to watch key pair")
		os.Exit(1)
	}
	// start webhooks server
	validationHandler := validation.NewValidationHandler(engine.NewEngine(cal, instance))
	server := webhooks.NewServer(
		fmt.Sprintf(":%d", serverPort),
		keyPair.TlsProvider,
		validationHandler.HandleValidation,
		setup.MetricsManager,
		webhooks.DebugModeOptions{
			DumpPayload: toggle.DumpPayload.Enabled,
		},
		probes{keyPair: keyPair},
	)
	errCh := server.Run()
	// wait for termination signal or server failure
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error(err, "server stopped")
		}
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	server.Stop(stopCtx)
}
