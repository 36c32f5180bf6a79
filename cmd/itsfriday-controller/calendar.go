package main

import (
	"time"

	"github.com/itsfriday/itsfriday-controller/pkg/calendar"
	"github.com/pkg/errors"
)

// keyPairFiles falls back to positional arguments for the certificate and key paths.
func keyPairFiles(certFile, keyFile string, args []string) (string, string) {
	if certFile == "" && len(args) > 0 {
		certFile = args[0]
	}
	if keyFile == "" && len(args) > 1 {
		keyFile = args[1]
	}
	return certFile, keyFile
}

func newCalendar(excludedDays, freezeWindow, timezone string) (*calendar.Calendar, error) {
	var options []calendar.Option
	if timezone != "" {
		location, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, errors.Wrapf(err, "unknown time zone %q", timezone)
		}
		options = append(options, calendar.WithLocation(location))
	}
	if freezeWindow != "" {
		options = append(options, calendar.WithFreezeWindow(freezeWindow))
	}
	return calendar.Parse(excludedDays, options...)
}
