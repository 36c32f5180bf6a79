package main

import (
	"testing"
	"time"

	"github.com/itsfriday/itsfriday-controller/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPairFiles(t *testing.T) {
	tests := []struct {
		name     string
		certFile string
		keyFile  string
		args     []string
		wantCert string
		wantKey  string
	}{
		{name: "positional", args: []string{"tls.crt", "tls.key"}, wantCert: "tls.crt", wantKey: "tls.key"},
		{name: "flags win", certFile: "a.crt", keyFile: "a.key", args: []string{"tls.crt", "tls.key"}, wantCert: "a.crt", wantKey: "a.key"},
		{name: "missing key", args: []string{"tls.crt"}, wantCert: "tls.crt", wantKey: ""},
		{name: "nothing", wantCert: "", wantKey: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cert, key := keyPairFiles(tt.certFile, tt.keyFile, tt.args)
			assert.Equal(t, tt.wantCert, cert)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestNewCalendar(t *testing.T) {
	cal, err := newCalendar("4", "", "UTC")
	require.NoError(t, err)
	assert.Equal(t, []calendar.Weekday{calendar.Friday}, cal.Days())
	assert.Equal(t, time.UTC, cal.Location())

	_, err = newCalendar("4", "", "Mars/Olympus_Mons")
	assert.Error(t, err)

	_, err = newCalendar("friday", "", "")
	var configErr *calendar.ConfigurationError
	assert.ErrorAs(t, err, &configErr)

	cal, err = newCalendar("", "* 16-23 * * 4", "UTC")
	require.NoError(t, err)
	excluded, _ := cal.IsExcluded(time.Date(2024, time.January, 4, 17, 0, 0, 0, time.UTC))
	assert.True(t, excluded)
}
