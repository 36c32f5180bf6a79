package toggle

import (
	"os"
	"strconv"
)

const (
	// dump payload
	DumpPayloadFlagName    = "dumpPayload"
	DumpPayloadDescription = "Set this flag to 'true' to log admission requests and responses, secrets are redacted."
	dumpPayloadEnvVar      = "FLAG_DUMP_PAYLOAD"
	defaultDumpPayload     = false
)

var DumpPayload = newToggle(defaultDumpPayload, dumpPayloadEnvVar)

type Toggle interface {
	Enabled() bool
	Parse(string) error
}

type toggle struct {
	value        *bool
	defaultValue bool
	envVar       string
}

func newToggle(defaultValue bool, envVar string) *toggle {
	return &toggle{
		defaultValue: defaultValue,
		envVar:       envVar,
	}
}

func (t *toggle) Parse(in string) error {
	if value, err := getBool(in); err != nil {
		return err
	} else {
		t.value = value
		return nil
	}
}

func (t *toggle) Enabled() bool {
	if t.value != nil {
		return *t.value
	}
	if value, err := getBool(os.Getenv(t.envVar)); err == nil && value != nil {
		return *value
	}
	return t.defaultValue
}

// String and Set let a toggle be registered as a flag.Value.
func (t *toggle) String() string {
	return strconv.FormatBool(t.Enabled())
}

func (t *toggle) Set(in string) error {
	return t.Parse(in)
}

func (t *toggle) IsBoolFlag() bool {
	return true
}

func getBool(in string) (*bool, error) {
	if in == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(in)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
