package calendar

import "fmt"

// ConfigurationError reports an exclusion calendar entry that cannot be used.
type ConfigurationError struct {
	Entry  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid exclusion calendar entry %q: %s", e.Entry, e.Reason)
}
