package app

import "fmt"

// ConfigurationFault is a fatal, non-retryable error: simulations are
// deterministic, so a fault raised by one combat recurs in every combat run
// with the same parameters. Callers abort the whole batch rather than
// skip-and-continue, since dropping iterations biases aggregate statistics.
type ConfigurationFault struct {
	Reason string
	Err    error
}

func (f *ConfigurationFault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("configuration fault: %s: %v", f.Reason, f.Err)
	}
	return fmt.Sprintf("configuration fault: %s", f.Reason)
}

func (f *ConfigurationFault) Unwrap() error {
	return f.Err
}

// Configf builds a ConfigurationFault with a formatted reason.
func Configf(format string, args ...interface{}) *ConfigurationFault {
	return &ConfigurationFault{Reason: fmt.Sprintf(format, args...)}
}

// EmptyInputError reports an operation that requires at least one input value,
// such as analyzing an empty combat-result list.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: empty input", e.Op)
}
