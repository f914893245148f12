package core

import "fmt"

// ConfigurationError means a project-level input (codebook, config file,
// who-what registry) is missing or unreadable. It is fatal: the run
// aborts, there is no fallback.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cannot read '%s': %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// CodingError means a single coding does not conform to the codebook:
// either the code is unknown or one of its suffix tokens is not allowed.
// It is recoverable; callers accumulate these per file.
type CodingError struct {
	Code string
	// Suffix is the offending suffix token, empty for unknown codes.
	Suffix string
	// Allowed is the declared suffix grammar of the code, for diagnostics.
	Allowed string
}

func (e *CodingError) Error() string {
	if e.Suffix == "" && e.Allowed == "" {
		return fmt.Sprintf("unknown code: '%s'", e.Code)
	}
	return fmt.Sprintf("suffix '%s' not allowed for code '%s': %s:%s",
		e.Suffix, e.Code, e.Code, e.Allowed)
}
