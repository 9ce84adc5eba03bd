package config

import (
	"fmt"
	"strings"
)

// ConfigError is returned by Load when the file parsed but cannot be used.
// `reelist config test` prints Missing and Errors as separate lists.
type ConfigError struct {
	Path    string
	Missing []string // environment references left unresolved, "NAME" or "NAME: message"
	Errors  []string // Validate messages, each prefixed with its section.key
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "%s: ", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing environment variables: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		if len(e.Missing) > 0 {
			b.WriteString("; ")
		}
		b.WriteString("validation failed:")
		for _, msg := range e.Errors {
			b.WriteString("\n  - " + msg)
		}
	}
	return b.String()
}

// HasErrors reports whether anything was recorded.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
