package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks field constraints and reports every failing field at once
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		problems = append(problems, fmt.Sprintf("%s failed '%s' (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

// Warnings returns non-fatal concerns, such as a wildcard origin in production
func (c *Config) Warnings() []string {
	var warnings []string

	if c.IsProduction() {
		if len(c.AllowedOrigins) == 0 {
			warnings = append(warnings, "ALLOWED_ORIGINS is empty - only same-origin WebSocket clients will connect")
		}
		for _, origin := range c.AllowedOrigins {
			if origin == "*" {
				warnings = append(warnings, "ALLOWED_ORIGINS contains '*' - any site can drive the machine")
				break
			}
		}
	}

	if c.SpinDelay == 0 {
		warnings = append(warnings, "SPIN_DELAY is 0 - rounds resolve without a spin")
	}

	return warnings
}
