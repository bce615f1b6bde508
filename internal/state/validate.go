package state

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// LogLevels are the accepted values of logging.level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Themes are the accepted values of tui.theme.
var Themes = []string{"default", "mono"}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https: %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL has no host: %q", raw)
	}

	return nil
}

// ValidatePageSizes checks the offered page sizes and that the default is
// one of them.
func ValidatePageSizes(defaultSize int, options []int) error {
	if len(options) == 0 {
		return fmt.Errorf("page size options cannot be empty")
	}

	seen := make(map[int]bool, len(options))
	for _, size := range options {
		if size < 1 || size > 50 {
			return fmt.Errorf("page size must be between 1 and 50, got %d", size)
		}
		if seen[size] {
			return fmt.Errorf("duplicate page size option: %d", size)
		}
		seen[size] = true
	}

	if !seen[defaultSize] {
		return fmt.Errorf("default page size %d is not one of %v", defaultSize, options)
	}

	return nil
}

// ValidateLogLevel checks a logging level name.
func ValidateLogLevel(level string) error {
	return oneOf("log level", level, LogLevels)
}

// ValidateTheme checks a TUI theme name.
func ValidateTheme(theme string) error {
	return oneOf("theme", theme, Themes)
}

// ValidateAPIKey checks the shape of an API key. Keys are opaque, so only
// blanks and embedded whitespace are rejected.
func ValidateAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	if strings.IndexFunc(key, unicode.IsSpace) >= 0 {
		return fmt.Errorf("API key cannot contain whitespace")
	}
	return nil
}

func oneOf(what, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s: %q (must be one of %s)", what, value, strings.Join(allowed, ", "))
}
