package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "https://api.curseforge.com/v1", false},
		{"plain http", "http://localhost:8080", false},
		{"empty", "", true},
		{"no scheme", "api.curseforge.com/v1", true},
		{"ftp", "ftp://example.com", true},
		{"no host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePageSizes(t *testing.T) {
	tests := []struct {
		name        string
		defaultSize int
		options     []int
		wantErr     bool
	}{
		{"defaults", 20, []int{10, 20, 50}, false},
		{"single option", 25, []int{25}, false},
		{"empty options", 20, nil, true},
		{"default not offered", 30, []int{10, 20, 50}, true},
		{"zero size", 10, []int{0, 10}, true},
		{"above upstream maximum", 10, []int{10, 100}, true},
		{"duplicate", 10, []int{10, 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePageSizes(tt.defaultSize, tt.options)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range LogLevels {
		assert.NoError(t, ValidateLogLevel(level))
	}
	assert.Error(t, ValidateLogLevel("trace"))
	assert.Error(t, ValidateLogLevel(""))
}

func TestValidateTheme(t *testing.T) {
	assert.NoError(t, ValidateTheme("default"))
	assert.NoError(t, ValidateTheme("mono"))
	assert.Error(t, ValidateTheme("neon"))
}

func TestValidateAPIKey(t *testing.T) {
	assert.NoError(t, ValidateAPIKey("$2a$10$abcdefghijklmnopqrstuv"))
	assert.Error(t, ValidateAPIKey(""))
	assert.Error(t, ValidateAPIKey("has space"))
	assert.Error(t, ValidateAPIKey("trailing\n"))
}
