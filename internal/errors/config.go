package errors

import (
	"fmt"
)

// ConfigurationError is raised when configuration is invalid or missing
type ConfigurationError struct {
	*DocSiteError
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{
		DocSiteError: &DocSiteError{
			Message:  message,
			ExitCode: ExitConfigError,
		},
	}
}

// InvalidSettingError is raised when a setting has an unsupported value
type InvalidSettingError struct {
	*DocSiteError
}

// NewInvalidSettingError creates a new invalid setting error
func NewInvalidSettingError(key, value, reason string) *InvalidSettingError {
	return &InvalidSettingError{
		DocSiteError: &DocSiteError{
			Message: fmt.Sprintf("Setting '%s' has an invalid value: '%s'", key, value),
			Context: &ErrorContext{
				Operation: "Validating configuration",
				Component: "Config",
				Details: map[string]interface{}{
					"key":    key,
					"value":  value,
					"reason": reason,
				},
				Suggestions: []string{
					fmt.Sprintf("Check %s in .docsite/config.yaml or DOCSITE_%s", key, envName(key)),
				},
			},
			ExitCode: ExitConfigError,
		},
	}
}

// ConfigFileError is raised when a configuration file cannot be read or parsed
type ConfigFileError struct {
	*DocSiteError
}

// NewConfigFileError creates a new config file error
func NewConfigFileError(filePath string, cause error) *ConfigFileError {
	return &ConfigFileError{
		DocSiteError: &DocSiteError{
			Message: fmt.Sprintf("Failed to load configuration file: %s", filePath),
			Cause:   cause,
			Context: &ErrorContext{
				Operation: "Loading configuration",
				Component: "Config File",
				Details: map[string]interface{}{
					"file_path": filePath,
				},
				Suggestions: []string{
					"Check that the file exists and is readable",
					"Validate YAML syntax",
				},
			},
			ExitCode: ExitConfigError,
		},
	}
}

// envName converts a dotted setting key to its environment variable suffix
// Example: link_check.workers -> LINK_CHECK_WORKERS
func envName(key string) string {
	out := make([]rune, 0, len(key))
	for _, r := range key {
		switch {
		case r == '.':
			out = append(out, '_')
		case r >= 'a' && r <= 'z':
			out = append(out, r-'a'+'A')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
