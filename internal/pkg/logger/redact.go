package logger

import "strings"

// secretKeys are field-name fragments whose values must never reach the log
// stream. Basic auth credentials ride on every API request, so any handler
// logging a field by one of these names gets the value masked.
var secretKeys = []string{"password", "pass_hash", "secret", "authorization", "credential"}

// RedactSecret masks val when key names credential material.
func RedactSecret(key, val string) string {
	lower := strings.ToLower(key)
	for _, k := range secretKeys {
		if strings.Contains(lower, k) {
			return "***"
		}
	}
	return val
}
