package sanitization

import (
	"fmt"
	"strings"
	"unicode"
)

const redactedValue = "[REDACTED]"

// SanitizationType defines how to sanitize a field.
type SanitizationType int

const (
	FullyRedact SanitizationType = iota
	PartialMask
)

// SensitiveFields defines fields that require explicit sanitization behavior.
//
// Keys are lowercased field names.
var SensitiveFields = map[string]SanitizationType{
	"aws_secret_access_key": FullyRedact,
	"aws_session_token":     FullyRedact,
	"password":              FullyRedact,
	"secret":                FullyRedact,
	"private_key":           FullyRedact,
	"authorization":         FullyRedact,

	"aws_access_key_id": PartialMask,
	"account":           PartialMask,
	"account_id":        PartialMask,
}

var blockedSubstrings = []string{
	"secret",
	"token",
	"password",
	"private_key",
	"credential",
	"authorization",
}

// SanitizeLogString removes control characters that could enable log forging.
func SanitizeLogString(value string) string {
	if value == "" {
		return value
	}
	value = strings.ReplaceAll(value, "\r", "")
	value = strings.ReplaceAll(value, "\n", "")
	return value
}

// SanitizeFieldValue sanitizes a field value based on its key name.
func SanitizeFieldValue(key string, value any) any {
	keyLower := strings.ToLower(strings.TrimSpace(key))
	if keyLower == "" {
		return sanitizeValue(value)
	}

	if typ, ok := SensitiveFields[keyLower]; ok {
		if typ == PartialMask {
			return maskRestrictedValue(value)
		}
		return redactedValue
	}

	for _, substr := range blockedSubstrings {
		if strings.Contains(keyLower, substr) {
			return redactedValue
		}
	}

	return sanitizeValue(value)
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case nil:
		return nil
	case string:
		return SanitizeLogString(typed)
	case []byte:
		return SanitizeLogString(string(typed))
	case bool, int, int64, float64:
		return typed
	case []string:
		out := make([]string, len(typed))
		for i := range typed {
			out[i] = SanitizeLogString(typed[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = SanitizeFieldValue(k, v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = sanitizeValue(typed[i])
		}
		return out
	default:
		return SanitizeLogString(fmt.Sprintf("%v", typed))
	}
}

func maskRestrictedValue(value any) string {
	switch v := value.(type) {
	case string:
		return maskRestrictedString(v)
	case []byte:
		return maskRestrictedString(string(v))
	default:
		return redactedValue
	}
}

// Account IDs and access key IDs keep their last 4 characters.
func maskRestrictedString(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return redactedValue
	}

	cleaned := stripNonDigits(value)
	if len(cleaned) == len(value) && len(cleaned) > 4 {
		return strings.Repeat("*", len(cleaned)-4) + cleaned[len(cleaned)-4:]
	}

	if len(value) > 4 {
		return "..." + value[len(value)-4:]
	}
	return redactedValue
}

func stripNonDigits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
