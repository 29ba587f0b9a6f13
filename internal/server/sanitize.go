package server

import (
	"regexp"
	"strings"
)

// Input sanitization patterns. Applied uniformly to every string argument
// before dispatch, regardless of tool.
var (
	scriptTagPattern    = regexp.MustCompile(`(?i)</?script[^>]*>`)
	jsURIPattern        = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	quoteReplacer       = strings.NewReplacer(`"`, "", "'", "", "`", "")
)

// sanitizeString strips script tags, javascript: URIs, inline event-handler
// attributes, and quote characters.
func sanitizeString(s string) string {
	s = scriptTagPattern.ReplaceAllString(s, "")
	s = jsURIPattern.ReplaceAllString(s, "")
	s = eventHandlerPattern.ReplaceAllString(s, "")
	return quoteReplacer.Replace(s)
}

// sanitizeValue walks an argument tree and sanitizes every string in it.
// Non-string leaves pass through unchanged.
func sanitizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return sanitizeString(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = sanitizeValue(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = sanitizeValue(item)
		}
		return out
	default:
		return value
	}
}

// sanitizeArgs sanitizes a validated argument map.
func sanitizeArgs(args map[string]interface{}) map[string]interface{} {
	out, _ := sanitizeValue(args).(map[string]interface{})
	return out
}

// RedactionMarker replaces every sensitive substring found in tool output.
const RedactionMarker = "[REDACTED]"

// RedactionRule pairs a sensitive-substring pattern with its replacement.
// Best-effort response hygiene, not a security boundary.
type RedactionRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// DefaultRedactionRules covers credential env-var names, bearer tokens,
// API-key-shaped substrings, and password: prefixes.
func DefaultRedactionRules() []RedactionRule {
	return []RedactionRule{
		{
			Name:    "credential_env_var",
			Pattern: regexp.MustCompile(`\b[A-Z][A-Z0-9]*(?:_[A-Z0-9]+)*_(?:API_KEY|SECRET|TOKEN|PASSWORD)\b`),
		},
		{
			Name:    "bearer_token",
			Pattern: regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]+=*`),
		},
		{
			Name:    "api_key",
			Pattern: regexp.MustCompile(`\bsk-[A-Za-z0-9]{8,}\b`),
		},
		{
			Name:    "dotted_api_key",
			Pattern: regexp.MustCompile(`\b[a-f0-9]{32}\.[A-Za-z0-9]{8,}\b`),
		},
		{
			Name:    "password_prefix",
			Pattern: regexp.MustCompile(`(?i)\bpassword\s*:\s*\S+`),
		},
	}
}

// redact replaces every rule match in text with the redaction marker.
func redact(text string, rules []RedactionRule) string {
	for _, rule := range rules {
		text = rule.Pattern.ReplaceAllString(text, RedactionMarker)
	}
	return text
}
