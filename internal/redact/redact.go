// Package redact removes sensitive information from strings before they are
// logged, stored on a task or returned in error responses. Probe targets are
// operator-supplied URLs and may carry credentials in their userinfo or query
// string, so transport errors that echo the URL are scrubbed here.
package redact

import (
	"net/url"
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"

	// redactedQueryValue replaces sensitive query parameter values. It must
	// survive URL encoding unchanged.
	redactedQueryValue = "REDACTED"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Precompiled patterns, applied in order.
var rules = []rule{
	// Stack trace fragments
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},

	// Userinfo in any URL, keeping the scheme
	{regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*://)[^/\s@]+@`), "${1}" + RedactedCredentialPlaceholder + "@"},

	// Credentials and tokens
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), "[REDACTED_JWT]"},
	{
		regexp.MustCompile(`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},
	{regexp.MustCompile(`(AKIA|AccessKey(Id)?)([^a-zA-Z0-9])?[A-Z0-9]{8,}`), RedactedKeyPlaceholder},

	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},

	// Local file paths. Unix paths must follow whitespace, a quote, '=' or
	// '(' so that URL paths are left alone.
	{regexp.MustCompile(`(^|[\s"'=(])(?:/[\w.-]+){2,}`), "${1}" + RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), RedactedPathPlaceholder},
}

// sensitiveParams are query parameter names whose values URL redacts.
var sensitiveParams = map[string]struct{}{
	"token":        {},
	"access_token": {},
	"api_key":      {},
	"apikey":       {},
	"key":          {},
	"secret":       {},
	"password":     {},
	"sig":          {},
	"signature":    {},
	"auth":         {},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// URL returns raw with its userinfo removed and the values of sensitive query
// parameters replaced. A URL that cannot be parsed is replaced entirely.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return RedactionPlaceholder
	}

	changed := false
	if u.User != nil {
		u.User = nil
		changed = true
	}

	if u.RawQuery != "" {
		q := u.Query()
		for name := range q {
			if _, ok := sensitiveParams[strings.ToLower(name)]; ok {
				q.Set(name, redactedQueryValue)
				changed = true
			}
		}
		if changed {
			u.RawQuery = q.Encode()
		}
	}

	if !changed {
		return raw
	}
	return u.String()
}
