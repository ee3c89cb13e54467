package audit

import (
	"os"
	"regexp"
	"strings"
)

const redacted = "***REDACTED***"

// RedactEnv names the environment variable holding redaction patterns.
const RedactEnv = "MPYCROSS_REDACT"

// redactStrings applies redactString to each element and returns a new slice.
func redactStrings(values []string, pats patterns) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = redactString(v, pats)
	}
	return out
}

// redactString masks every regex match first, then every literal.
func redactString(s string, pats patterns) string {
	if s == "" {
		return s
	}
	for _, rx := range pats.regexps {
		s = rx.ReplaceAllString(s, redacted)
	}
	for _, lit := range pats.literals {
		if lit == "" {
			continue
		}
		s = strings.ReplaceAll(s, lit, redacted)
	}
	return s
}

type patterns struct {
	regexps  []*regexp.Regexp
	literals []string
}

// parsePatterns splits a comma/semicolon separated list. Entries that
// compile as regular expressions are used as such, the rest as literals.
func parsePatterns(cfg string) patterns {
	var pats patterns
	fields := strings.FieldsFunc(cfg, func(r rune) bool { return r == ',' || r == ';' })
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if rx, err := regexp.Compile(f); err == nil {
			pats.regexps = append(pats.regexps, rx)
		} else {
			pats.literals = append(pats.literals, f)
		}
	}
	return pats
}

func envPatterns() patterns {
	return parsePatterns(os.Getenv(RedactEnv))
}
