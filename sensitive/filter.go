package sensitive

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonwraymond/plmcache/observe"
)

const (
	// Filtered replaces the entire value of a sensitive field.
	Filtered = "[FILTERED]"

	// Redacted replaces a matched sensitive substring inside a string.
	Redacted = "[REDACTED]"
)

// Filter detects and scrubs sensitive data.
//
// Contract:
// - Concurrency: safe for concurrent use; all state is read-only after New.
// - Errors: never fails; a pattern that won't compile is skipped.
// - Idempotence: FilterValue(FilterValue(v)) == FilterValue(v).
type Filter struct {
	patterns  []pattern
	logger    observe.Logger
	jwtParser *jwt.Parser
}

// Option customizes a Filter.
type Option func(*Filter)

// WithLogger attaches a structured logger for detection events.
func WithLogger(logger observe.Logger) Option {
	return func(f *Filter) { f.logger = logger }
}

// NewFilter creates a Filter with the full pattern battery.
func NewFilter(opts ...Option) *Filter {
	f := &Filter{
		patterns:  compilePatterns(),
		logger:    observe.NewNoopLogger(),
		jwtParser: jwt.NewParser(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ShouldSkipCaching reports whether a cache key indicates sensitive data
// that must not be cached at all. Matching is case-insensitive.
func (f *Filter) ShouldSkipCaching(key string) bool {
	keyLower := strings.ToLower(key)
	for _, token := range sensitiveKeyTokens {
		if strings.Contains(keyLower, token) {
			f.logger.Debug(context.Background(), "sensitive key token matched",
				observe.Field{Key: "token", Value: token},
				observe.Field{Key: "key", Value: key},
			)
			return true
		}
	}

	// PLM auth command keys
	if strings.Contains(keyLower, "plm") &&
		(strings.Contains(keyLower, "auth") ||
			strings.Contains(keyLower, "login") ||
			strings.Contains(keyLower, "credential")) {
		f.logger.Debug(context.Background(), "plm auth operation key",
			observe.Field{Key: "key", Value: key},
		)
		return true
	}

	return false
}

// FilterValue returns a scrubbed copy of a JSON-shaped value. Sensitive
// field names are replaced wholesale with [FILTERED] before any recursion,
// so a nested object under an "auth" field leaks neither values nor
// structure. Strings run the pattern battery; critical and high severity
// matches become [REDACTED], medium matches are logged only.
func (f *Filter) FilterValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		filtered := make(map[string]any, len(val))
		for key, inner := range val {
			if f.isSensitiveField(key) {
				filtered[key] = Filtered
				f.logger.Warn(context.Background(), "filtered sensitive field",
					observe.Field{Key: "field", Value: key},
				)
			} else {
				filtered[key] = f.FilterValue(inner)
			}
		}
		return filtered
	case []any:
		filtered := make([]any, len(val))
		for i, inner := range val {
			filtered[i] = f.FilterValue(inner)
		}
		return filtered
	case string:
		return f.filterString(val)
	default:
		// Scalars pass through.
		return v
	}
}

// filterString applies the pattern battery to one string.
func (f *Filter) filterString(s string) string {
	filtered := s
	for _, p := range f.patterns {
		if !p.re.MatchString(s) {
			continue
		}

		switch p.severity {
		case SeverityCritical, SeverityHigh:
			if p.name == "JWT_TOKEN" {
				f.logJWTDetection(s, p)
			}
			filtered = p.re.ReplaceAllString(filtered, Redacted)
			f.logger.Warn(context.Background(), "redacted sensitive pattern",
				observe.Field{Key: "pattern", Value: p.name},
				observe.Field{Key: "severity", Value: p.severity.String()},
			)
		case SeverityMedium:
			f.logger.Debug(context.Background(), "detected medium sensitivity pattern",
				observe.Field{Key: "pattern", Value: p.name},
			)
		}
	}
	return filtered
}

// logJWTDetection classifies a JWT-shaped match by attempting a structural
// parse without signature verification. Redaction does not depend on the
// outcome; a string that merely looks like a JWT is redacted all the same.
func (f *Filter) logJWTDetection(s string, p pattern) {
	match := p.re.FindString(s)
	if match == "" {
		return
	}

	if _, _, err := f.jwtParser.ParseUnverified(match, jwt.MapClaims{}); err == nil {
		f.logger.Warn(context.Background(), "confirmed JWT in cache value",
			observe.Field{Key: "pattern", Value: p.name},
		)
	} else {
		f.logger.Debug(context.Background(), "JWT-shaped string failed structural parse",
			observe.Field{Key: "pattern", Value: p.name},
		)
	}
}

// isSensitiveField reports whether a field name marks its value sensitive.
// Exact names are checked first, then keyword containment.
func (f *Filter) isSensitiveField(name string) bool {
	nameLower := strings.ToLower(name)

	if _, ok := sensitiveFieldNames[nameLower]; ok {
		return true
	}

	for _, keyword := range sensitiveFieldKeywords {
		if strings.Contains(nameLower, keyword) {
			return true
		}
	}
	return false
}
