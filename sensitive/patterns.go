package sensitive

import "regexp"

// Severity grades a detection pattern.
type Severity int

const (
	// SeverityCritical marks material that must never be cached (tokens,
	// passwords). Matches are redacted.
	SeverityCritical Severity = iota

	// SeverityHigh marks material that should not be cached (API keys,
	// secrets). Matches are redacted.
	SeverityHigh

	// SeverityMedium marks material worth noting (system paths). Matches
	// are logged but left intact.
	SeverityMedium
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	default:
		return "unknown"
	}
}

// pattern is one compiled detection rule.
type pattern struct {
	name     string
	severity Severity
	re       *regexp.Regexp
}

// patternSpec is the uncompiled form. Compilation failures skip the
// offending pattern; the rest stay active.
type patternSpec struct {
	name     string
	severity Severity
	expr     string
}

var patternSpecs = []patternSpec{
	{"JWT_TOKEN", SeverityCritical,
		`eyJ[A-Za-z0-9+/=]+\.eyJ[A-Za-z0-9+/=]+\.[A-Za-z0-9+/=_-]+`},
	{"API_KEY", SeverityCritical,
		`(?i)(api[_-]?key|apikey)[=:\s]+['"]?([a-zA-Z0-9_-]{20,})['"]?`},
	{"AWS_ACCESS_KEY", SeverityCritical,
		`AKIA[0-9A-Z]{16}`},
	{"BEARER_TOKEN", SeverityCritical,
		`(?i)bearer\s+[a-zA-Z0-9_-]{8,}`},
	{"BASIC_AUTH", SeverityCritical,
		`(?i)basic\s+[a-zA-Z0-9+/=]{20,}`},
	{"PASSWORD", SeverityCritical,
		`(?i)(password|passwd|pwd)[=:\s]+['"]?([^\s'"]{8,})['"]?`},
	{"PRIVATE_KEY", SeverityCritical,
		`-----BEGIN [A-Z ]*PRIVATE KEY-----`},
	{"GENERIC_TOKEN", SeverityHigh,
		`(?i)(token|secret)[=:\s]+['"]?([a-zA-Z0-9_-]{16,})['"]?`},
	{"DB_CONNECTION", SeverityHigh,
		`(?i)(mongodb|mysql|postgresql|postgres|redis)://[^\s'"]+`},
	{"SYSTEM_PATH", SeverityMedium,
		`/etc/[a-zA-Z0-9_/-]+|/var/[a-zA-Z0-9_/-]+|C:\\[a-zA-Z0-9_\\-]+`},
}

func compilePatterns() []pattern {
	patterns := make([]pattern, 0, len(patternSpecs))
	for _, spec := range patternSpecs {
		re, err := regexp.Compile(spec.expr)
		if err != nil {
			// A bad pattern disables itself, not the filter.
			continue
		}
		patterns = append(patterns, pattern{
			name:     spec.name,
			severity: spec.severity,
			re:       re,
		})
	}
	return patterns
}

// Cache-key tokens that indicate auth material. Matching is case-insensitive.
var sensitiveKeyTokens = []string{
	"auth", "token", "secret", "password", "credential", "login",
	"session", "jwt", "oauth", "api_key", "private_key", "cert",
	"certificate", "keystore", "vault", "encryption",
}

// Field names redacted outright when they appear as map keys.
var sensitiveFieldNames = map[string]struct{}{
	// Authentication fields
	"password": {}, "passwd": {}, "pwd": {}, "secret": {}, "token": {},
	"auth_token": {}, "access_token": {}, "refresh_token": {},
	"api_key": {}, "apikey": {}, "auth_key": {},
	"private_key": {}, "public_key": {}, "key": {},
	"certificate": {}, "cert": {},
	// Session and auth
	"session": {}, "session_id": {}, "session_token": {}, "csrf_token": {},
	"authorization": {}, "credentials": {}, "credential": {},
	// Encryption and security
	"encryption_key": {}, "decrypt_key": {}, "salt": {}, "hash": {},
	"signature": {}, "keystore": {}, "truststore": {}, "vault_token": {},
	// Database credentials. Connection-string fields (database_url and
	// friends) are deliberately absent: their values go through the pattern
	// battery, which redacts the embedded credentials while keeping the
	// field itself visible.
	"db_password": {}, "db_user": {}, "redis_password": {},
	// Personal information
	"ssn": {}, "social_security": {}, "credit_card": {}, "bank_account": {},
	"email_password": {}, "phone": {}, "address": {},
	// Cloud provider secrets
	"aws_access_key": {}, "aws_secret_key": {}, "azure_key": {},
	"gcp_key": {}, "service_account_key": {}, "client_secret": {},
	"client_id": {},
}

// Keywords that mark a field name sensitive by substring containment.
var sensitiveFieldKeywords = []string{
	"password", "secret", "token", "key", "auth", "credential",
	"private", "confidential", "sensitive", "encrypted", "secure",
	"cert", "signature", "hash", "vault", "keystore",
}
