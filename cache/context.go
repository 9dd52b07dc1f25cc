package cache

import "strings"

// Context identifies an isolation scope for cached entries. Two contexts
// that differ in any field never see each other's entries.
type Context struct {
	UserID      string
	OrgID       string
	Environment string
}

// NewContext creates a Context for the given user, org, and environment.
func NewContext(userID, orgID, environment string) Context {
	return Context{
		UserID:      userID,
		OrgID:       orgID,
		Environment: environment,
	}
}

// Prefix returns the sanitized key prefix for this context:
// user:<u>:org:<o>:env:<e>. The prefix prevents accidental collisions
// between scopes; it is not cryptographic isolation.
func (c Context) Prefix() string {
	var b strings.Builder
	b.WriteString("user:")
	b.WriteString(sanitize(c.UserID))
	b.WriteString(":org:")
	b.WriteString(sanitize(c.OrgID))
	b.WriteString(":env:")
	b.WriteString(sanitize(c.Environment))
	return b.String()
}

// fullKey joins the context prefix and the raw key.
func (c Context) fullKey(key string) string {
	return c.Prefix() + ":" + key
}

// sanitize keeps alphanumerics, '-' and '.'; every other character
// collapses to '_'.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}
