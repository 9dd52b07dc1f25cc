package invalidation

import (
	"strings"
	"time"
)

// Rule maps an operation pattern to the cache-key templates it invalidates.
type Rule struct {
	// OperationPattern selects the operations this rule fires for. Exact
	// names, "*", "prefix*", and "*suffix" are supported; interior
	// wildcards are treated as literals.
	OperationPattern string

	// CachePatterns are cache-key templates. {name} placeholders expand
	// from the event parameters; a key containing '*' is applied as a
	// substring invalidation after the asterisks are stripped.
	CachePatterns []string

	// Immediate applies the rule synchronously inside Process. When false
	// the application is deferred by Delay.
	Immediate bool

	// Delay postpones a deferred rule's application.
	Delay time.Duration
}

// OperationMatches reports whether an operation name matches a pattern.
// Matching is exact-then-wildcard: "*" matches everything, a trailing '*'
// matches by prefix, a leading '*' matches by suffix, anything else must be
// equal. Interior wildcards are not expanded.
func OperationMatches(operation, pattern string) bool {
	if pattern == "*" {
		return true
	}

	if strings.Contains(pattern, "*") {
		if strings.HasSuffix(pattern, "*") {
			return strings.HasPrefix(operation, strings.TrimRight(pattern, "*"))
		}
		if strings.HasPrefix(pattern, "*") {
			return strings.HasSuffix(operation, strings.TrimLeft(pattern, "*"))
		}
	}

	return operation == pattern
}

// expandTemplate substitutes {name} placeholders from params. Placeholders
// without a matching parameter stay literal; the caller treats the expanded
// key as-is, which is benign (usually no entry matches the literal form).
func expandTemplate(template string, params map[string]string) string {
	key := template
	for name, value := range params {
		key = strings.ReplaceAll(key, "{"+name+"}", value)
	}
	return key
}

// hasUnexpandedPlaceholder reports whether an expanded key still carries a
// {name} placeholder.
func hasUnexpandedPlaceholder(key string) bool {
	open := strings.Index(key, "{")
	if open < 0 {
		return false
	}
	return strings.Index(key[open:], "}") > 0
}

// defaultRules is the built-in registry for common PLM operations.
func defaultRules() map[string][]Rule {
	rules := map[string][]Rule{
		"plm.pipeline.create": {{
			OperationPattern: "plm.pipeline.create",
			CachePatterns:    []string{"pipelines:list", "pipeline:*"},
			Immediate:        true,
		}},
		"plm.pipeline.update": {{
			OperationPattern: "plm.pipeline.update",
			CachePatterns: []string{
				"pipeline:def:{pipeline_id}",
				"pipeline:runs:{pipeline_id}",
				"pipelines:list",
			},
			Immediate: true,
		}},
		"plm.pipeline.delete": {{
			OperationPattern: "plm.pipeline.delete",
			CachePatterns:    []string{"pipeline:*:{pipeline_id}", "pipelines:list"},
			Immediate:        true,
		}},
		"plm.run.start": {{
			OperationPattern: "plm.run.start",
			CachePatterns:    []string{"pipeline:runs:{pipeline_id}", "runs:list", "run:*"},
			Immediate:        true,
		}},
		"plm.run.complete": {{
			OperationPattern: "plm.run.complete",
			CachePatterns:    []string{"run:details:{run_id}", "pipeline:runs:{pipeline_id}", "runs:list"},
			Immediate:        true,
		}},
		"plm.task.*": {{
			OperationPattern: "plm.task.*",
			CachePatterns:    []string{"tasks:list", "task:*"},
			Immediate:        true,
		}},
		"plm.resource.*": {{
			OperationPattern: "plm.resource.*",
			CachePatterns:    []string{"pipeline:resources", "resource:*"},
			Immediate:        true,
		}},
	}
	return rules
}
