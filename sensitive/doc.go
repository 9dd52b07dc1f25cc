// Package sensitive keeps credentials out of the cache. It gates cache keys
// that indicate auth material and scrubs sensitive fields and substrings
// from values before they are stored.
package sensitive
