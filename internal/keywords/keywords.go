// Package keywords holds the PostgreSQL reserved-word table and the
// identifier-quoting rules built on it.
package keywords

import "strings"

// Reserved words that force quoting when used as identifiers.
// Based on PostgreSQL documentation: https://www.postgresql.org/docs/current/sql-keywords-appendix.html
var reservedWords = map[string]bool{
	"all": true, "analyse": true, "analyze": true, "and": true, "any": true,
	"array": true, "as": true, "asc": true, "asymmetric": true, "both": true,
	"case": true, "cast": true, "check": true, "collate": true, "column": true,
	"constraint": true, "create": true, "current_catalog": true, "current_date": true,
	"current_role": true, "current_schema": true, "current_time": true,
	"current_timestamp": true, "current_user": true, "default": true,
	"deferrable": true, "desc": true, "distinct": true, "do": true,
	"else": true, "end": true, "except": true, "false": true, "fetch": true,
	"for": true, "foreign": true, "from": true, "grant": true, "group": true,
	"having": true, "in": true, "initially": true, "intersect": true,
	"into": true, "lateral": true, "leading": true, "limit": true,
	"localtime": true, "localtimestamp": true, "not": true, "null": true,
	"offset": true, "on": true, "only": true, "or": true, "order": true,
	"placing": true, "primary": true, "references": true, "returning": true,
	"select": true, "session_user": true, "some": true, "symmetric": true,
	"table": true, "then": true, "to": true, "trailing": true, "true": true,
	"union": true, "unique": true, "user": true, "using": true, "variadic": true,
	"when": true, "where": true, "window": true, "with": true,
	// Additional commonly problematic keywords
	"authorization": true, "between": true, "binary": true, "cross": true,
	"freeze": true, "full": true, "ilike": true, "inner": true, "is": true,
	"isnull": true, "join": true, "left": true, "like": true, "natural": true,
	"notnull": true, "outer": true, "overlaps": true, "right": true,
	"similar": true, "verbose": true,
}

// IsReserved reports whether the word is a reserved keyword
// (case-insensitive).
func IsReserved(word string) bool {
	return reservedWords[strings.ToLower(word)]
}

// NeedsQuoting reports whether an identifier must be double-quoted: it is a
// reserved word, or it contains anything outside lowercase word characters,
// or it starts with a digit.
func NeedsQuoting(identifier string) bool {
	if len(identifier) == 0 {
		return false
	}

	if IsReserved(identifier) {
		return true
	}

	firstChar := identifier[0]
	if (firstChar < 'a' || firstChar > 'z') && firstChar != '_' {
		return true
	}

	for i := 1; i < len(identifier); i++ {
		ch := identifier[i]
		if (ch < 'a' || ch > 'z') && (ch < '0' || ch > '9') && ch != '_' {
			return true
		}
	}

	return false
}

// Quote double-quotes an identifier unconditionally, doubling any embedded
// quotes.
func Quote(identifier string) string {
	escaped := strings.ReplaceAll(identifier, `"`, `""`)
	return `"` + escaped + `"`
}

// QuoteIfNeeded quotes an identifier only when NeedsQuoting says it must be.
func QuoteIfNeeded(identifier string) string {
	if NeedsQuoting(identifier) {
		return Quote(identifier)
	}
	return identifier
}

// QuoteQualified renders a schema-qualified identifier, quoting each part
// independently.
func QuoteQualified(schema, identifier string) string {
	if schema != "" {
		return QuoteIfNeeded(schema) + "." + QuoteIfNeeded(identifier)
	}
	return QuoteIfNeeded(identifier)
}
