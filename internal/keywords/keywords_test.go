package keywords

import "testing"

func TestNeedsQuoting(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		expected   bool
	}{
		{"simple lowercase", "users", false},
		{"with underscore", "user_accounts", false},
		{"with digits", "table2", false},
		{"leading underscore", "_private", false},
		{"empty string", "", false},
		{"reserved word", "select", true},
		{"reserved word uppercase", "SELECT", true},
		{"reserved word mixed case", "Order", true},
		{"contains uppercase", "Users", true},
		{"starts with digit", "2fast", true},
		{"contains space", "my table", true},
		{"contains dash", "my-table", true},
		{"contains quote", `tab"le`, true},
		{"non-reserved keyword-ish", "name", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsQuoting(tt.identifier); got != tt.expected {
				t.Errorf("NeedsQuoting(%q) = %v, want %v", tt.identifier, got, tt.expected)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		identifier string
		expected   string
	}{
		{"users", `"users"`},
		{`tab"le`, `"tab""le"`},
		{"", `""`},
	}

	for _, tt := range tests {
		if got := Quote(tt.identifier); got != tt.expected {
			t.Errorf("Quote(%q) = %s, want %s", tt.identifier, got, tt.expected)
		}
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	tests := []struct {
		identifier string
		expected   string
	}{
		{"users", "users"},
		{"select", `"select"`},
		{"My Table", `"My Table"`},
	}

	for _, tt := range tests {
		if got := QuoteIfNeeded(tt.identifier); got != tt.expected {
			t.Errorf("QuoteIfNeeded(%q) = %s, want %s", tt.identifier, got, tt.expected)
		}
	}
}

func TestQuoteQualified(t *testing.T) {
	tests := []struct {
		schema     string
		identifier string
		expected   string
	}{
		{"", "users", "users"},
		{"public", "users", "public.users"},
		{"Weird Schema", "order", `"Weird Schema"."order"`},
	}

	for _, tt := range tests {
		if got := QuoteQualified(tt.schema, tt.identifier); got != tt.expected {
			t.Errorf("QuoteQualified(%q, %q) = %s, want %s", tt.schema, tt.identifier, got, tt.expected)
		}
	}
}
