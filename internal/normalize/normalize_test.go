package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"slash day first", "26/10/2025", "2025-10-26", true},
		{"dash day first", "26-10-2025", "2025-10-26", true},
		{"iso form", "2025-10-26", "2025-10-26", true},
		{"two digit year slash", "26/10/25", "2025-10-26", true},
		{"two digit year dash", "26-10-25", "2025-10-26", true},
		{"slash year first", "2025/10/26", "2025-10-26", true},
		{"ambiguous triple resolves day first", "06-02-2025", "2025-02-06", true},
		{"two digit year lifted past 2000", "01-01-99", "2099-01-01", true},
		{"surrounding whitespace", "  26/10/2025  ", "2025-10-26", true},
		{"empty", "", "", false},
		{"not a date", "Pay Bill Online", "", false},
		{"month out of range", "26-13-2025", "", false},
		{"time only", "14:53:26", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if formatted := FormatDate(got); formatted != tt.expected {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, formatted, tt.expected)
			}
		})
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	// Parsing then formatting then re-parsing must be a fixpoint.
	inputs := []string{"26/10/2025", "06-02-25", "2024-12-31"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, ok := ParseDate(input)
			if !ok {
				t.Fatalf("ParseDate(%q) failed", input)
			}

			second, ok := ParseDate(FormatDate(first))
			if !ok {
				t.Fatalf("ParseDate(FormatDate(...)) failed for %q", input)
			}

			if !first.Equal(second) {
				t.Errorf("round trip changed %q: %s vs %s", input, first, second)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "500.00", "500"},
		{"thousands separators", "12,000.00", "12000"},
		{"large with separators", "1,560,100.00", "1560100"},
		{"currency prefix stripped", "KES 1,234.50", "1234.5"},
		{"negative", "-250.00", "-250"},
		{"integer", "1500", "1500"},
		{"empty", "", "0"},
		{"placeholder dash collapses to zero", "n/a", "0"},
		{"letters only", "Completed", "0"},
		{"multiple dots unparseable", "1.2.3", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			want, err := decimal.NewFromString(tt.expected)
			if err != nil {
				t.Fatalf("bad expected value %q: %v", tt.expected, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestLooksNumeric(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"12,000.00", true},
		{"500", true},
		{"-250.00", true},
		{"1,560,100.00", true},
		{"KES", false},
		{"26-10-2025", false},
		{"TJQ8M8C3P9", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LooksNumeric(tt.input); got != tt.expected {
				t.Errorf("LooksNumeric(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"dash compound", "26-10-2025 14:53:26", "2025-10-26", true},
		{"slash compound", "26/10/2025 09:01:00", "2025-10-26", true},
		{"embedded in cell text", "done at 26-10-2025 14:53:26 UTC", "2025-10-26", true},
		{"date without time", "26-10-2025", "", false},
		{"time without date", "14:53:26", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDateTime(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDateTime(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && FormatDate(got) != tt.expected {
				t.Errorf("ParseDateTime(%q) = %s, want %s", tt.input, FormatDate(got), tt.expected)
			}
		})
	}
}

func TestParseDateTime_DiscardsTimePortion(t *testing.T) {
	got, ok := ParseDateTime("26-10-2025 23:59:59")
	if !ok {
		t.Fatal("ParseDateTime failed")
	}

	want := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected midnight date %s, got %s", want, got)
	}
}

func TestReceiptCodePatterns(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"TJQ8M8C3P9", true},
		{"SAB12CD34EF5", true},
		{"A12345678", true},
		{"TOOSHORT", false},
		{"lowercase12", false},
		{"1STARTSWITHDIGIT", false},
		{"A123456789012345", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ReceiptCodeToken.MatchString(tt.input); got != tt.expected {
				t.Errorf("ReceiptCodeToken(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
