package config

import (
	"testing"
)

func TestCreateEngineConfig(t *testing.T) {
	tests := []struct {
		name           string
		lookaheadLines int
		expected       int
		wantError      bool
	}{
		{"zero keeps the default", 0, 5, false},
		{"override applies", 8, 8, false},
		{"negative rejected", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := CreateEngineConfig(tt.lookaheadLines)
			if (err != nil) != tt.wantError {
				t.Fatalf("CreateEngineConfig() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil {
				return
			}
			if config.Reconstruct.LookaheadLines != tt.expected {
				t.Errorf("LookaheadLines = %d, want %d", config.Reconstruct.LookaheadLines, tt.expected)
			}
		})
	}
}

func TestCreateEngine(t *testing.T) {
	config, err := CreateEngineConfig(0)
	if err != nil {
		t.Fatalf("CreateEngineConfig() error = %v", err)
	}

	if _, err := CreateEngine(config); err != nil {
		t.Errorf("CreateEngine() error = %v", err)
	}
}

func TestCreateReportGenerator(t *testing.T) {
	for _, format := range []string{"json", "csv", "console"} {
		t.Run(format, func(t *testing.T) {
			if _, err := CreateReportGenerator(format); err != nil {
				t.Errorf("CreateReportGenerator(%q) error = %v", format, err)
			}
		})
	}

	if _, err := CreateReportGenerator("xml"); err == nil {
		t.Error("CreateReportGenerator(\"xml\") should fail")
	}
}
