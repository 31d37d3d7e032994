package errors

import (
	"strings"
	"testing"
)

func TestValidateAirportCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"iata", "JFK", false},
		{"icao", "KJFK", false},
		{"lowercase", "lax", false},
		{"digits", "A12", false},

		{"empty", "", true},
		{"too long", "ABCDEFGHIJ", true},
		{"space", "JF K", true},
		{"null byte", "JF\x00", true},
		{"newline", "JFK\n", true},
		{"slash", "JF/K", true},
		{"openflights null", `\N`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAirportCode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAirportCode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateAirportCode(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateTopK(t *testing.T) {
	tests := []struct {
		k       int
		wantErr bool
	}{
		{0, false},
		{10, false},
		{MaxTopK, false},
		{-1, true},
		{MaxTopK + 1, true},
	}

	for _, tt := range tests {
		err := ValidateTopK(tt.k)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTopK(%d) error = %v, wantErr %v", tt.k, err, tt.wantErr)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/routes.csv", false},
		{"absolute", "/srv/data/airports.csv", false},
		{"parent dir", "../airports.csv", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "routes\x00.csv", true},
		{"control char", "routes\x01.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColumnName(t *testing.T) {
	if err := ValidateColumnName("Source airport"); err != nil {
		t.Errorf("valid column rejected: %v", err)
	}
	if err := ValidateColumnName("   "); err == nil {
		t.Error("blank column should be rejected")
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		schemes []string
		wantErr bool
	}{
		{"http default", "http://localhost:8080", nil, false},
		{"https default", "https://example.com", nil, false},
		{"redis", "redis://localhost:6379/0", []string{"redis", "rediss"}, false},
		{"mongo srv", "mongodb+srv://cluster.example.net", []string{"mongodb", "mongodb+srv"}, false},

		{"empty", "", nil, true},
		{"wrong scheme", "ftp://example.com", nil, true},
		{"no scheme", "localhost:6379", []string{"redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url, tt.schemes...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
