package utils

import "testing"

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"us national", "(415) 555-2671", "+14155552671", false},
		{"already e164", "+14155552671", "+14155552671", false},
		{"dashes and spaces", "415 555 2671", "+14155552671", false},
		{"international with code", "+44 20 7946 0958", "+442079460958", false},
		{"garbage", "not-a-number", "", true},
		{"too short", "123", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhoneNumber(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NormalizePhoneNumber(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhoneNumber(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
