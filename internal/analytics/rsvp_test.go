package analytics

import "testing"

func TestParseResponse(t *testing.T) {
	tests := []struct {
		raw    string
		want   Response
		wantOK bool
	}{
		{"available", ResponseAvailable, true},
		{"yes", ResponseAvailable, true},
		{"attending", ResponseAvailable, true},
		{"ATTENDING", ResponseAvailable, true},
		{"YES", ResponseAvailable, true},
		{"  Available  ", ResponseAvailable, true},
		{"unavailable", ResponseUnavailable, true},
		{"no", ResponseUnavailable, true},
		{"not_attending", ResponseUnavailable, true},
		{"maybe", ResponseMaybe, true},
		{"tentative", ResponseMaybe, true},
		{"Tentative", ResponseMaybe, true},
		{"", "", false},
		{"dunno", "", false},
		{"y", "", false},
		{"probably", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseResponse(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseResponse(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
