package analytics

import "testing"

func TestExpectedAttendance(t *testing.T) {
	tests := []struct {
		name      string
		available int
		maybe     int
		want      float64
	}{
		{"zero everything", 0, 0, 0},
		{"available only", 7, 0, 7},
		{"maybe only", 0, 3, 1.5},
		{"mixed", 9, 2, 10},
		{"odd maybe count", 5, 3, 6.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpectedAttendance(tt.available, tt.maybe); got != tt.want {
				t.Errorf("ExpectedAttendance(%d, %d) = %v, want %v", tt.available, tt.maybe, got, tt.want)
			}
		})
	}
}

func TestExpectedAttendanceWithFactor(t *testing.T) {
	if got := ExpectedAttendanceWithFactor(4, 4, 0.25); got != 5 {
		t.Errorf("ExpectedAttendanceWithFactor(4, 4, 0.25) = %v, want 5", got)
	}
	if got := ExpectedAttendanceWithFactor(4, 4, 1); got != 8 {
		t.Errorf("ExpectedAttendanceWithFactor(4, 4, 1) = %v, want 8", got)
	}
}

func TestClassifyUrgency(t *testing.T) {
	// Default 8v8 thresholds: min 8, ideal 13.
	tests := []struct {
		expected float64
		want     Urgency
	}{
		{0, UrgencyCritical},
		{7.9, UrgencyCritical},
		{8.0, UrgencyHigh},
		{9.9, UrgencyHigh},
		{10.0, UrgencyMedium},
		{11.9, UrgencyMedium},
		{12.0, UrgencyLow},
		{12.9, UrgencyLow},
		{13.0, UrgencyNone},
		{20, UrgencyNone},
	}
	for _, tt := range tests {
		got := ClassifyUrgency(tt.expected, DefaultMinPlayers, DefaultIdealPlayers)
		if got != tt.want {
			t.Errorf("ClassifyUrgency(%v, 8, 13) = %q, want %q", tt.expected, got, tt.want)
		}
	}
}

func TestClassifyUrgencyCustomThresholds(t *testing.T) {
	// 11v11: min 11, ideal 16.
	tests := []struct {
		expected float64
		want     Urgency
	}{
		{10.5, UrgencyCritical},
		{11, UrgencyHigh},
		{13, UrgencyMedium},
		{15, UrgencyLow},
		{16, UrgencyNone},
	}
	for _, tt := range tests {
		got := ClassifyUrgency(tt.expected, 11, 16)
		if got != tt.want {
			t.Errorf("ClassifyUrgency(%v, 11, 16) = %q, want %q", tt.expected, got, tt.want)
		}
	}
}

func TestUrgencyRankOrdering(t *testing.T) {
	order := []Urgency{UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow, UrgencyNone}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Errorf("Rank(%q) = %d should be less than Rank(%q) = %d",
				order[i-1], order[i-1].Rank(), order[i], order[i].Rank())
		}
	}
	if Urgency("bogus").Rank() <= UrgencyNone.Rank() {
		t.Error("unknown urgency should rank after none")
	}
}
