package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ecspl/league-api/internal/models"
)

func TestClassifyOutlook(t *testing.T) {
	// Default thresholds doubled for two sides: 26 / 24 / 20 / 16.
	tests := []struct {
		total float64
		want  Outlook
	}{
		{30, OutlookExcellent},
		{26, OutlookExcellent},
		{25.9, OutlookGood},
		{24, OutlookGood},
		{23.9, OutlookAdequate},
		{20, OutlookAdequate},
		{19.9, OutlookConcerning},
		{16, OutlookConcerning},
		{15.9, OutlookCritical},
		{0, OutlookCritical},
	}
	for _, tt := range tests {
		got := ClassifyOutlook(tt.total, DefaultMinPlayers, DefaultIdealPlayers)
		if got != tt.want {
			t.Errorf("ClassifyOutlook(%v, 8, 13) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestInsightsReportSingleMatch(t *testing.T) {
	st := newFakeStore()
	home := models.Team{ID: uuid.New(), Name: "Thunder FC"}
	away := models.Team{ID: uuid.New(), Name: "Rovers"}
	match := upcomingMatch(home, away, 1)
	st.matches = []models.Match{match}

	// Home projects 10, away 8 → total 18 → concerning, urgent (1 day out).
	fillRoster(st, match.ID, home.ID, 12,
		"yes", "yes", "yes", "yes", "yes", "yes", "yes", "yes", "yes", "maybe", "maybe")
	fillRoster(st, match.ID, away.ID, 12,
		"yes", "yes", "yes", "yes", "yes", "yes", "yes", "yes")

	analyzer := NewInsightsAnalyzer(st, clockwork.NewFakeClockAt(testNow))
	report, err := analyzer.Report(context.Background(), InsightsFilter{MatchID: &match.ID})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(report.MatchInsights) != 1 {
		t.Fatalf("got %d insights, want 1", len(report.MatchInsights))
	}

	insight := report.MatchInsights[0]
	if insight.MatchStatus != "urgent" {
		t.Errorf("MatchStatus = %q, want urgent", insight.MatchStatus)
	}
	if insight.IsCompleted {
		t.Error("unplayed match should not be completed")
	}
	if insight.HomeTeamAnalysis == nil || insight.AwayTeamAnalysis == nil {
		t.Fatal("both side analyses should be present")
	}
	if insight.OverallInsights.TotalExpectedAttendance != 18 {
		t.Errorf("TotalExpectedAttendance = %v, want 18", insight.OverallInsights.TotalExpectedAttendance)
	}
	if insight.OverallInsights.AttendanceOutlook != OutlookConcerning {
		t.Errorf("AttendanceOutlook = %q, want concerning", insight.OverallInsights.AttendanceOutlook)
	}
	// 1 silent at home, 4 silent away.
	if insight.OverallInsights.TotalAwaitingResponse != 5 {
		t.Errorf("TotalAwaitingResponse = %d, want 5", insight.OverallInsights.TotalAwaitingResponse)
	}
	if report.Summary.MatchesNeedingAttention != 1 {
		t.Errorf("MatchesNeedingAttention = %d, want 1", report.Summary.MatchesNeedingAttention)
	}
}

func TestInsightsReportMatchNotFound(t *testing.T) {
	analyzer := NewInsightsAnalyzer(newFakeStore(), clockwork.NewFakeClockAt(testNow))
	missing := uuid.New()
	_, err := analyzer.Report(context.Background(), InsightsFilter{MatchID: &missing})
	if !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("err = %v, want ErrMatchNotFound", err)
	}
}

func TestInsightsReportMatchStatus(t *testing.T) {
	score := 2
	st := newFakeStore()
	teamA := models.Team{ID: uuid.New(), Name: "A"}
	teamB := models.Team{ID: uuid.New(), Name: "B"}

	completed := upcomingMatch(teamA, teamB, 1)
	completed.HomeScore = &score
	urgent := upcomingMatch(teamA, teamB, 2)
	upcoming := upcomingMatch(teamA, teamB, 6)
	future := upcomingMatch(teamA, teamB, 12)
	st.matches = []models.Match{completed, urgent, upcoming, future}

	analyzer := NewInsightsAnalyzer(st, clockwork.NewFakeClockAt(testNow))
	report, err := analyzer.Report(context.Background(), InsightsFilter{
		DaysAhead:         14,
		IncludeHistorical: true,
	})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(report.MatchInsights) != 4 {
		t.Fatalf("got %d insights, want 4", len(report.MatchInsights))
	}

	want := map[uuid.UUID]string{
		completed.ID: "completed",
		urgent.ID:    "urgent",
		upcoming.ID:  "upcoming",
		future.ID:    "future",
	}
	for _, insight := range report.MatchInsights {
		if insight.MatchStatus != want[insight.MatchID] {
			t.Errorf("match %s: status = %q, want %q", insight.MatchID, insight.MatchStatus, want[insight.MatchID])
		}
	}
}

func TestInsightsReportExcludesPlayedByDefault(t *testing.T) {
	score := 1
	st := newFakeStore()
	teamA := models.Team{ID: uuid.New(), Name: "A"}
	teamB := models.Team{ID: uuid.New(), Name: "B"}
	played := upcomingMatch(teamA, teamB, 1)
	played.HomeScore = &score
	pending := upcomingMatch(teamA, teamB, 3)
	st.matches = []models.Match{played, pending}

	analyzer := NewInsightsAnalyzer(st, clockwork.NewFakeClockAt(testNow))
	report, err := analyzer.Report(context.Background(), InsightsFilter{})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(report.MatchInsights) != 1 || report.MatchInsights[0].MatchID != pending.ID {
		t.Errorf("played match should be excluded without include_historical")
	}
}
