package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ecspl/league-api/internal/models"
)

func TestClassifyReliability(t *testing.T) {
	tests := []struct {
		response   float64
		attendance float64
		want       Reliability
	}{
		{100, 100, HighlyReliable},
		{95, 85, HighlyReliable},
		{90, 80, HighlyReliable},
		{90, 79.9, Reliable}, // attendance just under the top band
		{70, 60, Reliable},
		{69.9, 60, Inconsistent}, // response just under
		{50, 0, Inconsistent},    // response alone reaches the middle band
		{0, 40, Inconsistent},    // attendance alone reaches it too
		{49.9, 39.9, Unreliable},
		{30, 20, Unreliable},
		{0, 0, Unreliable},
	}
	for _, tt := range tests {
		got := ClassifyReliability(tt.response, tt.attendance)
		if got != tt.want {
			t.Errorf("ClassifyReliability(%v, %v) = %q, want %q", tt.response, tt.attendance, got, tt.want)
		}
	}
}

// pastMatch schedules a played-or-not match for a team daysAgo days back.
func pastMatch(team models.Team, daysAgo int) models.Match {
	return models.Match{
		ID:         uuid.New(),
		Date:       testNow.Truncate(24 * time.Hour).AddDate(0, 0, -daysAgo),
		HomeTeamID: team.ID,
		HomeTeam:   team,
		AwayTeamID: uuid.New(),
	}
}

func TestReliabilityReportProfiles(t *testing.T) {
	st := newFakeStore()
	team := models.Team{ID: uuid.New(), Name: "Thunder FC"}
	player := models.Player{ID: uuid.New(), Name: "Sam", Teams: []models.Team{team}}
	st.players = []models.Player{player}

	// Ten matches in the 90-day window, five of them inside the last 30 days.
	daysAgo := []int{5, 10, 15, 20, 25, 35, 45, 55, 65, 75}
	for _, d := range daysAgo {
		st.matches = append(st.matches, pastMatch(team, d))
	}

	// Responds to 8 of 10: available for the 7 most recent, unavailable once,
	// silent on the last two.
	for i := 0; i < 7; i++ {
		m := st.matches[i]
		st.availability[m.ID] = append(st.availability[m.ID], rsvp(m.ID, player.ID, "yes"))
	}
	m8 := st.matches[7]
	st.availability[m8.ID] = append(st.availability[m8.ID], rsvp(m8.ID, player.ID, "no"))

	scorer := NewReliabilityScorer(st, clockwork.NewFakeClockAt(testNow))
	report, err := scorer.Report(context.Background(), PatternFilter{IncludePredictions: true})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(report.PlayerPatterns) != 1 {
		t.Fatalf("got %d patterns, want 1", len(report.PlayerPatterns))
	}

	p := report.PlayerPatterns[0]
	if p.AnalysisPeriod.TotalMatchesInPeriod != 10 {
		t.Errorf("TotalMatchesInPeriod = %d, want 10", p.AnalysisPeriod.TotalMatchesInPeriod)
	}
	if p.AnalysisPeriod.MatchesRespondedTo != 8 {
		t.Errorf("MatchesRespondedTo = %d, want 8", p.AnalysisPeriod.MatchesRespondedTo)
	}
	if p.AnalysisPeriod.RecentMatches30Days != 5 {
		t.Errorf("RecentMatches30Days = %d, want 5", p.AnalysisPeriod.RecentMatches30Days)
	}
	if p.AttendancePatterns.ResponseRatePercent != 80 {
		t.Errorf("ResponseRatePercent = %v, want 80", p.AttendancePatterns.ResponseRatePercent)
	}
	if p.AttendancePatterns.AttendanceRatePercent != 70 {
		t.Errorf("AttendanceRatePercent = %v, want 70", p.AttendancePatterns.AttendanceRatePercent)
	}
	if p.AttendancePatterns.NoResponseCount != 2 {
		t.Errorf("NoResponseCount = %d, want 2", p.AttendancePatterns.NoResponseCount)
	}
	if p.ReliabilityScore != Reliable {
		t.Errorf("ReliabilityScore = %q, want reliable", p.ReliabilityScore)
	}

	// All five recent matches were answered "available" → rate 100, which is
	// more than 5 points above the 70% overall.
	if p.Predictions == nil {
		t.Fatal("Predictions should be present with 8 responses")
	}
	if p.Predictions.PredictedAttendanceRate != 100 {
		t.Errorf("PredictedAttendanceRate = %v, want 100", p.Predictions.PredictedAttendanceRate)
	}
	if p.Predictions.Trend != "improving" {
		t.Errorf("Trend = %q, want improving", p.Predictions.Trend)
	}
	if p.Predictions.Confidence != "high" {
		t.Errorf("Confidence = %q, want high (5 recent matches)", p.Predictions.Confidence)
	}

	totalByDay := 0
	for _, b := range p.DayOfWeekBreakdown {
		totalByDay += b.Matches
	}
	if totalByDay != 10 {
		t.Errorf("day-of-week matches sum to %d, want 10", totalByDay)
	}

	if report.Summary.TotalPlayersAnalyzed != 1 || report.Summary.ReliablePlayers != 1 {
		t.Errorf("summary wrong: %+v", report.Summary)
	}
}

func TestReliabilityReportPredictionGating(t *testing.T) {
	st := newFakeStore()
	team := models.Team{ID: uuid.New(), Name: "Rovers"}
	player := models.Player{ID: uuid.New(), Name: "Alex", Teams: []models.Team{team}}
	st.players = []models.Player{player}

	// Six matches but only four responses — below the five-response floor.
	for _, d := range []int{5, 15, 25, 40, 55, 70} {
		st.matches = append(st.matches, pastMatch(team, d))
	}
	for i := 0; i < 4; i++ {
		m := st.matches[i]
		st.availability[m.ID] = append(st.availability[m.ID], rsvp(m.ID, player.ID, "yes"))
	}

	scorer := NewReliabilityScorer(st, clockwork.NewFakeClockAt(testNow))
	report, err := scorer.Report(context.Background(), PatternFilter{IncludePredictions: true})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(report.PlayerPatterns) != 1 {
		t.Fatalf("got %d patterns, want 1", len(report.PlayerPatterns))
	}

	p := report.PlayerPatterns[0]
	if p.Predictions != nil {
		t.Error("Predictions should be omitted below the response floor")
	}
	if len(p.DayOfWeekBreakdown) != 0 {
		t.Error("DayOfWeekBreakdown should be empty below the response floor")
	}
}

func TestReliabilityReportDecliningTrend(t *testing.T) {
	st := newFakeStore()
	team := models.Team{ID: uuid.New(), Name: "Comets"}
	player := models.Player{ID: uuid.New(), Name: "Jo", Teams: []models.Team{team}}
	st.players = []models.Player{player}

	// Five older matches all attended, five recent all declined:
	// overall 50%, recent 0% → declining, high confidence.
	recent := []int{5, 10, 15, 20, 25}
	older := []int{40, 50, 60, 70, 80}
	for _, d := range append(append([]int{}, recent...), older...) {
		st.matches = append(st.matches, pastMatch(team, d))
	}
	for i, m := range st.matches {
		resp := "no"
		if i >= len(recent) {
			resp = "yes"
		}
		st.availability[m.ID] = append(st.availability[m.ID], rsvp(m.ID, player.ID, resp))
	}

	scorer := NewReliabilityScorer(st, clockwork.NewFakeClockAt(testNow))
	report, err := scorer.Report(context.Background(), PatternFilter{IncludePredictions: true})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	p := report.PlayerPatterns[0]
	if p.Predictions == nil {
		t.Fatal("Predictions should be present")
	}
	if p.Predictions.Trend != "declining" {
		t.Errorf("Trend = %q, want declining", p.Predictions.Trend)
	}
	if report.Summary.PlayersWithDecliningTrend != 1 {
		t.Errorf("PlayersWithDecliningTrend = %d, want 1", report.Summary.PlayersWithDecliningTrend)
	}
}

func TestReliabilityReportExcludesPlayersWithoutMatches(t *testing.T) {
	st := newFakeStore()
	activeTeam := models.Team{ID: uuid.New(), Name: "Active"}
	idleTeam := models.Team{ID: uuid.New(), Name: "Idle"}
	active := models.Player{ID: uuid.New(), Name: "Busy", Teams: []models.Team{activeTeam}}
	idle := models.Player{ID: uuid.New(), Name: "Quiet", Teams: []models.Team{idleTeam}}
	st.players = []models.Player{active, idle}

	m := pastMatch(activeTeam, 10)
	st.matches = []models.Match{m}
	st.availability[m.ID] = []models.Availability{rsvp(m.ID, active.ID, "yes")}

	scorer := NewReliabilityScorer(st, clockwork.NewFakeClockAt(testNow))
	report, err := scorer.Report(context.Background(), PatternFilter{})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(report.PlayerPatterns) != 1 {
		t.Fatalf("got %d patterns, want 1 (idle player excluded)", len(report.PlayerPatterns))
	}
	if report.PlayerPatterns[0].PlayerID != active.ID {
		t.Error("wrong player profiled")
	}
}

func TestReliabilityReportSortsByTier(t *testing.T) {
	st := newFakeStore()
	team := models.Team{ID: uuid.New(), Name: "Mixed"}
	good := models.Player{ID: uuid.New(), Name: "Good", Teams: []models.Team{team}}
	bad := models.Player{ID: uuid.New(), Name: "Bad", Teams: []models.Team{team}}
	st.players = []models.Player{bad, good} // inserted worst-first on purpose

	for _, d := range []int{5, 15, 25, 40, 55} {
		st.matches = append(st.matches, pastMatch(team, d))
	}
	for _, m := range st.matches {
		st.availability[m.ID] = append(st.availability[m.ID],
			rsvp(m.ID, good.ID, "yes"),
			rsvp(m.ID, bad.ID, "no"),
		)
	}

	scorer := NewReliabilityScorer(st, clockwork.NewFakeClockAt(testNow))
	report, err := scorer.Report(context.Background(), PatternFilter{})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(report.PlayerPatterns) != 2 {
		t.Fatalf("got %d patterns, want 2", len(report.PlayerPatterns))
	}
	if report.PlayerPatterns[0].PlayerID != good.ID {
		t.Errorf("best player should sort first, got %s", report.PlayerPatterns[0].Name)
	}
}
