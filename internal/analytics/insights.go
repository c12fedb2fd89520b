package analytics

// insights.go — per-match view across both sides: the same team analysis as the
// substitution reporter, but presented match-by-match with a combined
// attendance outlook instead of a per-team urgency ranking.

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ecspl/league-api/internal/models"
)

// Outlook classifies the combined expected attendance of both sides of a match.
type Outlook string

const (
	OutlookExcellent  Outlook = "excellent"
	OutlookGood       Outlook = "good"
	OutlookAdequate   Outlook = "adequate"
	OutlookConcerning Outlook = "concerning"
	OutlookCritical   Outlook = "critical"
)

// ClassifyOutlook grades the total expected attendance across both teams using
// the same thresholds as the per-team urgency bands, doubled because two sides
// contribute to the total. With the 8v8 defaults (min 8, ideal 13) the bands
// fall at 26/24/20/16.
func ClassifyOutlook(totalExpected float64, minPlayers, idealPlayers int) Outlook {
	min := float64(minPlayers)
	switch {
	case totalExpected >= 2*float64(idealPlayers):
		return OutlookExcellent
	case totalExpected >= 2*(min+4):
		return OutlookGood
	case totalExpected >= 2*(min+2):
		return OutlookAdequate
	case totalExpected >= 2*min:
		return OutlookConcerning
	default:
		return OutlookCritical
	}
}

// InsightsFilter carries the query parameters of a match-insights run.
// When MatchID is set the window fields are ignored and exactly that match is
// analyzed (played or not).
type InsightsFilter struct {
	MatchID           *uuid.UUID
	TeamID            *uuid.UUID
	LeagueID          *uuid.UUID
	DaysAhead         int // default 7
	IncludeHistorical bool
	MinPlayers        int // default DefaultMinPlayers
	IdealPlayers      int // default DefaultIdealPlayers
}

func (f *InsightsFilter) applyDefaults() {
	if f.DaysAhead == 0 {
		f.DaysAhead = 7
	}
	if f.MinPlayers == 0 {
		f.MinPlayers = DefaultMinPlayers
	}
	if f.IdealPlayers == 0 {
		f.IdealPlayers = DefaultIdealPlayers
	}
}

// OverallInsights combines both sides of a match.
type OverallInsights struct {
	TotalExpectedAttendance   float64 `json:"total_expected_attendance"`
	TotalConfirmedUnavailable int     `json:"total_confirmed_unavailable"`
	TotalAwaitingResponse     int     `json:"total_awaiting_response"`
	AttendanceOutlook         Outlook `json:"attendance_outlook"`
}

// MatchInsight is the combined report for one match. A side with no resolvable
// team or a failed analysis is nil rather than aborting the match.
type MatchInsight struct {
	MatchID          uuid.UUID        `json:"match_id"`
	MatchDate        string           `json:"match_date"`
	MatchTime        *string          `json:"match_time"`
	Location         string           `json:"location"`
	DaysUntilMatch   int              `json:"days_until_match"`
	MatchStatus      string           `json:"match_status"` // completed, urgent, upcoming, future
	IsCompleted      bool             `json:"is_completed"`
	HomeTeamAnalysis *TeamMatchReport `json:"home_team_analysis"`
	AwayTeamAnalysis *TeamMatchReport `json:"away_team_analysis"`
	OverallInsights  OverallInsights  `json:"overall_insights"`
}

// InsightsSummary aggregates a match-insights run.
type InsightsSummary struct {
	TotalMatchesAnalyzed         int `json:"total_matches_analyzed"`
	MatchesWithGoodAttendance    int `json:"matches_with_good_attendance"`
	MatchesNeedingAttention      int `json:"matches_needing_attention"`
	TotalPlayersAwaitingResponse int `json:"total_players_awaiting_response"`
}

// InsightsReport is the full response body of a match-insights run.
type InsightsReport struct {
	MatchInsights []MatchInsight  `json:"match_insights"`
	Summary       InsightsSummary `json:"summary"`
}

// InsightsAnalyzer produces InsightsReports.
type InsightsAnalyzer struct {
	store    Store
	analyzer *TeamMatchAnalyzer
	clock    clockwork.Clock
}

func NewInsightsAnalyzer(store Store, clock clockwork.Clock) *InsightsAnalyzer {
	return &InsightsAnalyzer{
		store:    store,
		analyzer: NewTeamMatchAnalyzer(store),
		clock:    clock,
	}
}

// Report analyzes one match (by ID) or the upcoming window.
// Returns ErrMatchNotFound when an explicit MatchID doesn't resolve.
func (a *InsightsAnalyzer) Report(ctx context.Context, f InsightsFilter) (*InsightsReport, error) {
	f.applyDefaults()
	today := dateOnly(a.clock.Now())

	var matches []models.Match
	if f.MatchID != nil {
		match, err := a.store.MatchByID(ctx, *f.MatchID)
		if err != nil {
			return nil, err
		}
		matches = []models.Match{*match}
	} else {
		window, err := a.store.MatchesInWindow(ctx, MatchWindow{
			From:          today,
			To:            today.AddDate(0, 0, f.DaysAhead),
			LeagueID:      f.LeagueID,
			TeamID:        f.TeamID,
			IncludePlayed: f.IncludeHistorical,
		})
		if err != nil {
			return nil, err
		}
		matches = window
	}

	insights := []MatchInsight{}
	summary := InsightsSummary{}

	for _, match := range matches {
		insight := MatchInsight{
			MatchID:        match.ID,
			MatchDate:      match.Date.Format("2006-01-02"),
			MatchTime:      match.Time,
			Location:       match.Location,
			DaysUntilMatch: daysBetween(today, dateOnly(match.Date)),
			IsCompleted:    match.Played(),
		}

		switch {
		case insight.IsCompleted:
			insight.MatchStatus = "completed"
		case insight.DaysUntilMatch <= 2:
			insight.MatchStatus = "urgent"
		case insight.DaysUntilMatch <= 7:
			insight.MatchStatus = "upcoming"
		default:
			insight.MatchStatus = "future"
		}

		for _, side := range []struct {
			teamType TeamType
			out      **TeamMatchReport
		}{
			{TeamHome, &insight.HomeTeamAnalysis},
			{TeamAway, &insight.AwayTeamAnalysis},
		} {
			team := match.HomeTeam
			if side.teamType == TeamAway {
				team = match.AwayTeam
			}
			if team.ID == uuid.Nil {
				continue
			}
			report, err := a.analyzer.Analyze(ctx, match, team, side.teamType)
			if err != nil {
				log.Error().Err(err).
					Str("match_id", match.ID.String()).
					Str("team_id", team.ID.String()).
					Msg("team analysis failed; side omitted from insight")
				continue
			}
			*side.out = report
		}

		for _, report := range []*TeamMatchReport{insight.HomeTeamAnalysis, insight.AwayTeamAnalysis} {
			if report == nil {
				continue
			}
			insight.OverallInsights.TotalExpectedAttendance += report.ExpectedAttendance
			insight.OverallInsights.TotalConfirmedUnavailable += report.UnavailableCount
			insight.OverallInsights.TotalAwaitingResponse += report.NoResponseCount
		}
		insight.OverallInsights.TotalExpectedAttendance = round1(insight.OverallInsights.TotalExpectedAttendance)
		insight.OverallInsights.AttendanceOutlook = ClassifyOutlook(
			insight.OverallInsights.TotalExpectedAttendance, f.MinPlayers, f.IdealPlayers)

		insights = append(insights, insight)

		summary.TotalMatchesAnalyzed++
		switch insight.OverallInsights.AttendanceOutlook {
		case OutlookExcellent, OutlookGood:
			summary.MatchesWithGoodAttendance++
		case OutlookConcerning, OutlookCritical:
			summary.MatchesNeedingAttention++
		}
		summary.TotalPlayersAwaitingResponse += insight.OverallInsights.TotalAwaitingResponse
	}

	return &InsightsReport{MatchInsights: insights, Summary: summary}, nil
}
