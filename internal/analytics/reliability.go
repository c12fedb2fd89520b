package analytics

// reliability.go — historical per-player profiling: how often a player answers
// RSVPs, how often they actually mark themselves available, which weekdays they
// show up for, and a short-horizon attendance prediction.
//
// The prediction is a naive recency-weighted estimate — the attendance rate
// over the trailing 30 days compared against the full window — not a
// statistical model. Coaches read these numbers directly, so the simplistic
// behavior is deliberate and should not be quietly "improved".

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ecspl/league-api/internal/models"
)

// Reliability is the four-tier classification of a player's RSVP behavior.
type Reliability string

const (
	HighlyReliable Reliability = "highly_reliable"
	Reliable       Reliability = "reliable"
	Inconsistent   Reliability = "inconsistent"
	Unreliable     Reliability = "unreliable"
)

// rank orders reliabilities best-first for sorting.
func (r Reliability) rank() int {
	switch r {
	case HighlyReliable:
		return 0
	case Reliable:
		return 1
	case Inconsistent:
		return 2
	default:
		return 3
	}
}

// ClassifyReliability buckets a player by their response and attendance rates
// (both in percent over the analysis window).
func ClassifyReliability(responseRate, attendanceRate float64) Reliability {
	switch {
	case responseRate >= 90 && attendanceRate >= 80:
		return HighlyReliable
	case responseRate >= 70 && attendanceRate >= 60:
		return Reliable
	case responseRate >= 50 || attendanceRate >= 40:
		return Inconsistent
	default:
		return Unreliable
	}
}

// minPredictionResponses is the history floor below which no prediction is
// attempted — the block is omitted entirely rather than returning a
// low-confidence guess.
const minPredictionResponses = 5

// PatternFilter carries the query parameters of a player-patterns run.
type PatternFilter struct {
	PlayerID           *uuid.UUID
	TeamID             *uuid.UUID
	LeagueID           *uuid.UUID
	SeasonID           *uuid.UUID
	DaysLookback       int  // default 90
	IncludePredictions bool // default true at the handler layer
}

func (f *PatternFilter) applyDefaults() {
	if f.DaysLookback == 0 {
		f.DaysLookback = 90
	}
}

// TeamRef names one of a player's teams in the output.
type TeamRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// AnalysisPeriod describes the window a profile was computed over.
type AnalysisPeriod struct {
	DaysAnalyzed         int `json:"days_analyzed"`
	TotalMatchesInPeriod int `json:"total_matches_in_period"`
	MatchesRespondedTo   int `json:"matches_responded_to"`
	RecentMatches30Days  int `json:"recent_matches_30_days"`
}

// AttendancePatterns holds the rate breakdown for a profile.
type AttendancePatterns struct {
	AttendanceRatePercent float64 `json:"attendance_rate_percent"`
	ResponseRatePercent   float64 `json:"response_rate_percent"`
	AvailableCount        int     `json:"available_count"`
	UnavailableCount      int     `json:"unavailable_count"`
	MaybeCount            int     `json:"maybe_count"`
	NoResponseCount       int     `json:"no_response_count"`
}

// DayBreakdown is attendance grouped by one weekday.
type DayBreakdown struct {
	Matches               int     `json:"matches"`
	Attended              int     `json:"attended"`
	AttendanceRatePercent float64 `json:"attendance_rate_percent"`
}

// Prediction is the naive short-horizon estimate. Present only when the player
// has at least minPredictionResponses responses in the window.
type Prediction struct {
	PredictedAttendanceRate float64 `json:"predicted_attendance_rate"`
	Trend                   string  `json:"trend"`      // improving, declining, stable
	Confidence              string  `json:"confidence"` // high, medium, low — recent sample size only
}

// PlayerPattern is one player's reliability profile.
type PlayerPattern struct {
	PlayerID           uuid.UUID               `json:"player_id"`
	Name               string                  `json:"name"`
	Position           *string                 `json:"position"`
	Teams              []TeamRef               `json:"teams"`
	AnalysisPeriod     AnalysisPeriod          `json:"analysis_period"`
	AttendancePatterns AttendancePatterns      `json:"attendance_patterns"`
	DayOfWeekBreakdown map[string]DayBreakdown `json:"day_of_week_breakdown"`
	ReliabilityScore   Reliability             `json:"reliability_score"`
	Predictions        *Prediction             `json:"predictions"`
}

// PatternsSummary aggregates a player-patterns run.
type PatternsSummary struct {
	TotalPlayersAnalyzed      int     `json:"total_players_analyzed"`
	ReliablePlayers           int     `json:"reliable_players"`
	UnreliablePlayers         int     `json:"unreliable_players"`
	PlayersWithDecliningTrend int     `json:"players_with_declining_trend"`
	AverageResponseRate       float64 `json:"average_response_rate"`
	AverageAttendanceRate     float64 `json:"average_attendance_rate"`
}

// PatternsReport is the full response body of a player-patterns run.
type PatternsReport struct {
	PlayerPatterns []PlayerPattern `json:"player_patterns"`
	Summary        PatternsSummary `json:"summary"`
}

// ReliabilityScorer produces PatternsReports.
type ReliabilityScorer struct {
	store Store
	clock clockwork.Clock
}

func NewReliabilityScorer(store Store, clock clockwork.Clock) *ReliabilityScorer {
	return &ReliabilityScorer{store: store, clock: clock}
}

// Report profiles every player in scope over the lookback window.
//
// A player with no matches in the window is excluded from the output entirely
// (their rates would be 0/0). A store failure for one player is logged with
// the player ID and that player is skipped; the batch continues.
func (s *ReliabilityScorer) Report(ctx context.Context, f PatternFilter) (*PatternsReport, error) {
	f.applyDefaults()
	today := dateOnly(s.clock.Now())
	from := today.AddDate(0, 0, -f.DaysLookback)
	recentCutoff := today.AddDate(0, 0, -30)

	players, err := s.store.Players(ctx, PlayerScope{
		PlayerID: f.PlayerID,
		TeamID:   f.TeamID,
		LeagueID: f.LeagueID,
	})
	if err != nil {
		return nil, err
	}

	// One window query; per-player relevance is decided in memory against each
	// player's team memberships, like the rosters themselves.
	matches, err := s.store.MatchesBetween(ctx, from, today, f.SeasonID)
	if err != nil {
		return nil, err
	}

	patterns := []PlayerPattern{}
	for _, player := range players {
		pattern, ok := s.profile(ctx, player, matches, recentCutoff, f)
		if ok {
			patterns = append(patterns, pattern)
		}
	}

	// Best profiles first: reliability tier, then attendance rate.
	sort.SliceStable(patterns, func(i, j int) bool {
		a, b := patterns[i], patterns[j]
		if ra, rb := a.ReliabilityScore.rank(), b.ReliabilityScore.rank(); ra != rb {
			return ra < rb
		}
		return a.AttendancePatterns.AttendanceRatePercent > b.AttendancePatterns.AttendanceRatePercent
	})

	summary := PatternsSummary{TotalPlayersAnalyzed: len(patterns)}
	var sumResponse, sumAttendance float64
	for _, p := range patterns {
		if p.ReliabilityScore == HighlyReliable || p.ReliabilityScore == Reliable {
			summary.ReliablePlayers++
		}
		if p.Predictions != nil && p.Predictions.Trend == "declining" {
			summary.PlayersWithDecliningTrend++
		}
		sumResponse += p.AttendancePatterns.ResponseRatePercent
		sumAttendance += p.AttendancePatterns.AttendanceRatePercent
	}
	summary.UnreliablePlayers = summary.TotalPlayersAnalyzed - summary.ReliablePlayers
	if summary.TotalPlayersAnalyzed > 0 {
		summary.AverageResponseRate = round1(sumResponse / float64(summary.TotalPlayersAnalyzed))
		summary.AverageAttendanceRate = round1(sumAttendance / float64(summary.TotalPlayersAnalyzed))
	}

	return &PatternsReport{PlayerPatterns: patterns, Summary: summary}, nil
}

// profile computes one player's pattern. ok is false when the player has no
// relevant matches in the window or their availability query failed.
func (s *ReliabilityScorer) profile(ctx context.Context, player models.Player, matches []models.Match, recentCutoff time.Time, f PatternFilter) (PlayerPattern, bool) {
	teamIDs := make(map[uuid.UUID]bool, len(player.Teams))
	teams := make([]TeamRef, 0, len(player.Teams))
	for _, t := range player.Teams {
		teamIDs[t.ID] = true
		teams = append(teams, TeamRef{ID: t.ID, Name: t.Name})
	}

	relevant := []models.Match{}
	for _, m := range matches {
		if teamIDs[m.HomeTeamID] || teamIDs[m.AwayTeamID] {
			relevant = append(relevant, m)
		}
	}
	if len(relevant) == 0 {
		return PlayerPattern{}, false
	}

	matchIDs := make([]uuid.UUID, 0, len(relevant))
	for _, m := range relevant {
		matchIDs = append(matchIDs, m.ID)
	}

	avails, err := s.store.PlayerAvailability(ctx, player.ID, matchIDs)
	if err != nil {
		log.Error().Err(err).
			Str("player_id", player.ID.String()).
			Msg("availability lookup failed; player skipped")
		return PlayerPattern{}, false
	}

	// Bucket the responses through the canonical parser; rows with
	// unrecognized text count as no response, same as the team analysis.
	totalMatches := len(relevant)
	responses := map[uuid.UUID]Response{}
	counts := AttendancePatterns{}
	for _, av := range avails {
		resp, ok := ParseResponse(av.Response)
		if !ok {
			continue
		}
		if _, seen := responses[av.MatchID]; seen {
			continue
		}
		responses[av.MatchID] = resp
		switch resp {
		case ResponseAvailable:
			counts.AvailableCount++
		case ResponseUnavailable:
			counts.UnavailableCount++
		case ResponseMaybe:
			counts.MaybeCount++
		}
	}
	totalResponses := len(responses)
	counts.NoResponseCount = totalMatches - totalResponses
	counts.ResponseRatePercent = round1(percentage(totalResponses, totalMatches))
	counts.AttendanceRatePercent = round1(percentage(counts.AvailableCount, totalMatches))

	recentMatches := 0
	recentAvailable := 0
	for _, m := range relevant {
		if dateOnly(m.Date).Before(recentCutoff) {
			continue
		}
		recentMatches++
		if responses[m.ID] == ResponseAvailable {
			recentAvailable++
		}
	}

	pattern := PlayerPattern{
		PlayerID: player.ID,
		Name:     player.Name,
		Position: player.FavoritePosition,
		Teams:    teams,
		AnalysisPeriod: AnalysisPeriod{
			DaysAnalyzed:         f.DaysLookback,
			TotalMatchesInPeriod: totalMatches,
			MatchesRespondedTo:   totalResponses,
			RecentMatches30Days:  recentMatches,
		},
		AttendancePatterns: counts,
		DayOfWeekBreakdown: map[string]DayBreakdown{},
		ReliabilityScore:   ClassifyReliability(counts.ResponseRatePercent, counts.AttendanceRatePercent),
	}

	// Weekday breakdown only once there's enough history to mean anything.
	if totalResponses >= minPredictionResponses {
		for _, m := range relevant {
			day := m.Date.Weekday().String()
			b := pattern.DayOfWeekBreakdown[day]
			b.Matches++
			if responses[m.ID] == ResponseAvailable {
				b.Attended++
			}
			b.AttendanceRatePercent = round1(percentage(b.Attended, b.Matches))
			pattern.DayOfWeekBreakdown[day] = b
		}
	}

	if f.IncludePredictions && totalResponses >= minPredictionResponses {
		recentRate := round1(percentage(recentAvailable, recentMatches))
		trend := "stable"
		switch {
		case recentRate > counts.AttendanceRatePercent+5:
			trend = "improving"
		case recentRate < counts.AttendanceRatePercent-5:
			trend = "declining"
		}
		confidence := "low"
		switch {
		case recentMatches >= 5:
			confidence = "high"
		case recentMatches >= 3:
			confidence = "medium"
		}
		pattern.Predictions = &Prediction{
			PredictedAttendanceRate: recentRate,
			Trend:                   trend,
			Confidence:              confidence,
		}
	}

	return pattern, true
}
