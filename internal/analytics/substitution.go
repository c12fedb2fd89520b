package analytics

// substitution.go — the substitution-needs reporter: walks every side of every
// upcoming match in a window, scores its urgency, overlays the manually-filed
// substitute requests, and ranks the result for the people doing sub outreach.

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ecspl/league-api/internal/models"
)

// SubstitutionFilter carries the query parameters of a substitution-needs run.
// Zero values mean "use the default"; nil UUIDs mean "no filter".
type SubstitutionFilter struct {
	DaysAhead    int // how far ahead to look; default 14
	LeagueID     *uuid.UUID
	TeamID       *uuid.UUID
	MinPlayers   int // default DefaultMinPlayers
	IdealPlayers int // default DefaultIdealPlayers
}

func (f *SubstitutionFilter) applyDefaults() {
	if f.DaysAhead == 0 {
		f.DaysAhead = 14
	}
	if f.MinPlayers == 0 {
		f.MinPlayers = DefaultMinPlayers
	}
	if f.IdealPlayers == 0 {
		f.IdealPlayers = DefaultIdealPlayers
	}
}

// TeamBrief identifies the analyzed side in a recommendation.
type TeamBrief struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	League   *string   `json:"league"` // nil when the league couldn't be resolved
	TeamType TeamType  `json:"team_type"`
}

// OpponentBrief identifies the other side of the match.
type OpponentBrief struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RosterAnalysis summarizes the attendance partition for a recommendation.
type RosterAnalysis struct {
	TotalRosterSize    int `json:"total_roster_size"`
	ConfirmedAvailable int `json:"confirmed_available"`
	Unavailable        int `json:"unavailable"`
	MaybeAvailable     int `json:"maybe_available"`
	NoResponse         int `json:"no_response"`
	PotentialAvailable int `json:"potential_available"` // confirmed + maybe, unweighted
	ShortageAmount     int `json:"shortage_amount"`     // max(0, min_players - confirmed)
}

// SubstituteNeeds is the verdict for a team-side: whether subs are needed,
// how urgently, and how many.
type SubstituteNeeds struct {
	NeedsSubstitutes     bool    `json:"needs_substitutes"`
	Urgency              Urgency `json:"urgency"`
	MinimumSubsNeeded    int     `json:"minimum_subs_needed"`
	RecommendedSubs      int     `json:"recommended_subs"`
	ManualRequestPresent bool    `json:"manual_request_present"`
}

// FollowUpPlayer is a no-response roster member flagged for contact.
type FollowUpPlayer struct {
	PlayerRef
	NeedsFollowUp bool `json:"needs_follow_up"`
}

// SubstitutionEntry is one ranked recommendation: a (match, team) pair that
// needs substitutes, with the detail a coordinator needs to act on it.
type SubstitutionEntry struct {
	MatchID            uuid.UUID        `json:"match_id"`
	MatchDate          string           `json:"match_date"`
	MatchTime          *string          `json:"match_time"`
	Location           string           `json:"location"`
	DaysUntilMatch     int              `json:"days_until_match"`
	Team               TeamBrief        `json:"team"`
	Opponent           *OpponentBrief   `json:"opponent"`
	ExpectedAttendance float64          `json:"expected_attendance"`
	RosterAnalysis     RosterAnalysis   `json:"roster_analysis"`
	SubstituteNeeds    SubstituteNeeds  `json:"substitute_needs"`
	AvailablePlayers   []PlayerRef      `json:"available_players"`
	NoResponsePlayers  []FollowUpPlayer `json:"no_response_players"`

	matchDate time.Time // retained for sorting
}

// SubstitutionRecommendations groups the rollup advice in the summary.
type SubstitutionRecommendations struct {
	ImmediateActionNeeded   bool `json:"immediate_action_needed"`
	TotalSubsNeeded         int  `json:"total_subs_needed"`
	TeamsWithManualRequests int  `json:"teams_with_manual_requests"`
	FollowUpRequired        int  `json:"follow_up_required"` // total no-response players across flagged teams
}

// SubstitutionSummary is the aggregate view over a report.
type SubstitutionSummary struct {
	TotalUpcomingMatches  int                         `json:"total_upcoming_matches"`
	TeamsNeedingSubs      int                         `json:"teams_needing_substitutes"`
	CriticalShortageTeams int                         `json:"critical_shortage_teams"`
	HighPriorityTeams     int                         `json:"high_priority_teams"`
	MediumPriorityTeams   int                         `json:"medium_priority_teams"`
	AnalysisPeriodDays    int                         `json:"analysis_period_days"`
	Recommendations       SubstitutionRecommendations `json:"recommendations"`
}

// SubstitutionReport is the full response body of a substitution-needs run.
type SubstitutionReport struct {
	Analysis []SubstitutionEntry `json:"substitution_analysis"`
	Summary  SubstitutionSummary `json:"summary"`
}

// SubstitutionReporter runs the end-to-end analysis. It is stateless between
// calls; the clock is injected so the "upcoming" window is testable.
type SubstitutionReporter struct {
	store    Store
	analyzer *TeamMatchAnalyzer
	clock    clockwork.Clock
}

func NewSubstitutionReporter(store Store, clock clockwork.Clock) *SubstitutionReporter {
	return &SubstitutionReporter{
		store:    store,
		analyzer: NewTeamMatchAnalyzer(store),
		clock:    clock,
	}
}

// Report evaluates every side of every unplayed match in the window.
//
// Failure isolation: an error analyzing one side is logged with its match and
// team IDs and that side is skipped — one broken team must not take down the
// whole report. Only a failure of the window query itself aborts the run.
func (r *SubstitutionReporter) Report(ctx context.Context, f SubstitutionFilter) (*SubstitutionReport, error) {
	f.applyDefaults()

	today := dateOnly(r.clock.Now())
	matches, err := r.store.MatchesInWindow(ctx, MatchWindow{
		From:     today,
		To:       today.AddDate(0, 0, f.DaysAhead),
		LeagueID: f.LeagueID,
		TeamID:   f.TeamID,
	})
	if err != nil {
		return nil, err
	}

	matchIDs := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		matchIDs = append(matchIDs, m.ID)
	}

	// One query for every active manual request in the window, keyed by
	// (match, team) for the overlay below.
	manual := map[manualKey]bool{}
	if len(matchIDs) > 0 {
		requests, err := r.store.SubRequests(ctx, matchIDs, []models.SubRequestStatus{
			models.SubRequestPending, models.SubRequestApproved,
		})
		if err != nil {
			return nil, err
		}
		for _, req := range requests {
			manual[manualKey{req.MatchID, req.TeamID}] = true
		}
	}

	entries := []SubstitutionEntry{}
	for _, match := range matches {
		for _, side := range []struct {
			team     models.Team
			teamType TeamType
		}{
			{match.HomeTeam, TeamHome},
			{match.AwayTeam, TeamAway},
		} {
			// An unresolved team skips this side only, not the whole match.
			if side.team.ID == uuid.Nil {
				log.Warn().
					Str("match_id", match.ID.String()).
					Str("team_type", string(side.teamType)).
					Msg("match side has no resolvable team; skipping")
				continue
			}

			report, err := r.analyzer.Analyze(ctx, match, side.team, side.teamType)
			if err != nil {
				log.Error().Err(err).
					Str("match_id", match.ID.String()).
					Str("team_id", side.team.ID.String()).
					Msg("team analysis failed; skipping side")
				continue
			}
			if report.RosterSize == 0 {
				log.Warn().
					Str("match_id", match.ID.String()).
					Str("team_id", side.team.ID.String()).
					Str("team_name", side.team.Name).
					Msg("team has no registered players; skipping side")
				continue
			}

			urgency := ClassifyUrgency(report.ExpectedAttendance, f.MinPlayers, f.IdealPlayers)
			hasManual := manual[manualKey{match.ID, side.team.ID}]

			// A coach-filed request overrides the heuristic: the side is
			// flagged regardless, and its urgency is floored at high.
			if hasManual && urgency.Rank() > UrgencyHigh.Rank() {
				urgency = UrgencyHigh
			}
			needsSubs := hasManual || urgency.Rank() <= UrgencyMedium.Rank()
			if !needsSubs {
				continue
			}

			potential := report.AvailableCount + report.MaybeCount
			entries = append(entries, SubstitutionEntry{
				MatchID:            match.ID,
				MatchDate:          match.Date.Format("2006-01-02"),
				MatchTime:          match.Time,
				Location:           match.Location,
				DaysUntilMatch:     daysBetween(today, dateOnly(match.Date)),
				Team:               teamBrief(side.team, side.teamType),
				Opponent:           opponentBrief(match, side.teamType),
				ExpectedAttendance: report.ExpectedAttendance,
				RosterAnalysis: RosterAnalysis{
					TotalRosterSize:    report.RosterSize,
					ConfirmedAvailable: report.AvailableCount,
					Unavailable:        report.UnavailableCount,
					MaybeAvailable:     report.MaybeCount,
					NoResponse:         report.NoResponseCount,
					PotentialAvailable: potential,
					ShortageAmount:     maxInt(0, f.MinPlayers-report.AvailableCount),
				},
				SubstituteNeeds: SubstituteNeeds{
					NeedsSubstitutes:     true,
					Urgency:              urgency,
					MinimumSubsNeeded:    maxInt(0, f.MinPlayers-report.AvailableCount),
					RecommendedSubs:      maxInt(0, f.MinPlayers+2-potential),
					ManualRequestPresent: hasManual,
				},
				AvailablePlayers:  report.AvailablePlayers,
				NoResponsePlayers: followUps(report.NoResponsePlayers),
				matchDate:         match.Date,
			})
		}
	}

	// Rank: most severe urgency first, manual requests before purely-heuristic
	// flags at equal urgency, then soonest match.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if ra, rb := a.SubstituteNeeds.Urgency.Rank(), b.SubstituteNeeds.Urgency.Rank(); ra != rb {
			return ra < rb
		}
		if a.SubstituteNeeds.ManualRequestPresent != b.SubstituteNeeds.ManualRequestPresent {
			return a.SubstituteNeeds.ManualRequestPresent
		}
		return a.matchDate.Before(b.matchDate)
	})

	summary := SubstitutionSummary{
		TotalUpcomingMatches: len(matches),
		TeamsNeedingSubs:     len(entries),
		AnalysisPeriodDays:   f.DaysAhead,
	}
	for _, e := range entries {
		switch e.SubstituteNeeds.Urgency {
		case UrgencyCritical:
			summary.CriticalShortageTeams++
		case UrgencyHigh:
			summary.HighPriorityTeams++
		case UrgencyMedium:
			summary.MediumPriorityTeams++
		}
		summary.Recommendations.TotalSubsNeeded += e.SubstituteNeeds.MinimumSubsNeeded
		summary.Recommendations.FollowUpRequired += len(e.NoResponsePlayers)
		if e.SubstituteNeeds.ManualRequestPresent {
			summary.Recommendations.TeamsWithManualRequests++
		}
	}
	summary.Recommendations.ImmediateActionNeeded = summary.CriticalShortageTeams > 0

	return &SubstitutionReport{Analysis: entries, Summary: summary}, nil
}

type manualKey struct {
	matchID uuid.UUID
	teamID  uuid.UUID
}

func teamBrief(t models.Team, teamType TeamType) TeamBrief {
	b := TeamBrief{ID: t.ID, Name: t.Name, TeamType: teamType}
	if t.League.ID != uuid.Nil {
		name := t.League.Name
		b.League = &name
	}
	return b
}

func opponentBrief(match models.Match, teamType TeamType) *OpponentBrief {
	var opp models.Team
	if teamType == TeamHome {
		opp = match.AwayTeam
	} else {
		opp = match.HomeTeam
	}
	if opp.ID == uuid.Nil {
		return nil
	}
	return &OpponentBrief{ID: opp.ID, Name: opp.Name}
}

func followUps(refs []PlayerRef) []FollowUpPlayer {
	out := make([]FollowUpPlayer, 0, len(refs))
	for _, ref := range refs {
		out = append(out, FollowUpPlayer{PlayerRef: ref, NeedsFollowUp: true})
	}
	return out
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
