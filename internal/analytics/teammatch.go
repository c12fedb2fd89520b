package analytics

// teammatch.go — per-team-per-match RSVP analysis. This is the unit of work
// everything else composes: given one side of one match, partition the roster
// by RSVP state and project the expected headcount.

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ecspl/league-api/internal/models"
)

// TeamType marks which side of the match a report describes.
type TeamType string

const (
	TeamHome TeamType = "home"
	TeamAway TeamType = "away"
)

// PlayerRef is the (id, name, position) triple the reports carry for each
// listed player — enough for a coach to know who to chase.
type PlayerRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position *string   `json:"position"` // nil when the player never set one
}

// TeamMatchReport is the full attendance picture for one team in one match.
//
// Invariant: AvailableCount + MaybeCount + UnavailableCount + NoResponseCount
// always equals RosterSize, including the degenerate zero-roster case.
type TeamMatchReport struct {
	TeamID              uuid.UUID   `json:"team_id"`
	TeamName            string      `json:"team_name"`
	TeamType            TeamType    `json:"team_type"`
	RosterSize          int         `json:"roster_size"`
	AvailableCount      int         `json:"available_count"`
	MaybeCount          int         `json:"maybe_count"`
	UnavailableCount    int         `json:"unavailable_count"`
	NoResponseCount     int         `json:"no_response_count"`
	ExpectedAttendance  float64     `json:"expected_attendance"`
	ResponseRatePercent float64     `json:"response_rate_percent"`
	AvailablePlayers    []PlayerRef `json:"available_players"`
	MaybePlayers        []PlayerRef `json:"maybe_players"`
	NoResponsePlayers   []PlayerRef `json:"no_response_players"`
}

// TeamMatchAnalyzer builds TeamMatchReports from the read store.
type TeamMatchAnalyzer struct {
	store Store
}

func NewTeamMatchAnalyzer(store Store) *TeamMatchAnalyzer {
	return &TeamMatchAnalyzer{store: store}
}

// Analyze produces the report for one (match, team, side) triple.
//
// A player counts as having responded only when their stored response text
// normalizes to the closed RSVP set; a row with unrecognized text leaves the
// player in the no-response group, same as having no row at all. A team with
// zero registered players yields an all-zero report rather than an error —
// callers decide whether that side is worth reporting on.
func (a *TeamMatchAnalyzer) Analyze(ctx context.Context, match models.Match, team models.Team, teamType TeamType) (*TeamMatchReport, error) {
	roster, err := a.store.TeamRoster(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	report := &TeamMatchReport{
		TeamID:            team.ID,
		TeamName:          team.Name,
		TeamType:          teamType,
		RosterSize:        len(roster),
		AvailablePlayers:  []PlayerRef{},
		MaybePlayers:      []PlayerRef{},
		NoResponsePlayers: []PlayerRef{},
	}
	if len(roster) == 0 {
		return report, nil
	}

	playerIDs := make([]uuid.UUID, 0, len(roster))
	byID := make(map[uuid.UUID]models.Player, len(roster))
	for _, p := range roster {
		playerIDs = append(playerIDs, p.ID)
		byID[p.ID] = p
	}

	avails, err := a.store.MatchAvailability(ctx, match.ID, playerIDs)
	if err != nil {
		return nil, err
	}

	// Partition the roster. responded tracks players whose stored text parsed
	// to a canonical response; everyone else falls through to no-response.
	responded := make(map[uuid.UUID]bool, len(avails))
	for _, av := range avails {
		p, onRoster := byID[av.PlayerID]
		if !onRoster || responded[av.PlayerID] {
			continue
		}
		resp, ok := ParseResponse(av.Response)
		if !ok {
			log.Debug().
				Str("match_id", match.ID.String()).
				Str("player_id", av.PlayerID.String()).
				Str("response", av.Response).
				Msg("unrecognized RSVP response treated as no response")
			continue
		}
		responded[av.PlayerID] = true
		switch resp {
		case ResponseAvailable:
			report.AvailableCount++
			report.AvailablePlayers = append(report.AvailablePlayers, playerRef(p))
		case ResponseUnavailable:
			report.UnavailableCount++
		case ResponseMaybe:
			report.MaybeCount++
			report.MaybePlayers = append(report.MaybePlayers, playerRef(p))
		}
	}

	for _, p := range roster {
		if !responded[p.ID] {
			report.NoResponseCount++
			report.NoResponsePlayers = append(report.NoResponsePlayers, playerRef(p))
		}
	}

	report.ExpectedAttendance = round1(ExpectedAttendance(report.AvailableCount, report.MaybeCount))
	respondedCount := report.AvailableCount + report.MaybeCount + report.UnavailableCount
	report.ResponseRatePercent = round1(percentage(respondedCount, report.RosterSize))

	return report, nil
}

func playerRef(p models.Player) PlayerRef {
	return PlayerRef{ID: p.ID, Name: p.Name, Position: p.FavoritePosition}
}

// percentage guards the divide-by-zero: an empty denominator is 0%, not a panic.
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// round1 rounds to one decimal place, matching how every rate and projection
// is presented in the JSON reports.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
