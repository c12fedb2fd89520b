// This file handles the read-only /api/external/v1/analytics routes — the
// substitution-urgency engine's HTTP surface. Each handler follows the
// "handler factory" pattern: it takes the analytics component it fronts and
// returns a fiber.Handler, so the engine is injected without globals.
//
// All three endpoints share the same shape of failure handling:
//   - malformed query parameters → 400 with the offending parameter named
//   - empty windows/scopes       → 200 with empty/zero-filled structures
//   - store failures             → 500 with a safe message (details are logged
//     inside the engine with the match/team/player being analyzed)
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ecspl/league-api/internal/analytics"
)

// substitutionFilters echoes the interpreted query parameters back in the
// response so consumers can see which defaults applied.
type substitutionFilters struct {
	DaysAhead    int        `json:"days_ahead"`
	LeagueID     *uuid.UUID `json:"league_id"`
	TeamID       *uuid.UUID `json:"team_id"`
	MinPlayers   int        `json:"min_players"`
	IdealPlayers int        `json:"ideal_players"`
}

// SubstitutionNeeds returns a handler for GET /analytics/substitution-needs.
// It ranks every side of every upcoming unplayed match in the window by how
// urgently it needs substitutes, with coach-filed requests overlaid.
func SubstitutionNeeds(reporter *analytics.SubstitutionReporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		daysAhead, err := queryPositiveInt(c, "days_ahead", 14)
		if err != nil {
			return badRequest(c, err.Error())
		}
		minPlayers, err := queryPositiveInt(c, "min_players", analytics.DefaultMinPlayers)
		if err != nil {
			return badRequest(c, err.Error())
		}
		idealPlayers, err := queryPositiveInt(c, "ideal_players", analytics.DefaultIdealPlayers)
		if err != nil {
			return badRequest(c, err.Error())
		}
		leagueID, err := queryUUID(c, "league_id")
		if err != nil {
			return badRequest(c, err.Error())
		}
		teamID, err := queryUUID(c, "team_id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		report, err := reporter.Report(c.UserContext(), analytics.SubstitutionFilter{
			DaysAhead:    daysAhead,
			LeagueID:     leagueID,
			TeamID:       teamID,
			MinPlayers:   minPlayers,
			IdealPlayers: idealPlayers,
		})
		if err != nil {
			log.Error().Err(err).Msg("substitution-needs analysis failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		return c.JSON(fiber.Map{
			"substitution_analysis": report.Analysis,
			"summary":               report.Summary,
			"filters_applied": substitutionFilters{
				DaysAhead:    daysAhead,
				LeagueID:     leagueID,
				TeamID:       teamID,
				MinPlayers:   minPlayers,
				IdealPlayers: idealPlayers,
			},
		})
	}
}

type patternFilters struct {
	PlayerID           *uuid.UUID `json:"player_id"`
	TeamID             *uuid.UUID `json:"team_id"`
	LeagueID           *uuid.UUID `json:"league_id"`
	SeasonID           *uuid.UUID `json:"season_id"`
	DaysLookback       int        `json:"days_lookback"`
	IncludePredictions bool       `json:"include_predictions"`
}

// PlayerPatterns returns a handler for GET /analytics/player-patterns.
// It profiles how reliably players in scope respond and attend over the
// lookback window, with an optional naive trend prediction per player.
func PlayerPatterns(scorer *analytics.ReliabilityScorer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		daysLookback, err := queryPositiveInt(c, "days_lookback", 90)
		if err != nil {
			return badRequest(c, err.Error())
		}
		includePredictions, err := queryBool(c, "include_predictions", true)
		if err != nil {
			return badRequest(c, err.Error())
		}
		playerID, err := queryUUID(c, "player_id")
		if err != nil {
			return badRequest(c, err.Error())
		}
		teamID, err := queryUUID(c, "team_id")
		if err != nil {
			return badRequest(c, err.Error())
		}
		leagueID, err := queryUUID(c, "league_id")
		if err != nil {
			return badRequest(c, err.Error())
		}
		seasonID, err := queryUUID(c, "season_id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		report, err := scorer.Report(c.UserContext(), analytics.PatternFilter{
			PlayerID:           playerID,
			TeamID:             teamID,
			LeagueID:           leagueID,
			SeasonID:           seasonID,
			DaysLookback:       daysLookback,
			IncludePredictions: includePredictions,
		})
		if err != nil {
			log.Error().Err(err).Msg("player-patterns analysis failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		return c.JSON(fiber.Map{
			"player_patterns": report.PlayerPatterns,
			"summary":         report.Summary,
			"filters_applied": patternFilters{
				PlayerID:           playerID,
				TeamID:             teamID,
				LeagueID:           leagueID,
				SeasonID:           seasonID,
				DaysLookback:       daysLookback,
				IncludePredictions: includePredictions,
			},
		})
	}
}

type insightsFilters struct {
	MatchID           *uuid.UUID `json:"match_id"`
	TeamID            *uuid.UUID `json:"team_id"`
	LeagueID          *uuid.UUID `json:"league_id"`
	DaysAhead         int        `json:"days_ahead"`
	IncludeHistorical bool       `json:"include_historical"`
	MinPlayers        int        `json:"min_players"`
	IdealPlayers      int        `json:"ideal_players"`
}

// MatchInsights returns a handler for GET /analytics/match-insights.
// One match by ID, or the upcoming window — both sides analyzed, plus a
// combined attendance outlook per match.
func MatchInsights(insights *analytics.InsightsAnalyzer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		daysAhead, err := queryPositiveInt(c, "days_ahead", 7)
		if err != nil {
			return badRequest(c, err.Error())
		}
		includeHistorical, err := queryBool(c, "include_historical", false)
		if err != nil {
			return badRequest(c, err.Error())
		}
		minPlayers, err := queryPositiveInt(c, "min_players", analytics.DefaultMinPlayers)
		if err != nil {
			return badRequest(c, err.Error())
		}
		idealPlayers, err := queryPositiveInt(c, "ideal_players", analytics.DefaultIdealPlayers)
		if err != nil {
			return badRequest(c, err.Error())
		}
		matchID, err := queryUUID(c, "match_id")
		if err != nil {
			return badRequest(c, err.Error())
		}
		teamID, err := queryUUID(c, "team_id")
		if err != nil {
			return badRequest(c, err.Error())
		}
		leagueID, err := queryUUID(c, "league_id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		report, err := insights.Report(c.UserContext(), analytics.InsightsFilter{
			MatchID:           matchID,
			TeamID:            teamID,
			LeagueID:          leagueID,
			DaysAhead:         daysAhead,
			IncludeHistorical: includeHistorical,
			MinPlayers:        minPlayers,
			IdealPlayers:      idealPlayers,
		})
		if errors.Is(err, analytics.ErrMatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "match not found",
			})
		}
		if err != nil {
			log.Error().Err(err).Msg("match-insights analysis failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		return c.JSON(fiber.Map{
			"match_insights": report.MatchInsights,
			"summary":        report.Summary,
			"filters_applied": insightsFilters{
				MatchID:           matchID,
				TeamID:            teamID,
				LeagueID:          leagueID,
				DaysAhead:         daysAhead,
				IncludeHistorical: includeHistorical,
				MinPlayers:        minPlayers,
				IdealPlayers:      idealPlayers,
			},
		})
	}
}
