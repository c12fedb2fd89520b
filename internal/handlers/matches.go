package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ecspl/league-api/internal/analytics"
	"github.com/ecspl/league-api/internal/models"
)

// GetMatches handles GET /api/v1/matches — the upcoming schedule, optionally
// scoped to a league or team. include_played=true widens it to finished
// fixtures as well.
func GetMatches(st analytics.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		daysAhead, err := queryPositiveInt(c, "days_ahead", 14)
		if err != nil {
			return badRequest(c, err.Error())
		}
		includePlayed, err := queryBool(c, "include_played", false)
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

		now := time.Now().UTC()
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		matches, err := st.MatchesInWindow(c.UserContext(), analytics.MatchWindow{
			From:          from,
			To:            from.AddDate(0, 0, daysAhead),
			LeagueID:      leagueID,
			TeamID:        teamID,
			IncludePlayed: includePlayed,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to list matches")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		return c.JSON(fiber.Map{
			"matches": matches,
			"count":   len(matches),
		})
	}
}

// GetTeamRoster handles GET /api/v1/teams/:id/roster.
func GetTeamRoster(db *gorm.DB, st analytics.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return badRequest(c, "id must be a valid UUID")
		}

		var team models.Team
		if err := db.Preload("League").First(&team, "id = ?", teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "team not found",
				})
			}
			log.Error().Err(err).Str("team_id", teamID.String()).Msg("failed to load team")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		roster, err := st.TeamRoster(c.UserContext(), teamID)
		if err != nil {
			log.Error().Err(err).Str("team_id", teamID.String()).Msg("failed to load roster")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		return c.JSON(fiber.Map{
			"team_id":     team.ID,
			"team_name":   team.Name,
			"league_name": team.League.Name,
			"roster":      roster,
			"roster_size": len(roster),
		})
	}
}
