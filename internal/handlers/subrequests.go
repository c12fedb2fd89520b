package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ecspl/league-api/internal/models"
)

type subRequestBody struct {
	MatchID    uuid.UUID `json:"match_id"`
	TeamID     uuid.UUID `json:"team_id"`
	SubsNeeded int       `json:"subs_needed"`
	Notes      *string   `json:"notes"`
}

// CreateSubRequest handles POST /api/v1/substitute-requests. Coaches and
// admins file these when they already know a team will be short regardless of
// what the RSVPs say. The request lands as PENDING and immediately influences
// the substitution-needs analysis.
func CreateSubRequest(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body subRequestBody
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "invalid request body")
		}
		if body.MatchID == uuid.Nil {
			return badRequest(c, "match_id is required")
		}
		if body.TeamID == uuid.Nil {
			return badRequest(c, "team_id is required")
		}
		if body.SubsNeeded < 0 {
			return badRequest(c, "subs_needed must not be negative")
		}
		if body.SubsNeeded == 0 {
			body.SubsNeeded = 1
		}

		var match models.Match
		if err := db.First(&match, "id = ?", body.MatchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "match not found",
				})
			}
			log.Error().Err(err).Str("match_id", body.MatchID.String()).Msg("failed to load match")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}
		if match.Played() {
			return badRequest(c, "cannot request substitutes for a completed match")
		}
		if body.TeamID != match.HomeTeamID && body.TeamID != match.AwayTeamID {
			return badRequest(c, "team is not playing in this match")
		}

		rawUserID, _ := c.Locals("userID").(string)
		userID, err := uuid.Parse(rawUserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		request := models.SubstituteRequest{
			MatchID:     body.MatchID,
			TeamID:      body.TeamID,
			RequestedBy: userID,
			SubsNeeded:  body.SubsNeeded,
			Notes:       body.Notes,
			Status:      models.SubRequestPending,
		}
		if err := db.Create(&request).Error; err != nil {
			log.Error().Err(err).Msg("failed to create substitute request")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		log.Info().
			Str("match_id", body.MatchID.String()).
			Str("team_id", body.TeamID.String()).
			Int("subs_needed", body.SubsNeeded).
			Msg("substitute request filed")

		return c.Status(fiber.StatusCreated).JSON(request)
	}
}

// ListSubRequests handles GET /api/v1/substitute-requests with optional
// match_id, team_id, and status filters.
func ListSubRequests(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matchID, err := queryUUID(c, "match_id")
		if err != nil {
			return badRequest(c, err.Error())
		}
		teamID, err := queryUUID(c, "team_id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		query := db.Preload("Team").Preload("Match").Order("created_at DESC")
		if matchID != nil {
			query = query.Where("match_id = ?", *matchID)
		}
		if teamID != nil {
			query = query.Where("team_id = ?", *teamID)
		}
		if status := c.Query("status"); status != "" {
			switch models.SubRequestStatus(status) {
			case models.SubRequestPending, models.SubRequestApproved,
				models.SubRequestFilled, models.SubRequestCancelled:
				query = query.Where("status = ?", status)
			default:
				return badRequest(c, "status must be one of: PENDING, APPROVED, FILLED, CANCELLED")
			}
		}

		var requests []models.SubstituteRequest
		if err := query.Find(&requests).Error; err != nil {
			log.Error().Err(err).Msg("failed to list substitute requests")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		return c.JSON(fiber.Map{
			"substitute_requests": requests,
			"count":               len(requests),
		})
	}
}
