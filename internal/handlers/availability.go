package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ecspl/league-api/internal/analytics"
	"github.com/ecspl/league-api/internal/models"
	"github.com/ecspl/league-api/internal/websocket"
)

type availabilityRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
	Response string    `json:"response"`
}

// availabilityEvent is what gets pushed to clients watching a match.
type availabilityEvent struct {
	Type      string    `json:"type"`
	MatchID   uuid.UUID `json:"match_id"`
	PlayerID  uuid.UUID `json:"player_id"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordAvailability handles POST /api/v1/matches/:id/availability. One row
// per (match, player): a repeat submission overwrites the previous response
// and refreshes responded_at. Connected clients watching the match are
// notified through the hub.
func RecordAvailability(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matchID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return badRequest(c, "id must be a valid UUID")
		}

		var req availabilityRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if req.PlayerID == uuid.Nil {
			return badRequest(c, "player_id is required")
		}

		resp, ok := analytics.ParseResponse(req.Response)
		if !ok {
			return badRequest(c, "response must be one of: available, unavailable, maybe (or their synonyms yes, no, tentative)")
		}

		var match models.Match
		if err := db.First(&match, "id = ?", matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "match not found",
				})
			}
			log.Error().Err(err).Str("match_id", matchID.String()).Msg("failed to load match")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}
		if match.Played() {
			return badRequest(c, "cannot record availability for a completed match")
		}

		var player models.Player
		if err := db.First(&player, "id = ?", req.PlayerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "player not found",
				})
			}
			log.Error().Err(err).Str("player_id", req.PlayerID.String()).Msg("failed to load player")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		now := time.Now().UTC()
		availability := models.Availability{
			MatchID:     matchID,
			PlayerID:    req.PlayerID,
			Response:    strings.ToLower(strings.TrimSpace(req.Response)),
			RespondedAt: now,
		}

		var existing models.Availability
		err = db.Where("match_id = ? AND player_id = ?", matchID, req.PlayerID).First(&existing).Error
		switch {
		case err == nil:
			existing.Response = availability.Response
			existing.RespondedAt = now
			if err := db.Save(&existing).Error; err != nil {
				log.Error().Err(err).Msg("failed to update availability")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "internal server error",
				})
			}
			availability = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&availability).Error; err != nil {
				log.Error().Err(err).Msg("failed to create availability")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "internal server error",
				})
			}
		default:
			log.Error().Err(err).Msg("failed to look up availability")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		event, err := json.Marshal(availabilityEvent{
			Type:      "availability_updated",
			MatchID:   matchID,
			PlayerID:  req.PlayerID,
			Response:  string(resp),
			Timestamp: now,
		})
		if err == nil {
			hub.BroadcastToMatch(matchID.String(), event)
		}

		return c.JSON(fiber.Map{
			"availability": availability,
			"normalized":   string(resp),
		})
	}
}
