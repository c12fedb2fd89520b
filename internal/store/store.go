// Package store implements the analytics read interface on top of GORM.
// It is the only place the analytics data paths touch the database; everything
// above it works with plain model values. All queries here are reads — the
// write paths (RSVP upserts, sub-request filing) live in the handlers that own
// those workflows.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecspl/league-api/internal/analytics"
	"github.com/ecspl/league-api/internal/models"
)

// Store wraps a GORM handle. It satisfies analytics.Store.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// MatchesInWindow returns matches dated inside [w.From, w.To], teams and
// leagues preloaded, ordered by date then kickoff time. Played matches are
// excluded unless the window asks for them.
func (s *Store) MatchesInWindow(ctx context.Context, w analytics.MatchWindow) ([]models.Match, error) {
	q := s.db.WithContext(ctx).
		Preload("HomeTeam.League").
		Preload("AwayTeam.League").
		Where("matches.date >= ? AND matches.date <= ?", w.From, w.To)

	if !w.IncludePlayed {
		q = q.Where("matches.home_score IS NULL")
	}
	if w.TeamID != nil {
		q = q.Where("matches.home_team_id = ? OR matches.away_team_id = ?", *w.TeamID, *w.TeamID)
	}
	if w.LeagueID != nil {
		// Either side being in the league keeps the match, so both team rows
		// are joined under distinct aliases.
		q = q.
			Joins("JOIN teams AS home_sides ON home_sides.id = matches.home_team_id").
			Joins("JOIN teams AS away_sides ON away_sides.id = matches.away_team_id").
			Where("home_sides.league_id = ? OR away_sides.league_id = ?", *w.LeagueID, *w.LeagueID)
	}

	var matches []models.Match
	if err := q.Order("matches.date, matches.time").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// MatchByID resolves one match with both sides preloaded. A missing row is
// reported as analytics.ErrMatchNotFound so callers can branch on it without
// knowing about GORM.
func (s *Store) MatchByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := s.db.WithContext(ctx).
		Preload("HomeTeam.League").
		Preload("AwayTeam.League").
		First(&match, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, analytics.ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// TeamRoster returns the team's current players through the player_teams join
// table. An empty roster is an empty slice, not an error.
func (s *Store) TeamRoster(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	var players []models.Player
	err := s.db.WithContext(ctx).
		Joins("JOIN player_teams ON player_teams.player_id = players.id").
		Where("player_teams.team_id = ? AND players.is_current_player = ?", teamID, true).
		Order("players.name").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

// MatchAvailability returns the RSVP rows for one match restricted to the
// given players.
func (s *Store) MatchAvailability(ctx context.Context, matchID uuid.UUID, playerIDs []uuid.UUID) ([]models.Availability, error) {
	if len(playerIDs) == 0 {
		return []models.Availability{}, nil
	}
	var avails []models.Availability
	err := s.db.WithContext(ctx).
		Where("match_id = ? AND player_id IN ?", matchID, playerIDs).
		Find(&avails).Error
	if err != nil {
		return nil, err
	}
	return avails, nil
}

// SubRequests returns the manual substitute requests for the given matches in
// the given statuses.
func (s *Store) SubRequests(ctx context.Context, matchIDs []uuid.UUID, statuses []models.SubRequestStatus) ([]models.SubstituteRequest, error) {
	if len(matchIDs) == 0 {
		return []models.SubstituteRequest{}, nil
	}
	var requests []models.SubstituteRequest
	err := s.db.WithContext(ctx).
		Where("match_id IN ? AND status IN ?", matchIDs, statuses).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Players returns current players in scope with their team memberships
// preloaded. The league filter joins through player_teams, so Distinct guards
// against a player appearing once per team.
func (s *Store) Players(ctx context.Context, scope analytics.PlayerScope) ([]models.Player, error) {
	q := s.db.WithContext(ctx).
		Preload("Teams").
		Where("players.is_current_player = ?", true)

	if scope.PlayerID != nil {
		q = q.Where("players.id = ?", *scope.PlayerID)
	}
	if scope.TeamID != nil {
		q = q.
			Joins("JOIN player_teams ON player_teams.player_id = players.id").
			Where("player_teams.team_id = ?", *scope.TeamID)
	}
	if scope.LeagueID != nil {
		q = q.
			Joins("JOIN player_teams AS league_links ON league_links.player_id = players.id").
			Joins("JOIN teams AS league_teams ON league_teams.id = league_links.team_id").
			Where("league_teams.league_id = ?", *scope.LeagueID).
			Distinct("players.*")
	}

	var players []models.Player
	if err := q.Order("players.name").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// MatchesBetween returns every match dated inside [from, to], played or not,
// optionally restricted to a season (through either side's league).
func (s *Store) MatchesBetween(ctx context.Context, from, to time.Time, seasonID *uuid.UUID) ([]models.Match, error) {
	q := s.db.WithContext(ctx).
		Where("matches.date >= ? AND matches.date <= ?", from, to)

	if seasonID != nil {
		q = q.
			Joins("JOIN teams AS home_sides ON home_sides.id = matches.home_team_id").
			Joins("JOIN leagues AS home_leagues ON home_leagues.id = home_sides.league_id").
			Joins("JOIN teams AS away_sides ON away_sides.id = matches.away_team_id").
			Joins("JOIN leagues AS away_leagues ON away_leagues.id = away_sides.league_id").
			Where("home_leagues.season_id = ? OR away_leagues.season_id = ?", *seasonID, *seasonID)
	}

	var matches []models.Match
	if err := q.Order("matches.date").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// PlayerAvailability returns one player's RSVP rows across a match set.
func (s *Store) PlayerAvailability(ctx context.Context, playerID uuid.UUID, matchIDs []uuid.UUID) ([]models.Availability, error) {
	if len(matchIDs) == 0 {
		return []models.Availability{}, nil
	}
	var avails []models.Availability
	err := s.db.WithContext(ctx).
		Where("player_id = ? AND match_id IN ?", playerID, matchIDs).
		Find(&avails).Error
	if err != nil {
		return nil, err
	}
	return avails, nil
}
