package analytics

// fake_store_test.go — an in-memory Store for exercising the analyzers without
// a database. Matches are returned as stored (window filtering by date only);
// the GORM-backed filters are covered by the real implementation.

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecspl/league-api/internal/models"
)

type fakeStore struct {
	matches      []models.Match
	rosters      map[uuid.UUID][]models.Player       // team -> roster
	availability map[uuid.UUID][]models.Availability // match -> RSVP rows
	subRequests  []models.SubstituteRequest
	players      []models.Player

	rosterErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rosters:      map[uuid.UUID][]models.Player{},
		availability: map[uuid.UUID][]models.Availability{},
	}
}

func (s *fakeStore) MatchesInWindow(_ context.Context, w MatchWindow) ([]models.Match, error) {
	out := []models.Match{}
	for _, m := range s.matches {
		if m.Date.Before(w.From) || m.Date.After(w.To) {
			continue
		}
		if !w.IncludePlayed && m.Played() {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *fakeStore) MatchByID(_ context.Context, id uuid.UUID) (*models.Match, error) {
	for i := range s.matches {
		if s.matches[i].ID == id {
			return &s.matches[i], nil
		}
	}
	return nil, ErrMatchNotFound
}

func (s *fakeStore) TeamRoster(_ context.Context, teamID uuid.UUID) ([]models.Player, error) {
	if s.rosterErr != nil {
		return nil, s.rosterErr
	}
	return s.rosters[teamID], nil
}

func (s *fakeStore) MatchAvailability(_ context.Context, matchID uuid.UUID, playerIDs []uuid.UUID) ([]models.Availability, error) {
	allowed := map[uuid.UUID]bool{}
	for _, id := range playerIDs {
		allowed[id] = true
	}
	out := []models.Availability{}
	for _, av := range s.availability[matchID] {
		if allowed[av.PlayerID] {
			out = append(out, av)
		}
	}
	return out, nil
}

func (s *fakeStore) SubRequests(_ context.Context, matchIDs []uuid.UUID, statuses []models.SubRequestStatus) ([]models.SubstituteRequest, error) {
	inMatch := map[uuid.UUID]bool{}
	for _, id := range matchIDs {
		inMatch[id] = true
	}
	inStatus := map[models.SubRequestStatus]bool{}
	for _, st := range statuses {
		inStatus[st] = true
	}
	out := []models.SubstituteRequest{}
	for _, req := range s.subRequests {
		if inMatch[req.MatchID] && inStatus[req.Status] {
			out = append(out, req)
		}
	}
	return out, nil
}

func (s *fakeStore) Players(_ context.Context, scope PlayerScope) ([]models.Player, error) {
	if scope.PlayerID == nil {
		return s.players, nil
	}
	for _, p := range s.players {
		if p.ID == *scope.PlayerID {
			return []models.Player{p}, nil
		}
	}
	return []models.Player{}, nil
}

func (s *fakeStore) MatchesBetween(_ context.Context, from, to time.Time, _ *uuid.UUID) ([]models.Match, error) {
	out := []models.Match{}
	for _, m := range s.matches {
		if m.Date.Before(from) || m.Date.After(to) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *fakeStore) PlayerAvailability(_ context.Context, playerID uuid.UUID, matchIDs []uuid.UUID) ([]models.Availability, error) {
	inMatch := map[uuid.UUID]bool{}
	for _, id := range matchIDs {
		inMatch[id] = true
	}
	out := []models.Availability{}
	for _, avails := range s.availability {
		for _, av := range avails {
			if av.PlayerID == playerID && inMatch[av.MatchID] {
				out = append(out, av)
			}
		}
	}
	return out, nil
}

// --- builders ---

func testPlayers(names ...string) []models.Player {
	out := make([]models.Player, 0, len(names))
	for _, name := range names {
		out = append(out, models.Player{ID: uuid.New(), Name: name})
	}
	return out
}

func rsvp(matchID uuid.UUID, playerID uuid.UUID, response string) models.Availability {
	return models.Availability{
		ID:          uuid.New(),
		MatchID:     matchID,
		PlayerID:    playerID,
		Response:    response,
		RespondedAt: time.Now(),
	}
}
