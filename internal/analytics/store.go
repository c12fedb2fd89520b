package analytics

// store.go — the read-only data contracts this engine consumes. The matches,
// rosters, availabilities, and substitute requests are owned and written by the
// rest of the application; analytics only ever queries them. Defining the
// interface here (at the consumer) keeps the engine testable against an
// in-memory fake and keeps GORM out of the computation code — the concrete
// implementation lives in internal/store.

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ecspl/league-api/internal/models"
)

// ErrMatchNotFound is the first-class "no such match" outcome for single-match
// lookups. Handlers map it to a 404.
var ErrMatchNotFound = errors.New("match not found")

// MatchWindow bounds a match query by date, with optional league/team scoping.
// From and To are inclusive dates. When IncludePlayed is false, matches with a
// reported score are excluded.
type MatchWindow struct {
	From          time.Time
	To            time.Time
	LeagueID      *uuid.UUID
	TeamID        *uuid.UUID
	IncludePlayed bool
}

// PlayerScope narrows the player set for reliability profiling. All fields are
// optional; a zero value means "all current players".
type PlayerScope struct {
	PlayerID *uuid.UUID
	TeamID   *uuid.UUID
	LeagueID *uuid.UUID
}

// Store is everything the analytics engine needs to read. Implementations must
// return matches with their home/away teams (and the teams' leagues) resolved,
// and players with their team memberships resolved, since the reports include
// those names.
type Store interface {
	// MatchesInWindow returns matches inside the window ordered by date then
	// kickoff time.
	MatchesInWindow(ctx context.Context, w MatchWindow) ([]models.Match, error)

	// MatchByID resolves one match. Returns ErrMatchNotFound when no row
	// exists — not a generic error, so callers can branch on it.
	MatchByID(ctx context.Context, id uuid.UUID) (*models.Match, error)

	// TeamRoster returns the team's current players. An empty slice (not an
	// error) for a team with no registered players.
	TeamRoster(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)

	// MatchAvailability returns the RSVP rows for one match restricted to the
	// given players. At most one row per player.
	MatchAvailability(ctx context.Context, matchID uuid.UUID, playerIDs []uuid.UUID) ([]models.Availability, error)

	// SubRequests returns the manual substitute requests for the given matches
	// whose status is in the given set.
	SubRequests(ctx context.Context, matchIDs []uuid.UUID, statuses []models.SubRequestStatus) ([]models.SubstituteRequest, error)

	// Players returns current players in scope, with team memberships loaded.
	Players(ctx context.Context, scope PlayerScope) ([]models.Player, error)

	// MatchesBetween returns all matches (played or not) dated inside
	// [from, to], optionally restricted to a season. Used for the historical
	// lookback in reliability profiling.
	MatchesBetween(ctx context.Context, from, to time.Time, seasonID *uuid.UUID) ([]models.Match, error)

	// PlayerAvailability returns one player's RSVP rows across a match set.
	PlayerAvailability(ctx context.Context, playerID uuid.UUID, matchIDs []uuid.UUID) ([]models.Availability, error)
}
