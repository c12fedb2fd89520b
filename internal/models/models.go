// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, default values, and relationships.
//
// The data model represents an adult-league soccer club where:
//   - A Season contains Leagues (divisions), and Leagues contain Teams
//   - Teams carry a roster of Players (many-to-many, since subs float between teams)
//   - Matches pair a home Team against an away Team on a date
//   - Players RSVP to Matches via Availability rows
//   - Coaches can file SubstituteRequests when they already know they'll be short
//
// The analytics engine reads Matches, rosters, Availabilities, and SubstituteRequests;
// it never writes any of them.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// Using UUIDs instead of auto-incrementing integers makes IDs safe to generate
	// client-side and avoids leaking record counts to end users.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string type
// plus constants. This gives us type safety — you can't accidentally pass a UserRole
// where a SubRequestStatus is expected — while keeping the values human-readable in the database.

// UserRole represents a user's global permission level across the platform.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"  // Full access: manage users, teams, matches, everything
	UserRoleCoach  UserRole = "coach"  // Can manage their team: file sub requests, chase RSVPs
	UserRolePlayer UserRole = "player" // Regular player: can RSVP and view schedules
)

// SubRequestStatus tracks the lifecycle of a manual substitute request.
// Only PENDING and APPROVED requests influence the substitution-needs analysis;
// FILLED and CANCELLED requests are kept for history but ignored by the reporter.
type SubRequestStatus string

const (
	SubRequestPending   SubRequestStatus = "PENDING"   // Filed, awaiting admin review
	SubRequestApproved  SubRequestStatus = "APPROVED"  // Admin confirmed the team needs subs
	SubRequestFilled    SubRequestStatus = "FILLED"    // Enough subs were assigned
	SubRequestCancelled SubRequestStatus = "CANCELLED" // Withdrawn by the coach or admin
)

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name (snake_cased and
// pluralized) as the table name by default: Player -> players, Season -> seasons, etc.
// Match is the one exception — "matches" is declared explicitly via TableName because
// GORM's pluralizer handles it fine but we want the name pinned for the migrations.

// User represents a registered person in the system. Users are created automatically
// the first time an authenticated request hits the API (lazy sync from the JWT claims).
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalID  *string   `gorm:"uniqueIndex:idx_users_external_id"` // Identity-provider user ID; pointer = nullable for legacy rows
	DisplayName string    `gorm:"not null"`
	Email       string    `gorm:"uniqueIndex;not null"`
	Role        UserRole  `gorm:"type:user_role;not null;default:'player'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Season is the top-level container: a playing period like "Fall 2025".
// Leagues (divisions) belong to a season, and everything else hangs off leagues.
type Season struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	IsCurrent bool      `gorm:"not null;default:false"` // Exactly one season should be current at a time
	CreatedAt time.Time
	UpdatedAt time.Time
	Leagues   []League `gorm:"foreignKey:SeasonID"`
}

// League is a division within a season (e.g. "Premier", "Classic").
// Teams belong to a league, and the league determines who plays whom.
type League struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SeasonID  uuid.UUID `gorm:"type:uuid;not null"`
	Season    Season    `gorm:"foreignKey:SeasonID"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Teams     []Team `gorm:"foreignKey:LeagueID"`
}

// Team is a club side within a league. Its roster is the set of Players linked
// through the player_teams join table. Roster size changes over the season as
// players register, transfer, or drop — the analytics always reads it fresh.
type Team struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeagueID  uuid.UUID `gorm:"type:uuid;not null"`
	League    League    `gorm:"foreignKey:LeagueID"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Players   []Player `gorm:"many2many:player_teams"`
}

// Player is a rostered participant. A player can belong to several teams at once
// (a Premier player subbing in Classic, for example), hence the many-to-many.
// The flags mirror how the club actually staffs match days: some players are
// primarily substitutes, some referee, some coach.
type Player struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           *uuid.UUID `gorm:"type:uuid"` // Link to the login account; nullable for roster-only entries
	User             *User      `gorm:"foreignKey:UserID"`
	Name             string     `gorm:"not null"`
	FavoritePosition *string    // Preferred position (e.g. "Keeper", "Winger"); nullable — many players don't set one
	IsCurrentPlayer  bool       `gorm:"not null;default:true"` // False once they leave the club; excluded from analysis
	IsSub            bool       `gorm:"not null;default:false"`
	IsCoach          bool       `gorm:"not null;default:false"`
	IsRef            bool       `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Teams            []Team `gorm:"many2many:player_teams"`
}

// Match pairs a home team against an away team on a date.
// Scores stay NULL until the match has been played and reported — the analytics
// uses "home score is NULL" as the definition of an unplayed match.
type Match struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date       time.Time `gorm:"type:date;not null;index"`
	Time       *string   // Kickoff time "15:04"; nullable because some fixtures are date-only until scheduled
	Location   string    `gorm:"not null;default:''"`
	HomeTeamID uuid.UUID `gorm:"type:uuid;not null"`
	HomeTeam   Team      `gorm:"foreignKey:HomeTeamID"`
	AwayTeamID uuid.UUID `gorm:"type:uuid;not null"`
	AwayTeam   Team      `gorm:"foreignKey:AwayTeamID"`
	HomeScore  *int      // NULL until reported
	AwayScore  *int      // NULL until reported
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName pins the table name so the migrations and the model can't drift.
func (Match) TableName() string { return "matches" }

// Played reports whether this match has a reported result.
func (m *Match) Played() bool {
	return m.HomeScore != nil
}

// Availability is one player's RSVP for one match — at most one row per
// (player, match), enforced by the composite unique index.
//
// Response is stored as the raw text the player (or the Discord bot, or the
// mobile app) submitted. Different entry points historically used different
// words for the same thing ("yes", "available", "attending"), so the analytics
// layer normalizes the text into a closed set rather than trusting this column.
// Absence of a row means the player never responded — no row is ever created
// for non-responders.
type Availability struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_player"`
	Match       Match     `gorm:"foreignKey:MatchID"`
	PlayerID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_player"`
	Player      Player    `gorm:"foreignKey:PlayerID"`
	Response    string    `gorm:"not null"` // Raw response text; normalized by the analytics layer
	RespondedAt time.Time `gorm:"not null"`
}

// SubstituteRequest is a coach/admin-filed request for substitutes, independent
// of the computed analytics. A PENDING or APPROVED request for a (match, team)
// overrides the heuristic: the coach knows something the RSVP data doesn't.
type SubstituteRequest struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Match       Match            `gorm:"foreignKey:MatchID"`
	TeamID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Team        Team             `gorm:"foreignKey:TeamID"`
	RequestedBy uuid.UUID        `gorm:"type:uuid;not null"` // Which user filed it
	Requester   User             `gorm:"foreignKey:RequestedBy"`
	SubsNeeded  int              `gorm:"not null;default:1"`
	Notes       *string          // Free-form context from the coach ("two on vacation")
	Status      SubRequestStatus `gorm:"type:sub_request_status;not null;default:'PENDING'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
