// Package analytics implements the RSVP substitution-urgency engine: it projects
// expected attendance from raw RSVP tallies, classifies how urgently a team needs
// substitutes for an upcoming match, and profiles how reliably individual players
// respond and attend. Everything in this package is read-only over the club's
// match/roster/availability data — it computes, it never persists.
package analytics

import "strings"

// Response is the closed set of RSVP states a player can be in for a match.
// Historically the RSVP entry points (Discord bot, SMS, mobile app) stored
// loosely-typed synonym strings ("yes", "attending", "tentative"); this enum
// plus ParseResponse replaces that with one canonical vocabulary.
type Response string

const (
	ResponseAvailable   Response = "available"
	ResponseUnavailable Response = "unavailable"
	ResponseMaybe       Response = "maybe"
)

// ParseResponse normalizes free-text RSVP input to the canonical Response.
// Matching is case-insensitive and recognizes the synonyms the various entry
// points have used over the years. The second return value is false for any
// unrecognized string — callers must treat that as "no response", never as a
// silent match to some bucket.
func ParseResponse(raw string) (Response, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "available", "yes", "attending":
		return ResponseAvailable, true
	case "unavailable", "no", "not_attending":
		return ResponseUnavailable, true
	case "maybe", "tentative":
		return ResponseMaybe, true
	default:
		return "", false
	}
}
