package analytics

// attendance.go — the two pure functions at the bottom of the pipeline:
// expected-attendance projection and urgency classification. Both are used by
// every report this package produces, so they live here as the single source
// of truth rather than being re-derived inline per endpoint.

// DefaultMaybeFactor is the weight a "maybe" response contributes to expected
// attendance. Half a confirmed player: simple linear weighting that discounts
// uncertain responses without overfitting to sparse history.
const DefaultMaybeFactor = 0.5

// Default threshold values for the club's 8v8 format. Both are configuration
// inputs on every endpoint so other formats (11v11 and so on) can reuse the
// same classifier by passing different values.
const (
	DefaultMinPlayers   = 8  // Minimum to field a legal side
	DefaultIdealPlayers = 13 // Enough for comfortable rotation
)

// ExpectedAttendance projects a headcount from RSVP tallies using the default
// maybe weighting. Non-decreasing in both arguments.
func ExpectedAttendance(availableCount, maybeCount int) float64 {
	return ExpectedAttendanceWithFactor(availableCount, maybeCount, DefaultMaybeFactor)
}

// ExpectedAttendanceWithFactor is ExpectedAttendance with an explicit maybe
// weight, for callers that tune the discount.
func ExpectedAttendanceWithFactor(availableCount, maybeCount int, maybeFactor float64) float64 {
	return float64(availableCount) + float64(maybeCount)*maybeFactor
}

// Urgency is the discrete classification of how badly a team needs substitutes
// for an upcoming match.
type Urgency string

const (
	UrgencyCritical Urgency = "critical" // Cannot field a legal side
	UrgencyHigh     Urgency = "high"     // Can field a side with no cover
	UrgencyMedium   Urgency = "medium"   // 1-3 subs only
	UrgencyLow      Urgency = "low"      // Sub depth present but below ideal
	UrgencyNone     Urgency = "none"     // At or above ideal turnout
)

// Rank orders urgencies by severity: critical sorts before high, and so on.
// Unknown values rank last.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 3
	case UrgencyNone:
		return 4
	}
	return 5
}

// ClassifyUrgency maps a projected attendance against the configured thresholds.
// The bands are half-open, inclusive on the lower edge:
//
//	expected <  min          → critical
//	min      ≤ expected < min+2   → high
//	min+2    ≤ expected < min+4   → medium
//	min+4    ≤ expected < ideal   → low
//	expected ≥ ideal              → none
func ClassifyUrgency(expectedAttendance float64, minPlayers, idealPlayers int) Urgency {
	min := float64(minPlayers)
	switch {
	case expectedAttendance < min:
		return UrgencyCritical
	case expectedAttendance < min+2:
		return UrgencyHigh
	case expectedAttendance < min+4:
		return UrgencyMedium
	case expectedAttendance < float64(idealPlayers):
		return UrgencyLow
	default:
		return UrgencyNone
	}
}
