package models

import "time"

// Member represents a person under coaching. Owned by the identity/roster
// subsystem; the engine only reads it.
type Member struct {
	ID             string    `json:"id"`
	Name           *string   `json:"name,omitempty"`
	Email          string    `json:"email"`
	CheckInCadence *int      `json:"checkin_cadence,omitempty"` // per-member override, check-ins/week
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CheckIn is a member's self-reported daily record. At most one exists per
// member per calendar date; rows are immutable once written by the entry
// subsystem.
type CheckIn struct {
	ID           string    `json:"id"`
	MemberID     string    `json:"member_id"`
	Date         time.Time `json:"date"`
	Weight       *float64  `json:"weight,omitempty"`
	Steps        *float64  `json:"steps,omitempty"`
	Calories     *float64  `json:"calories,omitempty"`
	SleepQuality *float64  `json:"sleep_quality,omitempty"`
	Stress       *float64  `json:"stress,omitempty"` // perceived stress, 0-10
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MembershipStatus is the lifecycle state of a cohort membership.
type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipPaused   MembershipStatus = "paused"
	MembershipInactive MembershipStatus = "inactive"
)

// CohortMembership associates a member with a cohort. The engine only
// considers memberships with active status.
type CohortMembership struct {
	ID       string           `json:"id"`
	CohortID string           `json:"cohort_id"`
	MemberID string           `json:"member_id"`
	Status   MembershipStatus `json:"status"`
	JoinedAt time.Time        `json:"joined_at"`
	LeftAt   *time.Time       `json:"left_at,omitempty"`
}

// Cohort is a named group of members following a shared coaching program.
type Cohort struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	CheckInCadence *int       `json:"checkin_cadence,omitempty"` // per-cohort override, check-ins/week
}

// RosterEntry is one member of one cohort as seen by a coach. A member in
// multiple cohorts yields multiple entries; aggregators dedupe by member ID.
type RosterEntry struct {
	MemberID        string    `json:"member_id"`
	Name            *string   `json:"name,omitempty"`
	Email           string    `json:"email"`
	MemberCadence   *int      `json:"member_cadence,omitempty"`
	CohortID        string    `json:"cohort_id"`
	CohortName      string    `json:"cohort_name"`
	CohortStartDate time.Time `json:"cohort_start_date"`
	CohortCadence   *int      `json:"cohort_cadence,omitempty"`
}

// QuestionnaireBundle is the set of questions active for a cohort and
// program week.
type QuestionnaireBundle struct {
	ID         string `json:"id"`
	CohortID   string `json:"cohort_id"`
	WeekNumber int    `json:"week_number"`
	Active     bool   `json:"active"`
}

// ResponseStatus is the completion state of a questionnaire response.
type ResponseStatus string

const (
	ResponseNotStarted ResponseStatus = "not_started"
	ResponseInProgress ResponseStatus = "in_progress"
	ResponseCompleted  ResponseStatus = "completed"
)

// QuestionnaireResponse is one member's response to one bundle.
type QuestionnaireResponse struct {
	ID        string         `json:"id"`
	MemberID  string         `json:"member_id"`
	BundleID  string         `json:"bundle_id"`
	Status    ResponseStatus `json:"status"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// QuestionnaireStatus classifies a member's standing against the bundle
// active for the cohort's current program week.
type QuestionnaireStatus string

const (
	QuestionnaireCompleted  QuestionnaireStatus = "completed"
	QuestionnaireInProgress QuestionnaireStatus = "in_progress"
	QuestionnaireNotStarted QuestionnaireStatus = "not_started"
	QuestionnaireNone       QuestionnaireStatus = "no_questionnaire"
)

// CoachContext identifies the coach making a request and whether they hold
// the administrator role. Populated by the auth middleware.
type CoachContext struct {
	CoachID string `json:"coach_id"`
	IsAdmin bool   `json:"is_admin"`
}
