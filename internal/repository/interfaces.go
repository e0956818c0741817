package repository

import (
	"context"
	"time"

	"github.com/coachpulse/backend/internal/models"
)

// CheckInRepository defines the read contract for check-in records.
type CheckInRepository interface {
	// GetByMemberAndDateRange returns check-ins ordered descending by date.
	GetByMemberAndDateRange(ctx context.Context, memberID string, from, to time.Time) ([]models.CheckIn, error)
	// GetLastCheckIn returns the most recent check-in, or nil if the member
	// has never checked in.
	GetLastCheckIn(ctx context.Context, memberID string) (*models.CheckIn, error)
}

// MemberRepository defines the read contract for member identity.
type MemberRepository interface {
	// GetByID returns nil, nil when no member exists with the given ID.
	GetByID(ctx context.Context, id string) (*models.Member, error)
}

// CohortRepository defines the read contract for cohorts and rosters.
type CohortRepository interface {
	// GetActiveMemberships returns the member's active cohort memberships.
	GetActiveMemberships(ctx context.Context, memberID string) ([]models.CohortMembership, error)
	// ResolveVisibleCohorts returns the cohort IDs the coach may see:
	// all cohorts for administrators, assigned cohorts otherwise.
	ResolveVisibleCohorts(ctx context.Context, coachID string, isAdmin bool) ([]string, error)
	// GetRoster returns active members of the given cohorts joined with
	// member and cohort identity.
	GetRoster(ctx context.Context, cohortIDs []string) ([]models.RosterEntry, error)
}

// QuestionnaireRepository defines the read contract for questionnaire
// bundles and responses.
type QuestionnaireRepository interface {
	// GetActiveBundles returns active bundles for the cohorts whose week
	// number falls in [weekFrom, weekTo].
	GetActiveBundles(ctx context.Context, cohortIDs []string, weekFrom, weekTo int) ([]models.QuestionnaireBundle, error)
	// CountCompletedResponses counts the member's completed responses
	// against the given bundles.
	CountCompletedResponses(ctx context.Context, memberID string, bundleIDs []string) (int, error)
	// GetResponse returns the member's response to a bundle, or nil if the
	// member never opened it.
	GetResponse(ctx context.Context, memberID, bundleID string) (*models.QuestionnaireResponse, error)
}
