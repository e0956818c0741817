package service

import (
	"context"
	"errors"
	"time"

	"github.com/coachpulse/backend/internal/models"
)

// ErrCohortNotVisible is returned when a coach requests a cohort outside
// their assignment. Authorization is checked before any computation begins.
var ErrCohortNotVisible = errors.New("cohort is not visible to this coach")

// AttentionService computes per-member attention scores.
type AttentionService interface {
	// CalculateAttentionScore returns nil, nil when the member does not
	// exist. An upstream read failure propagates as an error; single-member
	// lookups fail loudly while batch callers isolate per-member failures.
	CalculateAttentionScore(ctx context.Context, memberID string) (*models.AttentionScore, error)
}

// InsightsService computes the roster-wide coach dashboard view.
type InsightsService interface {
	GetCoachInsights(ctx context.Context, coach models.CoachContext) (*models.CohortInsight, error)
}

// WeeklyService computes the week-scoped coach review queue.
type WeeklyService interface {
	// GetWeeklySummaries defaults weekStart to the current week's Monday
	// when nil. cohortID optionally restricts the roster to one cohort and
	// must be visible to the coach.
	GetWeeklySummaries(ctx context.Context, coach models.CoachContext, weekStart *time.Time, cohortID string) (*models.WeeklyReview, error)
}
