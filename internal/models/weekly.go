package models

import "time"

// WeeklyStats is the per-member check-in statistics block for one ISO week.
// Averages are over non-null samples only; a field with zero samples stays
// nil rather than reporting zero.
type WeeklyStats struct {
	CheckIns         int      `json:"check_ins"`
	ExpectedCheckIns int      `json:"expected_check_ins"`
	CheckInRate      float64  `json:"check_in_rate"`
	AvgWeight        *float64 `json:"avg_weight,omitempty"`
	AvgSteps         *float64 `json:"avg_steps,omitempty"`
	AvgCalories      *float64 `json:"avg_calories,omitempty"`
	AvgSleepQuality  *float64 `json:"avg_sleep_quality,omitempty"`
	AvgStress        *float64 `json:"avg_stress,omitempty"`
	// WeightTrend is last minus first non-null weight inside the window.
	// Nil with fewer than two samples. First-vs-last, not a regression,
	// so coaches can reproduce the number by eye.
	WeightTrend *float64 `json:"weight_trend,omitempty"`
}

// WeeklyClientSummary is one member's row in the coach review queue for a
// specific week. Computed on demand, never persisted.
type WeeklyClientSummary struct {
	MemberID            string              `json:"member_id"`
	Name                *string             `json:"name,omitempty"`
	Email               string              `json:"email"`
	CohortID            string              `json:"cohort_id"`
	CohortName          string              `json:"cohort_name"`
	Stats               WeeklyStats         `json:"stats"`
	LastCheckIn         *time.Time          `json:"last_check_in,omitempty"`
	Attention           *AttentionScore     `json:"attention,omitempty"` // nil when score computation failed
	QuestionnaireStatus QuestionnaireStatus `json:"questionnaire_status"`
}

// WeeklyReview is the response for the coach review-queue page.
type WeeklyReview struct {
	WeekStart time.Time             `json:"week_start"`
	WeekEnd   time.Time             `json:"week_end"`
	Clients   []WeeklyClientSummary `json:"clients"`
}

// CohortInsight is the roster-wide dashboard view for a coach.
type CohortInsight struct {
	TotalMembers               int              `json:"total_members"`
	ActiveMembers              int              `json:"active_members"` // last check-in within 7 days
	InactiveMembers            int              `json:"inactive_members"`
	AvgCheckInsPerWeek         float64          `json:"avg_check_ins_per_week"`
	AvgQuestionnaireCompletion float64          `json:"avg_questionnaire_completion"`
	MemberScores               []AttentionScore `json:"member_scores"` // sorted by score descending
}
