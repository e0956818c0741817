package models

import (
	"fmt"
	"time"
)

// Priority buckets an attention score for the coach review queue.
type Priority string

const (
	PriorityRed   Priority = "red"
	PriorityAmber Priority = "amber"
	PriorityGreen Priority = "green"
)

// Score thresholds for priority buckets.
const (
	PriorityRedThreshold   = 60
	PriorityAmberThreshold = 30
)

// PriorityForScore maps a clamped score to its bucket. Priority is always
// derived from the final score, never from individual components.
func PriorityForScore(score int) Priority {
	switch {
	case score >= PriorityRedThreshold:
		return PriorityRed
	case score >= PriorityAmberThreshold:
		return PriorityAmber
	default:
		return PriorityGreen
	}
}

// Rank orders priorities for sorting: red < amber < green.
func (p Priority) Rank() int {
	switch p {
	case PriorityRed:
		return 0
	case PriorityAmber:
		return 1
	default:
		return 2
	}
}

// SignalKind tags a scoring signal.
type SignalKind string

const (
	SignalCheckInGapLong     SignalKind = "checkin_gap_long"     // no check-in for 7+ days
	SignalCheckInGapShort    SignalKind = "checkin_gap_short"    // no check-in for 3-6 days
	SignalLowEngagement      SignalKind = "low_engagement"       // below half the expected cadence
	SignalLowCompletion      SignalKind = "low_completion"       // questionnaire ratio < 0.3
	SignalModerateCompletion SignalKind = "moderate_completion"  // questionnaire ratio < 0.7
	SignalVeryHighStress     SignalKind = "very_high_stress"     // recent avg >= 8
	SignalElevatedStress     SignalKind = "elevated_stress"      // recent avg >= 6
	SignalStressIncreasing   SignalKind = "stress_increasing"    // recent avg exceeds older avg by > 2
)

// Signal is one contribution to an attention score: a tagged variant with a
// numeric payload rather than a free-form string, so the scoring core stays
// testable without string matching. Display strings are rendered only when
// the outbound AttentionScore is assembled.
type Signal struct {
	Kind      SignalKind `json:"kind"`
	Points    int        `json:"points"`
	Days      int        `json:"days,omitempty"`
	Count     int        `json:"count,omitempty"`
	Ratio     float64    `json:"ratio,omitempty"`
	AvgStress float64    `json:"avg_stress,omitempty"`
}

// Reason renders the human-readable explanation for this signal.
func (s Signal) Reason() string {
	switch s.Kind {
	case SignalCheckInGapLong, SignalCheckInGapShort:
		return fmt.Sprintf("No check-in for %d days", s.Days)
	case SignalLowEngagement:
		return fmt.Sprintf("Low engagement: %d check-ins in the last 14 days", s.Count)
	case SignalLowCompletion:
		return fmt.Sprintf("Low questionnaire completion (%.0f%%)", s.Ratio*100)
	case SignalModerateCompletion:
		return fmt.Sprintf("Moderate questionnaire completion (%.0f%%)", s.Ratio*100)
	case SignalVeryHighStress:
		return fmt.Sprintf("Very high recent stress (avg %.1f/10)", s.AvgStress)
	case SignalElevatedStress:
		return fmt.Sprintf("Elevated recent stress (avg %.1f/10)", s.AvgStress)
	case SignalStressIncreasing:
		return "Stress levels are increasing"
	default:
		return string(s.Kind)
	}
}

// SuggestedAction renders the coach-facing follow-up for this signal, or ""
// when the signal carries no action of its own.
func (s Signal) SuggestedAction() string {
	switch s.Kind {
	case SignalCheckInGapLong:
		return "Contact member immediately"
	case SignalCheckInGapShort:
		return "Send a check-in reminder"
	case SignalLowEngagement:
		return "Review engagement with member"
	case SignalLowCompletion:
		return "Follow up on outstanding questionnaires"
	case SignalVeryHighStress:
		return "Schedule a wellness check-in"
	default:
		return ""
	}
}

// AttentionScore is the computed, request-scoped risk indicator for one
// member. Never persisted; rebuilt from current records on every request.
type AttentionScore struct {
	MemberID         string     `json:"member_id"`
	Name             *string    `json:"name,omitempty"`
	Email            string     `json:"email"`
	Score            int        `json:"score"` // 0-100, clamped
	Priority         Priority   `json:"priority"`
	Reasons          []string   `json:"reasons"`
	SuggestedActions []string   `json:"suggested_actions"`
	LastCheckIn      *time.Time `json:"last_check_in,omitempty"`
	CheckInCount     int        `json:"check_in_count"` // in the 14-day lookback window
	CurrentStreak    int        `json:"current_streak"`
}
