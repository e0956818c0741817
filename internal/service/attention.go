package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coachpulse/backend/internal/logger"
	"github.com/coachpulse/backend/internal/models"
	"github.com/coachpulse/backend/internal/repository"
)

// Scoring model constants. Each component is capped by construction; the
// summed score is clamped to [0, 100].
const (
	attentionLookbackDays = 14

	gapLongDays  = 7
	gapShortDays = 3
	// gapNever stands in for "no check-in ever recorded" and trips the
	// long-gap branch unconditionally.
	gapNever = 999

	// Check-ins in the 14-day window below this count flag low engagement
	// when neither gap branch fired.
	lowEngagementThreshold = 7

	pointsGapLong       = 40
	pointsGapShort      = 25
	pointsLowEngagement = 20

	lowCompletionRatio       = 0.3
	moderateCompletionRatio  = 0.7
	pointsLowCompletion      = 30
	pointsModerateCompletion = 15

	veryHighStressAvg    = 8.0
	elevatedStressAvg    = 6.0
	recentStressWindow   = 3
	minSamplesForTrend   = 5
	stressTrendDelta     = 2.0
	pointsVeryHighStress = 30
	pointsElevatedStress = 20
	pointsStressTrend    = 10

	maxScore = 100
)

// memberIdentity carries the identity fields an assessment echoes back.
// Single lookups build it from the member record, aggregators from roster
// entries.
type memberIdentity struct {
	ID    string
	Name  *string
	Email string
}

// assessment is the per-member scoring result shared by the aggregators.
// completionRatio is kept alongside the score so cohort-level averages do
// not recompute it.
type assessment struct {
	score           *models.AttentionScore
	completionRatio float64
}

// scorer is the shared per-member scoring core. It is read-only against its
// collaborators and safe for concurrent use.
type scorer struct {
	checkIns       repository.CheckInRepository
	cohorts        repository.CohortRepository
	questionnaires repository.QuestionnaireRepository
	now            func() time.Time
}

func newScorer(checkIns repository.CheckInRepository, cohorts repository.CohortRepository, questionnaires repository.QuestionnaireRepository) *scorer {
	return &scorer{
		checkIns:       checkIns,
		cohorts:        cohorts,
		questionnaires: questionnaires,
		now:            time.Now,
	}
}

// assess fetches the member's recent activity and computes their attention
// score. Any collaborator failure fails the whole assessment; callers
// scoring a batch isolate the failure to this member.
func (s *scorer) assess(ctx context.Context, m memberIdentity) (*assessment, error) {
	now := s.now()
	from := now.AddDate(0, 0, -attentionLookbackDays)

	window, err := s.checkIns.GetByMemberAndDateRange(ctx, m.ID, from, now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent check-ins: %w", err)
	}

	last, err := s.checkIns.GetLastCheckIn(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last check-in: %w", err)
	}

	memberships, err := s.cohorts.GetActiveMemberships(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memberships: %w", err)
	}
	cohortIDs := make([]string, 0, len(memberships))
	for _, membership := range memberships {
		cohortIDs = append(cohortIDs, membership.CohortID)
	}

	ratio, err := s.completionRatio(ctx, m.ID, cohortIDs)
	if err != nil {
		return nil, err
	}

	signals := scoreSignals(window, last, ratio, now)
	total := 0
	for _, sig := range signals {
		total += sig.Points
	}
	if total > maxScore {
		total = maxScore
	}

	reasons := make([]string, 0, len(signals))
	actions := make([]string, 0, len(signals))
	for _, sig := range signals {
		reasons = append(reasons, sig.Reason())
		if action := sig.SuggestedAction(); action != "" {
			actions = append(actions, action)
		}
	}

	dates := make([]time.Time, 0, len(window))
	for _, c := range window {
		dates = append(dates, c.Date)
	}

	var lastAt *time.Time
	if last != nil {
		d := last.Date
		lastAt = &d
	}

	score := &models.AttentionScore{
		MemberID:         m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Score:            total,
		Priority:         models.PriorityForScore(total),
		Reasons:          reasons,
		SuggestedActions: actions,
		LastCheckIn:      lastAt,
		CheckInCount:     len(window),
		CurrentStreak:    CurrentStreak(dates, now),
	}

	return &assessment{score: score, completionRatio: ratio}, nil
}

// scoreSignals evaluates the additive point model against a member's
// trailing-14-day check-in window, their last check-in ever, and their
// questionnaire completion ratio. Pure function of its inputs.
func scoreSignals(window []models.CheckIn, last *models.CheckIn, completionRatio float64, now time.Time) []models.Signal {
	signals := make([]models.Signal, 0, 4)

	// Check-in component. The three branches are mutually exclusive and
	// evaluated gap-first.
	gap := gapNever
	if last != nil {
		gap = daysBetween(last.Date, now)
	}
	switch {
	case gap >= gapLongDays:
		signals = append(signals, models.Signal{Kind: models.SignalCheckInGapLong, Points: pointsGapLong, Days: gap})
	case gap >= gapShortDays:
		signals = append(signals, models.Signal{Kind: models.SignalCheckInGapShort, Points: pointsGapShort, Days: gap})
	case len(window) < lowEngagementThreshold:
		signals = append(signals, models.Signal{Kind: models.SignalLowEngagement, Points: pointsLowEngagement, Count: len(window)})
	}

	// Questionnaire component.
	switch {
	case completionRatio < lowCompletionRatio:
		signals = append(signals, models.Signal{Kind: models.SignalLowCompletion, Points: pointsLowCompletion, Ratio: completionRatio})
	case completionRatio < moderateCompletionRatio:
		signals = append(signals, models.Signal{Kind: models.SignalModerateCompletion, Points: pointsModerateCompletion, Ratio: completionRatio})
	}

	// Sentiment component. Level signal from the 3 most recent stress
	// samples; a trend bonus stacks on top when enough history exists.
	stress := stressValues(window)
	if len(stress) > 0 {
		recent := stress
		if len(recent) > recentStressWindow {
			recent = recent[:recentStressWindow]
		}
		recentAvg := mean(recent)

		switch {
		case recentAvg >= veryHighStressAvg:
			signals = append(signals, models.Signal{Kind: models.SignalVeryHighStress, Points: pointsVeryHighStress, AvgStress: recentAvg})
		case recentAvg >= elevatedStressAvg:
			signals = append(signals, models.Signal{Kind: models.SignalElevatedStress, Points: pointsElevatedStress, AvgStress: recentAvg})
		}

		if len(stress) >= minSamplesForTrend {
			oldAvg := mean(stress[recentStressWindow:])
			if recentAvg-oldAvg > stressTrendDelta {
				signals = append(signals, models.Signal{Kind: models.SignalStressIncreasing, Points: pointsStressTrend, AvgStress: recentAvg})
			}
		}
	}

	return signals
}

// stressValues extracts non-null perceived-stress readings, preserving the
// window's descending date order so index 0 is the most recent.
func stressValues(window []models.CheckIn) []float64 {
	values := make([]float64, 0, len(window))
	for _, c := range window {
		if c.Stress != nil {
			values = append(values, *c.Stress)
		}
	}
	return values
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

type attentionService struct {
	members repository.MemberRepository
	scorer  *scorer
	logger  logger.Logger
}

// NewAttentionService creates the single-member attention score service.
func NewAttentionService(members repository.MemberRepository, checkIns repository.CheckInRepository, cohorts repository.CohortRepository, questionnaires repository.QuestionnaireRepository, log logger.Logger) AttentionService {
	return &attentionService{
		members: members,
		scorer:  newScorer(checkIns, cohorts, questionnaires),
		logger:  log,
	}
}

func (s *attentionService) CalculateAttentionScore(ctx context.Context, memberID string) (*models.AttentionScore, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}
	if member == nil {
		return nil, nil
	}

	result, err := s.scorer.assess(ctx, memberIdentity{ID: member.ID, Name: member.Name, Email: member.Email})
	if err != nil {
		s.logger.WithContext(ctx).Error("attention score calculation failed",
			logger.String("member_id", memberID),
			logger.Err(err))
		return nil, err
	}

	return result.score, nil
}
