package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coachpulse/backend/internal/logger"
	"github.com/coachpulse/backend/internal/models"
	"github.com/coachpulse/backend/internal/repository"
)

type weeklyService struct {
	cohorts        repository.CohortRepository
	checkIns       repository.CheckInRepository
	questionnaires repository.QuestionnaireRepository
	scorer         *scorer
	defaultCadence int
	concurrency    int
	logger         logger.Logger
}

// NewWeeklyService creates the weekly review-queue service. defaultCadence
// is the system-wide expected check-ins per week used when neither member
// nor cohort carries an override.
func NewWeeklyService(cohorts repository.CohortRepository, checkIns repository.CheckInRepository, questionnaires repository.QuestionnaireRepository, defaultCadence, concurrency int, log logger.Logger) WeeklyService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &weeklyService{
		cohorts:        cohorts,
		checkIns:       checkIns,
		questionnaires: questionnaires,
		scorer:         newScorer(checkIns, cohorts, questionnaires),
		defaultCadence: defaultCadence,
		concurrency:    concurrency,
		logger:         log,
	}
}

func (s *weeklyService) GetWeeklySummaries(ctx context.Context, coach models.CoachContext, weekStart *time.Time, cohortID string) (*models.WeeklyReview, error) {
	visible, err := s.cohorts.ResolveVisibleCohorts(ctx, coach.CoachID, coach.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve visible cohorts: %w", err)
	}

	cohortIDs := visible
	if cohortID != "" {
		if !slices.Contains(visible, cohortID) {
			return nil, ErrCohortNotVisible
		}
		cohortIDs = []string{cohortID}
	}

	now := s.scorer.now()
	ref := now
	if weekStart != nil {
		ref = *weekStart
	}
	start := mondayOf(ref)
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)

	roster, err := s.cohorts.GetRoster(ctx, cohortIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	entries := dedupeRoster(roster)

	results := make([]*models.WeeklyClientSummary, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			summary, err := s.buildSummary(gctx, entry, start, end, now)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.WithContext(gctx).Warn("skipping member after failed weekly summary",
					logger.String("member_id", entry.MemberID),
					logger.Err(err))
				return nil
			}
			results[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	clients := make([]models.WeeklyClientSummary, 0, len(results))
	for _, summary := range results {
		if summary != nil {
			clients = append(clients, *summary)
		}
	}
	rankClients(clients)

	return &models.WeeklyReview{WeekStart: start, WeekEnd: end, Clients: clients}, nil
}

// buildSummary assembles one member's row. A failed attention score degrades
// to a nil Attention field; failures fetching the week's check-ins or the
// questionnaire status fail the row.
func (s *weeklyService) buildSummary(ctx context.Context, entry models.RosterEntry, start, end, now time.Time) (*models.WeeklyClientSummary, error) {
	window, err := s.checkIns.GetByMemberAndDateRange(ctx, entry.MemberID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch week check-ins: %w", err)
	}

	cadence := EffectiveCadence(entry.MemberCadence, entry.CohortCadence, s.defaultCadence)
	stats := weekStats(window, cadence, start, now)

	status, err := s.questionnaireStatus(ctx, entry, now)
	if err != nil {
		return nil, err
	}

	summary := &models.WeeklyClientSummary{
		MemberID:            entry.MemberID,
		Name:                entry.Name,
		Email:               entry.Email,
		CohortID:            entry.CohortID,
		CohortName:          entry.CohortName,
		Stats:               stats,
		QuestionnaireStatus: status,
	}

	result, err := s.scorer.assess(ctx, memberIdentity{ID: entry.MemberID, Name: entry.Name, Email: entry.Email})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WithContext(ctx).Warn("weekly summary missing attention score",
			logger.String("member_id", entry.MemberID),
			logger.Err(err))
	} else {
		summary.Attention = result.score
		summary.LastCheckIn = result.score.LastCheckIn
	}
	if summary.LastCheckIn == nil && len(window) > 0 {
		d := window[0].Date
		summary.LastCheckIn = &d
	}

	return summary, nil
}

// weekStats computes the member's check-in statistics for one week window.
// window is ordered descending by date. Expected check-ins shrink with a
// partially elapsed week but never drop below 1, so the rate denominator
// stays positive.
func weekStats(window []models.CheckIn, cadence int, weekStart, now time.Time) models.WeeklyStats {
	elapsed := daysBetween(weekStart, now) + 1
	if elapsed < 1 {
		elapsed = 1
	}
	if elapsed > 7 {
		elapsed = 7
	}
	expected := cadence
	if elapsed < expected {
		expected = elapsed
	}

	stats := models.WeeklyStats{
		CheckIns:         len(window),
		ExpectedCheckIns: expected,
		CheckInRate:      float64(len(window)) / float64(expected),
	}

	stats.AvgWeight = meanOf(window, func(c models.CheckIn) *float64 { return c.Weight })
	stats.AvgSteps = meanOf(window, func(c models.CheckIn) *float64 { return c.Steps })
	stats.AvgCalories = meanOf(window, func(c models.CheckIn) *float64 { return c.Calories })
	stats.AvgSleepQuality = meanOf(window, func(c models.CheckIn) *float64 { return c.SleepQuality })
	stats.AvgStress = meanOf(window, func(c models.CheckIn) *float64 { return c.Stress })

	// window is descending, so index 0 holds the chronologically last sample.
	weights := make([]float64, 0, len(window))
	for _, c := range window {
		if c.Weight != nil {
			weights = append(weights, *c.Weight)
		}
	}
	if len(weights) >= 2 {
		trend := weights[0] - weights[len(weights)-1]
		stats.WeightTrend = &trend
	}

	return stats
}

// meanOf averages a nullable field over its non-null samples, nil when no
// samples exist.
func meanOf(window []models.CheckIn, field func(models.CheckIn) *float64) *float64 {
	values := make([]float64, 0, len(window))
	for _, c := range window {
		if v := field(c); v != nil {
			values = append(values, *v)
		}
	}
	if len(values) == 0 {
		return nil
	}
	avg := mean(values)
	return &avg
}

// questionnaireStatus classifies the member against the bundle active for
// their cohort's current program week.
func (s *weeklyService) questionnaireStatus(ctx context.Context, entry models.RosterEntry, now time.Time) (models.QuestionnaireStatus, error) {
	week := cohortWeekNumber(entry.CohortStartDate, now)

	bundles, err := s.questionnaires.GetActiveBundles(ctx, []string{entry.CohortID}, week, week)
	if err != nil {
		return "", fmt.Errorf("failed to fetch current-week bundle: %w", err)
	}
	if len(bundles) == 0 {
		return models.QuestionnaireNone, nil
	}

	response, err := s.questionnaires.GetResponse(ctx, entry.MemberID, bundles[0].ID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch questionnaire response: %w", err)
	}
	if response == nil {
		return models.QuestionnaireNotStarted, nil
	}

	switch response.Status {
	case models.ResponseCompleted:
		return models.QuestionnaireCompleted, nil
	case models.ResponseInProgress:
		return models.QuestionnaireInProgress, nil
	default:
		return models.QuestionnaireNotStarted, nil
	}
}

// cohortWeekNumber is the cohort's current 1-based program week. Cohorts
// that have not started yet sit in week 1.
func cohortWeekNumber(cohortStart, now time.Time) int {
	days := daysBetween(cohortStart, now)
	if days < 0 {
		return 1
	}
	return days/7 + 1
}

// mondayOf returns Monday 00:00:00 of the ISO week containing t.
func mondayOf(t time.Time) time.Time {
	d := toDate(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// rankClients orders the review queue: priority first (red before amber
// before green), score descending within a tier, then check-in rate
// ascending so the least engaged surface first. A row without a computed
// attention score ranks as green with score 0.
func rankClients(clients []models.WeeklyClientSummary) {
	sort.SliceStable(clients, func(i, j int) bool {
		ri, si := rankAndScore(clients[i].Attention)
		rj, sj := rankAndScore(clients[j].Attention)
		if ri != rj {
			return ri < rj
		}
		if si != sj {
			return si > sj
		}
		return clients[i].Stats.CheckInRate < clients[j].Stats.CheckInRate
	})
}

func rankAndScore(a *models.AttentionScore) (rank, score int) {
	if a == nil {
		return models.PriorityGreen.Rank(), 0
	}
	return a.Priority.Rank(), a.Score
}
