package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/coachpulse/backend/internal/logger"
	"github.com/coachpulse/backend/internal/models"
	"github.com/coachpulse/backend/internal/repository"
)

// A member is active when their last check-in falls within this many days.
const activeWindowDays = 7

type insightsService struct {
	cohorts     repository.CohortRepository
	scorer      *scorer
	concurrency int
	logger      logger.Logger
}

// NewInsightsService creates the coach dashboard service. concurrency bounds
// the per-member scoring fan-out.
func NewInsightsService(cohorts repository.CohortRepository, checkIns repository.CheckInRepository, questionnaires repository.QuestionnaireRepository, concurrency int, log logger.Logger) InsightsService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &insightsService{
		cohorts:     cohorts,
		scorer:      newScorer(checkIns, cohorts, questionnaires),
		concurrency: concurrency,
		logger:      log,
	}
}

func (s *insightsService) GetCoachInsights(ctx context.Context, coach models.CoachContext) (*models.CohortInsight, error) {
	cohortIDs, err := s.cohorts.ResolveVisibleCohorts(ctx, coach.CoachID, coach.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve visible cohorts: %w", err)
	}

	roster, err := s.cohorts.GetRoster(ctx, cohortIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	entries := dedupeRoster(roster)

	results, err := s.assessAll(ctx, entries)
	if err != nil {
		return nil, err
	}

	now := s.scorer.now()
	insight := &models.CohortInsight{
		TotalMembers: len(entries),
		MemberScores: make([]models.AttentionScore, 0, len(entries)),
	}

	var sumCheckInsPerWeek, sumCompletion float64
	scored := 0
	for _, result := range results {
		if result == nil {
			continue
		}
		scored++
		score := result.score
		if score.LastCheckIn != nil && daysBetween(*score.LastCheckIn, now) <= activeWindowDays {
			insight.ActiveMembers++
		}
		// The lookback window spans two weeks, so halve the count.
		sumCheckInsPerWeek += float64(score.CheckInCount) / 2
		sumCompletion += result.completionRatio
		insight.MemberScores = append(insight.MemberScores, *score)
	}
	insight.InactiveMembers = insight.TotalMembers - insight.ActiveMembers

	if scored > 0 {
		insight.AvgCheckInsPerWeek = sumCheckInsPerWeek / float64(scored)
		insight.AvgQuestionnaireCompletion = sumCompletion / float64(scored)
	}

	sort.SliceStable(insight.MemberScores, func(i, j int) bool {
		return insight.MemberScores[i].Score > insight.MemberScores[j].Score
	})

	return insight, nil
}

// assessAll scores every roster entry concurrently. A member whose score
// computation fails is logged and left nil in the result slice; only caller
// cancellation aborts the batch.
func (s *insightsService) assessAll(ctx context.Context, entries []models.RosterEntry) ([]*assessment, error) {
	results := make([]*assessment, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			result, err := s.scorer.assess(gctx, memberIdentity{ID: entry.MemberID, Name: entry.Name, Email: entry.Email})
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.WithContext(gctx).Warn("skipping member after failed score computation",
					logger.String("member_id", entry.MemberID),
					logger.Err(err))
				return nil
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// dedupeRoster collapses a member appearing in several cohorts to their
// first roster entry, keeping that cohort as the attribution.
func dedupeRoster(roster []models.RosterEntry) []models.RosterEntry {
	seen := make(map[string]struct{}, len(roster))
	entries := make([]models.RosterEntry, 0, len(roster))
	for _, entry := range roster {
		if _, ok := seen[entry.MemberID]; ok {
			continue
		}
		seen[entry.MemberID] = struct{}{}
		entries = append(entries, entry)
	}
	return entries
}
