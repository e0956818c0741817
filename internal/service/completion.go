package service

import (
	"context"
	"fmt"
)

// Questionnaire completion looks at bundles for the first four program
// weeks. A rolling window is a candidate later; the eligible set today is
// small enough that a fixed window matches how programs are authored.
const (
	completionWeekFrom = 1
	completionWeekTo   = 4
)

// completionRatio computes the member's questionnaire completion ratio over
// the active bundles of their cohorts in the eligible week window. With no
// eligible bundles there is nothing to complete, so the ratio is 1.0. Only
// completed responses count; in-progress earns no partial credit.
func (s *scorer) completionRatio(ctx context.Context, memberID string, cohortIDs []string) (float64, error) {
	bundles, err := s.questionnaires.GetActiveBundles(ctx, cohortIDs, completionWeekFrom, completionWeekTo)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch active bundles: %w", err)
	}
	if len(bundles) == 0 {
		return 1.0, nil
	}

	bundleIDs := make([]string, 0, len(bundles))
	for _, b := range bundles {
		bundleIDs = append(bundleIDs, b.ID)
	}

	completed, err := s.questionnaires.CountCompletedResponses(ctx, memberID, bundleIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed responses: %w", err)
	}

	ratio := float64(completed) / float64(len(bundles))
	if ratio < 0 {
		return 0, nil
	}
	if ratio > 1 {
		return 1, nil
	}
	return ratio, nil
}
