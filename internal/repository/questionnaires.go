package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coachpulse/backend/internal/models"
	"github.com/coachpulse/backend/pkg/supabase"
)

type questionnaireRepository struct {
	client *supabase.Client
}

// NewQuestionnaireRepository creates a new questionnaire repository
func NewQuestionnaireRepository(client *supabase.Client) QuestionnaireRepository {
	return &questionnaireRepository{client: client}
}

func (r *questionnaireRepository) GetActiveBundles(ctx context.Context, cohortIDs []string, weekFrom, weekTo int) ([]models.QuestionnaireBundle, error) {
	if len(cohortIDs) == 0 {
		return nil, nil
	}

	query := map[string]interface{}{
		"cohort_id":   fmt.Sprintf("in.(%s)", strings.Join(cohortIDs, ",")),
		"active":      "eq.true",
		"week_number": fmt.Sprintf("gte.%d", weekFrom),
		"and":         fmt.Sprintf("(week_number.lte.%d)", weekTo),
		"select":      "*",
	}

	body, err := r.client.Query(ctx, "questionnaire_bundles", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get bundles: %w", err)
	}

	var bundles []models.QuestionnaireBundle
	if err := json.Unmarshal(body, &bundles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return bundles, nil
}

func (r *questionnaireRepository) CountCompletedResponses(ctx context.Context, memberID string, bundleIDs []string) (int, error) {
	if len(bundleIDs) == 0 {
		return 0, nil
	}

	query := map[string]interface{}{
		"member_id": fmt.Sprintf("eq.%s", memberID),
		"bundle_id": fmt.Sprintf("in.(%s)", strings.Join(bundleIDs, ",")),
		"status":    "eq.completed",
	}

	count, err := r.client.Count(ctx, "questionnaire_responses", query)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}

	return count, nil
}

func (r *questionnaireRepository) GetResponse(ctx context.Context, memberID, bundleID string) (*models.QuestionnaireResponse, error) {
	query := map[string]interface{}{
		"member_id": fmt.Sprintf("eq.%s", memberID),
		"bundle_id": fmt.Sprintf("eq.%s", bundleID),
		"select":    "*",
		"limit":     "1",
	}

	body, err := r.client.Query(ctx, "questionnaire_responses", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get response: %w", err)
	}

	var responses []models.QuestionnaireResponse
	if err := json.Unmarshal(body, &responses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(responses) == 0 {
		return nil, nil
	}
	return &responses[0], nil
}
