package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coachpulse/backend/internal/models"
	"github.com/coachpulse/backend/pkg/supabase"
)

type cohortRepository struct {
	client *supabase.Client
}

// NewCohortRepository creates a new cohort repository
func NewCohortRepository(client *supabase.Client) CohortRepository {
	return &cohortRepository{client: client}
}

func (r *cohortRepository) GetActiveMemberships(ctx context.Context, memberID string) ([]models.CohortMembership, error) {
	query := map[string]interface{}{
		"member_id": fmt.Sprintf("eq.%s", memberID),
		"status":    "eq.active",
		"select":    "*",
	}

	body, err := r.client.Query(ctx, "cohort_memberships", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get memberships: %w", err)
	}

	var memberships []models.CohortMembership
	if err := json.Unmarshal(body, &memberships); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return memberships, nil
}

func (r *cohortRepository) ResolveVisibleCohorts(ctx context.Context, coachID string, isAdmin bool) ([]string, error) {
	if isAdmin {
		// Administrators see every cohort.
		query := map[string]interface{}{
			"select": "id",
		}
		body, err := r.client.Query(ctx, "cohorts", query)
		if err != nil {
			return nil, fmt.Errorf("failed to list cohorts: %w", err)
		}

		var rows []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}

		ids := make([]string, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		return ids, nil
	}

	// Standard coaches see only cohorts they are explicitly assigned to.
	query := map[string]interface{}{
		"coach_id": fmt.Sprintf("eq.%s", coachID),
		"select":   "cohort_id",
	}
	body, err := r.client.Query(ctx, "coach_assignments", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get coach assignments: %w", err)
	}

	var rows []struct {
		CohortID string `json:"cohort_id"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CohortID)
	}
	return ids, nil
}

func (r *cohortRepository) GetRoster(ctx context.Context, cohortIDs []string) ([]models.RosterEntry, error) {
	if len(cohortIDs) == 0 {
		return nil, nil
	}

	// cohort_roster is a view joining active memberships with member and
	// cohort identity; simple select avoids PostgREST embedded resources.
	query := map[string]interface{}{
		"cohort_id": fmt.Sprintf("in.(%s)", strings.Join(cohortIDs, ",")),
		"select":    "*",
		"order":     "cohort_id.asc,member_id.asc",
	}

	body, err := r.client.Query(ctx, "cohort_roster", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	var entries []models.RosterEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return entries, nil
}
