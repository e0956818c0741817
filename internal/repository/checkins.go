package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coachpulse/backend/internal/models"
	"github.com/coachpulse/backend/pkg/supabase"
)

type checkInRepository struct {
	client *supabase.Client
}

// NewCheckInRepository creates a new check-in repository
func NewCheckInRepository(client *supabase.Client) CheckInRepository {
	return &checkInRepository{client: client}
}

func (r *checkInRepository) GetByMemberAndDateRange(ctx context.Context, memberID string, from, to time.Time) ([]models.CheckIn, error) {
	query := map[string]interface{}{
		"member_id": fmt.Sprintf("eq.%s", memberID),
		"date":      fmt.Sprintf("gte.%s", from.Format("2006-01-02")),
		"select":    "*",
		"order":     "date.desc",
	}
	// PostgREST allows one value per key in this client; apply the upper
	// bound with the and= conjunction instead.
	query["and"] = fmt.Sprintf("(date.lte.%s)", to.Format("2006-01-02"))

	body, err := r.client.Query(ctx, "check_ins", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-ins: %w", err)
	}

	var checkIns []models.CheckIn
	if err := json.Unmarshal(body, &checkIns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return checkIns, nil
}

func (r *checkInRepository) GetLastCheckIn(ctx context.Context, memberID string) (*models.CheckIn, error) {
	query := map[string]interface{}{
		"member_id": fmt.Sprintf("eq.%s", memberID),
		"select":    "*",
		"order":     "date.desc",
		"limit":     "1",
	}

	body, err := r.client.Query(ctx, "check_ins", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get last check-in: %w", err)
	}

	var checkIns []models.CheckIn
	if err := json.Unmarshal(body, &checkIns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(checkIns) == 0 {
		return nil, nil
	}
	return &checkIns[0], nil
}
