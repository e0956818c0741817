package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coachpulse/backend/internal/models"
	"github.com/coachpulse/backend/pkg/supabase"
)

type memberRepository struct {
	client *supabase.Client
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(client *supabase.Client) MemberRepository {
	return &memberRepository{client: client}
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*",
	}

	body, err := r.client.Query(ctx, "members", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	var members []models.Member
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(members) == 0 {
		return nil, nil
	}
	return &members[0], nil
}
