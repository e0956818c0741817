package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/coachpulse/backend/internal/logger"
	"github.com/coachpulse/backend/internal/models"
)

func ptr[T any](v T) *T {
	return &v
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var errUpstream = errors.New("upstream read failed")

// mockCheckInRepository is a mock implementation of CheckInRepository for testing
type mockCheckInRepository struct {
	checkIns    map[string][]models.CheckIn // member id -> check-ins
	failFor     map[string]bool             // member ids whose reads fail
	failLastFor map[string]bool             // member ids whose GetLastCheckIn fails
}

func newMockCheckInRepository() *mockCheckInRepository {
	return &mockCheckInRepository{
		checkIns:    make(map[string][]models.CheckIn),
		failFor:     make(map[string]bool),
		failLastFor: make(map[string]bool),
	}
}

func (m *mockCheckInRepository) add(memberID string, date time.Time, stress *float64) {
	m.checkIns[memberID] = append(m.checkIns[memberID], models.CheckIn{
		ID:       fmt.Sprintf("checkin-%s-%d", memberID, len(m.checkIns[memberID])),
		MemberID: memberID,
		Date:     date,
		Stress:   stress,
	})
}

func (m *mockCheckInRepository) sorted(memberID string) []models.CheckIn {
	list := append([]models.CheckIn(nil), m.checkIns[memberID]...)
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list
}

func (m *mockCheckInRepository) GetByMemberAndDateRange(ctx context.Context, memberID string, from, to time.Time) ([]models.CheckIn, error) {
	if m.failFor[memberID] {
		return nil, errUpstream
	}
	var result []models.CheckIn
	for _, c := range m.sorted(memberID) {
		if !c.Date.Before(from) && !c.Date.After(to) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCheckInRepository) GetLastCheckIn(ctx context.Context, memberID string) (*models.CheckIn, error) {
	if m.failFor[memberID] || m.failLastFor[memberID] {
		return nil, errUpstream
	}
	list := m.sorted(memberID)
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// mockMemberRepository is a mock implementation of MemberRepository for testing
type mockMemberRepository struct {
	members map[string]*models.Member
	err     error
}

func newMockMemberRepository() *mockMemberRepository {
	return &mockMemberRepository{members: make(map[string]*models.Member)}
}

func (m *mockMemberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.members[id], nil
}

// mockCohortRepository is a mock implementation of CohortRepository for testing
type mockCohortRepository struct {
	memberships map[string][]models.CohortMembership // member id -> memberships
	assigned    map[string][]string                  // coach id -> cohort ids
	allCohorts  []string
	roster      []models.RosterEntry
}

func newMockCohortRepository() *mockCohortRepository {
	return &mockCohortRepository{
		memberships: make(map[string][]models.CohortMembership),
		assigned:    make(map[string][]string),
	}
}

func (m *mockCohortRepository) GetActiveMemberships(ctx context.Context, memberID string) ([]models.CohortMembership, error) {
	return m.memberships[memberID], nil
}

func (m *mockCohortRepository) ResolveVisibleCohorts(ctx context.Context, coachID string, isAdmin bool) ([]string, error) {
	if isAdmin {
		return m.allCohorts, nil
	}
	return m.assigned[coachID], nil
}

func (m *mockCohortRepository) GetRoster(ctx context.Context, cohortIDs []string) ([]models.RosterEntry, error) {
	visible := make(map[string]bool, len(cohortIDs))
	for _, id := range cohortIDs {
		visible[id] = true
	}
	var result []models.RosterEntry
	for _, entry := range m.roster {
		if visible[entry.CohortID] {
			result = append(result, entry)
		}
	}
	return result, nil
}

// mockQuestionnaireRepository is a mock implementation of
// QuestionnaireRepository for testing
type mockQuestionnaireRepository struct {
	bundles   []models.QuestionnaireBundle
	completed map[string]map[string]bool              // member id -> bundle id -> completed
	responses map[string]*models.QuestionnaireResponse // member id + "|" + bundle id
}

func newMockQuestionnaireRepository() *mockQuestionnaireRepository {
	return &mockQuestionnaireRepository{
		completed: make(map[string]map[string]bool),
		responses: make(map[string]*models.QuestionnaireResponse),
	}
}

func (m *mockQuestionnaireRepository) markCompleted(memberID, bundleID string) {
	if m.completed[memberID] == nil {
		m.completed[memberID] = make(map[string]bool)
	}
	m.completed[memberID][bundleID] = true
}

func (m *mockQuestionnaireRepository) GetActiveBundles(ctx context.Context, cohortIDs []string, weekFrom, weekTo int) ([]models.QuestionnaireBundle, error) {
	wanted := make(map[string]bool, len(cohortIDs))
	for _, id := range cohortIDs {
		wanted[id] = true
	}
	var result []models.QuestionnaireBundle
	for _, b := range m.bundles {
		if wanted[b.CohortID] && b.Active && b.WeekNumber >= weekFrom && b.WeekNumber <= weekTo {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockQuestionnaireRepository) CountCompletedResponses(ctx context.Context, memberID string, bundleIDs []string) (int, error) {
	count := 0
	for _, id := range bundleIDs {
		if m.completed[memberID][id] {
			count++
		}
	}
	return count, nil
}

func (m *mockQuestionnaireRepository) GetResponse(ctx context.Context, memberID, bundleID string) (*models.QuestionnaireResponse, error) {
	return m.responses[memberID+"|"+bundleID], nil
}

// fixedClock pins the scorer's notion of "now" for deterministic tests.
func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func testLogger() logger.Logger {
	return logger.NewSlogLogger(logger.Config{Level: logger.LevelError, Format: "text"})
}
