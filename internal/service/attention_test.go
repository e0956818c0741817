package service

import (
	"context"
	"testing"
	"time"

	"github.com/coachpulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signalKinds(signals []models.Signal) []models.SignalKind {
	kinds := make([]models.SignalKind, 0, len(signals))
	for _, s := range signals {
		kinds = append(kinds, s.Kind)
	}
	return kinds
}

func totalPoints(signals []models.Signal) int {
	total := 0
	for _, s := range signals {
		total += s.Points
	}
	return total
}

func TestScoreSignals_LongGap(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	last := &models.CheckIn{Date: day(2025, 3, 10)}

	signals := scoreSignals(nil, last, 1.0, now)
	require.Len(t, signals, 1)
	assert.Equal(t, models.SignalCheckInGapLong, signals[0].Kind)
	assert.Equal(t, 40, signals[0].Points)
	assert.Equal(t, 10, signals[0].Days)
}

func TestScoreSignals_NeverCheckedIn(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	signals := scoreSignals(nil, nil, 1.0, now)
	require.Len(t, signals, 1)
	assert.Equal(t, models.SignalCheckInGapLong, signals[0].Kind)
	assert.Equal(t, 999, signals[0].Days)
}

func TestScoreSignals_ShortGap(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	last := &models.CheckIn{Date: day(2025, 3, 17)}

	signals := scoreSignals([]models.CheckIn{{Date: day(2025, 3, 17)}}, last, 1.0, now)
	require.Len(t, signals, 1)
	assert.Equal(t, models.SignalCheckInGapShort, signals[0].Kind)
	assert.Equal(t, 25, signals[0].Points)
	assert.Equal(t, 3, signals[0].Days)
}

func TestScoreSignals_LowEngagement(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	window := []models.CheckIn{
		{Date: day(2025, 3, 20)},
		{Date: day(2025, 3, 15)},
	}

	signals := scoreSignals(window, &window[0], 1.0, now)
	require.Len(t, signals, 1)
	assert.Equal(t, models.SignalLowEngagement, signals[0].Kind)
	assert.Equal(t, 20, signals[0].Points)
	assert.Equal(t, 2, signals[0].Count)
}

func TestScoreSignals_GapBranchesAreExclusive(t *testing.T) {
	// A 10-day gap implies few window check-ins, but only the gap signal
	// may fire: the check-in branches are first-match-wins.
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	window := []models.CheckIn{{Date: day(2025, 3, 10)}}

	signals := scoreSignals(window, &window[0], 1.0, now)
	assert.Equal(t, []models.SignalKind{models.SignalCheckInGapLong}, signalKinds(signals))
}

func TestScoreSignals_QuestionnaireThresholds(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	window := fullWindow(now)
	last := &window[0]

	low := scoreSignals(window, last, 0.2, now)
	assert.Equal(t, []models.SignalKind{models.SignalLowCompletion}, signalKinds(low))
	assert.Equal(t, 30, totalPoints(low))

	moderate := scoreSignals(window, last, 0.5, now)
	assert.Equal(t, []models.SignalKind{models.SignalModerateCompletion}, signalKinds(moderate))
	assert.Equal(t, 15, totalPoints(moderate))

	healthy := scoreSignals(window, last, 0.7, now)
	assert.Empty(t, healthy)
}

func TestScoreSignals_StressLevels(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	veryHigh := fullWindow(now)
	veryHigh[0].Stress = ptr(9.0)
	veryHigh[1].Stress = ptr(8.0)
	veryHigh[2].Stress = ptr(8.5)
	signals := scoreSignals(veryHigh, &veryHigh[0], 1.0, now)
	assert.Equal(t, []models.SignalKind{models.SignalVeryHighStress}, signalKinds(signals))
	assert.Equal(t, 30, totalPoints(signals))

	elevated := fullWindow(now)
	elevated[0].Stress = ptr(6.0)
	elevated[1].Stress = ptr(7.0)
	elevated[2].Stress = ptr(6.5)
	signals = scoreSignals(elevated, &elevated[0], 1.0, now)
	assert.Equal(t, []models.SignalKind{models.SignalElevatedStress}, signalKinds(signals))
	assert.Equal(t, 20, totalPoints(signals))
}

func TestScoreSignals_StressTrendBonus(t *testing.T) {
	// Recent-3 average 9, older-2 average 4: the trend bonus stacks on the
	// level score.
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	window := fullWindow(now)
	window[0].Stress = ptr(9.0)
	window[1].Stress = ptr(9.0)
	window[2].Stress = ptr(9.0)
	window[3].Stress = ptr(4.0)
	window[4].Stress = ptr(4.0)

	signals := scoreSignals(window, &window[0], 1.0, now)
	assert.Equal(t, []models.SignalKind{models.SignalVeryHighStress, models.SignalStressIncreasing}, signalKinds(signals))
	assert.Equal(t, 40, totalPoints(signals))
}

func TestScoreSignals_TrendNeedsFiveSamples(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	window := fullWindow(now)
	window[0].Stress = ptr(9.0)
	window[1].Stress = ptr(9.0)
	window[2].Stress = ptr(9.0)
	window[3].Stress = ptr(4.0)

	signals := scoreSignals(window, &window[0], 1.0, now)
	assert.Equal(t, []models.SignalKind{models.SignalVeryHighStress}, signalKinds(signals))
}

// fullWindow builds seven consecutive daily check-ins ending "today", enough
// to keep the low-engagement branch quiet.
func fullWindow(now time.Time) []models.CheckIn {
	window := make([]models.CheckIn, 7)
	for i := range window {
		window[i] = models.CheckIn{Date: toDate(now).AddDate(0, 0, -i)}
	}
	return window
}

func newAttentionFixture(now time.Time) (*attentionService, *mockMemberRepository, *mockCheckInRepository, *mockCohortRepository, *mockQuestionnaireRepository) {
	members := newMockMemberRepository()
	checkIns := newMockCheckInRepository()
	cohorts := newMockCohortRepository()
	questionnaires := newMockQuestionnaireRepository()

	svc := &attentionService{
		members: members,
		scorer:  newScorer(checkIns, cohorts, questionnaires),
		logger:  testLogger(),
	}
	svc.scorer.now = fixedClock(now)
	return svc, members, checkIns, cohorts, questionnaires
}

func TestCalculateAttentionScore_UnknownMember(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, _, _, _, _ := newAttentionFixture(now)

	score, err := svc.CalculateAttentionScore(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, score)
}

func TestCalculateAttentionScore_UpstreamFailure(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, members, checkIns, _, _ := newAttentionFixture(now)
	members.members["member-1"] = &models.Member{ID: "member-1", Email: "m1@example.com"}
	checkIns.failFor["member-1"] = true

	_, err := svc.CalculateAttentionScore(context.Background(), "member-1")
	assert.Error(t, err)
}

func TestCalculateAttentionScore_TenDayGap(t *testing.T) {
	// Last check-in 10 days ago, no stress data, no questionnaires due:
	// only the long-gap component contributes.
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, members, checkIns, _, _ := newAttentionFixture(now)
	members.members["member-1"] = &models.Member{ID: "member-1", Email: "m1@example.com"}
	checkIns.add("member-1", day(2025, 3, 10), nil)

	score, err := svc.CalculateAttentionScore(context.Background(), "member-1")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 40, score.Score)
	assert.Equal(t, models.PriorityAmber, score.Priority)
	assert.Equal(t, []string{"No check-in for 10 days"}, score.Reasons)
	assert.Equal(t, []string{"Contact member immediately"}, score.SuggestedActions)
	assert.Equal(t, 0, score.CurrentStreak)
	assert.Equal(t, 1, score.CheckInCount)
	require.NotNil(t, score.LastCheckIn)
	assert.Equal(t, day(2025, 3, 10), *score.LastCheckIn)
}

func TestCalculateAttentionScore_LowCompletionOnly(t *testing.T) {
	// Engaged member (checked in yesterday, 7 check-ins in the window) with
	// one completed questionnaire of five eligible: questionnaire component
	// alone puts them at amber.
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, members, checkIns, cohorts, questionnaires := newAttentionFixture(now)
	members.members["member-1"] = &models.Member{ID: "member-1", Email: "m1@example.com"}
	for i := 1; i <= 7; i++ {
		checkIns.add("member-1", day(2025, 3, 20-i), nil)
	}
	cohorts.memberships["member-1"] = []models.CohortMembership{
		{ID: "ms-1", CohortID: "cohort-1", MemberID: "member-1", Status: models.MembershipActive},
	}
	for week := 1; week <= 4; week++ {
		questionnaires.bundles = append(questionnaires.bundles, models.QuestionnaireBundle{
			ID: string(rune('a' + week)), CohortID: "cohort-1", WeekNumber: week, Active: true,
		})
	}
	questionnaires.bundles = append(questionnaires.bundles, models.QuestionnaireBundle{
		ID: "extra", CohortID: "cohort-1", WeekNumber: 4, Active: true,
	})
	questionnaires.markCompleted("member-1", "b")

	score, err := svc.CalculateAttentionScore(context.Background(), "member-1")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 30, score.Score)
	assert.Equal(t, models.PriorityAmber, score.Priority)
	assert.Equal(t, []string{"Low questionnaire completion (20%)"}, score.Reasons)
}

func TestCalculateAttentionScore_StressWithTrend(t *testing.T) {
	// Checked in today, full questionnaire credit, recent stress 9 against
	// older stress 4: high stress plus the increasing-trend bonus.
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, members, checkIns, _, _ := newAttentionFixture(now)
	members.members["member-1"] = &models.Member{ID: "member-1", Email: "m1@example.com"}
	stress := []*float64{ptr(9.0), ptr(9.0), ptr(9.0), ptr(4.0), ptr(4.0), nil, nil}
	for i, s := range stress {
		checkIns.add("member-1", day(2025, 3, 20-i), s)
	}

	score, err := svc.CalculateAttentionScore(context.Background(), "member-1")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 40, score.Score)
	assert.Equal(t, models.PriorityAmber, score.Priority)
	assert.Equal(t, 7, score.CurrentStreak)
}

func TestCalculateAttentionScore_ClampsAtHundred(t *testing.T) {
	// Long gap + low completion + very high worsening stress sums to 110
	// before the clamp.
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, members, checkIns, cohorts, questionnaires := newAttentionFixture(now)
	members.members["member-1"] = &models.Member{ID: "member-1", Email: "m1@example.com"}
	stress := []*float64{ptr(9.0), ptr(9.0), ptr(9.0), ptr(4.0), ptr(4.0)}
	for i, s := range stress {
		checkIns.add("member-1", day(2025, 3, 10-i), s)
	}
	cohorts.memberships["member-1"] = []models.CohortMembership{
		{ID: "ms-1", CohortID: "cohort-1", MemberID: "member-1", Status: models.MembershipActive},
	}
	questionnaires.bundles = []models.QuestionnaireBundle{
		{ID: "b1", CohortID: "cohort-1", WeekNumber: 1, Active: true},
	}

	score, err := svc.CalculateAttentionScore(context.Background(), "member-1")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 100, score.Score)
	assert.Equal(t, models.PriorityRed, score.Priority)
}
