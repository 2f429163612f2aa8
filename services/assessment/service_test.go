package assessment

import (
	"plato/models"
	"plato/services/apperrors"
	"plato/services/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testInterval = 4 * 7 * 24 * time.Hour

func newTestService(t *testing.T, db *gorm.DB, scoring ScoringClient, clk clock.Clock) *Service {
	t.Helper()
	limiter := NewRateLimiter(db, 4, time.Minute, clk)
	return NewService(db, scoring, clk, testInterval, limiter)
}

func optID(id uint) *uint { return &id }

func TestCreateWithAnswers(t *testing.T) {
	db := openTestDB(t)
	phq, _, analytic := seedQuestionnaire(t, db)
	scoring := &stubScoring{platoScore: 5.0, severity: 1, depressionType: "mild", analysis: "narrative"}
	clk := &clock.Fixed{Current: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	service := newTestService(t, db, scoring, clk)

	result, err := service.CreateWithAnswers(1, []SubmittedAnswer{
		{QuestionID: phq.ID, SelectedOptionID: optID(phq.Options[0].ID), Index: 0},
		{QuestionID: phq.ID, SelectedOptionID: optID(phq.Options[1].ID), Index: 1},
		{QuestionID: analytic.ID, Answer: "not great", Index: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Assessment.PhqScore) // 1 + 2
	assert.Equal(t, 0, result.Assessment.BdiScore)
	assert.Equal(t, 5.0, result.Assessment.PlatoScore)
	assert.Equal(t, 1, result.Assessment.Severity)
	assert.Equal(t, "mild", result.DepressionType)
	assert.Equal(t, "narrative", result.Analysis)
	assert.Nil(t, result.Assessment.StoppedDate)

	require.Len(t, result.Assessment.Answers, 3)
	for i, ans := range result.Assessment.Answers {
		assert.Equal(t, i, ans.Index)
		assert.False(t, ans.IsCheckin)
	}
}

func TestCreateWithAnswersSupersedesPriorActive(t *testing.T) {
	db := openTestDB(t)
	phq, _, analytic := seedQuestionnaire(t, db)
	scoring := &stubScoring{platoScore: 2.0, severity: 0, depressionType: "none", analysis: "ok"}
	clk := &clock.Fixed{Current: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	service := newTestService(t, db, scoring, clk)

	prior := models.Assessment{UserID: 1}
	prior.CreatedAt = clk.Current.Add(-testInterval)
	require.NoError(t, db.Create(&prior).Error)

	result, err := service.CreateWithAnswers(1, []SubmittedAnswer{
		{QuestionID: phq.ID, SelectedOptionID: optID(phq.Options[0].ID), Index: 0},
		{QuestionID: analytic.ID, Answer: "better now", Index: 1},
	})
	require.NoError(t, err)

	var reloaded models.Assessment
	require.NoError(t, db.First(&reloaded, prior.ID).Error)
	require.NotNil(t, reloaded.StoppedDate)
	assert.Equal(t, models.StopReasonSuperseded, reloaded.StopReason)

	// Exactly one active assessment remains
	var active int64
	require.NoError(t, db.Model(&models.Assessment{}).
		Where("user_id = ? AND stopped_date IS NULL", 1).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)
	assert.Nil(t, result.Assessment.StoppedDate)
}

func TestCreateWithAnswersCooldown(t *testing.T) {
	db := openTestDB(t)
	phq, _, analytic := seedQuestionnaire(t, db)
	scoring := &stubScoring{}
	clk := &clock.Fixed{Current: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	service := newTestService(t, db, scoring, clk)

	prior := models.Assessment{UserID: 1}
	prior.CreatedAt = clk.Current.Add(-testInterval + time.Hour)
	require.NoError(t, db.Create(&prior).Error)

	_, err := service.CreateWithAnswers(1, []SubmittedAnswer{
		{QuestionID: phq.ID, SelectedOptionID: optID(phq.Options[0].ID), Index: 0},
		{QuestionID: analytic.ID, Answer: "text", Index: 1},
	})

	var cdErr *apperrors.CooldownError
	require.ErrorAs(t, err, &cdErr)
	assert.Equal(t, prior.CreatedAt.Add(testInterval), cdErr.NextValidTime)
	assert.Zero(t, scoring.assessCalls)
}

func TestEligibilityBoundaryInclusive(t *testing.T) {
	db := openTestDB(t)
	clk := &clock.Fixed{Current: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	service := newTestService(t, db, &stubScoring{}, clk)

	created := clk.Current
	prior := models.Assessment{UserID: 1}
	prior.CreatedAt = created
	require.NoError(t, db.Create(&prior).Error)

	clk.Current = created.Add(testInterval - time.Second)
	eligibility, err := service.IsEligible(1)
	require.NoError(t, err)
	assert.False(t, eligibility.IsValid)

	clk.Current = created.Add(testInterval)
	eligibility, err = service.IsEligible(1)
	require.NoError(t, err)
	assert.True(t, eligibility.IsValid)
}

func TestEligibilityWithoutPriorAssessment(t *testing.T) {
	db := openTestDB(t)
	service := newTestService(t, db, &stubScoring{}, &clock.Fixed{Current: time.Now()})

	eligibility, err := service.IsEligible(1)
	require.NoError(t, err)
	assert.True(t, eligibility.IsValid)
	assert.Nil(t, eligibility.NextValidTime)
}

func TestCreateWithAnswersRateLimited(t *testing.T) {
	db := openTestDB(t)
	_, _, _ = seedQuestionnaire(t, db)
	scoring := &stubScoring{}
	base := time.Unix(1_750_000_020, 0).UTC()
	clk := &clock.Fixed{Current: base.Add(10 * time.Second)}
	service := newTestService(t, db, scoring, clk)

	for i := 0; i < 4; i++ {
		a := models.Assessment{UserID: 1}
		a.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, db.Create(&a).Error)
	}

	_, err := service.CreateWithAnswers(1, []SubmittedAnswer{{QuestionID: 1, Answer: "x"}})

	var rlErr *apperrors.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 50*time.Second, rlErr.RetryAfter)
	assert.Zero(t, scoring.assessCalls)
}

func TestCreateWithAnswersScoringFailureLeavesNoState(t *testing.T) {
	db := openTestDB(t)
	phq, _, analytic := seedQuestionnaire(t, db)
	scoring := &stubScoring{assessErr: errServiceDown}
	clk := &clock.Fixed{Current: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	service := newTestService(t, db, scoring, clk)

	_, err := service.CreateWithAnswers(1, []SubmittedAnswer{
		{QuestionID: phq.ID, SelectedOptionID: optID(phq.Options[0].ID), Index: 0},
		{QuestionID: analytic.ID, Answer: "text", Index: 1},
	})

	var extErr *apperrors.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "assess", extErr.Op)

	var assessments, answers int64
	db.Model(&models.Assessment{}).Count(&assessments)
	db.Model(&models.AssessmentAnswer{}).Count(&answers)
	assert.Zero(t, assessments)
	assert.Zero(t, answers)
}

func TestCreateWithAnswersAnalysisFailureLeavesNoState(t *testing.T) {
	db := openTestDB(t)
	phq, _, analytic := seedQuestionnaire(t, db)
	scoring := &stubScoring{platoScore: 4.2, severity: 2, analyzeErr: errServiceDown}
	clk := &clock.Fixed{Current: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	service := newTestService(t, db, scoring, clk)

	_, err := service.CreateWithAnswers(1, []SubmittedAnswer{
		{QuestionID: phq.ID, SelectedOptionID: optID(phq.Options[0].ID), Index: 0},
		{QuestionID: analytic.ID, Answer: "text", Index: 1},
	})

	var extErr *apperrors.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "analyze-depression", extErr.Op)
	assert.Equal(t, 1, scoring.assessCalls)

	var assessments, answers int64
	db.Model(&models.Assessment{}).Count(&assessments)
	db.Model(&models.AssessmentAnswer{}).Count(&answers)
	assert.Zero(t, assessments)
	assert.Zero(t, answers)
}

func TestCreateWithAnswersRequiresAnalyticAnswer(t *testing.T) {
	db := openTestDB(t)
	phq, _, _ := seedQuestionnaire(t, db)
	scoring := &stubScoring{}
	service := newTestService(t, db, scoring, &clock.Fixed{Current: time.Now()})

	_, err := service.CreateWithAnswers(1, []SubmittedAnswer{
		{QuestionID: phq.ID, SelectedOptionID: optID(phq.Options[0].ID), Index: 0},
	})

	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Zero(t, scoring.assessCalls)
}

func seedSuggestedProtocols(t *testing.T, db *gorm.DB, assessmentID uint) []models.Protocol {
	t.Helper()

	protocols := []models.Protocol{
		{Name: "Behavioral Activation"},
		{Name: "Cognitive Restructuring"},
		{Name: "Mindfulness Training"},
	}
	require.NoError(t, db.Create(&protocols).Error)

	suggested := models.SuggestedProtocol{
		AssessmentID:     assessmentID,
		FirstProtocolID:  &protocols[0].ID,
		SecondProtocolID: &protocols[1].ID,
		ThirdProtocolID:  &protocols[2].ID,
	}
	require.NoError(t, db.Create(&suggested).Error)
	return protocols
}

func TestSelectProtocolFromSuggestedSet(t *testing.T) {
	db := openTestDB(t)
	clk := &clock.Fixed{Current: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	service := newTestService(t, db, &stubScoring{}, clk)

	assessment := models.Assessment{UserID: 1}
	require.NoError(t, db.Create(&assessment).Error)
	protocols := seedSuggestedProtocols(t, db, assessment.ID)

	updated, err := service.SelectProtocol(1, protocols[1].ID)
	require.NoError(t, err)
	require.NotNil(t, updated.ProtocolID)
	assert.Equal(t, protocols[1].ID, *updated.ProtocolID)
	require.NotNil(t, updated.ProtocolSelectedDate)
	assert.True(t, updated.ProtocolSelectedDate.Equal(clk.Current))
}

func TestSelectProtocolOutsideSuggestedSet(t *testing.T) {
	db := openTestDB(t)
	service := newTestService(t, db, &stubScoring{}, &clock.Fixed{Current: time.Now()})

	assessment := models.Assessment{UserID: 1}
	require.NoError(t, db.Create(&assessment).Error)
	protocols := seedSuggestedProtocols(t, db, assessment.ID)

	other := models.Protocol{Name: "Sleep Hygiene"}
	require.NoError(t, db.Create(&other).Error)

	_, err := service.SelectProtocol(1, other.ID)

	var protoErr *apperrors.InvalidProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, []uint{protocols[0].ID, protocols[1].ID, protocols[2].ID}, protoErr.ValidIDs)
}

func TestSelectProtocolOnStoppedAssessment(t *testing.T) {
	db := openTestDB(t)
	service := newTestService(t, db, &stubScoring{}, &clock.Fixed{Current: time.Now()})

	stopped := time.Now().Add(-time.Hour)
	assessment := models.Assessment{UserID: 1, StoppedDate: &stopped}
	require.NoError(t, db.Create(&assessment).Error)
	seedSuggestedProtocols(t, db, assessment.ID)

	_, err := service.SelectProtocol(1, 1)

	var conflictErr *apperrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestStopAssessment(t *testing.T) {
	db := openTestDB(t)
	clk := &clock.Fixed{Current: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	service := newTestService(t, db, &stubScoring{}, clk)

	assessment := models.Assessment{UserID: 1}
	require.NoError(t, db.Create(&assessment).Error)

	updated, err := service.Stop(1, "feeling better")
	require.NoError(t, err)
	require.NotNil(t, updated.StoppedDate)
	assert.Equal(t, "feeling better", updated.StopReason)

	// A second stop is a conflict, not a silent no-op
	_, err = service.Stop(1, "again")
	var conflictErr *apperrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestStopWithoutAssessment(t *testing.T) {
	db := openTestDB(t)
	service := newTestService(t, db, &stubScoring{}, &clock.Fixed{Current: time.Now()})

	_, err := service.Stop(1, "reason")

	var nfErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestEndAssessmentPeriod(t *testing.T) {
	db := openTestDB(t)
	sweepTime := time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC)
	clk := &clock.Fixed{Current: sweepTime}
	service := newTestService(t, db, &stubScoring{}, clk)

	// A: protocol selected 5 weeks ago, still active -> stopped
	fiveWeeksAgo := sweepTime.Add(-5 * 7 * 24 * time.Hour)
	a := models.Assessment{UserID: 1, ProtocolSelectedDate: &fiveWeeksAgo}
	a.CreatedAt = fiveWeeksAgo
	require.NoError(t, db.Create(&a).Error)

	// B: no protocol, created 1 week ago -> unaffected
	b := models.Assessment{UserID: 2}
	b.CreatedAt = sweepTime.Add(-7 * 24 * time.Hour)
	require.NoError(t, db.Create(&b).Error)

	// C: no protocol, created 3 weeks ago -> stopped
	c := models.Assessment{UserID: 3}
	c.CreatedAt = sweepTime.Add(-3 * 7 * 24 * time.Hour)
	require.NoError(t, db.Create(&c).Error)

	// D: already stopped -> untouched
	earlier := sweepTime.Add(-10 * 7 * 24 * time.Hour)
	d := models.Assessment{UserID: 4, StoppedDate: &earlier, StopReason: "user request", ProtocolSelectedDate: &earlier}
	d.CreatedAt = earlier
	require.NoError(t, db.Create(&d).Error)

	stopped, err := service.EndAssessmentPeriod()
	require.NoError(t, err)
	require.Len(t, stopped, 2)

	var reloadedA, reloadedB, reloadedD models.Assessment
	require.NoError(t, db.First(&reloadedA, a.ID).Error)
	require.NotNil(t, reloadedA.StoppedDate)
	assert.True(t, reloadedA.StoppedDate.Equal(sweepTime))
	assert.Equal(t, models.StopReasonExpired, reloadedA.StopReason)

	require.NoError(t, db.First(&reloadedB, b.ID).Error)
	assert.Nil(t, reloadedB.StoppedDate)

	require.NoError(t, db.First(&reloadedD, d.ID).Error)
	assert.Equal(t, "user request", reloadedD.StopReason)
}

func TestEndAssessmentPeriodNothingDue(t *testing.T) {
	db := openTestDB(t)
	service := newTestService(t, db, &stubScoring{}, &clock.Fixed{Current: time.Now()})

	stopped, err := service.EndAssessmentPeriod()
	require.NoError(t, err)
	assert.Empty(t, stopped)
}
