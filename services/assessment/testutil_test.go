package assessment

import (
	"errors"
	"plato/models"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.QuestionOption{},
		&models.Protocol{},
		&models.Assessment{},
		&models.AssessmentAnswer{},
		&models.SuggestedProtocol{},
	)
	require.NoError(t, err)

	return db
}

// stubScoring is a canned ScoringClient.
type stubScoring struct {
	platoScore     float64
	severity       int
	assessErr      error
	depressionType string
	analysis       string
	analyzeErr     error

	assessCalls  int
	analyzeCalls int
}

func (s *stubScoring) Assess(phqScore, bdiScore int) (float64, int, error) {
	s.assessCalls++
	if s.assessErr != nil {
		return 0, 0, s.assessErr
	}
	return s.platoScore, s.severity, nil
}

func (s *stubScoring) AnalyzeDepression(query string) (string, string, error) {
	s.analyzeCalls++
	if s.analyzeErr != nil {
		return "", "", s.analyzeErr
	}
	return s.depressionType, s.analysis, nil
}

var errServiceDown = errors.New("service unavailable")

// seedQuestionnaire creates one PHQ question with two options, one BDI
// question with two options and one analytic question. Returns them with
// options loaded.
func seedQuestionnaire(t *testing.T, db *gorm.DB) (phq, bdi, analytic models.Question) {
	t.Helper()

	phq = models.Question{
		Name:     "phq_1",
		Content:  "Little interest or pleasure in doing things",
		Category: models.CategoryPHQ,
		Type:     models.QuestionTypeRadio,
		Options: []models.QuestionOption{
			{Label: "Several days", Value: 1},
			{Label: "More than half the days", Value: 2},
		},
	}
	bdi = models.Question{
		Name:     "bdi_sadness",
		Content:  "Sadness",
		Category: models.CategoryBDI,
		Type:     models.QuestionTypeRadio,
		Options: []models.QuestionOption{
			{Label: "Mildly", Value: 1},
			{Label: "Moderately", Value: 2},
		},
	}
	analytic = models.Question{
		Name:     "analytic_feelings",
		Content:  "How have you been feeling lately?",
		Category: models.CategoryAnalytic,
		Type:     models.QuestionTypeText,
	}

	require.NoError(t, db.Create(&phq).Error)
	require.NoError(t, db.Create(&bdi).Error)
	require.NoError(t, db.Create(&analytic).Error)
	return phq, bdi, analytic
}
