package assessment

import (
	"plato/models"
	"plato/services/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionMap(questions ...models.Question) map[uint]models.Question {
	m := make(map[uint]models.Question)
	for _, q := range questions {
		m[q.ID] = q
	}
	return m
}

func TestPartitionAnswers(t *testing.T) {
	phq := models.Question{Category: models.CategoryPHQ, Options: []models.QuestionOption{{Value: 1}, {Value: 3}}}
	phq.ID = 1
	phq.Options[0].ID = 10
	phq.Options[1].ID = 11

	bdi := models.Question{Category: models.CategoryBDI, Options: []models.QuestionOption{{Value: 2}}}
	bdi.ID = 2
	bdi.Options[0].ID = 20

	analytic := models.Question{Category: models.CategoryAnalytic}
	analytic.ID = 3

	questions := questionMap(phq, bdi, analytic)
	opt := func(id uint) *uint { return &id }

	set, err := PartitionAnswers(questions, []SubmittedAnswer{
		{QuestionID: 1, SelectedOptionID: opt(11), Index: 0},
		{QuestionID: 2, SelectedOptionID: opt(20), Index: 1},
		{QuestionID: 3, Answer: "feeling low", Index: 2},
	})
	require.NoError(t, err)

	require.Len(t, set.PhqAnswers, 1)
	assert.Equal(t, 3, set.PhqAnswers[0].OptionValue)
	require.Len(t, set.BdiAnswers, 1)
	assert.Equal(t, 2, set.BdiAnswers[0].OptionValue)
	require.Len(t, set.AnalyticAnswers, 1)
	assert.Equal(t, "feeling low", set.AnalyticAnswers[0].Text)
}

func TestPartitionAnswersSkipsScaleAnswersWithoutOption(t *testing.T) {
	phq := models.Question{Category: models.CategoryPHQ, Options: []models.QuestionOption{{Value: 1}}}
	phq.ID = 1
	phq.Options[0].ID = 10

	set, err := PartitionAnswers(questionMap(phq), []SubmittedAnswer{
		{QuestionID: 1, Answer: "skipped, no option"},
	})
	require.NoError(t, err)
	assert.Empty(t, set.PhqAnswers)
}

func TestPartitionAnswersUnknownQuestion(t *testing.T) {
	_, err := PartitionAnswers(questionMap(), []SubmittedAnswer{{QuestionID: 42}})

	var nfErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, uint(42), nfErr.ID)
}

func TestPartitionAnswersOptionMismatch(t *testing.T) {
	phq := models.Question{Category: models.CategoryPHQ, Options: []models.QuestionOption{{Value: 1}}}
	phq.ID = 1
	phq.Options[0].ID = 10

	foreign := uint(99)
	_, err := PartitionAnswers(questionMap(phq), []SubmittedAnswer{
		{QuestionID: 1, SelectedOptionID: &foreign},
	})

	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestPartitionAnswersRejectsCheckinQuestions(t *testing.T) {
	checkin := models.Question{Category: models.CategoryCheckin}
	checkin.ID = 7

	_, err := PartitionAnswers(questionMap(checkin), []SubmittedAnswer{
		{QuestionID: 7, Answer: "hello"},
	})

	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestSumScaleValues(t *testing.T) {
	cases := []struct {
		name    string
		answers []ScaleAnswer
		want    int
	}{
		{"empty", nil, 0},
		{"single", []ScaleAnswer{{OptionValue: 2}}, 2},
		{"several", []ScaleAnswer{{OptionValue: 1}, {OptionValue: 2}, {OptionValue: 3}}, 6},
		{"zero values", []ScaleAnswer{{OptionValue: 0}, {OptionValue: 0}}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, SumScaleValues(c.answers))
		})
	}
}
