package assessment

import (
	"fmt"
	"plato/models"
	"plato/services/apperrors"
)

// SubmittedAnswer is one raw answer from the create-assessment request body.
type SubmittedAnswer struct {
	QuestionID       uint    `json:"question_id"`
	Answer           string  `json:"answer"`
	SelectedOptionID *uint   `json:"selected_option"`
	Index            int     `json:"index"`
}

// ScaleAnswer is a scored answer on a clinical scale question.
type ScaleAnswer struct {
	Question    models.Question
	OptionValue int
}

// TextAnswer is a free-text answer on an analytic question.
type TextAnswer struct {
	Question models.Question
	Text     string
}

// AnswerSet is the result of partitioning a submission by question category.
type AnswerSet struct {
	PhqAnswers      []ScaleAnswer
	BdiAnswers      []ScaleAnswer
	AnalyticAnswers []TextAnswer
}

// PartitionAnswers resolves every submitted answer against its question and
// sorts it into the typed set. Scale answers without a selected option are
// skipped rather than scored as zero. Option/question pairing is checked
// here so nothing downstream has to revalidate.
func PartitionAnswers(questions map[uint]models.Question, submitted []SubmittedAnswer) (*AnswerSet, error) {
	set := &AnswerSet{}

	for _, ans := range submitted {
		question, ok := questions[ans.QuestionID]
		if !ok {
			return nil, &apperrors.NotFoundError{Resource: "question", ID: ans.QuestionID}
		}

		var option *models.QuestionOption
		if ans.SelectedOptionID != nil {
			found := false
			for i := range question.Options {
				if question.Options[i].ID == *ans.SelectedOptionID {
					option = &question.Options[i]
					found = true
					break
				}
			}
			if !found {
				return nil, &apperrors.ValidationError{
					Message: fmt.Sprintf("option %d does not belong to question %d", *ans.SelectedOptionID, ans.QuestionID),
				}
			}
		}

		switch question.Category {
		case models.CategoryPHQ:
			if option != nil {
				set.PhqAnswers = append(set.PhqAnswers, ScaleAnswer{Question: question, OptionValue: option.Value})
			}
		case models.CategoryBDI:
			if option != nil {
				set.BdiAnswers = append(set.BdiAnswers, ScaleAnswer{Question: question, OptionValue: option.Value})
			}
		case models.CategoryAnalytic:
			if ans.Answer != "" {
				set.AnalyticAnswers = append(set.AnalyticAnswers, TextAnswer{Question: question, Text: ans.Answer})
			}
		case models.CategoryCheckin:
			return nil, &apperrors.ValidationError{
				Message: fmt.Sprintf("question %d is a check-in question and cannot be part of the questionnaire", ans.QuestionID),
			}
		default:
			return nil, &apperrors.ValidationError{
				Message: fmt.Sprintf("question %d has unknown category %q", ans.QuestionID, question.Category),
			}
		}
	}

	return set, nil
}

// SumScaleValues computes a clinical sub-score as the sum of the selected
// option values.
func SumScaleValues(answers []ScaleAnswer) int {
	total := 0
	for _, a := range answers {
		total += a.OptionValue
	}
	return total
}
