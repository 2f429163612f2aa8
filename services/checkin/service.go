// Package checkin gates daily check-in submissions against the user's
// active assessment: one submission per calendar day, covering exactly the
// set of check-in questions, persisted as one batch.
package checkin

import (
	"errors"
	"fmt"
	"plato/models"
	"plato/services/apperrors"
	"plato/services/clock"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewService(db *gorm.DB, clk clock.Clock) *Service {
	return &Service{db: db, clock: clk}
}

// SubmittedAnswer is one raw answer from the check-in request body.
type SubmittedAnswer struct {
	QuestionID       uint   `json:"question_id"`
	Answer           string `json:"answer"`
	SelectedOptionID *uint  `json:"selected_option"`
}

// HistoryDay is one calendar day of check-in answers.
type HistoryDay struct {
	Date    string                    `json:"date"`
	Answers []models.AssessmentAnswer `json:"answers"`
}

// CanCheckinToday reports whether no check-in answer exists for the
// assessment today, in the server's reference time zone.
func (s *Service) CanCheckinToday(assessmentID uint) (bool, error) {
	ts := s.clock.Now()
	startOfDay := now.New(ts).BeginningOfDay()

	var count int64
	err := s.db.Model(&models.AssessmentAnswer{}).
		Where("assessment_id = ? AND is_checkin = ?", assessmentID, true).
		Where("checkin_date >= ? AND checkin_date <= ?", startOfDay, ts).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// CheckinQuestions returns the active check-in question set.
func (s *Service) CheckinQuestions() ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Preload("Options").
		Where("category = ?", models.CategoryCheckin).
		Find(&questions).Error
	return questions, err
}

// Submit validates and persists a full daily check-in against the caller's
// latest assessment. The submission must cover exactly the check-in question
// set; the first validation failure rejects the whole batch with nothing
// persisted. All created answers share one checkin_date and submission id.
func (s *Service) Submit(userID uint, submitted []SubmittedAnswer) (*models.Assessment, int, error) {
	var assessment models.Assessment
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, &apperrors.NotFoundError{Resource: "assessment"}
	}
	if err != nil {
		return nil, 0, err
	}

	ok, err := s.CanCheckinToday(assessment.ID)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, &apperrors.ValidationError{Message: "already checked-in today"}
	}

	questions, err := s.CheckinQuestions()
	if err != nil {
		return nil, 0, err
	}

	questionByID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	// The submitted ids must exactly equal the check-in question set.
	submittedIDs := make(map[uint]bool, len(submitted))
	for _, ans := range submitted {
		submittedIDs[ans.QuestionID] = true
	}
	if len(submittedIDs) != len(submitted) || len(submittedIDs) != len(questionByID) {
		return nil, 0, &apperrors.ValidationError{Message: "you must submit answers for all check-in questions"}
	}
	for id := range submittedIDs {
		if _, ok := questionByID[id]; !ok {
			return nil, 0, &apperrors.ValidationError{Message: "you must submit answers for all check-in questions"}
		}
	}

	ts := s.clock.Now()
	submissionID := uuid.NewString()
	rows := make([]models.AssessmentAnswer, 0, len(submitted))

	for index, ans := range submitted {
		question := questionByID[ans.QuestionID]

		var optionID *uint
		if ans.SelectedOptionID != nil {
			var option models.QuestionOption
			err := s.db.First(&option, *ans.SelectedOptionID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, &apperrors.NotFoundError{Resource: "option", ID: *ans.SelectedOptionID}
			}
			if err != nil {
				return nil, 0, err
			}
			if option.QuestionID != question.ID {
				return nil, 0, &apperrors.ValidationError{
					Message: fmt.Sprintf("option %d does not belong to question %d", option.ID, question.ID),
				}
			}
			optionID = ans.SelectedOptionID
		}

		if ans.Answer == "" && optionID == nil {
			return nil, 0, &apperrors.ValidationError{
				Message: fmt.Sprintf("either answer text or selected_option is required for question %d", question.ID),
			}
		}

		var text *string
		if ans.Answer != "" {
			t := ans.Answer
			text = &t
		}
		checkinDate := ts
		rows = append(rows, models.AssessmentAnswer{
			AssessmentID:     assessment.ID,
			QuestionID:       question.ID,
			Answer:           text,
			SelectedOptionID: optionID,
			Index:            index,
			IsCheckin:        true,
			CheckinDate:      &checkinDate,
			SubmissionID:     submissionID,
		})
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, 0, tx.Error
	}
	if err := tx.Create(&rows).Error; err != nil {
		tx.Rollback()
		return nil, 0, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, 0, err
	}

	var updated models.Assessment
	err = s.db.
		Preload("Answers", "is_checkin = ?", false).
		Preload("Answers.Question").
		Preload("Answers.SelectedOption").
		Preload("Protocol").
		First(&updated, assessment.ID).Error
	if err != nil {
		return nil, 0, err
	}
	return &updated, len(rows), nil
}

// History returns the assessment's check-in answers grouped by calendar
// day, newest day first, preserving insertion order inside a day.
func (s *Service) History(userID, assessmentID uint) ([]HistoryDay, error) {
	var assessment models.Assessment
	err := s.db.Where("id = ? AND user_id = ?", assessmentID, userID).First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.NotFoundError{Resource: "assessment", ID: assessmentID}
	}
	if err != nil {
		return nil, err
	}

	var answers []models.AssessmentAnswer
	err = s.db.
		Preload("Question").
		Preload("Question.Options").
		Preload("SelectedOption").
		Where("assessment_id = ? AND is_checkin = ?", assessmentID, true).
		Order("checkin_date DESC, id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}

	history := make([]HistoryDay, 0)
	dayIndex := make(map[string]int)
	for _, ans := range answers {
		if ans.CheckinDate == nil {
			continue
		}
		day := ans.CheckinDate.Format("2006-01-02")
		i, seen := dayIndex[day]
		if !seen {
			history = append(history, HistoryDay{Date: day})
			i = len(history) - 1
			dayIndex[day] = i
		}
		history[i].Answers = append(history[i].Answers, ans)
	}
	return history, nil
}
