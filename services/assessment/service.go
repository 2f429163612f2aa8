package assessment

import (
	"errors"
	"plato/models"
	"plato/services/apperrors"
	"plato/services/clock"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Expiry windows for the periodic sweep: a selected protocol runs for four
// weeks, an assessment that never got a protocol selection expires after two.
const (
	protocolExpiry  = 4 * 7 * 24 * time.Hour
	selectionExpiry = 2 * 7 * 24 * time.Hour
)

// ScoringClient is the boundary to the external scoring/analysis service.
type ScoringClient interface {
	Assess(phqScore, bdiScore int) (platoScore float64, severity int, err error)
	AnalyzeDepression(query string) (depressionType, analysis string, err error)
}

// Service drives the assessment lifecycle: creation with scoring, protocol
// selection, stopping and periodic expiry. Creation is serialized per user
// so two concurrent requests cannot both pass the window checks.
type Service struct {
	db       *gorm.DB
	scoring  ScoringClient
	clock    clock.Clock
	interval time.Duration
	limiter  *RateLimiter

	userLocks sync.Map // userID -> *sync.Mutex
}

func NewService(db *gorm.DB, scoring ScoringClient, clk clock.Clock, interval time.Duration, limiter *RateLimiter) *Service {
	return &Service{
		db:       db,
		scoring:  scoring,
		clock:    clk,
		interval: interval,
		limiter:  limiter,
	}
}

func (s *Service) lockUser(userID uint) *sync.Mutex {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Eligibility is the result of the cooldown check between assessments.
type Eligibility struct {
	IsValid       bool       `json:"is_valid"`
	NextValidTime *time.Time `json:"next_valid_time"`
}

// IsEligible reports whether the user may start a new assessment, i.e. the
// configured interval has elapsed since the latest one. The boundary instant
// itself is eligible.
func (s *Service) IsEligible(userID uint) (*Eligibility, error) {
	var latest models.Assessment
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Eligibility{IsValid: true}, nil
	}
	if err != nil {
		return nil, err
	}

	next := latest.CreatedAt.Add(s.interval)
	return &Eligibility{
		IsValid:       !s.clock.Now().Before(next),
		NextValidTime: &next,
	}, nil
}

// CreateResult carries the new assessment plus the response-only analysis
// artifacts, which are not persisted on the assessment row.
type CreateResult struct {
	Assessment     *models.Assessment
	DepressionType string
	Analysis       string
}

// CreateWithAnswers runs the full creation sequence: admission, cooldown,
// scoring, both external calls, then one transaction that supersedes the
// prior active assessment and inserts the new one with its answers. Any
// failure before the transaction leaves no state behind.
func (s *Service) CreateWithAnswers(userID uint, submitted []SubmittedAnswer) (*CreateResult, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	admitted, wait, err := s.limiter.Admit(userID)
	if err != nil {
		return nil, err
	}
	if !admitted {
		return nil, &apperrors.RateLimitError{RetryAfter: wait}
	}

	eligibility, err := s.IsEligible(userID)
	if err != nil {
		return nil, err
	}
	if !eligibility.IsValid {
		return nil, &apperrors.CooldownError{NextValidTime: *eligibility.NextValidTime}
	}

	if len(submitted) == 0 {
		return nil, &apperrors.ValidationError{Message: "answers are required"}
	}

	questions, err := s.loadQuestions(submitted)
	if err != nil {
		return nil, err
	}

	set, err := PartitionAnswers(questions, submitted)
	if err != nil {
		return nil, err
	}
	if len(set.AnalyticAnswers) == 0 {
		return nil, &apperrors.ValidationError{Message: "an answer for the analytic question is required"}
	}

	phqScore := SumScaleValues(set.PhqAnswers)
	bdiScore := SumScaleValues(set.BdiAnswers)

	platoScore, severity, err := s.scoring.Assess(phqScore, bdiScore)
	if err != nil {
		return nil, &apperrors.ExternalServiceError{Op: "assess", Err: err}
	}

	depressionType, analysis, err := s.scoring.AnalyzeDepression(set.AnalyticAnswers[0].Text)
	if err != nil {
		return nil, &apperrors.ExternalServiceError{Op: "analyze-depression", Err: err}
	}

	ts := s.clock.Now()
	created := models.Assessment{
		UserID:     userID,
		PhqScore:   phqScore,
		BdiScore:   bdiScore,
		PlatoScore: platoScore,
		Severity:   severity,
	}
	created.CreatedAt = ts

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Supersede any prior active assessment in the same transaction, so
	// exactly one active assessment per user holds at every commit point.
	err = tx.Model(&models.Assessment{}).
		Where("user_id = ? AND stopped_date IS NULL", userID).
		Updates(map[string]interface{}{
			"stopped_date": ts,
			"stop_reason":  models.StopReasonSuperseded,
		}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Create(&created).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	rows := make([]models.AssessmentAnswer, 0, len(submitted))
	for _, ans := range submitted {
		var text *string
		if ans.Answer != "" {
			t := ans.Answer
			text = &t
		}
		rows = append(rows, models.AssessmentAnswer{
			AssessmentID:     created.ID,
			QuestionID:       ans.QuestionID,
			Answer:           text,
			SelectedOptionID: ans.SelectedOptionID,
			Index:            ans.Index,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	assessment, err := s.GetByIDForUser(created.ID, userID)
	if err != nil {
		return nil, err
	}

	return &CreateResult{
		Assessment:     assessment,
		DepressionType: depressionType,
		Analysis:       analysis,
	}, nil
}

// loadQuestions fetches the questions referenced by a submission, with
// options, keyed by id.
func (s *Service) loadQuestions(submitted []SubmittedAnswer) (map[uint]models.Question, error) {
	ids := make([]uint, 0, len(submitted))
	for _, ans := range submitted {
		ids = append(ids, ans.QuestionID)
	}

	var questions []models.Question
	if err := s.db.Preload("Options").Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return byID, nil
}

// GetAllByUser returns all assessments of a user, newest first.
func (s *Service) GetAllByUser(userID uint) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := s.db.
		Preload("Answers", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_checkin = ?", false).Order("idx ASC")
		}).
		Preload("Answers.Question").
		Preload("Answers.SelectedOption").
		Preload("Protocol").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&assessments).Error
	return assessments, err
}

// GetLatestByUser returns the user's most recent assessment with answers,
// protocol and suggested protocols preloaded, or NotFoundError.
func (s *Service) GetLatestByUser(userID uint) (*models.Assessment, error) {
	var assessment models.Assessment
	err := s.preloaded().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.NotFoundError{Resource: "assessment"}
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// GetByIDForUser returns one assessment owned by the user, or NotFoundError.
func (s *Service) GetByIDForUser(id, userID uint) (*models.Assessment, error) {
	var assessment models.Assessment
	err := s.preloaded().
		Where("id = ? AND user_id = ?", id, userID).
		First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.NotFoundError{Resource: "assessment", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (s *Service) preloaded() *gorm.DB {
	return s.db.
		Preload("Answers", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_checkin = ?", false).Order("idx ASC")
		}).
		Preload("Answers.Question").
		Preload("Answers.SelectedOption").
		Preload("Protocol").
		Preload("SuggestedProtocols").
		Preload("SuggestedProtocols.FirstProtocol").
		Preload("SuggestedProtocols.SecondProtocol").
		Preload("SuggestedProtocols.ThirdProtocol")
}

// SelectProtocol attaches one of the suggested protocols to the user's
// latest assessment. Selection is restricted to the suggested set; a
// mismatch returns the set of valid ids.
func (s *Service) SelectProtocol(userID, protocolID uint) (*models.Assessment, error) {
	latest, err := s.GetLatestByUser(userID)
	if err != nil {
		return nil, err
	}
	if latest.IsStopped() {
		return nil, &apperrors.ConflictError{Message: "assessment is already stopped"}
	}
	if len(latest.SuggestedProtocols) == 0 {
		return nil, &apperrors.NotFoundError{Resource: "suggested protocols"}
	}

	suggested := latest.SuggestedProtocols[0]
	validIDs := suggested.ProtocolIDs()

	valid := false
	for _, id := range validIDs {
		if id == protocolID {
			valid = true
			break
		}
	}
	if !valid {
		return nil, &apperrors.InvalidProtocolError{ProtocolID: protocolID, ValidIDs: validIDs}
	}

	ts := s.clock.Now()
	err = s.db.Model(&models.Assessment{}).
		Where("id = ?", latest.ID).
		Updates(map[string]interface{}{
			"protocol_id":            protocolID,
			"protocol_selected_date": ts,
		}).Error
	if err != nil {
		return nil, err
	}

	return s.GetByIDForUser(latest.ID, userID)
}

// Stop transitions the user's latest assessment to the terminal state.
// Stopping an already-stopped assessment is a conflict, not a no-op.
func (s *Service) Stop(userID uint, reason string) (*models.Assessment, error) {
	latest, err := s.GetLatestByUser(userID)
	if err != nil {
		return nil, err
	}
	if latest.IsStopped() {
		return nil, &apperrors.ConflictError{Message: "assessment is already stopped"}
	}

	ts := s.clock.Now()
	err = s.db.Model(&models.Assessment{}).
		Where("id = ?", latest.ID).
		Updates(map[string]interface{}{
			"stopped_date": ts,
			"stop_reason":  reason,
		}).Error
	if err != nil {
		return nil, err
	}

	return s.GetByIDForUser(latest.ID, userID)
}

// EndAssessmentPeriod stops every assessment whose protocol has run its
// four weeks, or that never got a protocol selection within two weeks of
// creation. Returns the assessments that were stopped by this sweep.
func (s *Service) EndAssessmentPeriod() ([]models.Assessment, error) {
	ts := s.clock.Now()
	protocolCutoff := ts.Add(-protocolExpiry)
	selectionCutoff := ts.Add(-selectionExpiry)

	var due []models.Assessment
	err := s.db.
		Where("stopped_date IS NULL").
		Where(
			s.db.Where("protocol_selected_date < ?", protocolCutoff).
				Or("protocol_selected_date IS NULL AND created_at < ?", selectionCutoff),
		).
		Find(&due).Error
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(due))
	for _, a := range due {
		ids = append(ids, a.ID)
	}

	err = s.db.Model(&models.Assessment{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"stopped_date": ts,
			"stop_reason":  models.StopReasonExpired,
		}).Error
	if err != nil {
		return nil, err
	}

	for i := range due {
		stopped := ts
		due[i].StoppedDate = &stopped
		due[i].StopReason = models.StopReasonExpired
	}
	return due, nil
}
