package models

import (
	"time"

	"gorm.io/gorm"
)

// Stop reasons recorded on an assessment when it leaves the active state.
const (
	StopReasonSuperseded = "superseded"
	StopReasonExpired    = "expired"
)

// Assessment is one lifecycle cycle of the questionnaire for a user.
// A user has at most one active assessment (stopped_date IS NULL); creating
// a new one supersedes the previous active one in the same transaction.
type Assessment struct {
	gorm.Model
	UserID               uint                `gorm:"not null;index" json:"userId"`
	PhqScore             int                 `gorm:"default:0" json:"phq_score"`
	BdiScore             int                 `gorm:"default:0" json:"bdi_score"`
	PlatoScore           float64             `gorm:"default:0" json:"plato_score"`
	Severity             int                 `gorm:"default:0" json:"severity"`
	ProtocolID           *uint               `json:"protocolId"`
	Protocol             *Protocol           `gorm:"foreignKey:ProtocolID" json:"protocol,omitempty"`
	ProtocolSelectedDate *time.Time          `json:"protocol_selected_date"`
	StoppedDate          *time.Time          `gorm:"index" json:"stopped_date"`
	StopReason           string              `json:"stop_reason"`
	Answers              []AssessmentAnswer  `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"answers"`
	SuggestedProtocols   []SuggestedProtocol `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"suggested_protocols"`
}

// IsStopped reports whether the assessment reached its terminal state.
func (a *Assessment) IsStopped() bool {
	return a.StoppedDate != nil
}
