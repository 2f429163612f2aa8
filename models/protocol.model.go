package models

import (
	"gorm.io/gorm"
)

type Protocol struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
}

// SuggestedProtocol holds the three protocol candidates computed for an
// assessment. Protocol selection is restricted to this set.
type SuggestedProtocol struct {
	gorm.Model
	AssessmentID     uint      `gorm:"not null;index" json:"assessmentId"`
	FirstProtocolID  *uint     `json:"firstProtocolId"`
	FirstProtocol    *Protocol `gorm:"foreignKey:FirstProtocolID" json:"firstProtocol,omitempty"`
	SecondProtocolID *uint     `json:"secondProtocolId"`
	SecondProtocol   *Protocol `gorm:"foreignKey:SecondProtocolID" json:"secondProtocol,omitempty"`
	ThirdProtocolID  *uint     `json:"thirdProtocolId"`
	ThirdProtocol    *Protocol `gorm:"foreignKey:ThirdProtocolID" json:"thirdProtocol,omitempty"`
}

// ProtocolIDs returns the non-null candidate ids in display order.
func (s *SuggestedProtocol) ProtocolIDs() []uint {
	var ids []uint
	for _, id := range []*uint{s.FirstProtocolID, s.SecondProtocolID, s.ThirdProtocolID} {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids
}
