package domain

import "gorm.io/gorm"

// Pitch maps the pitches table owned by the pitch service. This service only
// reads it: the creator id, whether an NDA gates the pitch, and the fields the
// content gateway projects.
type Pitch struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CreatorID  uint   `gorm:"not null;index" json:"creator_id"`
	Title      string `gorm:"type:varchar(255);not null" json:"title"`
	Logline    string `gorm:"type:text" json:"logline"`
	Genre      string `gorm:"type:varchar(100)" json:"genre"`
	RequireNDA bool   `gorm:"not null;default:false" json:"require_nda"`

	// Confidential fields, gated by the NDA workflow.
	ShortSynopsis   string `gorm:"type:text" json:"short_synopsis,omitempty"`
	Synopsis        string `gorm:"type:text" json:"synopsis,omitempty"`
	BudgetBreakdown string `gorm:"type:text" json:"budget_breakdown,omitempty"`
	CharacterDetail string `gorm:"type:text" json:"character_detail,omitempty"`
	Financials      string `gorm:"type:text" json:"financials,omitempty"`
	gorm.Model
}
