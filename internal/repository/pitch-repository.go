package repository

import (
	"github.com/PitchPoint/nda_service/internal/domain"
	"gorm.io/gorm"
)

// PitchRepository is the read-only view of the pitch store this service needs.
type PitchRepository interface {
	FindByID(id uint) (*domain.Pitch, error)
}

type pitchRepository struct {
	db *gorm.DB
}

func NewPitchRepository(db *gorm.DB) PitchRepository {
	return &pitchRepository{db: db}
}

func (p *pitchRepository) FindByID(id uint) (*domain.Pitch, error) {
	var pitch domain.Pitch
	if err := p.db.First(&pitch, id).Error; err != nil {
		return nil, err
	}
	return &pitch, nil
}
