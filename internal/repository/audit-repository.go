package repository

import (
	"github.com/PitchPoint/nda_service/internal/domain"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Record(entry *domain.AuditLog) error
	ListByEntity(entity string, entityID uint) ([]domain.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (a *auditRepository) Record(entry *domain.AuditLog) error {
	return a.db.Create(entry).Error
}

func (a *auditRepository) ListByEntity(entity string, entityID uint) ([]domain.AuditLog, error) {
	var entries []domain.AuditLog
	err := a.db.
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
