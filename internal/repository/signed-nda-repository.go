package repository

import (
	"time"

	"github.com/PitchPoint/nda_service/internal/domain"
	"gorm.io/gorm"
)

type SignedNDARepository interface {
	FindByID(id uint) (*domain.SignedNDA, error)
	FindByRequestID(requestID uint) (*domain.SignedNDA, error)
	FindLatest(pitchID, signerID uint) (*domain.SignedNDA, error)
	FindActive(pitchID, signerID uint, now time.Time) (*domain.SignedNDA, error)

	Revoke(id uint, revokedAt time.Time) error
}

type signedNDARepository struct {
	db *gorm.DB
}

func NewSignedNDARepository(db *gorm.DB) SignedNDARepository {
	return &signedNDARepository{db: db}
}

func (s *signedNDARepository) FindByID(id uint) (*domain.SignedNDA, error) {
	var nda domain.SignedNDA
	if err := s.db.First(&nda, id).Error; err != nil {
		return nil, err
	}
	return &nda, nil
}

func (s *signedNDARepository) FindByRequestID(requestID uint) (*domain.SignedNDA, error) {
	var nda domain.SignedNDA
	if err := s.db.Where("request_id = ?", requestID).First(&nda).Error; err != nil {
		return nil, err
	}
	return &nda, nil
}

// FindLatest returns the newest signed NDA for the pair regardless of state.
// Newest-first ordering keeps the evaluator defensive against residual
// duplicate rows.
func (s *signedNDARepository) FindLatest(pitchID, signerID uint) (*domain.SignedNDA, error) {
	var nda domain.SignedNDA
	err := s.db.
		Where("pitch_id = ? AND signer_id = ?", pitchID, signerID).
		Order("signed_at DESC").
		First(&nda).Error
	if err != nil {
		return nil, err
	}
	return &nda, nil
}

func (s *signedNDARepository) FindActive(pitchID, signerID uint, now time.Time) (*domain.SignedNDA, error) {
	var nda domain.SignedNDA
	err := s.db.
		Where("pitch_id = ? AND signer_id = ? AND revoked = false AND (expires_at IS NULL OR expires_at > ?)",
			pitchID, signerID, now).
		Order("signed_at DESC").
		First(&nda).Error
	if err != nil {
		return nil, err
	}
	return &nda, nil
}

func (s *signedNDARepository) Revoke(id uint, revokedAt time.Time) error {
	res := s.db.Model(&domain.SignedNDA{}).
		Where("id = ? AND revoked = false", id).
		Updates(map[string]any{
			"revoked":    true,
			"revoked_at": revokedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
