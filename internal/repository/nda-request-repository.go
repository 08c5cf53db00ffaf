package repository

import (
	"time"

	"github.com/PitchPoint/nda_service/internal/domain"
	"gorm.io/gorm"
)

type NDARequestRepository interface {
	Create(req *domain.NDARequest) error
	FindByID(id uint) (*domain.NDARequest, error)
	FindPending(pitchID, requesterID uint) (*domain.NDARequest, error)
	FindLatest(pitchID, requesterID uint) (*domain.NDARequest, error)
	ListByPitch(pitchID uint) ([]domain.NDARequest, error)

	Withdraw(id, requesterID uint) error
	Approve(id uint, respondedAt time.Time, message *string, nda *domain.SignedNDA) error
	Reject(id uint, respondedAt time.Time, message *string) error
}

type ndaRequestRepository struct {
	db *gorm.DB
}

func NewNDARequestRepository(db *gorm.DB) NDARequestRepository {
	return &ndaRequestRepository{db: db}
}

func (n *ndaRequestRepository) Create(req *domain.NDARequest) error {
	return n.db.Create(req).Error
}

func (n *ndaRequestRepository) FindByID(id uint) (*domain.NDARequest, error) {
	var req domain.NDARequest
	if err := n.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (n *ndaRequestRepository) FindPending(pitchID, requesterID uint) (*domain.NDARequest, error) {
	var req domain.NDARequest
	err := n.db.
		Where("pitch_id = ? AND requester_id = ? AND status = ?", pitchID, requesterID, domain.RequestStatusPending).
		Order("requested_at DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (n *ndaRequestRepository) FindLatest(pitchID, requesterID uint) (*domain.NDARequest, error) {
	var req domain.NDARequest
	err := n.db.
		Where("pitch_id = ? AND requester_id = ?", pitchID, requesterID).
		Order("requested_at DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (n *ndaRequestRepository) ListByPitch(pitchID uint) ([]domain.NDARequest, error) {
	var reqs []domain.NDARequest
	err := n.db.
		Where("pitch_id = ?", pitchID).
		Order("requested_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (n *ndaRequestRepository) Withdraw(id, requesterID uint) error {
	res := n.db.Model(&domain.NDARequest{}).
		Where("id = ? AND requester_id = ? AND status = ?", id, requesterID, domain.RequestStatusPending).
		Update("status", domain.RequestStatusWithdrawn)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Approve flips a pending request to approved and creates the signed NDA in
// one transaction. The conditional update is what makes concurrent
// approve/reject race-safe: the loser sees zero rows.
func (n *ndaRequestRepository) Approve(id uint, respondedAt time.Time, message *string, nda *domain.SignedNDA) error {
	return n.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.NDARequest{}).
			Where("id = ? AND status = ?", id, domain.RequestStatusPending).
			Updates(map[string]any{
				"status":           domain.RequestStatusApproved,
				"responded_at":     respondedAt,
				"response_message": message,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// Supersede a leftover expired grant for the pair so the partial
		// unique index on active NDAs holds across re-grants.
		if err := tx.Model(&domain.SignedNDA{}).
			Where("pitch_id = ? AND signer_id = ? AND revoked = false AND expires_at IS NOT NULL AND expires_at <= ?",
				nda.PitchID, nda.SignerID, respondedAt).
			Updates(map[string]any{"revoked": true, "revoked_at": respondedAt}).Error; err != nil {
			return err
		}

		return tx.Create(nda).Error
	})
}

func (n *ndaRequestRepository) Reject(id uint, respondedAt time.Time, message *string) error {
	res := n.db.Model(&domain.NDARequest{}).
		Where("id = ? AND status = ?", id, domain.RequestStatusPending).
		Updates(map[string]any{
			"status":           domain.RequestStatusRejected,
			"responded_at":     respondedAt,
			"response_message": message,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
