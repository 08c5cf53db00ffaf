package services

import (
	"errors"
	"time"

	"github.com/PitchPoint/nda_service/internal/domain"
	"github.com/PitchPoint/nda_service/internal/dto"
	"github.com/PitchPoint/nda_service/internal/observability"
	"github.com/PitchPoint/nda_service/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AccessService interface {
	// Evaluate is read-only and never returns a domain error: an unknown
	// pitch/viewer pair simply yields status none.
	Evaluate(pitchID, viewerID uint) (*domain.AccessDecision, error)

	// ViewPitch composes Evaluate with the content gateway projection.
	ViewPitch(pitchID, viewerID uint) (*dto.PitchViewResponse, error)
}

type accessService struct {
	pitchRepo   repository.PitchRepository
	requestRepo repository.NDARequestRepository
	ndaRepo     repository.SignedNDARepository

	metrics *observability.Metrics
	logger  *zap.Logger
	policy  ProjectionPolicy
}

func NewAccessService(
	pitchRepo repository.PitchRepository,
	requestRepo repository.NDARequestRepository,
	ndaRepo repository.SignedNDARepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
	policy ProjectionPolicy,
) AccessService {
	return &accessService{
		pitchRepo:   pitchRepo,
		requestRepo: requestRepo,
		ndaRepo:     ndaRepo,
		metrics:     metrics,
		logger:      logger,
		policy:      policy,
	}
}

func (a *accessService) Evaluate(pitchID, viewerID uint) (*domain.AccessDecision, error) {
	decision, _, err := a.evaluate(pitchID, viewerID)
	if err != nil {
		return nil, err
	}
	a.metrics.RecordDecision(string(decision.Status))
	return decision, nil
}

func (a *accessService) ViewPitch(pitchID, viewerID uint) (*dto.PitchViewResponse, error) {
	decision, pitch, err := a.evaluate(pitchID, viewerID)
	if err != nil {
		return nil, err
	}
	if pitch == nil {
		return nil, domain.NewError(domain.ErrCodeNotFound, "pitch not found")
	}
	a.metrics.RecordDecision(string(decision.Status))
	view := Project(pitch, decision, a.policy)
	return &view, nil
}

// evaluate walks the decision ladder: owner and non-gated pitches short-circuit
// to full access, then the newest signed NDA, then the newest request. Expiry
// is judged lazily against the clock; no sweep job ever runs.
func (a *accessService) evaluate(pitchID, viewerID uint) (*domain.AccessDecision, *domain.Pitch, error) {
	pitch, err := a.pitchRepo.FindByID(pitchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noAccess(domain.AccessStatusNone), nil, nil
		}
		return nil, nil, a.storeError("find pitch", err)
	}

	if viewerID == pitch.CreatorID || !pitch.RequireNDA {
		return &domain.AccessDecision{
			Status:      domain.AccessStatusApproved,
			AccessLevel: domain.AccessLevelEnhanced,
		}, pitch, nil
	}

	now := time.Now()

	nda, err := a.ndaRepo.FindLatest(pitchID, viewerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, a.storeError("find signed nda", err)
	}

	req, err := a.requestRepo.FindLatest(pitchID, viewerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, a.storeError("find nda request", err)
	}

	if nda != nil {
		if nda.Active(now) {
			return &domain.AccessDecision{
				Status:      domain.AccessStatusApproved,
				AccessLevel: nda.AccessLevel,
				SignedNDAID: &nda.ID,
				ExpiresAt:   nda.ExpiresAt,
			}, pitch, nil
		}

		// A dead grant does not shadow a newer pending re-request.
		if req != nil && req.IsPending() && req.RequestedAt.After(nda.SignedAt) {
			return pendingDecision(req), pitch, nil
		}

		status := domain.AccessStatusExpired
		if nda.Revoked {
			status = domain.AccessStatusRevoked
		}
		d := noAccess(status)
		d.SignedNDAID = &nda.ID
		return d, pitch, nil
	}

	if req != nil {
		switch req.Status {
		case domain.RequestStatusPending:
			return pendingDecision(req), pitch, nil
		case domain.RequestStatusRejected:
			d := noAccess(domain.AccessStatusRejected)
			d.RequestID = &req.ID
			return d, pitch, nil
		case domain.RequestStatusApproved, domain.RequestStatusWithdrawn:
			// Approved without a surviving grant, or withdrawn: treat as no
			// standing; the viewer may request again.
		}
	}

	return noAccess(domain.AccessStatusNone), pitch, nil
}

func (a *accessService) storeError(op string, err error) error {
	if a.logger != nil {
		a.logger.Error("access store failure", zap.String("op", op), zap.Error(err))
	}
	return err
}

func noAccess(status domain.AccessStatus) *domain.AccessDecision {
	return &domain.AccessDecision{Status: status, AccessLevel: domain.AccessLevelNone}
}

func pendingDecision(req *domain.NDARequest) *domain.AccessDecision {
	return &domain.AccessDecision{
		Status:      domain.AccessStatusPending,
		AccessLevel: domain.AccessLevelNone,
		RequestID:   &req.ID,
	}
}

// ToAccessStatusResponse shapes a decision for the status endpoint.
func ToAccessStatusResponse(d *domain.AccessDecision) dto.AccessStatusResponse {
	return dto.AccessStatusResponse{
		Status:      string(d.Status),
		AccessLevel: string(d.AccessLevel),
		RequestID:   d.RequestID,
		SignedNDAID: d.SignedNDAID,
		ExpiresAt:   formatTimePtr(d.ExpiresAt),
	}
}
