package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/PitchPoint/nda_service/internal/domain"
	"github.com/PitchPoint/nda_service/internal/dto"
	"github.com/PitchPoint/nda_service/internal/helper"
	"github.com/PitchPoint/nda_service/internal/interfaces"
	"github.com/PitchPoint/nda_service/internal/observability"
	"github.com/PitchPoint/nda_service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExpiryPolicy maps NDA types onto validity windows. A window of zero days
// means the grant never expires.
type ExpiryPolicy struct {
	BasicDays    int
	EnhancedDays int
}

func (p ExpiryPolicy) ExpiryFor(t domain.NDAType, from time.Time) *time.Time {
	days := p.EnhancedDays
	if t == domain.NDATypeBasic {
		days = p.BasicDays
	}
	if days <= 0 {
		return nil
	}
	exp := from.Add(time.Duration(days) * 24 * time.Hour)
	return &exp
}

type NDAService interface {
	// Requester side
	CreateRequest(requesterID uint, role string, input dto.CreateNDARequest) (*dto.NDARequestResponse, error)
	WithdrawRequest(requestID, requesterID uint) error

	// Owner side
	ListRequestsForPitch(pitchID, callerID uint) ([]dto.NDARequestResponse, error)
	Approve(requestID, ownerID uint, message string) (*dto.SignedNDAResponse, error)
	Reject(requestID, ownerID uint, reason string) error
	Revoke(ndaID, ownerID uint) error
}

type ndaService struct {
	pitchRepo   repository.PitchRepository
	requestRepo repository.NDARequestRepository
	ndaRepo     repository.SignedNDARepository
	auditRepo   repository.AuditRepository

	producer interfaces.ProducerHandler
	metrics  *observability.Metrics
	logger   *zap.Logger
	policy   ExpiryPolicy
}

func NewNDAService(
	pitchRepo repository.PitchRepository,
	requestRepo repository.NDARequestRepository,
	ndaRepo repository.SignedNDARepository,
	auditRepo repository.AuditRepository,
	producer interfaces.ProducerHandler,
	metrics *observability.Metrics,
	logger *zap.Logger,
	policy ExpiryPolicy,
) NDAService {
	return &ndaService{
		pitchRepo:   pitchRepo,
		requestRepo: requestRepo,
		ndaRepo:     ndaRepo,
		auditRepo:   auditRepo,
		producer:    producer,
		metrics:     metrics,
		logger:      logger,
		policy:      policy,
	}
}

func (s *ndaService) CreateRequest(requesterID uint, role string, input dto.CreateNDARequest) (*dto.NDARequestResponse, error) {
	ndaType := domain.NDAType(strings.ToLower(strings.TrimSpace(input.NDAType)))
	if ndaType == "" {
		ndaType = domain.NDATypeBasic
	}

	pitch, err := s.pitchRepo.FindByID(input.PitchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewError(domain.ErrCodeNotFound, "pitch not found")
		}
		return nil, s.storeError("find pitch", err)
	}

	if strings.EqualFold(role, domain.RoleCreator) {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "creators cannot request NDA access")
	}
	if pitch.CreatorID == requesterID {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "cannot request access to your own pitch")
	}
	if !pitch.RequireNDA {
		return nil, domain.NewError(domain.ErrCodeInvalidTransition, "pitch does not require an NDA")
	}

	now := time.Now()

	nda, err := s.ndaRepo.FindActive(input.PitchID, requesterID, now)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.storeError("find active nda", err)
	}
	if nda != nil {
		return nil, domain.NewExistingError(domain.ErrCodeAlreadySigned, "an active NDA already covers this pitch", nda.ID)
	}

	existing, err := s.requestRepo.FindPending(input.PitchID, requesterID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.storeError("find pending request", err)
	}
	if existing != nil {
		return nil, domain.NewExistingError(domain.ErrCodeDuplicateRequest, "a pending request already exists for this pitch", existing.ID)
	}

	req := &domain.NDARequest{
		PitchID:        input.PitchID,
		RequesterID:    requesterID,
		OwnerID:        pitch.CreatorID,
		NDAType:        ndaType,
		Status:         domain.RequestStatusPending,
		RequestMessage: trimToPtr(input.Message),
		RequestedAt:    now,
	}

	if err := s.requestRepo.Create(req); err != nil {
		if helper.IsDuplicatePendingRequest(err) {
			// Lost the insert race: surface the surviving request's id.
			var existingID uint
			if winner, ferr := s.requestRepo.FindPending(input.PitchID, requesterID); ferr == nil {
				existingID = winner.ID
			}
			return nil, domain.NewExistingError(domain.ErrCodeDuplicateRequest, "a pending request already exists for this pitch", existingID)
		}
		return nil, s.storeError("create nda request", err)
	}

	s.metrics.RecordLifecycle("create", "created")
	s.audit(requesterID, domain.AuditActionRequested, domain.AuditEntityNDARequest, req.ID, req.RequestMessage)
	s.publish("nda.request_created", dto.RequestCreatedEvent{
		EventID:     uuid.NewString(),
		RequestID:   req.ID,
		PitchID:     req.PitchID,
		RequesterID: req.RequesterID,
		OwnerID:     req.OwnerID,
		NDAType:     string(req.NDAType),
		RequestedAt: req.RequestedAt.Format(time.RFC3339),
	})

	resp := toRequestResponse(req)
	return &resp, nil
}

func (s *ndaService) WithdrawRequest(requestID, requesterID uint) error {
	req, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewError(domain.ErrCodeNotFound, "request not found")
		}
		return s.storeError("find request", err)
	}

	if req.RequesterID != requesterID {
		return domain.NewError(domain.ErrCodeUnauthorized, "only the original requester may withdraw")
	}

	if err := s.requestRepo.Withdraw(requestID, requesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewError(domain.ErrCodeInvalidTransition, "request is no longer pending")
		}
		return s.storeError("withdraw request", err)
	}

	s.metrics.RecordLifecycle("withdraw", "withdrawn")
	s.audit(requesterID, domain.AuditActionWithdrawn, domain.AuditEntityNDARequest, requestID, nil)
	return nil
}

func (s *ndaService) ListRequestsForPitch(pitchID, callerID uint) ([]dto.NDARequestResponse, error) {
	pitch, err := s.pitchRepo.FindByID(pitchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewError(domain.ErrCodeNotFound, "pitch not found")
		}
		return nil, s.storeError("find pitch", err)
	}

	if pitch.CreatorID != callerID {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "only the pitch owner may list requests")
	}

	reqs, err := s.requestRepo.ListByPitch(pitchID)
	if err != nil {
		return nil, s.storeError("list requests", err)
	}

	out := make([]dto.NDARequestResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, toRequestResponse(&reqs[i]))
	}
	return out, nil
}

func (s *ndaService) Approve(requestID, ownerID uint, message string) (*dto.SignedNDAResponse, error) {
	req, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewError(domain.ErrCodeNotFound, "request not found")
		}
		return nil, s.storeError("find request", err)
	}

	if req.OwnerID != ownerID {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "only the pitch owner may approve")
	}

	// Approving twice is a no-op that returns the grant created the first time.
	if req.Status == domain.RequestStatusApproved {
		return s.existingGrant(req)
	}
	if req.Status != domain.RequestStatusPending {
		return nil, domain.NewError(domain.ErrCodeInvalidTransition, "request is not pending")
	}

	now := time.Now()
	nda := &domain.SignedNDA{
		PitchID:     req.PitchID,
		SignerID:    req.RequesterID,
		RequestID:   req.ID,
		NDAType:     req.NDAType,
		AccessLevel: domain.AccessLevelFor(req.NDAType),
		SignedAt:    now,
		ExpiresAt:   s.policy.ExpiryFor(req.NDAType, now),
	}

	msg := trimToPtr(message)
	if err := s.requestRepo.Approve(req.ID, now, msg, nda); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lost a race with a concurrent decision; re-read to tell which.
			cur, ferr := s.requestRepo.FindByID(requestID)
			if ferr == nil && cur.Status == domain.RequestStatusApproved {
				return s.existingGrant(cur)
			}
			return nil, domain.NewError(domain.ErrCodeInvalidTransition, "request is not pending")
		}
		return nil, s.storeError("approve request", err)
	}

	s.metrics.RecordLifecycle("approve", "approved")
	s.audit(ownerID, domain.AuditActionApproved, domain.AuditEntityNDARequest, req.ID, msg)
	s.publish("nda.request_approved", dto.RequestDecidedEvent{
		EventID:     uuid.NewString(),
		RequestID:   req.ID,
		PitchID:     req.PitchID,
		RequesterID: req.RequesterID,
		OwnerID:     req.OwnerID,
		Decision:    string(domain.RequestStatusApproved),
		SignedNDAID: &nda.ID,
		DecidedAt:   now.Format(time.RFC3339),
	})

	resp := toSignedNDAResponse(nda)
	return &resp, nil
}

func (s *ndaService) Reject(requestID, ownerID uint, reason string) error {
	req, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewError(domain.ErrCodeNotFound, "request not found")
		}
		return s.storeError("find request", err)
	}

	if req.OwnerID != ownerID {
		return domain.NewError(domain.ErrCodeUnauthorized, "only the pitch owner may reject")
	}
	if req.Status != domain.RequestStatusPending {
		return domain.NewError(domain.ErrCodeInvalidTransition, "request is not pending")
	}

	now := time.Now()
	msg := trimToPtr(reason)
	if err := s.requestRepo.Reject(requestID, now, msg); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewError(domain.ErrCodeInvalidTransition, "request is not pending")
		}
		return s.storeError("reject request", err)
	}

	s.metrics.RecordLifecycle("reject", "rejected")
	s.audit(ownerID, domain.AuditActionRejected, domain.AuditEntityNDARequest, requestID, msg)
	s.publish("nda.request_rejected", dto.RequestDecidedEvent{
		EventID:     uuid.NewString(),
		RequestID:   req.ID,
		PitchID:     req.PitchID,
		RequesterID: req.RequesterID,
		OwnerID:     req.OwnerID,
		Decision:    string(domain.RequestStatusRejected),
		DecidedAt:   now.Format(time.RFC3339),
	})
	return nil
}

func (s *ndaService) Revoke(ndaID, ownerID uint) error {
	nda, err := s.ndaRepo.FindByID(ndaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewError(domain.ErrCodeNotFound, "signed NDA not found")
		}
		return s.storeError("find signed nda", err)
	}

	pitch, err := s.pitchRepo.FindByID(nda.PitchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewError(domain.ErrCodeNotFound, "pitch not found")
		}
		return s.storeError("find pitch", err)
	}
	if pitch.CreatorID != ownerID {
		return domain.NewError(domain.ErrCodeUnauthorized, "only the pitch owner may revoke")
	}

	if nda.Revoked {
		return domain.NewError(domain.ErrCodeInvalidTransition, "NDA is already revoked")
	}

	now := time.Now()
	if err := s.ndaRepo.Revoke(ndaID, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewError(domain.ErrCodeInvalidTransition, "NDA is already revoked")
		}
		return s.storeError("revoke signed nda", err)
	}

	s.metrics.RecordLifecycle("revoke", "revoked")
	s.audit(ownerID, domain.AuditActionRevoked, domain.AuditEntitySignedNDA, ndaID, nil)
	s.publish("nda.revoked", dto.NDARevokedEvent{
		EventID:     uuid.NewString(),
		SignedNDAID: nda.ID,
		PitchID:     nda.PitchID,
		SignerID:    nda.SignerID,
		OwnerID:     ownerID,
		RevokedAt:   now.Format(time.RFC3339),
	})
	return nil
}

func (s *ndaService) existingGrant(req *domain.NDARequest) (*dto.SignedNDAResponse, error) {
	nda, err := s.ndaRepo.FindByRequestID(req.ID)
	if err != nil {
		return nil, s.storeError("find signed nda for approved request", err)
	}
	resp := toSignedNDAResponse(nda)
	return &resp, nil
}

// storeError logs an unexpected persistence failure and passes it through;
// handlers turn non-domain errors into a generic 500.
func (s *ndaService) storeError(op string, err error) error {
	if s.logger != nil {
		s.logger.Error("nda store failure", zap.String("op", op), zap.Error(err))
	}
	return err
}

// audit is best-effort; a failed write is logged and never fails the action.
func (s *ndaService) audit(actorID uint, action, entity string, entityID uint, note *string) {
	if s.auditRepo == nil {
		return
	}
	entry := &domain.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Note:     note,
	}
	if err := s.auditRepo.Record(entry); err != nil && s.logger != nil {
		s.logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
	}
}

// publish is fire-and-forget; notification delivery never gates the workflow.
func (s *ndaService) publish(key string, payload any) {
	if s.producer == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.producer.PublishMessage([]byte(key), b); err != nil && s.logger != nil {
		s.logger.Warn("event publish failed", zap.String("key", key), zap.Error(err))
	}
}

func trimToPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	out := t.Format(time.RFC3339)
	return &out
}

func toRequestResponse(req *domain.NDARequest) dto.NDARequestResponse {
	return dto.NDARequestResponse{
		ID:              req.ID,
		PitchID:         req.PitchID,
		RequesterID:     req.RequesterID,
		OwnerID:         req.OwnerID,
		NDAType:         string(req.NDAType),
		Status:          string(req.Status),
		RequestMessage:  req.RequestMessage,
		ResponseMessage: req.ResponseMessage,
		RequestedAt:     req.RequestedAt.Format(time.RFC3339),
		RespondedAt:     formatTimePtr(req.RespondedAt),
	}
}

func toSignedNDAResponse(nda *domain.SignedNDA) dto.SignedNDAResponse {
	return dto.SignedNDAResponse{
		ID:          nda.ID,
		PitchID:     nda.PitchID,
		SignerID:    nda.SignerID,
		RequestID:   nda.RequestID,
		NDAType:     string(nda.NDAType),
		AccessLevel: string(nda.AccessLevel),
		SignedAt:    nda.SignedAt.Format(time.RFC3339),
		ExpiresAt:   formatTimePtr(nda.ExpiresAt),
		Revoked:     nda.Revoked,
		RevokedAt:   formatTimePtr(nda.RevokedAt),
	}
}
