package services

import (
	"sort"
	"sync"
	"time"

	"github.com/PitchPoint/nda_service/internal/domain"
	"github.com/PitchPoint/nda_service/internal/helper"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// In-memory fakes mirroring the repository contracts, including the
// gorm.ErrRecordNotFound convention and the partial-unique behavior the
// Postgres indexes enforce.

type fakeStore struct {
	mu sync.Mutex

	pitches  map[uint]*domain.Pitch
	requests map[uint]*domain.NDARequest
	ndas     map[uint]*domain.SignedNDA
	audits   []domain.AuditLog

	nextRequestID uint
	nextNDAID     uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pitches:  map[uint]*domain.Pitch{},
		requests: map[uint]*domain.NDARequest{},
		ndas:     map[uint]*domain.SignedNDA{},
	}
}

func (f *fakeStore) addPitch(p domain.Pitch) {
	f.pitches[p.ID] = &p
}

// ---------- PitchRepository ----------

type fakePitchRepo struct{ store *fakeStore }

func (r *fakePitchRepo) FindByID(id uint) (*domain.Pitch, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.pitches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

// ---------- NDARequestRepository ----------

type fakeRequestRepo struct {
	store *fakeStore

	// hidePendingOnce makes the next FindPending miss, simulating a second
	// writer racing past the pre-check and into the unique index.
	hidePendingOnce bool
}

func (r *fakeRequestRepo) Create(req *domain.NDARequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.requests {
		if existing.PitchID == req.PitchID &&
			existing.RequesterID == req.RequesterID &&
			existing.Status == domain.RequestStatusPending {
			return &pgconn.PgError{Code: "23505", ConstraintName: helper.PendingRequestIndex}
		}
	}

	r.store.nextRequestID++
	req.ID = r.store.nextRequestID
	cp := *req
	r.store.requests[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) FindByID(id uint) (*domain.NDARequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) FindPending(pitchID, requesterID uint) (*domain.NDARequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.hidePendingOnce {
		r.hidePendingOnce = false
		return nil, gorm.ErrRecordNotFound
	}

	var newest *domain.NDARequest
	for _, req := range r.store.requests {
		if req.PitchID != pitchID || req.RequesterID != requesterID || req.Status != domain.RequestStatusPending {
			continue
		}
		if newest == nil || req.RequestedAt.After(newest.RequestedAt) {
			newest = req
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *newest
	return &cp, nil
}

func (r *fakeRequestRepo) FindLatest(pitchID, requesterID uint) (*domain.NDARequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var newest *domain.NDARequest
	for _, req := range r.store.requests {
		if req.PitchID != pitchID || req.RequesterID != requesterID {
			continue
		}
		if newest == nil || req.RequestedAt.After(newest.RequestedAt) ||
			(req.RequestedAt.Equal(newest.RequestedAt) && req.ID > newest.ID) {
			newest = req
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *newest
	return &cp, nil
}

func (r *fakeRequestRepo) ListByPitch(pitchID uint) ([]domain.NDARequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []domain.NDARequest
	for _, req := range r.store.requests {
		if req.PitchID == pitchID {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RequestedAt.After(out[j].RequestedAt)
	})
	return out, nil
}

func (r *fakeRequestRepo) Withdraw(id, requesterID uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.requests[id]
	if !ok || req.RequesterID != requesterID || req.Status != domain.RequestStatusPending {
		return gorm.ErrRecordNotFound
	}
	req.Status = domain.RequestStatusWithdrawn
	return nil
}

func (r *fakeRequestRepo) Approve(id uint, respondedAt time.Time, message *string, nda *domain.SignedNDA) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.requests[id]
	if !ok || req.Status != domain.RequestStatusPending {
		return gorm.ErrRecordNotFound
	}
	req.Status = domain.RequestStatusApproved
	req.RespondedAt = &respondedAt
	req.ResponseMessage = message

	for _, existing := range r.store.ndas {
		if existing.PitchID == nda.PitchID && existing.SignerID == nda.SignerID &&
			!existing.Revoked && existing.Expired(respondedAt) {
			existing.Revoked = true
			revokedAt := respondedAt
			existing.RevokedAt = &revokedAt
		}
	}

	r.store.nextNDAID++
	nda.ID = r.store.nextNDAID
	cp := *nda
	r.store.ndas[nda.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) Reject(id uint, respondedAt time.Time, message *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.requests[id]
	if !ok || req.Status != domain.RequestStatusPending {
		return gorm.ErrRecordNotFound
	}
	req.Status = domain.RequestStatusRejected
	req.RespondedAt = &respondedAt
	req.ResponseMessage = message
	return nil
}

// ---------- SignedNDARepository ----------

type fakeNDARepo struct{ store *fakeStore }

func (r *fakeNDARepo) FindByID(id uint) (*domain.SignedNDA, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	nda, ok := r.store.ndas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *nda
	return &cp, nil
}

func (r *fakeNDARepo) FindByRequestID(requestID uint) (*domain.SignedNDA, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, nda := range r.store.ndas {
		if nda.RequestID == requestID {
			cp := *nda
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNDARepo) FindLatest(pitchID, signerID uint) (*domain.SignedNDA, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var newest *domain.SignedNDA
	for _, nda := range r.store.ndas {
		if nda.PitchID != pitchID || nda.SignerID != signerID {
			continue
		}
		if newest == nil || nda.SignedAt.After(newest.SignedAt) ||
			(nda.SignedAt.Equal(newest.SignedAt) && nda.ID > newest.ID) {
			newest = nda
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *newest
	return &cp, nil
}

func (r *fakeNDARepo) FindActive(pitchID, signerID uint, now time.Time) (*domain.SignedNDA, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var newest *domain.SignedNDA
	for _, nda := range r.store.ndas {
		if nda.PitchID != pitchID || nda.SignerID != signerID || !nda.Active(now) {
			continue
		}
		if newest == nil || nda.SignedAt.After(newest.SignedAt) {
			newest = nda
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *newest
	return &cp, nil
}

func (r *fakeNDARepo) Revoke(id uint, revokedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	nda, ok := r.store.ndas[id]
	if !ok || nda.Revoked {
		return gorm.ErrRecordNotFound
	}
	nda.Revoked = true
	nda.RevokedAt = &revokedAt
	return nil
}

// ---------- AuditRepository ----------

type fakeAuditRepo struct{ store *fakeStore }

func (r *fakeAuditRepo) Record(entry *domain.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entry.ID = uint(len(r.store.audits) + 1)
	r.store.audits = append(r.store.audits, *entry)
	return nil
}

func (r *fakeAuditRepo) ListByEntity(entity string, entityID uint) ([]domain.AuditLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.AuditLog
	for _, e := range r.store.audits {
		if e.Entity == entity && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ---------- ProducerHandler ----------

type publishedMessage struct {
	Key   string
	Value string
}

type fakeProducer struct {
	mu       sync.Mutex
	messages []publishedMessage
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{Key: string(key), Value: string(value)})
	return nil
}

func (p *fakeProducer) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.Key)
	}
	return out
}
