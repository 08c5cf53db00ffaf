package services

import (
	"testing"
	"time"

	"github.com/PitchPoint/nda_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const viewerID uint = 30

func newAccessEnv() (*fakeStore, AccessService) {
	store := newFakeStore()
	store.addPitch(domain.Pitch{
		ID:              pitchID,
		CreatorID:       ownerID,
		Title:           "Midnight Heist",
		Logline:         "One last job before dawn.",
		Genre:           "thriller",
		RequireNDA:      true,
		ShortSynopsis:   "A crew reunites.",
		Synopsis:        "The full story.",
		BudgetBreakdown: "12M total.",
		CharacterDetail: "Four leads.",
		Financials:      "Pre-sales cover 40%.",
	})

	svc := NewAccessService(
		&fakePitchRepo{store: store},
		&fakeRequestRepo{store: store},
		&fakeNDARepo{store: store},
		nil,
		zap.NewNop(),
		DefaultProjectionPolicy(),
	)
	return store, svc
}

func addRequest(store *fakeStore, status domain.RequestStatus, requestedAt time.Time) *domain.NDARequest {
	store.nextRequestID++
	req := &domain.NDARequest{
		ID:          store.nextRequestID,
		PitchID:     pitchID,
		RequesterID: viewerID,
		OwnerID:     ownerID,
		NDAType:     domain.NDATypeBasic,
		Status:      status,
		RequestedAt: requestedAt,
	}
	store.requests[req.ID] = req
	return req
}

func addNDA(store *fakeStore, level domain.AccessLevel, signedAt time.Time, expiresAt *time.Time, revoked bool) *domain.SignedNDA {
	store.nextNDAID++
	nda := &domain.SignedNDA{
		ID:          store.nextNDAID,
		PitchID:     pitchID,
		SignerID:    viewerID,
		RequestID:   store.nextNDAID + 1000,
		NDAType:     domain.NDATypeBasic,
		AccessLevel: level,
		SignedAt:    signedAt,
		ExpiresAt:   expiresAt,
		Revoked:     revoked,
	}
	if revoked {
		at := signedAt.Add(time.Hour)
		nda.RevokedAt = &at
	}
	store.ndas[nda.ID] = nda
	return nda
}

func TestEvaluateNoHistory(t *testing.T) {
	_, svc := newAccessEnv()

	d, err := svc.Evaluate(pitchID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusNone, d.Status)
	assert.Equal(t, domain.AccessLevelNone, d.AccessLevel)
}

func TestEvaluateUnknownPitch(t *testing.T) {
	_, svc := newAccessEnv()

	d, err := svc.Evaluate(999, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusNone, d.Status)
}

func TestEvaluateOwnerSelfAccess(t *testing.T) {
	store, svc := newAccessEnv()
	addNDA(store, domain.AccessLevelBasic, time.Now().Add(-time.Hour), nil, true)

	d, err := svc.Evaluate(pitchID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusApproved, d.Status)
	assert.Equal(t, domain.AccessLevelEnhanced, d.AccessLevel)
}

func TestEvaluateUngatedPitch(t *testing.T) {
	store, svc := newAccessEnv()
	store.addPitch(domain.Pitch{ID: 2, CreatorID: ownerID, Title: "Open Pitch", RequireNDA: false})

	d, err := svc.Evaluate(2, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusApproved, d.Status)
	assert.Equal(t, domain.AccessLevelEnhanced, d.AccessLevel)
}

func TestEvaluatePendingRequest(t *testing.T) {
	store, svc := newAccessEnv()
	req := addRequest(store, domain.RequestStatusPending, time.Now())

	d, err := svc.Evaluate(pitchID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusPending, d.Status)
	assert.Equal(t, domain.AccessLevelNone, d.AccessLevel)
	require.NotNil(t, d.RequestID)
	assert.Equal(t, req.ID, *d.RequestID)
}

func TestEvaluateRejectedRequest(t *testing.T) {
	store, svc := newAccessEnv()
	addRequest(store, domain.RequestStatusRejected, time.Now())

	d, err := svc.Evaluate(pitchID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusRejected, d.Status)
	assert.Equal(t, domain.AccessLevelNone, d.AccessLevel)
}

func TestEvaluateWithdrawnRequest(t *testing.T) {
	store, svc := newAccessEnv()
	addRequest(store, domain.RequestStatusWithdrawn, time.Now())

	d, err := svc.Evaluate(pitchID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusNone, d.Status)
}

func TestEvaluateActiveNDA(t *testing.T) {
	store, svc := newAccessEnv()
	exp := time.Now().Add(24 * time.Hour)
	nda := addNDA(store, domain.AccessLevelBasic, time.Now().Add(-time.Hour), &exp, false)

	d, err := svc.Evaluate(pitchID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusApproved, d.Status)
	assert.Equal(t, domain.AccessLevelBasic, d.AccessLevel)
	require.NotNil(t, d.SignedNDAID)
	assert.Equal(t, nda.ID, *d.SignedNDAID)
	require.NotNil(t, d.ExpiresAt)
}

func TestEvaluateExpiredNDA(t *testing.T) {
	store, svc := newAccessEnv()
	exp := time.Now().Add(-time.Minute)
	addNDA(store, domain.AccessLevelEnhanced, time.Now().Add(-time.Hour), &exp, false)

	d, err := svc.Evaluate(pitchID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusExpired, d.Status)
	assert.Equal(t, domain.AccessLevelNone, d.AccessLevel)
}

func TestEvaluateRevokedNDA(t *testing.T) {
	store, svc := newAccessEnv()
	addNDA(store, domain.AccessLevelEnhanced, time.Now().Add(-time.Hour), nil, true)

	d, err := svc.Evaluate(pitchID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusRevoked, d.Status)
	assert.Equal(t, domain.AccessLevelNone, d.AccessLevel)
}

func TestEvaluateRevokedBeatsExpired(t *testing.T) {
	store, svc := newAccessEnv()
	exp := time.Now().Add(-time.Minute)
	addNDA(store, domain.AccessLevelBasic, time.Now().Add(-time.Hour), &exp, true)

	d, err := svc.Evaluate(pitchID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusRevoked, d.Status)
}

func TestEvaluatePendingRerequestAfterRevocation(t *testing.T) {
	store, svc := newAccessEnv()
	signed := time.Now().Add(-2 * time.Hour)
	addNDA(store, domain.AccessLevelBasic, signed, nil, true)
	req := addRequest(store, domain.RequestStatusPending, time.Now())

	d, err := svc.Evaluate(pitchID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusPending, d.Status)
	require.NotNil(t, d.RequestID)
	assert.Equal(t, req.ID, *d.RequestID)
}

func TestEvaluateOldRequestDoesNotOutrankRevocation(t *testing.T) {
	store, svc := newAccessEnv()
	addRequest(store, domain.RequestStatusApproved, time.Now().Add(-3*time.Hour))
	addNDA(store, domain.AccessLevelBasic, time.Now().Add(-2*time.Hour), nil, true)

	d, err := svc.Evaluate(pitchID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessStatusRevoked, d.Status)
}

func TestViewPitchUnknown(t *testing.T) {
	_, svc := newAccessEnv()

	_, err := svc.ViewPitch(999, viewerID)
	assert.True(t, domain.IsCode(err, domain.ErrCodeNotFound))
}

func TestViewPitchWithoutAccess(t *testing.T) {
	_, svc := newAccessEnv()

	view, err := svc.ViewPitch(pitchID, viewerID)
	require.NoError(t, err)

	assert.Equal(t, "Midnight Heist", view.Title)
	assert.Equal(t, "none", view.AccessStatus)
	assert.Nil(t, view.ShortSynopsis)
	assert.Nil(t, view.Synopsis)
	assert.Nil(t, view.BudgetBreakdown)
	assert.Nil(t, view.CharacterDetail)
	assert.Nil(t, view.Financials)
}

func TestViewPitchBasicAccess(t *testing.T) {
	store, svc := newAccessEnv()
	addNDA(store, domain.AccessLevelBasic, time.Now().Add(-time.Hour), nil, false)

	view, err := svc.ViewPitch(pitchID, viewerID)
	require.NoError(t, err)

	assert.Equal(t, "approved", view.AccessStatus)
	assert.Equal(t, "basic", view.AccessLevel)
	require.NotNil(t, view.ShortSynopsis)
	assert.Equal(t, "A crew reunites.", *view.ShortSynopsis)
	assert.Nil(t, view.Synopsis)
	assert.Nil(t, view.Financials)
}

func TestViewPitchOwnerSeesEverything(t *testing.T) {
	_, svc := newAccessEnv()

	view, err := svc.ViewPitch(pitchID, ownerID)
	require.NoError(t, err)

	assert.Equal(t, "enhanced", view.AccessLevel)
	require.NotNil(t, view.Synopsis)
	require.NotNil(t, view.BudgetBreakdown)
	require.NotNil(t, view.CharacterDetail)
	require.NotNil(t, view.Financials)
}
