package api

import (
	"fmt"

	"github.com/PitchPoint/nda_service/internal/domain"
	"github.com/PitchPoint/nda_service/internal/helper"
	"gorm.io/gorm"
)

// migrateLockID serializes schema migration across replicas.
const migrateLockID int64 = 20260223

// ownedModels are the tables this service migrates. The pitches table belongs
// to the pitch service and is only read here.
var ownedModels = []any{
	&domain.NDARequest{},
	&domain.SignedNDA{},
	&domain.AuditLog{},
}

// migrate runs the schema migration under a transaction-scoped advisory lock.
func migrate(db *gorm.DB) error {
	return withMigrationLock(db, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(ownedModels...); err != nil {
			return err
		}

		// Partial unique indexes: at most one pending request and one active
		// grant per (pitch, requester). The uniqueness holds even under direct
		// data access, not just in application code.
		if err := tx.Exec(fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS %s ON nda_requests (pitch_id, requester_id) WHERE status = 'pending'`,
			helper.PendingRequestIndex,
		)).Error; err != nil {
			return err
		}
		return tx.Exec(fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS %s ON signed_ndas (pitch_id, signer_id) WHERE revoked = false`,
			helper.ActiveNDAIndex,
		)).Error
	})
}

// withMigrationLock runs fn inside one transaction holding
// pg_advisory_xact_lock. The lock lives on the transaction's own session and
// Postgres releases it at commit or rollback, so a replica never holds it
// while serving and a waiting replica proceeds as soon as migration finishes.
func withMigrationLock(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", migrateLockID).Error; err != nil {
			return err
		}
		return fn(tx)
	})
}
