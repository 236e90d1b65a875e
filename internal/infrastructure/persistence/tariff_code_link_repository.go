package persistence

import (
	"context"

	"github.com/erp/customs/internal/domain/customs"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ownerIDBatchSize bounds the IN clause when deleting links for many owners
const ownerIDBatchSize = 100

// GormTariffCodeLinkRepository implements TariffCodeLinkRepository using GORM
type GormTariffCodeLinkRepository struct {
	db *gorm.DB
}

// NewGormTariffCodeLinkRepository creates a new GormTariffCodeLinkRepository
func NewGormTariffCodeLinkRepository(db *gorm.DB) *GormTariffCodeLinkRepository {
	return &GormTariffCodeLinkRepository{db: db}
}

// FindByOwner returns the owner's links in (sequence, id) order with the
// referenced tariff codes loaded
func (r *GormTariffCodeLinkRepository) FindByOwner(ctx context.Context, tenantID uuid.UUID, owner customs.OwnerRef) ([]customs.TariffCodeLink, error) {
	var links []customs.TariffCodeLink
	if err := r.db.WithContext(ctx).
		Preload("TariffCode").
		Where("tenant_id = ? AND owner_type = ? AND owner_id = ?", tenantID, owner.Type, owner.ID).
		Order("sequence ASC, id ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// ReplaceForOwner atomically replaces the owner's link list
func (r *GormTariffCodeLinkRepository) ReplaceForOwner(ctx context.Context, tenantID uuid.UUID, owner customs.OwnerRef, links []customs.TariffCodeLink) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND owner_type = ? AND owner_id = ?", tenantID, owner.Type, owner.ID).
			Delete(&customs.TariffCodeLink{}).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Omit("TariffCode").Create(&links).Error
	})
}

// DeleteByOwners deletes all links owned by any of the given owners,
// batching owner IDs to bound query size
func (r *GormTariffCodeLinkRepository) DeleteByOwners(ctx context.Context, tenantID uuid.UUID, ownerType customs.OwnerType, ownerIDs []uuid.UUID) error {
	if len(ownerIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteLinksByOwners(tx, tenantID, ownerType, ownerIDs)
	})
}

// deleteLinksByOwners removes the links of the given owners on an open
// transaction. The owner repositories run it inside their delete
// transactions, since the polymorphic owner reference carries no foreign
// key that could cascade.
func deleteLinksByOwners(tx *gorm.DB, tenantID uuid.UUID, ownerType customs.OwnerType, ownerIDs []uuid.UUID) error {
	for start := 0; start < len(ownerIDs); start += ownerIDBatchSize {
		end := start + ownerIDBatchSize
		if end > len(ownerIDs) {
			end = len(ownerIDs)
		}
		if err := tx.
			Where("tenant_id = ? AND owner_type = ? AND owner_id IN ?", tenantID, ownerType, ownerIDs[start:end]).
			Delete(&customs.TariffCodeLink{}).Error; err != nil {
			return err
		}
	}
	return nil
}

// CountByTariffCode counts links referencing a tariff code
func (r *GormTariffCodeLinkRepository) CountByTariffCode(ctx context.Context, tenantID, tariffCodeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&customs.TariffCodeLink{}).
		Where("tenant_id = ? AND tariff_code_id = ?", tenantID, tariffCodeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormTariffCodeLinkRepository implements TariffCodeLinkRepository
var _ customs.TariffCodeLinkRepository = (*GormTariffCodeLinkRepository)(nil)
