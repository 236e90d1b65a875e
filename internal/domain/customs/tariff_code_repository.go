package customs

import (
	"context"

	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// TariffCodeRepository defines the interface for tariff code persistence
type TariffCodeRepository interface {
	// FindByID finds a tariff code by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*TariffCode, error)

	// FindByIDForTenant finds a tariff code by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*TariffCode, error)

	// FindByIDs finds tariff codes by their IDs within a tenant
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]TariffCode, error)

	// FindAllForTenant finds all tariff codes for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]TariffCode, error)

	// CountForTenant counts tariff codes for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a tariff code
	Save(ctx context.Context, code *TariffCode) error

	// DeleteForTenant deletes a tariff code within a tenant.
	// Links referencing the code are removed by the database cascade.
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// TariffCodeLinkRepository defines the interface for link persistence.
// Links have no independent lifecycle: they are read per owner, replaced
// per owner, and removed in bulk when owners are deleted.
type TariffCodeLinkRepository interface {
	// FindByOwner returns the owner's links in (sequence, id) order with
	// the referenced tariff codes loaded.
	FindByOwner(ctx context.Context, tenantID uuid.UUID, owner OwnerRef) ([]TariffCodeLink, error)

	// ReplaceForOwner atomically replaces the owner's link list
	ReplaceForOwner(ctx context.Context, tenantID uuid.UUID, owner OwnerRef, links []TariffCodeLink) error

	// DeleteByOwners deletes all links owned by any of the given owners,
	// batching owner IDs to bound query size.
	DeleteByOwners(ctx context.Context, tenantID uuid.UUID, ownerType OwnerType, ownerIDs []uuid.UUID) error

	// CountByTariffCode counts links referencing a tariff code
	CountByTariffCode(ctx context.Context, tenantID, tariffCodeID uuid.UUID) (int64, error)
}
