package catalog

import (
	"context"

	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByIDForTenant finds a category by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)

	// FindByCode finds a category by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Category, error)

	// FindAllForTenant finds all categories for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Category, error)

	// FindChildren finds all direct children of a category
	FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]Category, error)

	// FindRootCategories finds all root categories for a tenant
	FindRootCategories(ctx context.Context, tenantID uuid.UUID) ([]Category, error)

	// FindDescendants finds all descendants of a category using the materialized path
	FindDescendants(ctx context.Context, tenantID, categoryID uuid.UUID) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// DeleteForTenant deletes a category within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// HasChildren checks if a category has any children
	HasChildren(ctx context.Context, tenantID, categoryID uuid.UUID) (bool, error)

	// CountForTenant counts categories for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a category with the given code exists in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	// MoveSubtree persists a reparented category and rewrites its
	// subtree in the same transaction: descendant paths get the
	// category's new path as prefix, levels shift by levelDelta, and
	// the category's customs flag is propagated down.
	MoveSubtree(ctx context.Context, category *Category, oldPrefix string, levelDelta int) error
}
