package catalog

import (
	"context"

	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// TemplateRepository defines the interface for template persistence
type TemplateRepository interface {
	// FindByID finds a template by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)

	// FindByIDForTenant finds a template by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Template, error)

	// FindByCode finds a template by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Template, error)

	// FindAllForTenant finds all templates for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Template, error)

	// CountForTenant counts templates for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByCustomsCategory counts templates referencing a customs category
	CountByCustomsCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error)

	// ExistsByCode checks if a template with the given code exists in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	// Save creates or updates a template
	Save(ctx context.Context, template *Template) error

	// DeleteForTenant deletes a template within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// ProductRepository defines the interface for product variant persistence
type ProductRepository interface {
	// FindByIDForTenant finds a product by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its SKU within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Product, error)

	// FindByTemplate finds all variants of a template
	FindByTemplate(ctx context.Context, tenantID, templateID uuid.UUID) ([]Product, error)

	// CountByTemplate counts the variants of a template
	CountByTemplate(ctx context.Context, tenantID, templateID uuid.UUID) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// DeleteForTenant deletes a product within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
