package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/erp/customs/internal/domain/catalog"
	"github.com/erp/customs/internal/domain/customs"
	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTemplateRepository implements TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID finds a template by its ID
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Template, error) {
	var template catalog.Template
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindByIDForTenant finds a template by ID within a tenant
func (r *GormTemplateRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Template, error) {
	var template catalog.Template
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindByCode finds a template by its code within a tenant
func (r *GormTemplateRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Template, error) {
	var template catalog.Template
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindAllForTenant finds all templates for a tenant
func (r *GormTemplateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Template, error) {
	var templates []catalog.Template
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Template{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// CountForTenant counts templates for a tenant
func (r *GormTemplateRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Template{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCustomsCategory counts templates referencing a customs category
func (r *GormTemplateRepository) CountByCustomsCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Template{}).
		Where("tenant_id = ? AND customs_category_id = ?", tenantID, categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a template with the given code exists in the tenant
func (r *GormTemplateRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Template{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a template
func (r *GormTemplateRepository) Save(ctx context.Context, template *catalog.Template) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// DeleteForTenant deletes a template within a tenant. Tariff code links
// owned by the template are removed in the same transaction because the
// polymorphic owner reference carries no foreign key.
func (r *GormTemplateRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteLinksByOwners(tx, tenantID, customs.OwnerTypeTemplate, []uuid.UUID{id}); err != nil {
			return err
		}

		result := tx.Delete(&catalog.Template{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormTemplateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TemplateSortFields, "code")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTemplateRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customs_category_id":
			if value == nil {
				query = query.Where("customs_category_id IS NULL")
			} else {
				query = query.Where("customs_category_id = ?", value)
			}
		case "use_category_tariff_codes":
			query = query.Where("use_category_tariff_codes = ?", value)
		}
	}

	return query
}

// Ensure GormTemplateRepository implements TemplateRepository
var _ catalog.TemplateRepository = (*GormTemplateRepository)(nil)
