package persistence

import (
	"context"
	"errors"

	"github.com/erp/customs/internal/domain/customs"
	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTariffCodeRepository implements TariffCodeRepository using GORM
type GormTariffCodeRepository struct {
	db *gorm.DB
}

// NewGormTariffCodeRepository creates a new GormTariffCodeRepository
func NewGormTariffCodeRepository(db *gorm.DB) *GormTariffCodeRepository {
	return &GormTariffCodeRepository{db: db}
}

// FindByID finds a tariff code by its ID
func (r *GormTariffCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*customs.TariffCode, error) {
	var code customs.TariffCode
	if err := r.db.WithContext(ctx).First(&code, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &code, nil
}

// FindByIDForTenant finds a tariff code by ID within a tenant
func (r *GormTariffCodeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*customs.TariffCode, error) {
	var code customs.TariffCode
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &code, nil
}

// FindByIDs finds tariff codes by their IDs within a tenant
func (r *GormTariffCodeRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]customs.TariffCode, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var codes []customs.TariffCode
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// FindAllForTenant finds all tariff codes for a tenant
func (r *GormTariffCodeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]customs.TariffCode, error) {
	var codes []customs.TariffCode
	query := r.applyFilter(r.db.WithContext(ctx).Model(&customs.TariffCode{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// CountForTenant counts tariff codes for a tenant
func (r *GormTariffCodeRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&customs.TariffCode{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a tariff code
func (r *GormTariffCodeRepository) Save(ctx context.Context, code *customs.TariffCode) error {
	return r.db.WithContext(ctx).Save(code).Error
}

// DeleteForTenant deletes a tariff code within a tenant. Links referencing
// the code are removed by the tariff_code_id foreign key cascade.
func (r *GormTariffCodeRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&customs.TariffCode{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormTariffCodeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TariffCodeSortFields, "code")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTariffCodeRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "country_id":
			if value == nil {
				query = query.Where("country_id IS NULL")
			} else {
				query = query.Where("country_id = ?", value)
			}
		}
	}

	return query
}

// Ensure GormTariffCodeRepository implements TariffCodeRepository
var _ customs.TariffCodeRepository = (*GormTariffCodeRepository)(nil)
