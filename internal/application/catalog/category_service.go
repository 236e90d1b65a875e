package catalog

import (
	"context"
	"errors"

	"github.com/erp/customs/internal/domain/catalog"
	"github.com/erp/customs/internal/domain/customs"
	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles category-related business operations, including
// the category side of the customs configuration.
type CategoryService struct {
	categoryRepo   catalog.CategoryRepository
	templateRepo   catalog.TemplateRepository
	linkRepo       customs.TariffCodeLinkRepository
	tariffCodeRepo customs.TariffCodeRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	templateRepo catalog.TemplateRepository,
	linkRepo customs.TariffCodeLinkRepository,
	tariffCodeRepo customs.TariffCodeRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo:   categoryRepo,
		templateRepo:   templateRepo,
		linkRepo:       linkRepo,
		tariffCodeRepo: tariffCodeRepo,
	}
}

// Create creates a new category. Children inherit the parent's customs flag.
func (s *CategoryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this code already exists")
	}

	var category *catalog.Category

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}

		category, err = catalog.NewChildCategory(tenantID, req.Code, req.Name, parent)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = catalog.NewCategory(tenantID, req.Code, req.Name)
		if err != nil {
			return nil, err
		}
	}

	if req.Description != "" {
		if err := category.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// List retrieves categories for a tenant with pagination
func (s *CategoryService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	categories, err := s.categoryRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *ToCategoryResponse(&categories[i]))
	}
	return responses, total, nil
}

// GetRoots retrieves all root categories for a tenant
func (s *CategoryService) GetRoots(ctx context.Context, tenantID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindRootCategories(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *ToCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// GetChildren retrieves the direct children of a category
func (s *CategoryService) GetChildren(ctx context.Context, tenantID, id uuid.UUID) ([]CategoryResponse, error) {
	if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindChildren(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *ToCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// Update updates a category's basic information
func (s *CategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = category.Name
	}
	if err := category.Update(name, req.Description); err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// UpdateCustoms updates a category's customs configuration. The customs
// flag itself can only change on a root category without children; the
// new value is not propagated because no descendants can exist.
func (s *CategoryService) UpdateCustoms(ctx context.Context, tenantID, id uuid.UUID, req UpdateCategoryCustomsRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Customs != nil && *req.Customs != category.Customs {
		hasChildren, err := s.categoryRepo.HasChildren(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if hasChildren {
			return nil, shared.NewDomainError("INVALID_STATE", "Customs flag cannot change on a category with children")
		}
		if err := category.SetCustoms(*req.Customs); err != nil {
			return nil, err
		}
	}

	if req.UseParentTariffCodes != nil {
		if *req.UseParentTariffCodes {
			if err := category.EnableParentTariffCodes(); err != nil {
				return nil, err
			}
		} else {
			category.DisableParentTariffCodes()
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// Move reparents a category and keeps its subtree consistent: descendant
// paths and levels are rewritten and the new parent's customs flag is
// propagated to the whole subtree.
func (s *CategoryService) Move(ctx context.Context, tenantID, id uuid.UUID, parentID *uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	oldPath := category.Path
	oldLevel := category.Level

	var parent *catalog.Category
	if parentID != nil {
		parent, err = s.categoryRepo.FindByIDForTenant(ctx, tenantID, *parentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
	}

	if err := category.MoveTo(parent); err != nil {
		return nil, err
	}

	// One repository call so the category row, the descendant path
	// rewrite and the customs propagation commit or roll back together
	if err := s.categoryRepo.MoveSubtree(ctx, category, oldPath+"/", category.Level-oldLevel); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// ListTariffCodes returns the category's tariff code links in priority order
func (s *CategoryService) ListTariffCodes(ctx context.Context, tenantID, id uuid.UUID) ([]TariffCodeLinkResponse, error) {
	if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return nil, err
	}

	links, err := s.linkRepo.FindByOwner(ctx, tenantID, customs.CategoryRef(id))
	if err != nil {
		return nil, err
	}
	return ToTariffCodeLinkResponses(links), nil
}

// ReplaceTariffCodes replaces the category's tariff code link list
func (s *CategoryService) ReplaceTariffCodes(ctx context.Context, tenantID, id uuid.UUID, reqs []TariffCodeLinkRequest) ([]TariffCodeLinkResponse, error) {
	if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return nil, err
	}

	links, err := buildLinks(ctx, s.tariffCodeRepo, tenantID, customs.CategoryRef(id), reqs)
	if err != nil {
		return nil, err
	}

	if err := s.linkRepo.ReplaceForOwner(ctx, tenantID, customs.CategoryRef(id), links); err != nil {
		return nil, err
	}

	saved, err := s.linkRepo.FindByOwner(ctx, tenantID, customs.CategoryRef(id))
	if err != nil {
		return nil, err
	}
	return ToTariffCodeLinkResponses(saved), nil
}

// Delete deletes a category together with its tariff code links. The
// category must have no children and no templates using it as their
// customs category.
func (s *CategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewDomainError("INVALID_STATE", "Category with children cannot be deleted")
	}

	inUse, err := s.templateRepo.CountByCustomsCategory(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return shared.NewDomainError("INVALID_STATE", "Category is used as a customs category by templates")
	}

	return s.categoryRepo.DeleteForTenant(ctx, tenantID, id)
}

// buildLinks validates a replacement link list and converts it to domain
// links: every referenced tariff code must exist in the tenant.
func buildLinks(ctx context.Context, codeRepo customs.TariffCodeRepository, tenantID uuid.UUID, owner customs.OwnerRef, reqs []TariffCodeLinkRequest) ([]customs.TariffCodeLink, error) {
	ids := make([]uuid.UUID, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.TariffCodeID)
	}

	if len(ids) > 0 {
		codes, err := codeRepo.FindByIDs(ctx, tenantID, ids)
		if err != nil {
			return nil, err
		}
		known := make(map[uuid.UUID]struct{}, len(codes))
		for i := range codes {
			known[codes[i].ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := known[id]; !ok {
				return nil, shared.NewDomainError("INVALID_TARIFF_CODE", "Tariff code "+id.String()+" not found")
			}
		}
	}

	links := make([]customs.TariffCodeLink, 0, len(reqs))
	for _, r := range reqs {
		link, err := customs.NewTariffCodeLink(tenantID, owner, r.TariffCodeID, r.Sequence)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	return links, nil
}

// toDomainFilter converts interface-layer list parameters to a domain filter
func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Search != "" {
		domainFilter.Search = filter.Search
	}
	if filter.SortBy != "" {
		domainFilter.OrderBy = filter.SortBy
	}
	if filter.SortDir != "" {
		domainFilter.OrderDir = filter.SortDir
	}
	return domainFilter
}
