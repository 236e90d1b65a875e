package customs

import (
	"context"
	"errors"

	"github.com/erp/customs/internal/domain/catalog"
	"github.com/erp/customs/internal/domain/customs"
	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
)

// ResolutionService answers which tariff codes apply to a product,
// template, or category for a given classification pattern.
type ResolutionService struct {
	templateRepo catalog.TemplateRepository
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	linkRepo     customs.TariffCodeLinkRepository
}

// NewResolutionService creates a new resolution service
func NewResolutionService(
	templateRepo catalog.TemplateRepository,
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	linkRepo customs.TariffCodeLinkRepository,
) *ResolutionService {
	return &ResolutionService{
		templateRepo: templateRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		linkRepo:     linkRepo,
	}
}

// ResolveForTemplate returns all matching tariff codes for a template
func (s *ResolutionService) ResolveForTemplate(ctx context.Context, tenantID, templateID uuid.UUID, req ResolveRequest) ([]TariffCodeResponse, error) {
	src := s.source(tenantID)
	if _, err := src.template(ctx, templateID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TEMPLATE_NOT_FOUND", "Product template not found")
		}
		return nil, err
	}
	return resolveAll(ctx, src, customs.TemplateRef(templateID), req)
}

// ResolveOneForTemplate returns the highest-priority matching tariff code
// for a template, or nil when nothing matches
func (s *ResolutionService) ResolveOneForTemplate(ctx context.Context, tenantID, templateID uuid.UUID, req ResolveRequest) (*TariffCodeResponse, error) {
	src := s.source(tenantID)
	if _, err := src.template(ctx, templateID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TEMPLATE_NOT_FOUND", "Product template not found")
		}
		return nil, err
	}
	return resolveOne(ctx, src, customs.TemplateRef(templateID), req)
}

// ResolveForProduct resolves through the product's template
func (s *ResolutionService) ResolveForProduct(ctx context.Context, tenantID, productID uuid.UUID, req ResolveRequest) ([]TariffCodeResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	return resolveAll(ctx, s.source(tenantID), customs.TemplateRef(product.TemplateID), req)
}

// ResolveOneForProduct returns the highest-priority matching tariff code
// for a product, or nil when nothing matches
func (s *ResolutionService) ResolveOneForProduct(ctx context.Context, tenantID, productID uuid.UUID, req ResolveRequest) (*TariffCodeResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	return resolveOne(ctx, s.source(tenantID), customs.TemplateRef(product.TemplateID), req)
}

// ResolveForCategory returns all matching tariff codes for a category
func (s *ResolutionService) ResolveForCategory(ctx context.Context, tenantID, categoryID uuid.UUID, req ResolveRequest) ([]TariffCodeResponse, error) {
	src := s.source(tenantID)
	if _, err := src.category(ctx, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}
	return resolveAll(ctx, src, customs.CategoryRef(categoryID), req)
}

// ResolveOneForCategory returns the highest-priority matching tariff code
// for a category, or nil when nothing matches
func (s *ResolutionService) ResolveOneForCategory(ctx context.Context, tenantID, categoryID uuid.UUID, req ResolveRequest) (*TariffCodeResponse, error) {
	src := s.source(tenantID)
	if _, err := src.category(ctx, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}
	return resolveOne(ctx, src, customs.CategoryRef(categoryID), req)
}

func resolveAll(ctx context.Context, src *repoSource, owner customs.OwnerRef, req ResolveRequest) ([]TariffCodeResponse, error) {
	resolver := customs.NewResolver(src)
	codes, err := resolver.ResolveAll(ctx, owner, req.toPattern())
	if err != nil {
		return nil, err
	}

	responses := make([]TariffCodeResponse, 0, len(codes))
	for _, code := range codes {
		responses = append(responses, *ToTariffCodeResponse(code))
	}
	return responses, nil
}

func resolveOne(ctx context.Context, src *repoSource, owner customs.OwnerRef, req ResolveRequest) (*TariffCodeResponse, error) {
	resolver := customs.NewResolver(src)
	code, err := resolver.ResolveOne(ctx, owner, req.toPattern())
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, nil
	}
	return ToTariffCodeResponse(code), nil
}

func (s *ResolutionService) source(tenantID uuid.UUID) *repoSource {
	return &repoSource{
		tenantID:     tenantID,
		templateRepo: s.templateRepo,
		categoryRepo: s.categoryRepo,
		linkRepo:     s.linkRepo,
		templates:    make(map[uuid.UUID]*catalog.Template),
		categories:   make(map[uuid.UUID]*catalog.Category),
	}
}

// repoSource adapts the repositories to the resolver's Source interface,
// scoped to one tenant. Owners are fetched at most once per resolution:
// the existence check and the delegation hop share the cached aggregate.
// A repoSource is built per request and is not safe for concurrent use.
type repoSource struct {
	tenantID     uuid.UUID
	templateRepo catalog.TemplateRepository
	categoryRepo catalog.CategoryRepository
	linkRepo     customs.TariffCodeLinkRepository
	templates    map[uuid.UUID]*catalog.Template
	categories   map[uuid.UUID]*catalog.Category
}

func (src *repoSource) template(ctx context.Context, id uuid.UUID) (*catalog.Template, error) {
	if template, ok := src.templates[id]; ok {
		return template, nil
	}
	template, err := src.templateRepo.FindByIDForTenant(ctx, src.tenantID, id)
	if err != nil {
		return nil, err
	}
	src.templates[id] = template
	return template, nil
}

func (src *repoSource) category(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	if category, ok := src.categories[id]; ok {
		return category, nil
	}
	category, err := src.categoryRepo.FindByIDForTenant(ctx, src.tenantID, id)
	if err != nil {
		return nil, err
	}
	src.categories[id] = category
	return category, nil
}

func (src *repoSource) Links(ctx context.Context, owner customs.OwnerRef) ([]customs.TariffCodeLink, error) {
	return src.linkRepo.FindByOwner(ctx, src.tenantID, owner)
}

// Delegation maps the catalog delegation flags onto resolver hops: a
// template deferring to its customs category, a category deferring to
// its parent.
func (src *repoSource) Delegation(ctx context.Context, owner customs.OwnerRef) (*customs.OwnerRef, error) {
	switch owner.Type {
	case customs.OwnerTypeTemplate:
		template, err := src.template(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		if !template.UseCategoryTariffCodes {
			return nil, nil
		}
		if template.CustomsCategoryID == nil {
			return nil, shared.NewDomainError("DELEGATION_TARGET_MISSING", "Template delegates tariff codes but has no customs category")
		}
		target := customs.CategoryRef(*template.CustomsCategoryID)
		return &target, nil

	case customs.OwnerTypeCategory:
		category, err := src.category(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		if !category.UseParentTariffCodes {
			return nil, nil
		}
		if category.ParentID == nil {
			return nil, shared.NewDomainError("DELEGATION_TARGET_MISSING", "Category delegates tariff codes but has no parent")
		}
		target := customs.CategoryRef(*category.ParentID)
		return &target, nil

	default:
		return nil, shared.NewDomainError("INVALID_OWNER", "Unknown link owner type")
	}
}
