package catalog

import (
	"context"
	"errors"

	"github.com/erp/customs/internal/domain/catalog"
	"github.com/erp/customs/internal/domain/customs"
	"github.com/erp/customs/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TemplateService handles template and product variant operations,
// including the template side of the customs configuration.
type TemplateService struct {
	templateRepo   catalog.TemplateRepository
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	linkRepo       customs.TariffCodeLinkRepository
	tariffCodeRepo customs.TariffCodeRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(
	templateRepo catalog.TemplateRepository,
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	linkRepo customs.TariffCodeLinkRepository,
	tariffCodeRepo customs.TariffCodeRepository,
) *TemplateService {
	return &TemplateService{
		templateRepo:   templateRepo,
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		linkRepo:       linkRepo,
		tariffCodeRepo: tariffCodeRepo,
	}
}

// Create creates a new product template
func (s *TemplateService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTemplateRequest) (*TemplateResponse, error) {
	exists, err := s.templateRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Template with this code already exists")
	}

	template, err := catalog.NewTemplate(tenantID, req.Code, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := template.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	return ToTemplateResponse(template), nil
}

// GetByID retrieves a template by ID
func (s *TemplateService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToTemplateResponse(template), nil
}

// List retrieves templates for a tenant with pagination
func (s *TemplateService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]TemplateResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	templates, err := s.templateRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.templateRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TemplateResponse, 0, len(templates))
	for i := range templates {
		responses = append(responses, *ToTemplateResponse(&templates[i]))
	}
	return responses, total, nil
}

// Update updates a template's basic information
func (s *TemplateService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = template.Name
	}
	if err := template.Update(name, req.Description); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	return ToTemplateResponse(template), nil
}

// UpdateCustoms updates a template's customs configuration. The customs
// category must exist and be customs-enabled; enabling category
// delegation requires the category to be set.
func (s *TemplateService) UpdateCustoms(ctx context.Context, tenantID, id uuid.UUID, req UpdateTemplateCustomsRequest) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.ClearCustomsCategory {
		if err := template.SetCustomsCategory(nil); err != nil {
			return nil, err
		}
	} else if req.CustomsCategoryID != nil {
		category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, *req.CustomsCategoryID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Customs category not found")
			}
			return nil, err
		}
		if !category.Customs {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is not customs-enabled")
		}
		if err := template.SetCustomsCategory(req.CustomsCategoryID); err != nil {
			return nil, err
		}
	}

	if req.UseCategoryTariffCodes != nil {
		if *req.UseCategoryTariffCodes {
			if err := template.EnableCategoryTariffCodes(); err != nil {
				return nil, err
			}
		} else {
			template.DisableCategoryTariffCodes()
		}
	}

	if req.ClearCountryOfOrigin {
		template.SetCountryOfOrigin(nil)
	} else if req.CountryOfOriginID != nil {
		template.SetCountryOfOrigin(req.CountryOfOriginID)
	}

	if req.NetWeight != nil {
		weight, err := decimal.NewFromString(*req.NetWeight)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_WEIGHT", "Net weight must be a decimal number")
		}
		if err := template.SetNetWeight(weight); err != nil {
			return nil, err
		}
	}

	if err := template.ValidateCustoms(); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	return ToTemplateResponse(template), nil
}

// ListTariffCodes returns the template's tariff code links in priority order
func (s *TemplateService) ListTariffCodes(ctx context.Context, tenantID, id uuid.UUID) ([]TariffCodeLinkResponse, error) {
	if _, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return nil, err
	}

	links, err := s.linkRepo.FindByOwner(ctx, tenantID, customs.TemplateRef(id))
	if err != nil {
		return nil, err
	}
	return ToTariffCodeLinkResponses(links), nil
}

// ReplaceTariffCodes replaces the template's tariff code link list
func (s *TemplateService) ReplaceTariffCodes(ctx context.Context, tenantID, id uuid.UUID, reqs []TariffCodeLinkRequest) ([]TariffCodeLinkResponse, error) {
	if _, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return nil, err
	}

	links, err := buildLinks(ctx, s.tariffCodeRepo, tenantID, customs.TemplateRef(id), reqs)
	if err != nil {
		return nil, err
	}

	if err := s.linkRepo.ReplaceForOwner(ctx, tenantID, customs.TemplateRef(id), links); err != nil {
		return nil, err
	}

	saved, err := s.linkRepo.FindByOwner(ctx, tenantID, customs.TemplateRef(id))
	if err != nil {
		return nil, err
	}
	return ToTariffCodeLinkResponses(saved), nil
}

// Delete deletes a template together with its tariff code links. The
// template must have no product variants left.
func (s *TemplateService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	variants, err := s.productRepo.CountByTemplate(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if variants > 0 {
		return shared.NewDomainError("INVALID_STATE", "Template with product variants cannot be deleted")
	}

	return s.templateRepo.DeleteForTenant(ctx, tenantID, id)
}

// CreateProduct creates a new product variant of a template
func (s *TemplateService) CreateProduct(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, req.TemplateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_TEMPLATE", "Template not found")
		}
		return nil, err
	}

	product, err := catalog.NewProduct(tenantID, template, req.Code, req.Suffix)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetProduct retrieves a product variant by ID
func (s *TemplateService) GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// ListProducts retrieves all variants of a template
func (s *TemplateService) ListProducts(ctx context.Context, tenantID, templateID uuid.UUID) ([]ProductResponse, error) {
	if _, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, templateID); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindByTemplate(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *ToProductResponse(&products[i]))
	}
	return responses, nil
}

// DeleteProduct deletes a product variant
func (s *TemplateService) DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.productRepo.DeleteForTenant(ctx, tenantID, id)
}
