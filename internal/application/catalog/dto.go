package catalog

import (
	"time"

	"github.com/erp/customs/internal/domain/catalog"
	"github.com/erp/customs/internal/domain/customs"
	"github.com/google/uuid"
)

// CreateCategoryRequest is the application-level request to create a category
type CreateCategoryRequest struct {
	Code        string
	Name        string
	Description string
	ParentID    *uuid.UUID
	SortOrder   *int
}

// UpdateCategoryRequest is the application-level request to update a category
type UpdateCategoryRequest struct {
	Name        string
	Description string
	SortOrder   *int
}

// UpdateCategoryCustomsRequest updates a category's customs configuration.
// Nil fields are left unchanged.
type UpdateCategoryCustomsRequest struct {
	Customs              *bool
	UseParentTariffCodes *bool
}

// CategoryResponse represents a category in application responses
type CategoryResponse struct {
	ID                   uuid.UUID  `json:"id"`
	TenantID             uuid.UUID  `json:"tenant_id"`
	Code                 string     `json:"code"`
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	ParentID             *uuid.UUID `json:"parent_id,omitempty"`
	Path                 string     `json:"path"`
	Level                int        `json:"level"`
	SortOrder            int        `json:"sort_order"`
	Customs              bool       `json:"customs"`
	UseParentTariffCodes bool       `json:"use_parent_tariff_codes"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	Version              int        `json:"version"`
}

// ToCategoryResponse converts a domain category to a response
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:                   c.ID,
		TenantID:             c.TenantID,
		Code:                 c.Code,
		Name:                 c.Name,
		Description:          c.Description,
		ParentID:             c.ParentID,
		Path:                 c.Path,
		Level:                c.Level,
		SortOrder:            c.SortOrder,
		Customs:              c.Customs,
		UseParentTariffCodes: c.UseParentTariffCodes,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
		Version:              c.Version,
	}
}

// CreateTemplateRequest is the application-level request to create a template
type CreateTemplateRequest struct {
	Code        string
	Name        string
	Description string
	Unit        string
}

// UpdateTemplateRequest is the application-level request to update a template
type UpdateTemplateRequest struct {
	Name        string
	Description string
}

// UpdateTemplateCustomsRequest updates a template's customs configuration.
// Nil fields are left unchanged; ClearCustomsCategory removes the
// category reference.
type UpdateTemplateCustomsRequest struct {
	CustomsCategoryID      *uuid.UUID
	ClearCustomsCategory   bool
	UseCategoryTariffCodes *bool
	CountryOfOriginID      *uuid.UUID
	ClearCountryOfOrigin   bool
	NetWeight              *string
}

// TemplateResponse represents a template in application responses
type TemplateResponse struct {
	ID                     uuid.UUID  `json:"id"`
	TenantID               uuid.UUID  `json:"tenant_id"`
	Code                   string     `json:"code"`
	Name                   string     `json:"name"`
	Description            string     `json:"description"`
	Unit                   string     `json:"unit"`
	NetWeight              string     `json:"net_weight"`
	CustomsCategoryID      *uuid.UUID `json:"customs_category_id,omitempty"`
	UseCategoryTariffCodes bool       `json:"use_category_tariff_codes"`
	CountryOfOriginID      *uuid.UUID `json:"country_of_origin_id,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
	Version                int        `json:"version"`
}

// ToTemplateResponse converts a domain template to a response
func ToTemplateResponse(t *catalog.Template) *TemplateResponse {
	return &TemplateResponse{
		ID:                     t.ID,
		TenantID:               t.TenantID,
		Code:                   t.Code,
		Name:                   t.Name,
		Description:            t.Description,
		Unit:                   t.Unit,
		NetWeight:              t.NetWeight.String(),
		CustomsCategoryID:      t.CustomsCategoryID,
		UseCategoryTariffCodes: t.UseCategoryTariffCodes,
		CountryOfOriginID:      t.CountryOfOriginID,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
		Version:                t.Version,
	}
}

// CreateProductRequest is the application-level request to create a product variant
type CreateProductRequest struct {
	TemplateID uuid.UUID
	Code       string
	Suffix     string
}

// ProductResponse represents a product variant in application responses
type ProductResponse struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	TemplateID uuid.UUID `json:"template_id"`
	Code       string    `json:"code"`
	Suffix     string    `json:"suffix"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:         p.ID,
		TenantID:   p.TenantID,
		TemplateID: p.TemplateID,
		Code:       p.Code,
		Suffix:     p.Suffix,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// TariffCodeLinkRequest is one entry of an owner's replacement link list
type TariffCodeLinkRequest struct {
	TariffCodeID uuid.UUID
	Sequence     int
}

// TariffCodeLinkResponse represents a link in application responses
type TariffCodeLinkResponse struct {
	ID           int64     `json:"id"`
	TariffCodeID uuid.UUID `json:"tariff_code_id"`
	Code         string    `json:"code"`
	Description  string    `json:"description"`
	Sequence     int       `json:"sequence"`
}

// ToTariffCodeLinkResponses converts domain links to responses, keeping order
func ToTariffCodeLinkResponses(links []customs.TariffCodeLink) []TariffCodeLinkResponse {
	out := make([]TariffCodeLinkResponse, 0, len(links))
	for i := range links {
		resp := TariffCodeLinkResponse{
			ID:           links[i].ID,
			TariffCodeID: links[i].TariffCodeID,
			Sequence:     links[i].Sequence,
		}
		if links[i].TariffCode != nil {
			resp.Code = links[i].TariffCode.Code
			resp.Description = links[i].TariffCode.Description
		}
		out = append(out, resp)
	}
	return out
}

// ListFilter carries common list parameters from the interface layer
type ListFilter struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string
	SortDir  string
}
