package handler

import (
	catalogapp "github.com/erp/customs/internal/application/catalog"
	"github.com/erp/customs/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TemplateHandler handles product template API endpoints
type TemplateHandler struct {
	BaseHandler
	templateService *catalogapp.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService *catalogapp.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

// CreateTemplateRequest represents a request to create a product template
type CreateTemplateRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Unit        string `json:"unit" binding:"required,min=1,max=20"`
}

// UpdateTemplateRequest represents a request to update a product template
type UpdateTemplateRequest struct {
	Name        string `json:"name" binding:"omitempty,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// UpdateTemplateCustomsRequest updates a template's customs configuration.
// Clear flags remove the referenced value; nil fields are left unchanged.
type UpdateTemplateCustomsRequest struct {
	CustomsCategoryID      *string `json:"customs_category_id"`
	ClearCustomsCategory   bool    `json:"clear_customs_category"`
	UseCategoryTariffCodes *bool   `json:"use_category_tariff_codes"`
	CountryOfOriginID      *string `json:"country_of_origin_id"`
	ClearCountryOfOrigin   bool    `json:"clear_country_of_origin"`
	NetWeight              *string `json:"net_weight"`
}

// CreateProductRequest represents a request to create a product variant
type CreateProductRequest struct {
	Code   string `json:"code" binding:"omitempty,max=60"`
	Suffix string `json:"suffix" binding:"omitempty,max=20"`
}

// Create handles creation of a new product template
func (h *TemplateHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.CreateTemplateRequest{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
	}

	template, err := h.templateService.Create(c.Request.Context(), tenantID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, template)
}

// GetByID retrieves a template by its ID
func (h *TemplateHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	template, err := h.templateService.GetByID(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, template)
}

// List retrieves a paginated list of templates
func (h *TemplateHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	filter := catalogapp.ListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
		SortBy:   req.OrderBy,
		SortDir:  req.OrderDir,
	}

	templates, total, err := h.templateService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, templates, total, req.Page, req.PageSize)
}

// Update modifies a template's descriptive fields
func (h *TemplateHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.UpdateTemplateRequest{
		Name:        req.Name,
		Description: req.Description,
	}

	template, err := h.templateService.Update(c.Request.Context(), tenantID, templateID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, template)
}

// UpdateCustoms modifies a template's customs configuration
func (h *TemplateHandler) UpdateCustoms(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	var req UpdateTemplateCustomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.UpdateTemplateCustomsRequest{
		ClearCustomsCategory:   req.ClearCustomsCategory,
		UseCategoryTariffCodes: req.UseCategoryTariffCodes,
		ClearCountryOfOrigin:   req.ClearCountryOfOrigin,
		NetWeight:              req.NetWeight,
	}

	if req.CustomsCategoryID != nil && *req.CustomsCategoryID != "" {
		categoryID, err := uuid.Parse(*req.CustomsCategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid customs category ID format")
			return
		}
		appReq.CustomsCategoryID = &categoryID
	}

	if req.CountryOfOriginID != nil && *req.CountryOfOriginID != "" {
		countryID, err := uuid.Parse(*req.CountryOfOriginID)
		if err != nil {
			h.BadRequest(c, "Invalid country ID format")
			return
		}
		appReq.CountryOfOriginID = &countryID
	}

	template, err := h.templateService.UpdateCustoms(c.Request.Context(), tenantID, templateID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, template)
}

// ListTariffCodes returns the template's own tariff code links in order
func (h *TemplateHandler) ListTariffCodes(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	links, err := h.templateService.ListTariffCodes(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, links)
}

// ReplaceTariffCodes replaces the template's tariff code links
func (h *TemplateHandler) ReplaceTariffCodes(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	var req ReplaceTariffCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReqs, err := toLinkRequests(req.Links)
	if err != nil {
		h.BadRequest(c, "Invalid tariff code ID format")
		return
	}

	links, err := h.templateService.ReplaceTariffCodes(c.Request.Context(), tenantID, templateID, appReqs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, links)
}

// Delete removes a template and its variants
func (h *TemplateHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), tenantID, templateID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateProduct creates a variant under a template
func (h *TemplateHandler) CreateProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.CreateProductRequest{
		TemplateID: templateID,
		Code:       req.Code,
		Suffix:     req.Suffix,
	}

	product, err := h.templateService.CreateProduct(c.Request.Context(), tenantID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// ListProducts lists the variants of a template
func (h *TemplateHandler) ListProducts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	products, err := h.templateService.ListProducts(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// GetProduct retrieves a product variant by its ID
func (h *TemplateHandler) GetProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.templateService.GetProduct(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// DeleteProduct removes a product variant
func (h *TemplateHandler) DeleteProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.templateService.DeleteProduct(c.Request.Context(), tenantID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
