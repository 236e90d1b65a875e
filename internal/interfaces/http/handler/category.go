package handler

import (
	catalogapp "github.com/erp/customs/internal/application/catalog"
	"github.com/erp/customs/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryHandler handles customs category API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Code        string  `json:"code" binding:"required,min=1,max=50"`
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description string  `json:"description" binding:"max=2000"`
	ParentID    *string `json:"parent_id"`
	SortOrder   *int    `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"omitempty,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	SortOrder   *int   `json:"sort_order"`
}

// UpdateCategoryCustomsRequest toggles a category's customs configuration
type UpdateCategoryCustomsRequest struct {
	Customs              *bool `json:"customs"`
	UseParentTariffCodes *bool `json:"use_parent_tariff_codes"`
}

// MoveCategoryRequest represents a request to move a category to a new parent
type MoveCategoryRequest struct {
	ParentID *string `json:"parent_id"`
}

// TariffCodeLinkEntry is one entry of an owner's tariff code link list
type TariffCodeLinkEntry struct {
	TariffCodeID string `json:"tariff_code_id" binding:"required,uuid"`
	Sequence     int    `json:"sequence"`
}

// ReplaceTariffCodesRequest replaces an owner's tariff code links
type ReplaceTariffCodesRequest struct {
	Links []TariffCodeLinkEntry `json:"links" binding:"dive"`
}

// toLinkRequests converts the wire entries to application link requests
func toLinkRequests(entries []TariffCodeLinkEntry) ([]catalogapp.TariffCodeLinkRequest, error) {
	reqs := make([]catalogapp.TariffCodeLinkRequest, 0, len(entries))
	for _, e := range entries {
		codeID, err := uuid.Parse(e.TariffCodeID)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, catalogapp.TariffCodeLinkRequest{
			TariffCodeID: codeID,
			Sequence:     e.Sequence,
		})
	}
	return reqs, nil
}

// Create handles creation of a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.CreateCategoryRequest{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			h.BadRequest(c, "Invalid parent ID format")
			return
		}
		appReq.ParentID = &parentID
	}

	category, err := h.categoryService.Create(c.Request.Context(), tenantID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// GetByID retrieves a category by its ID
func (h *CategoryHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), tenantID, categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// List retrieves a paginated list of categories
func (h *CategoryHandler) List(c *gin.Context) {
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

	categories, total, err := h.categoryService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, categories, total, req.Page, req.PageSize)
}

// GetRoots retrieves all root (top-level) categories
func (h *CategoryHandler) GetRoots(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	roots, err := h.categoryService.GetRoots(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, roots)
}

// GetChildren retrieves direct children of a category
func (h *CategoryHandler) GetChildren(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid parent category ID format")
		return
	}

	children, err := h.categoryService.GetChildren(c.Request.Context(), tenantID, parentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, children)
}

// Update modifies a category's descriptive fields
func (h *CategoryHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.UpdateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}

	category, err := h.categoryService.Update(c.Request.Context(), tenantID, categoryID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// UpdateCustoms toggles the customs flag and tariff code delegation
func (h *CategoryHandler) UpdateCustoms(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req UpdateCategoryCustomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.UpdateCategoryCustomsRequest{
		Customs:              req.Customs,
		UseParentTariffCodes: req.UseParentTariffCodes,
	}

	category, err := h.categoryService.UpdateCustoms(c.Request.Context(), tenantID, categoryID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Move reparents a category
func (h *CategoryHandler) Move(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req MoveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil && *req.ParentID != "" {
		parsed, err := uuid.Parse(*req.ParentID)
		if err != nil {
			h.BadRequest(c, "Invalid parent ID format")
			return
		}
		parentID = &parsed
	}

	category, err := h.categoryService.Move(c.Request.Context(), tenantID, categoryID, parentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// ListTariffCodes returns the category's own tariff code links in order
func (h *CategoryHandler) ListTariffCodes(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	links, err := h.categoryService.ListTariffCodes(c.Request.Context(), tenantID, categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, links)
}

// ReplaceTariffCodes replaces the category's tariff code links
func (h *CategoryHandler) ReplaceTariffCodes(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
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

	links, err := h.categoryService.ReplaceTariffCodes(c.Request.Context(), tenantID, categoryID, appReqs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, links)
}

// Delete removes a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), tenantID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
