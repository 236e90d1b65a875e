package handler

import (
	customsapp "github.com/erp/customs/internal/application/customs"
	"github.com/erp/customs/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TariffCodeHandler handles tariff code API endpoints
type TariffCodeHandler struct {
	BaseHandler
	tariffCodeService *customsapp.TariffCodeService
}

// NewTariffCodeHandler creates a new TariffCodeHandler
func NewTariffCodeHandler(tariffCodeService *customsapp.TariffCodeService) *TariffCodeHandler {
	return &TariffCodeHandler{
		tariffCodeService: tariffCodeService,
	}
}

// CreateTariffCodeRequest represents a request to create a tariff code
type CreateTariffCodeRequest struct {
	Code        string         `json:"code" binding:"required,min=1,max=30"`
	Description string         `json:"description" binding:"max=2000"`
	CountryID   *string        `json:"country_id"`
	Season      *SeasonRequest `json:"season"`
}

// UpdateTariffCodeRequest represents a request to update a tariff code
type UpdateTariffCodeRequest struct {
	Code         string         `json:"code" binding:"omitempty,min=1,max=30"`
	Description  *string        `json:"description" binding:"omitempty,max=2000"`
	CountryID    *string        `json:"country_id"`
	ClearCountry bool           `json:"clear_country"`
	Season       *SeasonRequest `json:"season"`
}

// SeasonRequest carries a seasonal validity window; all zeros clears it
type SeasonRequest struct {
	StartMonth int `json:"start_month" binding:"min=0,max=12"`
	StartDay   int `json:"start_day" binding:"min=0,max=31"`
	EndMonth   int `json:"end_month" binding:"min=0,max=12"`
	EndDay     int `json:"end_day" binding:"min=0,max=31"`
}

// UsageResponse reports how many owners currently link a tariff code
type UsageResponse struct {
	TariffCodeID string `json:"tariff_code_id"`
	LinkCount    int64  `json:"link_count"`
}

// Create handles creation of a new tariff code
func (h *TariffCodeHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateTariffCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := customsapp.CreateTariffCodeRequest{
		Code:        req.Code,
		Description: req.Description,
	}

	if req.CountryID != nil && *req.CountryID != "" {
		countryID, err := uuid.Parse(*req.CountryID)
		if err != nil {
			h.BadRequest(c, "Invalid country ID format")
			return
		}
		appReq.CountryID = &countryID
	}

	if req.Season != nil {
		appReq.StartMonth = req.Season.StartMonth
		appReq.StartDay = req.Season.StartDay
		appReq.EndMonth = req.Season.EndMonth
		appReq.EndDay = req.Season.EndDay
	}

	code, err := h.tariffCodeService.Create(c.Request.Context(), tenantID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, code)
}

// GetByID retrieves a tariff code by its ID
func (h *TariffCodeHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	codeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tariff code ID format")
		return
	}

	code, err := h.tariffCodeService.GetByID(c.Request.Context(), tenantID, codeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, code)
}

// List retrieves a paginated list of tariff codes
func (h *TariffCodeHandler) List(c *gin.Context) {
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

	filter := customsapp.ListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	}

	codes, total, err := h.tariffCodeService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, codes, total, req.Page, req.PageSize)
}

// Update modifies an existing tariff code
func (h *TariffCodeHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	codeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tariff code ID format")
		return
	}

	var req UpdateTariffCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := customsapp.UpdateTariffCodeRequest{
		Code:         req.Code,
		Description:  req.Description,
		ClearCountry: req.ClearCountry,
	}

	if req.CountryID != nil && *req.CountryID != "" {
		countryID, err := uuid.Parse(*req.CountryID)
		if err != nil {
			h.BadRequest(c, "Invalid country ID format")
			return
		}
		appReq.CountryID = &countryID
	}

	if req.Season != nil {
		appReq.Season = &customsapp.SeasonRequest{
			StartMonth: req.Season.StartMonth,
			StartDay:   req.Season.StartDay,
			EndMonth:   req.Season.EndMonth,
			EndDay:     req.Season.EndDay,
		}
	}

	code, err := h.tariffCodeService.Update(c.Request.Context(), tenantID, codeID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, code)
}

// Usage reports the number of links referencing a tariff code
func (h *TariffCodeHandler) Usage(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	codeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tariff code ID format")
		return
	}

	count, err := h.tariffCodeService.UsageCount(c.Request.Context(), tenantID, codeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, UsageResponse{
		TariffCodeID: codeID.String(),
		LinkCount:    count,
	})
}

// Delete removes a tariff code and its owner links
func (h *TariffCodeHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	codeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tariff code ID format")
		return
	}

	if err := h.tariffCodeService.Delete(c.Request.Context(), tenantID, codeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
