package handler

import (
	"time"

	customsapp "github.com/erp/customs/internal/application/customs"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ResolutionHandler handles tariff code resolution API endpoints
type ResolutionHandler struct {
	BaseHandler
	resolutionService *customsapp.ResolutionService
}

// NewResolutionHandler creates a new ResolutionHandler
func NewResolutionHandler(resolutionService *customsapp.ResolutionService) *ResolutionHandler {
	return &ResolutionHandler{
		resolutionService: resolutionService,
	}
}

// ResolveQuery carries the match parameters for tariff code resolution.
// With first=true only the highest-priority match is returned.
type ResolveQuery struct {
	Pattern   string `form:"pattern"`
	CountryID string `form:"country_id" binding:"omitempty,uuid"`
	Date      string `form:"date"`
	First     bool   `form:"first"`
}

// toResolveRequest converts the query to an application resolve request.
// Date accepts YYYY-MM-DD.
func (q ResolveQuery) toResolveRequest() (customsapp.ResolveRequest, error) {
	req := customsapp.ResolveRequest{Pattern: q.Pattern}

	if q.CountryID != "" {
		countryID, err := uuid.Parse(q.CountryID)
		if err != nil {
			return req, err
		}
		req.CountryID = &countryID
	}

	if q.Date != "" {
		date, err := time.Parse("2006-01-02", q.Date)
		if err != nil {
			return req, err
		}
		req.Date = &date
	}

	return req, nil
}

// bindResolve extracts the owner ID and resolve parameters from the request
func (h *ResolutionHandler) bindResolve(c *gin.Context) (uuid.UUID, uuid.UUID, customsapp.ResolveRequest, bool, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, uuid.Nil, customsapp.ResolveRequest{}, false, false
	}

	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, uuid.Nil, customsapp.ResolveRequest{}, false, false
	}

	var query ResolveQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return uuid.Nil, uuid.Nil, customsapp.ResolveRequest{}, false, false
	}

	req, err := query.toResolveRequest()
	if err != nil {
		h.BadRequest(c, "Invalid resolve parameters")
		return uuid.Nil, uuid.Nil, customsapp.ResolveRequest{}, false, false
	}

	return tenantID, ownerID, req, query.First, true
}

// ResolveForTemplate returns the tariff codes applicable to a template
func (h *ResolutionHandler) ResolveForTemplate(c *gin.Context) {
	tenantID, templateID, req, first, ok := h.bindResolve(c)
	if !ok {
		return
	}

	if first {
		code, err := h.resolutionService.ResolveOneForTemplate(c.Request.Context(), tenantID, templateID, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, code)
		return
	}

	codes, err := h.resolutionService.ResolveForTemplate(c.Request.Context(), tenantID, templateID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, codes)
}

// ResolveForProduct returns the tariff codes applicable to a product
// variant, via its template
func (h *ResolutionHandler) ResolveForProduct(c *gin.Context) {
	tenantID, productID, req, first, ok := h.bindResolve(c)
	if !ok {
		return
	}

	if first {
		code, err := h.resolutionService.ResolveOneForProduct(c.Request.Context(), tenantID, productID, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, code)
		return
	}

	codes, err := h.resolutionService.ResolveForProduct(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, codes)
}

// ResolveForCategory returns the tariff codes applicable to a category,
// following parent delegation
func (h *ResolutionHandler) ResolveForCategory(c *gin.Context) {
	tenantID, categoryID, req, first, ok := h.bindResolve(c)
	if !ok {
		return
	}

	if first {
		code, err := h.resolutionService.ResolveOneForCategory(c.Request.Context(), tenantID, categoryID, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, code)
		return
	}

	codes, err := h.resolutionService.ResolveForCategory(c.Request.Context(), tenantID, categoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, codes)
}
