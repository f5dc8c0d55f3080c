package httpHandler

import (
	"net/http"
	"strconv"

	"realestate-server/apperr"
	"realestate-server/dtos"
	"realestate-server/entities"
	"realestate-server/handlers/middleware"
	"realestate-server/repositories"
	"realestate-server/usecases"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const maxPageSize = 100

type PropertyHandler struct {
	useCase *usecases.PropertyUseCase
}

func NewPropertyHandler(useCase *usecases.PropertyUseCase) *PropertyHandler {
	return &PropertyHandler{
		useCase: useCase,
	}
}

// CreateProperty handles POST /api/v1/properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var req dtos.PropertyRequest
	if !bindJSON(c, &req) {
		return
	}

	property, err := h.useCase.CreateProperty(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Property created successfully",
		"data":    property,
	})
}

// GetProperty handles GET /api/v1/properties/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	property, err := h.useCase.GetProperty(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if property.Status == entities.StatusDraft && !middleware.Authenticated(c) {
		respondError(c, apperr.NotFound("property not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": property,
	})
}

// GetAllProperties handles GET /api/v1/properties with filters and paging.
func (h *PropertyHandler) GetAllProperties(c *gin.Context) {
	filter, err := propertyFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	filter.ExcludeDraft = !middleware.Authenticated(c)

	properties, total, err := h.useCase.ListProperties(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      properties,
		"count":     len(properties),
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

// UpdateProperty handles PUT /api/v1/properties/:id
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dtos.UpdatePropertyRequest
	if !bindJSON(c, &req) {
		return
	}

	property, err := h.useCase.UpdateProperty(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Property updated successfully",
		"data":    property,
	})
}

// DeleteProperty handles DELETE /api/v1/properties/:id
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.useCase.DeleteProperty(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Property deleted successfully",
	})
}

func propertyFilter(c *gin.Context) (repositories.PropertyFilter, error) {
	filter := repositories.PropertyFilter{
		City:         c.Query("city"),
		PropertyType: c.Query("property_type"),
		ListingType:  c.Query("listing_type"),
		Status:       c.Query("status"),
		Query:        c.Query("q"),
		Page:         1,
		PageSize:     20,
	}

	var err error
	if filter.Page, err = intQuery(c, "page", 1); err != nil || filter.Page < 1 {
		return filter, apperr.BadRequest("page must be a positive integer")
	}
	if filter.PageSize, err = intQuery(c, "page_size", 20); err != nil || filter.PageSize < 1 || filter.PageSize > maxPageSize {
		return filter, apperr.BadRequest("page_size must be between 1 and 100")
	}
	if filter.MinBedrooms, err = intQuery(c, "min_bedrooms", 0); err != nil || filter.MinBedrooms < 0 {
		return filter, apperr.BadRequest("min_bedrooms must be a non-negative integer")
	}
	if filter.MinPrice, err = decimalQuery(c, "min_price"); err != nil {
		return filter, apperr.BadRequest("min_price must be a number")
	}
	if filter.MaxPrice, err = decimalQuery(c, "max_price"); err != nil {
		return filter, apperr.BadRequest("max_price must be a number")
	}
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, apperr.BadRequest("invalid project_id")
		}
		filter.ProjectID = &id
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperr.BadRequest("featured must be true or false")
		}
		filter.Featured = &featured
	}
	return filter, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func decimalQuery(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
