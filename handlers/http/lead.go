package httpHandler

import (
	"net/http"
	"strconv"

	"realestate-server/apperr"
	"realestate-server/dtos"
	"realestate-server/repositories"
	"realestate-server/usecases"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	useCase *usecases.LeadUseCase
}

func NewLeadHandler(useCase *usecases.LeadUseCase) *LeadHandler {
	return &LeadHandler{
		useCase: useCase,
	}
}

// CreateLead handles POST /api/v1/leads (public contact form)
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req dtos.CreateLeadRequest
	if !bindJSON(c, &req) {
		return
	}

	lead, err := h.useCase.CreateLead(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you, we will be in touch shortly",
		"data":    lead,
	})
}

// GetAllLeads handles GET /api/v1/leads?status=&source=&property_id=
func (h *LeadHandler) GetAllLeads(c *gin.Context) {
	filter := repositories.LeadFilter{
		Status: c.Query("status"),
		Source: c.Query("source"),
	}
	if raw := c.Query("property_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, apperr.BadRequest("invalid property_id"))
			return
		}
		filter.PropertyID = &id
	}

	leads, err := h.useCase.ListLeads(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  leads,
		"count": len(leads),
	})
}

// GetLead handles GET /api/v1/leads/:id
func (h *LeadHandler) GetLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	lead, err := h.useCase.GetLead(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": lead,
	})
}

// UpdateLead handles PUT /api/v1/leads/:id
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dtos.UpdateLeadRequest
	if !bindJSON(c, &req) {
		return
	}

	lead, err := h.useCase.UpdateLead(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lead updated successfully",
		"data":    lead,
	})
}

// DeleteLead handles DELETE /api/v1/leads/:id
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.useCase.DeleteLead(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lead deleted successfully",
	})
}
