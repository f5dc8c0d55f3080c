package httpHandler

import (
	"errors"
	"net/http"

	"realestate-server/apperr"
	"realestate-server/cms"

	"github.com/gin-gonic/gin"
)

type CMSHandler struct {
	client *cms.Client
}

func NewCMSHandler(client *cms.Client) *CMSHandler {
	return &CMSHandler{
		client: client,
	}
}

// Proxy handles GET /api/v1/cms/*path by relaying it to the CMS API.
func (h *CMSHandler) Proxy(c *gin.Context) {
	resp, err := h.client.Proxy(c.Request.Context(), c.Param("path"), c.Request.URL.Query())
	switch {
	case errors.Is(err, cms.ErrNotConfigured):
		respondError(c, apperr.New(http.StatusServiceUnavailable, apperr.CodeCMSNotConfigured, "cms is not configured"))
		return
	case errors.Is(err, cms.ErrInvalidPath):
		respondError(c, apperr.BadRequest("invalid cms path"))
		return
	case err != nil:
		respondError(c, apperr.Upstream(apperr.CodeCMSUnavailable, "cms is unavailable", err))
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.Status, contentType, resp.Body)
}
