package httpHandler

import (
	"net/http"

	"realestate-server/apperr"
	"realestate-server/usecases"

	"github.com/gin-gonic/gin"
)

const pageCacheControl = "public, max-age=60"

type PageHandler struct {
	useCase *usecases.PageUseCase
}

func NewPageHandler(useCase *usecases.PageUseCase) *PageHandler {
	return &PageHandler{
		useCase: useCase,
	}
}

// PropertyPage handles GET /properties/:slug
func (h *PageHandler) PropertyPage(c *gin.Context) {
	page, err := h.useCase.PropertyPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Header("Cache-Control", pageCacheControl)
	c.HTML(http.StatusOK, "property.tmpl", page)
}

// ProjectPage handles GET /projects/:slug
func (h *PageHandler) ProjectPage(c *gin.Context) {
	page, err := h.useCase.ProjectPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Header("Cache-Control", pageCacheControl)
	c.HTML(http.StatusOK, "project.tmpl", page)
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	if apperr.StatusOf(err) == http.StatusNotFound {
		c.HTML(http.StatusNotFound, "not_found.tmpl", "The page you were looking for does not exist.")
		return
	}
	respondError(c, err)
}
