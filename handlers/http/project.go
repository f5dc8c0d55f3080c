package httpHandler

import (
	"net/http"

	"realestate-server/dtos"
	"realestate-server/usecases"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	useCase *usecases.ProjectUseCase
}

func NewProjectHandler(useCase *usecases.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{
		useCase: useCase,
	}
}

// CreateProject handles POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dtos.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.useCase.CreateProject(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"data":    project,
	})
}

// GetProject handles GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := h.useCase.GetProject(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": project,
	})
}

// GetAllProjects handles GET /api/v1/projects
func (h *ProjectHandler) GetAllProjects(c *gin.Context) {
	projects, err := h.useCase.GetAllProjects()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  projects,
		"count": len(projects),
	})
}

// UpdateProject handles PUT /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dtos.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.useCase.UpdateProject(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project updated successfully",
		"data":    project,
	})
}

// DeleteProject handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.useCase.DeleteProject(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}
