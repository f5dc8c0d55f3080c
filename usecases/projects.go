package usecases

import (
	"strings"

	"realestate-server/apperr"
	"realestate-server/dtos"
	"realestate-server/entities"
	"realestate-server/repositories"
)

type ProjectUseCase struct {
	ProjectRepo  repositories.ProjectRepository
	PropertyRepo repositories.PropertyRepository
}

func NewProjectUseCase(projectRepo repositories.ProjectRepository, propertyRepo repositories.PropertyRepository) *ProjectUseCase {
	return &ProjectUseCase{
		ProjectRepo:  projectRepo,
		PropertyRepo: propertyRepo,
	}
}

// CreateProject creates a new project, deriving the slug from the name when omitted.
func (uc *ProjectUseCase) CreateProject(req *dtos.CreateProjectRequest) (*entities.Project, error) {
	slug, err := resolveSlug(req.Slug, req.Name, uc.ProjectRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	project := &entities.Project{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Developer:   strings.TrimSpace(req.Developer),
		City:        strings.TrimSpace(req.City),
		Address:     req.Address,
		Description: req.Description,
		Status:      req.Status,
	}
	if project.Status == "" {
		project.Status = entities.ProjectUpcoming
	}

	if err := uc.ProjectRepo.Create(project); err != nil {
		return nil, writeError(err, "slug already in use", "create project")
	}
	return project, nil
}

// GetProject returns the project with its published properties.
func (uc *ProjectUseCase) GetProject(id int64) (*entities.Project, error) {
	if err := requireID(id, "project"); err != nil {
		return nil, err
	}
	project, err := uc.ProjectRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "project")
	}
	return uc.withProperties(project)
}

func (uc *ProjectUseCase) GetProjectBySlug(slug string) (*entities.Project, error) {
	project, err := uc.ProjectRepo.GetBySlug(slug)
	if err != nil {
		return nil, lookupError(err, "project")
	}
	return uc.withProperties(project)
}

// GetAllProjects retrieves all projects
func (uc *ProjectUseCase) GetAllProjects() ([]entities.Project, error) {
	projects, err := uc.ProjectRepo.GetAll()
	if err != nil {
		return nil, apperr.Internal("failed to list projects", err)
	}
	return projects, nil
}

// UpdateProject merges the provided fields. A new slug must be free.
func (uc *ProjectUseCase) UpdateProject(id int64, req *dtos.UpdateProjectRequest) (*entities.Project, error) {
	if err := requireID(id, "project"); err != nil {
		return nil, err
	}
	existing, err := uc.ProjectRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "project")
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil && *req.Slug != existing.Slug {
		slug, err := resolveSlug(*req.Slug, "", uc.ProjectRepo.SlugExists)
		if err != nil {
			return nil, err
		}
		existing.Slug = slug
	}
	if req.Developer != nil {
		existing.Developer = strings.TrimSpace(*req.Developer)
	}
	if req.City != nil {
		existing.City = strings.TrimSpace(*req.City)
	}
	if req.Address != nil {
		existing.Address = *req.Address
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}

	if err := uc.ProjectRepo.Update(existing); err != nil {
		return nil, writeError(err, "slug already in use", "update project")
	}
	return existing, nil
}

// DeleteProject deletes a project. Its properties are kept and detached.
func (uc *ProjectUseCase) DeleteProject(id int64) error {
	if err := requireID(id, "project"); err != nil {
		return err
	}
	if _, err := uc.ProjectRepo.GetByID(id); err != nil {
		return lookupError(err, "project")
	}
	if err := uc.ProjectRepo.Delete(id); err != nil {
		return apperr.Internal("failed to delete project", err)
	}
	return nil
}

func (uc *ProjectUseCase) withProperties(project *entities.Project) (*entities.Project, error) {
	properties, err := uc.PropertyRepo.ListByProject(project.ID)
	if err != nil {
		return nil, apperr.Internal("failed to load project properties", err)
	}
	project.Properties = properties
	return project, nil
}
