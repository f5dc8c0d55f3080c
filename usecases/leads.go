package usecases

import (
	"strings"

	"realestate-server/apperr"
	"realestate-server/dtos"
	"realestate-server/entities"
	"realestate-server/repositories"
)

type LeadUseCase struct {
	LeadRepo     repositories.LeadRepository
	PropertyRepo repositories.PropertyRepository
	ProjectRepo  repositories.ProjectRepository
	UserRepo     repositories.UserRepository
}

func NewLeadUseCase(leadRepo repositories.LeadRepository, propertyRepo repositories.PropertyRepository, projectRepo repositories.ProjectRepository, userRepo repositories.UserRepository) *LeadUseCase {
	return &LeadUseCase{
		LeadRepo:     leadRepo,
		PropertyRepo: propertyRepo,
		ProjectRepo:  projectRepo,
		UserRepo:     userRepo,
	}
}

// CreateLead stores an enquiry from the public contact form.
func (uc *LeadUseCase) CreateLead(req *dtos.CreateLeadRequest) (*entities.Lead, error) {
	lead := &entities.Lead{
		Name:       strings.TrimSpace(req.Name),
		Email:      normalizeEmail(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Message:    strings.TrimSpace(req.Message),
		Source:     req.Source,
		Status:     entities.LeadNew,
		PropertyID: req.PropertyID,
		ProjectID:  req.ProjectID,
	}
	if lead.Email == "" && lead.Phone == "" {
		return nil, apperr.Validation("email or phone is required")
	}
	if lead.Source == "" {
		lead.Source = entities.LeadSourceWebsite
	}

	if lead.PropertyID != nil {
		if _, err := uc.PropertyRepo.GetByID(*lead.PropertyID); err != nil {
			return nil, lookupError(err, "property")
		}
	}
	if lead.ProjectID != nil {
		if _, err := uc.ProjectRepo.GetByID(*lead.ProjectID); err != nil {
			return nil, lookupError(err, "project")
		}
	}

	if err := uc.LeadRepo.Create(lead); err != nil {
		return nil, writeError(err, "lead already exists", "create lead")
	}
	return lead, nil
}

// GetLead retrieves a lead by ID
func (uc *LeadUseCase) GetLead(id int64) (*entities.Lead, error) {
	if err := requireID(id, "lead"); err != nil {
		return nil, err
	}
	lead, err := uc.LeadRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "lead")
	}
	return lead, nil
}

// ListLeads returns leads newest first.
func (uc *LeadUseCase) ListLeads(filter repositories.LeadFilter) ([]entities.Lead, error) {
	leads, err := uc.LeadRepo.List(filter)
	if err != nil {
		return nil, apperr.Internal("failed to list leads", err)
	}
	return leads, nil
}

// UpdateLead merges the provided fields. An assignee must be an existing user.
func (uc *LeadUseCase) UpdateLead(id int64, req *dtos.UpdateLeadRequest) (*entities.Lead, error) {
	existing, err := uc.GetLead(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		existing.Email = normalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		existing.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Message != nil {
		existing.Message = strings.TrimSpace(*req.Message)
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	if req.AssignedTo != nil {
		if _, err := uc.UserRepo.GetByID(*req.AssignedTo); err != nil {
			return nil, lookupError(err, "user")
		}
		existing.AssignedTo = req.AssignedTo
	}
	if existing.Email == "" && existing.Phone == "" {
		return nil, apperr.Validation("email or phone is required")
	}

	if err := uc.LeadRepo.Update(existing); err != nil {
		return nil, writeError(err, "lead already exists", "update lead")
	}
	return existing, nil
}

// DeleteLead deletes a lead
func (uc *LeadUseCase) DeleteLead(id int64) error {
	if _, err := uc.GetLead(id); err != nil {
		return err
	}
	if err := uc.LeadRepo.Delete(id); err != nil {
		return apperr.Internal("failed to delete lead", err)
	}
	return nil
}
