package usecases

import (
	"context"
	"strings"

	"realestate-server/apperr"
	"realestate-server/dtos"
	"realestate-server/entities"
	"realestate-server/repositories"
	"realestate-server/storage"
)

type PropertyUseCase struct {
	PropertyRepo repositories.PropertyRepository
	ProjectRepo  repositories.ProjectRepository
	UserRepo     repositories.UserRepository
	Store        storage.Store
}

func NewPropertyUseCase(propertyRepo repositories.PropertyRepository, projectRepo repositories.ProjectRepository, userRepo repositories.UserRepository, store storage.Store) *PropertyUseCase {
	return &PropertyUseCase{
		PropertyRepo: propertyRepo,
		ProjectRepo:  projectRepo,
		UserRepo:     userRepo,
		Store:        store,
	}
}

// CreateProperty validates and stores a listing without media.
func (uc *PropertyUseCase) CreateProperty(req *dtos.PropertyRequest) (*entities.Property, error) {
	property, err := uc.PrepareProperty(req)
	if err != nil {
		return nil, err
	}
	if err := uc.PropertyRepo.Create(property); err != nil {
		return nil, writeError(err, "slug already in use", "create property")
	}
	return property, nil
}

// PrepareProperty builds an unsaved property from a request: field checks,
// referenced project and agent, and a free slug.
func (uc *PropertyUseCase) PrepareProperty(req *dtos.PropertyRequest) (*entities.Property, error) {
	if !req.Price.IsPositive() {
		return nil, apperr.Validation("price must be greater than zero")
	}
	availableFrom, err := parseDate(req.AvailableFrom)
	if err != nil {
		return nil, err
	}
	amenities, err := encodeAmenities(req.Amenities)
	if err != nil {
		return nil, apperr.Validation("amenities must be a list of strings")
	}
	if err := uc.checkReferences(req.ProjectID, req.AgentID); err != nil {
		return nil, err
	}
	slug, err := resolveSlug(req.Slug, req.Title, uc.PropertyRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	property := &entities.Property{
		Title:         strings.TrimSpace(req.Title),
		Slug:          slug,
		Description:   req.Description,
		PropertyType:  req.PropertyType,
		ListingType:   req.ListingType,
		Status:        req.Status,
		Price:         req.Price.Round(2),
		AreaSqft:      req.AreaSqft,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Address:       req.Address,
		City:          strings.TrimSpace(req.City),
		State:         strings.TrimSpace(req.State),
		PostalCode:    strings.TrimSpace(req.PostalCode),
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Amenities:     amenities,
		Featured:      req.Featured,
		AvailableFrom: availableFrom,
		ProjectID:     req.ProjectID,
		AgentID:       req.AgentID,
	}
	if property.Status == "" {
		property.Status = entities.StatusAvailable
	}
	return property, nil
}

// GetProperty returns a property with its media.
func (uc *PropertyUseCase) GetProperty(id int64) (*entities.Property, error) {
	if err := requireID(id, "property"); err != nil {
		return nil, err
	}
	property, err := uc.PropertyRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "property")
	}
	return property, nil
}

// GetPublishedProperty looks a listing up by slug, hiding drafts.
func (uc *PropertyUseCase) GetPublishedProperty(slug string) (*entities.Property, error) {
	property, err := uc.PropertyRepo.GetBySlug(slug)
	if err != nil {
		return nil, lookupError(err, "property")
	}
	if property.Status == entities.StatusDraft {
		return nil, apperr.NotFound("property not found")
	}
	return property, nil
}

func (uc *PropertyUseCase) ListProperties(filter repositories.PropertyFilter) ([]entities.Property, int64, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, 0, apperr.Validation("min_price must not exceed max_price")
	}
	properties, total, err := uc.PropertyRepo.List(filter)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list properties", err)
	}
	return properties, total, nil
}

// UpdateProperty merges the provided fields into the stored property.
func (uc *PropertyUseCase) UpdateProperty(id int64, req *dtos.UpdatePropertyRequest) (*entities.Property, error) {
	existing, err := uc.GetProperty(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		existing.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil && *req.Slug != existing.Slug {
		slug, err := resolveSlug(*req.Slug, "", uc.PropertyRepo.SlugExists)
		if err != nil {
			return nil, err
		}
		existing.Slug = slug
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.PropertyType != nil {
		existing.PropertyType = *req.PropertyType
	}
	if req.ListingType != nil {
		existing.ListingType = *req.ListingType
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, apperr.Validation("price must be greater than zero")
		}
		existing.Price = req.Price.Round(2)
	}
	if req.AreaSqft != nil {
		existing.AreaSqft = *req.AreaSqft
	}
	if req.Bedrooms != nil {
		existing.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		existing.Bathrooms = *req.Bathrooms
	}
	if req.Address != nil {
		existing.Address = *req.Address
	}
	if req.City != nil {
		existing.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		existing.State = strings.TrimSpace(*req.State)
	}
	if req.PostalCode != nil {
		existing.PostalCode = strings.TrimSpace(*req.PostalCode)
	}
	if req.Latitude != nil {
		existing.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		existing.Longitude = req.Longitude
	}
	if req.Amenities != nil {
		amenities, err := encodeAmenities(req.Amenities)
		if err != nil {
			return nil, apperr.Validation("amenities must be a list of strings")
		}
		existing.Amenities = amenities
	}
	if req.Featured != nil {
		existing.Featured = *req.Featured
	}
	if req.AvailableFrom != nil {
		availableFrom, err := parseDate(req.AvailableFrom)
		if err != nil {
			return nil, err
		}
		existing.AvailableFrom = availableFrom
	}
	if req.ProjectID != nil || req.AgentID != nil {
		if err := uc.checkReferences(req.ProjectID, req.AgentID); err != nil {
			return nil, err
		}
		if req.ProjectID != nil {
			existing.ProjectID = req.ProjectID
		}
		if req.AgentID != nil {
			existing.AgentID = req.AgentID
		}
	}

	if err := uc.PropertyRepo.Update(existing); err != nil {
		return nil, writeError(err, "slug already in use", "update property")
	}
	return existing, nil
}

// DeleteProperty removes the row (media rows cascade) and then tries to
// remove the stored objects. Leftover objects are logged, not reported.
func (uc *PropertyUseCase) DeleteProperty(ctx context.Context, id int64) error {
	property, err := uc.GetProperty(id)
	if err != nil {
		return err
	}
	if err := uc.PropertyRepo.Delete(id); err != nil {
		return apperr.Internal("failed to delete property", err)
	}

	keys := make([]string, 0, len(property.Media))
	for _, m := range property.Media {
		keys = append(keys, m.ObjectKey)
	}
	removeObjects(ctx, uc.Store, keys, "property delete")
	return nil
}

func (uc *PropertyUseCase) checkReferences(projectID, agentID *int64) error {
	if projectID != nil {
		if _, err := uc.ProjectRepo.GetByID(*projectID); err != nil {
			return lookupError(err, "project")
		}
	}
	if agentID != nil {
		if _, err := uc.UserRepo.GetByID(*agentID); err != nil {
			return lookupError(err, "agent")
		}
	}
	return nil
}
