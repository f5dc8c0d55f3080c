package repositories

import (
	"realestate-server/entities"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id int64) (*entities.User, error)
	GetByEmail(email string) (*entities.User, error)
	GetAll() ([]entities.User, error)
	Update(user *entities.User) error
	Delete(id int64) error
}

type LeadFilter struct {
	Status     string
	Source     string
	PropertyID *int64
}

type LeadRepository interface {
	Create(lead *entities.Lead) error
	GetByID(id int64) (*entities.Lead, error)
	List(filter LeadFilter) ([]entities.Lead, error)
	Update(lead *entities.Lead) error
	Delete(id int64) error
}

type ProjectRepository interface {
	Create(project *entities.Project) error
	GetByID(id int64) (*entities.Project, error)
	GetBySlug(slug string) (*entities.Project, error)
	GetAll() ([]entities.Project, error)
	SlugExists(slug string) (bool, error)
	Update(project *entities.Project) error
	Delete(id int64) error
}

type PropertyFilter struct {
	City         string
	PropertyType string
	ListingType  string
	Status       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinBedrooms  int
	ProjectID    *int64
	Featured     *bool
	Query        string
	// ExcludeDraft hides unpublished listings from public views.
	ExcludeDraft bool

	Page     int
	PageSize int
}

type PropertyRepository interface {
	Create(property *entities.Property) error
	GetByID(id int64) (*entities.Property, error)
	GetBySlug(slug string) (*entities.Property, error)
	List(filter PropertyFilter) ([]entities.Property, int64, error)
	ListByProject(projectID int64) ([]entities.Property, error)
	SlugExists(slug string) (bool, error)
	Update(property *entities.Property) error
	Delete(id int64) error
}

type PropertyMediaRepository interface {
	CreateBatch(media []entities.PropertyMedia) error
	GetByID(id int64) (*entities.PropertyMedia, error)
	GetByPropertyID(propertyID int64) ([]entities.PropertyMedia, error)
	CountByCategory(propertyID int64, category string) (int64, error)
	MaxSortOrder(propertyID int64) (int, error)
	Delete(id int64) error
}
