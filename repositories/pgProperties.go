package repositories

import (
	"strings"

	"realestate-server/db"
	"realestate-server/entities"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type propertyPgRepository struct {
	db db.Database
}

func NewPropertyPgRepository(database db.Database) PropertyRepository {
	return &propertyPgRepository{db: database}
}

func (r *propertyPgRepository) Create(property *entities.Property) error {
	return r.db.GetDB().Omit("Media").Create(property).Error
}

func (r *propertyPgRepository) GetByID(id int64) (*entities.Property, error) {
	var property entities.Property
	err := r.withMedia().Where("id = ?", id).First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyPgRepository) GetBySlug(slug string) (*entities.Property, error) {
	var property entities.Property
	err := r.withMedia().Where("slug = ?", slug).First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyPgRepository) List(filter PropertyFilter) ([]entities.Property, int64, error) {
	q := r.db.GetDB().Model(&entities.Property{})

	if filter.City != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}
	if filter.PropertyType != "" {
		q = q.Where("property_type = ?", filter.PropertyType)
	}
	if filter.ListingType != "" {
		q = q.Where("listing_type = ?", filter.ListingType)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ExcludeDraft {
		q = q.Where("status <> ?", entities.StatusDraft)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinBedrooms > 0 {
		q = q.Where("bedrooms >= ?", filter.MinBedrooms)
	}
	if filter.ProjectID != nil {
		q = q.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}
	if filter.Query != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Query)+"%")
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, size := normalizePage(filter.Page, filter.PageSize)
	var properties []entities.Property
	err := q.Preload("Media", orderMedia).
		Order("featured DESC").Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&properties).Error
	return properties, total, err
}

func (r *propertyPgRepository) ListByProject(projectID int64) ([]entities.Property, error) {
	var properties []entities.Property
	err := r.withMedia().
		Where("project_id = ? AND status <> ?", projectID, entities.StatusDraft).
		Order("created_at DESC").Find(&properties).Error
	return properties, err
}

func (r *propertyPgRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.Property{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *propertyPgRepository) Update(property *entities.Property) error {
	return r.db.GetDB().Omit("Media").Save(property).Error
}

func (r *propertyPgRepository) Delete(id int64) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Property{}).Error
}

func (r *propertyPgRepository) withMedia() *gorm.DB {
	return r.db.GetDB().Preload("Media", orderMedia)
}

func orderMedia(tx *gorm.DB) *gorm.DB {
	return tx.Order("sort_order ASC").Order("id ASC")
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
