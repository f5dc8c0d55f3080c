package repositories

import (
	"database/sql"

	"realestate-server/db"
	"realestate-server/entities"
)

type propertyMediaPgRepository struct {
	db db.Database
}

func NewPropertyMediaPgRepository(database db.Database) PropertyMediaRepository {
	return &propertyMediaPgRepository{db: database}
}

func (r *propertyMediaPgRepository) CreateBatch(media []entities.PropertyMedia) error {
	if len(media) == 0 {
		return nil
	}
	return r.db.GetDB().Create(&media).Error
}

func (r *propertyMediaPgRepository) GetByID(id int64) (*entities.PropertyMedia, error) {
	var media entities.PropertyMedia
	err := r.db.GetDB().Where("id = ?", id).First(&media).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *propertyMediaPgRepository) GetByPropertyID(propertyID int64) ([]entities.PropertyMedia, error) {
	var media []entities.PropertyMedia
	err := r.db.GetDB().Where("property_id = ?", propertyID).
		Order("sort_order ASC").Order("id ASC").Find(&media).Error
	return media, err
}

func (r *propertyMediaPgRepository) CountByCategory(propertyID int64, category string) (int64, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.PropertyMedia{}).
		Where("property_id = ? AND category = ?", propertyID, category).Count(&count).Error
	return count, err
}

func (r *propertyMediaPgRepository) MaxSortOrder(propertyID int64) (int, error) {
	var max sql.NullInt64
	err := r.db.GetDB().Model(&entities.PropertyMedia{}).
		Where("property_id = ?", propertyID).
		Select("MAX(sort_order)").Row().Scan(&max)
	if err != nil {
		return -1, err
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

func (r *propertyMediaPgRepository) Delete(id int64) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.PropertyMedia{}).Error
}
