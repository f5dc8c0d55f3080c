package repositories

import (
	"realestate-server/db"
	"realestate-server/entities"
)

type leadPgRepository struct {
	db db.Database
}

func NewLeadPgRepository(database db.Database) LeadRepository {
	return &leadPgRepository{db: database}
}

func (r *leadPgRepository) Create(lead *entities.Lead) error {
	return r.db.GetDB().Create(lead).Error
}

func (r *leadPgRepository) GetByID(id int64) (*entities.Lead, error) {
	var lead entities.Lead
	err := r.db.GetDB().Where("id = ?", id).First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadPgRepository) List(filter LeadFilter) ([]entities.Lead, error) {
	q := r.db.GetDB().Model(&entities.Lead{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		q = q.Where("source = ?", filter.Source)
	}
	if filter.PropertyID != nil {
		q = q.Where("property_id = ?", *filter.PropertyID)
	}

	var leads []entities.Lead
	err := q.Order("created_at DESC").Order("id DESC").Find(&leads).Error
	return leads, err
}

func (r *leadPgRepository) Update(lead *entities.Lead) error {
	return r.db.GetDB().Save(lead).Error
}

func (r *leadPgRepository) Delete(id int64) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Lead{}).Error
}
