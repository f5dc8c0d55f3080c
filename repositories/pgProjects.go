package repositories

import (
	"realestate-server/db"
	"realestate-server/entities"
)

type projectPgRepository struct {
	db db.Database
}

func NewProjectPgRepository(database db.Database) ProjectRepository {
	return &projectPgRepository{db: database}
}

func (r *projectPgRepository) Create(project *entities.Project) error {
	return r.db.GetDB().Omit("Properties").Create(project).Error
}

func (r *projectPgRepository) GetByID(id int64) (*entities.Project, error) {
	var project entities.Project
	err := r.db.GetDB().Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectPgRepository) GetBySlug(slug string) (*entities.Project, error) {
	var project entities.Project
	err := r.db.GetDB().Where("slug = ?", slug).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectPgRepository) GetAll() ([]entities.Project, error) {
	var projects []entities.Project
	err := r.db.GetDB().Order("created_at DESC").Order("id DESC").Find(&projects).Error
	return projects, err
}

func (r *projectPgRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.Project{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *projectPgRepository) Update(project *entities.Project) error {
	return r.db.GetDB().Omit("Properties").Save(project).Error
}

func (r *projectPgRepository) Delete(id int64) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Project{}).Error
}
