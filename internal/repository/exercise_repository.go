package repository

import (
	"trading_edu_backend/internal/model"

	"gorm.io/gorm"
)

// ExerciseStore is the read/write surface of the study exercise set.
type ExerciseStore interface {
	ListBySection(sectionID uint) ([]model.Exercise, error)
	FindByID(id uint) (*model.Exercise, error)
	Create(exercise *model.Exercise) error
	Update(exercise *model.Exercise) error
	Delete(id uint) error
}

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

func (r *ExerciseRepository) ListBySection(sectionID uint) ([]model.Exercise, error) {
	var exercises []model.Exercise
	query := r.DB.Model(&model.Exercise{})
	if sectionID > 0 {
		query = query.Where("section_id = ?", sectionID)
	}
	err := query.Order("created_at asc").Find(&exercises).Error
	return exercises, err
}

func (r *ExerciseRepository) FindByID(id uint) (*model.Exercise, error) {
	var e model.Exercise
	err := r.DB.First(&e, id).Error
	return &e, err
}

func (r *ExerciseRepository) Create(exercise *model.Exercise) error {
	return r.DB.Create(exercise).Error
}

func (r *ExerciseRepository) Update(exercise *model.Exercise) error {
	return r.DB.Save(exercise).Error
}

func (r *ExerciseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Exercise{}, id).Error
}
