package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/vclass-go-api/internal/models"
)

// StudentFeedFilter narrows coursework queries to a student's cohort. Year and
// Department are skipped when empty; Section always applies.
type StudentFeedFilter struct {
	Section    string
	Year       string
	Department string
}

// AssignmentRepository defines persistence operations for assignments.
type AssignmentRepository interface {
	ListByCreator(ctx context.Context, creatorID uint) ([]models.Assignment, error)
	ListForStudent(ctx context.Context, filter StudentFeedFilter) ([]models.Assignment, error)
	GetByID(ctx context.Context, id uint) (models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id uint) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) ListByCreator(ctx context.Context, creatorID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.db.WithContext(ctx).
		Where("created_by_id = ?", creatorID).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) ListForStudent(ctx context.Context, filter StudentFeedFilter) ([]models.Assignment, error) {
	query := r.db.WithContext(ctx).Preload("CreatedBy").Where("section = ?", filter.Section)

	if filter.Year != "" {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}

	var assignments []models.Assignment
	if err := query.Order("created_at DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Assignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
