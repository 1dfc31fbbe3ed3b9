package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/vclass-go-api/internal/models"
)

// YearRepository defines persistence operations for academic years.
type YearRepository interface {
	List(ctx context.Context) ([]models.Year, error)
	GetByID(ctx context.Context, id uint) (models.Year, error)
	CodeTaken(ctx context.Context, code string, excludeID uint) (bool, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, year *models.Year) error
	Update(ctx context.Context, year *models.Year) error
	Delete(ctx context.Context, id uint) error
}

// DepartmentRepository defines persistence operations for departments.
type DepartmentRepository interface {
	List(ctx context.Context) ([]models.Department, error)
	GetByID(ctx context.Context, id uint) (models.Department, error)
	CodeTaken(ctx context.Context, code string, excludeID uint) (bool, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	CountByYear(ctx context.Context, yearID uint) (int64, error)
	Create(ctx context.Context, department *models.Department) error
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id uint) error
}

// SectionRepository defines persistence operations for sections.
type SectionRepository interface {
	List(ctx context.Context) ([]models.Section, error)
	ListByDepartment(ctx context.Context, departmentID uint) ([]models.Section, error)
	GetByID(ctx context.Context, id uint) (models.Section, error)
	Exists(ctx context.Context, code string, departmentID uint) (bool, error)
	CountByDepartment(ctx context.Context, departmentID uint) (int64, error)
	Create(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, id uint) error
}

type yearRepository struct {
	db *gorm.DB
}

// NewYearRepository instantiates a GORM-backed repository.
func NewYearRepository(db *gorm.DB) YearRepository {
	return &yearRepository{db: db}
}

func (r *yearRepository) List(ctx context.Context) ([]models.Year, error) {
	var years []models.Year
	if err := r.db.WithContext(ctx).Order("code DESC").Find(&years).Error; err != nil {
		return nil, err
	}
	return years, nil
}

func (r *yearRepository) GetByID(ctx context.Context, id uint) (models.Year, error) {
	var year models.Year
	if err := r.db.WithContext(ctx).First(&year, id).Error; err != nil {
		return models.Year{}, err
	}
	return year, nil
}

func (r *yearRepository) CodeTaken(ctx context.Context, code string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Year{}).Where("code = ?", code)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

func (r *yearRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.Year{}).Where("code = ?", code))
}

func (r *yearRepository) Create(ctx context.Context, year *models.Year) error {
	return r.db.WithContext(ctx).Create(year).Error
}

func (r *yearRepository) Update(ctx context.Context, year *models.Year) error {
	return r.db.WithContext(ctx).Save(year).Error
}

func (r *yearRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Year{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository instantiates a GORM-backed repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) List(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.WithContext(ctx).Preload("Sections").Order("code ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id uint) (models.Department, error) {
	var department models.Department
	if err := r.db.WithContext(ctx).Preload("Sections").First(&department, id).Error; err != nil {
		return models.Department{}, err
	}
	return department, nil
}

func (r *departmentRepository) CodeTaken(ctx context.Context, code string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Department{}).Where("code = ?", code)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

func (r *departmentRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.Department{}).Where("code = ?", code))
}

func (r *departmentRepository) CountByYear(ctx context.Context, yearID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Department{}).Where("year_id = ?", yearID).Count(&count).Error
	return count, err
}

func (r *departmentRepository) Create(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *departmentRepository) Update(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Save(department).Error
}

func (r *departmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type sectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository instantiates a GORM-backed repository.
func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) List(ctx context.Context) ([]models.Section, error) {
	var sections []models.Section
	if err := r.db.WithContext(ctx).Order("department_id ASC, code ASC").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *sectionRepository) ListByDepartment(ctx context.Context, departmentID uint) ([]models.Section, error) {
	var sections []models.Section
	if err := r.db.WithContext(ctx).Where("department_id = ?", departmentID).Order("code ASC").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *sectionRepository) GetByID(ctx context.Context, id uint) (models.Section, error) {
	var section models.Section
	if err := r.db.WithContext(ctx).First(&section, id).Error; err != nil {
		return models.Section{}, err
	}
	return section, nil
}

func (r *sectionRepository) Exists(ctx context.Context, code string, departmentID uint) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.Section{}).
		Where("code = ?", code).
		Where("department_id = ?", departmentID))
}

func (r *sectionRepository) CountByDepartment(ctx context.Context, departmentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Section{}).Where("department_id = ?", departmentID).Count(&count).Error
	return count, err
}

func (r *sectionRepository) Create(ctx context.Context, section *models.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *sectionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Section{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Count(&count).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}
