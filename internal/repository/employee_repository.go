package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"employee-directory/internal/model"
)

// EmployeeFilter narrows a listing. Exact-match fields are conjoined; a
// non-empty Search additionally requires a case-insensitive substring match
// on full name, email, or department.
type EmployeeFilter struct {
	Search      string
	Department  string
	Designation string
	Gender      string
}

func (f EmployeeFilter) apply(tx *gorm.DB) *gorm.DB {
	if f.Department != "" {
		tx = tx.Where("department = ?", f.Department)
	}
	if f.Designation != "" {
		tx = tx.Where("designation = ?", f.Designation)
	}
	if f.Gender != "" {
		tx = tx.Where("gender = ?", f.Gender)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		tx = tx.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(department) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	return tx
}

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(employee *model.Employee) error {
	if err := r.db.Create(employee).Error; err != nil {
		return fmt.Errorf("create employee failed: %w", err)
	}
	return nil
}

// List returns the full matching set, most recently created first. ID breaks
// ties between rows created within the same timestamp granule.
func (r *EmployeeRepository) List(filter EmployeeFilter) ([]model.Employee, error) {
	var employees []model.Employee
	tx := filter.apply(r.db.Model(&model.Employee{}))
	if err := tx.Order("created_at DESC, id DESC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("list employees failed: %w", err)
	}
	return employees, nil
}
