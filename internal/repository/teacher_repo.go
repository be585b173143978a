package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/school-records-api/internal/models"
)

// TeacherRepository defines persistence operations for teachers.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	// DeleteCascade removes the teacher and clears the association on every
	// dependent student inside a single transaction. Students are unlinked,
	// never deleted.
	DeleteCascade(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Teacher, error)
	ListWithStudents(ctx context.Context) ([]models.Teacher, error)
	GetByID(ctx context.Context, id uint) (models.Teacher, error)
	GetByEmail(ctx context.Context, email string) (models.Teacher, error)
	ListByDepartment(ctx context.Context, department string) ([]models.Teacher, error)
	ListBySubject(ctx context.Context, subject string) ([]models.Teacher, error)
	SearchByName(ctx context.Context, name string) ([]models.Teacher, error)
	ListByDepartmentWithStudents(ctx context.Context, department string) ([]models.Teacher, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByDepartment(ctx context.Context, department string) (int64, error)
}

type teacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository instantiates a GORM-backed repository.
func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

func (r *teacherRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Student{}).
			Where("teacher_id = ?", id).
			Update("teacher_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Teacher{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *teacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := r.db.WithContext(ctx).Find(&teachers).Error; err != nil {
		return nil, err
	}

	return teachers, nil
}

func (r *teacherRepository) ListWithStudents(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := r.db.WithContext(ctx).Preload("Students").Find(&teachers).Error; err != nil {
		return nil, err
	}

	return teachers, nil
}

func (r *teacherRepository) GetByID(ctx context.Context, id uint) (models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return models.Teacher{}, err
	}

	return teacher, nil
}

func (r *teacherRepository) GetByEmail(ctx context.Context, email string) (models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&teacher).Error; err != nil {
		return models.Teacher{}, err
	}

	return teacher, nil
}

func (r *teacherRepository) ListByDepartment(ctx context.Context, department string) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := r.db.WithContext(ctx).Where("department = ?", department).Find(&teachers).Error; err != nil {
		return nil, err
	}

	return teachers, nil
}

func (r *teacherRepository) ListBySubject(ctx context.Context, subject string) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := r.db.WithContext(ctx).Where("subject = ?", subject).Find(&teachers).Error; err != nil {
		return nil, err
	}

	return teachers, nil
}

func (r *teacherRepository) SearchByName(ctx context.Context, name string) ([]models.Teacher, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(name)) + "%"

	var teachers []models.Teacher
	if err := r.db.WithContext(ctx).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern).
		Find(&teachers).Error; err != nil {
		return nil, err
	}

	return teachers, nil
}

func (r *teacherRepository) ListByDepartmentWithStudents(ctx context.Context, department string) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := r.db.WithContext(ctx).
		Preload("Students").
		Where("department = ?", department).
		Find(&teachers).Error; err != nil {
		return nil, err
	}

	return teachers, nil
}

func (r *teacherRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Teacher{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *teacherRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Teacher{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *teacherRepository) CountByDepartment(ctx context.Context, department string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Teacher{}).Where("department = ?", department).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
