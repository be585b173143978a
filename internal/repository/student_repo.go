package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/school-records-api/internal/models"
)

// StudentRepository defines persistence operations for students. Multi-row
// lookups return rows in store-default order.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Student, error)
	ListWithTeacher(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id uint) (models.Student, error)
	GetByEmail(ctx context.Context, email string) (models.Student, error)
	GetByStudentNumber(ctx context.Context, studentNumber string) (models.Student, error)
	ListByGradeLevel(ctx context.Context, gradeLevel string) ([]models.Student, error)
	ListByTeacherID(ctx context.Context, teacherID uint) ([]models.Student, error)
	ListUnassigned(ctx context.Context) ([]models.Student, error)
	SearchByName(ctx context.Context, name string) ([]models.Student, error)
	ListByTeacherSubject(ctx context.Context, subject string) ([]models.Student, error)
	ListEnrolledBetween(ctx context.Context, start, end time.Time) ([]models.Student, error)
	ListEnrolledAfter(ctx context.Context, date time.Time) ([]models.Student, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByStudentNumber(ctx context.Context, studentNumber string) (bool, error)
	CountByGradeLevel(ctx context.Context, gradeLevel string) (int64, error)
	CountByTeacherID(ctx context.Context, teacherID uint) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository instantiates a GORM-backed repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) ListWithTeacher(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Preload("Teacher").Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) GetByStudentNumber(ctx context.Context, studentNumber string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("student_number = ?", studentNumber).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) ListByGradeLevel(ctx context.Context, gradeLevel string) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Where("grade_level = ?", gradeLevel).Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) ListByTeacherID(ctx context.Context, teacherID uint) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID).Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) ListUnassigned(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Where("teacher_id IS NULL").Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) SearchByName(ctx context.Context, name string) ([]models.Student, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(name)) + "%"

	var students []models.Student
	if err := r.db.WithContext(ctx).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern).
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) ListByTeacherSubject(ctx context.Context, subject string) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).
		Joins("JOIN teachers ON teachers.id = students.teacher_id").
		Where("teachers.subject = ?", subject).
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) ListEnrolledBetween(ctx context.Context, start, end time.Time) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).
		Where("enrollment_date BETWEEN ? AND ?", start, end).
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) ListEnrolledAfter(ctx context.Context, date time.Time) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).
		Where("enrollment_date > ?", date).
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *studentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *studentRepository) ExistsByStudentNumber(ctx context.Context, studentNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Where("student_number = ?", studentNumber).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *studentRepository) CountByGradeLevel(ctx context.Context, gradeLevel string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Where("grade_level = ?", gradeLevel).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *studentRepository) CountByTeacherID(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Where("teacher_id = ?", teacherID).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
