package service

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/school-records-api/internal/models"
)

type memoryStudentRepo struct {
	students map[uint]models.Student
	nextID   uint
}

func newMemoryStudentRepo() *memoryStudentRepo {
	return &memoryStudentRepo{students: make(map[uint]models.Student), nextID: 1}
}

func (m *memoryStudentRepo) Create(_ context.Context, student *models.Student) error {
	for _, existing := range m.students {
		if existing.Email == student.Email {
			return gorm.ErrDuplicatedKey
		}
		if student.StudentNumber != nil && existing.StudentNumber != nil && *existing.StudentNumber == *student.StudentNumber {
			return gorm.ErrDuplicatedKey
		}
	}

	student.ID = m.nextID
	student.CreatedAt = time.Now()
	student.UpdatedAt = time.Now()
	m.students[m.nextID] = *student
	m.nextID++
	return nil
}

func (m *memoryStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := m.students[student.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	student.UpdatedAt = time.Now()
	m.students[student.ID] = *student
	return nil
}

func (m *memoryStudentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.students[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.students, id)
	return nil
}

func (m *memoryStudentRepo) List(_ context.Context) ([]models.Student, error) {
	results := make([]models.Student, 0, len(m.students))
	for _, student := range m.students {
		results = append(results, student)
	}
	return results, nil
}

func (m *memoryStudentRepo) ListWithTeacher(ctx context.Context) ([]models.Student, error) {
	return m.List(ctx)
}

func (m *memoryStudentRepo) GetByID(_ context.Context, id uint) (models.Student, error) {
	student, ok := m.students[id]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (m *memoryStudentRepo) GetByEmail(_ context.Context, email string) (models.Student, error) {
	for _, student := range m.students {
		if student.Email == email {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (m *memoryStudentRepo) GetByStudentNumber(_ context.Context, studentNumber string) (models.Student, error) {
	for _, student := range m.students {
		if student.StudentNumber != nil && *student.StudentNumber == studentNumber {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (m *memoryStudentRepo) ListByGradeLevel(_ context.Context, gradeLevel string) ([]models.Student, error) {
	results := make([]models.Student, 0)
	for _, student := range m.students {
		if student.GradeLevel == gradeLevel {
			results = append(results, student)
		}
	}
	return results, nil
}

func (m *memoryStudentRepo) ListByTeacherID(_ context.Context, teacherID uint) ([]models.Student, error) {
	results := make([]models.Student, 0)
	for _, student := range m.students {
		if student.TeacherID != nil && *student.TeacherID == teacherID {
			results = append(results, student)
		}
	}
	return results, nil
}

func (m *memoryStudentRepo) ListUnassigned(_ context.Context) ([]models.Student, error) {
	results := make([]models.Student, 0)
	for _, student := range m.students {
		if student.TeacherID == nil {
			results = append(results, student)
		}
	}
	return results, nil
}

func (m *memoryStudentRepo) SearchByName(_ context.Context, name string) ([]models.Student, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	results := make([]models.Student, 0)
	for _, student := range m.students {
		first := strings.ToLower(student.FirstName)
		last := strings.ToLower(student.LastName)
		if strings.Contains(first, needle) || strings.Contains(last, needle) {
			results = append(results, student)
		}
	}
	return results, nil
}

func (m *memoryStudentRepo) ListByTeacherSubject(_ context.Context, _ string) ([]models.Student, error) {
	return []models.Student{}, nil
}

func (m *memoryStudentRepo) ListEnrolledBetween(_ context.Context, start, end time.Time) ([]models.Student, error) {
	results := make([]models.Student, 0)
	for _, student := range m.students {
		if !student.EnrollmentDate.Before(start) && !student.EnrollmentDate.After(end) {
			results = append(results, student)
		}
	}
	return results, nil
}

func (m *memoryStudentRepo) ListEnrolledAfter(_ context.Context, date time.Time) ([]models.Student, error) {
	results := make([]models.Student, 0)
	for _, student := range m.students {
		if student.EnrollmentDate.After(date) {
			results = append(results, student)
		}
	}
	return results, nil
}

func (m *memoryStudentRepo) ExistsByID(_ context.Context, id uint) (bool, error) {
	_, ok := m.students[id]
	return ok, nil
}

func (m *memoryStudentRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, student := range m.students {
		if student.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStudentRepo) ExistsByStudentNumber(_ context.Context, studentNumber string) (bool, error) {
	for _, student := range m.students {
		if student.StudentNumber != nil && *student.StudentNumber == studentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStudentRepo) CountByGradeLevel(_ context.Context, gradeLevel string) (int64, error) {
	var count int64
	for _, student := range m.students {
		if student.GradeLevel == gradeLevel {
			count++
		}
	}
	return count, nil
}

func (m *memoryStudentRepo) CountByTeacherID(_ context.Context, teacherID uint) (int64, error) {
	var count int64
	for _, student := range m.students {
		if student.TeacherID != nil && *student.TeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

type memoryTeacherRepo struct {
	teachers map[uint]models.Teacher
	students *memoryStudentRepo
	nextID   uint
}

func newMemoryTeacherRepo(students *memoryStudentRepo) *memoryTeacherRepo {
	return &memoryTeacherRepo{teachers: make(map[uint]models.Teacher), students: students, nextID: 1}
}

func (m *memoryTeacherRepo) Create(_ context.Context, teacher *models.Teacher) error {
	for _, existing := range m.teachers {
		if existing.Email == teacher.Email {
			return gorm.ErrDuplicatedKey
		}
	}

	teacher.ID = m.nextID
	teacher.CreatedAt = time.Now()
	teacher.UpdatedAt = time.Now()
	m.teachers[m.nextID] = *teacher
	m.nextID++
	return nil
}

func (m *memoryTeacherRepo) Update(_ context.Context, teacher *models.Teacher) error {
	if _, ok := m.teachers[teacher.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	teacher.UpdatedAt = time.Now()
	m.teachers[teacher.ID] = *teacher
	return nil
}

func (m *memoryTeacherRepo) DeleteCascade(_ context.Context, id uint) error {
	if _, ok := m.teachers[id]; !ok {
		return gorm.ErrRecordNotFound
	}

	if m.students != nil {
		for sid, student := range m.students.students {
			if student.TeacherID != nil && *student.TeacherID == id {
				student.TeacherID = nil
				m.students.students[sid] = student
			}
		}
	}

	delete(m.teachers, id)
	return nil
}

func (m *memoryTeacherRepo) List(_ context.Context) ([]models.Teacher, error) {
	results := make([]models.Teacher, 0, len(m.teachers))
	for _, teacher := range m.teachers {
		results = append(results, teacher)
	}
	return results, nil
}

func (m *memoryTeacherRepo) ListWithStudents(ctx context.Context) ([]models.Teacher, error) {
	return m.List(ctx)
}

func (m *memoryTeacherRepo) GetByID(_ context.Context, id uint) (models.Teacher, error) {
	teacher, ok := m.teachers[id]
	if !ok {
		return models.Teacher{}, gorm.ErrRecordNotFound
	}
	return teacher, nil
}

func (m *memoryTeacherRepo) GetByEmail(_ context.Context, email string) (models.Teacher, error) {
	for _, teacher := range m.teachers {
		if teacher.Email == email {
			return teacher, nil
		}
	}
	return models.Teacher{}, gorm.ErrRecordNotFound
}

func (m *memoryTeacherRepo) ListByDepartment(_ context.Context, department string) ([]models.Teacher, error) {
	results := make([]models.Teacher, 0)
	for _, teacher := range m.teachers {
		if teacher.Department == department {
			results = append(results, teacher)
		}
	}
	return results, nil
}

func (m *memoryTeacherRepo) ListBySubject(_ context.Context, subject string) ([]models.Teacher, error) {
	results := make([]models.Teacher, 0)
	for _, teacher := range m.teachers {
		if teacher.Subject == subject {
			results = append(results, teacher)
		}
	}
	return results, nil
}

func (m *memoryTeacherRepo) SearchByName(_ context.Context, name string) ([]models.Teacher, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	results := make([]models.Teacher, 0)
	for _, teacher := range m.teachers {
		first := strings.ToLower(teacher.FirstName)
		last := strings.ToLower(teacher.LastName)
		if strings.Contains(first, needle) || strings.Contains(last, needle) {
			results = append(results, teacher)
		}
	}
	return results, nil
}

func (m *memoryTeacherRepo) ListByDepartmentWithStudents(ctx context.Context, department string) ([]models.Teacher, error) {
	return m.ListByDepartment(ctx, department)
}

func (m *memoryTeacherRepo) ExistsByID(_ context.Context, id uint) (bool, error) {
	_, ok := m.teachers[id]
	return ok, nil
}

func (m *memoryTeacherRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, teacher := range m.teachers {
		if teacher.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryTeacherRepo) CountByDepartment(_ context.Context, department string) (int64, error) {
	var count int64
	for _, teacher := range m.teachers {
		if teacher.Department == department {
			count++
		}
	}
	return count, nil
}
