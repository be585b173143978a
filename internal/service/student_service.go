package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/school-records-api/internal/dto"
	"github.com/noah-isme/school-records-api/internal/models"
	"github.com/noah-isme/school-records-api/internal/repository"
)

const dateLayout = "2006-01-02"

// StudentService exposes student domain use cases.
type StudentService interface {
	Create(ctx context.Context, payload dto.StudentRequest) (dto.StudentResponse, error)
	Update(ctx context.Context, id uint, payload dto.StudentRequest) (dto.StudentResponse, error)
	Delete(ctx context.Context, id uint) error
	AssignTeacher(ctx context.Context, studentID, teacherID uint) (dto.StudentResponse, error)
	RemoveTeacher(ctx context.Context, studentID uint) (dto.StudentResponse, error)
	List(ctx context.Context) ([]dto.StudentResponse, error)
	ListWithTeacher(ctx context.Context) ([]dto.StudentResponse, error)
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	GetByEmail(ctx context.Context, email string) (dto.StudentResponse, error)
	GetByStudentNumber(ctx context.Context, studentNumber string) (dto.StudentResponse, error)
	ListByGradeLevel(ctx context.Context, gradeLevel string) ([]dto.StudentResponse, error)
	ListByTeacherID(ctx context.Context, teacherID uint) ([]dto.StudentResponse, error)
	ListUnassigned(ctx context.Context) ([]dto.StudentResponse, error)
	SearchByName(ctx context.Context, name string) ([]dto.StudentResponse, error)
	ListByTeacherSubject(ctx context.Context, subject string) ([]dto.StudentResponse, error)
	ListEnrolledBetween(ctx context.Context, start, end time.Time) ([]dto.StudentResponse, error)
	ListEnrolledAfter(ctx context.Context, date time.Time) ([]dto.StudentResponse, error)
	Exists(ctx context.Context, id uint) (bool, error)
	CountByGradeLevel(ctx context.Context, gradeLevel string) (int64, error)
	CountByTeacherID(ctx context.Context, teacherID uint) (int64, error)
}

type studentService struct {
	students  repository.StudentRepository
	teachers  repository.TeacherRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStudentService builds a new student service.
func NewStudentService(students repository.StudentRepository, teachers repository.TeacherRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		students:  students,
		teachers:  teachers,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
		now:       time.Now,
	}
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	exists, err := s.students.ExistsByEmail(ctx, payload.Email)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	if exists {
		return dto.StudentResponse{}, &ConflictError{Entity: "student", Field: "email", Value: payload.Email}
	}

	if payload.StudentNumber != nil {
		exists, err := s.students.ExistsByStudentNumber(ctx, *payload.StudentNumber)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		if exists {
			return dto.StudentResponse{}, &ConflictError{Entity: "student", Field: "id", Value: *payload.StudentNumber}
		}
	}

	enrollmentDate := s.today()
	if payload.EnrollmentDate != "" {
		enrollmentDate, err = time.Parse(dateLayout, payload.EnrollmentDate)
		if err != nil {
			return dto.StudentResponse{}, err
		}
	}

	student := models.Student{
		StudentNumber:  payload.StudentNumber,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Email:          payload.Email,
		PhoneNumber:    payload.PhoneNumber,
		EnrollmentDate: enrollmentDate,
		GradeLevel:     payload.GradeLevel,
	}

	if err := s.students.Create(ctx, &student); err != nil {
		// Two concurrent creates can both pass the existence check; the
		// unique index settles the race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.StudentResponse{}, s.duplicateKeyConflict(ctx, payload, payload.StudentNumber != nil)
		}
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student created")

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, id uint, payload dto.StudentRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, notFound(ErrStudentNotFound, "id", id)
		}
		return dto.StudentResponse{}, err
	}

	if payload.Email != student.Email {
		exists, err := s.students.ExistsByEmail(ctx, payload.Email)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		if exists {
			return dto.StudentResponse{}, &ConflictError{Entity: "student", Field: "email", Value: payload.Email}
		}
	}

	numberChanged := payload.StudentNumber != nil && (student.StudentNumber == nil || *payload.StudentNumber != *student.StudentNumber)
	if numberChanged {
		exists, err := s.students.ExistsByStudentNumber(ctx, *payload.StudentNumber)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		if exists {
			return dto.StudentResponse{}, &ConflictError{Entity: "student", Field: "id", Value: *payload.StudentNumber}
		}
	}

	if payload.EnrollmentDate != "" {
		enrollmentDate, err := time.Parse(dateLayout, payload.EnrollmentDate)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		student.EnrollmentDate = enrollmentDate
	}

	// The teacher association is managed only by the assign/remove endpoints.
	student.StudentNumber = payload.StudentNumber
	student.FirstName = payload.FirstName
	student.LastName = payload.LastName
	student.Email = payload.Email
	student.PhoneNumber = payload.PhoneNumber
	student.GradeLevel = payload.GradeLevel

	if err := s.students.Update(ctx, &student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.StudentResponse{}, s.duplicateKeyConflict(ctx, payload, numberChanged)
		}
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student updated")

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(ErrStudentNotFound, "id", id)
		}
		return err
	}

	s.logger.Info().Uint("student_id", id).Msg("student deleted")
	return nil
}

func (s *studentService) AssignTeacher(ctx context.Context, studentID, teacherID uint) (dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, notFound(ErrStudentNotFound, "id", studentID)
		}
		return dto.StudentResponse{}, err
	}

	exists, err := s.teachers.ExistsByID(ctx, teacherID)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	if !exists {
		return dto.StudentResponse{}, notFound(ErrTeacherNotFound, "id", teacherID)
	}

	student.TeacherID = &teacherID
	if err := s.students.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", studentID).Uint("teacher_id", teacherID).Msg("teacher assigned to student")

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) RemoveTeacher(ctx context.Context, studentID uint) (dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, notFound(ErrStudentNotFound, "id", studentID)
		}
		return dto.StudentResponse{}, err
	}

	student.TeacherID = nil
	student.Teacher = nil
	if err := s.students.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", studentID).Msg("teacher removed from student")

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) ListWithTeacher(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.students.ListWithTeacher(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, notFound(ErrStudentNotFound, "id", id)
		}
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) GetByEmail(ctx context.Context, email string) (dto.StudentResponse, error) {
	student, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, notFound(ErrStudentNotFound, "email", email)
		}
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) GetByStudentNumber(ctx context.Context, studentNumber string) (dto.StudentResponse, error) {
	student, err := s.students.GetByStudentNumber(ctx, studentNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, notFound(ErrStudentNotFound, "student id", studentNumber)
		}
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) ListByGradeLevel(ctx context.Context, gradeLevel string) ([]dto.StudentResponse, error) {
	students, err := s.students.ListByGradeLevel(ctx, gradeLevel)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) ListByTeacherID(ctx context.Context, teacherID uint) ([]dto.StudentResponse, error) {
	students, err := s.students.ListByTeacherID(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) ListUnassigned(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.students.ListUnassigned(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) SearchByName(ctx context.Context, name string) ([]dto.StudentResponse, error) {
	students, err := s.students.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) ListByTeacherSubject(ctx context.Context, subject string) ([]dto.StudentResponse, error) {
	students, err := s.students.ListByTeacherSubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) ListEnrolledBetween(ctx context.Context, start, end time.Time) ([]dto.StudentResponse, error) {
	students, err := s.students.ListEnrolledBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) ListEnrolledAfter(ctx context.Context, date time.Time) ([]dto.StudentResponse, error) {
	students, err := s.students.ListEnrolledAfter(ctx, date)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) Exists(ctx context.Context, id uint) (bool, error) {
	return s.students.ExistsByID(ctx, id)
}

func (s *studentService) CountByGradeLevel(ctx context.Context, gradeLevel string) (int64, error) {
	return s.students.CountByGradeLevel(ctx, gradeLevel)
}

func (s *studentService) CountByTeacherID(ctx context.Context, teacherID uint) (int64, error) {
	return s.students.CountByTeacherID(ctx, teacherID)
}

// duplicateKeyConflict attributes a unique-index violation to the colliding
// field. Students carry two unique keys, so the contested student number is
// re-checked before blaming the email. checkNumber is false when the student
// number cannot have collided, such as an update that keeps it unchanged.
func (s *studentService) duplicateKeyConflict(ctx context.Context, payload dto.StudentRequest, checkNumber bool) error {
	if checkNumber {
		exists, err := s.students.ExistsByStudentNumber(ctx, *payload.StudentNumber)
		if err == nil && exists {
			return &ConflictError{Entity: "student", Field: "id", Value: *payload.StudentNumber}
		}
	}
	return &ConflictError{Entity: "student", Field: "email", Value: payload.Email}
}

// today truncates the clock to a date, keeping enrollment_date a pure date.
func (s *studentService) today() time.Time {
	year, month, day := s.now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
