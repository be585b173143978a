package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/school-records-api/internal/dto"
	"github.com/noah-isme/school-records-api/internal/models"
	"github.com/noah-isme/school-records-api/internal/repository"
)

// TeacherService exposes teacher domain use cases.
type TeacherService interface {
	Create(ctx context.Context, payload dto.TeacherRequest) (dto.TeacherResponse, error)
	Update(ctx context.Context, id uint, payload dto.TeacherRequest) (dto.TeacherResponse, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	ListWithStudents(ctx context.Context) ([]dto.TeacherResponse, error)
	Get(ctx context.Context, id uint) (dto.TeacherResponse, error)
	GetByEmail(ctx context.Context, email string) (dto.TeacherResponse, error)
	ListByDepartment(ctx context.Context, department string) ([]dto.TeacherResponse, error)
	ListBySubject(ctx context.Context, subject string) ([]dto.TeacherResponse, error)
	SearchByName(ctx context.Context, name string) ([]dto.TeacherResponse, error)
	ListByDepartmentWithStudents(ctx context.Context, department string) ([]dto.TeacherResponse, error)
	Exists(ctx context.Context, id uint) (bool, error)
	CountByDepartment(ctx context.Context, department string) (int64, error)
}

type teacherService struct {
	teachers  repository.TeacherRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTeacherService builds a new teacher service.
func NewTeacherService(teachers repository.TeacherRepository, validate *validator.Validate, logger zerolog.Logger) TeacherService {
	return &teacherService{
		teachers:  teachers,
		validator: validate,
		logger:    logger.With().Str("component", "teacher_service").Logger(),
	}
}

func (s *teacherService) Create(ctx context.Context, payload dto.TeacherRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeacherResponse{}, err
	}

	exists, err := s.teachers.ExistsByEmail(ctx, payload.Email)
	if err != nil {
		return dto.TeacherResponse{}, err
	}
	if exists {
		return dto.TeacherResponse{}, &ConflictError{Entity: "teacher", Field: "email", Value: payload.Email}
	}

	teacher := models.Teacher{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Email:       payload.Email,
		PhoneNumber: payload.PhoneNumber,
		Subject:     payload.Subject,
		Department:  payload.Department,
	}

	if err := s.teachers.Create(ctx, &teacher); err != nil {
		// The unique index settles a create race that slipped past the
		// existence check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.TeacherResponse{}, &ConflictError{Entity: "teacher", Field: "email", Value: payload.Email}
		}
		return dto.TeacherResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher created")

	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) Update(ctx context.Context, id uint, payload dto.TeacherRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, notFound(ErrTeacherNotFound, "id", id)
		}
		return dto.TeacherResponse{}, err
	}

	if payload.Email != teacher.Email {
		exists, err := s.teachers.ExistsByEmail(ctx, payload.Email)
		if err != nil {
			return dto.TeacherResponse{}, err
		}
		if exists {
			return dto.TeacherResponse{}, &ConflictError{Entity: "teacher", Field: "email", Value: payload.Email}
		}
	}

	teacher.FirstName = payload.FirstName
	teacher.LastName = payload.LastName
	teacher.Email = payload.Email
	teacher.PhoneNumber = payload.PhoneNumber
	teacher.Subject = payload.Subject
	teacher.Department = payload.Department

	if err := s.teachers.Update(ctx, &teacher); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.TeacherResponse{}, &ConflictError{Entity: "teacher", Field: "email", Value: payload.Email}
		}
		return dto.TeacherResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher updated")

	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) Delete(ctx context.Context, id uint) error {
	if err := s.teachers.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(ErrTeacherNotFound, "id", id)
		}
		return err
	}

	s.logger.Info().Uint("teacher_id", id).Msg("teacher deleted, dependent students unlinked")
	return nil
}

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) ListWithStudents(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.teachers.ListWithStudents(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) Get(ctx context.Context, id uint) (dto.TeacherResponse, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, notFound(ErrTeacherNotFound, "id", id)
		}
		return dto.TeacherResponse{}, err
	}

	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) GetByEmail(ctx context.Context, email string) (dto.TeacherResponse, error) {
	teacher, err := s.teachers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, notFound(ErrTeacherNotFound, "email", email)
		}
		return dto.TeacherResponse{}, err
	}

	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) ListByDepartment(ctx context.Context, department string) ([]dto.TeacherResponse, error) {
	teachers, err := s.teachers.ListByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}

	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) ListBySubject(ctx context.Context, subject string) ([]dto.TeacherResponse, error) {
	teachers, err := s.teachers.ListBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) SearchByName(ctx context.Context, name string) ([]dto.TeacherResponse, error) {
	teachers, err := s.teachers.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) ListByDepartmentWithStudents(ctx context.Context, department string) ([]dto.TeacherResponse, error) {
	teachers, err := s.teachers.ListByDepartmentWithStudents(ctx, department)
	if err != nil {
		return nil, err
	}

	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) Exists(ctx context.Context, id uint) (bool, error) {
	return s.teachers.ExistsByID(ctx, id)
}

func (s *teacherService) CountByDepartment(ctx context.Context, department string) (int64, error) {
	return s.teachers.CountByDepartment(ctx, department)
}
