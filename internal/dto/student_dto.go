package dto

import (
	"time"

	"github.com/noah-isme/school-records-api/internal/models"
)

const dateLayout = "2006-01-02"

// StudentRequest describes the payload for creating or fully updating a
// student. Updates overwrite every mutable field, so create and update share
// one shape; the teacher association is managed by dedicated endpoints.
type StudentRequest struct {
	StudentNumber  *string `json:"student_id" validate:"omitempty,min=1,max=50"`
	FirstName      string  `json:"first_name" validate:"required,min=2,max=50"`
	LastName       string  `json:"last_name" validate:"required,min=2,max=50"`
	Email          string  `json:"email" validate:"required,email"`
	PhoneNumber    string  `json:"phone_number" validate:"omitempty,max=50"`
	EnrollmentDate string  `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
	GradeLevel     string  `json:"grade_level" validate:"omitempty,max=50"`
}

// StudentResponse is the serialized representation returned to API clients.
type StudentResponse struct {
	ID             uint             `json:"id"`
	StudentNumber  *string          `json:"student_id"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Email          string           `json:"email"`
	PhoneNumber    string           `json:"phone_number"`
	EnrollmentDate string           `json:"enrollment_date"`
	GradeLevel     string           `json:"grade_level"`
	TeacherID      *uint            `json:"teacher_id"`
	Teacher        *TeacherResponse `json:"teacher,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	response := StudentResponse{
		ID:             model.ID,
		StudentNumber:  model.StudentNumber,
		FirstName:      model.FirstName,
		LastName:       model.LastName,
		Email:          model.Email,
		PhoneNumber:    model.PhoneNumber,
		EnrollmentDate: model.EnrollmentDate.Format(dateLayout),
		GradeLevel:     model.GradeLevel,
		TeacherID:      model.TeacherID,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}

	if model.Teacher != nil {
		teacher := NewTeacherResponse(*model.Teacher)
		response.Teacher = &teacher
	}

	return response
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}

	return responses
}
