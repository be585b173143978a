package dto

import (
	"time"

	"github.com/noah-isme/school-records-api/internal/models"
)

// TeacherRequest describes the payload for creating or fully updating a
// teacher. Student associations are never touched through this payload.
type TeacherRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=2,max=50"`
	LastName    string `json:"last_name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=50"`
	Subject     string `json:"subject" validate:"omitempty,max=100"`
	Department  string `json:"department" validate:"omitempty,max=100"`
}

// TeacherResponse is the serialized representation returned to API clients.
// Students is non-nil only on the joined lookups that populate it.
type TeacherResponse struct {
	ID          uint              `json:"id"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Email       string            `json:"email"`
	PhoneNumber string            `json:"phone_number"`
	Subject     string            `json:"subject"`
	Department  string            `json:"department"`
	Students    []StudentResponse `json:"students,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewTeacherResponse converts a model into a DTO.
func NewTeacherResponse(model models.Teacher) TeacherResponse {
	response := TeacherResponse{
		ID:          model.ID,
		FirstName:   model.FirstName,
		LastName:    model.LastName,
		Email:       model.Email,
		PhoneNumber: model.PhoneNumber,
		Subject:     model.Subject,
		Department:  model.Department,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}

	if model.Students != nil {
		response.Students = NewStudentResponseSlice(model.Students)
	}

	return response
}

// NewTeacherResponseSlice converts a slice of models into DTOs.
func NewTeacherResponseSlice(teachers []models.Teacher) []TeacherResponse {
	responses := make([]TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		responses = append(responses, NewTeacherResponse(teacher))
	}

	return responses
}
