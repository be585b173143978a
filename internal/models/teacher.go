package models

import "time"

// Teacher represents a member of the teaching staff. Students holds the
// inverse side of the association and is filled only by joined lookups.
type Teacher struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `gorm:"size:50;not null" json:"first_name"`
	LastName    string    `gorm:"size:50;not null" json:"last_name"`
	Email       string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PhoneNumber string    `gorm:"size:50" json:"phone_number"`
	Subject     string    `gorm:"size:100" json:"subject"`
	Department  string    `gorm:"size:100" json:"department"`
	Students    []Student `gorm:"foreignKey:TeacherID" json:"students,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName pins the table name used by the hand-written join queries.
func (Teacher) TableName() string {
	return "teachers"
}
