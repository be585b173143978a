package models

import "time"

// Student represents an enrolled learner. The teacher association is a
// nullable foreign key; the Teacher field is populated only by joined
// lookups, never maintained as a mutable back-pointer.
type Student struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentNumber  *string   `gorm:"size:50;uniqueIndex" json:"student_id"`
	FirstName      string    `gorm:"size:50;not null" json:"first_name"`
	LastName       string    `gorm:"size:50;not null" json:"last_name"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PhoneNumber    string    `gorm:"size:50" json:"phone_number"`
	EnrollmentDate time.Time `gorm:"type:date;not null" json:"enrollment_date"`
	GradeLevel     string    `gorm:"size:50" json:"grade_level"`
	TeacherID      *uint     `gorm:"index" json:"teacher_id"`
	Teacher        *Teacher  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName pins the table name used by the hand-written join queries.
func (Student) TableName() string {
	return "students"
}
