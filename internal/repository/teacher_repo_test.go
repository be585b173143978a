package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/school-records-api/internal/models"
)

func TestTeacherRepositoryDeleteCascadeUnlinksStudents(t *testing.T) {
	db := setupTestDB(t)
	teachers := NewTeacherRepository(db)
	students := NewStudentRepository(db)
	ctx := context.Background()

	teacher := seedTeacher(t, db, models.Teacher{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Subject: "Math", Department: "Science"})
	first := seedStudent(t, db, models.Student{FirstName: "Bob", LastName: "Lee", Email: "bob@example.com", EnrollmentDate: date(t, "2024-09-01"), TeacherID: &teacher.ID})
	second := seedStudent(t, db, models.Student{FirstName: "Cara", LastName: "Nguyen", Email: "cara@example.com", EnrollmentDate: date(t, "2024-09-01"), TeacherID: &teacher.ID})

	require.NoError(t, teachers.DeleteCascade(ctx, teacher.ID))

	_, err := teachers.GetByID(ctx, teacher.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, id := range []uint{first.ID, second.ID} {
		student, err := students.GetByID(ctx, id)
		require.NoError(t, err)
		require.Nil(t, student.TeacherID)
	}
}

func TestTeacherRepositoryDeleteCascadeMissingReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTeacherRepository(db)

	err := repo.DeleteCascade(context.Background(), 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTeacherRepositoryDepartmentAndSubjectLookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTeacherRepository(db)
	ctx := context.Background()

	seedTeacher(t, db, models.Teacher{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Subject: "Math", Department: "Science"})
	seedTeacher(t, db, models.Teacher{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Subject: "Computing", Department: "Science"})
	seedTeacher(t, db, models.Teacher{FirstName: "Maya", LastName: "Angelou", Email: "maya@example.com", Subject: "Literature", Department: "Arts"})

	science, err := repo.ListByDepartment(ctx, "Science")
	require.NoError(t, err)
	require.Len(t, science, 2)

	math, err := repo.ListBySubject(ctx, "Math")
	require.NoError(t, err)
	require.Len(t, math, 1)
	require.Equal(t, "ada@example.com", math[0].Email)

	count, err := repo.CountByDepartment(ctx, "Science")
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestTeacherRepositorySearchByNameMatchesEitherName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTeacherRepository(db)
	ctx := context.Background()

	seedTeacher(t, db, models.Teacher{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	seedTeacher(t, db, models.Teacher{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"})

	matches, err := repo.SearchByName(ctx, "lOvE")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "ada@example.com", matches[0].Email)
}

func TestTeacherRepositoryListByDepartmentWithStudentsPreloads(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTeacherRepository(db)
	ctx := context.Background()

	science := seedTeacher(t, db, models.Teacher{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Department: "Science"})
	seedTeacher(t, db, models.Teacher{FirstName: "Maya", LastName: "Angelou", Email: "maya@example.com", Department: "Arts"})
	seedStudent(t, db, models.Student{FirstName: "Bob", LastName: "Lee", Email: "bob@example.com", EnrollmentDate: date(t, "2024-09-01"), TeacherID: &science.ID})

	teachers, err := repo.ListByDepartmentWithStudents(ctx, "Science")
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	require.Len(t, teachers[0].Students, 1)
	require.Equal(t, "bob@example.com", teachers[0].Students[0].Email)
}

func TestTeacherRepositoryExistsByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTeacherRepository(db)
	ctx := context.Background()

	seedTeacher(t, db, models.Teacher{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})

	exists, err := repo.ExistsByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	require.False(t, exists)
}
