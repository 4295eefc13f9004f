package edu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studioerp/odoo.go/pkg/models"
)

func TestAcademicYearPagination(t *testing.T) {
	svc := NewAcademicYearService(NewFixtureRepository[models.AcademicYear](academicYearFixtures()))

	set, err := svc.GetAll(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, set.Records, 1)
	assert.Equal(t, "2023-2024", set.Records[0].Name.String())
	// total reflects all matches, not the page
	assert.Equal(t, 2, set.TotalCount)
}

func TestAcademicYearGetCurrent(t *testing.T) {
	svc := NewAcademicYearService(NewFixtureRepository[models.AcademicYear](academicYearFixtures()))

	current, err := svc.GetCurrent(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "2024-2025", current.Name.String())
	assert.True(t, current.IsCurrent)
}

func TestAcademicYearGetCurrentNone(t *testing.T) {
	svc := NewAcademicYearService(NewFixtureRepository[models.AcademicYear](nil))

	current, err := svc.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestAcademicYearSetCurrentDemotesPrevious(t *testing.T) {
	svc := NewAcademicYearService(NewFixtureRepository[models.AcademicYear](academicYearFixtures()))
	ctx := context.Background()

	ok, err := svc.SetCurrent(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	current, err := svc.GetCurrent(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, int64(2), current.ID)

	previous, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.False(t, previous.IsCurrent)
}

func TestAcademicYearCreateCurrentDemotesPrevious(t *testing.T) {
	svc := NewAcademicYearService(NewFixtureRepository[models.AcademicYear](academicYearFixtures()))
	ctx := context.Background()

	id, err := svc.Create(ctx, map[string]any{
		"name":       "2025-2026",
		"start_date": "2025-08-01",
		"end_date":   "2026-05-31",
		"is_current": true,
	})
	require.NoError(t, err)

	current, err := svc.GetCurrent(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, id, current.ID)
	assert.Equal(t, "2025-2026", current.Name.String())

	formerCurrent, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, formerCurrent)
	assert.False(t, formerCurrent.IsCurrent)
}

func TestCourseFixtures(t *testing.T) {
	svc := NewCourseService(NewFixtureRepository[models.Course](courseFixtures()))
	ctx := context.Background()

	set, err := svc.GetAll(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, set.Records, 3)
	assert.Equal(t, 3, set.TotalCount)

	course, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, "ENG201", course.Code.String())
	assert.Equal(t, "Jane Smith", course.InstructorID.Name)
	assert.Equal(t, 3, course.Credits)

	missing, err := svc.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCourseFixtureCRUD(t *testing.T) {
	svc := NewCourseService(NewFixtureRepository[models.Course](courseFixtures()))
	ctx := context.Background()

	id, err := svc.Create(ctx, map[string]any{
		"name": "Filipino 101", "code": "FIL101", "credits": 3, "active": true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)

	ok, err := svc.Update(ctx, id, map[string]any{"credits": 4})
	require.NoError(t, err)
	assert.True(t, ok)

	course, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, 4, course.Credits)

	ok, err = svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestEnrollmentGetByStudent(t *testing.T) {
	svc := NewEnrollmentService(NewFixtureRepository[models.Enrollment](enrollmentFixtures()))
	ctx := context.Background()

	set, err := svc.GetByStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, set.Records, 1)
	assert.Equal(t, "Mathematics 101", set.Records[0].CourseID.Name)
	assert.Equal(t, "enrolled", set.Records[0].Status.String())

	empty, err := svc.GetByStudent(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, empty.Records)
}

func TestEnrollStudentAndUpdateStatus(t *testing.T) {
	svc := NewEnrollmentService(NewFixtureRepository[models.Enrollment](enrollmentFixtures()))
	ctx := context.Background()

	id, err := svc.EnrollStudent(ctx, 2, 3, 1)
	require.NoError(t, err)

	set, err := svc.GetByStudent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, set.Records, 1)
	assert.Equal(t, id, set.Records[0].ID)
	assert.Equal(t, "enrolled", set.Records[0].Status.String())
	assert.Equal(t, int64(3), set.Records[0].CourseID.ID)

	ok, err := svc.UpdateStatus(ctx, id, "completed")
	require.NoError(t, err)
	assert.True(t, ok)

	set, err = svc.GetByStudent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, set.Records, 1)
	assert.Equal(t, "completed", set.Records[0].Status.String())
}
