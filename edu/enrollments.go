package edu

import (
	"context"

	"github.com/studioerp/odoo.go/pkg/models"
)

type EnrollmentService struct {
	repo Repository[models.Enrollment]
}

func NewEnrollmentService(repo Repository[models.Enrollment]) *EnrollmentService {
	return &EnrollmentService{repo: repo}
}

func (s *EnrollmentService) GetByStudent(ctx context.Context, studentID int64) (*models.RecordSet[models.Enrollment], error) {
	return s.repo.Find(ctx, models.Query{
		Domain: models.Domain{models.Cond("student_id", "=", studentID)},
	})
}

func (s *EnrollmentService) EnrollStudent(ctx context.Context, studentID, courseID, academicYearID int64) (int64, error) {
	return s.repo.Create(ctx, map[string]any{
		"student_id":       studentID,
		"course_id":        courseID,
		"academic_year_id": academicYearID,
		"status":           "enrolled",
	})
}

func (s *EnrollmentService) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	return s.repo.Update(ctx, id, map[string]any{"status": status})
}
