package edu

import (
	"context"

	"github.com/studioerp/odoo.go/pkg/models"
)

type CourseService struct {
	repo Repository[models.Course]
}

func NewCourseService(repo Repository[models.Course]) *CourseService {
	return &CourseService{repo: repo}
}

func (s *CourseService) GetAll(ctx context.Context, limit, offset int) (*models.RecordSet[models.Course], error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *CourseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.repo.Get(ctx, id)
}

func (s *CourseService) Create(ctx context.Context, values map[string]any) (int64, error) {
	return s.repo.Create(ctx, values)
}

func (s *CourseService) Update(ctx context.Context, id int64, values map[string]any) (bool, error) {
	return s.repo.Update(ctx, id, values)
}

func (s *CourseService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
