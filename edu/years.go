package edu

import (
	"context"

	"github.com/studioerp/odoo.go/pkg/models"
)

// AcademicYearService maintains the single-current-year invariant: at most
// one year carries is_current, whichever store backs it.
type AcademicYearService struct {
	repo Repository[models.AcademicYear]
}

func NewAcademicYearService(repo Repository[models.AcademicYear]) *AcademicYearService {
	return &AcademicYearService{repo: repo}
}

func (s *AcademicYearService) GetAll(ctx context.Context, limit, offset int) (*models.RecordSet[models.AcademicYear], error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *AcademicYearService) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	return s.repo.Get(ctx, id)
}

// GetCurrent returns the current year, or nil when none is marked current.
func (s *AcademicYearService) GetCurrent(ctx context.Context) (*models.AcademicYear, error) {
	set, err := s.repo.Find(ctx, models.Query{
		Domain: models.Domain{models.Cond("is_current", "=", true)},
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(set.Records) == 0 {
		return nil, nil
	}
	return &set.Records[0], nil
}

// Create inserts a year. A year created as current demotes the previous
// current year first, keeping the invariant.
func (s *AcademicYearService) Create(ctx context.Context, values map[string]any) (int64, error) {
	if current, _ := values["is_current"].(bool); current {
		if err := s.demoteCurrent(ctx); err != nil {
			return 0, err
		}
	}
	return s.repo.Create(ctx, values)
}

// SetCurrent marks one year current and demotes whichever was before.
func (s *AcademicYearService) SetCurrent(ctx context.Context, id int64) (bool, error) {
	if err := s.demoteCurrent(ctx); err != nil {
		return false, err
	}
	return s.repo.Update(ctx, id, map[string]any{"is_current": true})
}

func (s *AcademicYearService) demoteCurrent(ctx context.Context) error {
	current, err := s.GetCurrent(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}
	_, err = s.repo.Update(ctx, current.ID, map[string]any{"is_current": false})
	return err
}
