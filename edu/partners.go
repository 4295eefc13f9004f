package edu

import (
	"context"

	"github.com/studioerp/odoo.go"
	"github.com/studioerp/odoo.go/pkg/models"
)

// PartnerService reads and writes plain partner records. Customers and
// suppliers are the same model split by domain only.
type PartnerService struct {
	client        *odoo.Client
	hasRankFields bool
}

func NewPartnerService(client *odoo.Client, hasRankFields bool) *PartnerService {
	return &PartnerService{client: client, hasRankFields: hasRankFields}
}

func (s *PartnerService) GetCustomers(ctx context.Context, limit, offset int) (*models.RecordSet[models.Partner], error) {
	return s.list(ctx, customerDomain(s.hasRankFields), limit, offset)
}

func (s *PartnerService) GetSuppliers(ctx context.Context, limit, offset int) (*models.RecordSet[models.Partner], error) {
	return s.list(ctx, supplierDomain(s.hasRankFields), limit, offset)
}

func (s *PartnerService) list(ctx context.Context, domain models.Domain, limit, offset int) (*models.RecordSet[models.Partner], error) {
	return odoo.SearchRead[models.Partner](ctx, s.client, ModelPartner, models.Query{
		Domain: domain,
		Fields: withBase(partnerFields),
		Limit:  limit,
		Offset: offset,
		Order:  "name asc",
	})
}

// GetByID widens the projection with the address and tax detail fields the
// detail view shows.
func (s *PartnerService) GetByID(ctx context.Context, id int64) (*models.Partner, error) {
	fields := withBase(partnerFields)
	fields = append(fields, partnerDetailFields...)
	return odoo.GetByID[models.Partner](ctx, s.client, ModelPartner, id, fields...)
}

func (s *PartnerService) Create(ctx context.Context, values map[string]any) (int64, error) {
	return s.client.Create(ctx, ModelPartner, values)
}

func (s *PartnerService) Update(ctx context.Context, id int64, values map[string]any) (bool, error) {
	return s.client.Update(ctx, ModelPartner, id, values)
}

func (s *PartnerService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.client.Delete(ctx, ModelPartner, id)
}
