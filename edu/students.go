package edu

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/studioerp/odoo.go"
	"github.com/studioerp/odoo.go/pkg/models"
)

const searchLimit = 20

// StudentFormData is the input of a student registration. Only Name maps to
// a mandatory backend column; the enhanced attributes ride in the comment
// annotation (or, with the student_ref capability, partly in a real column).
type StudentFormData struct {
	Name    string `validate:"required,max=128"`
	Email   string `validate:"omitempty,email"`
	Phone   string `validate:"omitempty,max=32"`
	Address string `validate:"omitempty,max=256"`
	Extra   models.StudentExtra
}

// StudentUpdate carries the only fields the update path patches. The
// enhanced annotation fields are deliberately not updatable here: a partial
// rewrite of the packed comment would drop the segments it does not carry.
type StudentUpdate struct {
	Name       string `validate:"omitempty,max=128"`
	Email      string `validate:"omitempty,email"`
	Phone      string `validate:"omitempty,max=32"`
	StudentRef string `validate:"omitempty,max=64"`
}

// StudentService reads and writes students as individual, customer-flagged
// partner records.
type StudentService struct {
	client *odoo.Client
	log    zerolog.Logger

	hasRankFields      bool
	hasStudentRefField bool

	validate *validator.Validate
	now      func() time.Time
}

type StudentOption func(*StudentService)

func WithStudentLogger(log zerolog.Logger) StudentOption {
	return func(s *StudentService) { s.log = log }
}

// WithRankFields controls whether the customer flag is expressed through the
// customer_rank column or the bare is_company split.
func WithRankFields(on bool) StudentOption {
	return func(s *StudentService) { s.hasRankFields = on }
}

// WithStudentRefField routes the student reference to the backend's
// student_ref column instead of the comment annotation.
func WithStudentRefField(on bool) StudentOption {
	return func(s *StudentService) { s.hasStudentRefField = on }
}

func NewStudentService(client *odoo.Client, opts ...StudentOption) *StudentService {
	s := &StudentService{
		client:        client,
		log:           zerolog.Nop(),
		hasRankFields: true,
		validate:      validator.New(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StudentService) GetAll(ctx context.Context, limit, offset int) (*models.RecordSet[models.Student], error) {
	return odoo.SearchRead[models.Student](ctx, s.client, ModelPartner, models.Query{
		Domain: studentDomain(s.hasRankFields),
		Fields: s.fields(),
		Limit:  limit,
		Offset: offset,
		Order:  "name asc",
	})
}

func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return odoo.GetByID[models.Student](ctx, s.client, ModelPartner, id, s.fields()...)
}

// Create registers a student. The enhanced attributes are packed into the
// comment annotation; when none are supplied the comment records the
// enrollment date so the list view never shows an empty annotation.
func (s *StudentService) Create(ctx context.Context, data StudentFormData) (int64, error) {
	if err := s.validate.Struct(data); err != nil {
		return 0, err
	}
	if err := s.validate.Struct(data.Extra); err != nil {
		return 0, err
	}

	extra := data.Extra
	values := map[string]any{
		"name":       data.Name,
		"is_company": false,
	}
	if s.hasRankFields {
		values["customer_rank"] = 1
	}
	if data.Email != "" {
		values["email"] = data.Email
	}
	if data.Phone != "" {
		values["phone"] = data.Phone
	}
	if extra.GuardianPhone != "" {
		values["mobile"] = extra.GuardianPhone
	}
	if data.Address != "" {
		values["street"] = data.Address
	}
	if s.hasStudentRefField && extra.StudentRef != "" {
		values["student_ref"] = extra.StudentRef
		extra.StudentRef = ""
	}

	comment := models.EncodeAnnotation(extra)
	if comment == "" {
		comment = "Student enrolled on " + s.now().Format("2006-01-02")
	}
	values["comment"] = comment

	id, err := s.client.Create(ctx, ModelPartner, values)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("id", id).Str("name", data.Name).Msg("student created")
	return id, nil
}

// Update patches name, email, phone and the student reference only. See
// StudentUpdate for why the annotation fields stay read-only on this path.
func (s *StudentService) Update(ctx context.Context, id int64, data StudentUpdate) (bool, error) {
	if err := s.validate.Struct(data); err != nil {
		return false, err
	}

	values := map[string]any{}
	if data.Name != "" {
		values["name"] = data.Name
	}
	if data.Email != "" {
		values["email"] = data.Email
	}
	if data.Phone != "" {
		values["phone"] = data.Phone
	}
	if data.StudentRef != "" {
		if s.hasStudentRefField {
			values["student_ref"] = data.StudentRef
		} else {
			values["comment"] = models.EncodeAnnotation(models.StudentExtra{StudentRef: data.StudentRef})
		}
	}
	if len(values) == 0 {
		return true, nil
	}
	return s.client.Update(ctx, ModelPartner, id, values)
}

func (s *StudentService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.client.Delete(ctx, ModelPartner, id)
}

// Search matches the term against name, email or phone within the student
// domain.
func (s *StudentService) Search(ctx context.Context, term string) (*models.RecordSet[models.Student], error) {
	domain := studentDomain(s.hasRankFields)
	domain = append(domain,
		models.Or, models.Or,
		models.Cond("name", "ilike", term),
		models.Cond("email", "ilike", term),
		models.Cond("phone", "ilike", term),
	)
	return odoo.SearchRead[models.Student](ctx, s.client, ModelPartner, models.Query{
		Domain: domain,
		Fields: s.fields(),
		Limit:  searchLimit,
	})
}

func (s *StudentService) fields() []string {
	fields := withBase(studentFields)
	if s.hasStudentRefField {
		fields = append(fields, "student_ref")
	}
	return fields
}
