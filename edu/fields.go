package edu

import "github.com/studioerp/odoo.go/pkg/models"

// Backend model names. Students live on the partner model with a narrower
// domain; the ERP has no student schema of its own.
const (
	ModelPartner      = "res.partner"
	ModelCourse       = "product.template"
	ModelAcademicYear = "school.academic.year"
	ModelEnrollment   = "school.enrollment"
)

// Field projections per entity. An empty projection would mean "all fields";
// these keep list payloads bounded.
var (
	baseFields = []string{"id", "display_name", "create_date", "write_date"}

	partnerFields = []string{
		"name", "email", "phone", "mobile", "is_company", "active", "comment",
	}

	partnerDetailFields = []string{"street", "city", "country_id", "vat"}

	studentFields = []string{
		"name", "email", "phone", "comment", "active",
		"mobile", "street", "city", "country_id", "category_id",
	}

	courseFields = []string{
		"name", "active", "code", "description", "credits",
		"department_id", "instructor_id", "academic_year_id", "semester",
		"max_students", "enrolled_students", "schedule", "room",
		"prerequisites", "fee_amount",
	}

	academicYearFields = []string{
		"name", "start_date", "end_date", "is_current",
		"enrollment_start", "enrollment_end", "active",
	}

	enrollmentFields = []string{
		"student_id", "course_id", "academic_year_id",
		"enrollment_date", "status", "grade", "credits_earned",
	}
)

func withBase(fields []string) []string {
	out := make([]string, 0, len(baseFields)+len(fields))
	out = append(out, baseFields...)
	out = append(out, fields...)
	return out
}

// Individual (non-company) partner filter; the customer side additionally
// requires a positive customer rank when the backend carries rank fields.
func studentDomain(hasRankFields bool) models.Domain {
	d := models.Domain{models.Cond("is_company", "=", false)}
	if hasRankFields {
		d = append(d, models.Cond("customer_rank", ">", 0))
	}
	return d
}

func customerDomain(hasRankFields bool) models.Domain {
	if hasRankFields {
		return models.Domain{models.Cond("customer_rank", ">", 0)}
	}
	return models.Domain{models.Cond("is_company", "=", false)}
}

func supplierDomain(hasRankFields bool) models.Domain {
	if hasRankFields {
		return models.Domain{models.Cond("supplier_rank", ">", 0)}
	}
	return models.Domain{models.Cond("is_company", "=", true)}
}
