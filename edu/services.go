// Package edu provides the typed entity services of the school
// administration client: students, partners, courses, academic years and
// enrollments. Each service fixes its backend model, field projection and
// domain filter; entities the backend has no schema for are served from
// fixture repositories until it does.
package edu

import (
	"github.com/studioerp/odoo.go"
	"github.com/studioerp/odoo.go/pkg/config"
	"github.com/studioerp/odoo.go/pkg/models"
)

// Services bundles one instance of every entity service over a shared
// client. The fixture/remote split per entity comes from configuration.
type Services struct {
	Students    *StudentService
	Partners    *PartnerService
	Courses     *CourseService
	Years       *AcademicYearService
	Enrollments *EnrollmentService
}

func New(client *odoo.Client, cfg *config.Config) *Services {
	log := cfg.Logger()

	var courseRepo Repository[models.Course]
	if cfg.UseFixture("courses") {
		courseRepo = NewFixtureRepository[models.Course](courseFixtures())
	} else {
		courseRepo = NewRemoteRepository[models.Course](client, ModelCourse, withBase(courseFields), nil, "name asc")
	}

	var yearRepo Repository[models.AcademicYear]
	if cfg.UseFixture("academic_years") {
		yearRepo = NewFixtureRepository[models.AcademicYear](academicYearFixtures())
	} else {
		yearRepo = NewRemoteRepository[models.AcademicYear](client, ModelAcademicYear, withBase(academicYearFields), nil, "start_date desc")
	}

	var enrollmentRepo Repository[models.Enrollment]
	if cfg.UseFixture("enrollments") {
		enrollmentRepo = NewFixtureRepository[models.Enrollment](enrollmentFixtures())
	} else {
		enrollmentRepo = NewRemoteRepository[models.Enrollment](client, ModelEnrollment, withBase(enrollmentFields), nil, "enrollment_date desc")
	}

	return &Services{
		Students: NewStudentService(client,
			WithStudentLogger(log.Component("students")),
			WithRankFields(cfg.HasRankFields),
			WithStudentRefField(cfg.HasStudentRefField),
		),
		Partners:    NewPartnerService(client, cfg.HasRankFields),
		Courses:     NewCourseService(courseRepo),
		Years:       NewAcademicYearService(yearRepo),
		Enrollments: NewEnrollmentService(enrollmentRepo),
	}
}
