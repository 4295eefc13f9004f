package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studioerp/odoo.go/pkg/models"
)

func TestEncodeAnnotationOmitsAbsentFields(t *testing.T) {
	extra := models.StudentExtra{
		GuardianName:  "Ana Cruz",
		GuardianPhone: "0917",
		BirthDate:     "2010-05-01",
	}

	encoded := models.EncodeAnnotation(extra)
	assert.Equal(t, "Guardian: Ana Cruz | Guardian Phone: 0917 | Birth Date: 2010-05-01", encoded)
	assert.NotContains(t, encoded, "Guardian Email")
}

func TestAnnotationRoundTrip(t *testing.T) {
	extra := models.StudentExtra{
		GuardianName:  "Ana Cruz",
		GuardianPhone: "0917",
		BirthDate:     "2010-05-01",
	}

	decoded := models.DecodeAnnotation(models.EncodeAnnotation(extra))
	require.Equal(t, extra, decoded)
	assert.Empty(t, decoded.GuardianEmail)
}

func TestAnnotationRoundTripAllFields(t *testing.T) {
	extra := models.StudentExtra{
		StudentRef:       "STU-0042",
		GradeLevel:       "Grade 5",
		Section:          "Sampaguita",
		GuardianName:     "Ana Cruz",
		GuardianPhone:    "0917",
		GuardianEmail:    "ana@example.com",
		BirthDate:        "2010-05-01",
		EmergencyContact: "Ben Cruz 0918",
		EnrollmentDate:   "2024-08-15",
	}

	require.Equal(t, extra, models.DecodeAnnotation(models.EncodeAnnotation(extra)))
}

func TestDecodeAnnotationMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"no separator":     "just some free text a user typed",
		"dangling segment": "Guardian: Ana Cruz | garbage | Grade:",
		"unknown keys":     "Favourite Colour: blue | Guardian: Ana Cruz",
		"empty values":     "Guardian:  | Grade: ",
	}

	for name, comment := range cases {
		t.Run(name, func(t *testing.T) {
			extra := models.DecodeAnnotation(comment)
			// whatever else happens, the parse must not fail and must not
			// invent values for empty or malformed segments
			assert.Empty(t, extra.GradeLevel)
			assert.Empty(t, extra.GuardianEmail)
		})
	}

	decoded := models.DecodeAnnotation("Guardian: Ana Cruz | garbage | Grade:")
	assert.Equal(t, "Ana Cruz", decoded.GuardianName)
	assert.Empty(t, decoded.GradeLevel)
}

func TestStudentExtraFromComment(t *testing.T) {
	s := models.Student{}
	s.Comment = "Student ID: STU-7 | Guardian: Ana Cruz"
	extra := s.Extra()
	assert.Equal(t, "STU-7", extra.StudentRef)
	assert.Equal(t, "Ana Cruz", extra.GuardianName)
}

func TestStudentExtraPrefersAnnotationRef(t *testing.T) {
	s := models.Student{StudentRef: "COL-1"}
	s.Comment = "Student ID: ANN-1"
	assert.Equal(t, "ANN-1", s.Extra().StudentRef)

	s.Comment = ""
	assert.Equal(t, "COL-1", s.Extra().StudentRef)
}
