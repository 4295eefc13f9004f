package models

import "strings"

// The backend schema has no columns for guardian or enrollment details, so
// they are packed into the partner comment field as "Key: value" segments
// joined by " | ". This codec is the single place that dialect lives; once
// the backend grows real columns it can be dropped without touching callers.

const annotationSeparator = " | "

// Annotation keys, in the order segments are written.
const (
	keyStudentRef       = "Student ID"
	keyGradeLevel       = "Grade"
	keySection          = "Section"
	keyGuardianName     = "Guardian"
	keyGuardianPhone    = "Guardian Phone"
	keyGuardianEmail    = "Guardian Email"
	keyBirthDate        = "Birth Date"
	keyEmergencyContact = "Emergency"
	keyEnrollmentDate   = "Enrolled"
)

// StudentExtra holds the enhanced student attributes that round-trip through
// the comment annotation. All fields are optional.
type StudentExtra struct {
	StudentRef       string `validate:"omitempty,max=64"`
	GradeLevel       string `validate:"omitempty,max=64"`
	Section          string `validate:"omitempty,max=64"`
	GuardianName     string `validate:"omitempty,max=128"`
	GuardianPhone    string `validate:"omitempty,max=32"`
	GuardianEmail    string `validate:"omitempty,email"`
	BirthDate        string `validate:"omitempty,datetime=2006-01-02"`
	EmergencyContact string `validate:"omitempty,max=128"`
	EnrollmentDate   string `validate:"omitempty,datetime=2006-01-02"`
}

func (e StudentExtra) IsZero() bool {
	return e == StudentExtra{}
}

// EncodeAnnotation serializes the populated fields of extra. Absent fields
// produce no segment at all, so decoding never sees empty values.
func EncodeAnnotation(extra StudentExtra) string {
	pairs := []struct{ key, value string }{
		{keyStudentRef, extra.StudentRef},
		{keyGradeLevel, extra.GradeLevel},
		{keySection, extra.Section},
		{keyGuardianName, extra.GuardianName},
		{keyGuardianPhone, extra.GuardianPhone},
		{keyGuardianEmail, extra.GuardianEmail},
		{keyBirthDate, extra.BirthDate},
		{keyEmergencyContact, extra.EmergencyContact},
		{keyEnrollmentDate, extra.EnrollmentDate},
	}

	segments := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		segments = append(segments, p.key+": "+p.value)
	}
	return strings.Join(segments, annotationSeparator)
}

// DecodeAnnotation parses a comment back into StudentExtra. The parse is
// lossy-tolerant: unknown keys and malformed segments are skipped, and a
// missing key simply leaves its field empty. It never fails.
func DecodeAnnotation(comment string) StudentExtra {
	var extra StudentExtra
	if comment == "" {
		return extra
	}

	for _, segment := range strings.Split(comment, annotationSeparator) {
		key, value, ok := strings.Cut(segment, ": ")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch key {
		case keyStudentRef:
			extra.StudentRef = value
		case keyGradeLevel:
			extra.GradeLevel = value
		case keySection:
			extra.Section = value
		case keyGuardianName:
			extra.GuardianName = value
		case keyGuardianPhone:
			extra.GuardianPhone = value
		case keyGuardianEmail:
			extra.GuardianEmail = value
		case keyBirthDate:
			extra.BirthDate = value
		case keyEmergencyContact:
			extra.EmergencyContact = value
		case keyEnrollmentDate:
			extra.EnrollmentDate = value
		}
	}
	return extra
}
