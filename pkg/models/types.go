package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

// RecordSet is the result of any list query. TotalCount is the count of all
// matching records server-side and may exceed len(Records) when the query
// was limited; callers use it to build pagination.
type RecordSet[T any] struct {
	Records    []T `json:"records"`
	TotalCount int `json:"length"`
}

// Many2One is the backend's relational reference: the wire value is either
// the pair [id, display_name] or false when unset.
type Many2One struct {
	ID   int64
	Name string
}

func (m *Many2One) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case bool, nil:
		*m = Many2One{}
		return nil
	case float64:
		// writes carry the bare id; reads normally answer the pair
		*m = Many2One{ID: int64(val)}
		return nil
	case []any:
		if len(val) != 2 {
			return fmt.Errorf("many2one: expected [id, name], got %d elements", len(val))
		}
		id, ok := val[0].(float64)
		if !ok {
			return fmt.Errorf("many2one: non-numeric id %v", val[0])
		}
		name, _ := val[1].(string)
		*m = Many2One{ID: int64(id), Name: name}
		return nil
	}
	return fmt.Errorf("many2one: unexpected value %s", data)
}

func (m Many2One) MarshalJSON() ([]byte, error) {
	if m.ID == 0 {
		return []byte("false"), nil
	}
	return json.Marshal([]any{m.ID, m.Name})
}

func (m Many2One) IsZero() bool {
	return m.ID == 0
}

// Text is a string field as the backend serializes it: false when empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case bool, nil:
		*t = ""
		return nil
	case string:
		*t = Text(val)
		return nil
	}
	return fmt.Errorf("text: unexpected value %s", data)
}

func (t Text) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("false"), nil
	}
	return json.Marshal(string(t))
}

func (t Text) String() string {
	return string(t)
}

// GenericRecord is the projection every entity shares. The id is assigned by
// the backend on create and immutable afterwards.
type GenericRecord struct {
	ID          int64 `json:"id"`
	DisplayName Text  `json:"display_name,omitempty"`
	CreatedAt   Text  `json:"create_date,omitempty"`
	UpdatedAt   Text  `json:"write_date,omitempty"`
}

// Partner is a row of the backend's contact model, used both for plain
// customer/supplier listings and, with a narrower domain, for students.
type Partner struct {
	GenericRecord
	Name         Text     `json:"name"`
	Email        Text     `json:"email,omitempty"`
	Phone        Text     `json:"phone,omitempty"`
	Mobile       Text     `json:"mobile,omitempty"`
	Street       Text     `json:"street,omitempty"`
	City         Text     `json:"city,omitempty"`
	CountryID    Many2One `json:"country_id,omitempty"`
	VAT          Text     `json:"vat,omitempty"`
	IsCompany    bool     `json:"is_company"`
	CustomerRank int      `json:"customer_rank,omitempty"`
	SupplierRank int      `json:"supplier_rank,omitempty"`
	Active       bool     `json:"active,omitempty"`
	Comment      Text     `json:"comment,omitempty"`
}

// Student is a partner restricted to the individual/customer domain. The
// enhanced attributes (guardian, birth date, grade, ...) are not first-class
// backend fields; they ride in Comment, see annotation.go.
type Student struct {
	Partner
	CategoryID []int64 `json:"category_id,omitempty"`
	// StudentRef is only populated when the backend carries the optional
	// student_ref column; otherwise the reference lives in the annotation.
	StudentRef Text `json:"student_ref,omitempty"`
}

// Extra decodes the enhanced attributes packed into the comment annotation.
func (s *Student) Extra() StudentExtra {
	extra := DecodeAnnotation(string(s.Comment))
	if extra.StudentRef == "" {
		extra.StudentRef = string(s.StudentRef)
	}
	return extra
}

type Course struct {
	GenericRecord
	Name             Text     `json:"name"`
	Code             Text     `json:"code,omitempty"`
	Description      Text     `json:"description,omitempty"`
	Credits          int      `json:"credits,omitempty"`
	Active           bool     `json:"active,omitempty"`
	DepartmentID     Many2One `json:"department_id,omitempty"`
	InstructorID     Many2One `json:"instructor_id,omitempty"`
	AcademicYearID   Many2One `json:"academic_year_id,omitempty"`
	Semester         Text     `json:"semester,omitempty"`
	MaxStudents      int      `json:"max_students,omitempty"`
	EnrolledStudents int      `json:"enrolled_students,omitempty"`
	Schedule         Text     `json:"schedule,omitempty"`
	Room             Text     `json:"room,omitempty"`
	Prerequisites    Text     `json:"prerequisites,omitempty"`
	FeeAmount        float64  `json:"fee_amount,omitempty"`
}

type AcademicYear struct {
	GenericRecord
	Name            Text `json:"name"`
	StartDate       Text `json:"start_date,omitempty"`
	EndDate         Text `json:"end_date,omitempty"`
	IsCurrent       bool `json:"is_current"`
	EnrollmentStart Text `json:"enrollment_start,omitempty"`
	EnrollmentEnd   Text `json:"enrollment_end,omitempty"`
	Active          bool `json:"active,omitempty"`
}

type Enrollment struct {
	GenericRecord
	StudentID      Many2One `json:"student_id"`
	CourseID       Many2One `json:"course_id"`
	AcademicYearID Many2One `json:"academic_year_id,omitempty"`
	EnrollmentDate Text     `json:"enrollment_date,omitempty"`
	Status         Text     `json:"status,omitempty"`
	Grade          Text     `json:"grade,omitempty"`
	CreditsEarned  int      `json:"credits_earned,omitempty"`
}
