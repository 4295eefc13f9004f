package edu

// Demo datasets for the entities the target backend has no schema for. They
// live behind the same Repository interface as remote data, so they answer
// filtered and paginated queries identically.

func courseFixtures() []map[string]any {
	return []map[string]any{
		{
			"id": int64(1), "name": "Mathematics 101", "code": "MATH101",
			"description": "Basic Mathematics for Grade 1", "credits": 3, "active": true,
			"department_id": []any{1, "Mathematics Department"},
			"instructor_id": []any{1, "John Doe"},
			"academic_year_id": []any{1, "2024-2025"}, "semester": "First Semester",
			"max_students": 30, "enrolled_students": 25,
			"schedule": "MWF 9:00-10:00 AM", "room": "Room 101",
			"prerequisites": "None", "fee_amount": 5000.0,
			"display_name": "Mathematics 101", "create_date": "2024-01-01", "write_date": "2024-01-01",
		},
		{
			"id": int64(2), "name": "English Literature", "code": "ENG201",
			"description": "Introduction to English Literature", "credits": 3, "active": true,
			"department_id": []any{2, "English Department"},
			"instructor_id": []any{2, "Jane Smith"},
			"academic_year_id": []any{1, "2024-2025"}, "semester": "First Semester",
			"max_students": 25, "enrolled_students": 20,
			"schedule": "TTH 10:00-11:30 AM", "room": "Room 205",
			"prerequisites": "Basic English", "fee_amount": 4500.0,
			"display_name": "English Literature", "create_date": "2024-01-01", "write_date": "2024-01-01",
		},
		{
			"id": int64(3), "name": "Science Laboratory", "code": "SCI301",
			"description": "Hands-on Science Experiments", "credits": 4, "active": true,
			"department_id": []any{3, "Science Department"},
			"instructor_id": []any{3, "Dr. Brown"},
			"academic_year_id": []any{1, "2024-2025"}, "semester": "First Semester",
			"max_students": 20, "enrolled_students": 18,
			"schedule": "MW 2:00-4:00 PM", "room": "Science Lab 1",
			"prerequisites": "Basic Science", "fee_amount": 6000.0,
			"display_name": "Science Laboratory", "create_date": "2024-01-01", "write_date": "2024-01-01",
		},
	}
}

func academicYearFixtures() []map[string]any {
	return []map[string]any{
		{
			"id": int64(1), "name": "2024-2025",
			"start_date": "2024-08-01", "end_date": "2025-05-31", "is_current": true,
			"enrollment_start": "2024-06-01", "enrollment_end": "2024-07-31", "active": true,
			"display_name": "2024-2025", "create_date": "2024-01-01", "write_date": "2024-01-01",
		},
		{
			"id": int64(2), "name": "2023-2024",
			"start_date": "2023-08-01", "end_date": "2024-05-31", "is_current": false,
			"enrollment_start": "2023-06-01", "enrollment_end": "2023-07-31", "active": true,
			"display_name": "2023-2024", "create_date": "2023-01-01", "write_date": "2023-01-01",
		},
	}
}

func enrollmentFixtures() []map[string]any {
	return []map[string]any{
		{
			"id":               int64(1),
			"student_id":       []any{1, "John Doe"},
			"course_id":        []any{1, "Mathematics 101"},
			"academic_year_id": []any{1, "2024-2025"},
			"enrollment_date":  "2024-08-15", "status": "enrolled",
			"grade": "A", "credits_earned": 3,
			"display_name": "Enrollment 1", "create_date": "2024-08-15", "write_date": "2024-08-15",
		},
	}
}
