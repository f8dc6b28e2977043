package models

import "time"

// Course is a lecturer-owned course that projects can be associated with.
type Course struct {
	CourseID   int64      `json:"id"`
	CourseCode string     `json:"course_code"`
	CourseName string     `json:"course_name"`
	Semester   string     `json:"semester"`
	Year       int        `json:"year"`
	LecturerID int64      `json:"lecturer_id"`
	CreatedBy  int64      `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Lecturer   *PersonRef `json:"lecturer,omitempty"`
}

// CourseSummary is the compact record returned by course listings.
type CourseSummary struct {
	CourseID     int64  `json:"id"`
	CourseCode   string `json:"course_code"`
	CourseName   string `json:"course_name"`
	Semester     string `json:"semester"`
	Year         int    `json:"year"`
	LecturerName string `json:"lecturer_name,omitempty"`
}

// CourseCreate is the body of POST /courses/. Semester is "Ganjil" or
// "Genap".
type CourseCreate struct {
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	Semester   string `json:"semester"`
	Year       int    `json:"year"`
}

// CourseUpdate is a partial update for PUT /courses/{id}.
type CourseUpdate struct {
	CourseCode *string `json:"course_code,omitempty"`
	CourseName *string `json:"course_name,omitempty"`
	Semester   *string `json:"semester,omitempty"`
	Year       *int    `json:"year,omitempty"`
}
