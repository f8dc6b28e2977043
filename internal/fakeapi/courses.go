package fakeapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/campus-archive/internal/utils"
	"github.com/MKhiriev/campus-archive/models"
)

func (b *Backend) courseSummary(c *models.Course) models.CourseSummary {
	s := models.CourseSummary{
		CourseID:   c.CourseID,
		CourseCode: c.CourseCode,
		CourseName: c.CourseName,
		Semester:   c.Semester,
		Year:       c.Year,
	}
	if u, ok := b.users[c.LecturerID]; ok {
		s.LecturerName = u.user.FullName
	}
	return s
}

// courseSummaries must be called with b.mu held.
func (b *Backend) courseSummaries(match func(*models.Course) bool) []models.CourseSummary {
	out := []models.CourseSummary{}
	for _, c := range b.courses {
		if match(c) {
			out = append(out, b.courseSummary(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out
}

func (b *Backend) listCourses(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	out := b.courseSummaries(func(*models.Course) bool { return true })
	b.mu.Unlock()
	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

func (b *Backend) searchCourses(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	b.mu.Lock()
	out := b.courseSummaries(func(c *models.Course) bool {
		return strings.Contains(strings.ToLower(c.CourseCode+" "+c.CourseName), q)
	})
	b.mu.Unlock()
	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

func (b *Backend) createCourse(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user.Role != models.RoleLecturer {
		utils.WriteDetail(w, "Only lecturers can create courses", http.StatusForbidden)
		return
	}

	var body models.CourseCreate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteDetail(w, "Invalid JSON was passed", http.StatusUnprocessableEntity)
		return
	}
	if body.CourseCode == "" {
		writeValidation(w, "course_code", "field required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range b.courses {
		if c.CourseCode == body.CourseCode && c.Semester == body.Semester && c.Year == body.Year {
			utils.WriteDetail(w, "Course already exists for this semester", http.StatusBadRequest)
			return
		}
	}

	now := time.Now().UTC()
	c := &models.Course{
		CourseID:   b.newID(),
		CourseCode: body.CourseCode,
		CourseName: body.CourseName,
		Semester:   body.Semester,
		Year:       body.Year,
		LecturerID: user.UserID,
		CreatedBy:  user.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.courses[c.CourseID] = c

	_, _ = utils.WriteJSON(w, c, http.StatusCreated)
}

// lookupCourse must be called with b.mu held.
func (b *Backend) lookupCourse(w http.ResponseWriter, r *http.Request) (*models.Course, bool) {
	id, ok := pathID(r, "courseID")
	if !ok {
		utils.WriteDetail(w, "Invalid course id", http.StatusUnprocessableEntity)
		return nil, false
	}
	c, ok := b.courses[id]
	if !ok {
		utils.WriteDetail(w, "Course not found", http.StatusNotFound)
		return nil, false
	}
	return c, true
}

func (b *Backend) getCourse(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.lookupCourse(w, r); ok {
		_, _ = utils.WriteJSON(w, c, http.StatusOK)
	}
}

func (b *Backend) updateCourse(w http.ResponseWriter, r *http.Request) {
	var upd models.CourseUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.WriteDetail(w, "Invalid JSON was passed", http.StatusUnprocessableEntity)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.lookupCourse(w, r)
	if !ok {
		return
	}
	if c.LecturerID != currentUser(r).UserID {
		utils.WriteDetail(w, "Only the course lecturer can edit this course", http.StatusForbidden)
		return
	}
	setIf(&c.CourseCode, upd.CourseCode)
	setIf(&c.CourseName, upd.CourseName)
	setIf(&c.Semester, upd.Semester)
	setIf(&c.Year, upd.Year)
	c.UpdatedAt = time.Now().UTC()

	_, _ = utils.WriteJSON(w, c, http.StatusOK)
}

func (b *Backend) deleteCourse(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.lookupCourse(w, r)
	if !ok {
		return
	}
	if c.LecturerID != currentUser(r).UserID {
		utils.WriteDetail(w, "Only the course lecturer can delete this course", http.StatusForbidden)
		return
	}
	delete(b.courses, c.CourseID)
	w.WriteHeader(http.StatusNoContent)
}
