package models

// ProjectSearch is the structured body of POST /search/advanced.
type ProjectSearch struct {
	Query        string        `json:"query,omitempty"`
	Year         int           `json:"year,omitempty"`
	Tag          string        `json:"tag,omitempty"`
	PrivacyLevel PrivacyLevel  `json:"privacy_level,omitempty"`
	Status       ProjectStatus `json:"status,omitempty"`
	UploaderID   int64         `json:"uploader_id,omitempty"`
	AdvisorID    int64         `json:"advisor_id,omitempty"`
	Skip         int           `json:"skip"`
	Limit        int           `json:"limit"`
}

// TagCount is a tag with the number of accessible projects carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SearchSuggestions is returned by GET /search/suggestions.
type SearchSuggestions struct {
	Titles  []string `json:"titles"`
	Authors []string `json:"authors"`
	Tags    []string `json:"tags"`
	Courses []string `json:"courses"`
}

// SearchFilters lists the filter values available for search.
type SearchFilters struct {
	Years       []int      `json:"years"`
	Tags        []TagCount `json:"tags"`
	Semesters   []string   `json:"semesters"`
	CourseCodes []string   `json:"course_codes"`
	ClassNames  []string   `json:"class_names"`
}
