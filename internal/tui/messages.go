package tui

import "github.com/MKhiriev/campus-archive/models"

// LoginResult is produced by the login command once the backend answers.
type LoginResult struct {
	Session models.Session
	Err     error
}
