package models

import "time"

// Role is the account role assigned by the backend at registration.
type Role string

const (
	// RoleStudent can upload projects and request access to others' work.
	RoleStudent Role = "student"
	// RoleLecturer ("dosen") advises projects, owns courses and answers
	// access requests.
	RoleLecturer Role = "dosen"
)

// User is the full account record returned by GET /auth/me and
// POST /auth/register.
type User struct {
	// UserID is the backend identifier of the account.
	UserID int64 `json:"id"`

	// Email is the login identifier.
	Email string `json:"email"`

	// FullName is the display name shown in listings.
	FullName string `json:"full_name,omitempty"`

	// Role is either "student" or "dosen".
	Role Role `json:"role"`

	// StudentID is set for students only. It is one of the sensitive fields
	// and may come back from the backend in encrypted form.
	StudentID string `json:"student_id,omitempty"`

	// Department and Title are set for lecturers only.
	Department string `json:"department,omitempty"`
	Title      string `json:"title,omitempty"`

	// Phone is a sensitive field and may come back in encrypted form.
	Phone string `json:"phone,omitempty"`

	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

// Profile returns the cached subset of u stored alongside the bearer token.
func (u User) Profile() Profile {
	return Profile{
		UserID:   u.UserID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

// UserCreate is the registration payload for POST /auth/register.
type UserCreate struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name,omitempty"`
	Role       Role   `json:"role"`
	StudentID  string `json:"student_id,omitempty"`
	Department string `json:"department,omitempty"`
	Title      string `json:"title,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Credentials is the login payload for POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the cached user-profile record kept in local storage next to
// the bearer token.
type Profile struct {
	UserID   int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     Role   `json:"role"`
}

// DisplayName returns FullName, or Email when no name was provided.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}

// TokenResponse is the body returned by POST /auth/login.
type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        Profile `json:"user"`
}
