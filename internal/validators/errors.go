package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail        = errors.New("a valid email is required")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrEmptyPassword       = errors.New("password is required")
	ErrInvalidRole         = errors.New("role must be student or dosen")
	ErrEmptyTitle          = errors.New("title is required")
	ErrInvalidYear         = errors.New("invalid year")
	ErrInvalidPrivacyLevel = errors.New("privacy level must be private, advisor, class or public")
	ErrEmptyCourseCode     = errors.New("course code is required")
	ErrEmptyCourseName     = errors.New("course name is required")
	ErrInvalidSemester     = errors.New("semester must be Ganjil or Genap")
	ErrInvalidAction       = errors.New("action must be approve, deny or revoke")
	ErrInvalidID           = errors.New("invalid id")

	ErrNoFiles            = errors.New("no files provided")
	ErrTooManyFiles       = errors.New("too many files")
	ErrFileTooLarge       = errors.New("file too large")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrEmptyFileName      = errors.New("file name is required")
)
