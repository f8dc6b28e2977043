package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrNotSignedIn = errors.New("not signed in")
	ErrEmptyToken  = errors.New("backend returned an empty token")

	ErrLoginOnServer    = errors.New("login on server failed")
	ErrRegisterOnServer = errors.New("registration on server failed")
)
