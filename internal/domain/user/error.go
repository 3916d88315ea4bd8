package user

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateLogin     = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)
