package client

import "errors"

// Ошибки обращения к серверу. Вызывающий код различает их через errors.Is.
var (
	ErrServerUnreachable = errors.New("server unreachable")
	ErrUnauthorized      = errors.New("invalid login or password")
	ErrDuplicateLogin    = errors.New("login already exists")
	ErrUnknown           = errors.New("unexpected server response")

	ErrNoSession = errors.New("not logged in")
)
