package user

import "iotracker/internal/domain/user"

type registerInput struct {
	Body user.BaseRequest
}

type registerOutput struct {
	Body StatusResponse
}

type authenticateInput struct {
	Body user.AuthenticateRequest
}

type authenticateOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status" example:"Ok"`
}
