package client

import "time"

// Session результат успешного входа. Передается командам явно.
type Session struct {
	Login      string
	LoggedInAt time.Time
}

// Reading показание с сервера, Time в миллисекундах Unix.
type Reading struct {
	BPM         int   `json:"bpm"`
	Temperature int   `json:"temperature"`
	Speed       int   `json:"speed"`
	Time        int64 `json:"time"`
}

func (r Reading) Timestamp() time.Time {
	return time.UnixMilli(r.Time)
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// problem тело ошибки huma (RFC 7807).
type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}
