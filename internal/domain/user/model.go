package user

import "time"

type User struct {
	Login     string
	Password  string // хэш
	CreatedAt time.Time
}

type BaseRequest struct {
	Login    string `json:"login" minLength:"1" maxLength:"50" doc:"Логин пользователя"`
	Password string `json:"password" minLength:"1" maxLength:"72" doc:"Пароль"`
}

// AuthenticateRequest без ограничений длины: любой неверный ввод дает 401, а не 422.
type AuthenticateRequest struct {
	Login    string `json:"login" doc:"Логин пользователя"`
	Password string `json:"password" doc:"Пароль"`
}
