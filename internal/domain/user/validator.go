package user

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	MaxLoginLen = 50
	// bcrypt учитывает только первые 72 байта
	MaxPasswordLen       = 72
	MinStrongPasswordLen = 8
)

// Validator - интерфейс для валидации пользовательских данных
type Validator interface {
	ValidateRegister(login, password string) error
	ValidateLogin(login string) error
	ValidatePassword(password string) error
}

type CredentialsValidator struct {
	strong bool
}

// NewValidator создает валидатор с минимальными требованиями к паролю
func NewValidator() *CredentialsValidator {
	return &CredentialsValidator{}
}

// NewStrongValidator дополнительно требует длину от 8 символов и все классы символов
func NewStrongValidator() *CredentialsValidator {
	return &CredentialsValidator{strong: true}
}

func (v *CredentialsValidator) ValidateRegister(login, password string) error {
	if err := v.ValidateLogin(login); err != nil {
		return fmt.Errorf("login validation failed: %w", err)
	}

	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

// ValidateLogin проверяет форму логина. Регистр не меняется: логины сравниваются точно.
func (v *CredentialsValidator) ValidateLogin(login string) error {
	if login == "" {
		return fmt.Errorf("login must not be empty")
	}

	if len(login) > MaxLoginLen {
		return fmt.Errorf("login must be at most %d bytes", MaxLoginLen)
	}

	if strings.TrimSpace(login) != login {
		return fmt.Errorf("login must not start or end with whitespace")
	}

	for _, r := range login {
		if unicode.IsControl(r) {
			return fmt.Errorf("login must not contain control characters")
		}
	}

	return nil
}

func (v *CredentialsValidator) ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordLen)
	}

	if !v.strong {
		return nil
	}

	if len(password) < MinStrongPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinStrongPasswordLen)
	}

	hasLower := false
	hasUpper := false
	hasDigit := false
	hasSpecial := false

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}
	if !hasSpecial {
		return fmt.Errorf("password must contain at least one special character")
	}

	return nil
}
