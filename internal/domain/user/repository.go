package user

import (
	"context"
)

// Repository хранилище учетных данных. Create обязан возвращать ErrDuplicateLogin
// при нарушении уникальности логина, FindByLogin - ErrNotFound при отсутствии строки.
type Repository interface {
	Create(ctx context.Context, login, passwordHash string) (User, error)
	FindByLogin(ctx context.Context, login string) (User, error)
}
