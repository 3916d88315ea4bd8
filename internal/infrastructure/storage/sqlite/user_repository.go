package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"iotracker/internal/domain/user"
)

type UserRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewUserRepository(db *sql.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, login, passwordHash string) (user.User, error) {
	createdAt := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (login, password_hash, created_at) VALUES (?, ?, ?)`,
		login, passwordHash, createdAt)
	if err != nil {
		switch extendedCode(err) {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return user.User{}, user.ErrDuplicateLogin
		}
		r.log.Error("failed to create user", "login", login, "error", err)
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	return user.User{Login: login, Password: passwordHash, CreatedAt: createdAt}, nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (user.User, error) {
	var u user.User
	err := r.db.QueryRowContext(ctx,
		`SELECT login, password_hash, created_at FROM users WHERE login = ?`, login).
		Scan(&u.Login, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("find user: %w", err)
	}

	return u, nil
}
