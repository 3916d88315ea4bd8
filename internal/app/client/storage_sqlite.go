package client

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"iotracker/internal/domain/sensor"
)

// Ключи локальных настроек календаря.
const (
	KeyPastDays   = "past_days"
	KeyFutureDays = "future_days"

	keySessionLogin = "session_login"
	keySessionTime  = "session_time"
)

// SQLiteStorage локальное состояние клиента: сессия и отметки календаря.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS preferences (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Get возвращает "" для отсутствующего ключа.
func (s *SQLiteStorage) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("ошибка чтения %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStorage) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("ошибка записи %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStorage) Delete(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM preferences WHERE key = ?`, key); err != nil {
			return fmt.Errorf("ошибка удаления %s: %w", key, err)
		}
	}
	return nil
}

func (s *SQLiteStorage) SaveSession(sess Session) error {
	if err := s.Set(keySessionLogin, sess.Login); err != nil {
		return err
	}
	return s.Set(keySessionTime, sess.LoggedInAt.UTC().Format(time.RFC3339))
}

// LoadSession возвращает ErrNoSession, если вход не выполнялся.
func (s *SQLiteStorage) LoadSession() (Session, error) {
	login, err := s.Get(keySessionLogin)
	if err != nil {
		return Session{}, err
	}
	if login == "" {
		return Session{}, ErrNoSession
	}

	sess := Session{Login: login}
	if raw, err := s.Get(keySessionTime); err == nil && raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			sess.LoggedInAt = t
		}
	}
	return sess, nil
}

func (s *SQLiteStorage) ClearSession() error {
	return s.Delete(keySessionLogin, keySessionTime)
}

// Days список отмеченных дат по ключу календаря.
func (s *SQLiteStorage) Days(key string) ([]string, error) {
	raw, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	return SplitDays(raw), nil
}

// MarkDay добавляет дату в список, сохраняя порядок и уникальность.
func (s *SQLiteStorage) MarkDay(key string, day time.Time) ([]string, error) {
	days, err := s.Days(key)
	if err != nil {
		return nil, err
	}
	days = append(days, day.Format(sensor.DateLayout))
	joined := JoinDays(days)
	if err := s.Set(key, joined); err != nil {
		return nil, err
	}
	return SplitDays(joined), nil
}

// JoinDays сортирует и склеивает ISO-даты через запятую, без дублей.
func JoinDays(days []string) string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return strings.Join(slices.Compact(out), ",")
}

func SplitDays(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}
