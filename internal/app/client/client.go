package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"iotracker/internal/app/client/config"
	"iotracker/internal/domain/sensor"
)

type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	storage    *SQLiteStorage
	now        func() time.Time
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	storage, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}

	return &App{
		config:     cfg,
		log:        log,
		httpClient: NewHTTPClient(cfg, log),
		storage:    storage,
		now:        time.Now,
	}, nil
}

func (a *App) Close() error {
	return a.storage.Close()
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}

func (a *App) Register(ctx context.Context, login, password string) error {
	if err := a.httpClient.Register(ctx, login, password); err != nil {
		return err
	}
	a.log.Info("Пользователь зарегистрирован", "login", login)
	return nil
}

// Login проверяет учетные данные на сервере и сохраняет сессию локально.
func (a *App) Login(ctx context.Context, login, password string) (Session, error) {
	if err := a.httpClient.Authenticate(ctx, login, password); err != nil {
		return Session{}, err
	}

	sess := Session{Login: login, LoggedInAt: a.now()}
	if err := a.storage.SaveSession(sess); err != nil {
		return Session{}, fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return sess, nil
}

func (a *App) Logout() error {
	return a.storage.ClearSession()
}

// Session текущая сохраненная сессия или ErrNoSession.
func (a *App) Session() (Session, error) {
	return a.storage.LoadSession()
}

// Readings загружает показания за неделю или месяц, содержащие date.
// Пустая date означает сегодня.
func (a *App) Readings(ctx context.Context, sess Session, period sensor.Period, date string) ([]Reading, sensor.DateRange, error) {
	if sess.Login == "" {
		return nil, sensor.DateRange{}, ErrNoSession
	}

	day := a.now()
	if date != "" {
		d, err := sensor.ParseDate(date, time.Local)
		if err != nil {
			return nil, sensor.DateRange{}, err
		}
		day = d
	}

	r, err := sensor.RangeFor(period, day)
	if err != nil {
		return nil, sensor.DateRange{}, err
	}

	readings, err := a.httpClient.Readings(ctx, sess.Login, r)
	if err != nil {
		return nil, r, err
	}
	return readings, r, nil
}

// MarkDay отмечает дату в календаре прошедших (past=true) или будущих дней.
func (a *App) MarkDay(date string, past bool) ([]string, error) {
	d, err := sensor.ParseDate(date, time.Local)
	if err != nil {
		return nil, err
	}
	return a.storage.MarkDay(calendarKey(past), d)
}

// Calendar обе отметки календаря.
func (a *App) Calendar() (past, future []string, err error) {
	past, err = a.storage.Days(KeyPastDays)
	if err != nil {
		return nil, nil, err
	}
	future, err = a.storage.Days(KeyFutureDays)
	if err != nil {
		return nil, nil, err
	}
	return past, future, nil
}

func calendarKey(past bool) string {
	if past {
		return KeyPastDays
	}
	return KeyFutureDays
}

// Describe человекочитаемое сообщение для типизированных ошибок.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrServerUnreachable):
		return "Сервер недоступен, проверьте соединение"
	case errors.Is(err, ErrUnauthorized):
		return "Неверный логин или пароль"
	case errors.Is(err, ErrDuplicateLogin):
		return "Пользователь с таким логином уже существует"
	case errors.Is(err, ErrNoSession):
		return "Сначала выполните вход: iotracker auth login"
	case errors.Is(err, sensor.ErrInvalidRange):
		return "Некорректная дата или период: " + err.Error()
	default:
		return err.Error()
	}
}
