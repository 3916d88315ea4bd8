package sensor

import "context"

type Repository interface {
	// Create добавляет запись и возвращает её id. Если владелец не зарегистрирован - ErrUnknownOwner.
	Create(ctx context.Context, rec *Record) (int64, error)
	// ListByUser возвращает все записи пользователя по возрастанию времени, без фильтрации.
	ListByUser(ctx context.Context, login string) ([]Record, error)
}
