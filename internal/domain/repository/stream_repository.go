package repository

import (
	"context"

	"github.com/places-microservice/internal/domain"
)

// StreamRepository - стримы прогрева кеша (stream:places:warm -> stream:places:ready).
// Полезная нагрузка сообщения - JSON в поле "data".
type StreamRepository interface {
	// CreateConsumerGroup создает группу, существующая группа не ошибка
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream отдает новые сообщения группы; канал закрывается при отмене ctx
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	AckMessage(ctx context.Context, stream, group, messageID string) error

	PublishToStream(ctx context.Context, stream string, data interface{}) error

	// LastMessageID - id последнего сообщения стрима, "0-0" для пустого
	LastMessageID(ctx context.Context, stream string) (string, error)

	// ReadAfter читает без группы сообщения после afterID, ожидая не дольше
	// таймаута блокировки. Пустой результат без ошибки - новых сообщений нет.
	ReadAfter(ctx context.Context, stream, afterID string) ([]domain.StreamMessage, error)
}
