package places

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/pkg/errors"
	"github.com/places-microservice/internal/pkg/utils"
	"github.com/places-microservice/internal/usecase/dto"
	"github.com/places-microservice/internal/worker"
)

const defaultRetryDelay = 500 * time.Millisecond

// Searcher - часть PlacesUseCase, которая нужна воркеру
type Searcher interface {
	SearchNearby(ctx context.Context, req dto.NearbyPlacesRequest) (*dto.NearbyPlacesResponse, error)
}

// WarmWorker прогревает снимок кеша по событиям из stream:places:warm
// и отвечает PlacesReadyEvent в stream:places:ready
type WarmWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	searcher   Searcher
	maxRetries int
	retryDelay time.Duration
}

type Option func(*WarmWorker)

// WithRetryDelay задает паузу перед первым повтором; далее она растет линейно
func WithRetryDelay(d time.Duration) Option {
	return func(w *WarmWorker) { w.retryDelay = d }
}

func NewWarmWorker(
	streamRepo repository.StreamRepository,
	searcher Searcher,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
	opts ...Option,
) *WarmWorker {
	if maxRetries < 0 {
		maxRetries = 0
	}
	w := &WarmWorker{
		BaseWorker: worker.NewBaseWorker("places-warm", consumerGroup, logger),
		streamRepo: streamRepo,
		searcher:   searcher,
		maxRetries: maxRetries,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start создает consumer group и обрабатывает сообщения до Stop или отмены ctx
func (w *WarmWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting places warm worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("max_retries", w.maxRetries))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPlacesWarm, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgChan, err := w.streamRepo.ConsumeStream(consumeCtx, domain.StreamPlacesWarm, w.ConsumerGroup(), w.ConsumerName())
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				if ctx.Err() != nil || w.IsStopped() {
					return nil
				}
				return fmt.Errorf("message channel closed")
			}

			if err := w.processMessage(ctx, msg); err != nil {
				// без ACK сообщение остается в PEL группы
				logger.Error("Failed to process message",
					zap.String("message_id", msg.ID),
					zap.Error(err))
				continue
			}

			if err := w.streamRepo.AckMessage(ctx, domain.StreamPlacesWarm, w.ConsumerGroup(), msg.ID); err != nil {
				logger.Error("Failed to acknowledge message",
					zap.String("message_id", msg.ID),
					zap.Error(err))
			}
		}
	}
}

// processMessage возвращает ошибку только если ответ не удалось опубликовать
func (w *WarmWorker) processMessage(ctx context.Context, msg domain.StreamMessage) error {
	logger := w.Logger()

	event, err := parseWarmEvent(msg.Data)
	if err != nil {
		// отвечать некому, сообщение подтверждается и пропускается
		logger.Warn("Skipping malformed warm event",
			zap.String("message_id", msg.ID),
			zap.String("raw_data", msg.Data),
			zap.Error(err))
		return nil
	}

	logger.Info("Warming places snapshot",
		zap.String("request_id", event.RequestID.String()),
		zap.Float64("lat", event.Lat),
		zap.Float64("lon", event.Lon),
		zap.Int("radius_m", event.RadiusMeters),
		zap.Strings("categories", event.Categories))

	ready := domain.PlacesReadyEvent{RequestID: event.RequestID}

	result, err := w.search(ctx, event)
	if err != nil {
		logger.Warn("Warm-up failed",
			zap.String("request_id", event.RequestID.String()),
			zap.Error(err))
		ready.Error = utils.ToAppError(err).Code
	} else {
		ready.Total = result.Total
		ready.Source = result.Source
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamPlacesReady, ready); err != nil {
		return fmt.Errorf("failed to publish ready event: %w", err)
	}
	return nil
}

// search повторяет запрос только при недоступности провайдера
func (w *WarmWorker) search(ctx context.Context, event *domain.PlacesWarmEvent) (*dto.NearbyPlacesResponse, error) {
	req := dto.NearbyPlacesRequest{
		Lat:          &event.Lat,
		Lon:          &event.Lon,
		RadiusMeters: event.RadiusMeters,
		Categories:   event.Categories,
		Provider:     event.Provider,
	}

	var lastErr error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 && !w.Sleep(ctx, time.Duration(attempt)*w.retryDelay) {
			return nil, lastErr
		}

		result, err := w.searcher.SearchNearby(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var unavailable *errors.LocationsUnavailableError
		if !stderrors.As(err, &unavailable) {
			return nil, err
		}
		w.Logger().Debug("Provider unavailable, retrying",
			zap.String("request_id", event.RequestID.String()),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return nil, lastErr
}

func parseWarmEvent(data string) (*domain.PlacesWarmEvent, error) {
	var event domain.PlacesWarmEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.RequestID == uuid.Nil {
		return nil, fmt.Errorf("request_id is required")
	}
	return &event, nil
}
