package places_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/pkg/errors"
	"github.com/places-microservice/internal/usecase/dto"
	"github.com/places-microservice/internal/worker/places"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

func (m *MockStreamRepository) LastMessageID(ctx context.Context, stream string) (string, error) {
	args := m.Called(ctx, stream)
	return args.String(0), args.Error(1)
}

func (m *MockStreamRepository) ReadAfter(ctx context.Context, stream, afterID string) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, afterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

// MockSearcher is a mock of Searcher
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) SearchNearby(ctx context.Context, req dto.NearbyPlacesRequest) (*dto.NearbyPlacesResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NearbyPlacesResponse), args.Error(1)
}

const group = "test-group"

type harness struct {
	stream   *MockStreamRepository
	searcher *MockSearcher
	worker   *places.WarmWorker
	messages chan domain.StreamMessage
}

func newHarness(maxRetries int) *harness {
	h := &harness{
		stream:   &MockStreamRepository{},
		searcher: &MockSearcher{},
		messages: make(chan domain.StreamMessage, 4),
	}
	h.worker = places.NewWarmWorker(h.stream, h.searcher, group, maxRetries, zap.NewNop(),
		places.WithRetryDelay(time.Millisecond))

	h.stream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlacesWarm, group).Return(nil)
	h.stream.On("ConsumeStream", mock.Anything, domain.StreamPlacesWarm, group, mock.AnythingOfType("string")).
		Return((<-chan domain.StreamMessage)(h.messages), nil)
	return h
}

// run запускает воркер и возвращает функцию, которая останавливает его и ждет выхода
func (h *harness) run(t *testing.T) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.worker.Start(ctx) }()

	return func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not stop")
		}
	}
}

func warmMessage(t *testing.T, id uuid.UUID) domain.StreamMessage {
	t.Helper()
	return domain.StreamMessage{
		ID:   "1-0",
		Data: `{"request_id":"` + id.String() + `","lat":37.7749,"lon":-122.4194,"radius_m":1000,"categories":["cafe"]}`,
	}
}

func readyEvent(id uuid.UUID, match func(domain.PlacesReadyEvent) bool) interface{} {
	return mock.MatchedBy(func(e domain.PlacesReadyEvent) bool {
		return e.RequestID == id && match(e)
	})
}

func TestWarmWorker_NameAndStop(t *testing.T) {
	h := newHarness(3)

	assert.Equal(t, "places-warm", h.worker.Name())
	assert.NotEmpty(t, h.worker.ConsumerName())
	assert.NoError(t, h.worker.Stop())
	assert.NoError(t, h.worker.Stop())
	assert.True(t, h.worker.IsStopped())
}

func TestWarmWorker_PublishesReadyEvent(t *testing.T) {
	h := newHarness(3)
	id := uuid.New()
	acked := make(chan struct{})

	h.searcher.On("SearchNearby", mock.Anything, mock.MatchedBy(func(req dto.NearbyPlacesRequest) bool {
		return *req.Lat == 37.7749 && req.RadiusMeters == 1000 && len(req.Categories) == 1
	})).Return(&dto.NearbyPlacesResponse{Total: 2, Source: "network"}, nil).Once()
	h.stream.On("PublishToStream", mock.Anything, domain.StreamPlacesReady, readyEvent(id, func(e domain.PlacesReadyEvent) bool {
		return e.Total == 2 && e.Source == "network" && e.Error == ""
	})).Return(nil).Once()
	h.stream.On("AckMessage", mock.Anything, domain.StreamPlacesWarm, group, "1-0").
		Run(func(mock.Arguments) { close(acked) }).Return(nil).Once()

	stop := h.run(t)
	h.messages <- warmMessage(t, id)

	select {
	case <-acked:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not acknowledged")
	}
	stop()

	h.searcher.AssertExpectations(t)
	h.stream.AssertExpectations(t)
}

func TestWarmWorker_MalformedMessageIsAcked(t *testing.T) {
	h := newHarness(3)
	acked := make(chan struct{}, 2)

	h.stream.On("AckMessage", mock.Anything, domain.StreamPlacesWarm, group, mock.Anything).
		Run(func(mock.Arguments) { acked <- struct{}{} }).Return(nil)

	stop := h.run(t)
	h.messages <- domain.StreamMessage{ID: "1-0", Data: "{not json"}
	h.messages <- domain.StreamMessage{ID: "2-0", Data: `{"lat":1,"lon":1}`}

	for i := 0; i < 2; i++ {
		select {
		case <-acked:
		case <-time.After(2 * time.Second):
			t.Fatal("malformed message was not acknowledged")
		}
	}
	stop()

	h.searcher.AssertNotCalled(t, "SearchNearby", mock.Anything, mock.Anything)
	h.stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
}

func TestWarmWorker_RetriesUnavailableProvider(t *testing.T) {
	h := newHarness(3)
	id := uuid.New()
	acked := make(chan struct{})
	unavailable := &errors.LocationsUnavailableError{Err: assert.AnError}

	h.searcher.On("SearchNearby", mock.Anything, mock.Anything).Return(nil, unavailable).Twice()
	h.searcher.On("SearchNearby", mock.Anything, mock.Anything).
		Return(&dto.NearbyPlacesResponse{Total: 1, Source: "network"}, nil).Once()
	h.stream.On("PublishToStream", mock.Anything, domain.StreamPlacesReady, readyEvent(id, func(e domain.PlacesReadyEvent) bool {
		return e.Total == 1 && e.Error == ""
	})).Return(nil).Once()
	h.stream.On("AckMessage", mock.Anything, domain.StreamPlacesWarm, group, "1-0").
		Run(func(mock.Arguments) { close(acked) }).Return(nil).Once()

	stop := h.run(t)
	h.messages <- warmMessage(t, id)

	select {
	case <-acked:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not acknowledged")
	}
	stop()

	h.searcher.AssertNumberOfCalls(t, "SearchNearby", 3)
	h.stream.AssertExpectations(t)
}

func TestWarmWorker_ReportsFailure(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		calls int
		code  string
	}{
		{
			name:  "retries exhausted",
			err:   &errors.LocationsUnavailableError{Err: assert.AnError},
			calls: 3,
			code:  "LOCATIONS_UNAVAILABLE",
		},
		{
			name:  "invalid request is not retried",
			err:   errors.ErrInvalidRadius,
			calls: 1,
			code:  "INVALID_RADIUS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(2)
			id := uuid.New()
			acked := make(chan struct{})

			h.searcher.On("SearchNearby", mock.Anything, mock.Anything).Return(nil, tt.err)
			h.stream.On("PublishToStream", mock.Anything, domain.StreamPlacesReady, readyEvent(id, func(e domain.PlacesReadyEvent) bool {
				return e.Error == tt.code && e.Total == 0
			})).Return(nil).Once()
			h.stream.On("AckMessage", mock.Anything, domain.StreamPlacesWarm, group, "1-0").
				Run(func(mock.Arguments) { close(acked) }).Return(nil).Once()

			stop := h.run(t)
			h.messages <- warmMessage(t, id)

			select {
			case <-acked:
			case <-time.After(2 * time.Second):
				t.Fatal("message was not acknowledged")
			}
			stop()

			h.searcher.AssertNumberOfCalls(t, "SearchNearby", tt.calls)
			h.stream.AssertExpectations(t)
		})
	}
}

func TestWarmWorker_PublishFailureSkipsAck(t *testing.T) {
	h := newHarness(0)
	id := uuid.New()
	published := make(chan struct{})

	h.searcher.On("SearchNearby", mock.Anything, mock.Anything).
		Return(&dto.NearbyPlacesResponse{Total: 1, Source: "cache"}, nil)
	h.stream.On("PublishToStream", mock.Anything, domain.StreamPlacesReady, mock.Anything).
		Run(func(mock.Arguments) { close(published) }).Return(assert.AnError).Once()

	stop := h.run(t)
	h.messages <- warmMessage(t, id)

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("ready event was not published")
	}
	stop()

	h.stream.AssertNotCalled(t, "AckMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWarmWorker_ContextCancellation(t *testing.T) {
	h := newHarness(3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.worker.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}

func TestWarmWorker_ConsumerGroupFailure(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlacesWarm, group).Return(assert.AnError)

	w := places.NewWarmWorker(stream, &MockSearcher{}, group, 1, zap.NewNop())
	err := w.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
