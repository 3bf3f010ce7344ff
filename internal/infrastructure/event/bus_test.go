package event

import (
	"context"
	"errors"
	"testing"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	if h.fail {
		return errors.New("handler failure")
	}
	h.received = append(h.received, event)
	return nil
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newTestEvent(eventType string) *shared.BaseDomainEvent {
	event := shared.NewBaseDomainEvent(eventType, "test_aggregate", shared.NewBaseEntity().ID)
	return &event
}

func TestInMemoryBus_PublishDispatchesToSubscribers(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"gift_card.sold"}}
	bus.Subscribe(handler)

	event := newTestEvent("gift_card.sold")
	err := bus.Publish(context.Background(), event)

	assert.NoError(t, err)
	assert.Len(t, handler.received, 1)
}

func TestInMemoryBus_PublishSkipsUnrelatedTypes(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"gift_card.sold"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("invoice.issued"))

	assert.NoError(t, err)
	assert.Empty(t, handler.received)
}

func TestInMemoryBus_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"gift_card.sold"}, fail: true}
	healthy := &recordingHandler{types: []string{"gift_card.sold"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("gift_card.sold"))

	assert.NoError(t, err)
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryBus_PanickingHandlerIsRecovered(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())
	panicking := &recordingHandler{types: []string{"gift_card.sold"}, panics: true}
	healthy := &recordingHandler{types: []string{"gift_card.sold"}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	assert.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent("gift_card.sold"))
	})
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryBus_SubscribeWithExplicitTypes(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler, "invoice.issued")

	_ = bus.Publish(context.Background(), newTestEvent("invoice.issued"))

	assert.Len(t, handler.received, 1)
}
