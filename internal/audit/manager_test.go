package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/kafka"
)

type recordingProducer struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	topics []string
	calls  int
	err    error
}

func (p *recordingProducer) SendMessages(_ context.Context, topic string, msgs ...kafka.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.msgs = append(p.msgs, msgs...)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func (p *recordingProducer) sent() []kafka.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]kafka.Message, len(p.msgs))
	copy(out, p.msgs)
	return out
}

func (p *recordingProducer) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func entry(id string) Entry {
	return Entry{
		Timestamp:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Handler:    "update_booking_status",
		Method:     "PATCH",
		Path:       "/api/bookings/" + id + "/status",
		StatusCode: 200,
		EntityType: "booking",
		EntityID:   id,
		OldStatus:  "pending",
		NewStatus:  "confirmed",
	}
}

func TestManager_FlushesFullBatches(t *testing.T) {
	producer := &recordingProducer{}
	m := NewManager(producer, "audit_logs", 2, 2, time.Hour, zap.NewNop())
	m.Start(context.Background())
	defer m.Shutdown(context.Background())

	for i := 0; i < 4; i++ {
		m.LogEntry(entry(fmt.Sprintf("b-%d", i)))
	}

	assert.Eventually(t, func() bool { return len(producer.sent()) == 4 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return m.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestManager_FlushesOnTimeout(t *testing.T) {
	producer := &recordingProducer{}
	m := NewManager(producer, "audit_logs", 1, 10, 20*time.Millisecond, zap.NewNop())
	m.Start(context.Background())
	defer m.Shutdown(context.Background())

	m.LogEntry(entry("b-1"))

	require.Eventually(t, func() bool { return len(producer.sent()) == 1 }, time.Second, 5*time.Millisecond)

	msg := producer.sent()[0]
	assert.Equal(t, "b-1", string(msg.Key))

	var got Entry
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, entry("b-1"), got)
	assert.Equal(t, []string{"audit_logs"}, producer.topics)
}

func TestManager_ShutdownDrainsQueue(t *testing.T) {
	producer := &recordingProducer{}
	m := NewManager(producer, "audit_logs", 2, 10, time.Hour, zap.NewNop())
	m.Start(context.Background())

	for i := 0; i < 3; i++ {
		m.LogEntry(entry(fmt.Sprintf("b-%d", i)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.Shutdown(ctx)

	assert.Len(t, producer.sent(), 3)
	assert.Zero(t, m.Pending())
}

func TestManager_KeyFallsBackToPath(t *testing.T) {
	producer := &recordingProducer{}
	m := NewManager(producer, "audit_logs", 1, 1, time.Hour, zap.NewNop())
	m.Start(context.Background())

	e := entry("")
	e.Path = "/api/bookings"
	m.LogEntry(e)
	m.Shutdown(context.Background())

	require.Len(t, producer.sent(), 1)
	assert.Equal(t, "/api/bookings", string(producer.sent()[0].Key))
}

func TestManager_PublishFailureLogsEntries(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	producer := &recordingProducer{err: errors.New("broker unavailable")}
	m := NewManager(producer, "audit_logs", 1, 2, time.Hour, zap.New(core))
	m.Start(context.Background())

	m.LogEntry(entry("b-1"))
	m.LogEntry(entry("b-2"))
	m.Shutdown(context.Background())

	assert.Equal(t, 1, producer.callCount())
	direct := logs.FilterMessage("Audit entry logged directly").All()
	require.Len(t, direct, 2)
	assert.Equal(t, "publish failed", direct[0].ContextMap()["reason"])
	assert.Zero(t, m.Pending())
}

func TestManager_LogAfterShutdown(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	producer := &recordingProducer{}
	m := NewManager(producer, "audit_logs", 1, 1, time.Hour, zap.New(core))
	m.Start(context.Background())
	m.Shutdown(context.Background())

	m.LogEntry(entry("late"))

	direct := logs.FilterMessage("Audit entry logged directly").All()
	require.Len(t, direct, 1)
	assert.Equal(t, "manager stopped", direct[0].ContextMap()["reason"])
	assert.Equal(t, "late", direct[0].ContextMap()["entity_id"])
	assert.Empty(t, producer.sent())
}

func TestManager_QueueFull(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := NewManager(&recordingProducer{}, "audit_logs", 1, 1, time.Hour, zap.New(core))

	// not started, so nothing consumes the queue
	capacity := cap(m.inputChan)
	for i := 0; i < capacity+1; i++ {
		m.LogEntry(entry(fmt.Sprintf("b-%d", i)))
	}

	direct := logs.FilterMessage("Audit entry logged directly").All()
	require.Len(t, direct, 1)
	assert.Equal(t, "queue full", direct[0].ContextMap()["reason"])
	assert.Equal(t, capacity, m.Pending())
}
