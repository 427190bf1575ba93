package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/metrics"
)

const publishTimeout = 10 * time.Second

// Manager collects audit entries into batches and hands them to a pool of
// workers that publish them through a kafka.Producer. Entries that cannot
// be queued or published are written to the log instead.
type Manager struct {
	producer kafka.Producer
	topic    string
	logger   *zap.Logger

	workerCount int
	batchSize   int
	timeout     time.Duration

	inputChan  chan Entry
	batchChan  chan []Entry
	shutdownCh chan struct{}
	once       sync.Once

	wg           sync.WaitGroup
	pendingMu    sync.Mutex
	pendingCount int
}

func NewManager(producer kafka.Producer, topic string, workerCount, batchSize int, timeout time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		producer:    producer,
		topic:       topic,
		logger:      logger.With(zap.String("component", "audit")),
		workerCount: workerCount,
		batchSize:   batchSize,
		timeout:     timeout,
		inputChan:   make(chan Entry, workerCount*batchSize*2),
		batchChan:   make(chan []Entry, workerCount*2),
		shutdownCh:  make(chan struct{}),
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.logger.Info("Starting audit manager",
		zap.Int("workers", m.workerCount),
		zap.Int("batch_size", m.batchSize),
		zap.Duration("flush_interval", m.timeout),
	)
	m.wg.Add(1)
	go m.runAggregator(ctx)

	for i := 0; i < m.workerCount; i++ {
		m.wg.Add(1)
		go m.runWorker(i)
	}
}

// Shutdown stops accepting entries, flushes what is queued and waits for the
// workers until ctx expires.
func (m *Manager) Shutdown(ctx context.Context) {
	m.once.Do(func() {
		m.logger.Info("Initiating audit manager shutdown")
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			m.logger.Info("Audit manager shutdown completed")
		case <-ctx.Done():
			m.logger.Warn("Audit manager shutdown interrupted", zap.Int("pending", m.Pending()))
		}
	})
}

func (m *Manager) LogEntry(entry Entry) {
	select {
	case <-m.shutdownCh:
		m.emergencyLog(entry, "manager stopped")
		return
	default:
	}

	m.updatePendingCount(1)
	select {
	case m.inputChan <- entry:
	default:
		m.updatePendingCount(-1)
		m.emergencyLog(entry, "queue full")
	}
}

// Pending reports entries accepted but not yet handed to the producer.
func (m *Manager) Pending() int {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	return m.pendingCount
}

func (m *Manager) runAggregator(ctx context.Context) {
	defer m.wg.Done()

	var (
		batch    []Entry
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
		}
		timeoutC = nil
	}

	defer func() {
		stopTimer()
		batch = append(batch, m.drainInput()...)
		for len(batch) > 0 {
			n := min(len(batch), m.batchSize)
			m.batchChan <- batch[:n]
			batch = batch[n:]
		}
		close(m.batchChan)
	}()

	for {
		select {
		case entry := <-m.inputChan:
			batch = append(batch, entry)
			if len(batch) >= m.batchSize {
				m.dispatchBatch(batch)
				batch = nil
				stopTimer()
			} else if len(batch) == 1 {
				timer = time.NewTimer(m.timeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			m.dispatchBatch(batch)
			batch = nil
			timer = nil
			timeoutC = nil

		case <-ctx.Done():
			return

		case <-m.shutdownCh:
			return
		}
	}
}

func (m *Manager) drainInput() []Entry {
	var rest []Entry
	for {
		select {
		case entry := <-m.inputChan:
			rest = append(rest, entry)
		default:
			return rest
		}
	}
}

func (m *Manager) dispatchBatch(batch []Entry) {
	batchCopy := make([]Entry, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		m.publishBatch(-1, batchCopy)
	}
}

func (m *Manager) runWorker(id int) {
	defer m.wg.Done()

	for batch := range m.batchChan {
		m.publishBatch(id, batch)
	}
	m.logger.Debug("Audit worker exiting", zap.Int("worker", id))
}

func (m *Manager) publishBatch(workerID int, batch []Entry) {
	defer m.updatePendingCount(-len(batch))

	msgs := make([]kafka.Message, 0, len(batch))
	for _, entry := range batch {
		value, err := json.Marshal(entry)
		if err != nil {
			m.logger.Error("Failed to marshal audit entry", zap.Error(err))
			continue
		}
		key := entry.EntityID
		if key == "" {
			key = entry.Path
		}
		msgs = append(msgs, kafka.Message{Key: []byte(key), Value: value})
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := m.producer.SendMessages(ctx, m.topic, msgs...); err != nil {
		m.logger.Error("Failed to publish audit batch",
			zap.Int("worker", workerID),
			zap.Int("size", len(batch)),
			zap.Error(err),
		)
		for _, entry := range batch {
			m.emergencyLog(entry, "publish failed")
		}
		return
	}
	m.logger.Debug("Published audit batch", zap.Int("worker", workerID), zap.Int("size", len(msgs)))
}

func (m *Manager) emergencyLog(entry Entry, reason string) {
	metrics.AuditEntriesDroppedTotal.Inc()
	m.logger.Warn("Audit entry logged directly",
		zap.String("reason", reason),
		zap.Time("timestamp", entry.Timestamp),
		zap.String("handler", entry.Handler),
		zap.String("method", entry.Method),
		zap.String("path", entry.Path),
		zap.Int("status_code", entry.StatusCode),
		zap.String("entity_id", entry.EntityID),
		zap.String("old_status", entry.OldStatus),
		zap.String("new_status", entry.NewStatus),
	)
}

func (m *Manager) updatePendingCount(delta int) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	m.pendingCount += delta
}
