package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AuditManager fans request audit entries out to a small worker pool.
// Entries are aggregated into batches by size or timeout before workers
// print them, so a burst of requests does not block the hot path.
type AuditManager struct {
	workerCount int
	batchSize   int
	timeout     time.Duration

	inputChan  chan AuditLogEntry
	batchChan  chan []AuditLogEntry
	shutdownCh chan struct{}
	once       sync.Once

	wg sync.WaitGroup
}

func NewAuditManager(workerCount, batchSize int, timeout time.Duration) *AuditManager {
	return &AuditManager{
		workerCount: workerCount,
		batchSize:   batchSize,
		timeout:     timeout,
		inputChan:   make(chan AuditLogEntry, workerCount*batchSize*2),
		batchChan:   make(chan []AuditLogEntry, workerCount*2),
		shutdownCh:  make(chan struct{}),
	}
}

func (m *AuditManager) Start(ctx context.Context) {
	zap.L().Info("starting audit manager",
		zap.Int("workers", m.workerCount),
		zap.Int("batch_size", m.batchSize))

	m.wg.Add(1)
	go m.runAggregator(ctx)

	for i := 0; i < m.workerCount; i++ {
		m.wg.Add(1)
		go m.runWorker(ctx, i)
	}

	go m.monitorShutdown(ctx)
}

// LogEntry hands an entry to the aggregator. If the context is already
// cancelled the entry is printed directly so it is never lost.
func (m *AuditManager) LogEntry(ctx context.Context, entry AuditLogEntry) {
	select {
	case m.inputChan <- entry:
	case <-ctx.Done():
		m.emergencyLog(entry)
	}
}

func (m *AuditManager) Shutdown(ctx context.Context) {
	m.once.Do(func() {
		zap.L().Info("audit manager shutting down")
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			zap.L().Info("audit manager shutdown complete")
		case <-ctx.Done():
			zap.L().Warn("audit manager shutdown interrupted")
		}
	})
}

func (m *AuditManager) monitorShutdown(ctx context.Context) {
	<-ctx.Done()
	m.Shutdown(context.Background())
}

func (m *AuditManager) runAggregator(ctx context.Context) {
	defer m.wg.Done()

	var (
		batch    []AuditLogEntry
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		if len(batch) > 0 {
			m.dispatchBatch(batch)
		}
		close(m.batchChan)
	}()

	for {
		select {
		case entry, ok := <-m.inputChan:
			if !ok {
				return
			}

			batch = append(batch, entry)
			if len(batch) >= m.batchSize {
				m.dispatchBatch(batch)
				batch = nil
				timeoutC = nil
			} else if len(batch) == 1 {
				timer = time.NewTimer(m.timeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			m.dispatchBatch(batch)
			batch = nil
			timeoutC = nil

		case <-ctx.Done():
			return

		case <-m.shutdownCh:
			return
		}
	}
}

func (m *AuditManager) dispatchBatch(batch []AuditLogEntry) {
	batchCopy := make([]AuditLogEntry, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		// workers are saturated, print inline rather than block
		m.printBatch(-1, batchCopy)
	}
}

func (m *AuditManager) runWorker(ctx context.Context, id int) {
	defer m.wg.Done()

	for {
		select {
		case batch, ok := <-m.batchChan:
			if !ok {
				return
			}
			m.printBatch(id, batch)
		case <-ctx.Done():
			// drain whatever is already queued before exiting
			for {
				select {
				case batch, ok := <-m.batchChan:
					if !ok {
						return
					}
					m.printBatch(id, batch)
				default:
					return
				}
			}
		}
	}
}

func (m *AuditManager) emergencyLog(entry AuditLogEntry) {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		zap.L().Error("failed to marshal audit entry", zap.Error(err))
		return
	}
	zap.L().Warn("audit entry logged directly", zap.ByteString("entry", entryJSON))
}

func (m *AuditManager) printBatch(workerID int, batch []AuditLogEntry) {
	source := "direct"
	if workerID >= 0 {
		source = fmt.Sprintf("worker-%d", workerID)
	}

	for _, entry := range batch {
		entryJSON, err := json.Marshal(entry)
		if err != nil {
			zap.L().Error("failed to marshal audit entry", zap.Error(err))
			continue
		}
		zap.L().Info("audit",
			zap.String("source", source),
			zap.ByteString("entry", entryJSON))
	}
}
