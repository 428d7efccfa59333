package pipeline

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/aluiziolira/mlb-stadium-stats/models"
	"github.com/aluiziolira/mlb-stadium-stats/parser"
	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	// ErrPipelineClosed is returned when Process is called after shutdown.
	ErrPipelineClosed = errors.New("pipeline: closed")
)

// Pipeline coordinates validation, de-duplication, and collection of
// game records ahead of the export step.
type Pipeline struct {
	recordCh chan *models.GameRecord

	wg sync.WaitGroup

	seen *lru.Cache[int64, struct{}]

	recordsMu sync.Mutex
	records   []*models.GameRecord

	metrics metrics

	mu     sync.Mutex // guards closed
	closed bool

	closeOnce    sync.Once
	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// NewPipeline builds a pipeline with a modest in-memory buffer. The
// dedupe cache holds up to dedupeSize game IDs.
func NewPipeline(dedupeSize int) (*Pipeline, error) {
	if dedupeSize <= 0 {
		dedupeSize = 1
	}
	seen, err := lru.New[int64, struct{}](dedupeSize)
	if err != nil {
		return nil, fmt.Errorf("create dedupe cache: %w", err)
	}

	return &Pipeline{
		recordCh: make(chan *models.GameRecord, 256),
		seen:     seen,
		metrics:  newMetrics(),
		shutdown: make(chan struct{}),
	}, nil
}

// Start launches worker goroutines.
func (p *Pipeline) Start(workers int) {
	if workers <= 0 {
		workers = 1
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Process enqueues records for downstream processing.
func (p *Pipeline) Process(records ...*models.GameRecord) error {
	if len(records) == 0 {
		return nil
	}

	if p.isClosed() {
		return ErrPipelineClosed
	}

	for _, record := range records {
		if record == nil {
			continue
		}
		if err := p.enqueue(record); err != nil {
			return err
		}
	}
	return nil
}

// Close waits for workers to finish and prevents more submissions.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
	}
	p.mu.Unlock()

	p.signalShutdown()
	p.closeOnce.Do(func() {
		close(p.recordCh)
	})

	p.wg.Wait()
	return nil
}

// Records returns a snapshot of the accepted records in arrival order.
func (p *Pipeline) Records() []*models.GameRecord {
	p.recordsMu.Lock()
	defer p.recordsMu.Unlock()

	out := make([]*models.GameRecord, len(p.records))
	copy(out, p.records)
	return out
}

// GetMetrics returns a snapshot of the internal counters.
func (p *Pipeline) GetMetrics() map[string]interface{} {
	return p.metrics.snapshot()
}

// StartMetricsReporting emits periodic progress logs.
func (p *Pipeline) StartMetricsReporting(interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				metrics := p.GetMetrics()
				processed := metrics["processed_games"].(int64)
				validation := metrics["validation_errors"].(map[string]int)
				log.Printf("pipeline: processed=%d validation_errors=%d", processed, len(validation))
			case <-p.shutdown:
				return
			}
		}
	}()
}

func (p *Pipeline) worker() {
	defer p.wg.Done()

	for record := range p.recordCh {
		p.prepare(record)
	}
}

func (p *Pipeline) prepare(record *models.GameRecord) {
	if err := parser.ValidateGame(record); err != nil {
		p.metrics.addValidation("invalid_record")
		return
	}

	if found, _ := p.seen.ContainsOrAdd(record.GameID, struct{}{}); found {
		p.metrics.addValidation("duplicate_game")
		return
	}

	p.recordsMu.Lock()
	p.records = append(p.records, record)
	p.recordsMu.Unlock()

	p.metrics.incrementProcessed()
}

func (p *Pipeline) enqueue(record *models.GameRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrPipelineClosed
		}
	}()

	select {
	case <-p.shutdown:
		return ErrPipelineClosed
	case p.recordCh <- record:
		return nil
	}
}

func (p *Pipeline) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Pipeline) signalShutdown() {
	p.shutdownOnce.Do(func() {
		close(p.shutdown)
	})
}

type metrics struct {
	mu         sync.Mutex
	processed  int64
	validation map[string]int
}

func newMetrics() metrics {
	return metrics{
		validation: make(map[string]int),
	}
}

func (m *metrics) incrementProcessed() {
	m.mu.Lock()
	m.processed++
	m.mu.Unlock()
}

func (m *metrics) addValidation(kind string) {
	m.mu.Lock()
	m.validation[kind]++
	m.mu.Unlock()
}

func (m *metrics) snapshot() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	copyValidation := make(map[string]int, len(m.validation))
	for k, v := range m.validation {
		copyValidation[k] = v
	}

	return map[string]interface{}{
		"processed_games":   m.processed,
		"validation_errors": copyValidation,
	}
}
