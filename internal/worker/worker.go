package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Refresher определяет интерфейс обновления списка новостей.
// Используется для внедрения зависимости в воркер.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Worker периодически обновляет ленту: сразу после старта и затем по тикеру.
// Ошибки обновления логируются и не останавливают воркер.
type Worker struct {
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	log       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	successCount atomic.Int64
	errorCount   atomic.Int64
}

// New создает воркер. timeout ограничивает одно обновление.
func New(refresher Refresher, interval, timeout time.Duration, log *slog.Logger) *Worker {
	return &Worker{
		refresher: refresher,
		interval:  interval,
		timeout:   timeout,
		log:       log.With(slog.String("component", "worker")),
		done:      make(chan struct{}),
	}
}

// Start запускает воркер в отдельной горутине.
func (w *Worker) Start() {
	w.ctx, w.cancel = context.WithCancel(context.Background())
	go w.run()
}

// Stop останавливает воркер и ждет завершения текущего обновления.
func (w *Worker) Stop() {
	w.once.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.done
		}
	})
}

func (w *Worker) run() {
	defer close(w.done)
	w.log.Info("Feed refresh worker started", slog.String("interval", w.interval.String()))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.refreshOnce()
	for {
		select {
		case <-ticker.C:
			w.refreshOnce()
		case <-w.ctx.Done():
			w.log.Info("Worker stopping")
			return
		}
	}
}

func (w *Worker) refreshOnce() {
	if w.ctx.Err() != nil {
		return
	}
	ctx := w.ctx
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(w.ctx, w.timeout)
		defer cancel()
	}
	start := time.Now()
	if err := w.refresher.Refresh(ctx); err != nil {
		w.errorCount.Add(1)
		w.log.Error("Feed refresh failed", slog.Any("error", err))
		return
	}
	w.successCount.Add(1)
	w.log.Debug("Feed refresh cycle completed", slog.Duration("duration", time.Since(start)))
}

// Stats возвращает количество успешных и неудачных обновлений.
func (w *Worker) Stats() (successful, failed int64) {
	return w.successCount.Load(), w.errorCount.Load()
}

// GetInterval возвращает интервал обновления.
func (w *Worker) GetInterval() time.Duration { return w.interval }
