package deadlinesweep

import (
	"context"
	"time"

	runDeadlineSweep "github.com/v1adych/SWB-OrderService/internal/usecase/run_deadline_sweep"
)

// SweepUseCase интерфейс use case автоподтверждения
type SweepUseCase interface {
	Execute(ctx context.Context) (*runDeadlineSweep.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker фоновый воркер автоподтверждения заказов
// Периодически запускает проход sweep: pending заказы с прошедшим дедлайном
// переводятся в confirmed. Проход идемпотентен, поэтому падение одного тика
// или рестарт сервиса не требуют восстановления
type Worker struct {
	useCase  SweepUseCase
	interval time.Duration
	logger   Logger
}

// NewWorker создает новый воркер sweep
func NewWorker(useCase SweepUseCase, interval time.Duration, logger Logger) *Worker {
	return &Worker{
		useCase:  useCase,
		interval: interval,
		logger:   logger,
	}
}

// Run запускает цикл воркера и блокируется до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("DeadlineSweepWorker: started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Первый проход сразу при старте, не дожидаясь тика
	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("DeadlineSweepWorker: stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	if _, err := w.useCase.Execute(ctx); err != nil {
		// Ошибка тика не останавливает воркер, следующий проход повторит работу
		w.logger.Error("DeadlineSweepWorker: sweep failed: %v", err)
	}
}
