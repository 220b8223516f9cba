package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"employee-directory/internal/upload"
)

// PhotoRemover deletes a stored photo by its public path.
type PhotoRemover interface {
	Remove(storedPath string) error
}

// PhotoCleanupWorker drains the orphaned-photo queue. A photo lands there when
// its employee record failed to persist after the file was already written.
type PhotoCleanupWorker struct {
	conn      *amqp.Connection
	store     PhotoRemover
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPhotoCleanupWorker(conn *amqp.Connection, store PhotoRemover, queueName string) *PhotoCleanupWorker {
	return &PhotoCleanupWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
	}
}

func (w *PhotoCleanupWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare cleanup queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume cleanup queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var job upload.CleanupJob
				if err := json.Unmarshal(d.Body, &job); err != nil {
					log.Printf("worker decode cleanup job failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.store.Remove(job.Path); err != nil {
					log.Printf("worker remove orphaned photo failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *PhotoCleanupWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
