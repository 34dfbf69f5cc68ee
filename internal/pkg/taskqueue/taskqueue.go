package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Task kinds handled by the background worker
const (
	KindCertificatePDF = "certificate_pdf"
	KindReceiptPDF     = "receipt_pdf"
	KindReminderEmail  = "reminder_email"
)

// DefaultQueueKey is the Redis list the API pushes to and the worker pops from
const DefaultQueueKey = "tailorwise:tasks"

// ErrEmpty is returned by Dequeue when no task arrived within the timeout
var ErrEmpty = errors.New("queue is empty")

// Task is one unit of background work. Payload holds kind-specific fields.
type Task struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

// CertificatePDFPayload asks the worker to render and store a certificate PDF
type CertificatePDFPayload struct {
	CertificateID int64 `json:"certificateId"`
}

// ReceiptPDFPayload asks the worker to render and store a receipt PDF
type ReceiptPDFPayload struct {
	ReceiptID int64 `json:"receiptId"`
}

// ReminderEmailPayload asks the worker to deliver a fee reminder
type ReminderEmailPayload struct {
	ReminderID int64 `json:"reminderId"`
}

// Queue is a Redis-list backed task queue
type Queue struct {
	client *redis.Client
	key    string
}

// NewQueue creates a queue over the given Redis client. An empty key falls
// back to DefaultQueueKey.
func NewQueue(client *redis.Client, key string) *Queue {
	if key == "" {
		key = DefaultQueueKey
	}
	return &Queue{client: client, key: key}
}

// Enqueue marshals a payload into a task and pushes it onto the queue
func (q *Queue) Enqueue(ctx context.Context, kind string, payload interface{}) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := Task{
		ID:         uuid.New().String(),
		Kind:       kind,
		Payload:    raw,
		EnqueuedAt: time.Now(),
	}

	data, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return "", fmt.Errorf("failed to push task: %w", err)
	}

	return task.ID, nil
}

// Dequeue blocks up to timeout waiting for the next task. Returns ErrEmpty
// when the timeout elapses without a task.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Task, error) {
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to pop task: %w", err)
	}

	// BRPop returns [key, value]
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply length %d", len(result))
	}

	var task Task
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}

	return &task, nil
}

// Length returns the number of queued tasks
func (q *Queue) Length(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read queue length: %w", err)
	}
	return n, nil
}

// DecodePayload unmarshals the task payload into dst
func (t *Task) DecodePayload(dst interface{}) error {
	if err := json.Unmarshal(t.Payload, dst); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", t.Kind, err)
	}
	return nil
}
