package task

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/matcher/pkg/matching"
)

// Status — состояние задачи матчинга.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal сообщает, достигла ли задача конечного состояния.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

var (
	// ErrNotFound — неизвестный или уже вычищенный id задачи.
	ErrNotFound = errors.New("task not found")
	// ErrQueueFull — очередь воркеров переполнена, задача не принята.
	ErrQueueFull = errors.New("task queue is full")
)

// Task — единица асинхронной работы по матчингу одного резюме.
// Мутируется только владеющим воркером; после терминального
// состояния неизменяема до вычистки по retention.
type Task struct {
	ID       uuid.UUID `json:"id"`
	Status   Status    `json:"status"`
	Progress int       `json:"progress"`
	// Result заполняется только на completed: отфильтрован (>= 60),
	// отсортирован по убыванию итогового скора.
	Result []matching.Result `json:"result"`
	// Error заполняется только на failed.
	Error *string `json:"error"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
