// Package client реализует клиентскую сторону протокола опроса задач:
// фиксированный интервал, потолок попыток, экспоненциальный backoff
// на транспортных ошибках.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/matcher/pkg/matching"
)

var (
	// ErrTimeout — потолок попыток исчерпан; задача на сервере может всё ещё выполняться.
	ErrTimeout = errors.New("polling timed out")
	// ErrConnectionLost — подряд идущие транспортные ошибки превысили лимит.
	ErrConnectionLost = errors.New("connection lost")
	// ErrNotFound — сервер не знает такой задачи.
	ErrNotFound = errors.New("task not found")
)

// TaskFailedError — задача завершилась failed; текст ошибки с сервера.
type TaskFailedError struct {
	Message string
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("task failed: %s", e.Message)
}

// TaskStatus — снимок задачи, который отдаёт сервер.
type TaskStatus struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"`
	Progress int               `json:"progress"`
	Result   []matching.Result `json:"result"`
	Error    *string           `json:"error"`
}

// Config задаёт параметры протокола; нулевые значения заменяются
// референсными: интервал 3s, 60 попыток, backoff 3s..10s, 3 ошибки подряд.
type Config struct {
	BaseURL            string
	Interval           time.Duration
	MaxAttempts        int
	BackoffBase        time.Duration
	BackoffCap         time.Duration
	MaxConsecutiveErrs int
	HTTPClient         *http.Client
	Logger             *zap.Logger
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

func New(cfg Config) *Client {
	if cfg.Interval <= 0 {
		cfg.Interval = 3 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 60
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = 3 * time.Second
	}
	if cfg.BackoffCap <= 0 {
		cfg.BackoffCap = 10 * time.Second
	}
	if cfg.MaxConsecutiveErrs <= 0 {
		cfg.MaxConsecutiveErrs = 3
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, http: httpClient, log: log}
}

type submitResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// SubmitText отправляет резюме текстом и возвращает id задачи.
func (c *Client) SubmitText(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{"resume_text": text})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/match-resume-async", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doSubmit(req)
}

// SubmitFile отправляет файл резюме multipart-ом с заявленным MIME-типом.
func (c *Client) SubmitFile(ctx context.Context, filename, mimeType string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume_file"; filename=%q`, filename))
	hdr.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/match-resume-async", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.doSubmit(req)
}

func (c *Client) doSubmit(req *http.Request) (string, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("submit rejected: http %d: %s", resp.StatusCode, bytes.TrimSpace(payload))
	}
	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.TaskID == "" {
		return "", errors.New("submit response without task_id")
	}
	return out.TaskID, nil
}

// Poll делает один запрос статуса. Транспортные сбои и 5xx возвращаются
// ошибкой; 404 — это ErrNotFound, окончательный ответ сервера.
func (c *Client) Poll(ctx context.Context, taskID string) (TaskStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/task-status/"+taskID, nil)
	if err != nil {
		return TaskStatus{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return TaskStatus{}, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusOK:
		var st TaskStatus
		if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
			return TaskStatus{}, err
		}
		return st, nil
	case resp.StatusCode == http.StatusNotFound:
		return TaskStatus{}, ErrNotFound
	default:
		return TaskStatus{}, fmt.Errorf("poll: http %d", resp.StatusCode)
	}
}

// Wait опрашивает задачу до терминального состояния либо исчерпания протокола.
//   - completed -> результаты;
//   - failed -> *TaskFailedError;
//   - MaxAttempts опросов без терминала -> ErrTimeout;
//   - MaxConsecutiveErrs транспортных сбоев подряд -> ErrConnectionLost;
//     одиночный сбой цикл не прерывает, счётчик сбрасывается успешным опросом.
func (c *Client) Wait(ctx context.Context, taskID string) ([]matching.Result, error) {
	consecutiveErrs := 0
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		st, err := c.Poll(ctx, taskID)
		if err != nil {
			if errors.Is(err, ErrNotFound) || ctx.Err() != nil {
				return nil, err
			}
			consecutiveErrs++
			c.log.Debug("poll error",
				zap.String("task_id", taskID),
				zap.Int("consecutive", consecutiveErrs),
				zap.Error(err),
			)
			if consecutiveErrs >= c.cfg.MaxConsecutiveErrs {
				return nil, fmt.Errorf("%w after %d consecutive poll errors: %v", ErrConnectionLost, consecutiveErrs, err)
			}
			if err := sleep(ctx, c.backoff(consecutiveErrs)); err != nil {
				return nil, err
			}
			continue
		}
		consecutiveErrs = 0

		switch st.Status {
		case "completed":
			return st.Result, nil
		case "failed":
			msg := "unknown error"
			if st.Error != nil {
				msg = *st.Error
			}
			return nil, &TaskFailedError{Message: msg}
		}
		if err := sleep(ctx, c.cfg.Interval); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrTimeout, c.cfg.MaxAttempts)
}

// backoff: delay = min(base * 1.5^(n-1), cap).
func (c *Client) backoff(consecutiveErrs int) time.Duration {
	d := time.Duration(float64(c.cfg.BackoffBase) * math.Pow(1.5, float64(consecutiveErrs-1)))
	if d > c.cfg.BackoffCap {
		return c.cfg.BackoffCap
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
