package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(baseURL string) Config {
	return Config{
		BaseURL:            baseURL,
		Interval:           time.Millisecond,
		MaxAttempts:        60,
		BackoffBase:        time.Millisecond,
		BackoffCap:         5 * time.Millisecond,
		MaxConsecutiveErrs: 3,
	}
}

func TestWaitCompletes(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n < 3 {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "t1", "status": "processing", "progress": 40, "result": nil, "error": nil,
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "t1", "status": "completed", "progress": 100,
			"result": []map[string]any{{"id": "j1", "matchScore": 87, "matchLevel": "Strong"}},
			"error":  nil,
		})
	}))
	defer srv.Close()

	c := New(fastConfig(srv.URL))
	results, err := c.Wait(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "j1", results[0].Posting.ID)
	assert.Equal(t, 87, results[0].MatchScore)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestWaitTaskFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "t1", "status": "failed", "progress": 10, "result": nil,
			"error": "resume parse failure: broken file",
		})
	}))
	defer srv.Close()

	c := New(fastConfig(srv.URL))
	_, err := c.Wait(context.Background(), "t1")

	var failed *TaskFailedError
	require.ErrorAs(t, err, &failed)
	assert.Contains(t, failed.Message, "parse failure")
}

func TestWaitConnectionLost(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(fastConfig(srv.URL))
	start := time.Now()
	_, err := c.Wait(context.Background(), "t1")

	require.ErrorIs(t, err, ErrConnectionLost)
	// сдаёмся после лимита подряд идущих ошибок, задолго до потолка попыток
	assert.Equal(t, int32(3), polls.Load())
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitSingleErrorDoesNotAbort(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		// одиночные сбои на 1-м и 3-м опросе; между ними успешный ответ
		if n == 1 || n == 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if n < 5 {
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "t1", "status": "processing", "progress": 50})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "t1", "status": "completed", "progress": 100, "result": []any{}})
	}))
	defer srv.Close()

	c := New(fastConfig(srv.URL))
	results, err := c.Wait(context.Background(), "t1")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestWaitTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "t1", "status": "processing", "progress": 70})
	}))
	defer srv.Close()

	cfg := fastConfig(srv.URL)
	cfg.MaxAttempts = 5
	c := New(cfg)

	_, err := c.Wait(context.Background(), "t1")
	require.ErrorIs(t, err, ErrTimeout)
}

func TestWaitNotFoundIsFinal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(fastConfig(srv.URL))
	_, err := c.Wait(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWaitContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "t1", "status": "processing", "progress": 1})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(fastConfig(srv.URL))
	_, err := c.Wait(ctx, "t1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoffFormula(t *testing.T) {
	c := New(Config{BackoffBase: 3 * time.Second, BackoffCap: 10 * time.Second})
	assert.Equal(t, 3*time.Second, c.backoff(1))
	assert.Equal(t, 4500*time.Millisecond, c.backoff(2))
	assert.Equal(t, 6750*time.Millisecond, c.backoff(3))
	// выше потолка не растём
	assert.Equal(t, 10*time.Second, c.backoff(4))
	assert.Equal(t, 10*time.Second, c.backoff(10))
}

func TestSubmitText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/match-resume-async", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "my resume", req["resume_text"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{"task_id": "abc", "status": "queued"})
	}))
	defer srv.Close()

	c := New(fastConfig(srv.URL))
	id, err := c.SubmitText(context.Background(), "my resume")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}

func TestSubmitFileRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"bad mime"}`))
	}))
	defer srv.Close()

	c := New(fastConfig(srv.URL))
	_, err := c.SubmitFile(context.Background(), "cat.png", "image/png", []byte{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestWaitErrorCounterResets(t *testing.T) {
	// 2 ошибки, успех, ещё 2 ошибки: лимит 3 подряд не достигнут.
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		switch n {
		case 1, 2, 4, 5:
			w.WriteHeader(http.StatusInternalServerError)
		case 3:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "t1", "status": "processing", "progress": 5})
		default:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "t1", "status": "completed", "progress": 100, "result": []any{}})
		}
	}))
	defer srv.Close()

	c := New(fastConfig(srv.URL))
	_, err := c.Wait(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, int32(6), polls.Load())
}

func TestWaitConnectionLostWrapsCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(fastConfig(srv.URL))
	_, err := c.Wait(context.Background(), "t1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectionLost))
	assert.Contains(t, err.Error(), "http 500")
}
