package task

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/artem13815/matcher/pkg/job"
	"github.com/artem13815/matcher/pkg/matching"
	"github.com/artem13815/matcher/pkg/resume"
)

// Вехи прогресса по стадиям пайплайна.
const (
	progressParsed = 10
	progressScored = 90
)

// explainParallelism ограничивает одновременные запросы к генератору объяснений.
const explainParallelism = 4

// Config — параметры оркестратора.
type Config struct {
	// Workers — размер пула воркеров; каждый воркер держит максимум одну задачу.
	Workers int
	// QueueSize — ёмкость очереди принятых, но не разобранных задач.
	QueueSize int
}

// UseCase — контракт оркестратора задач матчинга.
type UseCase interface {
	Submit(ctx context.Context, in resume.Input) (uuid.UUID, error)
	Status(id uuid.UUID) (Task, error)
}

type queuedTask struct {
	id uuid.UUID
	in resume.Input
}

// Service владеет жизненным циклом задач: создание, очередь, пул воркеров,
// переходы состояний, retention. Submit всегда быстрый: парсинг и скоринг
// происходят только в воркере.
type Service struct {
	store      *Store
	corpus     job.Repository
	normalizer *resume.Normalizer
	engine     *matching.Engine
	explainer  matching.Explainer
	cfg        Config
	logger     *zap.Logger
	queue      chan queuedTask
}

func NewService(
	store *Store,
	corpus job.Repository,
	normalizer *resume.Normalizer,
	engine *matching.Engine,
	explainer matching.Explainer,
	cfg Config,
	logger *zap.Logger,
) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:      store,
		corpus:     corpus,
		normalizer: normalizer,
		engine:     engine,
		explainer:  explainer,
		cfg:        cfg,
		logger:     logger,
		queue:      make(chan queuedTask, cfg.QueueSize),
	}
}

// Submit валидирует вход, создаёт задачу в queued и ставит её в очередь.
// Возвращается сразу, не дожидаясь ни парсинга, ни скоринга.
func (s *Service) Submit(_ context.Context, in resume.Input) (uuid.UUID, error) {
	if err := in.Validate(); err != nil {
		return uuid.Nil, err
	}
	t := s.store.Create()
	select {
	case s.queue <- queuedTask{id: t.ID, in: in}:
		s.logger.Info("task accepted", zap.String("task_id", t.ID.String()))
		return t.ID, nil
	default:
		// Очередь забита: откатываем задачу, чтобы не висела вечным queued.
		s.store.Delete(t.ID)
		return uuid.Nil, ErrQueueFull
	}
}

// Status возвращает снимок задачи по id.
func (s *Service) Status(id uuid.UUID) (Task, error) {
	return s.store.Get(id)
}

// Run запускает пул воркеров и janitor и блокируется до отмены контекста.
func (s *Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.store.RunJanitor(ctx) })
	for i := 0; i < s.cfg.Workers; i++ {
		worker := i
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case item := <-s.queue:
					s.process(ctx, worker, item)
				}
			}
		})
	}
	return g.Wait()
}

// process прогоняет одну задачу через пайплайн: нормализация, скоринг
// корпуса, объяснения, терминальный переход. Любая паника воркера
// превращается в failed, а не валит процесс.
func (s *Service) process(ctx context.Context, worker int, item queuedTask) {
	log := s.logger.With(zap.Int("worker", worker), zap.String("task_id", item.id.String()))
	defer func() {
		if r := recover(); r != nil {
			log.Error("worker panic", zap.Any("panic", r))
			s.store.Fail(item.id, fmt.Sprintf("internal error: %v", r))
		}
	}()

	s.store.MarkProcessing(item.id)

	parsed, err := s.normalizer.Normalize(ctx, item.in)
	if err != nil {
		log.Warn("resume normalization failed", zap.Error(err))
		s.store.Fail(item.id, err.Error())
		return
	}
	s.store.SetProgress(item.id, progressParsed)

	postings, err := s.corpus.List(ctx)
	if err != nil {
		log.Error("job corpus unavailable", zap.Error(err))
		s.store.Fail(item.id, fmt.Sprintf("job corpus unavailable: %v", err))
		return
	}

	results, err := s.engine.Rank(ctx, parsed, postings, func(done, total int) {
		s.store.SetProgress(item.id, progressParsed+(progressScored-progressParsed)*done/total)
	})
	if err != nil {
		log.Warn("scoring failed", zap.Error(err))
		s.store.Fail(item.id, err.Error())
		return
	}
	s.store.SetProgress(item.id, progressScored)

	s.explain(ctx, log, item.id, parsed, results)

	s.store.Complete(item.id, results)
	log.Info("task completed",
		zap.Int("postings", len(postings)),
		zap.Int("results", len(results)),
	)
}

// explain генерирует обоснования для сильных матчей. Отказ по одному
// результату просто оставляет Explanation пустым.
func (s *Service) explain(ctx context.Context, log *zap.Logger, id uuid.UUID, parsed resume.Parsed, results []matching.Result) {
	if s.explainer == nil {
		return
	}
	var qualifying []int
	for i := range results {
		if results[i].MatchScore >= matching.ExplainThreshold {
			qualifying = append(qualifying, i)
		}
	}
	if len(qualifying) == 0 {
		return
	}

	var done int
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(explainParallelism)
	for _, idx := range qualifying {
		idx := idx
		g.Go(func() error {
			text, err := s.explainer.Explain(ctx, parsed, results[idx])
			mu.Lock()
			if err != nil {
				log.Warn("explanation skipped",
					zap.String("posting_id", results[idx].Posting.ID),
					zap.Error(err),
				)
			} else {
				results[idx].Explanation = &text
			}
			done++
			progress := progressScored + (100-progressScored)*done/len(qualifying)
			mu.Unlock()
			if progress < 100 {
				s.store.SetProgress(id, progress)
			}
			return nil
		})
	}
	_ = g.Wait()
}
