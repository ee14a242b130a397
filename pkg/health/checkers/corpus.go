package checkers

import (
	"context"
	"time"

	"github.com/artem13815/matcher/pkg/job"
)

// CorpusChecker проверяет, что корпус вакансий отвечает на чтение.
type CorpusChecker struct {
	repo job.Repository
}

func NewCorpusChecker(repo job.Repository) *CorpusChecker {
	return &CorpusChecker{repo: repo}
}

func (c *CorpusChecker) Name() string { return "job_corpus" }

func (c *CorpusChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.repo.Page(ctx, 1, 0)
	return err
}
