package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/matcher/pkg/job"
)

// JobRepository — read-only доступ к корпусу вакансий в Postgres.
// Наполняет таблицу внешний ingestion-пайплайн; сервис её только читает.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS job_postings (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	required_skills TEXT[] NOT NULL DEFAULT '{}',
	category TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_job_postings_category ON job_postings(category);
`)
	return err
}

// List возвращает весь корпус, отсортированный по id для детерминизма.
func (r *JobRepository) List(ctx context.Context) ([]job.Posting, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, description, required_skills, category
FROM job_postings
ORDER BY id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostings(rows)
}

// Page возвращает страницу корпуса для служебного просмотра.
func (r *JobRepository) Page(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, title, description, required_skills, category
FROM job_postings
ORDER BY id
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostings(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanPostings(rows pgxRows) ([]job.Posting, error) {
	out := []job.Posting{}
	for rows.Next() {
		var p job.Posting
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.RequiredSkills, &p.Category); err != nil {
			return nil, err
		}
		if p.RequiredSkills == nil {
			p.RequiredSkills = []string{}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
