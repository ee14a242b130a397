package job

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// StaticRepository держит корпус вакансий в памяти. Используется при запуске
// без базы (JOBS_FILE) и в тестах.
type StaticRepository struct {
	postings []Posting
}

// NewStaticRepository copies the given postings and keeps them sorted by id
// for stable paging.
func NewStaticRepository(postings []Posting) *StaticRepository {
	cp := make([]Posting, len(postings))
	copy(cp, postings)
	sort.Slice(cp, func(i, j int) bool { return cp[i].ID < cp[j].ID })
	return &StaticRepository{postings: cp}
}

// LoadFile читает корпус из JSON-файла (массив Posting).
func LoadFile(path string) (*StaticRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}
	var postings []Posting
	if err := json.Unmarshal(data, &postings); err != nil {
		return nil, fmt.Errorf("decode jobs file %s: %w", path, err)
	}
	return NewStaticRepository(postings), nil
}

func (r *StaticRepository) List(_ context.Context) ([]Posting, error) {
	out := make([]Posting, len(r.postings))
	copy(out, r.postings)
	return out, nil
}

func (r *StaticRepository) Page(_ context.Context, limit, offset int) ([]Posting, error) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.postings) {
		return []Posting{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(r.postings) {
		end = len(r.postings)
	}
	out := make([]Posting, end-offset)
	copy(out, r.postings[offset:end])
	return out, nil
}
