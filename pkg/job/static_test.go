package job

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRepositorySortsAndCopies(t *testing.T) {
	src := []Posting{
		{ID: "b", Title: "Backend"},
		{ID: "a", Title: "Analyst"},
		{ID: "c", Title: "Consultant"},
	}
	repo := NewStaticRepository(src)

	// входной слайс не трогаем
	assert.Equal(t, "b", src[0].ID)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].ID, all[1].ID, all[2].ID})

	// выданный слайс — копия внутреннего состояния
	all[0].Title = "mutated"
	again, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Analyst", again[0].Title)
}

func TestStaticRepositoryPage(t *testing.T) {
	repo := NewStaticRepository([]Posting{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"},
	})
	ctx := context.Background()

	page, err := repo.Page(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].ID)
	assert.Equal(t, "c", page[1].ID)

	// страница за пределами корпуса пуста, но не ошибка
	page, err = repo.Page(ctx, 10, 4)
	require.NoError(t, err)
	assert.Empty(t, page)

	// limit шире остатка обрезается
	page, err = repo.Page(ctx, 10, 3)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "d", page[0].ID)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.json")
	payload := `[
		{"id": "j2", "title": "Go Developer", "requiredSkills": ["go", "docker"], "category": "backend"},
		{"id": "j1", "title": "Data Engineer", "requiredSkills": ["python", "sql"], "category": "data"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	repo, err := LoadFile(path)
	require.NoError(t, err)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "j1", all[0].ID)
	assert.Equal(t, []string{"go", "docker"}, all[1].RequiredSkills)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode jobs file")
}
