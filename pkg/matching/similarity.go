package matching

import (
	"context"

	"github.com/artem13815/matcher/pkg/nlp"
)

// Similarity — порт семантического сравнения двух текстов.
// Контракт: результат в [0,100], достаточно симметричен, детерминирован
// для одинаковых входов. Конкретная модель (эмбеддинги и т.п.) — внешний
// коллаборатор; движок скоринга от неё не зависит.
type Similarity interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

// LexicalSimilarity — дефолтная реализация без внешних моделей:
// сравнение множеств ключевых слов. Смесь Жаккара и коэффициента
// перекрытия, чтобы длинное резюме не топило короткое описание вакансии.
type LexicalSimilarity struct{}

func NewLexicalSimilarity() *LexicalSimilarity { return &LexicalSimilarity{} }

func (s *LexicalSimilarity) Score(_ context.Context, a, b string) (float64, error) {
	ka := nlp.Keywords(a)
	kb := nlp.Keywords(b)
	v := 0.4*nlp.Jaccard(ka, kb) + 0.6*nlp.Overlap(ka, kb)
	return v * 100, nil
}
