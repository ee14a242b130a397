package resume

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/artem13815/matcher/pkg/nlp"
)

// Normalizer превращает сырой вход в каноническое Parsed.
// Детерминирован: байт-идентичный вход даёт идентичный результат.
type Normalizer struct {
	dictionary []string
	maxTitles  int
}

// NewNormalizer builds a normalizer over the shared skills dictionary.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		dictionary: nlp.KnownSkills,
		maxTitles:  5,
	}
}

// Normalize валидирует вход, извлекает текст и строит Parsed.
func (n *Normalizer) Normalize(_ context.Context, in Input) (Parsed, error) {
	if err := in.Validate(); err != nil {
		return Parsed{}, err
	}
	var text string
	if in.Text != "" {
		text = normalizeWhitespace(in.Text)
	} else {
		var err error
		text, err = ExtractText(in.MimeType, in.Data)
		if err != nil {
			return Parsed{}, err
		}
	}
	if text == "" {
		return Parsed{}, fmt.Errorf("%w: empty resume content", ErrParseFailure)
	}
	return Parsed{
		Skills:   n.extractSkills(text),
		Titles:   n.extractTitles(text),
		FullText: text,
	}, nil
}

// extractSkills сканирует словарь по нормализованному тексту и сворачивает
// найденные навыки к каноническому написанию.
func (n *Normalizer) extractSkills(text string) []string {
	normalized := nlp.NormalizeText(text)
	seen := map[string]struct{}{}
	var out []string
	for _, skill := range n.dictionary {
		found := false
		for _, v := range nlp.SkillVariants(skill) {
			if nlp.ContainsPhrase(normalized, v) {
				found = true
				break
			}
		}
		if !found {
			continue
		}
		canon := nlp.CanonicalSkill(skill)
		if _, ok := seen[canon]; ok {
			continue
		}
		seen[canon] = struct{}{}
		out = append(out, canon)
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}

// extractTitles берёт строки, похожие на должности, в порядке появления.
// Резюме перечисляют опыт от свежего к старому, поэтому порядок строк
// и есть "самая свежая первой".
func (n *Normalizer) extractTitles(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 80 {
			continue
		}
		normalized := nlp.NormalizeText(line)
		if !looksLikeTitle(normalized) {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, line)
		if len(out) >= n.maxTitles {
			break
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func looksLikeTitle(normalizedLine string) bool {
	tokens := nlp.TokensList(normalizedLine)
	if len(tokens) == 0 || len(tokens) > 6 {
		return false
	}
	for _, t := range tokens {
		if nlp.TitleMarkers[t] {
			return true
		}
	}
	return false
}
