package nlp

import (
	"strings"
)

// aliasTable maps a normalized skill to its interchangeable spellings.
// Kept small and curated; extend as the corpus demands.
var aliasTable = map[string][]string{
	"postgres":   {"postgresql"},
	"postgresql": {"postgres"},
	"k8s":        {"kubernetes"},
	"kubernetes": {"k8s"},
	"golang":     {"go"},
	"go":         {"golang"},
	"js":         {"javascript"},
	"javascript": {"js"},
	"ts":         {"typescript"},
	"typescript": {"ts"},
	"rest":       {"rest api"},
	"rest api":   {"rest"},
	"ci cd":      {"cicd", "ci/cd"},
	"cicd":       {"ci cd", "ci/cd"},
	"gcp":        {"google cloud"},
	"google cloud": {"gcp"},
	"aws":          {"amazon web services"},
	"amazon web services": {"aws"},
	"ml":               {"machine learning"},
	"machine learning": {"ml"},
}

// SkillVariants returns normalized variants for matching (synonyms/aliases).
func SkillVariants(skill string) []string {
	base := NormalizeSkill(skill)
	if base == "" {
		return []string{}
	}
	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = NormalizeSkill(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(base)
	for _, a := range aliasTable[base] {
		add(a)
	}

	// Token-level expansions (for multi-word skills)
	parts := strings.Split(base, " ")
	if len(parts) > 1 {
		var expanded []string
		for _, p := range parts {
			expanded = append(expanded, TokenVariants(p)...)
		}
		if len(expanded) > 0 {
			add(strings.Join(expanded, " "))
		}
	}

	return out
}

// TokenVariants returns normalized token variants.
func TokenVariants(token string) []string {
	t := NormalizeSkill(token)
	if t == "" {
		return []string{}
	}
	if aliases, ok := aliasTable[t]; ok {
		out := []string{t}
		for _, a := range aliases {
			if !strings.Contains(a, " ") {
				out = append(out, a)
			}
		}
		return out
	}
	return []string{t}
}

// CanonicalSkill сводит навык и его алиасы к одному написанию,
// чтобы пересечение множеств навыков не зависело от варианта написания.
func CanonicalSkill(skill string) string {
	base := NormalizeSkill(skill)
	if base == "" {
		return ""
	}
	variants := append([]string{base}, aliasTable[base]...)
	canon := variants[0]
	for _, v := range variants[1:] {
		if v < canon {
			canon = v
		}
	}
	return canon
}
