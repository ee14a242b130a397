package matching

import (
	"errors"

	"github.com/artem13815/matcher/pkg/job"
)

// Веса компонент итогового скора; в сумме дают 1.0.
const (
	WeightSkill    = 0.40
	WeightSemantic = 0.35
	WeightTitle    = 0.25
)

// Пороговые значения итогового скора.
const (
	// ResultThreshold — жёсткий фильтр: матчи ниже не попадают в выдачу вовсе.
	ResultThreshold = 60
	// ExplainThreshold — объяснение генерируется только для матчей не ниже.
	ExplainThreshold = 80
)

// ErrScoringExhausted — ни одна вакансия корпуса не была проскорена.
var ErrScoringExhausted = errors.New("scoring exhausted: no posting could be scored")

// Components — независимые компонентные скоры пары (резюме, вакансия).
type Components struct {
	SkillScore    int      `json:"skillScore"`
	SemanticScore int      `json:"semanticScore"`
	TitleScore    int      `json:"titleScore"`
	MatchedSkills []string `json:"matchedSkills"`
	MissedSkills  []string `json:"missedSkills"`
}

// Result — вакансия, обогащённая компонентами и итоговым скором.
type Result struct {
	job.Posting
	Components
	MatchScore int    `json:"matchScore"`
	MatchLevel string `json:"matchLevel"`
	// Explanation присутствует только у матчей с MatchScore >= ExplainThreshold,
	// и может остаться nil, если генерация объяснения не удалась.
	Explanation *string `json:"matchExplanation"`
}

// Level возвращает метку уровня матча для итогового скора.
func Level(score int) string {
	switch {
	case score >= 80:
		return "Strong"
	case score >= 60:
		return "Good"
	default:
		return "Low"
	}
}
