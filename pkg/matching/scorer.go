package matching

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/artem13815/matcher/pkg/job"
	"github.com/artem13815/matcher/pkg/nlp"
	"github.com/artem13815/matcher/pkg/resume"
)

// titleDecay — коэффициент затухания веса должности по мере её давности.
const titleDecay = 0.8

// Engine — чистый движок скоринга: (Parsed, Posting) -> Result.
type Engine struct {
	sim    Similarity
	logger *zap.Logger
}

func NewEngine(sim Similarity, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{sim: sim, logger: logger}
}

// Score считает три компонентных скора и итоговый взвешенный.
// Возвращает ошибку только для битой вакансии или отказа провайдера
// семантики; такие вакансии пропускаются на уровне Rank.
func (e *Engine) Score(ctx context.Context, r resume.Parsed, j job.Posting) (Result, error) {
	if j.ID == "" {
		return Result{}, fmt.Errorf("malformed posting: empty id")
	}
	if j.Title == "" && j.Description == "" {
		return Result{}, fmt.Errorf("malformed posting %s: no title and no description", j.ID)
	}

	skillScore, matched, missed := e.skillScore(r, j)

	semRaw, err := e.sim.Score(ctx, r.FullText, j.Description)
	if err != nil {
		return Result{}, fmt.Errorf("semantic score for posting %s: %w", j.ID, err)
	}
	semanticScore := clampScore(semRaw)

	titleScore := e.titleScore(r.Titles, j.Title)

	combined := int(math.Round(
		WeightSkill*float64(skillScore) +
			WeightSemantic*float64(semanticScore) +
			WeightTitle*float64(titleScore),
	))

	return Result{
		Posting: j,
		Components: Components{
			SkillScore:    skillScore,
			SemanticScore: semanticScore,
			TitleScore:    titleScore,
			MatchedSkills: matched,
			MissedSkills:  missed,
		},
		MatchScore: combined,
		MatchLevel: Level(combined),
	}, nil
}

// skillScore — доля требуемых навыков, найденных в резюме (через алиасы
// множества навыков либо как целая фраза в полном тексте).
func (e *Engine) skillScore(r resume.Parsed, j job.Posting) (score int, matched, missed []string) {
	matched = []string{}
	missed = []string{}
	skillSet := r.SkillSet()
	normalizedText := nlp.NormalizeText(r.FullText)
	total := 0
	for _, required := range j.RequiredSkills {
		canon := nlp.CanonicalSkill(required)
		if canon == "" {
			continue
		}
		total++
		found := false
		if _, ok := skillSet[canon]; ok {
			found = true
		} else {
			for _, v := range nlp.SkillVariants(required) {
				if nlp.ContainsPhrase(normalizedText, v) {
					found = true
					break
				}
			}
		}
		if found {
			matched = append(matched, required)
		} else {
			missed = append(missed, required)
		}
	}
	if total == 0 {
		return 0, matched, missed
	}
	return int(math.Round(float64(len(matched)) / float64(total) * 100)), matched, missed
}

// titleScore — максимум по должностям резюме от (похожесть на заголовок
// вакансии) * (затухание по давности должности).
func (e *Engine) titleScore(titles []string, jobTitle string) int {
	jobTokens := nlp.Tokens(nlp.NormalizeText(jobTitle))
	if len(jobTokens) == 0 {
		return 0
	}
	best := 0.0
	weight := 1.0
	for _, title := range titles {
		tokens := nlp.Tokens(nlp.NormalizeText(title))
		s := nlp.Overlap(tokens, jobTokens) * weight
		if s > best {
			best = s
		}
		weight *= titleDecay
	}
	return clampScore(best * 100)
}

// Rank скорит резюме против всего корпуса, пропуская сбойные вакансии.
// progress, если задан, получает (обработано, всего) после каждой вакансии.
// ErrScoringExhausted возвращается только когда не удалась ни одна вакансия
// непустого корпуса.
func (e *Engine) Rank(ctx context.Context, r resume.Parsed, postings []job.Posting, progress func(done, total int)) ([]Result, error) {
	total := len(postings)
	results := make([]Result, 0, total)
	failed := 0
	for i, p := range postings {
		res, err := e.Score(ctx, r, p)
		if err != nil {
			failed++
			e.logger.Warn("posting skipped", zap.String("posting_id", p.ID), zap.Error(err))
		} else if res.MatchScore >= ResultThreshold {
			results = append(results, res)
		}
		if progress != nil {
			progress(i+1, total)
		}
	}
	if total > 0 && failed == total {
		return nil, fmt.Errorf("%w (%d postings)", ErrScoringExhausted, total)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		if results[i].SkillScore != results[j].SkillScore {
			return results[i].SkillScore > results[j].SkillScore
		}
		return results[i].Posting.ID < results[j].Posting.ID
	})
	return results, nil
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
