package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artem13815/matcher/pkg/llm"
	"github.com/artem13815/matcher/pkg/resume"
)

// Explainer — порт генерации короткого обоснования сильного матча.
// Вызывается только для результатов с MatchScore >= ExplainThreshold;
// отказ генерации не влияет на включение результата в выдачу.
type Explainer interface {
	Explain(ctx context.Context, r resume.Parsed, res Result) (string, error)
}

// ChatExplainer строит обоснование через chat-LLM (OpenRouter и т.п.).
type ChatExplainer struct {
	model    llm.ChatModel
	maxChars int
}

func NewChatExplainer(model llm.ChatModel) *ChatExplainer {
	return &ChatExplainer{model: model, maxChars: 6000}
}

func (c *ChatExplainer) Explain(ctx context.Context, r resume.Parsed, res Result) (string, error) {
	if c.model == nil {
		return "", errors.New("chat model is not configured")
	}
	text := r.FullText
	if len(text) > c.maxChars {
		text = text[:c.maxChars]
	}
	system := "Ты HR-аналитик. Объясняешь, почему кандидат подходит на вакансию. Отвечай кратко, 2-3 предложения, без списков и преамбулы."
	user := fmt.Sprintf(
		"Вакансия:\nНазвание: %s\nОписание: %s\n\nИтоговый скор: %d из 100\nСовпавшие навыки: %s\nОтсутствующие навыки: %s\n\nФрагмент резюме:\n<<<\n%s\n>>>\n\nСформулируй короткое обоснование сильного соответствия кандидата этой вакансии.",
		res.Title,
		res.Description,
		res.MatchScore,
		strings.Join(res.MatchedSkills, ", "),
		strings.Join(res.MissedSkills, ", "),
		text,
	)
	answer, err := c.model.Ask(ctx, system, user)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", errors.New("empty explanation from model")
	}
	return answer, nil
}
