package resume

import (
	"errors"
	"strings"
)

// Допустимые MIME-типы загружаемого резюме.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTXT  = "text/plain"
)

var (
	// ErrInvalidInput — вход отвергнут до создания задачи (нет текста/файла,
	// оба сразу, либо недопустимый MIME-тип).
	ErrInvalidInput = errors.New("invalid resume input")
	// ErrParseFailure — файл принят, но извлечь текст не удалось; роняет задачу.
	ErrParseFailure = errors.New("resume parse failure")
)

// Input — сырое резюме: либо текст, либо файл с заявленным MIME-типом.
type Input struct {
	Text     string
	Filename string
	MimeType string
	Data     []byte
}

// Validate проверяет контракт "ровно один из двух" и MIME-тип.
func (in Input) Validate() error {
	hasText := strings.TrimSpace(in.Text) != ""
	hasFile := len(in.Data) > 0
	if hasText == hasFile {
		return ErrInvalidInput
	}
	if hasFile {
		switch in.MimeType {
		case MimePDF, MimeDOCX, MimeTXT:
		default:
			return ErrInvalidInput
		}
	}
	return nil
}

// Parsed — каноническое представление резюме после нормализации.
// Иммутабельно: создаётся Normalizer-ом, читается только скорингом.
type Parsed struct {
	// Skills — нормализованные, alias-свёрнутые навыки, отсортированы.
	Skills []string
	// Titles — должности, самая свежая первой.
	Titles []string
	// FullText — полный извлечённый текст.
	FullText string
}

// SkillSet возвращает навыки как множество для пересечений.
func (p Parsed) SkillSet() map[string]struct{} {
	out := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		out[s] = struct{}{}
	}
	return out
}
