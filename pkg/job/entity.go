package job

import "context"

// Posting описывает вакансию из внешнего корпуса. Данные read-only:
// сервис только читает корпус, наполнение и обновление — зона ingestion-пайплайна.
type Posting struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"requiredSkills"`
	Category       string   `json:"category"`
}

// Repository — порт доступа к корпусу вакансий.
type Repository interface {
	// List возвращает актуальный срез корпуса для скоринга.
	List(ctx context.Context) ([]Posting, error)
	// Page возвращает страницу корпуса для служебного просмотра.
	Page(ctx context.Context, limit, offset int) ([]Posting, error)
}
