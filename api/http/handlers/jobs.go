package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/matcher/api/http/presenter"
	"github.com/artem13815/matcher/pkg/job"
)

// JobsHandler — служебный просмотр корпуса вакансий.
type JobsHandler struct {
	repo job.Repository
}

func NewJobsHandler(repo job.Repository) *JobsHandler { return &JobsHandler{repo: repo} }

// List возвращает страницу корпуса вакансий.
// @Summary Список вакансий корпуса
// @Tags    Вакансии
// @Produce json
// @Param   limit  query int false "Размер страницы (по умолчанию 50, максимум 200)"
// @Param   offset query int false "Смещение"
// @Success 200 {array} job.Posting
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /jobs [get]
func (h *JobsHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	postings, err := h.repo.Page(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to read job corpus")
	}
	return presenter.JSON(c, http.StatusOK, postings)
}
