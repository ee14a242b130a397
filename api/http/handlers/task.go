package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/matcher/api/http/presenter"
	"github.com/artem13815/matcher/pkg/task"
)

// TaskHandler отдаёт снимок задачи по id.
type TaskHandler struct {
	uc task.UseCase
}

func NewTaskHandler(uc task.UseCase) *TaskHandler { return &TaskHandler{uc: uc} }

// Status возвращает текущее состояние задачи матчинга.
// @Summary Статус задачи матчинга
// @Description Снимок задачи: status, progress, на completed — ранжированные результаты, на failed — текст ошибки.
// @Tags    Матчинг
// @Produce json
// @Param   task_id path string true "ID задачи (UUID)"
// @Success 200 {object} task.Task
// @Failure 404 {object} presenter.ErrorResponse "Неизвестный или уже вычищенный id"
// @Router  /task-status/{task_id} [get]
func (h *TaskHandler) Status(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("task_id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "unknown task id")
	}
	t, err := h.uc.Status(id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "unknown task id")
		}
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, t)
}
