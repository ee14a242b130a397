package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/matcher/api/http/presenter"
	"github.com/artem13815/matcher/pkg/resume"
	"github.com/artem13815/matcher/pkg/task"
)

// MatchHandler принимает резюме и ставит задачу матчинга в очередь.
type MatchHandler struct {
	uc task.UseCase
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewMatchHandler(uc task.UseCase) *MatchHandler {
	return &MatchHandler{uc: uc, maxBytes: 15 << 20} // 15MB
}

type submitTextRequest struct {
	ResumeText string `json:"resume_text" form:"resume_text"`
}

type submitResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// Submit создаёт асинхронную задачу матчинга резюме против корпуса вакансий.
// @Summary Асинхронный матчинг резюме
// @Description Принимает либо resume_text, либо файл resume_file (PDF/DOCX/TXT) и сразу возвращает id задачи. Статус — через /task-status/{task_id}.
// @Tags    Матчинг
// @Accept  json
// @Accept  multipart/form-data
// @Produce json
// @Param   resume_file formData file false "Файл резюме (PDF, DOCX или TXT)"
// @Param   resume_text formData string false "Текст резюме (взаимоисключим с файлом)"
// @Success 202 {object} submitResponse
// @Failure 400 {object} presenter.ErrorResponse "Невалидный вход: нет ни текста ни файла, оба сразу, либо недопустимый MIME-тип"
// @Failure 503 {object} presenter.ErrorResponse "Очередь задач переполнена"
// @Router  /match-resume-async [post]
func (h *MatchHandler) Submit(c *fiber.Ctx) error {
	in, err := h.buildInput(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	id, err := h.uc.Submit(c.Context(), in)
	switch {
	case errors.Is(err, resume.ErrInvalidInput):
		return presenter.Error(c, http.StatusBadRequest, "resume_text XOR resume_file is required; allowed types: pdf, docx, txt")
	case errors.Is(err, task.ErrQueueFull):
		return presenter.Error(c, http.StatusServiceUnavailable, "matching queue is full, retry later")
	case err != nil:
		return presenter.Error(c, http.StatusInternalServerError, "failed to accept task")
	}
	return presenter.JSON(c, http.StatusAccepted, submitResponse{
		TaskID: id.String(),
		Status: string(task.StatusQueued),
	})
}

// buildInput собирает resume.Input из multipart-файла либо текстового поля.
// XOR-валидация и проверка MIME остаются за resume.Input.Validate.
func (h *MatchHandler) buildInput(c *fiber.Ctx) (resume.Input, error) {
	var in resume.Input

	fh, _ := c.FormFile("resume_file")
	if fh != nil {
		file, err := fh.Open()
		if err != nil {
			return resume.Input{}, fmt.Errorf("failed to open uploaded file")
		}
		defer file.Close()
		data, err := readAtMost(file, h.maxBytes)
		if err != nil {
			return resume.Input{}, err
		}
		in.Filename = fh.Filename
		in.MimeType = declaredMime(fh)
		in.Data = data
	}

	var req submitTextRequest
	// BodyParser понимает и JSON, и form-поля; на чистом multipart без
	// текстового поля может вернуть ошибку — это не повод отклонять файл.
	_ = c.BodyParser(&req)
	in.Text = strings.TrimSpace(req.ResumeText)

	return in, nil
}

// declaredMime берёт MIME из заголовка части, падая обратно на расширение.
func declaredMime(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err == nil && mt != "" && mt != "application/octet-stream" {
		return mt
	}
	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".pdf":
		return resume.MimePDF
	case ".docx":
		return resume.MimeDOCX
	case ".txt":
		return resume.MimeTXT
	default:
		return ct
	}
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
