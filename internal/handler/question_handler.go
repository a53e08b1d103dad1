package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	"github.com/yourusername/rewardquiz-api/internal/handler/dto"
	"github.com/yourusername/rewardquiz-api/internal/service"
)

// QuestionHandler обрабатывает запросы управления корпусом вопросов.
// Все маршруты доступны только администраторам.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// AnswerInput представляет вариант ответа в запросе создания/изменения
type AnswerInput struct {
	Text      string `json:"text" binding:"required,max=200"`
	IsCorrect bool   `json:"is_correct"`
}

// CreateQuestionRequest представляет запрос на создание вопроса
type CreateQuestionRequest struct {
	Text    string        `json:"text" binding:"required,min=3,max=500"`
	Image   string        `json:"image" binding:"omitempty"`
	Answers []AnswerInput `json:"answers" binding:"required,len=4,dive"`
}

// UpdateQuestionRequest представляет запрос на изменение вопроса.
// Непереданные поля остаются без изменений.
type UpdateQuestionRequest struct {
	Text    *string       `json:"text" binding:"omitempty,min=3,max=500"`
	Image   *string       `json:"image"`
	Answers []AnswerInput `json:"answers" binding:"omitempty,len=4,dive"`
}

// ListQuestions возвращает весь корпус вопросов
// GET /api/questions
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.ListQuestions()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminQuestionListResponse(questions))
}

// GetQuestion возвращает вопрос по ID
// GET /api/questions/:id
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	question, err := h.questionService.GetQuestion(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminQuestionResponse(question))
}

// CreateQuestion обрабатывает запрос на создание вопроса
// POST /api/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	question, err := h.questionService.CreateQuestion(req.Text, req.Image, toAnswerList(req.Answers), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAdminQuestionResponse(question))
}

// UpdateQuestion обрабатывает запрос на изменение вопроса
// PUT /api/questions/:id
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var answers []entity.Answer
	if req.Answers != nil {
		answers = toAnswerList(req.Answers)
	}

	question, err := h.questionService.UpdateQuestion(c.Param("id"), req.Text, req.Image, answers)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminQuestionResponse(question))
}

// DeleteQuestion обрабатывает запрос на удаление вопроса
// DELETE /api/questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.questionService.DeleteQuestion(c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportQuestions экспортирует корпус вопросов в CSV или Excel формате
// GET /api/questions/export?format=csv|xlsx
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	questions, err := h.questionService.ListQuestions()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("questions_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, questions, filename)
	default:
		h.exportCSV(c, questions, filename)
	}
}

var exportHeaders = []string{"ID", "Текст", "Изображение", "Вариант 1", "Вариант 2", "Вариант 3", "Вариант 4", "Правильный вариант", "Создан"}

// exportCSV экспортирует вопросы в CSV с правильным экранированием спецсимволов
func (h *QuestionHandler) exportCSV(c *gin.Context, questions []entity.Question, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)

	for i := range questions {
		writer.Write(questionExportRow(&questions[i]))
	}
}

// exportXLSX экспортирует вопросы в Excel с использованием StreamWriter
func (h *QuestionHandler) exportXLSX(c *gin.Context, questions []entity.Question, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Вопросы"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuestionHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, header := range exportHeaders {
		headers[i] = header
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuestionHandler] Ошибка записи заголовков: %v", err)
	}

	for i := range questions {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		values := questionExportRow(&questions[i])
		row := make([]interface{}, len(values))
		for j, value := range values {
			row[j] = value
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[QuestionHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[QuestionHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuestionHandler] Ошибка записи Excel в response: %v", err)
	}
}

// questionExportRow собирает одну строку экспорта
func questionExportRow(q *entity.Question) []string {
	row := make([]string, 0, len(exportHeaders))
	row = append(row, q.ID, sanitizeForExcel(q.Text))

	hasImage := "Нет"
	if q.Image != "" {
		hasImage = "Да"
	}
	row = append(row, hasImage)

	for i := 0; i < entity.AnswerCount; i++ {
		text := ""
		if i < len(q.Answers) {
			text = sanitizeForExcel(q.Answers[i].Text)
		}
		row = append(row, text)
	}

	row = append(row, strconv.Itoa(q.CorrectIndex()+1), q.CreatedAt.Format("2006-01-02 15:04:05"))
	return row
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// toAnswerList преобразует входные варианты в доменный тип
func toAnswerList(inputs []AnswerInput) []entity.Answer {
	answers := make([]entity.Answer, 0, len(inputs))
	for _, input := range inputs {
		answers = append(answers, entity.Answer{Text: input.Text, IsCorrect: input.IsCorrect})
	}
	return answers
}
