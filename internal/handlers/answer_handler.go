package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type AnswerHandler struct {
	analyzer services.AnalyzerService
}

func NewAnswerHandler(analyzer services.AnalyzerService) *AnswerHandler {
	return &AnswerHandler{
		analyzer: analyzer,
	}
}

// HandleEvaluateAnswer handles POST /evaluate_answer
func (h *AnswerHandler) HandleEvaluateAnswer(c *fiber.Ctx) error {
	var req models.AnswerEvaluationRequest

	if err := c.BodyParser(&req); err != nil {
		return respondError(c, "Invalid request payload")
	}

	result, err := h.analyzer.EvaluateAnswer(c.UserContext(), req.Question, req.UserAnswer)
	if err != nil {
		return respondError(c, err.Error())
	}

	return c.JSON(result)
}
