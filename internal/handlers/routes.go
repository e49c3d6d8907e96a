package handlers

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, analyzeHandler *AnalyzeHandler, answerHandler *AnswerHandler) {
	app.Get("/", HandleIndex)
	app.Get("/health", HandleHealth)

	app.Post("/analyze", analyzeHandler.HandleAnalyze)
	app.Post("/evaluate_answer", answerHandler.HandleEvaluateAnswer)
}
