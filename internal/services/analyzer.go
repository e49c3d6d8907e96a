package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// ErrExternalService marks failures of the generation call or of decoding
// its output.
var ErrExternalService = errors.New("external service failure")

var (
	matchRequiredKeys  = []string{"match_percentage", "profile_summary"}
	answerRequiredKeys = []string{"rating", "feedback", "better_answer"}
)

type AnalyzerService interface {
	AnalyzeMatch(ctx context.Context, resumeText, jdText string) (*models.AnalysisResult, error)
	EvaluateAnswer(ctx context.Context, question, answer string) (*models.AnswerEvaluationResult, error)
}

type analyzerService struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	timeout       time.Duration
}

// NewAnalyzerService builds the analyzer. A zero timeout leaves outbound
// calls bounded only by the caller's context.
func NewAnalyzerService(geminiService GeminiService, timeout time.Duration) AnalyzerService {
	return &analyzerService{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
	}
}

func (a *analyzerService) AnalyzeMatch(ctx context.Context, resumeText, jdText string) (*models.AnalysisResult, error) {
	prompt := a.promptBuilder.BuildMatchAnalysisPrompt(resumeText, jdText)
	log.Printf("📝 Match analysis prompt length: %d characters", len(prompt))

	var result models.AnalysisResult
	if err := a.generate(ctx, prompt, &result, matchRequiredKeys...); err != nil {
		log.Printf("❌ Match analysis failed: %v", err)
		return nil, err
	}

	result.Normalize()
	return &result, nil
}

func (a *analyzerService) EvaluateAnswer(ctx context.Context, question, answer string) (*models.AnswerEvaluationResult, error) {
	prompt := a.promptBuilder.BuildAnswerEvaluationPrompt(question, answer)

	var result models.AnswerEvaluationResult
	if err := a.generate(ctx, prompt, &result, answerRequiredKeys...); err != nil {
		log.Printf("❌ Answer evaluation failed: %v", err)
		return nil, err
	}

	result.Normalize()
	return &result, nil
}

func (a *analyzerService) generate(ctx context.Context, prompt string, target interface{}, requiredKeys ...string) error {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	response, err := a.geminiService.GenerateJSON(ctx, prompt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExternalService, err)
	}

	if err := parseJSONResponse(response, target, requiredKeys...); err != nil {
		return fmt.Errorf("%w: %w", ErrExternalService, err)
	}

	return nil
}

// parseJSONResponse decodes the model output into target. Every required key
// must be present and non-null, otherwise the reply is rejected rather than
// filled in with zero values.
func parseJSONResponse(response string, target interface{}, requiredKeys ...string) error {
	// The model may still wrap JSON in markdown even in JSON mode
	jsonStr := extractJSON(response)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	var missing []string
	for _, key := range requiredKeys {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("response is missing required keys: %s", strings.Join(missing, ", "))
	}

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON tries to extract a JSON object from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}
