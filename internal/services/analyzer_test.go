package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGemini struct {
	response string
	err      error
	prompts  []string
	deadline bool
}

func (f *fakeGemini) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	_, f.deadline = ctx.Deadline()
	return f.response, f.err
}

const matchJSON = `{
	"match_percentage": 78,
	"missing_keywords": ["Kubernetes", "gRPC"],
	"matching_keywords": ["Go", "PostgreSQL", "REST"],
	"profile_summary": "Solid backend engineer. Light on infrastructure.",
	"improvement_tips": ["Add k8s project", "Quantify impact", "List gRPC work"],
	"interview_questions": ["Explain pods", "What is protobuf?", "How do you scale Postgres?"]
}`

func TestAnalyzeMatch_Success(t *testing.T) {
	gemini := &fakeGemini{response: matchJSON}
	analyzer := NewAnalyzerService(gemini, time.Minute)

	result, err := analyzer.AnalyzeMatch(context.Background(), "resume text", "jd text")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 78, result.MatchPercentage)
	assert.Equal(t, []string{"Kubernetes", "gRPC"}, result.MissingKeywords)
	assert.Len(t, result.MatchingKeywords, 3)
	assert.NotEmpty(t, result.ProfileSummary)
	assert.Len(t, result.ImprovementTips, 3)
	assert.Len(t, result.InterviewQuestions, 3)

	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "resume text")
	assert.Contains(t, gemini.prompts[0], "jd text")
	assert.True(t, gemini.deadline, "timeout applied to outbound call")
}

func TestAnalyzeMatch_NormalizesOutOfRangeValues(t *testing.T) {
	gemini := &fakeGemini{response: `{"match_percentage": 130, "profile_summary": "s", "missing_keywords": ["a","b","c","d","e","f"]}`}

	result, err := NewAnalyzerService(gemini, 0).AnalyzeMatch(context.Background(), "r", "j")
	require.NoError(t, err)
	assert.Equal(t, 100, result.MatchPercentage)
	assert.Len(t, result.MissingKeywords, 5)
	assert.False(t, gemini.deadline, "zero timeout adds no deadline")
}

func TestAnalyzeMatch_MarkdownWrappedJSON(t *testing.T) {
	gemini := &fakeGemini{response: "```json\n" + matchJSON + "\n```"}

	result, err := NewAnalyzerService(gemini, 0).AnalyzeMatch(context.Background(), "r", "j")
	require.NoError(t, err)
	assert.Equal(t, 78, result.MatchPercentage)
}

func TestAnalyzeMatch_Failures(t *testing.T) {
	tests := []struct {
		name   string
		gemini *fakeGemini
	}{
		{name: "api error", gemini: &fakeGemini{err: errors.New("quota exceeded")}},
		{name: "malformed json", gemini: &fakeGemini{response: `{"match_percentage": `}},
		{name: "not json at all", gemini: &fakeGemini{response: "I cannot help with that."}},
		{name: "wrong types", gemini: &fakeGemini{response: `{"match_percentage": "high", "profile_summary": "s"}`}},
		{name: "empty object", gemini: &fakeGemini{response: `{}`}},
		{name: "missing summary", gemini: &fakeGemini{response: `{"match_percentage": 50}`}},
		{name: "null percentage", gemini: &fakeGemini{response: `{"match_percentage": null, "profile_summary": "s"}`}},
		{name: "json array", gemini: &fakeGemini{response: `["a", "b"]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewAnalyzerService(tt.gemini, 0).AnalyzeMatch(context.Background(), "r", "j")
			assert.Nil(t, result)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrExternalService)
			assert.NotEmpty(t, err.Error())
		})
	}
}

func TestEvaluateAnswer_Success(t *testing.T) {
	gemini := &fakeGemini{response: `{"rating": 8, "feedback": "Correct but brief.", "better_answer": "A dictionary (hash map) maps unique keys to values."}`}

	result, err := NewAnalyzerService(gemini, 0).EvaluateAnswer(
		context.Background(),
		"What is a mapping from keys to values called?",
		"A dictionary.",
	)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Rating, 1)
	assert.LessOrEqual(t, result.Rating, 10)
	assert.NotEmpty(t, result.Feedback)
	assert.NotEmpty(t, result.BetterAnswer)
	assert.Contains(t, gemini.prompts[0], "A dictionary.")
}

func TestAnalyzeMatch_FractionalPercentage(t *testing.T) {
	gemini := &fakeGemini{response: `{"match_percentage": 85.0, "profile_summary": "Good fit."}`}

	result, err := NewAnalyzerService(gemini, 0).AnalyzeMatch(context.Background(), "r", "j")
	require.NoError(t, err)
	assert.Equal(t, 85, result.MatchPercentage)
}

func TestEvaluateAnswer_FractionalRating(t *testing.T) {
	gemini := &fakeGemini{response: `{"rating": 7.5, "feedback": "Close.", "better_answer": "A dictionary."}`}

	result, err := NewAnalyzerService(gemini, 0).EvaluateAnswer(context.Background(), "q", "a")
	require.NoError(t, err)
	assert.Equal(t, 8, result.Rating)
}

func TestEvaluateAnswer_MissingKeys(t *testing.T) {
	tests := []struct {
		name     string
		response string
		missing  string
	}{
		{name: "empty object", response: `{}`, missing: "rating, feedback, better_answer"},
		{name: "foreign schema", response: `{"score": 9, "comment": "good"}`, missing: "rating, feedback, better_answer"},
		{name: "no better answer", response: `{"rating": 6, "feedback": "ok"}`, missing: "better_answer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gemini := &fakeGemini{response: tt.response}

			result, err := NewAnalyzerService(gemini, 0).EvaluateAnswer(context.Background(), "q", "a")
			assert.Nil(t, result)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrExternalService)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestEvaluateAnswer_Failure(t *testing.T) {
	gemini := &fakeGemini{err: context.DeadlineExceeded}

	result, err := NewAnalyzerService(gemini, 0).EvaluateAnswer(context.Background(), "q", "a")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrExternalService)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain object", input: `{"a": 1}`, expected: `{"a": 1}`},
		{name: "json fence", input: "```json\n{\"a\": 1}\n```", expected: `{"a": 1}`},
		{name: "preamble", input: "Here you go: {\"a\": {\"b\": 2}} thanks", expected: `{"a": {"b": 2}}`},
		{name: "no object", input: "  nothing here  ", expected: "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSON(tt.input))
		})
	}
}
