package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisResult_Normalize(t *testing.T) {
	tests := []struct {
		name        string
		input       AnalysisResult
		wantPercent int
		wantMissing int
		wantMatches int
	}{
		{
			name:        "in range untouched",
			input:       AnalysisResult{MatchPercentage: 72, MissingKeywords: []string{"go", "k8s"}},
			wantPercent: 72,
			wantMissing: 2,
		},
		{
			name:        "percentage above range",
			input:       AnalysisResult{MatchPercentage: 140},
			wantPercent: 100,
		},
		{
			name:        "negative percentage",
			input:       AnalysisResult{MatchPercentage: -3},
			wantPercent: 0,
		},
		{
			name: "keyword lists capped at five",
			input: AnalysisResult{
				MatchPercentage:  50,
				MissingKeywords:  []string{"a", "b", "c", "d", "e", "f", "g"},
				MatchingKeywords: []string{"a", "b", "c", "d", "e", "f"},
			},
			wantPercent: 50,
			wantMissing: 5,
			wantMatches: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.input
			r.Normalize()
			assert.Equal(t, tt.wantPercent, r.MatchPercentage)
			assert.Len(t, r.MissingKeywords, tt.wantMissing)
			assert.Len(t, r.MatchingKeywords, tt.wantMatches)
			assert.NotNil(t, r.ImprovementTips)
			assert.NotNil(t, r.InterviewQuestions)
		})
	}
}

func TestAnswerEvaluationResult_Normalize(t *testing.T) {
	for input, want := range map[int]int{0: 1, 1: 1, 7: 7, 10: 10, 11: 10} {
		r := AnswerEvaluationResult{Rating: input}
		r.Normalize()
		assert.Equal(t, want, r.Rating, "rating %d", input)
	}
}

func TestUnmarshal_FractionalScores(t *testing.T) {
	var match AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(`{"match_percentage": 85.0, "profile_summary": "ok", "matching_keywords": ["Go"]}`), &match))
	assert.Equal(t, 85, match.MatchPercentage)
	assert.Equal(t, "ok", match.ProfileSummary)
	assert.Equal(t, []string{"Go"}, match.MatchingKeywords)

	var answer AnswerEvaluationResult
	require.NoError(t, json.Unmarshal([]byte(`{"rating": 7.5, "feedback": "f", "better_answer": "b"}`), &answer))
	assert.Equal(t, 8, answer.Rating)
	assert.Equal(t, "f", answer.Feedback)
	assert.Equal(t, "b", answer.BetterAnswer)
}

func TestUnmarshal_WrongKindStillFails(t *testing.T) {
	var match AnalysisResult
	assert.Error(t, json.Unmarshal([]byte(`{"match_percentage": "high"}`), &match))

	var answer AnswerEvaluationResult
	assert.Error(t, json.Unmarshal([]byte(`{"rating": "seven"}`), &answer))
}
