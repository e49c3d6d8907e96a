package models

import (
	"encoding/json"
	"math"
)

const (
	MaxKeywords        = 5
	MinMatchPercentage = 0
	MaxMatchPercentage = 100
	MinRating          = 1
	MaxRating          = 10
)

// AnalysisResult is the structured resume-vs-JD match returned by /analyze.
type AnalysisResult struct {
	MatchPercentage    int      `json:"match_percentage"`
	MissingKeywords    []string `json:"missing_keywords"`
	MatchingKeywords   []string `json:"matching_keywords"`
	ProfileSummary     string   `json:"profile_summary"`
	ImprovementTips    []string `json:"improvement_tips"`
	InterviewQuestions []string `json:"interview_questions"`
}

// Normalize clamps the percentage into 0-100 and caps keyword lists at five
// entries. Nil lists become empty so they encode as [] rather than null.
func (r *AnalysisResult) Normalize() {
	r.MatchPercentage = clamp(r.MatchPercentage, MinMatchPercentage, MaxMatchPercentage)
	r.MissingKeywords = capList(r.MissingKeywords, MaxKeywords)
	r.MatchingKeywords = capList(r.MatchingKeywords, MaxKeywords)
	r.ImprovementTips = capList(r.ImprovementTips, -1)
	r.InterviewQuestions = capList(r.InterviewQuestions, -1)
}

// UnmarshalJSON accepts any JSON number for match_percentage and rounds it.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	type plain AnalysisResult
	aux := struct {
		MatchPercentage float64 `json:"match_percentage"`
		*plain
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.MatchPercentage = roundScore(aux.MatchPercentage)
	return nil
}

type AnswerEvaluationRequest struct {
	Question   string `json:"question"`
	UserAnswer string `json:"user_answer"`
}

type AnswerEvaluationResult struct {
	Rating       int    `json:"rating"`
	Feedback     string `json:"feedback"`
	BetterAnswer string `json:"better_answer"`
}

// UnmarshalJSON accepts any JSON number for rating and rounds it.
func (r *AnswerEvaluationResult) UnmarshalJSON(data []byte) error {
	type plain AnswerEvaluationResult
	aux := struct {
		Rating float64 `json:"rating"`
		*plain
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Rating = roundScore(aux.Rating)
	return nil
}

// Normalize clamps the rating into 1-10.
func (r *AnswerEvaluationResult) Normalize() {
	r.Rating = clamp(r.Rating, MinRating, MaxRating)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// roundScore rounds half away from zero, saturating at the int range.
func roundScore(v float64) int {
	v = math.Round(v)
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int(v)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// capList trims list to at most limit entries; a negative limit keeps all.
func capList(list []string, limit int) []string {
	if list == nil {
		return []string{}
	}
	if limit >= 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
