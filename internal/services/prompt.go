package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchAnalysisPrompt creates the recruiter prompt comparing a resume to a JD
func (pb *PromptBuilder) BuildMatchAnalysisPrompt(resumeText, jdText string) string {
	return fmt.Sprintf(`Act as a Senior Technical Recruiter. Evaluate this Resume against the JD.

Resume: %s
JD: %s

Output strictly JSON with these keys:
1. "match_percentage": (integer 0-100)
2. "missing_keywords": (list of top 5 critical missing skills)
3. "matching_keywords": (list of top 5 skills the candidate HAS that match the JD)
4. "profile_summary": (2 line sharp critique)
5. "improvement_tips": (List of 3 specific, actionable tips to increase score)
6. "interview_questions": (List of 3 technical conceptual questions based on gaps)`,
		resumeText, jdText)
}

// BuildAnswerEvaluationPrompt creates the interviewer prompt grading one answer
func (pb *PromptBuilder) BuildAnswerEvaluationPrompt(question, answer string) string {
	return fmt.Sprintf(`You are a Technical Interviewer.
Question: "%s"
Candidate Answer: "%s"

Rate and Feedback strictly in JSON:
{
    "rating": (integer 1-10),
    "feedback": (1 sentence constructive feedback),
    "better_answer": (A short, ideal answer example)
}`,
		question, answer)
}
