package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/mock-interview/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// QuestionPromptInput carries everything the question prompt is built from.
type QuestionPromptInput struct {
	ResumeText     string
	JobDescription string
	CompanyDetails string
	CompanyContext string
	PreviousAnswer string
	NumQuestions   int
	IsFollowUp     bool
}

// BuildQuestionsPrompt creates the prompt for opening or follow-up interview questions.
func (pb *PromptBuilder) BuildQuestionsPrompt(in QuestionPromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d short and direct interview questions for a candidate whose resume is:\n%s\n\n", in.NumQuestions, in.ResumeText)
	fmt.Fprintf(&b, "For a job with this description:\n%s\n\n", in.JobDescription)
	fmt.Fprintf(&b, "And for a company described as:\n%s\n\n", in.CompanyDetails)

	if in.CompanyContext != "" {
		fmt.Fprintf(&b, "Additional company knowledge:\n%s\n\n", in.CompanyContext)
	}

	b.WriteString("Questions must be tailored to specific details from the candidate's resume, such as skills, experiences, or projects mentioned, and how they relate to the job description.\n")
	b.WriteString("Make the questions realistic like a human interviewer: include a mix of technical, behavioral, scenario-based (e.g., 'What would you do if...'), experience-based, and 1-2 company/role-interest questions (e.g., 'Why do you want to work at this company?', 'Why are you excited about this role?'). Ensure variety, progression in difficulty, and relevance to the resume, job, and company. Avoid repetitions and make them engaging.\n")
	b.WriteString("Each question must be numbered (e.g., '1. Why are you excited about this role?').\n")

	if !in.IsFollowUp {
		fmt.Fprintf(&b, "The first question must be about the candidate's interest in the role or company (e.g., '1. Why are you excited about this %s role at our company?').\n", in.JobDescription)
	} else {
		b.WriteString("These are follow-up questions based on the previous answer. Avoid repeating introductory, background, or company-interest questions. Probe deeper into the previous answer with specific, relevant questions, including scenario-based follow-ups if applicable. Incorporate resume details where relevant to the previous answer.\n")
	}

	if in.PreviousAnswer != "" {
		fmt.Fprintf(&b, "The candidate's previous answer was:\n%s\n\nGenerate follow-ups that probe deeper, ask for examples, or address gaps. Include scenario-based questions related to the answer.\n", in.PreviousAnswer)
	}

	fmt.Fprintf(&b, "Provide the questions in plain text, numbered 1 to %d, each question under 15 words. Ensure no duplicates and high variety.", in.NumQuestions)

	return b.String()
}

// BuildSummaryPrompt creates the prompt that scores a finished interview.
func (pb *PromptBuilder) BuildSummaryPrompt(resumeText, jobDescription, companyDetails, companyContext, transcript string) string {
	if companyContext == "" {
		companyContext = "No additional company knowledge."
	}

	return fmt.Sprintf(`You are an experienced interviewer evaluating a candidate's interview based on their answers.

CANDIDATE RESUME:
%s

JOB DESCRIPTION:
%s

COMPANY:
%s

COMPANY KNOWLEDGE:
%s

INTERVIEW TRANSCRIPT:
%s

Return your response in the following JSON format:
{
  "communication": <integer 0-10, clarity, coherence and articulation>,
  "confidence": <integer 0-10, assertiveness and composure>,
  "domain_knowledge": <integer 0-10, technical accuracy and relevance to the job description>,
  "overall_score": <integer 0-10, average of the three scores>,
  "strengths": ["<3-5 specific strengths, 1-2 sentences each, tied to answers, resume or job requirements>"],
  "weaknesses": ["<3-5 specific areas to improve, 1-2 sentences each, with actionable advice>"],
  "feedback": "<3-5 sentences summarizing performance and offering actionable advice>"
}

Ensure scores reflect the quality of answers relative to the resume and job description.
Return ONLY the JSON object.`,
		resumeText, jobDescription, companyDetails, companyContext, transcript)
}

// BuildTranscript numbers question/answer pairs as "Q1: ...\nA1: ...".
func (pb *PromptBuilder) BuildTranscript(answers []models.QuestionAnswer) string {
	lines := make([]string, 0, len(answers))
	for i, qa := range answers {
		lines = append(lines, fmt.Sprintf("Q%d: %s\nA%d: %s", i+1, qa.Question, i+1, qa.Answer))
	}
	return strings.Join(lines, "\n")
}

// BuildRetrievalQuery creates the query text used to search company knowledge.
func (pb *PromptBuilder) BuildRetrievalQuery(docType, jobDescription, company string) string {
	switch docType {
	case DocTypeCompanyProfile:
		return fmt.Sprintf("Company profile, mission, products and culture of %s", company)
	case DocTypeRoleGuide:
		return fmt.Sprintf("Role expectations and required skills for %s", jobDescription)
	case DocTypeInterviewRubric:
		return "Interview evaluation criteria and scoring guidelines"
	default:
		return jobDescription
	}
}

// FormatRAGContext joins retrieved chunks into a prompt section.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (%s, score %.2f) ---\n%s",
			i+1, result.DocType, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
