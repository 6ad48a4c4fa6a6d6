package models

type CandidateResponse struct {
	Status string `json:"status"`
	Candidate
}

type ConfirmCandidateRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	CompanyDetails string `json:"company_details"`
}

type GenerateQuestionsRequest struct {
	JobDescription string `json:"job_description"`
	PreviousAnswer string `json:"previous_answer"`
	NumQuestions   int    `json:"num_questions"`
	IsFollowUp     bool   `json:"is_follow_up"`
}

type QuestionsResponse struct {
	Status    string   `json:"status"`
	Questions []string `json:"questions"`
	Error     string   `json:"error,omitempty"`
}

type GenerateResponseRequest struct {
	Prompt string `json:"prompt"`
}

type TTSRequest struct {
	Text string `json:"text"`
}

type StoreAnswersRequest struct {
	Answers []QuestionAnswer `json:"answers"`
}

type ReportJobResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ReportResponse struct {
	ID           string      `json:"id"`
	Status       string      `json:"status"`
	Report       *ReportData `json:"report,omitempty"`
	ErrorMessage *string     `json:"error_message,omitempty"`
}

// ReportData is the scored interview summary.
type ReportData struct {
	Communication   int      `json:"communication"`
	Confidence      int      `json:"confidence"`
	DomainKnowledge int      `json:"domain_knowledge"`
	OverallScore    int      `json:"overall_score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Feedback        string   `json:"feedback"`
}

// ToReportData flattens a completed report; nil scores read as zero.
func (r *InterviewReport) ToReportData() *ReportData {
	data := &ReportData{
		Communication:   intValue(r.Communication),
		Confidence:      intValue(r.Confidence),
		DomainKnowledge: intValue(r.DomainKnowledge),
		OverallScore:    intValue(r.OverallScore),
		Strengths:       r.Strengths,
		Weaknesses:      r.Weaknesses,
	}
	if r.Feedback != nil {
		data.Feedback = *r.Feedback
	}
	return data
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
