package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/repositories"
)

type fakeGemini struct {
	mu         sync.Mutex
	text       string
	err        error
	embedErr   error
	prompts    []string
	embedCalls int
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedCalls++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{float32(len(text)), 1}, nil
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

func (f *fakeGemini) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type fakeQdrant struct {
	mu       sync.Mutex
	chunks   []KnowledgeChunk
	deleted  []string
	results  map[string][]SearchResult
	err      error
	searched []string
}

func (f *fakeQdrant) InitCollection(ctx context.Context) error { return nil }

func (f *fakeQdrant) UpsertChunk(ctx context.Context, chunk KnowledgeChunk, embedding []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(embedding) == 0 {
		return errors.New("empty embedding")
	}
	f.chunks = append(f.chunks, chunk)
	return nil
}

func (f *fakeQdrant) SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searched = append(f.searched, docType)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[docType], nil
}

func (f *fakeQdrant) DeleteSource(ctx context.Context, source string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, source)
	return nil
}

type fakeKnowledge struct {
	context string
	err     error
}

func (f *fakeKnowledge) CompanyContext(ctx context.Context, jobDescription, company string, docTypes ...string) (string, error) {
	return f.context, f.err
}

func (f *fakeKnowledge) Ingest(ctx context.Context, doc KnowledgeDocument) (int, error) {
	return 0, nil
}

type fakeCandidateRepo struct {
	mu         sync.Mutex
	candidates map[uuid.UUID]*models.Candidate
	createErr  error
}

func newFakeCandidateRepo(candidates ...*models.Candidate) *fakeCandidateRepo {
	r := &fakeCandidateRepo{candidates: map[uuid.UUID]*models.Candidate{}}
	for _, c := range candidates {
		r.candidates[c.ID] = c
	}
	return r
}

func (r *fakeCandidateRepo) Create(candidate *models.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	r.candidates[candidate.ID] = candidate
	return nil
}

func (r *fakeCandidateRepo) FindByID(id uuid.UUID) (*models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return nil, fmt.Errorf("candidate %s: %w", id, repositories.ErrNotFound)
	}
	return c, nil
}

func (r *fakeCandidateRepo) FindAll() ([]models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCandidateRepo) Confirm(id uuid.UUID, data *repositories.CandidateConfirmData) (*models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return nil, fmt.Errorf("candidate %s: %w", id, repositories.ErrNotFound)
	}
	c.Name, c.Email, c.Phone, c.CompanyDetails = data.Name, data.Email, data.Phone, data.CompanyDetails
	c.Confirmed = true
	return c, nil
}

type fakeAnswerRepo struct {
	mu   sync.Mutex
	sets map[uuid.UUID]*models.AnswerSet
}

func newFakeAnswerRepo(sets ...*models.AnswerSet) *fakeAnswerRepo {
	r := &fakeAnswerRepo{sets: map[uuid.UUID]*models.AnswerSet{}}
	for _, s := range sets {
		r.sets[s.ID] = s
	}
	return r
}

func (r *fakeAnswerRepo) Create(set *models.AnswerSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set.ID == uuid.Nil {
		set.ID = uuid.New()
	}
	r.sets[set.ID] = set
	return nil
}

func (r *fakeAnswerRepo) FindByID(id uuid.UUID) (*models.AnswerSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sets[id]
	if !ok {
		return nil, fmt.Errorf("answer set %s: %w", id, repositories.ErrNotFound)
	}
	return s, nil
}

func (r *fakeAnswerRepo) FindLatestByCandidate(candidateID uuid.UUID) (*models.AnswerSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.AnswerSet
	for _, s := range r.sets {
		if s.CandidateID == candidateID && (latest == nil || s.CreatedAt.After(latest.CreatedAt)) {
			latest = s
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("answers for candidate %s: %w", candidateID, repositories.ErrNotFound)
	}
	return latest, nil
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*models.InterviewReport
	history []models.ReportStatus
}

func newFakeReportRepo(reports ...*models.InterviewReport) *fakeReportRepo {
	r := &fakeReportRepo{reports: map[uuid.UUID]*models.InterviewReport{}}
	for _, rep := range reports {
		r.reports[rep.ID] = rep
	}
	return r
}

func (r *fakeReportRepo) Create(report *models.InterviewReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.Status == "" {
		report.Status = models.StatusQueued
	}
	r.reports[report.ID] = report
	return nil
}

func (r *fakeReportRepo) FindByID(id uuid.UUID) (*models.InterviewReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[id]
	if !ok {
		return nil, fmt.Errorf("report %s: %w", id, repositories.ErrNotFound)
	}
	copied := *rep
	return &copied, nil
}

func (r *fakeReportRepo) setStatus(id uuid.UUID, status models.ReportStatus) (*models.InterviewReport, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, fmt.Errorf("report %s: %w", id, repositories.ErrNotFound)
	}
	rep.Status = status
	r.history = append(r.history, status)
	return rep, nil
}

func (r *fakeReportRepo) UpdateStatus(id uuid.UUID, status models.ReportStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.setStatus(id, status)
	return err
}

func (r *fakeReportRepo) UpdateResult(id uuid.UUID, data *repositories.ReportUpdateData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, err := r.setStatus(id, models.StatusCompleted)
	if err != nil {
		return err
	}
	rep.Communication = &data.Communication
	rep.Confidence = &data.Confidence
	rep.DomainKnowledge = &data.DomainKnowledge
	rep.OverallScore = &data.OverallScore
	rep.Strengths = data.Strengths
	rep.Weaknesses = data.Weaknesses
	feedback := data.Feedback
	rep.Feedback = &feedback
	return nil
}

func (r *fakeReportRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, err := r.setStatus(id, models.StatusFailed)
	if err != nil {
		return err
	}
	rep.ErrorMessage = &errorMsg
	return nil
}

func (r *fakeReportRepo) FindPendingJobs(limit int) ([]models.InterviewReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.InterviewReport
	for _, rep := range r.reports {
		if rep.Status == models.StatusQueued && len(out) < limit {
			out = append(out, *rep)
		}
	}
	return out, nil
}
