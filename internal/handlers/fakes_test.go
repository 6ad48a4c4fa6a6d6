package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/mock-interview/internal/apperrors"
	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/repositories"
	"alfredoptarigan/mock-interview/internal/services"
)

type memCandidates struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.Candidate
	order []uuid.UUID
}

func newMemCandidates() *memCandidates {
	return &memCandidates{items: map[uuid.UUID]*models.Candidate{}}
}

func (m *memCandidates) Create(c *models.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.items[c.ID] = c
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memCandidates) FindByID(id uuid.UUID) (*models.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("candidate %s: %w", id, repositories.ErrNotFound)
	}
	return c, nil
}

func (m *memCandidates) FindAll() ([]models.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Candidate, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.items[id])
	}
	return out, nil
}

func (m *memCandidates) Confirm(id uuid.UUID, data *repositories.CandidateConfirmData) (*models.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("candidate %s: %w", id, repositories.ErrNotFound)
	}
	c.Name, c.Email, c.Phone, c.CompanyDetails = data.Name, data.Email, data.Phone, data.CompanyDetails
	c.Confirmed = true
	return c, nil
}

type memAnswers struct {
	mu   sync.Mutex
	sets []*models.AnswerSet
}

func (m *memAnswers) Create(set *models.AnswerSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set.ID = uuid.New()
	m.sets = append(m.sets, set)
	return nil
}

func (m *memAnswers) FindByID(id uuid.UUID) (*models.AnswerSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sets {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("answer set %s: %w", id, repositories.ErrNotFound)
}

func (m *memAnswers) FindLatestByCandidate(candidateID uuid.UUID) (*models.AnswerSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sets) - 1; i >= 0; i-- {
		if m.sets[i].CandidateID == candidateID {
			return m.sets[i], nil
		}
	}
	return nil, fmt.Errorf("answers for candidate %s: %w", candidateID, repositories.ErrNotFound)
}

type memReports struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.InterviewReport
}

func newMemReports() *memReports {
	return &memReports{items: map[uuid.UUID]*models.InterviewReport{}}
}

func (m *memReports) Create(r *models.InterviewReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.items[r.ID] = r
	return nil
}

func (m *memReports) FindByID(id uuid.UUID) (*models.InterviewReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("report %s: %w", id, repositories.ErrNotFound)
	}
	return r, nil
}

func (m *memReports) UpdateStatus(id uuid.UUID, status models.ReportStatus) error {
	return nil
}

func (m *memReports) UpdateResult(id uuid.UUID, data *repositories.ReportUpdateData) error {
	return nil
}

func (m *memReports) UpdateError(id uuid.UUID, errorMsg string) error {
	return nil
}

func (m *memReports) FindPendingJobs(limit int) ([]models.InterviewReport, error) {
	return nil, nil
}

type stubResume struct {
	err   error
	input services.CandidateInput
	repo  *memCandidates
}

func (s *stubResume) Submit(ctx context.Context, file *multipart.FileHeader, input services.CandidateInput) (*models.Candidate, error) {
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	if !services.AllowedFile(file.Filename) {
		return nil, apperrors.NewUnsupportedFormatError(file.Filename)
	}
	name := input.Name
	if name == "" {
		name = "Alice"
	}
	c := &models.Candidate{Name: name, DetectedName: "Alice", Company: input.Company, JobDescription: input.JobDescription, ResumeText: "resume"}
	s.repo.Create(c)
	return c, nil
}

type stubQuestions struct {
	set     *services.QuestionSet
	lastReq services.QuestionRequest
}

func (s *stubQuestions) Generate(ctx context.Context, candidate *models.Candidate, req services.QuestionRequest) *services.QuestionSet {
	s.lastReq = req
	return s.set
}

func (s *stubQuestions) Respond(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", apperrors.NewInvalidInputError("Prompt is required")
	}
	return "echo: " + prompt, nil
}

type stubTTS struct {
	audio []byte
	err   error
}

func (s *stubTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return s.audio, s.err
}

type stubWorker struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (w *stubWorker) Start(ctx context.Context) {}

func (w *stubWorker) Stop() {}

func (w *stubWorker) EnqueueJob(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ids = append(w.ids, id)
}
