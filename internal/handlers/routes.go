package handlers

import "github.com/gofiber/fiber/v2"

// Routes groups the handlers mounted under /api/v1.
type Routes struct {
	Candidate *CandidateHandler
	Interview *InterviewHandler
	Speech    *SpeechHandler
	Report    *ReportHandler
}

func (r *Routes) Register(api fiber.Router) {
	api.Get("/health", HandleHealth)

	api.Post("/candidates", r.Candidate.HandleSubmit)
	api.Get("/candidates", r.Candidate.HandleList)
	api.Get("/candidates/:id", r.Candidate.HandleGet)
	api.Put("/candidates/:id/confirm", r.Candidate.HandleConfirm)

	api.Post("/candidates/:id/questions", r.Interview.HandleQuestions)
	api.Post("/candidates/:id/answers", r.Interview.HandleStoreAnswers)
	api.Post("/generate", r.Interview.HandleGenerate)

	api.Post("/tts", r.Speech.HandleTTS)

	api.Post("/candidates/:id/reports", r.Report.HandleCreate)
	api.Get("/reports/:id", r.Report.HandleGet)
	api.Get("/reports/:id/pdf", r.Report.HandleDownload)
}
