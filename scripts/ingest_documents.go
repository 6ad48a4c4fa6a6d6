package main

import (
	"context"
	"log"
	"os"
	"strings"

	"alfredoptarigan/mock-interview/internal/config"
	"alfredoptarigan/mock-interview/internal/services"
)

func main() {
	log.Println("🚀 Starting company knowledge ingestion...")

	cfg := config.Load()
	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker(services.DefaultChunkSize, services.DefaultChunkOverlap)
	knowledge := services.NewKnowledgeService(qdrantService, geminiService, chunker)

	documents := []struct {
		Path    string
		DocType string
		Name    string
	}{
		{
			Path:    "./reference_docs/company_profile.pdf",
			DocType: services.DocTypeCompanyProfile,
			Name:    "Company Profile",
		},
		{
			Path:    "./reference_docs/role_guide.pdf",
			DocType: services.DocTypeRoleGuide,
			Name:    "Role Guide",
		},
		{
			Path:    "./reference_docs/interview_rubric.pdf",
			DocType: services.DocTypeInterviewRubric,
			Name:    "Interview Rubric",
		},
	}

	successCount := 0
	failCount := 0

	for _, doc := range documents {
		log.Printf("\n📄 Processing: %s", doc.Name)
		log.Printf("   Path: %s", doc.Path)
		log.Printf("   Type: %s", doc.DocType)

		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		log.Printf("   📖 Extracting text...")
		content, err := pdfParser.ExtractTextWithMetaData(doc.Path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(content.Text))

		log.Printf("   🔄 Embedding and storing chunks...")
		stored, err := knowledge.Ingest(ctx, services.KnowledgeDocument{
			Source:  doc.Path,
			DocType: doc.DocType,
			Company: cfg.Interview.CompanyName,
			Text:    content.Text,
		})
		if err != nil {
			log.Printf("   ❌ Failed to ingest: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Stored %d chunks for %s", stored, doc.Name)
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}
