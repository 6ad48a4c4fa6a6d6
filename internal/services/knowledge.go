package services

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

const (
	knowledgeResultsPerType = 3
	ingestConcurrency       = 4
)

// KnowledgeService retrieves and stores company reference material.
type KnowledgeService interface {
	CompanyContext(ctx context.Context, jobDescription, company string, docTypes ...string) (string, error)
	Ingest(ctx context.Context, doc KnowledgeDocument) (int, error)
}

// KnowledgeDocument is a whole reference document before chunking.
type KnowledgeDocument struct {
	Source  string
	DocType string
	Company string
	Text    string
}

type knowledgeService struct {
	qdrantService QdrantService
	geminiService GeminiService
	chunker       TextChunker
	promptBuilder *PromptBuilder
}

func NewKnowledgeService(qdrantService QdrantService, geminiService GeminiService, chunker TextChunker) KnowledgeService {
	return &knowledgeService{
		qdrantService: qdrantService,
		geminiService: geminiService,
		chunker:       chunker,
		promptBuilder: NewPromptBuilder(),
	}
}

// CompanyContext implements KnowledgeService.
func (k *knowledgeService) CompanyContext(ctx context.Context, jobDescription, company string, docTypes ...string) (string, error) {
	var all []SearchResult

	for _, docType := range docTypes {
		query := k.promptBuilder.BuildRetrievalQuery(docType, jobDescription, company)

		embedding, err := k.geminiService.GenerateEmbedding(ctx, query)
		if err != nil {
			return "", fmt.Errorf("failed to embed %s query: %w", docType, err)
		}

		results, err := k.qdrantService.SearchSimilar(ctx, embedding, docType, knowledgeResultsPerType)
		if err != nil {
			return "", fmt.Errorf("failed to search %s: %w", docType, err)
		}

		log.Printf("🔍 Retrieved %d %s chunks\n", len(results), docType)
		all = append(all, results...)
	}

	return FormatRAGContext(all), nil
}

// Ingest implements KnowledgeService. Any previous chunks of the same source
// are removed first.
func (k *knowledgeService) Ingest(ctx context.Context, doc KnowledgeDocument) (int, error) {
	chunks := k.chunker.Split(doc.Text)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document %s has no text", doc.Source)
	}

	if err := k.qdrantService.DeleteSource(ctx, doc.Source); err != nil {
		return 0, fmt.Errorf("failed to clear previous chunks: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ingestConcurrency)

	for _, chunk := range chunks {
		g.Go(func() error {
			embedding, err := k.geminiService.GenerateEmbedding(ctx, chunk.Text)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunk.Index, err)
			}

			return k.qdrantService.UpsertChunk(ctx, KnowledgeChunk{
				Source:  doc.Source,
				DocType: doc.DocType,
				Company: doc.Company,
				Index:   chunk.Index,
				Text:    chunk.Text,
			}, embedding)
		})
	}

	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("failed to ingest %s: %w", doc.Source, err)
	}

	return len(chunks), nil
}
