// Package tesseract recognizes résumé images with Tesseract via gosseract.
// It needs the Tesseract and Leptonica libraries at build and run time.
package tesseract

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"alfredoptarigan/mock-interview/internal/namefinder"
)

// Recognizer runs Tesseract in single-block mode and reports word boxes.
type Recognizer struct {
	language      string
	clientFactory func() *gosseract.Client
}

func NewRecognizer(language string) *Recognizer {
	if language == "" {
		language = "eng"
	}
	return &Recognizer{language: language, clientFactory: gosseract.NewClient}
}

// Recognize returns the page text and one token per recognized word, with the
// word's bounding-box height as its size.
func (r *Recognizer) Recognize(img []byte) (string, []namefinder.RecognizedToken, error) {
	client := r.clientFactory()
	defer client.Close()

	if err := client.SetLanguage(r.language); err != nil {
		return "", nil, fmt.Errorf("set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", nil, fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(img); err != nil {
		return "", nil, fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", nil, fmt.Errorf("recognize text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return "", nil, fmt.Errorf("word boxes: %w", err)
	}

	return text, wordTokens(boxes), nil
}

func wordTokens(boxes []gosseract.BoundingBox) []namefinder.RecognizedToken {
	tokens := make([]namefinder.RecognizedToken, 0, len(boxes))
	for _, b := range boxes {
		tokens = append(tokens, namefinder.RecognizedToken{
			Text:   b.Word,
			Height: float64(b.Box.Dy()),
		})
	}
	return tokens
}
