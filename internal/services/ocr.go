package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/text/unicode/norm"

	"alfredoptarigan/mock-interview/internal/apperrors"
	"alfredoptarigan/mock-interview/internal/logging"
	"alfredoptarigan/mock-interview/internal/namefinder"
)

// OCR sources recorded on a result.
const (
	SourceTesseract = "tesseract"
	SourcePDFText   = "pdf-text"
)

// OCRResult is the transcript of a résumé's first page and its word tokens.
type OCRResult struct {
	Text   string
	Tokens []namefinder.RecognizedToken
	Source string
}

type OCRService interface {
	Recognize(ctx context.Context, filePath string) (*OCRResult, error)
}

// TextRecognizer turns a preprocessed image into text and word tokens.
type TextRecognizer interface {
	Recognize(image []byte) (string, []namefinder.RecognizedToken, error)
}

// PageRasterizer renders the first page of a PDF as a PNG.
type PageRasterizer interface {
	RasterizeFirstPage(ctx context.Context, pdfPath string) ([]byte, error)
}

type ocrService struct {
	recognizer   TextRecognizer
	rasterizer   PageRasterizer
	pdfParser    PDFParserService
	maxDimension int
	logger       *logging.Logger
}

func NewOCRService(recognizer TextRecognizer, rasterizer PageRasterizer, pdfParser PDFParserService, maxDimension int) OCRService {
	return &ocrService{
		recognizer:   recognizer,
		rasterizer:   rasterizer,
		pdfParser:    pdfParser,
		maxDimension: maxDimension,
		logger:       logging.NewLogger("ocr"),
	}
}

// Recognize implements OCRService. PDFs are rasterized first; when that fails
// the PDF text layer is used instead, with font size standing in for height.
func (s *ocrService) Recognize(ctx context.Context, filePath string) (*OCRResult, error) {
	var raw []byte
	if strings.EqualFold(filepath.Ext(filePath), ".pdf") {
		img, err := s.rasterizer.RasterizeFirstPage(ctx, filePath)
		if err != nil {
			s.logger.Warn("rasterization failed, falling back to PDF text layer", "file", filepath.Base(filePath), "error", err)
			return s.recognizeTextLayer(filePath, err)
		}
		raw = img
	} else {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, apperrors.NewOCRFailedError("read", err)
		}
		raw = data
	}

	prepared, err := PreprocessImage(raw, s.maxDimension)
	if err != nil {
		return nil, apperrors.NewOCRFailedError("preprocess", err)
	}

	text, tokens, err := s.recognizer.Recognize(prepared)
	if err != nil {
		return nil, apperrors.NewOCRFailedError("recognize", err)
	}

	result := &OCRResult{
		Text:   norm.NFC.String(text),
		Tokens: cleanTokens(tokens),
		Source: SourceTesseract,
	}
	s.logger.Info("image recognized", "chars", len(result.Text), "tokens", len(result.Tokens))
	return result, nil
}

func (s *ocrService) recognizeTextLayer(filePath string, rasterErr error) (*OCRResult, error) {
	page, err := s.pdfParser.ExtractFirstPage(filePath)
	if err != nil {
		return nil, apperrors.NewOCRFailedError("rasterize", fmt.Errorf("%v; text layer: %w", rasterErr, err))
	}

	result := &OCRResult{
		Text:   norm.NFC.String(page.Text),
		Tokens: cleanTokens(page.Tokens),
		Source: SourcePDFText,
	}
	s.logger.With("text-layer").Info("page extracted", "chars", len(result.Text), "tokens", len(result.Tokens))
	return result, nil
}

// cleanTokens drops blank tokens and trims the rest, mirroring how the word
// table is filtered before name detection.
func cleanTokens(tokens []namefinder.RecognizedToken) []namefinder.RecognizedToken {
	out := make([]namefinder.RecognizedToken, 0, len(tokens))
	for _, tok := range tokens {
		text := strings.TrimSpace(tok.Text)
		if text == "" {
			continue
		}
		out = append(out, namefinder.RecognizedToken{Text: norm.NFC.String(text), Height: tok.Height})
	}
	return out
}

// PreprocessImage decodes an image, shrinks it so neither side exceeds
// maxDimension, converts it to grayscale and re-encodes it as PNG.
func PreprocessImage(data []byte, maxDimension int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	target := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	if maxDimension > 0 && (bounds.Dx() > maxDimension || bounds.Dy() > maxDimension) {
		scale := float64(maxDimension) / float64(max(bounds.Dx(), bounds.Dy()))
		target = image.Rect(0, 0, max(1, int(float64(bounds.Dx())*scale)), max(1, int(float64(bounds.Dy())*scale)))
	}

	gray := image.NewGray(target)
	if target.Dx() == bounds.Dx() && target.Dy() == bounds.Dy() {
		draw.Draw(gray, target, src, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(gray, target, src, bounds, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// PopplerRasterizer renders PDF pages with poppler's pdftoppm.
type PopplerRasterizer struct {
	binary string
	dpi    int
}

// NewPopplerRasterizer looks for pdftoppm in popplerPath, or on PATH when empty.
func NewPopplerRasterizer(popplerPath string, dpi int) *PopplerRasterizer {
	binary := "pdftoppm"
	if popplerPath != "" {
		if info, err := os.Stat(popplerPath); err == nil && info.IsDir() {
			binary = filepath.Join(popplerPath, "pdftoppm")
		}
	}
	if dpi <= 0 {
		dpi = 200
	}
	return &PopplerRasterizer{binary: binary, dpi: dpi}
}

// RasterizeFirstPage implements PageRasterizer.
func (p *PopplerRasterizer) RasterizeFirstPage(ctx context.Context, pdfPath string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "raster-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, p.binary,
		"-png", "-r", strconv.Itoa(p.dpi), "-f", "1", "-l", "1", "-singlefile",
		pdfPath, prefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(string(out)))
	}

	data, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("read rendered page: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no images extracted from PDF")
	}
	return data, nil
}
