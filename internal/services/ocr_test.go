package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"alfredoptarigan/mock-interview/internal/apperrors"
	"alfredoptarigan/mock-interview/internal/namefinder"
)

type fakeRecognizer struct {
	text   string
	tokens []namefinder.RecognizedToken
	err    error
	got    []byte
}

func (f *fakeRecognizer) Recognize(img []byte) (string, []namefinder.RecognizedToken, error) {
	f.got = img
	return f.text, f.tokens, f.err
}

type fakeRasterizer struct {
	image []byte
	err   error
}

func (f *fakeRasterizer) RasterizeFirstPage(ctx context.Context, pdfPath string) ([]byte, error) {
	return f.image, f.err
}

type fakePDFParser struct {
	page *PDFPage
	err  error
}

func (f *fakePDFParser) ExtractTextWithMetaData(string) (*PDFContent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePDFParser) ExtractFirstPage(string) (*PDFPage, error) {
	return f.page, f.err
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	return img
}

func TestPreprocessImageGrayscale(t *testing.T) {
	out, err := PreprocessImage(encodePNG(t, 40, 20), 100)
	if err != nil {
		t.Fatalf("PreprocessImage() error = %v", err)
	}

	img := decodePNG(t, out)
	if _, ok := img.(*image.Gray); !ok {
		t.Fatalf("expected grayscale output, got %T", img)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}
}

func TestPreprocessImageDownscales(t *testing.T) {
	out, err := PreprocessImage(encodePNG(t, 400, 100), 200)
	if err != nil {
		t.Fatalf("PreprocessImage() error = %v", err)
	}

	b := decodePNG(t, out).Bounds()
	if b.Dx() != 200 || b.Dy() != 50 {
		t.Fatalf("unexpected bounds: %v", b)
	}
}

func TestPreprocessImageRejectsGarbage(t *testing.T) {
	if _, err := PreprocessImage([]byte("not an image"), 0); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestOCRRecognizeImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.png")
	if err := os.WriteFile(path, encodePNG(t, 10, 10), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	rec := &fakeRecognizer{
		text:   "Name: Rosa Diaz\n",
		tokens: []namefinder.RecognizedToken{{Text: "  Rosa ", Height: 20}, {Text: "   ", Height: 5}, {Text: "Diaz", Height: 20}},
	}
	svc := NewOCRService(rec, &fakeRasterizer{err: errors.New("unused")}, &fakePDFParser{}, 0)

	res, err := svc.Recognize(context.Background(), path)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.Source != SourceTesseract {
		t.Fatalf("unexpected source: %s", res.Source)
	}
	if len(res.Tokens) != 2 || res.Tokens[0].Text != "Rosa" {
		t.Fatalf("unexpected tokens: %+v", res.Tokens)
	}
	if _, ok := decodePNG(t, rec.got).(*image.Gray); !ok {
		t.Fatalf("recognizer should receive a grayscale image")
	}
}

func TestOCRRecognizePDFUsesRasterizer(t *testing.T) {
	rec := &fakeRecognizer{text: "Resume"}
	svc := NewOCRService(rec, &fakeRasterizer{image: encodePNG(t, 8, 8)}, &fakePDFParser{err: errors.New("unused")}, 0)

	res, err := svc.Recognize(context.Background(), "/tmp/whatever.PDF")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.Source != SourceTesseract || res.Text != "Resume" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestOCRRecognizePDFFallsBackToTextLayer(t *testing.T) {
	parser := &fakePDFParser{page: &PDFPage{
		Text:   "Sam Wilson\nEngineer",
		Tokens: []namefinder.RecognizedToken{{Text: "Sam", Height: 28}, {Text: "", Height: 1}},
	}}
	svc := NewOCRService(&fakeRecognizer{err: errors.New("unused")}, &fakeRasterizer{err: errors.New("pdftoppm missing")}, parser, 0)

	res, err := svc.Recognize(context.Background(), "cv.pdf")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.Source != SourcePDFText || len(res.Tokens) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestOCRRecognizePDFBothPathsFail(t *testing.T) {
	svc := NewOCRService(&fakeRecognizer{}, &fakeRasterizer{err: errors.New("pdftoppm missing")}, &fakePDFParser{err: errors.New("scanned")}, 0)

	_, err := svc.Recognize(context.Background(), "cv.pdf")
	if !apperrors.Is(err, apperrors.ErrorOCRFailed) {
		t.Fatalf("expected OCR_FAILED, got %v", err)
	}
}

func TestOCRRecognizerError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.png")
	os.WriteFile(path, encodePNG(t, 4, 4), 0o644)

	svc := NewOCRService(&fakeRecognizer{err: errors.New("tesseract crashed")}, &fakeRasterizer{}, &fakePDFParser{}, 0)
	if _, err := svc.Recognize(context.Background(), path); !apperrors.Is(err, apperrors.ErrorOCRFailed) {
		t.Fatalf("expected OCR_FAILED, got %v", err)
	}
}

func TestNewPopplerRasterizer(t *testing.T) {
	dir := t.TempDir()
	if got := NewPopplerRasterizer(dir, 0); got.binary != filepath.Join(dir, "pdftoppm") || got.dpi != 200 {
		t.Fatalf("unexpected rasterizer: %+v", got)
	}
	if got := NewPopplerRasterizer(filepath.Join(dir, "missing"), 300); got.binary != "pdftoppm" || got.dpi != 300 {
		t.Fatalf("unexpected rasterizer: %+v", got)
	}
}
