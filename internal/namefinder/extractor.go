// Package namefinder guesses an applicant's first name from OCR output.
//
// Two phases run in order and the first one to produce a name wins. The
// labeled phase looks for "Name: Jane Doe" style fields in the full text. The
// height phase treats each recognized word as a candidate and picks the
// tallest one, since names are usually printed in the largest font on a
// résumé. When neither finds anything the result is DefaultName.
package namefinder

import (
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/mock-interview/internal/logging"
)

// DefaultName is returned when no name can be found.
const DefaultName = "User"

// RecognizedToken is one OCR word with its glyph height in pixels.
type RecognizedToken struct {
	Text   string  `json:"text"`
	Height float64 `json:"height"`
}

// Source identifies which phase produced a Detection.
type Source string

const (
	SourceLabel   Source = "label"
	SourceHeight  Source = "height"
	SourceDefault Source = "default"
)

// Detection is the outcome of a name search.
type Detection struct {
	Name      string
	FullMatch string
	Height    float64
	Source    Source
}

// Found reports whether a real name was detected rather than the placeholder.
func (d Detection) Found() bool {
	return d.Source != SourceDefault
}

type nameCandidate struct {
	firstWord string
	fullMatch string
	height    float64
}

var logger = logging.NewLogger("namefinder")

// ExtractName returns the best-guess first name for a document, or DefaultName.
func ExtractName(fullText string, tokens []RecognizedToken) string {
	return Detect(fullText, tokens).Name
}

// Detect runs both phases and reports which one matched.
// It never fails: anomalies are logged and treated as "no match".
func Detect(fullText string, tokens []RecognizedToken) (d Detection) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("name detection aborted", "panic", fmt.Sprint(r))
			d = defaultDetection()
		}
	}()

	if full, ok := findLabeledName(StripTitles(fullText)); ok {
		first := strings.Fields(full)[0]
		logger.Info("name extracted from label", "name", first, "match", full)
		return Detection{Name: first, FullMatch: full, Source: SourceLabel}
	}

	candidates := collectCandidates(tokens)
	if len(candidates) == 0 {
		logger.Warn("no valid name found, using default", "default", DefaultName, "tokens", len(tokens))
		return defaultDetection()
	}

	best := tallest(candidates)
	logger.Info("name detected by height",
		"name", best.firstWord,
		"height", best.height,
		"full", best.fullMatch,
		"candidates", len(candidates),
	)
	return Detection{
		Name:      best.firstWord,
		FullMatch: best.fullMatch,
		Height:    best.height,
		Source:    SourceHeight,
	}
}

func collectCandidates(tokens []RecognizedToken) []nameCandidate {
	var out []nameCandidate
	for i, tok := range tokens {
		if math.IsNaN(tok.Height) || math.IsInf(tok.Height, 0) {
			logger.Warn("skipping token with invalid height", "index", i, "text", tok.Text)
			continue
		}

		match, ok := matchLeadingName(StripTitles(tok.Text))
		if !ok {
			continue
		}

		words := strings.Fields(match)
		if containsBlacklisted(words) {
			continue
		}

		out = append(out, nameCandidate{
			firstWord: words[0],
			fullMatch: match,
			height:    tok.Height,
		})
	}
	return out
}

func containsBlacklisted(words []string) bool {
	for _, w := range words {
		if IsBlacklisted(w) {
			return true
		}
	}
	return false
}

// tallest returns the candidate with the greatest height; the earliest wins a tie.
func tallest(candidates []nameCandidate) nameCandidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.height > best.height {
			best = c
		}
	}
	return best
}

func defaultDetection() Detection {
	return Detection{Name: DefaultName, Source: SourceDefault}
}
