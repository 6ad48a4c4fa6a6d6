package namefinder

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Honorifics removed from text before any name matching.
var titles = newWordSet("Mr", "Mrs", "Ms", "Miss", "Dr", "Prof", "Sir")

// Words that never form part of a name. Candidate words always start with an
// uppercase letter, so each entry is stored in its written and capitalized form.
var blacklist = func() wordSet {
	base := []string{
		"I", "me", "you", "he", "she", "it", "we", "they",
		"the", "a", "an", "and", "or", "but",
		"good", "great", "bad", "nice", "big", "small", "new", "old",
	}
	words := make([]string, 0, len(base)*2)
	for _, w := range base {
		words = append(words, w, strings.ToUpper(w[:1])+w[1:])
	}
	return newWordSet(words...)
}()

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) contains(w string) bool {
	_, ok := s[w]
	return ok
}

func (s wordSet) sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	// Longer words first so an alternation never settles on a shorter prefix.
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// IsBlacklisted reports whether w is a reserved word. The comparison is case-sensitive.
func IsBlacklisted(w string) bool {
	return blacklist.contains(w)
}

// CapitalizedSequence returns a pattern matching one to maxWords words, each an
// uppercase letter followed by at least one lowercase letter, separated by single spaces.
func CapitalizedSequence(maxWords int) string {
	if maxWords < 1 {
		maxWords = 1
	}
	return fmt.Sprintf(`[A-Z][a-z]+(?: [A-Z][a-z]+){0,%d}`, maxWords-1)
}

const maxNameWords = 3

var (
	titlePattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(titles.sorted(), "|") + `)\b\.?\s*`)

	// The whole label search folds case, the captured words included.
	labeledNamePattern = regexp.MustCompile(
		`(?i)(?:Name|Full Name|Cardholder)\s*[:\-]\s*(` + CapitalizedSequence(maxNameWords) + `)`,
	)

	// A name must end before any letter or digit, non-ASCII ones too,
	// so "José" is rejected rather than cut to "Jos".
	leadingNamePattern = regexp.MustCompile(`^(` + CapitalizedSequence(maxNameWords) + `)(?:$|[^\p{L}\p{N}_])`)
)

// StripTitles removes every honorific, with an optional period and the
// whitespace after it, from text.
func StripTitles(text string) string {
	return titlePattern.ReplaceAllString(text, "")
}

// findLabeledName returns the capitalized words following a Name/Full Name/Cardholder label.
func findLabeledName(text string) (string, bool) {
	m := labeledNamePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchLeadingName returns the capitalized-word prefix of a token.
func matchLeadingName(text string) (string, bool) {
	m := leadingNamePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
