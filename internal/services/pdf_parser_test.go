package services

import (
	"testing"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/mock-interview/internal/namefinder"
)

func TestGroupWords(t *testing.T) {
	runs := []pdf.Text{
		{S: "J", FontSize: 24, Y: 700},
		{S: "a", FontSize: 24, Y: 700},
		{S: "ne", FontSize: 24, Y: 700},
		{S: " ", FontSize: 24, Y: 700},
		{S: "Doe", FontSize: 24, Y: 700},
		{S: "Engineer", FontSize: 11, Y: 680},
		{S: "Go, SQL", FontSize: 11, Y: 660},
		{S: "x", FontSize: 9, Y: 660},
	}

	got := groupWords(runs)
	want := []namefinder.RecognizedToken{
		{Text: "Jane", Height: 24},
		{Text: "Doe", Height: 24},
		{Text: "Engineer", Height: 11},
		{Text: "Go,", Height: 11},
		{Text: "SQL", Height: 11},
		{Text: "x", Height: 9},
	}

	if len(got) != len(want) {
		t.Fatalf("groupWords() returned %d tokens, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGroupWordsFeedsNameDetection(t *testing.T) {
	runs := []pdf.Text{
		{S: "Resume", FontSize: 14, Y: 760},
		{S: "Priya", FontSize: 30, Y: 720},
		{S: "Summary", FontSize: 14, Y: 690},
	}
	if got := namefinder.ExtractName("", groupWords(runs)); got != "Priya" {
		t.Fatalf("ExtractName() = %q, want Priya", got)
	}
}

func TestCleanText(t *testing.T) {
	got := CleanText("  line one \n\n\t\n line two  \n")
	if got != "line one\nline two" {
		t.Fatalf("CleanText() = %q", got)
	}
}
