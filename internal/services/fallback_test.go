package services

import (
	"reflect"
	"testing"
)

func TestClassifyContent(t *testing.T) {
	tests := []struct {
		sourceType string
		label      string
		want       ContentTypeClass
	}{
		{"url", "https://example.com", ClassWebsite},
		{"text", "Study Material", ClassBlog},
		{"file", "paper.pdf", ClassResearch},
		{"file", "notes.docx", ClassGeneral},
		{"file", "notes.txt", ClassGeneral},
	}

	for _, tt := range tests {
		got := ClassifyContent(tt.sourceType, tt.label)
		if got != tt.want {
			t.Errorf("ClassifyContent(%q, %q) = %q, want %q", tt.sourceType, tt.label, got, tt.want)
		}
	}
}

func TestFallbackFlashcards_Deterministic(t *testing.T) {
	first := FallbackFlashcards("random-label-47.txt")
	second := FallbackFlashcards("random-label-47.txt")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical decks for the same label")
	}
	if len(first) == 0 {
		t.Fatalf("expected non-empty fallback deck")
	}
}

func TestFallbackFlashcards_TopicMatch(t *testing.T) {
	cards := FallbackFlashcards("Intro to Biology Chapter 3.pdf")
	bio := fallbackFlashcards["biology"]

	if !reflect.DeepEqual(cards, bio) {
		t.Errorf("expected biology deck for a biology-labeled file")
	}
}

func TestFallbackInfographic_ReturnsCopy(t *testing.T) {
	first := FallbackInfographic(ClassResearch)
	first.KeyPoints[0] = "mutated"
	first.Stats[0].Value = -1

	second := FallbackInfographic(ClassResearch)
	if second.KeyPoints[0] == "mutated" {
		t.Errorf("expected key points to be copied, not shared")
	}
	if second.Stats[0].Value == -1 {
		t.Errorf("expected stats to be copied, not shared")
	}
}

func TestFallbackInfographic_AllClassesPopulated(t *testing.T) {
	for _, class := range []ContentTypeClass{ClassResearch, ClassBlog, ClassWebsite, ClassGeneral} {
		rec := FallbackInfographic(class)
		if rec.Title == "" || rec.Summary == "" {
			t.Errorf("class %q: expected title and summary", class)
		}
		if len(rec.KeyPoints) < 3 {
			t.Errorf("class %q: expected at least 3 key points, got %d", class, len(rec.KeyPoints))
		}
		if len(rec.Stats) < 3 {
			t.Errorf("class %q: expected at least 3 stats, got %d", class, len(rec.Stats))
		}
	}
}
