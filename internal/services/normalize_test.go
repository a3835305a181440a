package services

import (
	"strings"
	"testing"
)

func TestNormalizeFlashcards_ExtractsJSONFromProse(t *testing.T) {
	raw := "Sure, here are your cards: [{\"question\":\"Q1\",\"answer\":\"A1\"},{\"question\":\"Q2\",\"answer\":\"A2\"}] hope that helps!"

	cards := NormalizeFlashcards(raw, "", "notes.txt")
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Question != "Q1" || cards[0].Answer != "A1" {
		t.Errorf("expected first card Q1/A1, got %q/%q", cards[0].Question, cards[0].Answer)
	}
}

func TestNormalizeFlashcards_StripsMarkdownFences(t *testing.T) {
	raw := "```json\n[{\"question\":\"What is Go?\",\"answer\":\"A programming language\"}]\n```"

	cards := NormalizeFlashcards(raw, "", "notes.txt")
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if cards[0].Question != "What is Go?" {
		t.Errorf("expected question %q, got %q", "What is Go?", cards[0].Question)
	}
}

func TestNormalizeFlashcards_DropsIncompletePairs(t *testing.T) {
	raw := `[{"question":"Q1","answer":"A1"},{"question":"Q2"},{"answer":"A3"}]`

	cards := NormalizeFlashcards(raw, "", "notes.txt")
	if len(cards) != 1 {
		t.Fatalf("expected 1 complete card, got %d", len(cards))
	}
	if cards[0].Question != "Q1" {
		t.Errorf("expected surviving card Q1, got %q", cards[0].Question)
	}
}

func TestNormalizeFlashcards_LineHeuristics(t *testing.T) {
	raw := "Q: What is photosynthesis?\nA: The process plants use to convert light into energy.\nQuestion: What is chlorophyll?\nAnswer: The green pigment in plants."

	cards := NormalizeFlashcards(raw, "", "bio.txt")
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards from line heuristics, got %d", len(cards))
	}
	if cards[1].Question != "What is chlorophyll?" {
		t.Errorf("expected second question about chlorophyll, got %q", cards[1].Question)
	}
}

func TestNormalizeFlashcards_TrailingQuestionDiscarded(t *testing.T) {
	raw := "Q: First question?\nA: First answer.\nQ: Orphan question with no answer?"

	cards := NormalizeFlashcards(raw, "", "notes.txt")
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
}

func TestNormalizeFlashcards_SentenceBlanks(t *testing.T) {
	content := "The mitochondria is the powerhouse of the cell. Water boils at one hundred degrees celsius at sea level."

	cards := NormalizeFlashcards("no structured output here", content, "bio.txt")
	if len(cards) != 2 {
		t.Fatalf("expected 2 blank cards, got %d", len(cards))
	}
	for _, c := range cards {
		if !strings.HasPrefix(c.Question, "Fill in the blank: ") {
			t.Errorf("expected fill-in-the-blank question, got %q", c.Question)
		}
		if !strings.Contains(c.Question, "_____") {
			t.Errorf("expected masked word in question, got %q", c.Question)
		}
		if c.Answer == "" {
			t.Errorf("expected non-empty answer")
		}
	}
}

func TestNormalizeFlashcards_NeverEmpty(t *testing.T) {
	inputs := []string{"", "no json here", "{broken", `[{"question":"Q"}]`}

	for _, raw := range inputs {
		cards := NormalizeFlashcards(raw, "", "anything.txt")
		if len(cards) == 0 {
			t.Errorf("expected fallback cards for input %q, got none", raw)
		}
		for _, c := range cards {
			if c.Question == "" || c.Answer == "" {
				t.Errorf("expected complete cards for input %q, got %+v", raw, c)
			}
		}
	}
}

func TestNormalizeInfographic_ValidOutputPassesThrough(t *testing.T) {
	raw := `{"title":"My Report","summary":"A summary.","keyPoints":["a","b","c"],"stats":[{"label":"x","value":1},{"label":"y","value":2},{"label":"z","value":3}]}`

	rec := NormalizeInfographic(raw, "report.pdf", ClassResearch)
	if rec.Title != "My Report" {
		t.Errorf("expected title preserved, got %q", rec.Title)
	}
	if len(rec.KeyPoints) != 3 || len(rec.Stats) != 3 {
		t.Errorf("expected arrays preserved, got %d key points and %d stats", len(rec.KeyPoints), len(rec.Stats))
	}
}

func TestNormalizeInfographic_PadsShortArrays(t *testing.T) {
	raw := `{"title":"Partial","summary":"s","keyPoints":["first","second"],"stats":[{"label":"only","value":42}]}`

	rec := NormalizeInfographic(raw, "doc.pdf", ClassResearch)
	if len(rec.KeyPoints) < 3 {
		t.Fatalf("expected key points padded to at least 3, got %d", len(rec.KeyPoints))
	}
	if rec.KeyPoints[0] != "first" || rec.KeyPoints[1] != "second" {
		t.Errorf("expected original key points preserved in order, got %v", rec.KeyPoints)
	}
	if len(rec.Stats) < 3 {
		t.Fatalf("expected stats padded to at least 3, got %d", len(rec.Stats))
	}
	if rec.Stats[0].Label != "only" || rec.Stats[0].Value != 42 {
		t.Errorf("expected original stat preserved first, got %+v", rec.Stats[0])
	}
}

func TestNormalizeInfographic_TrimsLongArrays(t *testing.T) {
	raw := `{"title":"Long","summary":"s","keyPoints":["1","2","3","4","5","6","7"],"stats":[{"label":"a","value":1},{"label":"b","value":2},{"label":"c","value":3},{"label":"d","value":4},{"label":"e","value":5}]}`

	rec := NormalizeInfographic(raw, "doc.pdf", ClassGeneral)
	if len(rec.KeyPoints) != 5 {
		t.Errorf("expected key points trimmed to 5, got %d", len(rec.KeyPoints))
	}
	if len(rec.Stats) != 4 {
		t.Errorf("expected stats trimmed to 4, got %d", len(rec.Stats))
	}
}

func TestNormalizeInfographic_FallbackOnGarbage(t *testing.T) {
	inputs := []string{"", "not json at all", "{broken json"}

	for _, raw := range inputs {
		rec := NormalizeInfographic(raw, "My Document", ClassBlog)
		if rec.Title != "My Document" {
			t.Errorf("expected fallback title from label for %q, got %q", raw, rec.Title)
		}
		if len(rec.KeyPoints) < 3 || len(rec.Stats) < 3 {
			t.Errorf("expected fully populated fallback for %q", raw)
		}
	}
}

func TestNormalizeInfographic_FillsMissingTitle(t *testing.T) {
	raw := `{"summary":"has a summary","keyPoints":["a","b","c"],"stats":[{"label":"x","value":1},{"label":"y","value":2},{"label":"z","value":3}]}`

	rec := NormalizeInfographic(raw, "climate.pdf", ClassResearch)
	if rec.Title != "climate.pdf" {
		t.Errorf("expected label as title, got %q", rec.Title)
	}
	if rec.Summary != "has a summary" {
		t.Errorf("expected summary preserved, got %q", rec.Summary)
	}
}

func TestCleanModelOutput_StripsPreambles(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Here's the extracted text: hello world", "hello world"},
		{"I'll extract the text from this content: body", "body"},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain text untouched", "plain text untouched"},
	}

	for _, tt := range tests {
		got := cleanModelOutput(tt.input)
		if got != tt.want {
			t.Errorf("cleanModelOutput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractBalanced(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  byte
		close byte
		want  string
		ok    bool
	}{
		{"simple object", `prose {"a":1} trailer`, '{', '}', `{"a":1}`, true},
		{"nested object", `{"a":{"b":2}}`, '{', '}', `{"a":{"b":2}}`, true},
		{"bracket inside string", `[{"q":"what is ]?"}]`, '[', ']', `[{"q":"what is ]?"}]`, true},
		{"unclosed", `{"a":1`, '{', '}', "", false},
		{"absent", "no brackets", '{', '}', "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractBalanced(tt.input, tt.open, tt.close)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractBalanced(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}
