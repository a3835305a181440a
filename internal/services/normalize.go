package services

import (
	"encoding/json"
	"strings"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

// Conversational preambles models prepend even when told not to.
// Matched case-insensitively at the start of the output.
var knownPreambles = []string{
	"i'll extract the text from this content:",
	"here's the extracted text:",
	"here is the extracted text:",
	"here's the extracted data:",
	"here is the extracted data:",
	"sure, here you go:",
	"here you go:",
}

// cleanModelOutput strips markdown fences and known conversational prefixes
// from raw model text.
func cleanModelOutput(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	lower := strings.ToLower(s)
	for _, p := range knownPreambles {
		if strings.HasPrefix(lower, p) {
			s = strings.TrimSpace(s[len(p):])
			lower = strings.ToLower(s)
		}
	}

	return s
}

// CleanExtractedText prepares AI-extracted plain text for use as a
// conversion result: preamble stripping plus whitespace trimming.
func CleanExtractedText(raw string) string {
	return cleanModelOutput(raw)
}

// extractBalanced returns the first balanced open...close substring of s.
// Models routinely wrap valid JSON in prose, so the scan tolerates anything
// before the opening bracket and after the matching close. Brackets inside
// JSON strings are skipped.
func extractBalanced(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// NormalizeFlashcards converts raw model output into at least one well-formed
// flashcard, trying strategies in priority order:
//
//  1. balanced-bracket JSON array extraction
//  2. line heuristics (Q:/A:, question:/answer:, numbered items)
//  3. fill-in-the-blank synthesis from the source content
//  4. canned fallback deck for the content label
//
// It never fails: the last strategy is static data.
func NormalizeFlashcards(rawOutput, sourceContent, label string) []models.Flashcard {
	cleaned := cleanModelOutput(rawOutput)

	if candidate, ok := extractBalanced(cleaned, '[', ']'); ok {
		if cards := parseFlashcardJSON(candidate); len(cards) > 0 {
			return cards
		}
	}

	if cards := parseFlashcardLines(cleaned); len(cards) > 0 {
		return cards
	}

	if cards := blankedFlashcards(sourceContent); len(cards) > 0 {
		return cards
	}

	return FallbackFlashcards(label)
}

func parseFlashcardJSON(candidate string) []models.Flashcard {
	var doc interface{}
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil
	}

	var cards []models.Flashcard
	if flashcardSchema.Validate(doc) == nil {
		// Already well-shaped, take it verbatim.
		json.Unmarshal([]byte(candidate), &cards)
		return cards
	}

	// Lenient pass: keep whatever items are complete pairs.
	var loose []models.Flashcard
	if err := json.Unmarshal([]byte(candidate), &loose); err != nil {
		return nil
	}
	for _, c := range loose {
		if strings.TrimSpace(c.Question) != "" && strings.TrimSpace(c.Answer) != "" {
			cards = append(cards, c)
		}
	}
	return cards
}

var questionPrefixes = []string{"question:", "q:"}
var answerPrefixes = []string{"answer:", "a:"}

// parseFlashcardLines scans line-by-line for question/answer heading markers
// and pairs consecutive matches. A trailing question with no answer line is
// discarded rather than emitted as a partial card.
func parseFlashcardLines(text string) []models.Flashcard {
	var cards []models.Flashcard
	var pending string
	havePending := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if q, ok := matchPrefixed(line, questionPrefixes); ok {
			pending = q
			havePending = true
			continue
		}

		if a, ok := matchPrefixed(line, answerPrefixes); ok {
			if havePending && pending != "" && a != "" {
				cards = append(cards, models.Flashcard{Question: pending, Answer: a})
			}
			havePending = false
			continue
		}

		// Numbered list items ("1. What is X?") open a question too.
		if q, ok := stripListNumber(line); ok && strings.HasSuffix(q, "?") {
			pending = q
			havePending = true
		}
	}

	return cards
}

func matchPrefixed(line string, prefixes []string) (string, bool) {
	lower := strings.ToLower(line)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(line[len(p):]), true
		}
	}
	return "", false
}

func stripListNumber(line string) (string, bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return "", false
	}
	if line[i] != '.' && line[i] != ')' {
		return "", false
	}
	return strings.TrimSpace(line[i+1:]), true
}

// blankedFlashcards synthesizes fill-in-the-blank cards from the source
// content: naive sentence split, sentences under 20 characters or 5 words are
// skipped, the middle word of each remaining sentence is masked.
func blankedFlashcards(content string) []models.Flashcard {
	flat := strings.NewReplacer("\n", " ", "!", ".", "?", ".").Replace(content)

	var cards []models.Flashcard
	for _, sentence := range strings.Split(flat, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 20 {
			continue
		}

		words := strings.Fields(sentence)
		if len(words) < 5 {
			continue
		}

		mid := len(words) / 2
		answer := words[mid]

		masked := make([]string, len(words))
		copy(masked, words)
		masked[mid] = "_____"

		cards = append(cards, models.Flashcard{
			Question: "Fill in the blank: " + strings.Join(masked, " "),
			Answer:   answer,
		})

		if len(cards) >= 10 {
			break
		}
	}

	return cards
}

// Display limits for infographic records.
const (
	minKeyPoints = 3
	maxKeyPoints = 5
	minStats     = 3
	maxStats     = 4
)

// NormalizeInfographic converts raw model output into a fully-populated
// infographic record. Extracted data is repaired rather than rejected: short
// arrays are padded with filler from the fallback bucket, over-length arrays
// are trimmed to display limits, and missing title/summary fields are filled
// in. When no JSON object can be extracted at all, the canned record for the
// bucket is returned with the caller's label as title.
func NormalizeInfographic(rawOutput, label string, class ContentTypeClass) models.InfographicRecord {
	cleaned := cleanModelOutput(rawOutput)

	candidate, ok := extractBalanced(cleaned, '{', '}')
	if !ok {
		return fallbackInfographicWithTitle(label, class)
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return fallbackInfographicWithTitle(label, class)
	}

	var rec models.InfographicRecord
	if err := json.Unmarshal([]byte(candidate), &rec); err != nil {
		return fallbackInfographicWithTitle(label, class)
	}

	if infographicSchema.Validate(doc) == nil &&
		len(rec.KeyPoints) <= maxKeyPoints && len(rec.Stats) <= maxStats {
		return rec
	}

	return repairInfographic(rec, label, class)
}

func repairInfographic(rec models.InfographicRecord, label string, class ContentTypeClass) models.InfographicRecord {
	fallback := FallbackInfographic(class)

	if strings.TrimSpace(rec.Title) == "" {
		if label != "" {
			rec.Title = label
		} else {
			rec.Title = fallback.Title
		}
	}
	if strings.TrimSpace(rec.Summary) == "" {
		rec.Summary = fallback.Summary
	}

	// Pad short arrays in place; never reorder or drop what the model gave us.
	for i := 0; len(rec.KeyPoints) < minKeyPoints; i++ {
		rec.KeyPoints = append(rec.KeyPoints, fillerKeyPoint(class, i))
	}
	if len(rec.KeyPoints) > maxKeyPoints {
		rec.KeyPoints = rec.KeyPoints[:maxKeyPoints]
	}

	for i := 0; len(rec.Stats) < minStats; i++ {
		rec.Stats = append(rec.Stats, fillerStat(class, i))
	}
	if len(rec.Stats) > maxStats {
		rec.Stats = rec.Stats[:maxStats]
	}

	return rec
}

func fallbackInfographicWithTitle(label string, class ContentTypeClass) models.InfographicRecord {
	rec := FallbackInfographic(class)
	if label != "" {
		rec.Title = label
	}
	return rec
}
