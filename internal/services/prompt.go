package services

import (
	"fmt"
	"strings"
)

// GenerationIntent selects which prompt template and sampling parameters a
// request uses.
type GenerationIntent string

const (
	IntentFlashcards  GenerationIntent = "flashcards"
	IntentInfographic GenerationIntent = "infographic"
	IntentExtraction  GenerationIntent = "extraction"
)

// Content longer than these limits is truncated before prompting so requests
// stay within model context windows. Extraction inputs (base64 payloads) get
// a much tighter cap.
const (
	generationContentLimit = 4000
	extractionContentLimit = 500
)

const truncationMarker = "...(truncated)"

func truncateContent(content string, limit int) string {
	if len(content) <= limit {
		return content
	}
	return content[:limit] + truncationMarker
}

// UnsupportedIntentError reports a generation intent no prompt template
// exists for.
type UnsupportedIntentError struct {
	Intent GenerationIntent
}

func (e *UnsupportedIntentError) Error() string {
	return fmt.Sprintf("unsupported generation intent: %s", e.Intent)
}

// BuildPrompt assembles the full prompt for a generation request. The
// content is truncated to the intent's limit; URL sources are passed as a
// literal URL and the model is asked to reason about what such a page would
// contain. A non-empty template overrides the instruction body but never the
// output-format directive, so normalization still has a known shape to find.
func BuildPrompt(intent GenerationIntent, content, sourceType, template string) (string, error) {
	var body, format string

	switch intent {
	case IntentFlashcards:
		body = "Create educational flashcards from the following content. " +
			"Generate 5 to 10 question and answer pairs covering the most important concepts."
		format = `Respond with ONLY a JSON array in this exact format, no other text:
[{"question": "...", "answer": "..."}]`
	case IntentInfographic:
		body = "Analyze the following content and extract the key information for an infographic. " +
			"Identify the title, a one paragraph summary, the most important key points, and notable statistics."
		format = `Respond with ONLY a JSON object in this exact format, no other text:
{"title": "...", "summary": "...", "keyPoints": ["..."], "stats": [{"label": "...", "value": 0}]}`
	case IntentExtraction:
		body = "Extract all readable text from the following document content. " +
			"Preserve the original structure and wording as closely as possible."
		format = "Respond with ONLY the extracted plain text, no commentary."
	default:
		return "", &UnsupportedIntentError{Intent: intent}
	}

	if template != "" {
		body = template
	}

	limit := generationContentLimit
	if intent == IntentExtraction {
		limit = extractionContentLimit
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")

	if sourceType == "url" {
		b.WriteString("The content is a web page. Analyze this URL and its contents:\n")
	} else {
		b.WriteString("Content:\n")
	}
	b.WriteString(truncateContent(content, limit))
	b.WriteString("\n\n")
	b.WriteString(format)

	return b.String(), nil
}
