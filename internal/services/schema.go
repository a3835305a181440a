package services

import "github.com/santhosh-tekuri/jsonschema/v5"

// Strict schemas for model output. A payload that passes these needs no
// repair; anything else goes through the lenient path in normalize.go.

var flashcardSchema = jsonschema.MustCompileString("flashcards.schema.json", `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["question", "answer"],
		"properties": {
			"question": {"type": "string", "minLength": 1},
			"answer": {"type": "string", "minLength": 1}
		}
	}
}`)

var infographicSchema = jsonschema.MustCompileString("infographic.schema.json", `{
	"type": "object",
	"required": ["title", "summary", "keyPoints", "stats"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"summary": {"type": "string", "minLength": 1},
		"keyPoints": {
			"type": "array",
			"minItems": 3,
			"items": {"type": "string", "minLength": 1}
		},
		"stats": {
			"type": "array",
			"minItems": 3,
			"items": {
				"type": "object",
				"required": ["label", "value"],
				"properties": {
					"label": {"type": "string", "minLength": 1},
					"value": {"type": "number"}
				}
			}
		}
	}
}`)
