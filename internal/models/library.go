package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type FlashcardDeck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	SourceLabel string    `json:"source_label"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type FlashcardCard struct {
	ID       uuid.UUID `json:"id"`
	DeckID   uuid.UUID `json:"deck_id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Position int       `json:"position"`
}

type Infographic struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	Title            string          `json:"title"`
	ContentJSON      json.RawMessage `json:"content"`
	OriginalFilename string          `json:"original_filename"`
	CreatedAt        time.Time       `json:"created_at"`
}

type Conversion struct {
	ID             uuid.UUID  `json:"id"`
	UserID         *uuid.UUID `json:"user_id"`
	ConversionType string     `json:"conversion_type"`
	InputFilename  string     `json:"input_filename"`
	OutputFilename string     `json:"output_filename"`
	ContentType    string     `json:"content_type"`
	Success        bool       `json:"success"`
	Message        string     `json:"message"`
	CreatedAt      time.Time  `json:"created_at"`
}
