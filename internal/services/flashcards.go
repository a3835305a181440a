package services

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

// FlashcardStore is the persistence surface flashcard operations need.
// *repository.FlashcardRepo implements it.
type FlashcardStore interface {
	CreateDeck(ctx context.Context, d *models.FlashcardDeck, cards []models.Flashcard) error
	GetDeckByID(ctx context.Context, id uuid.UUID) (*models.FlashcardDeck, error)
	ListDecksByUser(ctx context.Context, userID uuid.UUID) ([]*models.FlashcardDeck, error)
	GetCardsByDeck(ctx context.Context, deckID uuid.UUID) ([]models.FlashcardCard, error)
	DeleteDeck(ctx context.Context, id uuid.UUID) error
}

type FlashcardService struct {
	llm    *LLMClient
	repo   FlashcardStore
	events EventSink
}

func NewFlashcardService(llm *LLMClient, repo FlashcardStore, events EventSink) *FlashcardService {
	return &FlashcardService{llm: llm, repo: repo, events: events}
}

// Generate produces a flashcard deck from the request's content. Model
// failures degrade to synthesized or canned cards, so the caller always gets
// a usable deck. Persistence and the completion event run after the response
// is built and never block it.
func (s *FlashcardService) Generate(ctx context.Context, userID uuid.UUID, req *models.GenerateFlashcardsRequest) (*models.FlashcardResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, &ValidationError{Fields: map[string]string{"content": "content is required"}}
	}

	label := sourceLabel(req.FileName, req.SourceType, req.Content)

	prompt, err := BuildPrompt(IntentFlashcards, req.Content, req.SourceType, req.PromptTemplate)
	if err != nil {
		return nil, err
	}

	raw, err := s.llm.Generate(ctx, prompt, ParamsForIntent(IntentFlashcards))
	if err != nil {
		var invErr *ModelInvocationError
		if !errors.As(err, &invErr) {
			return nil, err
		}
		log.Printf("Flashcard generation model call failed, serving fallback: %v", invErr)
		raw = ""
	}

	cards := NormalizeFlashcards(raw, req.Content, label)

	result := &models.FlashcardResult{
		Success:    true,
		Title:      deckTitle(label),
		Flashcards: cards,
	}

	go s.persist(userID, label, result)

	return result, nil
}

func (s *FlashcardService) persist(userID uuid.UUID, label string, result *models.FlashcardResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	deck := &models.FlashcardDeck{
		UserID:      userID,
		Title:       result.Title,
		SourceLabel: label,
	}
	if err := s.repo.CreateDeck(ctx, deck, result.Flashcards); err != nil {
		log.Printf("Failed to persist flashcard deck for user %s: %v", userID, err)
		s.events.PublishError(ctx, userID, models.ErrorEvent{
			ErrorCode:    "PERSISTENCE_FAILED",
			ErrorMessage: "Your flashcards were generated but could not be saved to the library.",
		})
		return
	}

	s.events.PublishCompleted(ctx, userID, models.CompletedEvent{
		ResultID:   deck.ID,
		ResultType: "flashcards",
		Title:      deck.Title,
	})
}

func (s *FlashcardService) ListDecks(ctx context.Context, userID uuid.UUID) ([]*models.FlashcardDeck, error) {
	return s.repo.ListDecksByUser(ctx, userID)
}

func (s *FlashcardService) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*models.FlashcardDeck, []models.FlashcardCard, error) {
	deck, err := s.repo.GetDeckByID(ctx, deckID)
	if err != nil {
		return nil, nil, &NotFoundError{Message: "Flashcard deck not found"}
	}
	if deck.UserID != userID {
		return nil, nil, &ForbiddenError{Message: "You do not have access to this deck"}
	}

	cards, err := s.repo.GetCardsByDeck(ctx, deckID)
	if err != nil {
		return nil, nil, err
	}
	return deck, cards, nil
}

func (s *FlashcardService) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	deck, err := s.repo.GetDeckByID(ctx, deckID)
	if err != nil {
		return &NotFoundError{Message: "Flashcard deck not found"}
	}
	if deck.UserID != userID {
		return &ForbiddenError{Message: "You do not have access to this deck"}
	}
	return s.repo.DeleteDeck(ctx, deckID)
}

// sourceLabel picks the human-readable name for a piece of source content:
// the uploaded file's name, the URL itself, or a generic placeholder for
// pasted text.
func sourceLabel(fileName, sourceType, content string) string {
	if fileName != "" {
		return fileName
	}
	if sourceType == models.SourceURL {
		return strings.TrimSpace(content)
	}
	return "Study Material"
}

func deckTitle(label string) string {
	base := strings.TrimSuffix(label, filepath.Ext(label))
	if base == "" {
		base = label
	}
	return base
}
