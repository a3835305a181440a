package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

// InfographicStore is the persistence surface infographic operations need.
// *repository.InfographicRepo implements it.
type InfographicStore interface {
	Create(ctx context.Context, g *models.Infographic) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Infographic, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Infographic, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type InfographicService struct {
	llm    *LLMClient
	repo   InfographicStore
	events EventSink
}

func NewInfographicService(llm *LLMClient, repo InfographicStore, events EventSink) *InfographicService {
	return &InfographicService{llm: llm, repo: repo, events: events}
}

// Generate extracts infographic data from the request's content. Like
// flashcard generation this never fails on bad model output: the record is
// repaired or replaced with canned data for the content's bucket.
func (s *InfographicService) Generate(ctx context.Context, userID uuid.UUID, req *models.GenerateInfographicRequest) (*models.InfographicResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, &ValidationError{Fields: map[string]string{"content": "content is required"}}
	}

	label := sourceLabel(req.FileName, req.SourceType, req.Content)
	class := ClassifyContent(req.SourceType, label)

	prompt, err := BuildPrompt(IntentInfographic, req.Content, req.SourceType, req.PromptTemplate)
	if err != nil {
		return nil, err
	}

	raw, err := s.llm.Generate(ctx, prompt, ParamsForIntent(IntentInfographic))
	if err != nil {
		var invErr *ModelInvocationError
		if !errors.As(err, &invErr) {
			return nil, err
		}
		log.Printf("Infographic generation model call failed, serving fallback: %v", invErr)
		raw = ""
	}

	record := NormalizeInfographic(raw, deckTitle(label), class)

	result := &models.InfographicResult{
		Success:         true,
		Title:           record.Title,
		InfographicData: record,
	}

	go s.persist(userID, label, result)

	return result, nil
}

func (s *InfographicService) persist(userID uuid.UUID, label string, result *models.InfographicResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	content, err := json.Marshal(result.InfographicData)
	if err != nil {
		log.Printf("Failed to marshal infographic for user %s: %v", userID, err)
		return
	}

	g := &models.Infographic{
		UserID:           userID,
		Title:            result.Title,
		ContentJSON:      content,
		OriginalFilename: label,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		log.Printf("Failed to persist infographic for user %s: %v", userID, err)
		s.events.PublishError(ctx, userID, models.ErrorEvent{
			ErrorCode:    "PERSISTENCE_FAILED",
			ErrorMessage: "Your infographic was generated but could not be saved to the library.",
		})
		return
	}

	s.events.PublishCompleted(ctx, userID, models.CompletedEvent{
		ResultID:   g.ID,
		ResultType: "infographic",
		Title:      g.Title,
	})
}

func (s *InfographicService) List(ctx context.Context, userID uuid.UUID) ([]*models.Infographic, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *InfographicService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Infographic, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Message: "Infographic not found"}
	}
	if g.UserID != userID {
		return nil, &ForbiddenError{Message: "You do not have access to this infographic"}
	}
	return g, nil
}

func (s *InfographicService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return &NotFoundError{Message: "Infographic not found"}
	}
	if g.UserID != userID {
		return &ForbiddenError{Message: "You do not have access to this infographic"}
	}
	return s.repo.Delete(ctx, id)
}
