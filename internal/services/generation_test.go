package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

type fakeDeckStore struct {
	createErr error
	created   chan *models.FlashcardDeck
}

func (f *fakeDeckStore) CreateDeck(ctx context.Context, d *models.FlashcardDeck, cards []models.Flashcard) error {
	if f.createErr != nil {
		return f.createErr
	}
	d.ID = uuid.New()
	f.created <- d
	return nil
}

func (f *fakeDeckStore) GetDeckByID(ctx context.Context, id uuid.UUID) (*models.FlashcardDeck, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDeckStore) ListDecksByUser(ctx context.Context, userID uuid.UUID) ([]*models.FlashcardDeck, error) {
	return nil, nil
}

func (f *fakeDeckStore) GetCardsByDeck(ctx context.Context, deckID uuid.UUID) ([]models.FlashcardCard, error) {
	return nil, nil
}

func (f *fakeDeckStore) DeleteDeck(ctx context.Context, id uuid.UUID) error { return nil }

type fakeInfographicStore struct {
	created chan *models.Infographic
}

func (f *fakeInfographicStore) Create(ctx context.Context, g *models.Infographic) error {
	g.ID = uuid.New()
	f.created <- g
	return nil
}

func (f *fakeInfographicStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Infographic, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeInfographicStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Infographic, error) {
	return nil, nil
}

func (f *fakeInfographicStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeEventSink struct {
	completed chan models.CompletedEvent
	errored   chan models.ErrorEvent
}

func newFakeEventSink() *fakeEventSink {
	return &fakeEventSink{
		completed: make(chan models.CompletedEvent, 1),
		errored:   make(chan models.ErrorEvent, 1),
	}
}

func (f *fakeEventSink) PublishCompleted(ctx context.Context, userID uuid.UUID, event models.CompletedEvent) {
	f.completed <- event
}

func (f *fakeEventSink) PublishError(ctx context.Context, userID uuid.UUID, event models.ErrorEvent) {
	f.errored <- event
}

func unavailableModel(t *testing.T) *LLMClient {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model is loading", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	return NewLLMClient(srv.URL, "test-token", 1)
}

// A dead model endpoint must never surface as an error to the caller: the
// service falls back to synthesized cards and still persists the deck.
func TestFlashcardGenerate_ModelFailureServesFallback(t *testing.T) {
	store := &fakeDeckStore{created: make(chan *models.FlashcardDeck, 1)}
	sink := newFakeEventSink()
	svc := NewFlashcardService(unavailableModel(t), store, sink)

	result, err := svc.Generate(context.Background(), uuid.New(), &models.GenerateFlashcardsRequest{
		Content:    "The mitochondria is the powerhouse of the cell. Photosynthesis converts light energy into chemical energy stored in glucose.",
		SourceType: models.SourceText,
	})
	if err != nil {
		t.Fatalf("model outage should not fail generation: %v", err)
	}
	if !result.Success {
		t.Error("expected success=true despite model outage")
	}
	if len(result.Flashcards) == 0 {
		t.Fatal("expected fallback flashcards, got none")
	}

	select {
	case deck := <-store.created:
		if deck.Title != result.Title {
			t.Errorf("persisted title %q does not match result title %q", deck.Title, result.Title)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("deck was never persisted")
	}

	select {
	case <-sink.completed:
	case <-time.After(2 * time.Second):
		t.Fatal("completion event was never published")
	}
}

func TestInfographicGenerate_ModelFailureServesFallback(t *testing.T) {
	store := &fakeInfographicStore{created: make(chan *models.Infographic, 1)}
	sink := newFakeEventSink()
	svc := NewInfographicService(unavailableModel(t), store, sink)

	result, err := svc.Generate(context.Background(), uuid.New(), &models.GenerateInfographicRequest{
		Content:    "Quarterly revenue grew 14 percent while churn dropped below 3 percent.",
		SourceType: models.SourceText,
	})
	if err != nil {
		t.Fatalf("model outage should not fail generation: %v", err)
	}
	if !result.Success {
		t.Error("expected success=true despite model outage")
	}
	if len(result.InfographicData.KeyPoints) < minKeyPoints {
		t.Errorf("expected at least %d fallback key points, got %d", minKeyPoints, len(result.InfographicData.KeyPoints))
	}
	if len(result.InfographicData.Stats) < minStats {
		t.Errorf("expected at least %d fallback stats, got %d", minStats, len(result.InfographicData.Stats))
	}

	select {
	case <-store.created:
	case <-time.After(2 * time.Second):
		t.Fatal("infographic was never persisted")
	}

	select {
	case <-sink.completed:
	case <-time.After(2 * time.Second):
		t.Fatal("completion event was never published")
	}
}

func TestFlashcardGenerate_PersistFailurePublishesError(t *testing.T) {
	store := &fakeDeckStore{createErr: errors.New("connection refused")}
	sink := newFakeEventSink()
	svc := NewFlashcardService(unavailableModel(t), store, sink)

	result, err := svc.Generate(context.Background(), uuid.New(), &models.GenerateFlashcardsRequest{
		Content:    "Glaciers shape valleys over thousands of years through abrasion and plucking.",
		SourceType: models.SourceText,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Error("persistence failure must not affect the synchronous result")
	}

	select {
	case event := <-sink.errored:
		if event.ErrorCode != "PERSISTENCE_FAILED" {
			t.Errorf("expected PERSISTENCE_FAILED, got %q", event.ErrorCode)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("persistence error event was never published")
	}
}
