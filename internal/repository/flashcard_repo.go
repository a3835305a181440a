package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

type FlashcardRepo struct {
	pool *pgxpool.Pool
}

func NewFlashcardRepo(pool *pgxpool.Pool) *FlashcardRepo {
	return &FlashcardRepo{pool: pool}
}

// CreateDeck inserts the deck and its cards in one transaction.
func (r *FlashcardRepo) CreateDeck(ctx context.Context, d *models.FlashcardDeck, cards []models.Flashcard) error {
	d.ID = uuid.New()
	d.CardCount = len(cards)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO flashcard_decks (id, user_id, title, source_label, card_count)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	err = tx.QueryRow(ctx, query,
		d.ID, d.UserID, d.Title, d.SourceLabel, d.CardCount,
	).Scan(&d.CreatedAt)
	if err != nil {
		return err
	}

	for i, card := range cards {
		_, err := tx.Exec(ctx,
			`INSERT INTO flashcard_cards (id, deck_id, question, answer, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), d.ID, card.Question, card.Answer, i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *FlashcardRepo) GetDeckByID(ctx context.Context, id uuid.UUID) (*models.FlashcardDeck, error) {
	d := &models.FlashcardDeck{}
	query := `SELECT id, user_id, title, source_label, card_count, created_at
		FROM flashcard_decks WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.Title, &d.SourceLabel, &d.CardCount, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *FlashcardRepo) ListDecksByUser(ctx context.Context, userID uuid.UUID) ([]*models.FlashcardDeck, error) {
	query := `SELECT id, user_id, title, source_label, card_count, created_at
		FROM flashcard_decks WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []*models.FlashcardDeck
	for rows.Next() {
		d := &models.FlashcardDeck{}
		err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.SourceLabel, &d.CardCount, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}

func (r *FlashcardRepo) GetCardsByDeck(ctx context.Context, deckID uuid.UUID) ([]models.FlashcardCard, error) {
	query := `SELECT id, deck_id, question, answer, position
		FROM flashcard_cards WHERE deck_id = $1 ORDER BY position`

	rows, err := r.pool.Query(ctx, query, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.FlashcardCard
	for rows.Next() {
		var c models.FlashcardCard
		err := rows.Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.Position)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (r *FlashcardRepo) DeleteDeck(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM flashcard_decks WHERE id = $1", id)
	return err
}
