package services

import (
	"context"
	"fmt"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeckService handles flashcard decks and their cards.
type DeckService struct {
	repo repository.DeckRepository
}

// NewDeckService creates a new instance of DeckService.
func NewDeckService(repo repository.DeckRepository) *DeckService {
	return &DeckService{repo: repo}
}

// CreateDeck persists an empty deck.
func (s *DeckService) CreateDeck(ctx context.Context, ownerID primitive.ObjectID, title, description, color string) (*models.Deck, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: deck title is required", models.ErrInvalidInput)
	}

	deck := &models.Deck{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Color:       color,
	}
	created, err := s.repo.Insert(ctx, deck)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck: %v", err)
	}
	return created, nil
}

// GetDeck fetches one owned deck with its cards.
func (s *DeckService) GetDeck(ctx context.Context, ownerID, deckID primitive.ObjectID) (*models.Deck, error) {
	return s.repo.FindByID(ctx, deckID, ownerID)
}

// DeckSummary is a deck with its card statistics, as shown on the deck list.
type DeckSummary struct {
	models.Deck
	TotalCards    int `json:"total_cards"`
	MasteredCards int `json:"mastered_cards"`
}

// GetDecks lists the owner's decks with card counts.
func (s *DeckService) GetDecks(ctx context.Context, ownerID primitive.ObjectID) ([]DeckSummary, error) {
	decks, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch decks: %v", err)
	}

	summaries := make([]DeckSummary, 0, len(decks))
	for _, d := range decks {
		summaries = append(summaries, DeckSummary{
			Deck:          d,
			TotalCards:    len(d.Cards),
			MasteredCards: d.MasteredCount(),
		})
	}
	return summaries, nil
}

// AddCard appends a card to a deck, starting at mastery "new".
func (s *DeckService) AddCard(ctx context.Context, ownerID, deckID primitive.ObjectID, front, back string) (*models.Flashcard, error) {
	if front == "" || back == "" {
		return nil, fmt.Errorf("%w: card front and back are required", models.ErrInvalidInput)
	}

	card := models.Flashcard{
		ID:      primitive.NewObjectID(),
		Front:   front,
		Back:    back,
		Mastery: models.MasteryNew,
	}
	if err := s.repo.PushCard(ctx, deckID, ownerID, card); err != nil {
		return nil, err
	}
	return &card, nil
}

// RateCard records the review outcome for one card.
func (s *DeckService) RateCard(ctx context.Context, ownerID, deckID, cardID primitive.ObjectID, mastery string) error {
	if !models.AllowedMasteries[mastery] {
		return fmt.Errorf("%w: unknown mastery level %q", models.ErrInvalidInput, mastery)
	}
	return s.repo.SetCardMastery(ctx, deckID, ownerID, cardID, mastery)
}

// DeleteCard removes a card from a deck.
func (s *DeckService) DeleteCard(ctx context.Context, ownerID, deckID, cardID primitive.ObjectID) error {
	return s.repo.PullCard(ctx, deckID, ownerID, cardID)
}

// DeleteDeck removes a deck and everything in it.
func (s *DeckService) DeleteDeck(ctx context.Context, ownerID, deckID primitive.ObjectID) error {
	return s.repo.Delete(ctx, deckID, ownerID)
}
