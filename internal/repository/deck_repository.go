package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DeckRepository handles flashcard decks. Cards live embedded in the deck
// document and are mutated with array update operators.
type DeckRepository interface {
	Insert(ctx context.Context, deck *models.Deck) (*models.Deck, error)
	FindByID(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Deck, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Deck, error)
	PushCard(ctx context.Context, deckID, ownerID primitive.ObjectID, card models.Flashcard) error
	PullCard(ctx context.Context, deckID, ownerID, cardID primitive.ObjectID) error
	SetCardMastery(ctx context.Context, deckID, ownerID, cardID primitive.ObjectID, mastery string) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

type deckRepository struct {
	collection *mongo.Collection
}

func NewDeckRepository(db *mongo.Database) DeckRepository {
	return &deckRepository{collection: db.Collection("decks")}
}

func (r *deckRepository) Insert(ctx context.Context, deck *models.Deck) (*models.Deck, error) {
	deck.CreatedAt = time.Now()
	if deck.Cards == nil {
		deck.Cards = []models.Flashcard{}
	}

	result, err := r.collection.InsertOne(ctx, deck)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert deck")
		return nil, err
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		deck.ID = insertedID
	}
	return deck, nil
}

func (r *deckRepository) FindByID(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Deck, error) {
	var deck models.Deck

	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": ownerID}).Decode(&deck)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("deck_id", id.Hex()).Error("Failed to find deck")
		return nil, err
	}
	return &deck, nil
}

func (r *deckRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Deck, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", ownerID.Hex()).Error("Failed to fetch decks")
		return nil, err
	}
	defer cursor.Close(ctx)

	var decks []models.Deck
	if err := cursor.All(ctx, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

func (r *deckRepository) PushCard(ctx context.Context, deckID, ownerID primitive.ObjectID, card models.Flashcard) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": deckID, "user_id": ownerID},
		bson.M{"$push": bson.M{"cards": card}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("deck_id", deckID.Hex()).Error("Failed to add card")
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *deckRepository) PullCard(ctx context.Context, deckID, ownerID, cardID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": deckID, "user_id": ownerID},
		bson.M{"$pull": bson.M{"cards": bson.M{"_id": cardID}}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("deck_id", deckID.Hex()).Error("Failed to remove card")
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *deckRepository) SetCardMastery(ctx context.Context, deckID, ownerID, cardID primitive.ObjectID, mastery string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": deckID, "user_id": ownerID, "cards._id": cardID},
		bson.M{"$set": bson.M{"cards.$.mastery": mastery}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("card_id", cardID.Hex()).Error("Failed to update mastery")
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *deckRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		logger.Log.WithError(err).WithField("deck_id", id.Hex()).Error("Failed to delete deck")
	}
	return err
}
