package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/SKrishna-7/stratify/internal/services"
	"github.com/gorilla/mux"
)

// DeckHandler handles flashcard decks and reviews.
type DeckHandler struct {
	Service *services.DeckService
}

// NewDeckHandler creates a new instance of DeckHandler.
func NewDeckHandler(deckService *services.DeckService) *DeckHandler {
	return &DeckHandler{Service: deckService}
}

// CreateDeckHandler creates an empty deck.
func (h *DeckHandler) CreateDeckHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	deck, err := h.Service.CreateDeck(r.Context(), ownerID, body.Title, body.Description, body.Color)
	if err != nil {
		respondError(w, err, "Failed to create deck")
		return
	}
	respondJSON(w, http.StatusCreated, deck)
}

// GetDecksHandler lists the user's decks.
func (h *DeckHandler) GetDecksHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	decks, err := h.Service.GetDecks(r.Context(), ownerID)
	if err != nil {
		respondError(w, err, "Failed to fetch decks")
		return
	}
	respondJSON(w, http.StatusOK, decks)
}

// GetDeckHandler fetches one deck with its cards.
func (h *DeckHandler) GetDeckHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	deckID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	deck, err := h.Service.GetDeck(r.Context(), ownerID, deckID)
	if err != nil {
		respondError(w, err, "Failed to fetch deck")
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

// AddCardHandler appends a card to a deck.
func (h *DeckHandler) AddCardHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	deckID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var body struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	card, err := h.Service.AddCard(r.Context(), ownerID, deckID, body.Front, body.Back)
	if err != nil {
		respondError(w, err, "Failed to add card")
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

// RateCardHandler records a review outcome for a card.
func (h *DeckHandler) RateCardHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	deckID, ok := pathID(w, vars, "id")
	if !ok {
		return
	}
	cardID, ok := pathID(w, vars, "cardId")
	if !ok {
		return
	}

	var body struct {
		Mastery string `json:"mastery"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.RateCard(r.Context(), ownerID, deckID, cardID, body.Mastery); err != nil {
		respondError(w, err, "Failed to rate card")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Card rated"})
}

// DeleteCardHandler removes a card from a deck.
func (h *DeckHandler) DeleteCardHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	deckID, ok := pathID(w, vars, "id")
	if !ok {
		return
	}
	cardID, ok := pathID(w, vars, "cardId")
	if !ok {
		return
	}

	if err := h.Service.DeleteCard(r.Context(), ownerID, deckID, cardID); err != nil {
		respondError(w, err, "Failed to delete card")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Card deleted"})
}

// DeleteDeckHandler removes a deck.
func (h *DeckHandler) DeleteDeckHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	deckID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteDeck(r.Context(), ownerID, deckID); err != nil {
		respondError(w, err, "Failed to delete deck")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Deck deleted"})
}
