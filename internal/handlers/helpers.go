package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/pkg/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// requireOwner extracts the authenticated user's ObjectID or writes the
// error response and reports false.
func requireOwner(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized access attempt")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return primitive.NilObjectID, false
	}

	ownerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("Failed to convert user ID")
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return primitive.NilObjectID, false
	}
	return ownerID, true
}

// pathID parses a hex ObjectID from a mux path variable, writing a 400 on
// failure.
func pathID(w http.ResponseWriter, vars map[string]string, key string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(vars[key])
	if err != nil {
		http.Error(w, "Invalid "+key, http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return id, true
}

// bodyID parses a hex ObjectID from a request body field, writing a 400 on
// failure.
func bodyID(w http.ResponseWriter, hex, label string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		http.Error(w, "Invalid "+label, http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondJSON writes the payload with the given status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps service errors onto HTTP status codes. Unrecognized
// errors become a 500 with the fallback message so internals never leak.
func respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrUnauthorized):
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, models.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		logrus.WithError(err).Error(fallback)
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}
