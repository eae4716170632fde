package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type FavoritesHandler struct {
	addUC    usecases_port.AddToFavoritesUseCasePort
	removeUC usecases_port.RemoveFromFavoritesUseCasePort
	listUC   usecases_port.GetUserFavoritesUseCasePort
	idsUC    usecases_port.GetUserFavoriteIDsUseCasePort
}

func NewFavoritesHandler(
	addUC usecases_port.AddToFavoritesUseCasePort,
	removeUC usecases_port.RemoveFromFavoritesUseCasePort,
	listUC usecases_port.GetUserFavoritesUseCasePort,
	idsUC usecases_port.GetUserFavoriteIDsUseCasePort,
) *FavoritesHandler {
	return &FavoritesHandler{addUC: addUC, removeUC: removeUC, listUC: listUC, idsUC: idsUC}
}

// Bind implements render.Binder.
func (a *AddFavoriteRequest) Bind(r *http.Request) error {
	a.PropertyID = strings.TrimSpace(a.PropertyID)
	if a.PropertyID == "" {
		return domain.ErrMissingID
	}
	return nil
}

// GetUserFavoriteIDs handles GET /api/v1/favorites/ids
func (h *FavoritesHandler) GetUserFavoriteIDs(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserFavoriteIDs"})

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, r, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	ids, err := h.idsUC.Execute(r.Context(), userID)
	if err != nil {
		logger.Error("Get user favorite ids use case failed", err, port.Fields{"user_id": userID})
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to retrieve favorites")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ids)
}

// GetUserFavorites handles GET /api/v1/favorites
func (h *FavoritesHandler) GetUserFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserFavorites"})

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, r, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	handlerLogger := logger.WithFields(port.Fields{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	})
	handlerLogger.Info("Processing request to get user favorites", nil)

	page, err := h.listUC.Execute(r.Context(), userID, limit, offset)
	if err != nil {
		handlerLogger.Error("Get user favorites use case failed", err, nil)
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to retrieve favorites")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, PaginatedFavoritesResponse{
		Data:    page.Cards,
		Total:   page.TotalCount,
		Page:    page.CurrentPage,
		PerPage: page.ItemsPerPage,
	})
}

// AddToFavorites handles POST /api/v1/favorites
func (h *FavoritesHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddToFavorites"})

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, r, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	var req AddFavoriteRequest
	if err := render.Bind(r, &req); err != nil {
		logger.Warn("Invalid add favorite request", port.Fields{"error": err.Error()})
		WriteJSONError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"user_id":     userID,
		"property_id": req.PropertyID,
	})

	if err := h.addUC.Execute(r.Context(), userID, req.PropertyID); err != nil {
		handlerLogger.Error("Add to favorites use case failed", err, nil)
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to add to favorites")
		return
	}

	handlerLogger.Info("Property added to favorites", nil)
	w.WriteHeader(http.StatusCreated)
}

// RemoveFromFavorites handles DELETE /api/v1/favorites/{propertyID}
func (h *FavoritesHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveFromFavorites"})

	userID, ok := userIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, r, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	propertyID := chi.URLParam(r, "propertyID")
	handlerLogger := logger.WithFields(port.Fields{
		"user_id":     userID,
		"property_id": propertyID,
	})

	if err := h.removeUC.Execute(r.Context(), userID, propertyID); err != nil {
		if errors.Is(err, domain.ErrMissingID) {
			WriteJSONError(w, r, http.StatusBadRequest, "Missing property id")
			return
		}
		handlerLogger.Error("Remove from favorites use case failed", err, nil)
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to remove from favorites")
		return
	}

	handlerLogger.Info("Property removed from favorites", nil)
	w.WriteHeader(http.StatusNoContent)
}
