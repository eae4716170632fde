package rest

import (
	"context"
	"errors"
	"net/http"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/listing"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves the public listing endpoints.
type CatalogHandler struct {
	findUC    usecases_port.FindPropertiesUseCase
	detailsUC usecases_port.GetPropertyDetailsUseCase
	optionsUC usecases_port.GetFilterOptionsUseCase
	defaults  listing.ViewState
}

func NewCatalogHandler(
	findUC usecases_port.FindPropertiesUseCase,
	detailsUC usecases_port.GetPropertyDetailsUseCase,
	optionsUC usecases_port.GetFilterOptionsUseCase,
	defaultPerPage int,
) *CatalogHandler {
	defaults := listing.Reduce(listing.DefaultViewState(), listing.SetPerPage{PerPage: defaultPerPage})
	return &CatalogHandler{
		findUC:    findUC,
		detailsUC: detailsUC,
		optionsUC: optionsUC,
		defaults:  defaults,
	}
}

// ListProperties handles GET /api/v1/properties
func (h *CatalogHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	state := listing.StateFromParams(r.URL.Query(), h.defaults)

	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "ListProperties",
		"page":    state.Page,
	})
	logger.Info("Processing request to list properties", nil)

	view, err := h.findUC.Execute(r.Context(), domain.ListingQuery{
		Filters: state.Filters,
		Variant: state.ViewMode,
		Page:    state.Page,
		PerPage: state.PerPage,
	})
	if err != nil {
		if errors.Is(r.Context().Err(), context.Canceled) {
			logger.Warn("Client went away before the listing was loaded", nil)
			return
		}
		logger.Error("Find properties use case failed", err, nil)
		WriteRetryableError(w, r, http.StatusBadGateway, "Failed to load properties")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toListingResponse(view))
}

// GetFilterOptions handles GET /api/v1/properties/filters
func (h *CatalogHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFilterOptions"})

	state := listing.StateFromParams(r.URL.Query(), h.defaults)

	res, err := h.optionsUC.Execute(r.Context(), state.Filters)
	if err != nil {
		logger.Error("Get filter options use case failed", err, nil)
		WriteRetryableError(w, r, http.StatusBadGateway, "Failed to load filter options")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toFilterOptionsResponse(res))
}

// GetPropertyDetails handles GET /api/v1/properties/{slug}
func (h *CatalogHandler) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "GetPropertyDetails",
		"slug":    slug,
	})

	details, err := h.detailsUC.Execute(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			logger.Warn("Property not found", nil)
			WriteJSONError(w, r, http.StatusNotFound, "Property not found")
			return
		}
		logger.Error("Get property details use case failed", err, nil)
		WriteRetryableError(w, r, http.StatusBadGateway, "Failed to load property")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toDetailsResponse(details))
}
