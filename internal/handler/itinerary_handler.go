package handler

import (
	"errors"
	"net/http"

	"github.com/Lutefd/itinerary-sorter/internal/commons"
	"github.com/Lutefd/itinerary-sorter/internal/model"
	"github.com/Lutefd/itinerary-sorter/internal/service"
)

type ItineraryHandler struct {
	itineraryService service.ItineraryServiceInterface
}

func NewItineraryHandler(itineraryService service.ItineraryServiceInterface) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
	}
}

func (h *ItineraryHandler) SortItineraries(w http.ResponseWriter, r *http.Request) {
	var req model.SortItinerariesRequest
	if err := commons.DecodeJSONBody(w, r, &req); err != nil {
		if errors.Is(err, commons.ErrInvalidShape) {
			commons.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		commons.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		commons.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp, err := h.itineraryService.Sort(r.Context(), req.SortingType, req.Itineraries)
	if err != nil {
		var rfe *model.RateFetchError
		switch {
		case errors.Is(err, model.ErrInvalidSortingType):
			commons.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.As(err, &rfe):
			commons.RespondWithError(w, http.StatusBadGateway, "failed to fetch exchange rates")
		default:
			commons.RespondWithError(w, http.StatusInternalServerError, "failed to sort itineraries")
		}
		return
	}

	commons.RespondWithJSON(w, http.StatusOK, resp)
}
